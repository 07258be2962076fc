package changelog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/joshiayush/changelog/internal/semver"
)

var (
	// Section headers carry an optional "@vX.Y.Z" suffix on the name and
	// accept either an em dash or "--" before the date; both forms occur
	// in files written by earlier releases.
	sectionPattern = regexp.MustCompile(`^## (.+?)(?:@v(\d+)\.(\d+)\.(\d+))?\s+(?:—|--)\s+(\d{4}-\d{2}-\d{2})\s*$`)

	categoryPattern = regexp.MustCompile(`^### (\w+)$`)
	entryPattern    = regexp.MustCompile(`^- (.+)$`)
)

// Parse reconstructs the structured sections of a stored changelog body.
// The input is the document text with its top-level title already stripped
// (see StripTitle).
//
// Three line shapes are recognized, tried in priority order:
//
//	## <name>[@vX.Y.Z] — <YYYY-MM-DD>    starts a section
//	### <Word>                           selects a category
//	- <text>                             records an entry
//
// Any other line (blank lines, prose) is ignored. Entry lines are only
// accepted while a section and a recognized category are current; an
// unrecognized "###" heading clears the current category so the entries
// under it are skipped.
func Parse(content string) Document {
	doc := Document{Body: content}

	current := -1 // index of the section being filled
	category := CommitCategory(0)
	haveCategory := false

	for _, line := range strings.Split(content, "\n") {
		if m := sectionPattern.FindStringSubmatch(line); m != nil {
			section := ParsedSection{
				Name:    m[1],
				Date:    m[5],
				Entries: make(map[CommitCategory][]string),
			}
			if m[2] != "" {
				v := parseHeaderVersion(m[2], m[3], m[4])
				section.Version = &v
			}
			doc.Sections = append(doc.Sections, section)
			current = len(doc.Sections) - 1
			haveCategory = false
			continue
		}

		if m := categoryPattern.FindStringSubmatch(line); m != nil {
			category, haveCategory = categoryPrefixes[strings.ToLower(m[1])]
			continue
		}

		if m := entryPattern.FindStringSubmatch(line); m != nil && current >= 0 && haveCategory {
			section := &doc.Sections[current]
			entry := m[1]
			section.Entries[category] = insertString(section.Entries[category], entry)
			// The breaking marker survives a save/reload round trip only
			// through the rendered summary text itself.
			if strings.Contains(entry, "!:") {
				section.HasBreakingChange = true
			}
		}
	}

	return doc
}

// parseHeaderVersion converts the digit groups captured by sectionPattern.
// The pattern guarantees decimal digit runs, so conversion cannot fail.
func parseHeaderVersion(major, minor, patch string) (v semver.Version) {
	v.Major, _ = strconv.Atoi(major)
	v.Minor, _ = strconv.Atoi(minor)
	v.Patch, _ = strconv.Atoi(patch)
	return v
}
