package changelog

import "strings"

// Classify maps a raw commit summary to its category and breaking flag.
// The token before the first ":" is lowercased, stripped of a "(scope)"
// suffix and of a trailing "!", then looked up in the prefix table.
// ok is false when the summary carries no ":" or an unknown prefix; such
// commits never reach the changelog.
//
// Breaking detection is independent of categorization: a summary is
// breaking iff the character immediately before the first ":" is "!".
func Classify(summary string) (category CommitCategory, breaking bool, ok bool) {
	colon := strings.IndexByte(summary, ':')
	if colon < 0 {
		return 0, false, false
	}

	breaking = colon > 0 && summary[colon-1] == '!'

	prefix := strings.ToLower(summary[:colon])
	if paren := strings.IndexByte(prefix, '('); paren >= 0 {
		prefix = prefix[:paren]
	}
	prefix = strings.TrimSuffix(prefix, "!")

	category, ok = categoryPrefixes[prefix]
	if !ok {
		return 0, false, false
	}
	return category, breaking, true
}
