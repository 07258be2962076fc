package changelog

import (
	"sort"

	"github.com/joshiayush/changelog/internal/semver"
)

// CommitCategory classifies a commit by its conventional summary prefix.
// The declaration order is the rendering order of category headings.
type CommitCategory int

const (
	CategoryAdd CommitCategory = iota
	CategoryFeat
	CategoryRefactor
	CategoryDeprecated
	CategoryFix
	CategoryDocs
	CategoryTest
	CategoryPerf
)

// categoryNames maps each category to its heading text. Built once,
// never mutated.
var categoryNames = map[CommitCategory]string{
	CategoryAdd:        "Add",
	CategoryFeat:       "Feat",
	CategoryRefactor:   "Refactor",
	CategoryDeprecated: "Deprecated",
	CategoryFix:        "Fix",
	CategoryDocs:       "Docs",
	CategoryTest:       "Test",
	CategoryPerf:       "Perf",
}

// categoryPrefixes maps the lowercase summary prefix token to its category.
// The same table answers both classification and heading re-parsing, since
// every heading is its prefix with the first letter upcased.
var categoryPrefixes = map[string]CommitCategory{
	"add":        CategoryAdd,
	"feat":       CategoryFeat,
	"refactor":   CategoryRefactor,
	"deprecated": CategoryDeprecated,
	"fix":        CategoryFix,
	"docs":       CategoryDocs,
	"test":       CategoryTest,
	"perf":       CategoryPerf,
}

// Categories returns every commit category in rendering order.
func Categories() []CommitCategory {
	return []CommitCategory{
		CategoryAdd,
		CategoryFeat,
		CategoryRefactor,
		CategoryDeprecated,
		CategoryFix,
		CategoryDocs,
		CategoryTest,
		CategoryPerf,
	}
}

// DisplayName returns the heading text for the category, e.g. "Feat".
func (c CommitCategory) DisplayName() string {
	return categoryNames[c]
}

// CommitRecord is the raw commit data supplied by the history collaborator.
// The core reads it; it never owns or mutates repository state.
type CommitRecord struct {
	Summary string
	ShortID string
	LongID  string
	Author  string
}

// SectionData accumulates the rendered entries for one scope of a
// generation run. Entries within a category are kept sorted and unique;
// the rendered string is the entry's identity.
type SectionData struct {
	Entries           map[CommitCategory][]string
	HasBreakingChange bool
}

// NewSectionData returns an empty SectionData ready to accumulate entries.
func NewSectionData() SectionData {
	return SectionData{Entries: make(map[CommitCategory][]string)}
}

// Add inserts a rendered entry into the category bucket, keeping the bucket
// sorted. Exact duplicates are ignored.
func (s *SectionData) Add(category CommitCategory, entry string) {
	s.Entries[category] = insertString(s.Entries[category], entry)
}

// insertString adds entry to a sorted bucket, ignoring exact duplicates.
func insertString(bucket []string, entry string) []string {
	i := sort.SearchStrings(bucket, entry)
	if i < len(bucket) && bucket[i] == entry {
		return bucket
	}
	bucket = append(bucket, "")
	copy(bucket[i+1:], bucket[i:])
	bucket[i] = entry
	return bucket
}

// IsEmpty reports whether no category holds any entry.
func (s SectionData) IsEmpty() bool {
	for _, bucket := range s.Entries {
		if len(bucket) > 0 {
			return false
		}
	}
	return true
}

// Count returns the total number of entries across all categories.
func (s SectionData) Count() int {
	n := 0
	for _, bucket := range s.Entries {
		n += len(bucket)
	}
	return n
}

// CategorySet returns the set of categories holding at least one entry.
func (s SectionData) CategorySet() map[CommitCategory]bool {
	set := make(map[CommitCategory]bool, len(s.Entries))
	for category, bucket := range s.Entries {
		if len(bucket) > 0 {
			set[category] = true
		}
	}
	return set
}

// ParsedSection is one "## " block reconstructed from stored changelog
// text. Version is nil for sections written before headers carried one.
type ParsedSection struct {
	Name              string
	Version           *semver.Version
	Date              string
	Entries           map[CommitCategory][]string
	HasBreakingChange bool
}

// Document is a parsed changelog: sections ordered newest first, plus the
// verbatim body text needed to reproduce untouched content byte for byte.
type Document struct {
	Sections []ParsedSection
	Body     string
}
