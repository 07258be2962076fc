package changelog

import (
	"fmt"
	"strings"
)

// Entry is a flattened view of a single recorded changelog line, carrying
// its section and category context for display and export.
type Entry struct {
	Text     string `yaml:"text"`
	Category string `yaml:"category"`
	Section  string `yaml:"section"`
	Version  string `yaml:"version,omitempty"`
	Date     string `yaml:"date,omitempty"`
}

// SectionNotFoundError is returned when a requested section doesn't exist.
type SectionNotFoundError struct {
	Name      string
	Available []string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("section %q not found (available: %s)",
		e.Name, strings.Join(e.Available, ", "))
}

// Section retrieves a stored section by name or by version string (the "v"
// prefix is optional). The newest match wins.
func (d Document) Section(key string) (*ParsedSection, error) {
	normalized := strings.TrimPrefix(strings.ToLower(key), "v")

	for i := range d.Sections {
		s := &d.Sections[i]
		if strings.EqualFold(s.Name, key) {
			return s, nil
		}
		if s.Version != nil && strings.TrimPrefix(s.Version.String(), "v") == normalized {
			return s, nil
		}
	}

	return nil, &SectionNotFoundError{Name: key, Available: d.SectionTitles()}
}

// SectionTitles lists every section's display title, newest first.
func (d Document) SectionTitles() []string {
	titles := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		titles[i] = s.Title()
	}
	return titles
}

// Title returns the header text of the section as it would be rendered,
// without the date part.
func (s ParsedSection) Title() string {
	if s.Version == nil {
		return s.Name
	}
	return s.Name + "@" + s.Version.String()
}

// EntryList returns the section's entries flattened in category order.
func (s ParsedSection) EntryList() []Entry {
	var entries []Entry
	for _, category := range Categories() {
		for _, text := range s.Entries[category] {
			e := Entry{
				Text:     text,
				Category: strings.ToLower(category.DisplayName()),
				Section:  s.Name,
				Date:     s.Date,
			}
			if s.Version != nil {
				e.Version = s.Version.String()
			}
			entries = append(entries, e)
		}
	}
	return entries
}

// AllEntries returns every recorded entry, newest section first, categories
// in enumeration order within a section.
func (d Document) AllEntries() []Entry {
	var entries []Entry
	for _, s := range d.Sections {
		entries = append(entries, s.EntryList()...)
	}
	return entries
}

// LastN returns the n most recent entries. All entries are returned when n
// exceeds the total.
func (d Document) LastN(n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}
	entries := d.AllEntries()
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// EntryCount returns the total number of recorded entries.
func (d Document) EntryCount() int {
	n := 0
	for _, s := range d.Sections {
		for _, bucket := range s.Entries {
			n += len(bucket)
		}
	}
	return n
}

// ExportSection is the YAML-facing view of a parsed section, used by the
// show command's machine-readable output.
type ExportSection struct {
	Name     string              `yaml:"name"`
	Version  string              `yaml:"version,omitempty"`
	Date     string              `yaml:"date"`
	Breaking bool                `yaml:"breaking,omitempty"`
	Changes  map[string][]string `yaml:"changes"`
}

// Export converts the document into YAML-marshalable sections, newest
// first. Category keys are the lowercase display names.
func (d Document) Export() []ExportSection {
	sections := make([]ExportSection, len(d.Sections))
	for i, s := range d.Sections {
		out := ExportSection{
			Name:     s.Name,
			Date:     s.Date,
			Breaking: s.HasBreakingChange,
			Changes:  make(map[string][]string),
		}
		if s.Version != nil {
			out.Version = s.Version.String()
		}
		for _, category := range Categories() {
			if bucket := s.Entries[category]; len(bucket) > 0 {
				out.Changes[strings.ToLower(category.DisplayName())] = bucket
			}
		}
		sections[i] = out
	}
	return sections
}
