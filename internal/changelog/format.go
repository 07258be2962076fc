package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// CategoryStyle defines the color and icon for a category in terminal output.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps categories to their terminal styling.
var categoryStyles = map[CommitCategory]CategoryStyle{
	CategoryAdd:        {Color: color.New(color.FgGreen), Icon: "+"},
	CategoryFeat:       {Color: color.New(color.FgGreen), Icon: "✓"},
	CategoryRefactor:   {Color: color.New(color.FgBlue), Icon: "~"},
	CategoryDeprecated: {Color: color.New(color.FgRed), Icon: "⚠"},
	CategoryFix:        {Color: color.New(color.FgYellow), Icon: "⚡"},
	CategoryDocs:       {Color: color.New(color.FgCyan), Icon: "#"},
	CategoryTest:       {Color: color.New(color.FgMagenta), Icon: "T"},
	CategoryPerf:       {Color: color.New(color.FgYellow), Icon: "»"},
}

// FormatOptions controls terminal output formatting.
type FormatOptions struct {
	Plain    bool // disable colors and icons
	MaxWidth int  // maximum line width (0 = auto-detect)
}

// FormatTerminal writes entries to the writer with terminal styling,
// grouped by owning section with color-coded category markers.
func FormatTerminal(entries []Entry, w io.Writer, opts FormatOptions) error {
	if len(entries) == 0 {
		return nil
	}

	width := resolveWidth(opts.MaxWidth)

	groups := groupEntriesBySection(entries)
	for i, group := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := formatSectionGroup(group, w, opts, width); err != nil {
			return fmt.Errorf("formatting section %s: %w", group.title, err)
		}
	}

	return nil
}

// FormatSection writes a single parsed section's entries to the writer.
func FormatSection(s *ParsedSection, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if err := writeSectionHeader(s.Title(), s.Date, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, category := range Categories() {
		bucket := s.Entries[category]
		if len(bucket) == 0 {
			continue
		}
		if err := writeCategoryHeader(category, w, opts); err != nil {
			return err
		}
		for _, text := range bucket {
			if err := writeEntryLine(text, w, width); err != nil {
				return err
			}
		}
	}

	return nil
}

// sectionGroup holds consecutive entries belonging to one section.
type sectionGroup struct {
	title   string
	date    string
	entries []Entry
}

func groupEntriesBySection(entries []Entry) []sectionGroup {
	var groups []sectionGroup
	var current *sectionGroup

	for _, e := range entries {
		title := e.Section
		if e.Version != "" {
			title = e.Section + "@" + e.Version
		}
		if current == nil || current.title != title {
			if current != nil {
				groups = append(groups, *current)
			}
			current = &sectionGroup{title: title, date: e.Date}
		}
		current.entries = append(current.entries, e)
	}

	if current != nil {
		groups = append(groups, *current)
	}

	return groups
}

func formatSectionGroup(group sectionGroup, w io.Writer, opts FormatOptions, width int) error {
	if err := writeSectionHeader(group.title, group.date, w, opts); err != nil {
		return err
	}

	byCategory := make(map[string][]Entry)
	for _, e := range group.entries {
		byCategory[e.Category] = append(byCategory[e.Category], e)
	}

	for _, category := range Categories() {
		key := strings.ToLower(category.DisplayName())
		entries, ok := byCategory[key]
		if !ok {
			continue
		}
		if err := writeCategoryHeader(category, w, opts); err != nil {
			return err
		}
		for _, e := range entries {
			if err := writeEntryLine(e.Text, w, width); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeSectionHeader(title, date string, w io.Writer, opts FormatOptions) error {
	header := title
	if date != "" {
		header = fmt.Sprintf("%s (%s)", title, date)
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

func writeCategoryHeader(category CommitCategory, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintf(w, "\n### %s\n", category.DisplayName())
		return err
	}

	style := categoryStyles[category]
	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(category.DisplayName()))
	return err
}

func writeEntryLine(text string, w io.Writer, width int) error {
	line := "- " + text
	if runes := []rune(line); width > 0 && len(runes) > width {
		line = string(runes[:width-1]) + "…"
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

// resolveWidth returns the effective line width: the explicit value when
// set, the terminal width when stdout is a terminal, otherwise unlimited.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			return w
		}
	}
	return 0
}
