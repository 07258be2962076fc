package changelog

import (
	"fmt"
	"strings"
)

// DateLayout is the date format used in section headers.
const DateLayout = "2006-01-02"

// FormatEntry renders the changelog line for one commit.
//
// The rendered string is also the entry's deduplication identity: a
// previously written entry is recognized only when this exact text appears
// in the stored document. Changing the format (link style, author wording,
// the base URL) makes every previously published entry look new on the
// next run. That coupling is deliberate and this function is its contract.
func FormatEntry(record CommitRecord, url string) string {
	return fmt.Sprintf("%s by %s in [#%s](%s/commit/%s)",
		record.Summary, record.Author, record.ShortID, url, record.LongID)
}

// RenderedSection pairs a section title with its entries. The title already
// carries the version suffix when one was assigned, e.g. "core@v1.3.0".
type RenderedSection struct {
	Title string
	Data  SectionData
}

// Render serializes sections to markdown, one "## <title> — <date>" block
// per section. Non-empty categories appear as "### <Name>" headings in the
// fixed enumeration order, each followed by its entries in lexicographic
// order. Categories with no surviving entries are omitted entirely.
func Render(sections []RenderedSection, date string) string {
	var b strings.Builder

	for _, section := range sections {
		fmt.Fprintf(&b, "## %s — %s\n\n", section.Title, date)

		for _, category := range Categories() {
			bucket := section.Data.Entries[category]
			if len(bucket) == 0 {
				continue
			}
			fmt.Fprintf(&b, "### %s\n\n", category.DisplayName())
			for _, entry := range bucket {
				fmt.Fprintf(&b, "- %s\n", entry)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
