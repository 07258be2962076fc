package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshiayush/changelog/internal/semver"
)

func TestParse_VersionedSection(t *testing.T) {
	content := "## core@v1.2.3 — 2026-08-01\n" +
		"\n" +
		"### Feat\n" +
		"\n" +
		"- feat: add loader by ayush in [#abc1234](https://github.com/o/r/commit/abc)\n" +
		"\n" +
		"### Fix\n" +
		"\n" +
		"- fix: null check by ayush in [#def5678](https://github.com/o/r/commit/def)\n"

	doc := Parse(content)

	require.Len(t, doc.Sections, 1)
	section := doc.Sections[0]
	assert.Equal(t, "core", section.Name)
	require.NotNil(t, section.Version)
	assert.Equal(t, semver.Version{Major: 1, Minor: 2, Patch: 3}, *section.Version)
	assert.Equal(t, "2026-08-01", section.Date)
	assert.Len(t, section.Entries[CategoryFeat], 1)
	assert.Len(t, section.Entries[CategoryFix], 1)
	assert.False(t, section.HasBreakingChange)
	assert.Equal(t, content, doc.Body)
}

func TestParse_LegacySectionWithoutVersion(t *testing.T) {
	content := "## All Changes — 2025-11-09\n" +
		"\n" +
		"### Docs\n" +
		"\n" +
		"- docs: first pass by ayush in [#1234567](https://github.com/o/r/commit/123)\n"

	doc := Parse(content)

	require.Len(t, doc.Sections, 1)
	assert.Nil(t, doc.Sections[0].Version)
	assert.Equal(t, "All Changes", doc.Sections[0].Name)
}

func TestParse_DoubleDashDateSeparator(t *testing.T) {
	content := "## core@v0.1.0 -- 2025-01-15\n" +
		"\n" +
		"### Fix\n" +
		"\n" +
		"- fix: old dialect by ayush in [#aaa](https://github.com/o/r/commit/a)\n"

	doc := Parse(content)

	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "2025-01-15", doc.Sections[0].Date)
	require.NotNil(t, doc.Sections[0].Version)
	assert.Equal(t, semver.Version{Minor: 1}, *doc.Sections[0].Version)
}

func TestParse_MultipleSectionsKeepOrder(t *testing.T) {
	content := "## core@v1.1.0 — 2026-02-01\n" +
		"\n" +
		"### Feat\n" +
		"\n" +
		"- feat: newer by a in [#1](u/commit/1)\n" +
		"\n" +
		"## core@v1.0.0 — 2026-01-01\n" +
		"\n" +
		"### Feat\n" +
		"\n" +
		"- feat: older by a in [#2](u/commit/2)\n"

	doc := Parse(content)

	require.Len(t, doc.Sections, 2)
	assert.Equal(t, semver.Version{Major: 1, Minor: 1}, *doc.Sections[0].Version)
	assert.Equal(t, semver.Version{Major: 1}, *doc.Sections[1].Version)
}

func TestParse_UnknownCategorySkipsEntries(t *testing.T) {
	content := "## core@v1.0.0 — 2026-01-01\n" +
		"\n" +
		"### Chore\n" +
		"\n" +
		"- chore: should not appear by a in [#1](u/commit/1)\n" +
		"\n" +
		"### Fix\n" +
		"\n" +
		"- fix: should appear by a in [#2](u/commit/2)\n"

	doc := Parse(content)

	require.Len(t, doc.Sections, 1)
	assert.Equal(t, 1, doc.EntryCount())
	assert.Len(t, doc.Sections[0].Entries[CategoryFix], 1)
}

func TestParse_EntriesOutsideSectionIgnored(t *testing.T) {
	content := "- stray bullet before any section\n" +
		"\n" +
		"## core@v1.0.0 — 2026-01-01\n" +
		"\n" +
		"- stray bullet before any category\n" +
		"\n" +
		"### Fix\n" +
		"\n" +
		"- fix: kept by a in [#1](u/commit/1)\n"

	doc := Parse(content)

	require.Len(t, doc.Sections, 1)
	assert.Equal(t, 1, doc.EntryCount())
}

func TestParse_BreakingMarkerSetsFlag(t *testing.T) {
	content := "## core@v2.0.0 — 2026-01-01\n" +
		"\n" +
		"### Feat\n" +
		"\n" +
		"- feat!: drop legacy flag by a in [#1](u/commit/1)\n"

	doc := Parse(content)

	require.Len(t, doc.Sections, 1)
	assert.True(t, doc.Sections[0].HasBreakingChange)
}

func TestParse_EmptyContent(t *testing.T) {
	doc := Parse("")
	assert.Empty(t, doc.Sections)
	assert.Equal(t, "", doc.Body)
}

func TestParse_ProseAndBlankLinesIgnored(t *testing.T) {
	content := "Some introduction text.\n" +
		"\n" +
		"## core@v1.0.0 — 2026-01-01\n" +
		"\n" +
		"A note under the header.\n" +
		"\n" +
		"### Fix\n" +
		"\n" +
		"- fix: kept by a in [#1](u/commit/1)\n" +
		"\n" +
		"Trailing prose.\n"

	doc := Parse(content)

	require.Len(t, doc.Sections, 1)
	assert.Equal(t, 1, doc.EntryCount())
}
