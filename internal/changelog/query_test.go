package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryFixture() Document {
	return Parse("## core@v1.1.0 — 2026-02-01\n" +
		"\n" +
		"### Feat\n" +
		"\n" +
		"- feat: newer by a in [#1](u/commit/1)\n" +
		"\n" +
		"### Fix\n" +
		"\n" +
		"- fix: patch by a in [#2](u/commit/2)\n" +
		"\n" +
		"## core@v1.0.0 — 2026-01-01\n" +
		"\n" +
		"### Feat\n" +
		"\n" +
		"- feat: older by a in [#3](u/commit/3)\n" +
		"\n" +
		"## All Changes — 2025-11-09\n" +
		"\n" +
		"### Docs\n" +
		"\n" +
		"- docs: legacy by a in [#4](u/commit/4)\n")
}

func TestDocument_SectionByVersion(t *testing.T) {
	doc := queryFixture()

	tests := map[string]string{
		"v prefix":       "v1.0.0",
		"bare version":   "1.0.0",
		"uppercase skip": "V1.0.0",
	}

	for name, key := range tests {
		t.Run(name, func(t *testing.T) {
			section, err := doc.Section(key)
			require.NoError(t, err)
			assert.Equal(t, "core@v1.0.0", section.Title())
		})
	}
}

func TestDocument_SectionByName(t *testing.T) {
	doc := queryFixture()

	section, err := doc.Section("all changes")
	require.NoError(t, err)
	assert.Equal(t, "All Changes", section.Name)
	assert.Nil(t, section.Version)
}

func TestDocument_SectionByNameNewestWins(t *testing.T) {
	doc := queryFixture()

	section, err := doc.Section("core")
	require.NoError(t, err)
	require.NotNil(t, section.Version)
	assert.Equal(t, "v1.1.0", section.Version.String())
}

func TestDocument_SectionNotFound(t *testing.T) {
	doc := queryFixture()

	_, err := doc.Section("v9.9.9")

	var notFound *SectionNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "v9.9.9", notFound.Name)
	assert.Equal(t, []string{"core@v1.1.0", "core@v1.0.0", "All Changes"}, notFound.Available)
}

func TestDocument_AllEntries(t *testing.T) {
	doc := queryFixture()

	entries := doc.AllEntries()

	require.Len(t, entries, 4)
	assert.Equal(t, "feat: newer by a in [#1](u/commit/1)", entries[0].Text)
	assert.Equal(t, "feat", entries[0].Category)
	assert.Equal(t, "v1.1.0", entries[0].Version)
	assert.Equal(t, "2026-02-01", entries[0].Date)
	assert.Equal(t, "docs: legacy by a in [#4](u/commit/4)", entries[3].Text)
	assert.Empty(t, entries[3].Version)
}

func TestDocument_LastN(t *testing.T) {
	doc := queryFixture()

	assert.Len(t, doc.LastN(2), 2)
	assert.Len(t, doc.LastN(100), 4)
	assert.Empty(t, doc.LastN(0))
	assert.Empty(t, doc.LastN(-1))
}

func TestDocument_Export(t *testing.T) {
	doc := queryFixture()

	exported := doc.Export()

	require.Len(t, exported, 3)
	assert.Equal(t, "core", exported[0].Name)
	assert.Equal(t, "v1.1.0", exported[0].Version)
	assert.Equal(t, map[string][]string{
		"feat": {"feat: newer by a in [#1](u/commit/1)"},
		"fix":  {"fix: patch by a in [#2](u/commit/2)"},
	}, exported[0].Changes)
	assert.Empty(t, exported[2].Version)
	assert.Equal(t, "2025-11-09", exported[2].Date)
}
