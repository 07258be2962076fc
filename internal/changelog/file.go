package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/joshiayush/changelog/internal/semver"
)

// LoadFile reads a stored changelog and returns its body with the top-level
// title stripped, ready for Parse. A missing file is an empty document, not
// an error.
func LoadFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading changelog %s: %w", path, err)
	}
	return StripTitle(string(content)), nil
}

// WriteFile stores the rendered document.
func WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing changelog %s: %w", path, err)
	}
	return nil
}

// StripTitle removes the leading "# Changelog" line and the blank separator
// after it, leaving the section body. Stripping both is what makes a no-op
// merge reproduce the stored file byte for byte: the writer puts them back.
// Content without the title passes through unchanged.
func StripTitle(content string) string {
	first, rest, found := strings.Cut(content, "\n")
	if !strings.HasPrefix(first, Title) {
		return content
	}
	if !found {
		return ""
	}
	if second, remainder, ok := strings.Cut(rest, "\n"); ok && second == "" {
		return remainder
	}
	if rest == "" {
		return ""
	}
	return rest
}

var (
	// legacyHeaderPattern splits a section header into its name and the
	// dash-plus-date remainder so a version can be spliced in without
	// disturbing the original spacing or dash style.
	legacyHeaderPattern = regexp.MustCompile(`^## (.+?)(\s+(?:—|--)\s+\d{4}-\d{2}-\d{2}\s*)$`)

	versionedNamePattern = regexp.MustCompile(`@v\d+\.\d+\.\d+$`)
)

// backfillVersions rewrites the stored body in place, appending "@v<seed>"
// to every section header that carries no version. Every other byte of the
// body is preserved.
func backfillVersions(body string, seed semver.Version) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		m := legacyHeaderPattern.FindStringSubmatch(line)
		if m == nil || versionedNamePattern.MatchString(m[1]) {
			continue
		}
		lines[i] = "## " + m[1] + "@" + seed.String() + m[2]
	}
	return strings.Join(lines, "\n")
}
