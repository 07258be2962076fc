// Package semver implements the three-part semantic version carried by
// changelog section headers and git tags. Versions are immutable values;
// bump methods return new values rather than mutating in place.
package semver

import (
	"fmt"
	"regexp"
	"strconv"
)

// Version is a major.minor.patch triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Initial is the version floor used when no parseable tag exists.
var Initial = Version{Major: 0, Minor: 1, Patch: 0}

var versionPattern = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)$`)

// Parse reads a version string of the form vMAJOR.MINOR.PATCH.
// The leading "v" is optional.
func Parse(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("invalid version string: %q", s)
	}

	major, err := strconv.Atoi(m[1])
	if err != nil {
		return Version{}, fmt.Errorf("invalid major component in %q: %w", s, err)
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return Version{}, fmt.Errorf("invalid minor component in %q: %w", s, err)
	}
	patch, err := strconv.Atoi(m[3])
	if err != nil {
		return Version{}, fmt.Errorf("invalid patch component in %q: %w", s, err)
	}

	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// String returns the canonical text form, e.g. "v1.2.3".
func (v Version) String() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0, or 1 depending on whether v is lower than, equal
// to, or higher than o. Components are compared major first, then minor,
// then patch.
func (v Version) Compare(o Version) int {
	if v.Major != o.Major {
		return compareInt(v.Major, o.Major)
	}
	if v.Minor != o.Minor {
		return compareInt(v.Minor, o.Minor)
	}
	return compareInt(v.Patch, o.Patch)
}

// Less reports whether v orders before o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

// BumpMajor returns the next major version. Minor and patch reset to zero.
func (v Version) BumpMajor() Version {
	return Version{Major: v.Major + 1}
}

// BumpMinor returns the next minor version. Patch resets to zero.
func (v Version) BumpMinor() Version {
	return Version{Major: v.Major, Minor: v.Minor + 1}
}

// BumpPatch returns the next patch version.
func (v Version) BumpPatch() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
}

// DetectSeed returns the highest version among the given tag names, or
// Initial when none of them parse. Tags that are not versions (release
// names, CI markers) are skipped rather than failing the run.
func DetectSeed(tags []string) Version {
	seed := Initial
	found := false

	for _, tag := range tags {
		v, err := Parse(tag)
		if err != nil {
			continue
		}
		if !found || seed.Less(v) {
			seed = v
			found = true
		}
	}

	return seed
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
