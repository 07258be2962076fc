package changelog

import "github.com/joshiayush/changelog/internal/semver"

// NextVersion computes the version for a release containing the given
// category mix, bumping from base. Exactly one tier applies, checked in
// priority order:
//
//	breaking change          major+1, minor and patch reset
//	feat or add present      minor+1, patch reset
//	fix, perf or refactor    patch+1
//	anything else            unchanged (docs, test, deprecated only)
func NextVersion(base semver.Version, categories map[CommitCategory]bool, breaking bool) semver.Version {
	if breaking {
		return base.BumpMajor()
	}
	if categories[CategoryFeat] || categories[CategoryAdd] {
		return base.BumpMinor()
	}
	if categories[CategoryFix] || categories[CategoryPerf] || categories[CategoryRefactor] {
		return base.BumpPatch()
	}
	return base
}
