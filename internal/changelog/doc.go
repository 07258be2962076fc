// Package changelog turns classified commit summaries into a versioned,
// deduplicated CHANGELOG.md and merges new entries into an existing one.
//
// This package implements:
//   - Commit summary classification into categories and breaking flags
//   - Markdown parsing of previously generated documents
//   - Entry-level diffing against already recorded content
//   - Semantic version assignment per generated section
//   - Rendering and merging of new content on top of prior content
//
// The stored CHANGELOG.md is the single source of truth for what has been
// published: an entry is "already recorded" exactly when its full rendered
// text appears somewhere in the stored document.
package changelog
