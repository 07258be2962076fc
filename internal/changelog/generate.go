package changelog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joshiayush/changelog/internal/semver"
)

// Title is the fixed top-level heading of every generated document.
const Title = "# Changelog"

// RepositoryScope is the section name used for the unscoped
// whole-repository run.
const RepositoryScope = "All Changes"

// CommitSource supplies raw history and tags for generation.
// *git.Repository implements it.
type CommitSource interface {
	// Commits returns every commit reachable from HEAD, newest first.
	// When followPath is non-empty only commits touching that path are
	// returned.
	Commits(ctx context.Context, followPath string) ([]CommitRecord, error)

	// Tags returns all tag names, in no particular order.
	Tags() ([]string, error)
}

// ScopeSection is one scope's accumulated entries for a run.
type ScopeSection struct {
	Name string
	Data SectionData
}

// Generator runs the changelog pipeline: collect and classify commits per
// scope, drop entries the stored document already records, assign a version
// to each surviving scope, and merge the rendered result on top of the
// prior content.
//
// A Generator is safe to run repeatedly; a run with no new commits
// reproduces the stored document byte for byte. Two concurrent runs against
// the same document are not coordinated and must be serialized by the
// caller.
type Generator struct {
	Source CommitSource
	URL    string   // base repository URL used in rendered entry links
	Follow []string // path scopes; empty means one whole-repository scope

	// Now supplies the section date; defaults to time.Now. Overridable
	// for tests.
	Now func() time.Time
}

// Run executes the pipeline against the prior document body (title already
// stripped, see StripTitle) and returns the complete new document text.
func (g *Generator) Run(ctx context.Context, prior string) (string, error) {
	scopes, err := g.Collect(ctx)
	if err != nil {
		return "", err
	}

	tags, err := g.Source.Tags()
	if err != nil {
		return "", fmt.Errorf("listing tags: %w", err)
	}

	return Merge(scopes, Parse(prior), tags, g.date()), nil
}

// Collect walks history for every scope and classifies each commit into
// rendered entries. Scopes are collected concurrently when several follow
// paths are configured; the returned order always matches the configured
// scope order, which is what version assignment later chains over.
func (g *Generator) Collect(ctx context.Context) ([]ScopeSection, error) {
	if len(g.Follow) == 0 {
		data, err := g.collectScope(ctx, "")
		if err != nil {
			return nil, err
		}
		return []ScopeSection{{Name: RepositoryScope, Data: data}}, nil
	}

	sections := make([]ScopeSection, len(g.Follow))
	eg, ctx := errgroup.WithContext(ctx)
	for i, path := range g.Follow {
		eg.Go(func() error {
			data, err := g.collectScope(ctx, path)
			if err != nil {
				return err
			}
			sections[i] = ScopeSection{Name: path, Data: data}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return sections, nil
}

func (g *Generator) collectScope(ctx context.Context, followPath string) (SectionData, error) {
	records, err := g.Source.Commits(ctx, followPath)
	if err != nil {
		return SectionData{}, fmt.Errorf("collecting commits for scope %q: %w", followPath, err)
	}

	data := NewSectionData()
	for _, record := range records {
		category, breaking, ok := Classify(record.Summary)
		if !ok {
			continue
		}
		data.Add(category, FormatEntry(record, g.URL))
		if breaking {
			data.HasBreakingChange = true
		}
	}
	return data, nil
}

func (g *Generator) date() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return now().UTC().Format(DateLayout)
}

// VersionedScope is a surviving scope with the version its section will
// carry.
type VersionedScope struct {
	Name    string
	Version semver.Version
	Data    SectionData
}

// Plan filters the collected scopes against the prior document and assigns
// a version to each survivor.
//
// Entries already recorded anywhere in prior are dropped; scopes left empty
// are omitted. If the prior document's newest section has no version, every
// stored section is backfilled with the seed detected from tags (per-section
// history cannot be reconstructed from text, so legacy sections collapse
// onto one version) and the seed becomes the bump baseline. A document with
// no prior sections gives the first surviving scope the seed verbatim; each
// subsequent scope bumps from the version assigned before it, in scope
// order.
//
// The returned body is the prior content to write below the new sections,
// backfilled when the legacy rule fired and byte-identical to the stored
// body otherwise.
func Plan(scopes []ScopeSection, prior Document, tags []string) ([]VersionedScope, string) {
	known := Flatten(prior.Sections)

	var surviving []ScopeSection
	for _, scope := range scopes {
		filtered := FilterNew(scope.Data, known)
		if filtered.IsEmpty() {
			continue
		}
		surviving = append(surviving, ScopeSection{Name: scope.Name, Data: filtered})
	}

	seed := semver.DetectSeed(tags)
	body := prior.Body

	var baseline *semver.Version
	if len(prior.Sections) > 0 {
		newest := prior.Sections[0]
		if newest.Version == nil {
			body = backfillVersions(body, seed)
			baseline = &seed
		} else {
			baseline = newest.Version
		}
	}

	versioned := make([]VersionedScope, 0, len(surviving))
	for _, scope := range surviving {
		var v semver.Version
		if baseline == nil {
			v = seed
		} else {
			v = NextVersion(*baseline, scope.Data.CategorySet(), scope.Data.HasBreakingChange)
		}
		baseline = &v
		versioned = append(versioned, VersionedScope{Name: scope.Name, Version: v, Data: scope.Data})
	}

	return versioned, body
}

// Merge reconciles freshly collected scopes with the prior document and
// returns the complete new document text: the fixed title, the rendered new
// sections, then the (possibly backfilled) prior content. When every scope
// filters to empty the merge is a no-op and the output reproduces the
// stored document.
func Merge(scopes []ScopeSection, prior Document, tags []string, date string) string {
	versioned, body := Plan(scopes, prior, tags)

	rendered := make([]RenderedSection, 0, len(versioned))
	for _, scope := range versioned {
		rendered = append(rendered, RenderedSection{
			Title: scope.Name + "@" + scope.Version.String(),
			Data:  scope.Data,
		})
	}

	var b strings.Builder
	b.WriteString(Title)
	b.WriteString("\n\n")
	if len(rendered) > 0 {
		b.WriteString(Render(rendered, date))
	}
	b.WriteString(body)
	return b.String()
}
