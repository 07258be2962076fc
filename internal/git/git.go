// Package git supplies the repository collaborators for changelog
// generation: commit history per scope, tag names, and the remote URL used
// to build entry links. It uses the go-git library exclusively; no git CLI
// installation is required.
package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/joshiayush/changelog/internal/changelog"
)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default, it's a no-op. Set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

const (
	sshPrefix   = "git@github.com:"
	sshSuffix   = ".git"
	httpsPrefix = "https://github.com/"

	shortHashLen = 7
)

// Repository wraps an opened git repository.
type Repository struct {
	repo *git.Repository
}

// Open opens the repository at path, traversing up the directory tree to
// find the repository root. An empty path means the current directory.
func Open(path string) (*Repository, error) {
	if path == "" {
		path = "."
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return &Repository{repo: repo}, nil
}

// RemoteURL returns the URL of the "origin" remote, rewritten to HTTPS form
// when configured over SSH and with any trailing slash trimmed.
func (r *Repository) RemoteURL() (string, error) {
	remote, err := r.repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("looking up origin remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("origin remote has no URL")
	}

	url := NormalizeURL(urls[0])
	logDebug("[git] RemoteURL: %s", url)
	return url, nil
}

// NormalizeURL rewrites an SSH GitHub URL (git@github.com:owner/repo.git)
// to its HTTPS form and trims a trailing slash.
func NormalizeURL(url string) string {
	if strings.HasPrefix(url, sshPrefix) {
		url = httpsPrefix + strings.TrimSuffix(strings.TrimPrefix(url, sshPrefix), sshSuffix)
	}
	return strings.TrimSuffix(url, "/")
}

// Tags returns the short names of every tag in the repository, in no
// particular order.
func (r *Repository) Tags() ([]string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	logDebug("[git] Tags: found %d", len(tags))
	return tags, nil
}

// Commits walks history from HEAD in committer-time order, newest first,
// and returns one record per commit. When followPath is non-empty, commits
// whose diff against their first parent does not touch the path are
// skipped. Commits with an empty message are skipped.
func (r *Repository) Commits(ctx context.Context, followPath string) ([]changelog.CommitRecord, error) {
	iter, err := r.repo.Log(&git.LogOptions{Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}
	defer iter.Close()

	var records []changelog.CommitRecord
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if followPath != "" {
			touched, err := commitTouchesPath(ctx, c, followPath)
			if err != nil {
				return err
			}
			if !touched {
				return nil
			}
		}

		summary, _, _ := strings.Cut(c.Message, "\n")
		summary = strings.TrimSpace(summary)
		if summary == "" {
			return nil
		}

		hash := c.Hash.String()
		records = append(records, changelog.CommitRecord{
			Summary: summary,
			ShortID: hash[:shortHashLen],
			LongID:  hash,
			Author:  c.Author.Name,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading commits: %w", err)
	}

	logDebug("[git] Commits: %d records for scope %q", len(records), followPath)
	return records, nil
}

// commitTouchesPath reports whether the commit changed anything at or under
// path, comparing its tree against the first parent's. Root commits are
// compared against the empty tree, so every file they introduce counts.
func commitTouchesPath(ctx context.Context, c *object.Commit, path string) (bool, error) {
	tree, err := c.Tree()
	if err != nil {
		return false, fmt.Errorf("getting tree of %s: %w", c.Hash, err)
	}

	if c.NumParents() == 0 {
		touched := false
		err := tree.Files().ForEach(func(f *object.File) error {
			if underPath(f.Name, path) {
				touched = true
				return storer.ErrStop
			}
			return nil
		})
		if err != nil {
			return false, fmt.Errorf("walking tree of %s: %w", c.Hash, err)
		}
		return touched, nil
	}

	parent, err := c.Parent(0)
	if err != nil {
		return false, fmt.Errorf("getting parent of %s: %w", c.Hash, err)
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return false, fmt.Errorf("getting parent tree of %s: %w", c.Hash, err)
	}

	changes, err := parentTree.DiffContext(ctx, tree)
	if err != nil {
		return false, fmt.Errorf("diffing trees of %s: %w", c.Hash, err)
	}

	for _, change := range changes {
		if underPath(change.From.Name, path) || underPath(change.To.Name, path) {
			return true, nil
		}
	}
	return false, nil
}

// underPath reports whether file is path itself or lies inside it.
func underPath(file, path string) bool {
	if file == "" {
		return false
	}
	path = strings.TrimSuffix(path, "/")
	return file == path || strings.HasPrefix(file, path+"/")
}
