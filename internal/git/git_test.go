package git_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshiayush/changelog/internal/git"
)

// testRepo drives a real repository on disk through go-git.
type testRepo struct {
	t     *testing.T
	dir   string
	repo  *gogit.Repository
	wt    *gogit.Worktree
	ticks int
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &testRepo{t: t, dir: dir, repo: repo, wt: wt}
}

// commit writes the given files and commits them with the message. Commit
// times increase monotonically so committer-time ordering is deterministic.
func (r *testRepo) commit(message string, files map[string]string) plumbing.Hash {
	r.t.Helper()

	for name, content := range files {
		path := filepath.Join(r.dir, name)
		require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(r.t, os.WriteFile(path, []byte(content), 0o644))
		_, err := r.wt.Add(name)
		require.NoError(r.t, err)
	}

	r.ticks++
	when := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(r.ticks) * time.Minute)
	hash, err := r.wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{Name: "ayush", Email: "ayush@example.com", When: when},
	})
	require.NoError(r.t, err)
	return hash
}

func (r *testRepo) tag(name string, hash plumbing.Hash) {
	r.t.Helper()
	_, err := r.repo.CreateTag(name, hash, nil)
	require.NoError(r.t, err)
}

func (r *testRepo) remote(url string) {
	r.t.Helper()
	_, err := r.repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})
	require.NoError(r.t, err)
}

func (r *testRepo) open() *git.Repository {
	r.t.Helper()
	opened, err := git.Open(r.dir)
	require.NoError(r.t, err)
	return opened
}

func TestOpen_NotARepository(t *testing.T) {
	_, err := git.Open(t.TempDir())
	assert.Error(t, err)
}

func TestOpen_FromSubdirectory(t *testing.T) {
	r := newTestRepo(t)
	r.commit("feat: initial", map[string]string{"sub/file.txt": "x"})

	_, err := git.Open(filepath.Join(r.dir, "sub"))
	assert.NoError(t, err)
}

func TestRemoteURL(t *testing.T) {
	tests := map[string]struct {
		configured string
		expected   string
	}{
		"https passes through": {
			configured: "https://github.com/joshiayush/changelog",
			expected:   "https://github.com/joshiayush/changelog",
		},
		"trailing slash trimmed": {
			configured: "https://github.com/joshiayush/changelog/",
			expected:   "https://github.com/joshiayush/changelog",
		},
		"ssh rewritten to https": {
			configured: "git@github.com:joshiayush/changelog.git",
			expected:   "https://github.com/joshiayush/changelog",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := newTestRepo(t)
			r.commit("feat: initial", map[string]string{"a.txt": "x"})
			r.remote(tt.configured)

			url, err := r.open().RemoteURL()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, url)
		})
	}
}

func TestRemoteURL_NoOrigin(t *testing.T) {
	r := newTestRepo(t)
	r.commit("feat: initial", map[string]string{"a.txt": "x"})

	_, err := r.open().RemoteURL()
	assert.Error(t, err)
}

func TestNormalizeURL(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected string
	}{
		"ssh":            {"git@github.com:o/r.git", "https://github.com/o/r"},
		"ssh no suffix":  {"git@github.com:o/r", "https://github.com/o/r"},
		"https":          {"https://github.com/o/r", "https://github.com/o/r"},
		"trailing slash": {"https://github.com/o/r/", "https://github.com/o/r"},
		"other host":     {"https://gitlab.example.com/o/r", "https://gitlab.example.com/o/r"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, git.NormalizeURL(tt.input))
		})
	}
}

func TestTags(t *testing.T) {
	r := newTestRepo(t)
	h1 := r.commit("feat: one", map[string]string{"a.txt": "1"})
	h2 := r.commit("fix: two", map[string]string{"a.txt": "2"})
	r.tag("v0.1.0", h1)
	r.tag("v0.2.0", h2)
	r.tag("milestone", h2)

	tags, err := r.open().Tags()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"v0.1.0", "v0.2.0", "milestone"}, tags)
}

func TestTags_Empty(t *testing.T) {
	r := newTestRepo(t)
	r.commit("feat: initial", map[string]string{"a.txt": "x"})

	tags, err := r.open().Tags()
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestCommits_NewestFirstWithSummaries(t *testing.T) {
	r := newTestRepo(t)
	r.commit("feat: first\n\nlonger description body", map[string]string{"a.txt": "1"})
	r.commit("fix: second", map[string]string{"a.txt": "2"})

	records, err := r.open().Commits(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "fix: second", records[0].Summary)
	assert.Equal(t, "feat: first", records[1].Summary)
	assert.Equal(t, "ayush", records[0].Author)
	assert.Len(t, records[0].ShortID, 7)
	assert.Len(t, records[0].LongID, 40)
	assert.Equal(t, records[0].LongID[:7], records[0].ShortID)
}

func TestCommits_FollowPathFiltersHistory(t *testing.T) {
	r := newTestRepo(t)
	r.commit("feat: core change", map[string]string{"core/a.go": "1"})
	r.commit("docs: unrelated", map[string]string{"docs/readme.md": "1"})
	r.commit("fix: core again", map[string]string{"core/a.go": "2"})

	records, err := r.open().Commits(context.Background(), "core")
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "fix: core again", records[0].Summary)
	assert.Equal(t, "feat: core change", records[1].Summary)
}

func TestCommits_FollowPathIncludesRootCommit(t *testing.T) {
	r := newTestRepo(t)
	r.commit("feat: initial with core", map[string]string{
		"core/a.go": "1",
		"other.txt": "x",
	})

	records, err := r.open().Commits(context.Background(), "core")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "feat: initial with core", records[0].Summary)
}

func TestCommits_FollowPathExactFileMatch(t *testing.T) {
	r := newTestRepo(t)
	r.commit("feat: initial", map[string]string{"other.txt": "x"})
	r.commit("docs: readme", map[string]string{"README.md": "hello"})

	records, err := r.open().Commits(context.Background(), "README.md")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "docs: readme", records[0].Summary)
}

func TestCommits_FollowPathNoPrefixConfusion(t *testing.T) {
	// "core" must not match "corelib/".
	r := newTestRepo(t)
	r.commit("feat: initial", map[string]string{"corelib/a.go": "1"})

	records, err := r.open().Commits(context.Background(), "core")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCommits_CanceledContext(t *testing.T) {
	r := newTestRepo(t)
	r.commit("feat: initial", map[string]string{"a.txt": "x"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.open().Commits(ctx, "")
	assert.Error(t, err)
}
