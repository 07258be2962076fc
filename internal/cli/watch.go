package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of reference writes a single git
// operation produces into one regeneration.
const watchDebounce = 500 * time.Millisecond

// watchGenerate keeps regenerating the changelog whenever the repository's
// HEAD or branch references change, until the context is canceled.
// Regeneration failures are reported and watching continues.
func watchGenerate(ctx context.Context, repoPath string, errOut io.Writer, regenerate func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	gitDir := filepath.Join(repoPath, ".git")
	if err := watcher.Add(gitDir); err != nil {
		return fmt.Errorf("watching %s: %w", gitDir, err)
	}
	// Branch updates land under refs/heads; ignore the error since packed
	// refs repositories may not have the directory.
	watcher.Add(filepath.Join(gitDir, "refs", "heads"))

	fmt.Fprintf(errOut, "Watching %s for new commits (Ctrl-C to stop)\n", gitDir)

	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				timer.Reset(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching repository: %w", err)

		case <-timer.C:
			if err := regenerate(); err != nil {
				fmt.Fprintf(errOut, "regeneration failed: %v\n", err)
			}
		}
	}
}
