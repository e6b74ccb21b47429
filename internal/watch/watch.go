// Package watch reports when the branches of a repository may have changed.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/thiagokokada/git-branches/internal/debounce"
)

const DefaultDelay = 350 * time.Millisecond

type Watcher struct {
	mu     sync.Mutex
	gitDir string
	// commonDir holds refs and packed-refs. It differs from gitDir in linked
	// worktrees.
	commonDir string
	fsw       *fsnotify.Watcher
	debounce  *debounce.Debouncer
	closed    bool
}

// New watches the git directory of the worktree at root. onChange runs on its
// own goroutine once events settle for delay.
func New(root string, delay time.Duration, onChange func()) (*Watcher, error) {
	gitDir, err := resolveGitDir(root)
	if err != nil {
		return nil, err
	}
	commonDir, err := resolveCommonDir(gitDir)
	if err != nil {
		return nil, err
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	w := &Watcher{
		gitDir:    gitDir,
		commonDir: commonDir,
		fsw:       fsw,
		debounce:  debounce.New(delay, onChange),
	}
	for _, path := range watchPaths(gitDir, commonDir) {
		if err := w.add(path); err != nil {
			return nil, errors.Join(err, fsw.Close())
		}
	}
	return w, nil
}

func (w *Watcher) GitDir() string {
	return w.gitDir
}

func (w *Watcher) add(path string) error {
	slog.Debug("adding path to FS watcher", slog.String("path", path))
	if err := w.fsw.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	return nil
}

// Run dispatches events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Error("fsnotify error", slog.Any("error", err))
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}
	if shouldIgnoreWatchPath(ev.Name) || !w.isRefPath(ev.Name) {
		return
	}
	slog.Debug("fsnotify event",
		slog.String("op", ev.Op.String()),
		slog.String("path", ev.Name),
	)
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			// Refs like feature/x live in directories that may not exist yet.
			for _, dir := range walkDirs(ev.Name) {
				if err := w.add(dir); err != nil {
					slog.Warn("watch new refs directory", slog.Any("error", err))
				}
			}
		}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.debounce.Trigger()
	}
}

// isRefPath reports whether a change at name can affect branches or HEAD.
func (w *Watcher) isRefPath(name string) bool {
	if rel, ok := relSlash(w.gitDir, name); ok && rel == "HEAD" {
		return true
	}
	rel, ok := relSlash(w.commonDir, name)
	if !ok {
		return false
	}
	switch rel {
	case "packed-refs", "refs":
		return true
	}
	return strings.HasPrefix(rel, "refs/")
}

func relSlash(base, name string) (string, bool) {
	rel, err := filepath.Rel(base, name)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	w.debounce.Stop()
	return w.fsw.Close()
}

// resolveGitDir follows the "gitdir:" file used by linked worktrees and
// submodules.
func resolveGitDir(root string) (string, error) {
	dotGit := filepath.Join(root, ".git")
	info, err := os.Stat(dotGit)
	if err != nil {
		return "", fmt.Errorf("find git directory: %w", err)
	}
	if info.IsDir() {
		return dotGit, nil
	}
	data, err := os.ReadFile(dotGit)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", dotGit, err)
	}
	target, ok := strings.CutPrefix(strings.TrimSpace(string(data)), "gitdir:")
	if !ok {
		return "", fmt.Errorf("%s: not a gitdir file", dotGit)
	}
	target = strings.TrimSpace(target)
	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}
	return filepath.Clean(target), nil
}

// resolveCommonDir reads the "commondir" file of a linked worktree's git
// directory. Without one, gitDir is its own common directory.
func resolveCommonDir(gitDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(gitDir, "commondir"))
	if errors.Is(err, fs.ErrNotExist) {
		return gitDir, nil
	}
	if err != nil {
		return "", fmt.Errorf("read commondir: %w", err)
	}
	dir := strings.TrimSpace(string(data))
	if dir == "" {
		return gitDir, nil
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(gitDir, dir)
	}
	return filepath.Clean(dir), nil
}

func watchPaths(gitDir, commonDir string) []string {
	paths := []string{gitDir}
	if commonDir != gitDir {
		paths = append(paths, commonDir)
	}
	refs := filepath.Join(commonDir, "refs")
	if info, err := os.Stat(refs); err == nil && info.IsDir() {
		paths = append(paths, walkDirs(refs)...)
	}
	return paths
}

func walkDirs(root string) []string {
	var dirs []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs
}

func shouldIgnoreWatchPath(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".lock" || ext == ".ipc"
}
