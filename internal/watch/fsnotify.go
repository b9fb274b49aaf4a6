package watch

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sitetask/sitetask/internal/fs"
	"github.com/sitetask/sitetask/internal/log"
	"github.com/sitetask/sitetask/internal/set"
)

// FSNotifySource is a Source that watches a directory tree via fsnotify.
// Directories that are created while watching are added automatically.
// Events are collected until no further event happened for the debounce
// duration, then they are returned as one batch.
type FSNotifySource struct {
	root     string
	ignore   []string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *log.Logger

	pending   set.Set[string]
	lastEvent time.Time
}

// NewFSNotifySource starts watching root and all its subdirectories.
// Paths matching an ignore pattern are not reported, directories matching
// one are not watched.
func NewFSNotifySource(root string, ignore []string, debounce time.Duration, logger *log.Logger) (*FSNotifySource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	s := FSNotifySource{
		root:     root,
		ignore:   ignore,
		debounce: debounce,
		watcher:  watcher,
		logger:   logger,
		pending:  set.Set[string]{},
	}

	if err := s.addRecursive(root, nil); err != nil {
		watcher.Close()
		return nil, err
	}

	return &s, nil
}

func (s *FSNotifySource) Close() error {
	return s.watcher.Close()
}

// WatchList returns the watched directories.
func (s *FSNotifySource) WatchList() []string {
	return s.watcher.WatchList()
}

// addRecursive watches dir and its subdirectories that are not ignored.
// onFile is called with the relative path of every file that is found.
func (s *FSNotifySource) addRecursive(dir string, onFile func(rel string)) error {
	return filepath.WalkDir(dir, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			// removed while walking
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}

			return err
		}

		rel, err := s.relPath(p)
		if err != nil {
			return err
		}

		if !d.IsDir() {
			if onFile != nil && !s.ignored(rel) {
				onFile(rel)
			}

			return nil
		}

		if rel != "." && s.ignoredDir(rel) {
			s.logger.Debugf("watch: ignoring directory %s\n", rel)
			return filepath.SkipDir
		}

		if err := s.watcher.Add(p); err != nil {
			return fmt.Errorf("watching directory %s failed: %w", p, err)
		}

		return nil
	})
}

func (s *FSNotifySource) relPath(p string) (string, error) {
	rel, err := filepath.Rel(s.root, p)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(rel), nil
}

func (s *FSNotifySource) ignored(rel string) bool {
	matched, _, err := fs.MatchAny(s.ignore, rel)
	if err != nil {
		s.logger.Errorf("watch: %s\n", err)
		return false
	}

	return matched
}

// ignoredDir returns true if rel or the paths in it are ignored.
func (s *FSNotifySource) ignoredDir(rel string) bool {
	return s.ignored(rel) || s.ignored(path.Join(rel, "_"))
}

// Next returns the relative paths of files that changed, sorted.
func (s *FSNotifySource) Next(ctx context.Context) ([]string, error) {
	ticker := time.NewTicker(s.tickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case event, ok := <-s.watcher.Events:
			if !ok {
				return nil, errors.New("fsnotify event channel closed")
			}

			s.handleEvent(event)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return nil, errors.New("fsnotify error channel closed")
			}

			if errors.Is(err, fsnotify.ErrEventOverflow) {
				s.logger.Warnf("watch: %s, changes might have been missed\n", err)
				continue
			}

			return nil, err

		case <-ticker.C:
			if len(s.pending) == 0 || time.Since(s.lastEvent) < s.debounce {
				continue
			}

			return s.flush(), nil
		}
	}
}

func (s *FSNotifySource) tickInterval() time.Duration {
	const maxInterval = 50 * time.Millisecond

	if s.debounce > 0 && s.debounce/2 < maxInterval {
		return max(s.debounce/2, time.Millisecond)
	}

	return maxInterval
}

func (s *FSNotifySource) handleEvent(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}

	rel, err := s.relPath(event.Name)
	if err != nil {
		s.logger.Errorf("watch: %s\n", err)
		return
	}

	if s.ignored(rel) {
		return
	}

	if event.Has(fsnotify.Create) {
		isDir, err := fs.IsDir(event.Name)
		if err == nil && isDir {
			if s.ignoredDir(rel) {
				return
			}

			// files of a directory that was moved into the tree do not
			// cause events
			err := s.addRecursive(event.Name, func(file string) {
				s.pending.Add(file)
			})
			if err != nil {
				s.logger.Errorf("watch: %s\n", err)
			}
		}
	}

	s.logger.Debugf("watch: %s %s\n", event.Op, rel)

	s.pending.Add(rel)
	s.lastEvent = time.Now()
}

func (s *FSNotifySource) flush() []string {
	result := set.Sorted(s.pending)
	clear(s.pending)

	return result
}
