// Package watch runs tasks when files change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sitetask/sitetask/internal/fs"
	"github.com/sitetask/sitetask/internal/log"
	"github.com/sitetask/sitetask/internal/routines"
	"github.com/sitetask/sitetask/pkg/cfg"
)

// Source reports changed files.
type Source interface {
	// Next blocks until files changed and returns their paths, relative to
	// the watched directory and slash separated.
	Next(ctx context.Context) ([]string, error)
	Close() error
}

// TaskRunner runs a task by name.
type TaskRunner interface {
	Run(ctx context.Context, taskName string) error
}

// Dispatcher runs the tasks of watch bindings when files matching them
// change.
//
// Every binding has its own run loop. Changes that happen while the task
// of a binding runs are coalesced, the task runs at most once more after
// the current run finished.
type Dispatcher struct {
	newSource func() (Source, error)
	runner    TaskRunner
	printf    func(format string, v ...any)
	logger    *log.Logger
}

// Opt is an option for NewDispatcher.
type Opt func(*Dispatcher)

// WithPrintf sets the function that prints which task runs because of
// which change.
func WithPrintf(printf func(format string, v ...any)) Opt {
	return func(d *Dispatcher) {
		d.printf = printf
	}
}

// WithLogger sets the logger that receives debug messages and errors of
// task runs.
func WithLogger(logger *log.Logger) Opt {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// NewDispatcher returns a Dispatcher. newSource is called once per Watch
// call.
func NewDispatcher(newSource func() (Source, error), runner TaskRunner, opts ...Opt) *Dispatcher {
	d := Dispatcher{
		newSource: newSource,
		runner:    runner,
		printf:    func(string, ...any) {},
		logger:    log.StdLogger,
	}

	for _, opt := range opts {
		opt(&d)
	}

	return &d
}

type binding struct {
	*cfg.WatchBinding
	trigger chan string
}

// Watch runs the tasks of the bindings when files change until ctx is
// canceled. Failing tasks are logged and do not terminate watching.
// It returns nil when ctx was canceled and an error when the source fails.
func (d *Dispatcher) Watch(ctx context.Context, bindings []*cfg.WatchBinding) error {
	if len(bindings) == 0 {
		return errors.New("no watch bindings")
	}

	src, err := d.newSource()
	if err != nil {
		return fmt.Errorf("starting file watcher failed: %w", err)
	}
	defer src.Close()

	loopCtx, cancel := context.WithCancel(ctx)
	pool := routines.NewPool(uint(len(bindings)))
	defer func() {
		cancel()
		pool.Wait()
	}()

	loops := make([]*binding, 0, len(bindings))
	for _, wb := range bindings {
		b := binding{
			WatchBinding: wb,
			trigger:      make(chan string, 1),
		}
		loops = append(loops, &b)

		pool.Queue(func() {
			d.runLoop(loopCtx, &b)
		})

		d.logger.Debugf("watch: %s\n", wb)
	}

	d.printf("Watching for changes, press Ctrl+C to stop\n")

	for {
		paths, err := src.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("watching files failed: %w", err)
		}

		if err := d.dispatch(loops, paths); err != nil {
			return err
		}
	}
}

func (d *Dispatcher) dispatch(loops []*binding, paths []string) error {
	for _, b := range loops {
		changed, err := matchingPath(b.WatchBinding, paths)
		if err != nil {
			return fmt.Errorf("%s: %w", b.ActionName(), err)
		}

		if changed == "" {
			continue
		}

		select {
		case b.trigger <- changed:
			d.logger.Debugf("watch:%s: %s changed, task %s scheduled\n", b.Name, changed, b.Task)
		default:
			d.logger.Debugf("watch:%s: %s changed, task %s is already scheduled\n", b.Name, changed, b.Task)
		}
	}

	return nil
}

func (d *Dispatcher) runLoop(ctx context.Context, b *binding) {
	for {
		var changed string

		select {
		case <-ctx.Done():
			return
		case changed = <-b.trigger:
		}

		runID := uuid.NewString()
		d.logger.Debugf("%s: run %s of task %s started\n", b.ActionName(), runID, b.Task)
		d.printf(">> %s changed, running task %s\n", changed, b.Task)

		if err := d.runner.Run(ctx, b.Task); err != nil {
			if ctx.Err() != nil {
				return
			}

			d.logger.Errorf("%s: run %s failed: %s\n", b.ActionName(), runID, err)
			continue
		}

		d.logger.Debugf("%s: run %s finished\n", b.ActionName(), runID)
		d.printf(">> task %s finished\n", b.Task)
	}
}

// matchingPath returns the first path that matches a file pattern of b and
// none of its exclude patterns. If none matches an empty string is
// returned.
func matchingPath(b *cfg.WatchBinding, paths []string) (string, error) {
	for _, path := range paths {
		matched, err := Matches(b, path)
		if err != nil {
			return "", err
		}

		if matched {
			return path, nil
		}
	}

	return "", nil
}

// Matches returns true if path matches a file pattern of b and none of its
// exclude patterns.
func Matches(b *cfg.WatchBinding, path string) (bool, error) {
	path = strings.TrimPrefix(path, "./")

	matched, _, err := fs.MatchAny(b.Files, path)
	if err != nil || !matched {
		return false, err
	}

	excluded, _, err := fs.MatchAny(b.Exclude, path)
	if err != nil {
		return false, err
	}

	return !excluded, nil
}
