package sitetask

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sitetask/sitetask/pkg/cfg"
)

// Plugin executes actions of one PluginKind.
type Plugin interface {
	Run(ctx context.Context, a *Action) error
}

// Watcher runs tasks when files matching the bindings change.
// Watch blocks until ctx is canceled or watching fails.
type Watcher interface {
	Watch(ctx context.Context, bindings []*cfg.WatchBinding) error
}

// Reporter is notified about the progress of a pipeline run.
type Reporter interface {
	ActionStarted(taskName string, a *Action)
	ActionFinished(taskName string, a *Action, duration time.Duration, err error)
}

type nopReporter struct{}

func (nopReporter) ActionStarted(string, *Action) {}
func (nopReporter) ActionFinished(string, *Action, time.Duration, error) {}

// Executor runs the pipelines of tasks.
type Executor struct {
	registry *Registry
	plugins  map[PluginKind]Plugin
	watcher  Watcher
	reporter Reporter
}

// ExecutorOpt is an option for NewExecutor.
type ExecutorOpt func(*Executor)

// WithReporter sets the reporter that is notified about started and finished
// actions.
func WithReporter(r Reporter) ExecutorOpt {
	return func(e *Executor) {
		e.reporter = r
	}
}

// WithWatcher sets the watcher that executes watch actions.
func WithWatcher(w Watcher) ExecutorOpt {
	return func(e *Executor) {
		e.watcher = w
	}
}

// NewExecutor returns an Executor that runs tasks from registry with the
// given plugins.
func NewExecutor(registry *Registry, plugins map[PluginKind]Plugin, opts ...ExecutorOpt) *Executor {
	e := Executor{
		registry: registry,
		plugins:  plugins,
		reporter: nopReporter{},
	}

	for _, opt := range opts {
		opt(&e)
	}

	return &e
}

// SetWatcher sets the watcher that executes watch actions.
// It must be called before Run, the watcher usually needs the Executor
// itself to run the bound tasks.
func (e *Executor) SetWatcher(w Watcher) {
	e.watcher = w
}

// Run resolves the task and executes its actions sequentially.
// Execution stops at the first failing action, a PipelineError is returned.
// Effects of previously executed actions are not reverted.
//
// All watch actions of the pipeline are served by a single Watch call,
// that is started when the first watch action is reached.
func (e *Executor) Run(ctx context.Context, taskName string) error {
	pipeline, err := e.registry.Resolve(taskName)
	if err != nil {
		return err
	}

	for i, a := range pipeline {
		if a.Kind == KindWatch {
			return e.watch(ctx, taskName, pipeline[i:])
		}

		startTime := time.Now()
		e.reporter.ActionStarted(taskName, a)

		err := e.runAction(ctx, a)

		e.reporter.ActionFinished(taskName, a, time.Since(startTime), err)

		if err != nil {
			return &PipelineError{
				TaskName:     taskName,
				FailedAction: a.Name,
				Cause:        err,
			}
		}
	}

	return nil
}

func (e *Executor) runAction(ctx context.Context, a *Action) error {
	plugin, exist := e.plugins[a.Kind]
	if !exist {
		return fmt.Errorf("no plugin for %q actions available", a.Kind)
	}

	return plugin.Run(ctx, a)
}

func (e *Executor) watch(ctx context.Context, taskName string, pipeline []*Action) error {
	if err := validateWatchPosition(taskName, pipeline); err != nil {
		return err
	}

	first := pipeline[0]

	if e.watcher == nil {
		return &PipelineError{
			TaskName:     taskName,
			FailedAction: first.Name,
			Cause:        errors.New("watching is not supported"),
		}
	}

	bindings := make([]*cfg.WatchBinding, 0, len(pipeline))
	for _, a := range pipeline {
		bindings = append(bindings, a.Watch)
	}

	e.reporter.ActionStarted(taskName, first)
	startTime := time.Now()

	err := e.watcher.Watch(ctx, bindings)

	e.reporter.ActionFinished(taskName, first, time.Since(startTime), err)

	if err != nil {
		return &PipelineError{
			TaskName:     taskName,
			FailedAction: first.Name,
			Cause:        err,
		}
	}

	return nil
}
