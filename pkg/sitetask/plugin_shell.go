package sitetask

import (
	"context"
	"fmt"
)

// ShellPlugin runs commands via the system shell.
type ShellPlugin struct {
	runner ProcessRunner
}

func NewShellPlugin(runner ProcessRunner) *ShellPlugin {
	return &ShellPlugin{runner: runner}
}

func (p *ShellPlugin) Run(ctx context.Context, a *Action) error {
	opts := a.Shell
	if opts == nil {
		return fmt.Errorf("action %s has no shell options", a)
	}

	proc := ShellProcess(opts.Command)
	proc.Dir = opts.Dir
	proc.Stdout = opts.Stdout

	return p.runner.Exec(ctx, proc)
}
