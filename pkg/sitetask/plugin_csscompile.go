package sitetask

import (
	"context"
	"fmt"
	"slices"
)

// CSSCompilePlugin runs a CSS preprocessor.
type CSSCompilePlugin struct {
	runner ProcessRunner
}

func NewCSSCompilePlugin(runner ProcessRunner) *CSSCompilePlugin {
	return &CSSCompilePlugin{runner: runner}
}

func (p *CSSCompilePlugin) Run(ctx context.Context, a *Action) error {
	opts := a.CSSCompile
	if opts == nil {
		return fmt.Errorf("action %s has no css-compile options", a)
	}

	args := slices.Clone(opts.Command[1:])
	if opts.Config != "" {
		args = append(args, "--config", opts.Config)
	}

	return p.runner.Exec(ctx, &Process{
		Name:   opts.Command[0],
		Args:   args,
		Stdout: opts.Stdout,
	})
}
