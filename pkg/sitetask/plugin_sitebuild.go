package sitetask

import (
	"context"
	"fmt"
	"slices"
)

// SiteBuildPlugin runs a Jekyll compatible static site generator.
// With the serve option the action runs until the generator terminates or
// ctx is canceled.
type SiteBuildPlugin struct {
	runner ProcessRunner
}

func NewSiteBuildPlugin(runner ProcessRunner) *SiteBuildPlugin {
	return &SiteBuildPlugin{runner: runner}
}

func (p *SiteBuildPlugin) Run(ctx context.Context, a *Action) error {
	opts := a.SiteBuild
	if opts == nil {
		return fmt.Errorf("action %s has no site-build options", a)
	}

	args := slices.Clone(opts.Command[1:])
	if opts.Serve {
		args = append(args, "serve")
		if opts.Watch {
			args = append(args, "--watch")
		}
	} else {
		args = append(args, "build")
	}

	if opts.Src != "" {
		args = append(args, "--source", opts.Src)
	}

	if opts.Config != "" {
		args = append(args, "--config", opts.Config)
	}

	return p.runner.Exec(ctx, &Process{
		Name:   opts.Command[0],
		Args:   args,
		Stdout: opts.Stdout,
	})
}
