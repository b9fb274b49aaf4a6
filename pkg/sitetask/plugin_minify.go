package sitetask

import (
	"context"
	"fmt"
	"os"

	"github.com/sitetask/sitetask/internal/fs"
)

// MinifyPlugin runs an external JavaScript minifier and prepends a banner to
// its output.
type MinifyPlugin struct {
	root   string
	runner ProcessRunner
}

func NewMinifyPlugin(root string, runner ProcessRunner) *MinifyPlugin {
	return &MinifyPlugin{root: root, runner: runner}
}

func (p *MinifyPlugin) Run(ctx context.Context, a *Action) error {
	opts := a.Minify
	if opts == nil {
		return fmt.Errorf("action %s has no minify options", a)
	}

	args := make([]string, 0, len(opts.Command)+len(opts.Src)+1)
	args = append(args, opts.Command[1:]...)
	args = append(args, opts.Src...)
	args = append(args, "-o", opts.Dest)

	err := p.runner.Exec(ctx, &Process{Name: opts.Command[0], Args: args})
	if err != nil {
		return err
	}

	if opts.Banner == "" {
		return nil
	}

	dest := fs.AbsPath(p.root, opts.Dest)

	content, err := os.ReadFile(dest)
	if err != nil {
		return fmt.Errorf("reading minified file failed: %w", err)
	}

	err = fs.WriteFile(dest, append([]byte(opts.Banner), content...), 0o644)
	if err != nil {
		return fmt.Errorf("writing banner to %s failed: %w", opts.Dest, err)
	}

	return nil
}
