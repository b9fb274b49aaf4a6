package sitetask

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/sitetask/sitetask/internal/fs"
)

// LintPlugin runs a JSHint compatible linter.
// The globals of the action are passed via a temporary config file.
type LintPlugin struct {
	root   string
	runner ProcessRunner
}

func NewLintPlugin(root string, runner ProcessRunner) *LintPlugin {
	return &LintPlugin{root: root, runner: runner}
}

type jshintConfig struct {
	Globals map[string]bool `json:"globals,omitempty"`
}

func (p *LintPlugin) Run(ctx context.Context, a *Action) error {
	opts := a.Lint
	if opts == nil {
		return fmt.Errorf("action %s has no lint options", a)
	}

	files, err := p.files(opts.Files)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files match %v", opts.Files)
	}

	cfgPath, err := writeJSHintConfig(opts.Globals)
	if err != nil {
		return err
	}
	defer os.Remove(cfgPath)

	args := make([]string, 0, len(opts.Command)+len(files)+1)
	args = append(args, opts.Command[1:]...)
	args = append(args, "--config", cfgPath)
	args = append(args, files...)

	return p.runner.Exec(ctx, &Process{Name: opts.Command[0], Args: args, Stdout: true})
}

// files resolves the glob patterns to sorted, deduplicated paths relative to
// the project root.
func (p *LintPlugin) files(patterns []string) ([]string, error) {
	var result []string

	for _, pattern := range patterns {
		paths, err := fs.FileGlob(fs.AbsPath(p.root, pattern))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}

			return nil, fmt.Errorf("resolving %q failed: %w", pattern, err)
		}

		for _, path := range paths {
			rel, err := filepath.Rel(p.root, path)
			if err != nil {
				return nil, err
			}

			result = append(result, rel)
		}
	}

	slices.Sort(result)

	return slices.Compact(result), nil
}

func writeJSHintConfig(globals map[string]bool) (string, error) {
	data, err := json.Marshal(jshintConfig{Globals: globals})
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", "sitetask-jshintrc-*.json")
	if err != nil {
		return "", err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing lint config failed: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing lint config failed: %w", err)
	}

	return f.Name(), nil
}
