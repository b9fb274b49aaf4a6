package sitetask

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sitetask/sitetask/internal/fs"
	"github.com/sitetask/sitetask/pkg/cfg"
	"github.com/sitetask/sitetask/pkg/cfg/resolver"
)

// ConfigFile is the name of the project configuration file.
const ConfigFile = ".sitetask.toml"

// Project is a directory with a validated and resolved configuration.
type Project struct {
	// Root is the absolute path of the project directory, relative paths
	// in the configuration are relative to it.
	Root string
	Cfg  *cfg.Config
}

// FindProject searches for ConfigFile in dir and its parent directories and
// loads the first one that is found.
// If none exists an error wrapping os.ErrNotExist is returned.
func FindProject(dir string) (*Project, error) {
	path, err := fs.FindFileInParentDirs(dir, ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("%s not found in %s or its parent directories: %w", ConfigFile, dir, err)
	}

	return ProjectFromFile(path)
}

// ProjectFromFile loads the configuration file at path. The directory of the
// file is the project root.
func ProjectFromFile(path string) (*Project, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	config, err := cfg.FromFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration failed: %w", err)
	}

	return newProject(filepath.Dir(absPath), config, time.Now)
}

// DefaultProject returns a project for dir with the built-in configuration.
func DefaultProject(dir string) (*Project, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	return newProject(absDir, cfg.ExampleConfig(), time.Now)
}

func newProject(root string, config *cfg.Config, now func() time.Time) (*Project, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration failed: %w", err)
	}

	pkg, err := readPackageFile(root, config.PackageFilePath())
	if err != nil {
		return nil, err
	}

	if err := config.Resolve(resolver.NewGoTemplate(root, pkg, now)); err != nil {
		return nil, fmt.Errorf("resolving configuration placeholders failed: %w", err)
	}

	return &Project{Root: root, Cfg: config}, nil
}

// readPackageFile parses the JSON package file. If it does not exist, the
// package name defaults to the name of the root directory.
func readPackageFile(root, path string) (map[string]any, error) {
	content, err := os.ReadFile(fs.AbsPath(root, path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{"name": filepath.Base(root)}, nil
		}

		return nil, err
	}

	var result map[string]any
	if err := json.Unmarshal(content, &result); err != nil {
		return nil, fmt.Errorf("parsing %s failed: %w", path, err)
	}

	return result, nil
}

// Registry builds a Registry from the tasks of the configuration.
// Steps that name an action become action steps, all others task
// references. After all tasks are registered, they are resolved once to
// report references to undefined tasks before anything is executed.
func (p *Project) Registry() (*Registry, error) {
	actions := make(map[string]*Action, len(p.Cfg.Actions)+len(p.Cfg.Watches))

	for _, a := range p.Cfg.Actions {
		actions[a.Name] = NewActionFromCfg(a)
	}

	for _, w := range p.Cfg.Watches {
		wa := NewWatchAction(w)
		actions[wa.Name] = wa
	}

	registry := NewRegistry()

	for _, t := range p.Cfg.Tasks {
		steps := make([]Step, 0, len(t.Steps))

		for _, name := range t.Steps {
			if a, exist := actions[name]; exist {
				steps = append(steps, ActionStep(a))
				continue
			}

			steps = append(steps, TaskStep(name))
		}

		if err := registry.Register(t.Name, steps...); err != nil {
			return nil, err
		}
	}

	if err := registry.Validate(); err != nil {
		return nil, err
	}

	for _, w := range p.Cfg.Watches {
		if err := registry.ValidateWatchBinding(w); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// Plugins returns the plugins that execute the actions of the project.
func (p *Project) Plugins(
	runner ProcessRunner,
	newUploader func(context.Context) (Uploader, error),
	logFn func(format string, v ...any),
) map[PluginKind]Plugin {
	return map[PluginKind]Plugin{
		KindConcat:     NewConcatPlugin(p.Root),
		KindMinify:     NewMinifyPlugin(p.Root, runner),
		KindLint:       NewLintPlugin(p.Root, runner),
		KindShell:      NewShellPlugin(runner),
		KindCSSCompile: NewCSSCompilePlugin(runner),
		KindSiteBuild:  NewSiteBuildPlugin(runner),
		KindPublish:    NewPublishPlugin(p.Root, newUploader, logFn),
	}
}
