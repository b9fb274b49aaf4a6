package cfg

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/sitetask/sitetask/internal/set"
)

const (
	// Version identifies the format of the configuration files that the
	// package can parse. Whenever an incompatible change is made, the
	// Version number is increased.
	Version int = 1

	// DefaultPackageFile is the package_file value that is used when it is
	// unset.
	DefaultPackageFile = "package.json"
)

// Config is the content of a sitetask configuration file.
type Config struct {
	ConfigVersion int    `toml:"config_version" comment:"Internal field, version of the configuration format"`
	PackageFile   string `toml:"package_file" comment:"JSON file whose content is accessible in templates as .Pkg, e.g. {{ .Pkg.name }}"`

	Watcher Watcher         `toml:"Watcher"`
	Actions []*Action       `toml:"Action"`
	Tasks   []*Task         `toml:"Task"`
	Watches []*WatchBinding `toml:"Watch"`

	filePath string
}

// FromFile reads and parses the configuration file.
// Unknown fields are rejected.
func FromFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config

	dec := toml.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&config); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return nil, fmt.Errorf("%s: %s", path, strictErr.String())
		}

		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, fmt.Errorf("%s:%d:%d: %w", path, row, col, err)
		}

		return nil, fmt.Errorf("%s: %w", path, err)
	}

	config.filePath = path

	return &config, nil
}

// ToFile writes the configuration to filepath.
func (c *Config) ToFile(filepath string, opts ...ToFileOpt) error {
	return toFile(c, filepath, opts...)
}

// FilePath returns the path of the file the config was read from.
// It is empty for configurations that were not loaded from a file.
func (c *Config) FilePath() string {
	return c.filePath
}

// PackageFilePath returns PackageFile or DefaultPackageFile when it is
// unset.
func (c *Config) PackageFilePath() string {
	if c.PackageFile == "" {
		return DefaultPackageFile
	}

	return c.PackageFile
}

// Validate validates the configuration.
// Whether steps refer to existing tasks and the task graph is acyclic is
// not checked, this is done when the tasks are registered.
func (c *Config) Validate() error {
	if c.ConfigVersion == 0 {
		return newFieldError("can not be unset or 0", "config_version")
	}

	if c.ConfigVersion != Version {
		return fmt.Errorf("incompatible configuration file\n"+
			"config_version value is %d, expecting version: %d", c.ConfigVersion, Version)
	}

	if err := c.Watcher.validate(); err != nil {
		return fieldErrorWrap(err, "Watcher")
	}

	actionNames := make(set.Set[string], len(c.Actions)+len(c.Watches))

	for _, a := range c.Actions {
		if err := a.validate(); err != nil {
			return fieldErrorWrap(err, elementPathWithID("Action", a.Name))
		}

		if actionNames.Contains(a.Name) {
			return newFieldError(
				fmt.Sprintf("multiple actions with name '%s' exist, action names must be unique", a.Name),
				elementPathWithID("Action", a.Name),
			)
		}
		actionNames.Add(a.Name)
	}

	for _, w := range c.Watches {
		if err := w.validate(); err != nil {
			return fieldErrorWrap(err, elementPathWithID("Watch", w.Name))
		}

		if actionNames.Contains(w.ActionName()) {
			return newFieldError(
				fmt.Sprintf("action name '%s' is already defined", w.ActionName()),
				elementPathWithID("Watch", w.Name),
			)
		}
		actionNames.Add(w.ActionName())
	}

	taskNames := make(set.Set[string], len(c.Tasks))
	for _, t := range c.Tasks {
		if err := t.validate(); err != nil {
			return fieldErrorWrap(err, elementPathWithID("Task", t.Name))
		}

		if actionNames.Contains(t.Name) {
			return newFieldError(
				fmt.Sprintf("an action with name '%s' exists, task names must differ from action names", t.Name),
				elementPathWithID("Task", t.Name),
			)
		}

		taskNames.Add(t.Name)
	}

	for _, w := range c.Watches {
		if !taskNames.Contains(w.Task) {
			return newFieldError(
				fmt.Sprintf("task %q does not exist", w.Task),
				elementPathWithID("Watch", w.Name), "task",
			)
		}
	}

	return nil
}

// Resolve replaces placeholders in the string values of actions and watch
// bindings by calling resolver.
func (c *Config) Resolve(resolver Resolver) error {
	for _, a := range c.Actions {
		if err := a.resolve(resolver); err != nil {
			return fieldErrorWrap(err, elementPathWithID("Action", a.Name))
		}
	}

	for _, w := range c.Watches {
		if err := w.resolve(resolver); err != nil {
			return fieldErrorWrap(err, elementPathWithID("Watch", w.Name))
		}
	}

	return nil
}

// ActionByName returns the action with the given name or nil.
func (c *Config) ActionByName(name string) *Action {
	for _, a := range c.Actions {
		if a.Name == name {
			return a
		}
	}

	return nil
}

// WatchByName returns the watch binding with the given name or nil.
func (c *Config) WatchByName(name string) *WatchBinding {
	for _, w := range c.Watches {
		if w.Name == name {
			return w
		}
	}

	return nil
}
