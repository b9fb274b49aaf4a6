package cfg

import (
	"fmt"
	"time"
)

// DefaultDebounce is the debounce duration that is used when
// Watcher.Debounce is empty.
const DefaultDebounce = 200 * time.Millisecond

// Watcher is the [Watcher] section, it contains settings that apply to all
// watch bindings.
type Watcher struct {
	Debounce string   `toml:"debounce" comment:"Changes that happen within this duration are collected into one batch.\n Format: Go duration string, e.g. 200ms."`
	Ignore   []string `toml:"ignore" comment:"Glob patterns of paths that never trigger a task.\n Ignored directories are not watched."`
}

// DebounceDuration returns the parsed Debounce value.
func (w *Watcher) DebounceDuration() time.Duration {
	if w.Debounce == "" {
		return DefaultDebounce
	}

	d, err := time.ParseDuration(w.Debounce)
	if err != nil {
		return DefaultDebounce
	}

	return d
}

func (w *Watcher) validate() error {
	if w.Debounce != "" {
		d, err := time.ParseDuration(w.Debounce)
		if err != nil {
			return fieldErrorWrap(err, "debounce")
		}

		if d < 0 {
			return newFieldError("can not be negative", "debounce")
		}
	}

	return validateGlobs(w.Ignore, "ignore")
}

// WatchBinding is a [[Watch]] section. When a file matching one of the Files
// patterns and none of the Exclude patterns changes, Task is run.
type WatchBinding struct {
	Name    string   `toml:"name" comment:"Identifier of the binding, the action watch:<name> is defined for it."`
	Files   []string `toml:"files" comment:"Glob patterns relative to the project root, ** matches any number of directories."`
	Exclude []string `toml:"exclude,omitempty" comment:"Glob patterns of files that do not trigger the task."`
	Task    string   `toml:"task" comment:"Task that is run when a matching file changes."`
}

// ActionName returns the name of the implicit watch action of the binding.
func (w *WatchBinding) ActionName() string {
	return "watch:" + w.Name
}

func (w *WatchBinding) validate() error {
	if err := validateTaskName(w.Name); err != nil {
		return fieldErrorWrap(err, "name")
	}

	if len(w.Files) == 0 {
		return newFieldError("can not be empty", "files")
	}

	if err := validateGlobs(w.Files, "files"); err != nil {
		return err
	}

	if err := validateGlobs(w.Exclude, "exclude"); err != nil {
		return err
	}

	if w.Task == "" {
		return newFieldError("can not be empty", "task")
	}

	return nil
}

func (w *WatchBinding) resolve(resolver Resolver) error {
	if err := resolveSlice(resolver, w.Files, "files"); err != nil {
		return err
	}

	if err := resolveSlice(resolver, w.Exclude, "exclude"); err != nil {
		return err
	}

	return nil
}

func (w *WatchBinding) String() string {
	return fmt.Sprintf("%s (%v -> %s)", w.Name, w.Files, w.Task)
}
