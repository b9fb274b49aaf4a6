package sitetask

import (
	"fmt"
	"slices"

	"github.com/sitetask/sitetask/internal/set"
	"github.com/sitetask/sitetask/pkg/cfg"
)

// Registry stores tasks by name.
// It is populated once at startup and only read afterwards.
type Registry struct {
	tasks map[string]*Task
	order []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tasks: map[string]*Task{}}
}

// Register adds a task.
// Steps may reference tasks that are registered later.
// If a task with the same name exists, a DuplicateTaskError is returned.
// If the task closes a cycle of task references, a CycleError is returned
// and the task is not registered.
func (r *Registry) Register(name string, steps ...Step) error {
	if _, exist := r.tasks[name]; exist {
		return &DuplicateTaskError{Name: name}
	}

	task := Task{Name: name, Steps: steps}
	r.tasks[name] = &task

	if cycle := r.findCycle(name, &task, []string{name}, set.Set[string]{}); cycle != nil {
		delete(r.tasks, name)
		return &CycleError{Path: cycle}
	}

	r.order = append(r.order, name)

	return nil
}

// findCycle returns the path from task to target if target is reachable via
// task references. All registered tasks except target are part of an
// acyclic graph, visiting every task once is sufficient.
func (r *Registry) findCycle(target string, task *Task, path []string, visited set.Set[string]) []string {
	for _, step := range task.Steps {
		if step.Action != nil {
			continue
		}

		refPath := append(slices.Clone(path), step.TaskRef)
		if step.TaskRef == target {
			return refPath
		}

		if visited.Contains(step.TaskRef) {
			continue
		}
		visited.Add(step.TaskRef)

		ref, exist := r.tasks[step.TaskRef]
		if !exist {
			continue
		}

		if cycle := r.findCycle(target, ref, refPath, visited); cycle != nil {
			return cycle
		}
	}

	return nil
}

// Resolve returns the pipeline of the task: its actions in execution order.
// Task references are expanded depth-first in place.
// An UnknownTaskError is returned if name or a referenced task does not
// exist.
func (r *Registry) Resolve(name string) ([]*Action, error) {
	var result []*Action

	if err := r.flatten(name, "", nil, &result); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *Registry) flatten(name, referencedBy string, path []string, result *[]*Action) error {
	if slices.Contains(path, name) {
		return &CycleError{Path: append(slices.Clone(path), name)}
	}

	task, exist := r.tasks[name]
	if !exist {
		return &UnknownTaskError{Name: name, ReferencedBy: referencedBy}
	}

	path = append(path, name)

	for _, step := range task.Steps {
		if step.Action != nil {
			*result = append(*result, step.Action)
			continue
		}

		if err := r.flatten(step.TaskRef, name, path, result); err != nil {
			return err
		}
	}

	return nil
}

// Task returns the task with the given name.
func (r *Registry) Task(name string) (*Task, error) {
	task, exist := r.tasks[name]
	if !exist {
		return nil, &UnknownTaskError{Name: name}
	}

	return task, nil
}

// Names returns the names of all tasks in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// Validate resolves all tasks. It ensures that all task references exist
// and that watch actions are not followed by other actions, they could
// never run.
func (r *Registry) Validate() error {
	for _, name := range r.order {
		pipeline, err := r.Resolve(name)
		if err != nil {
			return err
		}

		if err := validateWatchPosition(name, pipeline); err != nil {
			return err
		}
	}

	return nil
}

// ValidateWatchBinding ensures that the task of b exists and that its
// pipeline contains no watch actions.
func (r *Registry) ValidateWatchBinding(b *cfg.WatchBinding) error {
	pipeline, err := r.Resolve(b.Task)
	if err != nil {
		return err
	}

	for _, a := range pipeline {
		if a.Kind == KindWatch {
			return &WatchCycleError{Binding: b.Name, Task: b.Task, WatchAction: a.Name}
		}
	}

	return nil
}

func validateWatchPosition(taskName string, pipeline []*Action) error {
	watchSeen := ""

	for _, a := range pipeline {
		if a.Kind == KindWatch {
			watchSeen = a.Name
			continue
		}

		if watchSeen != "" {
			return fmt.Errorf("task %q: action %q follows the watch action %q, it would never run",
				taskName, a.Name, watchSeen)
		}
	}

	return nil
}
