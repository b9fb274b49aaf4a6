package sitetask

import (
	"fmt"
	"strings"
)

// DuplicateTaskError is returned when a task is registered with a name that
// is already in use.
type DuplicateTaskError struct {
	Name string
}

func (e *DuplicateTaskError) Error() string {
	return fmt.Sprintf("task %q is already registered", e.Name)
}

// UnknownTaskError is returned when a task name does not refer to a
// registered task.
type UnknownTaskError struct {
	Name string
	// ReferencedBy is the name of the task that contains the reference, it
	// is empty when the task was requested directly.
	ReferencedBy string
}

func (e *UnknownTaskError) Error() string {
	if e.ReferencedBy == "" {
		return fmt.Sprintf("task %q does not exist", e.Name)
	}

	return fmt.Sprintf("task %q referenced by %q does not exist", e.Name, e.ReferencedBy)
}

// CycleError is returned when a task is reachable from itself through task
// references.
type CycleError struct {
	// Path lists the task names of the cycle, the first and last element
	// are the same.
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic task reference: %s", strings.Join(e.Path, " -> "))
}

// WatchCycleError is returned when the task of a watch binding contains a
// watch action. Every change would start another watch from inside the
// running one.
type WatchCycleError struct {
	Binding     string
	Task        string
	WatchAction string
}

func (e *WatchCycleError) Error() string {
	return fmt.Sprintf("watch %q: task %q contains the watch action %q, watch tasks must not watch",
		e.Binding, e.Task, e.WatchAction)
}

// ExternalToolError is returned when an external process could not be
// started or exited with a code other than 0.
type ExternalToolError struct {
	Command string
	// ExitCode is the exit code of the process, it is only meaningful when
	// SpawnErr is nil. -1 means the process was terminated by a signal.
	ExitCode int
	SpawnErr error
	Output   []byte
}

func (e *ExternalToolError) Error() string {
	if e.SpawnErr != nil {
		return fmt.Sprintf("running '%s' failed: %s", e.Command, e.SpawnErr)
	}

	if len(e.Output) == 0 {
		return fmt.Sprintf("'%s' exited with code %d", e.Command, e.ExitCode)
	}

	return fmt.Sprintf("'%s' exited with code %d, output:\n%s", e.Command, e.ExitCode, e.Output)
}

func (e *ExternalToolError) Unwrap() error {
	return e.SpawnErr
}

// PipelineError is returned by Executor.Run when an action of the pipeline
// failed.
type PipelineError struct {
	TaskName     string
	FailedAction string
	Cause        error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("task %s: action %s failed: %s", e.TaskName, e.FailedAction, e.Cause)
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}
