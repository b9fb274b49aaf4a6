package sitetask

// Step is an element of a task. Either Action or TaskRef is set.
type Step struct {
	Action  *Action
	TaskRef string
}

// ActionStep returns a step that runs a.
func ActionStep(a *Action) Step {
	return Step{Action: a}
}

// TaskStep returns a step that expands to the pipeline of the task name.
func TaskStep(name string) Step {
	return Step{TaskRef: name}
}

func (s Step) String() string {
	if s.Action != nil {
		return s.Action.Name
	}

	return s.TaskRef
}

// Task is a named, ordered list of steps.
type Task struct {
	Name  string
	Steps []Step
}
