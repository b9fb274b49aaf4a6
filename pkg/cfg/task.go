package cfg

import "fmt"

// Task is a [[Task]] section.
type Task struct {
	Name  string   `toml:"name" comment:"Task name"`
	Steps []string `toml:"steps" comment:"Actions or tasks that are run in order.\n Referenced tasks are expanded in place."`
}

func (t *Task) validate() error {
	if err := validateTaskName(t.Name); err != nil {
		return fieldErrorWrap(err, "name")
	}

	for i, step := range t.Steps {
		if err := validateName(step); err != nil {
			return fieldErrorWrap(err, "steps", fmt.Sprint(i))
		}
	}

	return nil
}
