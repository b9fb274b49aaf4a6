package exec

import "fmt"

// Result describes the result of a run Cmd.
type Result struct {
	Command  string
	Dir      string
	ExitCode int
	// Output is the combined stdout and stderr output of the process.
	Output []byte
}

// ExitCodeError is returned from Run() when a command exited with a code != 0.
type ExitCodeError struct {
	*Result
}

func (e *ExitCodeError) Error() string {
	if len(e.Output) == 0 {
		return fmt.Sprintf("running '%s' in directory '%s' exited with code %d, expected 0",
			e.Command, e.Dir, e.ExitCode)
	}

	return fmt.Sprintf("running '%s' in directory '%s' exited with code %d, expected 0, output:\n%s",
		e.Command, e.Dir, e.ExitCode, e.Output)
}

// StartError is returned when the process could not be spawned, e.g.
// because the executable does not exist.
type StartError struct {
	Command string
	Err     error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("starting '%s' failed: %s", e.Command, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}
