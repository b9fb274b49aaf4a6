package sitetask

import (
	"context"
	"errors"
	"io"
	"runtime"
	"strings"

	"github.com/sitetask/sitetask/internal/exec"
	"github.com/sitetask/sitetask/internal/fs"
)

// Process describes an external command.
type Process struct {
	Name string
	Args []string
	// Dir is the working directory, relative paths are relative to the
	// project root.
	Dir string
	// Stdout enables streaming the output of the process to the console
	// while it runs.
	Stdout bool
}

// ShellProcess returns a Process that runs command via the system shell.
func ShellProcess(command string) *Process {
	if runtime.GOOS == "windows" {
		return &Process{Name: "cmd", Args: []string{"/C", command}}
	}

	return &Process{Name: "sh", Args: []string{"-c", command}}
}

func (p *Process) String() string {
	if len(p.Args) == 0 {
		return p.Name
	}

	return p.Name + " " + strings.Join(p.Args, " ")
}

// ProcessRunner runs external processes.
type ProcessRunner interface {
	// Exec runs the process and waits for its termination.
	// An ExternalToolError is returned if it could not be started or
	// exited with a code other than 0.
	Exec(ctx context.Context, p *Process) error
}

// ProcessAdapter runs processes via internal/exec.
type ProcessAdapter struct {
	root   string
	stdout io.Writer
	logFn  func(format string, v ...any)
}

// NewProcessAdapter returns a ProcessAdapter that runs processes relative
// to root. The output of processes with Stdout enabled is written to stdout.
// logFn receives debug messages and every output line, prefixed with the
// name of the process.
func NewProcessAdapter(root string, stdout io.Writer, logFn func(format string, v ...any)) *ProcessAdapter {
	return &ProcessAdapter{
		root:   root,
		stdout: stdout,
		logFn:  logFn,
	}
}

func (a *ProcessAdapter) Exec(ctx context.Context, p *Process) error {
	cmd := exec.Command(p.Name, p.Args...).
		Directory(fs.AbsPath(a.root, p.Dir)).
		LogFn(a.logFn).
		LogPrefix(p.Name+": ").
		ExpectSuccess()

	if p.Stdout && a.stdout != nil {
		cmd.Stream(a.stdout)
	}

	_, err := cmd.Run(ctx)
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitCodeError
	if errors.As(err, &exitErr) {
		return &ExternalToolError{
			Command:  p.String(),
			ExitCode: exitErr.ExitCode,
			Output:   exitErr.Output,
		}
	}

	return &ExternalToolError{
		Command:  p.String(),
		SpawnErr: err,
	}
}
