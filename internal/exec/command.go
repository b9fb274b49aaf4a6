// Package exec runs external commands
package exec

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"syscall"
)

var (
	// DefaultLogFn is the default function that is called with the
	// command that is run and each line of its output.
	DefaultLogFn = func(string, ...any) {}
	// DefaultLogPrefix is the default prefix that is prepended to messages
	// passed to the log function.
	DefaultLogPrefix = "exec: "
)

// Cmd represents a command that can be run.
type Cmd struct {
	name string
	args []string
	dir  string

	stream        io.Writer
	logFn         func(format string, v ...any)
	logPrefix     string
	expectSuccess bool
}

// Command returns a new Cmd struct.
// If name contains no path separators, LookPath is used to resolve name to a
// complete path when the command is run.
// By default a command is run in the current working directory.
func Command(name string, arg ...string) *Cmd {
	return &Cmd{
		name:      name,
		args:      arg,
		logFn:     DefaultLogFn,
		logPrefix: DefaultLogPrefix,
	}
}

// Directory changes the directory in which the command is executed.
func (c *Cmd) Directory(dir string) *Cmd {
	c.dir = dir
	return c
}

// Stream additionally writes the combined stdout and stderr output of the
// process to w while it runs.
func (c *Cmd) Stream(w io.Writer) *Cmd {
	c.stream = w
	return c
}

// LogFn sets the function that is called with debug information and each
// output line of the process.
func (c *Cmd) LogFn(fn func(format string, v ...any)) *Cmd {
	c.logFn = fn
	return c
}

// LogPrefix sets a prefix that is prepended to the message that is passed to
// the log function.
func (c *Cmd) LogPrefix(prefix string) *Cmd {
	c.logPrefix = prefix
	return c
}

// ExpectSuccess if called, Run() will return an ExitCodeError if the command
// did not exit with code 0.
func (c *Cmd) ExpectSuccess() *Cmd {
	c.expectSuccess = true
	return c
}

// String returns the command and its arguments separated by spaces.
func (c *Cmd) String() string {
	if len(c.args) == 0 {
		return c.name
	}

	return c.name + " " + strings.Join(c.args, " ")
}

// Run executes the command and waits for it to terminate.
// When ctx is canceled the process is killed.
// An error is returned if the process could not be started or its output
// could not be read. If ExpectSuccess() was called an ExitCodeError is
// returned when the process exited with a code != 0.
func (c *Cmd) Run(ctx context.Context) (*Result, error) {
	cmd := exec.CommandContext(ctx, c.name, c.args...)
	cmd.Dir = c.dir
	cmd.SysProcAttr = defSysProcAttr()

	outReader, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	cmd.Stderr = cmd.Stdout

	// Pdeathsig is delivered when the thread that started the process
	// exits, https://github.com/golang/go/issues/27505
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	c.logFn(c.logPrefix+"running '%s' in directory '%s'\n", c, dirStr(c.dir))

	if err := cmd.Start(); err != nil {
		return nil, &StartError{Command: c.String(), Err: err}
	}

	var outBuf bytes.Buffer
	firstline := true
	in := bufio.NewScanner(outReader)
	for in.Scan() {
		line := in.Bytes()

		c.logFn(c.logPrefix+"%s\n", line)
		if c.stream != nil {
			_, _ = fmt.Fprintf(c.stream, "%s\n", line)
		}

		if firstline {
			firstline = false
		} else {
			outBuf.WriteRune('\n')
		}
		outBuf.Write(line)
	}

	if err := in.Err(); err != nil {
		err = fmt.Errorf("reading output of '%s' failed: %w", c, err)
		if waitErr := cmd.Wait(); waitErr != nil {
			return nil, fmt.Errorf("%w, waiting for the process to terminate failed too: %s", err, waitErr)
		}

		return nil, err
	}

	exitCode, err := exitCodeFromErr(cmd.Wait())
	if err != nil {
		return nil, err
	}

	c.logFn(c.logPrefix+"command terminated with exitCode: %d\n", exitCode)

	result := Result{
		Command:  c.String(),
		Dir:      dirStr(c.dir),
		ExitCode: exitCode,
		Output:   outBuf.Bytes(),
	}

	if c.expectSuccess && exitCode != 0 {
		return nil, &ExitCodeError{Result: &result}
	}

	return &result, nil
}

func dirStr(dir string) string {
	if dir == "" {
		return "."
	}

	return dir
}

func exitCodeFromErr(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var ee *exec.ExitError
	if !errors.As(err, &ee) {
		return 0, err
	}

	if status, ok := ee.Sys().(syscall.WaitStatus); ok {
		if status.Signaled() {
			return -1, nil
		}

		return status.ExitStatus(), nil
	}

	return ee.ExitCode(), nil
}
