package command

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sitetask/sitetask/internal/command/term"
	"github.com/sitetask/sitetask/internal/exec"
	"github.com/sitetask/sitetask/internal/log"
	"github.com/sitetask/sitetask/internal/testutils/logwriter"
	"github.com/sitetask/sitetask/pkg/cfg"
	"github.com/sitetask/sitetask/pkg/sitetask"
)

// interceptCmdOutput changes the stdout and stderr streams to that the
// commands write to the returned buffers, all output is additionally still
// logged via the test logger
func interceptCmdOutput(t *testing.T) (stdoutBuf, stderrBuf *bytes.Buffer) {
	var bufStdout bytes.Buffer
	var bufStderr bytes.Buffer

	oldStdout := stdout
	stdout = term.NewStream(logwriter.New(t, &bufStdout))
	oldStderr := stderr
	stderr = term.NewStream(logwriter.New(t, &bufStderr))

	t.Cleanup(func() {
		stdout = oldStdout
		stderr = oldStderr
	})

	return &bufStdout, &bufStderr
}

type exitInfo struct {
	Code int
}

func (e *exitInfo) String() string {
	return fmt.Sprintf("program terminated with exit code: %d", e.Code)
}

// initTest does the following:
// - changes the exitFunc to panic instead of calling os.Exit(),
// - changes stdout and stderr streams for the command to be redirect to the test logger
// - changes the exec debug function to the test logger,
// - resets the --config flag.
func initTest(t *testing.T) {
	t.Helper()

	oldExitFunc := exitFunc
	exitFunc = func(code int) {
		panic(&exitInfo{Code: code})
	}

	oldConfigFlag := configFlag
	configFlag = ""

	t.Cleanup(func() {
		exitFunc = oldExitFunc
		configFlag = oldConfigFlag
	})

	redirectOutputToLogger(t)
}

func redirectOutputToLogger(t *testing.T) {
	log.RedirectToTestingLog(t)

	oldExecDebugFfN := exec.DefaultLogFn
	exec.DefaultLogFn = t.Logf

	oldStdout := stdout
	stdout = term.NewStream(logwriter.New(t, io.Discard))
	oldStderr := stderr
	stderr = term.NewStream(logwriter.New(t, io.Discard))

	t.Cleanup(func() {
		exec.DefaultLogFn = oldExecDebugFfN
		stdout = oldStdout
		stderr = oldStderr
	})
}

type cmdExecuter interface {
	Execute() error
}

// execCheck executes cmd and fails the test if it does not terminate with
// expectedExitCode.
func execCheck(t *testing.T, cmd cmdExecuter, expectedExitCode int) {
	t.Helper()

	defer func() {
		t.Helper()

		r := recover()
		if r == nil {
			return
		}

		if info, ok := r.(*exitInfo); ok {
			if info.Code != expectedExitCode {
				t.Fatalf("command exited with code %d, expected: %d", info.Code, expectedExitCode)
			}

			return
		}

		panic(r)
	}()

	err := cmd.Execute()
	require.NoError(t, err)

	require.Equalf(
		t,
		0, expectedExitCode,
		"command did not panic, expecting it to panic and fail with exitCode: %d", expectedExitCode,
	)
}

func shellAction(name, command string) *cfg.Action {
	return &cfg.Action{
		Name:   name,
		Plugin: cfg.PluginShell,
		Shell:  &cfg.ShellOptions{Command: command, Stdout: true},
	}
}

// writeProject writes a configuration file with the given actions and tasks
// to a new temporary directory and returns the directory.
func writeProject(t *testing.T, actions []*cfg.Action, tasks []*cfg.Task) string {
	t.Helper()

	dir := t.TempDir()

	c := cfg.Config{
		ConfigVersion: cfg.Version,
		PackageFile:   cfg.DefaultPackageFile,
		Watcher: cfg.Watcher{
			Debounce: "50ms",
			Ignore:   []string{"_site/**"},
		},
		Actions: actions,
		Tasks:   tasks,
	}

	require.NoError(t, c.ToFile(filepath.Join(dir, sitetask.ConfigFile)))

	return dir
}
