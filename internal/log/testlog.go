package log

import "testing"

// RedirectToTestingLog redirects all log output of the StdLogger to t.Log
// while a testcase is executed and enables debug messages.
// When the testcase finished, the previous output and debug setting are
// restored.
func RedirectToTestingLog(t *testing.T) {
	oldLogOut := StdLogger.GetOutput()
	oldDebugEnabled := StdLogger.DebugEnabled()

	StdLogger.SetOutput(NewTestLogOutput(t))
	StdLogger.EnableDebug(true)

	t.Cleanup(func() {
		StdLogger.SetOutput(oldLogOut)
		StdLogger.EnableDebug(oldDebugEnabled)
	})
}

// TestLogOutput wraps the logger of testing.T to provide the Output
// interface.
type TestLogOutput struct {
	t *testing.T
}

func NewTestLogOutput(t *testing.T) *TestLogOutput {
	return &TestLogOutput{t: t}
}

func (l *TestLogOutput) Printf(format string, v ...any) {
	l.t.Helper()
	l.t.Logf(format, v...)
}

func (l *TestLogOutput) Println(v ...any) {
	l.t.Helper()
	l.t.Log(v...)
}

func (l *TestLogOutput) Fatalf(format string, v ...any) {
	l.t.Helper()
	l.t.Fatalf(format, v...)
}

func (l *TestLogOutput) Fatalln(v ...any) {
	l.t.Helper()
	l.t.Fatal(v...)
}
