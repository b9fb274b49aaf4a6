package command

import (
	"testing"

	"github.com/sitetask/sitetask/internal/testutils/fstest"
)

func TestWatchUnknownBinding(t *testing.T) {
	initTest(t)

	fstest.Chdir(t, t.TempDir())

	watchCmd := newWatchCmd()
	watchCmd.SetArgs([]string{"css", "images"})
	execCheck(t, watchCmd, exitCodeNotExist)
}
