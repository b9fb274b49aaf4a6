package command

import (
	"time"

	"github.com/sitetask/sitetask/internal/command/term"
	"github.com/sitetask/sitetask/pkg/sitetask"
)

// termReporter prints the progress of pipeline runs.
type termReporter struct {
	out *term.Stream
}

func (r *termReporter) ActionStarted(taskName string, a *sitetask.Action) {
	if a.Kind == sitetask.KindWatch {
		r.out.TaskPrintf(taskName, "starting %s\n", term.Highlight(a.Name))
		return
	}

	r.out.TaskPrintf(taskName, "running %s\n", term.Highlight(a.Name))
}

func (r *termReporter) ActionFinished(taskName string, a *sitetask.Action, duration time.Duration, err error) {
	r.out.TaskPrintf(taskName, "%s %s in %s\n",
		a.Name, term.ColoredResult(err), term.DurationToStrSeconds(duration))
}
