package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sitetask/sitetask/internal/command/term"
	"github.com/sitetask/sitetask/pkg/sitetask"
)

func init() {
	rootCmd.AddCommand(&newRunCmd().Command)
}

type runCmd struct {
	cobra.Command
}

var runLongHelp = fmt.Sprintf(`
Run a task.
The actions of the task and of the tasks it references are executed
sequentially, the run stops at the first failing action.
If no task is passed, the task %s is run.
Tasks containing watch actions run until they are interrupted.

The following Environment Variables are supported:
  Publish:
    %s
    %s
    %s
    %s
`,
	term.Highlight(defaultTaskName),
	term.Highlight(sitetask.EnvVarS3Bucket),
	term.Highlight("AWS_REGION"),
	term.Highlight("AWS_ACCESS_KEY_ID"),
	term.Highlight("AWS_SECRET_ACCESS_KEY"),
)

func newRunCmd() *runCmd {
	const example = `
run		watch and rebuild scripts, stylesheets and pages on changes
run test	lint the scripts
run deploy	build the site and upload it to S3
`

	cmd := runCmd{
		Command: cobra.Command{
			Use:     "run [TASK]",
			Short:   "run a task",
			Long:    strings.TrimSpace(runLongHelp),
			Example: strings.TrimSpace(example),
			Args:    cobra.MaximumNArgs(1),
			ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
				if len(args) > 0 {
					return nil, cobra.ShellCompDirectiveNoFileComp
				}

				return completeTaskNames(), cobra.ShellCompDirectiveNoFileComp
			},
		},
	}

	cmd.Run = cmd.run

	return &cmd
}

func (c *runCmd) run(_ *cobra.Command, args []string) {
	taskName := defaultTaskName
	if len(args) == 1 {
		taskName = args[0]
	}

	startTime := time.Now()

	s := mustNewSession(mustLoadProject())

	stdout.Printf("Running task %s in %s\n", term.Highlight(taskName), s.project.Root)
	stdout.PrintSep()

	err := s.executor.Run(ctx, taskName)
	exitOnInterrupt()
	exitOnErr(err)

	stdout.PrintSep()
	stdout.Printf("Task %s %s in %s\n",
		term.Highlight(taskName),
		term.ColoredResult(nil),
		term.DurationToStrSeconds(time.Since(startTime)),
	)
}
