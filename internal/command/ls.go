package command

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/sitetask/sitetask/internal/command/flag"
	"github.com/sitetask/sitetask/internal/command/term"
	"github.com/sitetask/sitetask/internal/format"
	"github.com/sitetask/sitetask/internal/format/jsonformat"
	"github.com/sitetask/sitetask/internal/format/table"
	"github.com/sitetask/sitetask/pkg/sitetask"
)

func init() {
	rootCmd.AddCommand(&newLsCmd().Command)
}

const (
	lsTaskNameHeader     = "Task"
	lsTaskNameParam      = "name"
	lsTaskStepsHeader    = "Steps"
	lsTaskStepsParam     = "steps"
	lsTaskPipelineHeader = "Pipeline"
	lsTaskPipelineParam  = "pipeline"

	lsWatchNameHeader    = "Watch"
	lsWatchFilesHeader   = "Files"
	lsWatchFilesParam    = "files"
	lsWatchExcludeHeader = "Exclude"
	lsWatchExcludeParam  = "exclude"
	lsWatchTaskHeader    = "Task"
	lsWatchTaskParam     = "task"
)

type lsCmd struct {
	cobra.Command

	format  *flag.Format
	watches bool
}

func newLsCmd() *lsCmd {
	cmd := lsCmd{
		Command: cobra.Command{
			Use:   "ls",
			Short: "list tasks and their pipelines",
			Args:  cobra.NoArgs,
		},
		format: flag.NewFormatFlag(),
	}

	cmd.Run = cmd.run

	cmd.Flags().VarP(cmd.format, "format", "f", cmd.format.Usage(term.Highlight))
	_ = cmd.format.RegisterFlagCompletion(&cmd.Command)

	cmd.Flags().BoolVarP(&cmd.watches, "watches", "w", false,
		"list watch bindings instead of tasks")

	return &cmd
}

func (c *lsCmd) run(_ *cobra.Command, _ []string) {
	s := mustNewSession(mustLoadProject())

	var err error
	if c.watches {
		err = c.printWatches(s)
	} else {
		err = c.printTasks(s)
	}
	exitOnErr(err)
}

func (c *lsCmd) newFormatter(headers, params []string) format.Formatter {
	if c.format.Val == flag.FormatJSON {
		return jsonformat.New(params, stdout)
	}

	return table.New(headers, term.Underline, stdout)
}

func (c *lsCmd) printTasks(s *session) error {
	formatter := c.newFormatter(
		[]string{lsTaskNameHeader, lsTaskStepsHeader, lsTaskPipelineHeader},
		[]string{lsTaskNameParam, lsTaskStepsParam, lsTaskPipelineParam},
	)

	for _, name := range s.registry.Names() {
		task, err := s.registry.Task(name)
		if err != nil {
			return err
		}

		pipeline, err := s.registry.Resolve(name)
		if err != nil {
			return err
		}

		steps := make([]string, 0, len(task.Steps))
		for _, step := range task.Steps {
			steps = append(steps, step.String())
		}

		if err := c.writeRow(formatter, name, steps, actionNames(pipeline)); err != nil {
			return err
		}
	}

	return formatter.Flush()
}

func (c *lsCmd) printWatches(s *session) error {
	formatter := c.newFormatter(
		[]string{lsWatchNameHeader, lsWatchFilesHeader, lsWatchExcludeHeader, lsWatchTaskHeader},
		[]string{lsTaskNameParam, lsWatchFilesParam, lsWatchExcludeParam, lsWatchTaskParam},
	)

	for _, b := range s.project.Cfg.Watches {
		if err := c.writeRow(formatter, b.ActionName(), b.Files, b.Exclude, b.Task); err != nil {
			return err
		}
	}

	return formatter.Flush()
}

// writeRow writes string slices as JSON arrays or, in plain format, as comma
// separated lists.
func (c *lsCmd) writeRow(f format.Formatter, row ...any) error {
	if c.format.Val == flag.FormatJSON {
		for i, col := range row {
			if sl, ok := col.([]string); ok && sl == nil {
				row[i] = []string{}
			}
		}

		return f.WriteRow(row...)
	}

	for i, col := range row {
		if sl, ok := col.([]string); ok {
			row[i] = strings.Join(sl, ", ")
		}
	}

	return f.WriteRow(row...)
}

func actionNames(actions []*sitetask.Action) []string {
	result := make([]string, 0, len(actions))
	for _, a := range actions {
		result = append(result, a.Name)
	}

	return result
}
