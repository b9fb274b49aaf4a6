package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sitetask/sitetask/internal/command/term"
	"github.com/sitetask/sitetask/internal/log"
	"github.com/sitetask/sitetask/internal/prettyprint"
	"github.com/sitetask/sitetask/pkg/cfg"
)

func init() {
	rootCmd.AddCommand(&newWatchCmd().Command)
}

type watchCmd struct {
	cobra.Command
}

const maxPrintedGlobs = 5

const watchLongHelp = `
Watch files and run the tasks of watch bindings when they change.
If no binding is passed, all bindings are watched.
Changes that happen while the task of a binding runs cause exactly one
additional run after it finished.
`

func newWatchCmd() *watchCmd {
	cmd := watchCmd{
		Command: cobra.Command{
			Use:   "watch [BINDING]...",
			Short: "run tasks when files change",
			Long:  strings.TrimSpace(watchLongHelp),
			Args:  cobra.ArbitraryArgs,
		},
	}

	cmd.Run = cmd.run

	return &cmd
}

func (c *watchCmd) run(_ *cobra.Command, args []string) {
	s := mustNewSession(mustLoadProject())

	bindings := s.project.Cfg.Watches
	if len(args) > 0 {
		bindings = make([]*cfg.WatchBinding, 0, len(args))

		for _, name := range args {
			b := s.project.Cfg.WatchByName(name)
			if b == nil {
				log.Errorf("watch binding %q does not exist\n", name)
				exitFunc(exitCodeNotExist)
				return
			}

			bindings = append(bindings, b)
		}
	}

	for _, b := range bindings {
		stdout.Printf("%s: %s -> %s\n",
			term.Highlight(b.ActionName()), prettyprint.TruncatedStrSlice(b.Files, maxPrintedGlobs), b.Task)
	}

	err := s.dispatcher.Watch(ctx, bindings)
	exitOnInterrupt()
	exitOnErr(err, fmt.Sprintf("watching %s failed", s.project.Root))
}
