package command

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sitetask/sitetask/internal/command/term"
	"github.com/sitetask/sitetask/internal/log"
	"github.com/sitetask/sitetask/pkg/cfg"
)

func init() {
	rootCmd.AddCommand(&newInitCmd().Command)
}

const initLongHelp = `
Create a configuration file with the built-in tasks.
If no argument is passed, the file is created in the current directory.
`

type initCmd struct {
	cobra.Command

	force     bool
	commented bool
}

func newInitCmd() *initCmd {
	cmd := initCmd{
		Command: cobra.Command{
			Use:   "init [DIR]",
			Short: "create a configuration file",
			Long:  strings.TrimSpace(initLongHelp),
			Args:  cobra.MaximumNArgs(1),
		},
	}

	cmd.Run = cmd.run

	cmd.Flags().BoolVarP(&cmd.force, "force", "f", false,
		"overwrite an existing configuration file")
	cmd.Flags().BoolVar(&cmd.commented, "commented", false,
		"comment out all settings")

	return &cmd
}

func (c *initCmd) run(_ *cobra.Command, args []string) {
	var dir string
	var err error

	if len(args) == 1 {
		dir = args[0]
	} else {
		dir, err = os.Getwd()
		exitOnErr(err)
	}

	cfgPath := filepath.Join(dir, configFileName)

	var opts []cfg.ToFileOpt
	if c.force {
		opts = append(opts, cfg.ToFileOptOverwrite())
	}
	if c.commented {
		opts = append(opts, cfg.ToFileOptCommented())
	}

	err = cfg.ExampleConfig().ToFile(cfgPath, opts...)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			log.Errorf("%s already exists, use --force to overwrite it\n", cfgPath)
			exitFunc(exitCodeAlreadyExist)
			return
		}

		exitOnErr(err)
	}

	stdout.Printf("Configuration was written to %s\n", term.Highlight(cfgPath))
	stdout.Printf("\nNext Steps:\n"+
		"1. Adapt the actions in '%s' to the tools of your site\n"+
		"2. Run '%s' to list the tasks\n"+
		"3. Run '%s' to start watching\n",
		term.Highlight(configFileName),
		term.Highlight("sitetask ls"),
		term.Highlight("sitetask run"),
	)
}
