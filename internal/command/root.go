// Package command implements the sitetask command line interface.
package command

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sitetask/sitetask/internal/command/term"
	"github.com/sitetask/sitetask/internal/exec"
	"github.com/sitetask/sitetask/internal/log"
	"github.com/sitetask/sitetask/internal/version"
)

var rootCmd = &cobra.Command{
	Use:              "sitetask",
	Short:            "sitetask builds static websites by running pipelines of tools.",
	PersistentPreRun: initSb,
}

var (
	verboseFlag bool
	noColorFlag bool
	configFlag  string
)

// ctx is canceled when SIGINT or SIGTERM is received.
var ctx = context.Background()

var stdout = term.NewStream(os.Stdout)
var stderr = term.NewStream(os.Stderr)

var exitFunc = func(code int) { os.Exit(code) }

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "",
		"path to the configuration file, by default "+configFileName+
			" is searched in the current and parent directories")
}

func initSb(_ *cobra.Command, _ []string) {
	if verboseFlag {
		log.StdLogger.EnableDebug(verboseFlag)
		exec.DefaultLogFn = log.StdLogger.Debugf
	}

	if noColorFlag {
		color.NoColor = true
	}
}

// Execute parses commandline flags and execute their actions
func Execute() {
	if err := version.LoadPackageVars(); err != nil {
		stderr.Printf("setting version failed: %s\n", err)
	}
	rootCmd.Version = version.CurSemVer.String()

	var cancel context.CancelFunc
	ctx, cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := rootCmd.Execute()
	exitOnErr(err)
}
