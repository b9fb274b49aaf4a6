package flag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const (
	FormatJSON  = "json"
	FormatPlain = "plain"
)

const formatUsage = "one of: " + FormatJSON + ", " + FormatPlain

// Format is a command line flag that selects the output format.
type Format struct {
	Val string
}

func NewFormatFlag() *Format {
	return &Format{Val: FormatPlain}
}

// Set parses the passed string and sets Val
func (f *Format) Set(val string) error {
	switch v := strings.ToLower(val); v {
	case FormatPlain, FormatJSON:
		f.Val = v
	default:
		return errors.New("format must be " + formatUsage)
	}

	return nil
}

func (f *Format) String() string {
	return f.Val
}

func (f *Format) Type() string {
	return "FORMAT"
}

func (f *Format) Usage(highlightFn func(a ...any) string) string {
	return fmt.Sprintf("output format\none of: %s, %s",
		highlightFn(FormatJSON), highlightFn(FormatPlain),
	)
}

func (f *Format) RegisterFlagCompletion(cmd *cobra.Command) error {
	return cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{FormatJSON, FormatPlain}, cobra.ShellCompDirectiveNoFileComp
	})
}
