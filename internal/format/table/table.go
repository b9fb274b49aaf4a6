package table

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Formatter converts rows into a text table with space separated columns.
type Formatter struct {
	tabWriter *tabwriter.Writer
}

// New returns a Formatter that writes to out. If headers is not empty, it is
// written as first row, each header is passed through decorate when it is
// not nil.
func New(headers []string, decorate func(...any) string, out io.Writer) *Formatter {
	f := Formatter{
		tabWriter: tabwriter.NewWriter(out, 0, 0, 4, ' ', 0),
	}

	if len(headers) > 0 {
		row := make([]any, 0, len(headers))
		for _, h := range headers {
			if decorate != nil {
				row = append(row, decorate(h))
				continue
			}

			row = append(row, h)
		}

		_ = f.WriteRow(row...)
	}

	return &f
}

// WriteRow writes a row to the tabwriter buffer. nil columns are written as
// empty cells.
func (f *Formatter) WriteRow(row ...any) error {
	var sb strings.Builder

	for i, col := range row {
		if col != nil {
			fmt.Fprintf(&sb, "%v", col)
		}

		if i+1 < len(row) {
			sb.WriteByte('\t')
		}
	}

	_, err := fmt.Fprintln(f.tabWriter, sb.String())
	return err
}

// Flush writes the buffered rows, it must be called after all rows were
// written. See tabwriter.Flush().
func (f *Formatter) Flush() error {
	return f.tabWriter.Flush()
}
