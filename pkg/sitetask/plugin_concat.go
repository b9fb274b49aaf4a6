package sitetask

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/sitetask/sitetask/internal/fs"
)

const defaultConcatSeparator = "\n"

// ConcatPlugin concatenates files.
type ConcatPlugin struct {
	root string
}

func NewConcatPlugin(root string) *ConcatPlugin {
	return &ConcatPlugin{root: root}
}

// Run reads the source files in order and writes them joined by the
// separator to the destination. If a source file can not be read, the
// destination is not modified.
func (p *ConcatPlugin) Run(_ context.Context, a *Action) error {
	opts := a.Concat
	if opts == nil {
		return fmt.Errorf("action %s has no concat options", a)
	}

	sep := defaultConcatSeparator
	if opts.Separator != nil {
		sep = *opts.Separator
	}

	var buf bytes.Buffer
	buf.WriteString(opts.Banner)

	for i, src := range opts.Src {
		content, err := os.ReadFile(fs.AbsPath(p.root, src))
		if err != nil {
			return fmt.Errorf("reading source file failed: %w", err)
		}

		if i > 0 {
			buf.WriteString(sep)
		}
		buf.Write(content)
	}

	dest := fs.AbsPath(p.root, opts.Dest)
	if err := fs.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s failed: %w", opts.Dest, err)
	}

	return nil
}
