// Package logwriter provides an io.Writer that forwards output to the test
// log.
package logwriter

import (
	"bytes"
	"io"
	"sync"
	"testing"
)

// Writer writes everything to an underlying io.Writer and logs every
// complete line via testing.T.
type Writer struct {
	t       *testing.T
	w       io.Writer
	partial bytes.Buffer
	mu      sync.Mutex
}

// New returns a Writer that writes to w and to t.Log.
// Output without a trailing newline is logged when the test finishes.
func New(t *testing.T, w io.Writer) *Writer {
	l := Writer{t: t, w: w}

	t.Cleanup(l.Flush)

	return &l
}

func (l *Writer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n, err := l.w.Write(p)
	l.partial.Write(p[:n])

	for {
		idx := bytes.IndexByte(l.partial.Bytes(), '\n')
		if idx == -1 {
			break
		}

		line := l.partial.Next(idx + 1)
		l.t.Log(string(line[:len(line)-1]))
	}

	return n, err
}

// Flush logs buffered output that was not terminated by a newline.
func (l *Writer) Flush() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.partial.Len() == 0 {
		return
	}

	l.t.Log(l.partial.String())
	l.partial.Reset()
}
