// Package format writes rows as aligned text tables or JSON.
package format

// Formatter is an interface for formatters
type Formatter interface {
	WriteRow(row ...any) error
	Flush() error
}
