// Package commands provides CLI command handlers for swagfix.
package commands

import (
	"fmt"
	"io"
	"os"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Writef writes formatted command output, falling back to stderr when the
// destination rejects the write (a closed pipe mid-migration, say).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}
