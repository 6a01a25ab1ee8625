package commands

import (
	"bytes"
	"errors"
	"testing"
)

func TestWritef(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "Migrated %s (%d changes)", "api.json", 3)
	if got := buf.String(); got != "Migrated api.json (3 changes)" {
		t.Errorf("Writef() = %q, want %q", got, "Migrated api.json (3 changes)")
	}
}

// errorWriter is a writer that always returns an error
type errorWriter struct{}

func (e errorWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("simulated write error")
}

func TestWritef_WriteError(t *testing.T) {
	// Writef must handle write errors gracefully by logging to stderr
	// rather than panicking.
	var ew errorWriter
	Writef(ew, "This will fail")
}
