package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLoggerTo(false, &buf)

	l.Info("loaded %d rooms", 7)
	assert.Equal(t, "loaded 7 rooms\n", buf.String())
}

func TestConsoleLogger_VerboseSuppressed(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLoggerTo(false, &buf)

	l.Verbose("connection resolved")
	assert.Empty(t, buf.String())
}

func TestConsoleLogger_VerboseEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLoggerTo(true, &buf)

	l.Verbose("connection resolved")
	assert.Equal(t, "[VERBOSE] connection resolved\n", buf.String())
}

func TestConsoleLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLoggerTo(false, &buf)

	l.Error("load failed: %s", "boom")
	assert.Equal(t, "[ERROR] load failed: boom\n", buf.String())
}

func TestConsoleLogger_NoArgsNoFormatting(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLoggerTo(false, &buf)

	// A message containing % verbs must not be reinterpreted when
	// no args are supplied.
	l.Info("progress 100%s done", "")
	l.Info("progress 100% done")
	assert.Contains(t, buf.String(), "progress 100% done\n")
}

func TestNullLogger(t *testing.T) {
	l := NewNullLogger()
	l.Verbose("ignored")
	l.Info("ignored")
	l.Error("ignored")
}
