package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, v bool) *bytes.Buffer {
	t.Helper()
	color.NoColor = true
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(v)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestQuietByDefault(t *testing.T) {
	buf := capture(t, false)

	Debug("kept %d", 3)
	Info("hello")
	Warn("careful")
	Section("run")

	assert.Empty(t, buf.String())
	assert.False(t, IsVerbose())
}

func TestVerbose(t *testing.T) {
	buf := capture(t, true)

	Debug("kept %d of %d", 2, 3)
	Warn("dropped %v", []int{1})
	Section("run")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] kept 2 of 3\n")
	assert.Contains(t, out, "[WARN] dropped [1]\n")
	assert.Contains(t, out, "=== run ===")
	assert.True(t, IsVerbose())
}
