package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionFiltering(t *testing.T) {
	SetLevel(slog.LevelDebug)
	t.Cleanup(func() { SetLevel(slog.LevelInfo) })

	buf := &bytes.Buffer{}
	logger := NewLogger(buf)

	logger.With("section", "dispatch").Debug("enabled section")
	logger.With("section", "specificity").Debug("disabled section")
	logger.With("section", "specificity").Warn("disabled section warning")
	logger.Debug("no section")
	logger.Debug("section on the record", "section", "manifest")
	logger.With("section", "cli.check").Info("nested section")

	out := buf.String()
	assert.Contains(t, out, "enabled section")
	assert.NotContains(t, out, `msg="disabled section"`)
	assert.Contains(t, out, "disabled section warning")
	assert.NotContains(t, out, "no section")
	assert.Contains(t, out, "section on the record")
	assert.Contains(t, out, "nested section")
	assert.NotContains(t, out, "time=")
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel(slog.LevelInfo) })
	buf := &bytes.Buffer{}
	logger := NewLogger(buf).With("section", "dispatch")

	SetLevel(slog.LevelError)
	logger.Warn("dropped")
	assert.Empty(t, buf.String())

	SetLevel(slog.LevelDebug)
	logger.Debug("kept")
	assert.Contains(t, buf.String(), "kept")
}
