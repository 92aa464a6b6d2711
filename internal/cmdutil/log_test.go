package cmdutil

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarnf(t *testing.T) {
	var b bytes.Buffer
	Warnf(&b, false, "ignored %s", "x")
	Warnf(&b, true, "hidden")
	assert.Equal(t, "WARN: ignored x\n", b.String())
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewLoggerAutoIsJSONOffTerminal(t *testing.T) {
	var b bytes.Buffer
	log, err := NewLogger(&b, "info", "auto", false)
	require.NoError(t, err)
	log.Info("hello", slog.String("k", "v"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(b.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "v", rec["k"])
}

func TestNewLoggerLevels(t *testing.T) {
	var b bytes.Buffer
	log, err := NewLogger(&b, "info", "text", false)
	require.NoError(t, err)
	log.Debug("dropped")
	log.Warn("kept")
	assert.NotContains(t, b.String(), "dropped")
	assert.Contains(t, b.String(), "msg=kept")

	b.Reset()
	log, err = NewLogger(&b, "debug", "text", true)
	require.NoError(t, err)
	log.Warn("quiet")
	log.Error("loud")
	assert.NotContains(t, b.String(), "quiet")
	assert.Contains(t, b.String(), "loud")
}

func TestNewLoggerBadFormat(t *testing.T) {
	_, err := NewLogger(&bytes.Buffer{}, "info", "xml", false)
	assert.Error(t, err)
}
