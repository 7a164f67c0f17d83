package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_WritesPlainTextToBuffer(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	l.Info("[GameService] started", "sessions", 3)
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "[GameService] started")
	assert.Contains(t, out, "sessions=3")
	assert.NotContains(t, out, "hidden")
	assert.NotContains(t, out, "\x1b[", "цвета отключены для не-терминала")
}

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer

	New(&buf, true).Debug("visible")

	assert.Contains(t, buf.String(), "visible")
}
