package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wsdeps/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestLogger_Levels(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Info("scanning workspace")
	lg.Warn("could not resolve key foo")

	out := buf.String()
	assert.Contains(t, out, "scanning workspace")
	assert.Contains(t, out, "! could not resolve key foo")
}

func TestLogger_ErrorNil(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_ErrorChain(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	inner := zerr.With(zerr.New("exit status 1"), "exit_code", 1)
	lg.Error(zerr.Wrap(inner, "rosdep update failed"))

	out := buf.String()
	assert.Contains(t, out, "Error: rosdep update failed")
	assert.Contains(t, out, "Caused by:")
	assert.Contains(t, out, "→ exit status 1")
	assert.Contains(t, out, "exit_code: 1")
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)
	lg.SetJSON(true)

	lg.Info("hello")
	lg.Error(errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "INFO", rec["level"])

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
	assert.Equal(t, "boom", rec["error"])
}

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	h := logger.NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	lg := slog.New(h).WithGroup("step").With("name", "update-index")

	lg.Info("started", "attempt", 1)
	lg.Debug("filtered")

	assert.Equal(t, "started step.name=update-index step.attempt=1\n", buf.String())
}
