package sysPrint

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMsg(t *testing.T) {
	err := ErrorMsg("boom")
	assert.Equal(t, ERROR+"boom", err.Error())

	wrapped := errors.WithMessage(ErrUnknownCommand, "exec")
	assert.True(t, errors.Is(wrapped, ErrUnknownCommand))
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	PrintlnSystemMsg("hello")
	PrintlnErrorMsg("bad")
	assert.Contains(t, buf.String(), SYSTEM+"hello")
	assert.Contains(t, buf.String(), ERROR+"bad")
}

func TestConsoleDefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newConsole(zerolog.ConsoleWriter{Out: &buf, NoColor: true})
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	// an unknown level falls back to info
	require.NoError(t, Init("", "verbose"))
	buf.Reset()
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	PrintlnDebugMsg("debug line")
	PrintlnSystemMsg("system line")
	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), SYSTEM+"system line")
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	require.NoError(t, Init(path, "debug"))

	LogWriteSystemMsg("written to file")
	PrintlnDebugMsg("debug line")
	LogClose()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "written to file")
	assert.Contains(t, string(content), "debug line")
	assert.Contains(t, string(content), "log close...")

	// file logger is detached after close
	LogWriteSystemMsg("after close")
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "after close")
}

func TestInitBadPath(t *testing.T) {
	err := Init(filepath.Join(t.TempDir(), "missing", "log.txt"), "info")
	assert.Error(t, err)
}
