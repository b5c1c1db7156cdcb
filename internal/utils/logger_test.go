package utils

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLogger(t *testing.T) {
	t.Helper()
	reset := func() {
		instance = nil
		instancePath = ""
		instanceDebug = false
		once = sync.Once{}
	}
	reset()
	t.Cleanup(reset)
}

// captureStdout runs fn with os.Stdout redirected and returns what was written.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	old := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()
	require.NoError(t, w.Close())

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestNewLoggerWritesFile(t *testing.T) {
	resetLogger(t)
	path := filepath.Join(t.TempDir(), "logs", "idxlist.log")

	captureStdout(t, func() {
		logger := NewLogger(path, false)
		logger.Info("hello file")
		logger.Debug("hidden at info level")
		assert.Same(t, logger, GetLogger())
	})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestNewLoggerAfterGetLoggerWarns(t *testing.T) {
	resetLogger(t)
	path := filepath.Join(t.TempDir(), "idxlist.log")

	out := captureStdout(t, func() {
		first := GetLogger()
		second := NewLogger(path, true)
		assert.Same(t, first, second)
	})

	assert.Contains(t, out, "Logger already initialized")
	assert.NoFileExists(t, path)
}

func TestNewLoggerSameArgumentsIsQuiet(t *testing.T) {
	resetLogger(t)

	out := captureStdout(t, func() {
		NewLogger("", false)
		NewLogger("", false)
		GetLogger()
	})

	assert.NotContains(t, out, "already initialized")
}

func TestWithAddsField(t *testing.T) {
	resetLogger(t)
	path := filepath.Join(t.TempDir(), "idxlist.log")

	captureStdout(t, func() {
		NewLogger(path, false).With("scenario", "remove").Info("done")
	})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario":"remove"`)
}
