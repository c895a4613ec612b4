package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesFileAndConsole(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	var console bytes.Buffer

	log, err := New(Options{Dir: dir, Level: "debug", Console: &console})
	require.NoError(t, err)
	log.Debug("probe", zap.String("path", "/usr/bin/adb"))
	require.NoError(t, log.Sync())

	b, err := os.ReadFile(filepath.Join(dir, "adb-connect.log"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"message":"probe"`)
	assert.Contains(t, string(b), `"path":"/usr/bin/adb"`)
	assert.Contains(t, console.String(), "DEBUG")
	assert.Contains(t, console.String(), "probe")
}

func TestLevelFilters(t *testing.T) {
	var console bytes.Buffer
	log, err := New(Options{Level: "warn", Console: &console})
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "shown")
}

func TestInvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNoOutputsIsNop(t *testing.T) {
	log, err := New(Options{})
	require.NoError(t, err)
	log.Error("dropped")
}
