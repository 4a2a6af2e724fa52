package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	logger, err := New(Options{Verbose: true, JSON: true, OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Debug("marker moved", Vec2("world", 79, -64.5))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"world":"79.00, -64.50"`)
	assert.Contains(t, string(data), `"logger":"floorcal"`)
}

func TestNewInfoLevelDropsDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	logger, err := New(Options{OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}
