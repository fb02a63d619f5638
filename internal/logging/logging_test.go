package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estimator.log")

	logger, err := New(Config{Level: "warn", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, logger.Sync())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "dropped")
	assert.Contains(t, string(b), `"msg":"kept"`)
	assert.Contains(t, string(b), `"timestamp"`)
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	logger, err := New(Config{Level: "chatty", Output: "stderr"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewBadOutputPath(t *testing.T) {
	_, err := New(Config{Output: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	assert.Error(t, err)
}

func TestNewDevelopmentPanicsOnDPanic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Development = true
	logger, err := New(cfg)
	require.NoError(t, err)
	assert.Panics(t, func() { logger.DPanic("boom") })

	logger, err = New(DefaultConfig())
	require.NoError(t, err)
	assert.NotPanics(t, func() { logger.DPanic("quiet") })
}
