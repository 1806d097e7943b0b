package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vietanh2810/pronos-api/internal/config"
)

func TestSetLevel(t *testing.T) {
	require.NoError(t, SetLevel("debug"))
	assert.True(t, level.Enabled(zapcore.DebugLevel))

	require.NoError(t, SetLevel(""))
	assert.Equal(t, zapcore.InfoLevel, level.Level())

	assert.Error(t, SetLevel("loud"))
	assert.Equal(t, zapcore.InfoLevel, level.Level())
}

func TestInit_WritesRotatingFile(t *testing.T) {
	undo := zap.ReplaceGlobals(zap.NewNop())
	defer undo()

	path := filepath.Join(t.TempDir(), "pronos.log")
	require.NoError(t, Init("production", &config.LogConfig{Level: "info", File: path, MaxSizeMB: 1}))

	zap.L().Info("match scored", zap.Uint("match_id", 1))
	zap.L().Debug("not written")
	_ = zap.L().Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"match scored"`)
	assert.Contains(t, string(raw), `"env":"production"`)
	assert.NotContains(t, string(raw), "not written")
}
