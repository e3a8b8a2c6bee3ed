package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/Luisr26/ExpertSoft/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)
	log.Info().Str("entity", "platforms").Msg("loaded")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "platforms", line["entity"])
	assert.Equal(t, "loaded", line["message"])
	assert.Contains(t, line, "time")
}

func TestNewLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	log, out := New(config.LoggingConfig{
		Level:    "warn",
		Format:   "json",
		Output:   "file",
		FilePath: filepath.Join(dir, "app.log"),
		MaxSize:  1,
	})
	require.NotNil(t, out)

	assert.False(t, log.Info().Enabled())
	assert.True(t, log.Warn().Enabled())
}

func TestNewFallsBackToInfo(t *testing.T) {
	log, _ := New(config.LoggingConfig{Level: "verbose", Output: "stdout"})
	assert.True(t, log.Info().Enabled())
	assert.False(t, log.Debug().Enabled())
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	ctx := WithContext(context.Background(), log)
	fromCtx := FromContext(ctx)
	fromCtx.Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")

	buf.Reset()
	nop := FromContext(context.Background())
	nop.Info().Msg("dropped")
	assert.Empty(t, buf.String())
}
