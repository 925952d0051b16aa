package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToInfo(t *testing.T) {
	result := New(Config{})
	defer result.Close()

	assert.Equal(t, zerolog.InfoLevel, result.Logger.GetLevel())
	assert.False(t, result.UsingFile)
}

func TestNewParsesLevel(t *testing.T) {
	result := New(Config{Level: "debug"})
	defer result.Close()

	assert.Equal(t, zerolog.DebugLevel, result.Logger.GetLevel())
}

func TestNewInvalidLevelFallsBack(t *testing.T) {
	result := New(Config{Level: "shouting"})
	defer result.Close()

	assert.Equal(t, zerolog.InfoLevel, result.Logger.GetLevel())
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleetshift.log")
	result := New(Config{Level: "info", Format: "json", File: path})

	require.True(t, result.UsingFile)
	assert.Equal(t, path, result.FilePath)

	result.Logger.Info().Str("component", "test").Msg("hello")
	require.NoError(t, result.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"test"`)
}

func TestNewUnwritableFileDegradesToStderr(t *testing.T) {
	result := New(Config{File: filepath.Join(t.TempDir(), "missing", "x.log")})
	defer result.Close()

	assert.False(t, result.UsingFile)
}

func TestContextRoundTrip(t *testing.T) {
	result := New(Config{Level: "warn"})
	defer result.Close()

	logger := ComponentLogger(result.Logger, "engine")
	ctx := WithContext(context.Background(), logger)

	got := FromContext(ctx)
	require.NotNil(t, got)
	assert.Equal(t, zerolog.WarnLevel, got.GetLevel())
}
