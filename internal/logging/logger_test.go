package logging

import (
	"os"
	"path/filepath"
	"testing"

	"velora/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	app := config.AppConfig{Name: "velora", Environment: "test", Version: "dev"}

	t.Run("DefaultStdout", func(t *testing.T) {
		logger, closer, err := New(config.LoggingConfig{}, app)
		require.NoError(t, err)
		require.NotNil(t, logger)
		assert.Nil(t, closer)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("ExplicitLevel", func(t *testing.T) {
		logger, _, err := New(config.LoggingConfig{Level: "debug"}, app)
		require.NoError(t, err)
		assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
	})

	t.Run("UnknownLevelFallsBackToInfo", func(t *testing.T) {
		logger, _, err := New(config.LoggingConfig{Level: "loud"}, app)
		require.NoError(t, err)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("DevelopmentDefaultsToDebug", func(t *testing.T) {
		dev := config.AppConfig{Name: "velora", Environment: "development"}
		logger, _, err := New(config.LoggingConfig{}, dev)
		require.NoError(t, err)
		assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
	})

	t.Run("ExplicitLevelBeatsEnvironment", func(t *testing.T) {
		dev := config.AppConfig{Name: "velora", Environment: "development"}
		logger, _, err := New(config.LoggingConfig{Level: "warn"}, dev)
		require.NoError(t, err)
		assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	})

	t.Run("UnknownOutput", func(t *testing.T) {
		_, _, err := New(config.LoggingConfig{Output: "syslog"}, app)
		assert.ErrorContains(t, err, "unknown logging output")
	})

	t.Run("Console", func(t *testing.T) {
		logger, closer, err := New(config.LoggingConfig{Format: "console"}, app)
		require.NoError(t, err)
		require.NotNil(t, logger)
		assert.Nil(t, closer)
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		logger, closer, err := New(config.LoggingConfig{Output: "file", FilePath: path}, app)
		require.NoError(t, err)
		require.NotNil(t, closer)
		defer closer.Close()

		logger.Info().Msg("hello")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"app":"velora"`)
		assert.Contains(t, string(data), "hello")
	})

	t.Run("FileWithoutPath", func(t *testing.T) {
		_, _, err := New(config.LoggingConfig{Output: "file"}, app)
		assert.Error(t, err)
	})
}
