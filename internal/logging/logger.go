package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"velora/internal/config"

	"github.com/rs/zerolog"
)

// New constructs the process logger. Level and format left empty in the
// config follow the environment: development gets a debug-level console
// writer, everything else info-level JSON.
func New(cfg config.LoggingConfig, app config.AppConfig) (*zerolog.Logger, io.Closer, error) {
	development := strings.EqualFold(strings.TrimSpace(app.Environment), "development")

	output, closer, err := resolveOutput(cfg)
	if err != nil {
		return nil, nil, err
	}

	format := strings.ToLower(strings.TrimSpace(cfg.Format))
	if format == "" && development {
		format = "console"
	}
	if format == "console" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	logger := zerolog.New(output).
		Level(resolveLevel(cfg.Level, development)).
		With().
		Timestamp().
		Str("app", app.Name).
		Str("env", app.Environment).
		Str("version", app.Version).
		Logger()

	return &logger, closer, nil
}

func resolveLevel(level string, development bool) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		if development {
			return zerolog.DebugLevel
		}
		return zerolog.InfoLevel
	}

	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return parsed
}

// resolveOutput picks the destination writer. The returned closer is nil
// for the process streams and non-nil for files; the caller owns it.
func resolveOutput(cfg config.LoggingConfig) (io.Writer, io.Closer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Output)) {
	case "", "stdout":
		return os.Stdout, nil, nil
	case "stderr":
		return os.Stderr, nil, nil
	case "file":
		if cfg.FilePath == "" {
			return nil, nil, fmt.Errorf("logging.output=file requires logging.file_path")
		}
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return file, file, nil
	default:
		return nil, nil, fmt.Errorf("unknown logging output %q", cfg.Output)
	}
}
