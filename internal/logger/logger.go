package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration
type Config struct {
	Level string
	// File, when set, receives a rotated copy of every line.
	File string
	// Output defaults to stderr.
	Output io.Writer
}

// New builds the process logger. The returned closer flushes the rotating
// file, if any.
func New(cfg Config) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	var writer io.Writer = os.Stderr
	if cfg.Output != nil {
		writer = cfg.Output
	}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		writer = io.MultiWriter(writer, fileWriter)
		closer = fileWriter
	}

	logger := log.NewWithOptions(writer, log.Options{
		ReportTimestamp: true,
		ReportCaller:    level == log.DebugLevel,
		Level:           level,
		Prefix:          "habitboard",
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
