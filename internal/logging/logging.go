// internal/logging/logging.go
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the application-wide logger. It is usable before Init is called.
var Log = NewLogger("info")

// Options controls where log output goes.
type Options struct {
	Level        string
	File         string // empty means stderr
	MaxSizeBytes int64
	MaxFiles     int
}

// Init replaces the global logger with one at the given level, writing to stderr.
func Init(level string) {
	Log = NewLogger(level)
}

// InitWithOptions replaces the global logger, optionally writing to a rotating file.
func InitWithOptions(opts Options) error {
	logger := NewLogger(opts.Level)
	if opts.File != "" {
		writer, err := NewRotatingWriter(opts.File, opts.MaxSizeBytes, opts.MaxFiles)
		if err != nil {
			return err
		}
		logger.SetOutput(writer)
	}
	Log = logger
	return nil
}

// NewLogger creates a JSON logger with a specific level.
func NewLogger(level string) *logrus.Logger {

	var log = logrus.New()

	// Using JSON format for structured logging.
	log.SetFormatter(&logrus.JSONFormatter{})
	// stdout carries command output; logs go to stderr.
	log.SetOutput(os.Stderr)
	log.SetLevel(ParseLevel(level))

	return log
}

// ParseLevel maps a config string to a logrus level, defaulting to info.
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// NewRotatingWriter returns a size-rotated log file writer.
// maxSizeBytes is rounded up to whole megabytes; defaults are 10MB and 5 files.
func NewRotatingWriter(file string, maxSizeBytes int64, maxFiles int) (io.WriteCloser, error) {
	if file == "" {
		return nil, fmt.Errorf("rotation file path must not be empty")
	}

	maxSizeMB := int((maxSizeBytes + (1<<20 - 1)) >> 20)
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	if maxFiles <= 0 {
		maxFiles = 5
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   file,
		MaxSize:    maxSizeMB,
		MaxBackups: maxFiles,
		Compress:   false,
	}, nil
}
