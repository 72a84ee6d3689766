package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

// Logger adapts a logrus logger to lemon.Logger.
type Logger struct {
	entry *logrus.Logger
}

// NewLogger creates a logger writing to stderr. With verbose set the level is
// debug, otherwise warn. A non-empty logFile adds a rotated file output.
func NewLogger(verbose bool, logFile string) (*Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.SetOutput(os.Stderr)

	if logFile != "" {
		writer, err := rotatingWriter(logFile)
		if err != nil {
			return nil, err
		}

		logger.SetOutput(io.MultiWriter(os.Stderr, writer))
	}

	return &Logger{entry: logger}, nil
}

// NewLoggerWithOutput creates a debug level logger writing to out.
func NewLoggerWithOutput(out io.Writer) *Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.DebugLevel)
	logger.SetOutput(out)

	return &Logger{entry: logger}
}

func rotatingWriter(logFile string) (io.Writer, error) {
	if logFile == "" {
		return nil, constants.ErrNoLogFilePath
	}

	err := os.MkdirAll(filepath.Dir(logFile), constants.LogDirPerm)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory '%s': %w", filepath.Dir(logFile), err)
	}

	return &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    constants.DefaultLogMaxSizeMB,
		MaxBackups: constants.DefaultLogMaxBackups,
		Compress:   true,
	}, nil
}

// Debug implements lemon.Logger.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Debug(msg)
}

// Info implements lemon.Logger.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Info(msg)
}

// Warn implements lemon.Logger.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Warn(msg)
}

// Error implements lemon.Logger.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Error(msg)
}

var _ lemon.Logger = (*Logger)(nil)
