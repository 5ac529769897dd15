// Package logging provides the logrus-backed implementation of domain.Logger
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/scerpa/scerpa-config/internal/domain"
	"github.com/sirupsen/logrus"
)

// Logger adapts a logrus logger to domain.Logger. Fields are passed as
// alternating key/value pairs.
type Logger struct {
	*logrus.Logger
	closer io.Closer
}

// New builds a logger from the logging settings. When output is "file"
// the log file is opened in append mode and must be released with Close.
func New(cfg domain.LoggingConfig) (*Logger, error) {
	l := &Logger{Logger: logrus.New()}

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	l.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: cfg.Output == "file"})
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	switch strings.ToLower(cfg.Output) {
	case "stdout":
		l.SetOutput(os.Stdout)
	case "", "stderr":
		l.SetOutput(os.Stderr)
	case "file":
		if cfg.File == "" {
			return nil, fmt.Errorf("log output is file but no file is configured")
		}
		if dir := filepath.Dir(cfg.File); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.SetOutput(f)
		l.closer = f
	default:
		return nil, fmt.Errorf("invalid log output %q", cfg.Output)
	}

	l.WithField("level", l.GetLevel()).Debug("Logging enabled.")
	return l, nil
}

// NewWithWriter builds a logger writing to w. Used by tests and by the
// show command, which never logs to a file.
func NewWithWriter(w io.Writer, level logrus.Level, formatter logrus.Formatter) *Logger {
	l := &Logger{Logger: logrus.New()}
	l.SetOutput(w)
	l.SetLevel(level)
	if formatter != nil {
		l.SetFormatter(formatter)
	}
	return l
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewWithWriter(io.Discard, logrus.PanicLevel, nil)
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

// Debug implements domain.Logger
func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.entry(fields).Debug(msg)
}

// Info implements domain.Logger
func (l *Logger) Info(msg string, fields ...interface{}) {
	l.entry(fields).Info(msg)
}

// Warn implements domain.Logger
func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.entry(fields).Warn(msg)
}

// Error implements domain.Logger
func (l *Logger) Error(msg string, fields ...interface{}) {
	l.entry(fields).Error(msg)
}

// Fatal implements domain.Logger
func (l *Logger) Fatal(msg string, fields ...interface{}) {
	l.entry(fields).Fatal(msg)
}

func (l *Logger) entry(fields []interface{}) *logrus.Entry {
	return l.Logger.WithFields(toFields(fields))
}

// toFields pairs up keys and values. A trailing key without a value is
// kept under "extra"; non-string keys are formatted with %v.
func toFields(kv []interface{}) logrus.Fields {
	fields := make(logrus.Fields, len(kv)/2+1)
	for i := 0; i < len(kv); i += 2 {
		if i+1 >= len(kv) {
			fields["extra"] = kv[i]
			break
		}
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kv[i])
		}
		fields[key] = kv[i+1]
	}
	return fields
}

var _ domain.Logger = (*Logger)(nil)
