// Package logger configures the process-wide logrus instance used by the
// SDK. By default it logs to stderr at info level; Init wires an optional
// rotating file sink.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config logging configuration
type Config struct {
	Level      string // debug, info, warn, error
	OutputFile string // file path; empty means stderr only
	MaxSize    int    // max log file size in MB before rotation
	MaxBackups int    // rotated files to keep
	MaxAge     int    // days to keep rotated files
	Compress   bool   // gzip rotated files
}

var (
	log  *logrus.Logger
	once sync.Once
)

// Logger returns the shared logger, initializing it with defaults on first
// use.
func Logger() *logrus.Logger {
	once.Do(func() {
		if log == nil {
			log = newLogger(Config{Level: "info"})
		}
	})
	return log
}

// Init configures the shared logger. Calling it after the logger has been
// used replaces level and output but keeps existing entries valid.
func Init(cfg Config) error {
	l := Logger()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	l.SetOutput(output(cfg))
	return nil
}

// WithComponent returns an entry tagged with the SDK component name.
func WithComponent(name string) *logrus.Entry {
	return Logger().WithField("component", name)
}

func newLogger(cfg Config) *logrus.Logger {
	l := logrus.New()
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	l.SetOutput(output(cfg))
	return l
}

func output(cfg Config) io.Writer {
	if cfg.OutputFile == "" {
		return os.Stderr
	}
	rotating := &lumberjack.Logger{
		Filename:   cfg.OutputFile,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
	return io.MultiWriter(os.Stderr, rotating)
}
