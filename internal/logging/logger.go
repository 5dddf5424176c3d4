package logging

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how the service logs.
type Options struct {
	Service     string
	Environment string
	Level       string
	File        string
	// Output replaces stdout as the console sink.
	Output io.Writer
}

type entryKey struct{}

var base = logrus.NewEntry(logrus.StandardLogger())

// New builds the process logger and makes it the fallback returned by FromContext.
func New(opt Options) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(strings.TrimSpace(opt.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if opt.Environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var out io.Writer = os.Stdout
	if opt.Output != nil {
		out = opt.Output
	}
	if opt.File != "" {
		out = io.MultiWriter(out, &lumberjack.Logger{
			Filename:   opt.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	logger.SetOutput(out)

	base = logger.WithField("service", opt.Service)
	return logger
}

// WithEntry stores a request-scoped entry in ctx.
func WithEntry(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, entryKey{}, entry)
}

// FromContext returns the request-scoped entry, or the process entry when none was stored.
func FromContext(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if entry, ok := ctx.Value(entryKey{}).(*logrus.Entry); ok && entry != nil {
			return entry
		}
	}
	return base
}

// Op is shorthand for FromContext(ctx).WithField("operation", name).
func Op(ctx context.Context, name string) *logrus.Entry {
	return FromContext(ctx).WithField("operation", name)
}
