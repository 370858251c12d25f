// Package logging configures the process-wide logrus logger and provides
// request-scoped log entries for HTTP handlers.
package logging

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger setup
type Options struct {
	Level string
	File  string
	JSON  bool
}

// Setup configures the standard logrus logger. When File is set, output is
// written to stderr and to a rotated log file.
func Setup(opts Options) (io.Closer, error) {
	return configure(log.StandardLogger(), opts, os.Stderr)
}

func configure(logger *log.Logger, opts Options, stderr io.Writer) (io.Closer, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	if opts.JSON {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	if opts.File == "" {
		logger.SetOutput(stderr)
		return nopCloser{}, nil
	}

	fileLogger := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}
	logger.SetOutput(io.MultiWriter(stderr, fileLogger))
	return fileLogger, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
