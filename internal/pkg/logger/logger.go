package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/doeshing/clai-go/internal/domain"
	"github.com/doeshing/clai-go/internal/ports"
)

// Options configures the logrus-backed logger.
type Options struct {
	Verbose bool
	// Level applies when Verbose is off ("debug", "info", "warn", "error").
	Level string
	// File routes output to a rotating log file instead of Output.
	File string
	// Output defaults to stderr.
	Output io.Writer
}

// Logrus implements ports.Logger on top of logrus.
type Logrus struct {
	log    *logrus.Logger
	closer io.Closer
}

// New builds a logger from options.
func New(opts Options) *Logrus {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02 15:04:05",
		QuoteEmptyFields: true,
	})
	log.SetLevel(resolveLevel(opts))

	l := &Logrus{log: log}
	switch {
	case opts.File != "":
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		_ = os.MkdirAll(filepath.Dir(opts.File), domain.DirectoryPermissions)
		log.SetOutput(rotating)
		l.closer = rotating
	case opts.Output != nil:
		log.SetOutput(opts.Output)
	default:
		log.SetOutput(os.Stderr)
	}
	return l
}

// NewStd creates a stderr logger that only speaks up in verbose mode.
func NewStd(verbose bool) *Logrus {
	return New(Options{Verbose: verbose, Level: "error"})
}

func resolveLevel(opts Options) logrus.Level {
	if opts.Verbose {
		return logrus.DebugLevel
	}
	level, err := logrus.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}

func (l *Logrus) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(fields).Debug(msg)
}

func (l *Logrus) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(fields).Info(msg)
}

func (l *Logrus) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(fields).Warn(msg)
}

func (l *Logrus) Error(msg string, err error, fields map[string]interface{}) {
	l.log.WithFields(fields).WithError(err).Error(msg)
}

// Close flushes the rotating file, if any.
func (l *Logrus) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

var _ ports.Logger = (*Logrus)(nil)
