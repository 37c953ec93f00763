package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// New creates a new logger with the specified log level writing to stdout
func New(level string) *logrus.Logger {
	return NewWithOutput(level, os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
}

// NewWithOutput creates a logger writing to out. Unknown levels fall back to info.
func NewWithOutput(level string, out io.Writer, colors bool) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   colors,
		DisableColors: !colors,
	})

	logger.SetOutput(out)

	return logger
}
