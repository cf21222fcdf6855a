package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type defaultLogger struct {
	entry *logrus.Entry
}

// NewLogger returns a logger writing to stdout. Unknown levels fall back to
// info, format is either "json" or "text".
func NewLogger(level, format string) *defaultLogger {
	return NewLoggerWithOutput(level, format, os.Stdout)
}

func NewLoggerWithOutput(level, format string, w io.Writer) *defaultLogger {
	l := logrus.New()
	l.SetOutput(w)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}

	return &defaultLogger{entry: logrus.NewEntry(l)}
}

// With returns a logger which attaches key=value to every record.
func (l *defaultLogger) With(key string, value any) *defaultLogger {
	return &defaultLogger{entry: l.entry.WithField(key, value)}
}

func (l *defaultLogger) Debugf(msg string, a ...any) {
	l.entry.Debugf(msg, a...)
}

func (l *defaultLogger) Infof(msg string, a ...any) {
	l.entry.Infof(msg, a...)
}

func (l *defaultLogger) Warnf(msg string, a ...any) {
	l.entry.Warnf(msg, a...)
}

func (l *defaultLogger) Errorf(msg string, a ...any) {
	l.entry.Errorf(msg, a...)
}
