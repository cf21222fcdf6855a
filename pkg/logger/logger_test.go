package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLoggerWithOutput("warn", "json", buf)

	l.Infof("hidden %d", 1)
	require.Empty(t, buf.String())

	l.With("user_id", 7).Errorf("shown %d", 2)
	require.Contains(t, buf.String(), "shown 2")
	require.Contains(t, buf.String(), `"user_id":7`)
}

func TestLoggerUnknownLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLoggerWithOutput("verbose", "text", buf)

	l.Debugf("hidden")
	require.Empty(t, buf.String())

	l.Infof("shown")
	require.Contains(t, buf.String(), "shown")
}
