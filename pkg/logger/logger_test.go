package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewWithOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput("debug", &buf, false)

	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.WithField("member_id", 7).Info("Created member")
	assert.Contains(t, buf.String(), "Created member")
	assert.Contains(t, buf.String(), "member_id=7")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	l := NewWithOutput("chatty", &bytes.Buffer{}, false)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}
