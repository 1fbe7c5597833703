package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lirical-go/lirical/internal/domain"
)

func TestNewDefaultsToInfoOnUnparseableLevel(t *testing.T) {
	l, err := New(domain.LoggingConfig{Level: "not-a-level", Format: "text", Output: "stdout"})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}

func TestNewParsesLevel(t *testing.T) {
	l, err := New(domain.LoggingConfig{Level: "debug", Format: "json", Output: "stdout"})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	_, isJSON := l.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)
}

func TestNewDefaultsToTextFormatter(t *testing.T) {
	l, err := New(domain.LoggingConfig{Level: "info", Format: "text", Output: "stderr"})
	require.NoError(t, err)
	_, isText := l.Formatter.(*logrus.TextFormatter)
	assert.True(t, isText)
}

func TestNewWritesToFile(t *testing.T) {
	path := t.TempDir() + "/lirical.log"
	l, err := New(domain.LoggingConfig{Level: "info", Format: "text", Output: path})
	require.NoError(t, err)
	l.Info("hello")
}
