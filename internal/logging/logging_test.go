package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "info"},
		{"INFO", "info"},
		{"debug", "debug"},
		{" warning ", "warn"},
		{"error", "error"},
	}
	for _, tt := range tests {
		lvl, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, lvl.String(), tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pendulab.log")

	logger, err := New("debug", path)
	require.NoError(t, err)
	logger.Info("drag started", zap.String("bob", "bob1"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(data)
	assert.True(t, strings.Contains(line, `"msg":"drag started"`), line)
	assert.True(t, strings.Contains(line, `"bob":"bob1"`), line)
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New("verbose")
	assert.Error(t, err)
}

func TestNewConfigKeepsErrorsOffTheTerminal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pendulab.log")

	cfg, err := newConfig("info", []string{path})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, cfg.OutputPaths)
	assert.Equal(t, []string{path}, cfg.ErrorOutputPaths)

	cfg, err = newConfig("info", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"stderr"}, cfg.OutputPaths)
	assert.Equal(t, []string{"stderr"}, cfg.ErrorOutputPaths)
}
