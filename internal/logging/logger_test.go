package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/scerpa/scerpa-config/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesSettings(t *testing.T) {
	tests := []struct {
		name    string
		cfg     domain.LoggingConfig
		wantErr bool
	}{
		{"stderr text", domain.LoggingConfig{Level: "info", Format: "text", Output: "stderr"}, false},
		{"stdout json", domain.LoggingConfig{Level: "debug", Format: "json", Output: "stdout"}, false},
		{"upper case level", domain.LoggingConfig{Level: "WARN", Format: "text", Output: "stderr"}, false},
		{"bad level", domain.LoggingConfig{Level: "loud", Format: "text", Output: "stderr"}, true},
		{"bad format", domain.LoggingConfig{Level: "info", Format: "xml", Output: "stderr"}, true},
		{"bad output", domain.LoggingConfig{Level: "info", Format: "text", Output: "syslog"}, true},
		{"file without path", domain.LoggingConfig{Level: "info", Format: "text", Output: "file"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, l.Close())
		})
	}
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "scerpa-config.log")
	l, err := New(domain.LoggingConfig{Level: "info", Format: "json", Output: "file", File: path})
	require.NoError(t, err)

	l.Info("configuration written", "path", "scerpa_config.yaml")
	require.NoError(t, l.Close())
	assert.NoError(t, l.Close(), "closing twice is a no-op")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "configuration written", entry["msg"])
	assert.Equal(t, "scerpa_config.yaml", entry["path"])
	assert.Equal(t, "info", entry["level"])
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, logrus.DebugLevel, &logrus.JSONFormatter{})

	l.Error("save failed", "error", errors.New("disk full").Error(), "attempt", 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "save failed", entry["msg"])
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "disk full", entry["error"])
	assert.Equal(t, float64(1), entry["attempt"])
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, logrus.WarnLevel, &logrus.TextFormatter{DisableColors: true})

	l.Debug("hidden")
	l.Info("hidden too")
	assert.Empty(t, buf.String())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestToFields(t *testing.T) {
	fields := toFields([]interface{}{"a", 1, 2, "b", "dangling"})

	assert.Equal(t, 1, fields["a"])
	assert.Equal(t, "b", fields["2"])
	assert.Equal(t, "dangling", fields["extra"])
	assert.Empty(t, toFields(nil))
}

func TestDiscard(t *testing.T) {
	l := Discard()
	assert.NotPanics(t, func() {
		l.Debug("x")
		l.Error("y", "k", "v")
	})
	assert.NoError(t, l.Close())
}
