package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toastd/domain/toasts"
)

func TestLoadAppConfigFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "DB_PATH", "METRICS_ENABLED", "SSE_KEEPALIVE", "HISTORY_RETENTION", "TOAST_DEFAULTS_FILE"} {
		t.Setenv(key, "")
	}

	cfg := LoadAppConfigFromEnv()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "./toastd.db", cfg.Database.Path)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, 30*time.Second, cfg.SSEKeepAlive)
	assert.Equal(t, 24*time.Hour, cfg.HistoryRetention)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadAppConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("METRICS_ENABLED", "off")
	t.Setenv("SSE_KEEPALIVE", "5s")
	t.Setenv("HISTORY_RETENTION", "0s")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg := LoadAppConfigFromEnv()

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, 5*time.Second, cfg.SSEKeepAlive)
	assert.Equal(t, time.Duration(0), cfg.HistoryRetention)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
}

func TestParseToastDefaults_PartialOverlay(t *testing.T) {
	doc := []byte(`
position: top-center
duration: 4500ms
show_icon: false
`)

	got, err := ParseToastDefaults(doc, toasts.BuiltinDefaults())

	require.NoError(t, err)
	assert.Equal(t, toasts.PositionTopCenter, got.Position)
	assert.Equal(t, 4500*time.Millisecond, got.Duration)
	assert.False(t, got.ShowIcon)
	assert.True(t, got.Dismissible)
	assert.Equal(t, toasts.VariantDefault, got.Variant)
}

func TestParseToastDefaults_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown variant":  "variant: sparkly",
		"unknown position": "position: middle",
		"bad duration":     "duration: soon",
		"malformed yaml":   "variant: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseToastDefaults([]byte(doc), toasts.BuiltinDefaults())

			assert.Error(t, err)
			assert.Equal(t, toasts.BuiltinDefaults(), got)
		})
	}
}

func TestAppConfig_LoadToastDefaults_FileThenEnv(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "toasts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variant: info\nduration: 10s\n"), 0o600))
	t.Setenv("TOAST_DEFAULT_DURATION", "2s")
	t.Setenv("TOAST_DEFAULT_POSITION", "top-left")
	cfg := &AppConfig{ToastDefaultsFile: path}

	// Act
	got, err := cfg.LoadToastDefaults()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, toasts.VariantInfo, got.Variant)
	assert.Equal(t, 2*time.Second, got.Duration)
	assert.Equal(t, toasts.PositionTopLeft, got.Position)
}

func TestAppConfig_LoadToastDefaults_MissingFile(t *testing.T) {
	cfg := &AppConfig{ToastDefaultsFile: filepath.Join(t.TempDir(), "absent.yaml")}

	got, err := cfg.LoadToastDefaults()

	assert.Error(t, err)
	assert.Equal(t, toasts.BuiltinDefaults(), got)
}
