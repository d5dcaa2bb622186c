package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grez-lucas/web-interaction/internal/interaction"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", missingEnvFile(t))

	require.NoError(t, err)
	assert.Equal(t, interaction.DefaultTiming(), cfg.Timing.Interaction())
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Empty(t, cfg.Logger.File)
	assert.Equal(t, 10, cfg.Logger.MaxSizeMB)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 2*time.Minute, cfg.Browser.Timeout)
	assert.Equal(t, 50*time.Millisecond, cfg.KeyPress.MinDelay)
	assert.Equal(t, 150*time.Millisecond, cfg.KeyPress.MaxDelay)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("WEBACT_TIMING_PASTE_SETTLE", "25ms")
	t.Setenv("WEBACT_BROWSER_HEADLESS", "false")

	cfg, err := Load("", missingEnvFile(t))

	require.NoError(t, err)
	assert.Equal(t, 25*time.Millisecond, cfg.Timing.PasteSettle)
	assert.False(t, cfg.Browser.Headless)
}

func TestLoad_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("WEBACT_LOGGER_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("WEBACT_LOGGER_LEVEL") })

	cfg, err := Load("", envFile)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webact.yaml")
	yaml := `
timing:
  command_insert_settle: 1s
keypress:
  min_delay: 10ms
  max_delay: 20ms
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path, missingEnvFile(t))

	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Timing.CommandInsertSettle)
	assert.Equal(t, 100*time.Millisecond, cfg.Timing.CommandClearSettle, "unset keys keep defaults")
	assert.Equal(t, 10*time.Millisecond, cfg.KeyPress.MinDelay)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), missingEnvFile(t))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(v *viper.Viper)
		wantErr string
	}{
		{"negative settle", func(v *viper.Viper) { v.Set("timing.paste_settle", "-1ms") }, "timing.paste_settle"},
		{"inverted key delays", func(v *viper.Viper) { v.Set("keypress.min_delay", "1s") }, "exceeds"},
		{"unknown log format", func(v *viper.Viper) { v.Set("logger.format", "xml") }, "logger.format"},
		{"negative log backups", func(v *viper.Viper) { v.Set("logger.max_backups", -1) }, "rotation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			tt.mutate(v)

			_, err := NewConfigFromViper(v)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
