package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
cortex:
  url: " ws://cortex.local:4000/stream "
log:
  level: WARN
`)
	cfg, err := loadConfig(viper.New(), path, nil)
	require.NoError(t, err)

	assert.Equal(t, "ws://cortex.local:4000/stream", cfg.CortexURL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 300, cfg.LogCapacity)
	assert.Equal(t, 60*time.Second, cfg.RetryInterval)
	assert.Equal(t, 4*time.Second, cfg.PulseWindow)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "cortex:\n  url: ws://from-file\nmonitor:\n  retry_interval: 5s\n")
	t.Setenv("NEURONWATCH_CORTEX_URL", "ws://from-env")
	t.Setenv("NEURONWATCH_HTTP_PORT", "9191")

	cfg, err := loadConfig(viper.New(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, "ws://from-env", cfg.CortexURL)
	assert.Equal(t, "9191", cfg.HTTPPort)
	assert.Equal(t, 5*time.Second, cfg.RetryInterval)
}

func TestLoadConfig_ChangedFlagsWin(t *testing.T) {
	path := writeConfig(t, "cortex:\n  url: ws://from-file\nlog:\n  level: info\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("cortex-url", "", "")
	flags.String("log-level", "", "")
	flags.String("port", "", "")
	require.NoError(t, flags.Parse([]string{"--cortex-url", "ws://from-flag", "--port", "7000"}))

	cfg, err := loadConfig(viper.New(), path, flags)
	require.NoError(t, err)
	assert.Equal(t, "ws://from-flag", cfg.CortexURL)
	assert.Equal(t, "7000", cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel, "unset flags do not shadow the file")
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := loadConfig(viper.New(), writeConfig(t, "http:\n  port: \"1\"\n"), nil)
	assert.ErrorIs(t, err, errMissingCortexURL)

	_, err = loadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yml"), nil)
	assert.Error(t, err, "an explicit config path must exist")
}
