package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, "https://api.weatherapi.com/v1", cfg.Weather.BaseURL)
	require.Equal(t, "data/outfits.db", cfg.Storage.SQLitePath)
	require.False(t, cfg.Settings.Valkey.Enabled)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
weather:
  baseUrl: http://weather.local/v1
  breaker:
    enabled: true
    failureRate: 0.5
    openTimeout: 10s
dailyBrief:
  enabled: true
  schedule: "30 6 * * *"
  timezone: Europe/Paris
  city: Paris
`), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("WEATHER_API_KEY", "secret")
	t.Setenv("DAILY_BRIEF_CITY", "Lyon")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://weather.local/v1", cfg.Weather.BaseURL)
	require.Equal(t, "secret", cfg.Weather.APIKey)
	require.Equal(t, 10*time.Second, cfg.Weather.Breaker.OpenTimeout)
	require.Equal(t, "30 6 * * *", cfg.DailyBrief.Schedule)
	require.Equal(t, "Lyon", cfg.DailyBrief.City)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("MQTT_TOPIC", "")
	require.NoError(t, os.Unsetenv("MQTT_TOPIC"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MQTT_TOPIC=home/outfit\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "home/outfit", cfg.MQTT.Topic)
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	cfg.Settings.Valkey.Enabled = true
	require.ErrorContains(t, cfg.Validate(), "settings.valkey.addr")

	cfg = defaultConfig()
	cfg.DailyBrief.Enabled = true
	cfg.DailyBrief.Timezone = "Mars/Olympus"
	require.ErrorContains(t, cfg.Validate(), "dailyBrief.timezone")

	cfg = defaultConfig()
	cfg.Weather.Breaker.FailureRate = 1.5
	require.ErrorContains(t, cfg.Validate(), "failureRate")
}

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
