package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "netflix_titles.csv", cfg.DataPath)
	assert.Equal(t, 10, cfg.TopN)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.InDelta(t, 20.0, cfg.Server.RateLimitRPS, 0.001)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "Netflix Content Dashboard", cfg.Dashboard.Title)
	assert.Equal(t, "Movie", cfg.Dashboard.MovieType)
	assert.Equal(t, "TV Show", cfg.Dashboard.ShowType)
	assert.Empty(t, cfg.Dashboard.Palette)
}

func TestLoad_Environment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MARQUEE_ENV", "production")
	t.Setenv("MARQUEE_DATA_PATH", "/data/titles.csv")
	t.Setenv("MARQUEE_TOP_N", "5")
	t.Setenv("MARQUEE_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("MARQUEE_SERVER_READ_TIMEOUT", "3s")
	t.Setenv("MARQUEE_SERVER_CORS_ORIGINS", "https://a.example, https://b.example")

	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "/data/titles.csv", cfg.DataPath)
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())

	yaml := "log_level: DEBUG\ntop_n: 3\nserver:\n  addr: \":9999\"\n  rate_limit_burst: 7\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marquee.yaml"), []byte(yaml), 0o600))

	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.TopN)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, 7, cfg.Server.RateLimitBurst)
}

func TestLoad_DashboardEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MARQUEE_DASHBOARD_TITLE", "Film Night")
	t.Setenv("MARQUEE_DASHBOARD_MOVIE_TYPE", "Film")
	t.Setenv("MARQUEE_DASHBOARD_PALETTE", "#111111, #222222,")

	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "Film Night", cfg.Dashboard.Title)
	assert.Equal(t, "Film", cfg.Dashboard.MovieType)
	assert.Equal(t, "TV Show", cfg.Dashboard.ShowType)
	assert.Equal(t, []string{"#111111", "#222222"}, cfg.Dashboard.Palette)
}

func TestLoad_InvalidPalette(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyPalette, []string{"#E50914", "red"})
	v.Set(KeyShowType, "")

	_, err := Load(v)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "dashboard.palette[1] must be a hex color")
	assert.Contains(t, err.Error(), "dashboard.show_type is required")
}

func TestNewViper_ExplicitFileMissing(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyEnv, "moon")
	v.Set(KeyTopN, 0)
	v.Set(KeyReadTimeout, "0s")

	_, err := Load(v)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "env must be one of")
	assert.Contains(t, err.Error(), "top_n must be greater than or equal to 1")
	assert.Contains(t, err.Error(), "server.read_timeout must be greater than 0")
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("MARQUEE_TEST_FROM_FILE=yes\n"), 0o600))
	t.Setenv("MARQUEE_TEST_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("MARQUEE_TEST_FROM_FILE"))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "yes", os.Getenv("MARQUEE_TEST_FROM_FILE"))

	assert.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env")))
	assert.NoError(t, LoadEnvFile(""))
}

func TestFieldKey(t *testing.T) {
	assert.Equal(t, "server.read_timeout", fieldKey("Config.Server.ReadTimeout"))
	assert.Equal(t, "top_n", fieldKey("Config.TopN"))
	assert.Equal(t, "server.cors_origins", fieldKey("Config.Server.CORSOrigins"))
	assert.Equal(t, "data_path", fieldKey("Config.DataPath"))
}
