// Package config loads marquee configuration with precedence:
// flags, then MARQUEE_* environment variables (a .env file included),
// then marquee.yaml, then defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/spektr-org/marquee/engine"
)

const (
	configFileName = "marquee"
	configFileType = "yaml"
	envPrefix      = "MARQUEE"
)

// Config keys.
const (
	KeyEnv            = "env"
	KeyLogLevel       = "log_level"
	KeyDataPath       = "data_path"
	KeyTopN           = "top_n"
	KeyServerAddr     = "server.addr"
	KeyReadTimeout    = "server.read_timeout"
	KeyWriteTimeout   = "server.write_timeout"
	KeyIdleTimeout    = "server.idle_timeout"
	KeyCORSOrigins    = "server.cors_origins"
	KeyRateLimitRPS   = "server.rate_limit_rps"
	KeyRateLimitBurst = "server.rate_limit_burst"
	KeyTitle          = "dashboard.title"
	KeyDescription    = "dashboard.description"
	KeyMovieType      = "dashboard.movie_type"
	KeyShowType       = "dashboard.show_type"
	KeyPalette        = "dashboard.palette"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the application configuration.
type Config struct {
	Env      string       `mapstructure:"env" validate:"oneof=development staging production"`
	LogLevel string       `mapstructure:"log_level" validate:"oneof=debug info warn warning error"`
	DataPath string       `mapstructure:"data_path" validate:"required"`
	TopN     int          `mapstructure:"top_n" validate:"gte=1,lte=100"`
	Server    ServerConfig    `mapstructure:"server"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr           string        `mapstructure:"addr" validate:"required"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
	RateLimitRPS   float64       `mapstructure:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst" validate:"gte=0"`
}

// DashboardConfig holds the labels and colors the dashboard renders with.
type DashboardConfig struct {
	Title       string   `mapstructure:"title" validate:"required"`
	Description string   `mapstructure:"description"`
	MovieType   string   `mapstructure:"movie_type" validate:"required"`
	ShowType    string   `mapstructure:"show_type" validate:"required"`
	Palette     []string `mapstructure:"palette" validate:"dive,hexcolor"`
}

// IsProduction reports whether the app runs in production.
func (c *Config) IsProduction() bool { return c.Env == "production" }

// SetDefaults registers every key with its default value.
// Keys without a default are invisible to environment lookups on Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyEnv, "development")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyDataPath, "netflix_titles.csv")
	v.SetDefault(KeyTopN, 10)
	v.SetDefault(KeyServerAddr, ":8080")
	v.SetDefault(KeyReadTimeout, 15*time.Second)
	v.SetDefault(KeyWriteTimeout, 15*time.Second)
	v.SetDefault(KeyIdleTimeout, 60*time.Second)
	v.SetDefault(KeyCORSOrigins, []string{"*"})
	v.SetDefault(KeyRateLimitRPS, 20.0)
	v.SetDefault(KeyRateLimitBurst, 40)
	v.SetDefault(KeyTitle, engine.DefaultTitle)
	v.SetDefault(KeyDescription, engine.DefaultDescription)
	v.SetDefault(KeyMovieType, engine.DefaultMovieType)
	v.SetDefault(KeyShowType, engine.DefaultShowType)
	v.SetDefault(KeyPalette, []string{})
}

// NewViper returns a viper instance with defaults, environment binding and
// the config file applied. An explicit configFile must exist; otherwise
// marquee.yaml is looked up in "." and $HOME/.marquee and may be absent.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
		return v, nil
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".marquee"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// LoadEnvFile loads KEY=value pairs from path into the process environment.
// Variables already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.CleanOrigins()
	cfg.Dashboard.Palette = cleanList(cfg.Dashboard.Palette)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CleanOrigins trims CORS origins and drops empty entries.
func (c *Config) CleanOrigins() {
	c.Server.CORSOrigins = cleanList(c.Server.CORSOrigins)
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// ============================================================================
// VALIDATION
// ============================================================================

var validate = validator.New()

// Validate checks cfg and reports every failing key in one error.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		msgs = append(msgs, fmt.Sprintf("%s %s", fieldKey(e.Namespace()), friendlyMessage(e)))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// fieldKey maps "Config.Server.ReadTimeout" to "server.read_timeout".
func fieldKey(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = snake(p)
	}
	return strings.Join(parts, ".")
}

func snake(s string) string {
	switch s {
	case "TopN":
		return "top_n"
	case "CORSOrigins":
		return "cors_origins"
	case "RateLimitRPS":
		return "rate_limit_rps"
	}
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "hexcolor":
		return "must be a hex color such as #E50914"
	default:
		return "is invalid"
	}
}
