package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Weather    WeatherConfig    `yaml:"weather"`
	Storage    StorageConfig    `yaml:"storage"`
	Settings   SettingsConfig   `yaml:"settings"`
	Images     ImagesConfig     `yaml:"images"`
	DailyBrief DailyBriefConfig `yaml:"dailyBrief"`
	MQTT       MQTTConfig       `yaml:"mqtt"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// WeatherConfig points at the upstream weather API.
type WeatherConfig struct {
	APIKey  string        `yaml:"apiKey"`
	BaseURL string        `yaml:"baseUrl"`
	Breaker BreakerConfig `yaml:"breaker"`
}

// BreakerConfig tunes the circuit breaker in front of the weather API.
type BreakerConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MinRequests uint32        `yaml:"minRequests"`
	FailureRate float64       `yaml:"failureRate"`
	OpenTimeout time.Duration `yaml:"openTimeout"`
}

// StorageConfig selects where outfits and preferences live.
type StorageConfig struct {
	SQLitePath string         `yaml:"sqlitePath"`
	Postgres   PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// SettingsConfig controls where user settings are kept.
type SettingsConfig struct {
	Valkey ValkeyConfig `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the key-value store.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// ImagesConfig configures S3-compatible storage for outfit images.
type ImagesConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	MaxBytes  int64  `yaml:"maxBytes"`
}

// DailyBriefConfig schedules the daily outfit notification.
type DailyBriefConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"`
	Timezone string `yaml:"timezone"`
	City     string `yaml:"city"`
}

// MQTTConfig configures notification delivery over MQTT.
type MQTTConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"clientId"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Topic    string `yaml:"topic"`
}

// Load reads configuration from .env, a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("WEATHER_API_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("WEATHER_BASE_URL"); v != "" {
		cfg.Weather.BaseURL = v
	}
	if v := os.Getenv("WEATHER_BREAKER_ENABLED"); v != "" {
		cfg.Weather.Breaker.Enabled = parseBool(v)
	}
	if v := os.Getenv("WEATHER_BREAKER_OPEN_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Weather.Breaker.OpenTimeout = parsed
		}
	}
	if v := os.Getenv("STORAGE_SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("STORAGE_POSTGRES_DSN"); v != "" {
		cfg.Storage.Postgres.DSN = v
	}
	if v := os.Getenv("STORAGE_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Storage.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("SETTINGS_VALKEY_ENABLED"); v != "" {
		cfg.Settings.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("SETTINGS_VALKEY_ADDR"); v != "" {
		cfg.Settings.Valkey.Addr = v
	}
	if v := os.Getenv("IMAGES_ENABLED"); v != "" {
		cfg.Images.Enabled = parseBool(v)
	}
	if v := os.Getenv("IMAGES_ENDPOINT"); v != "" {
		cfg.Images.Endpoint = v
	}
	if v := os.Getenv("IMAGES_ACCESS_KEY"); v != "" {
		cfg.Images.AccessKey = v
	}
	if v := os.Getenv("IMAGES_SECRET_KEY"); v != "" {
		cfg.Images.SecretKey = v
	}
	if v := os.Getenv("IMAGES_BUCKET"); v != "" {
		cfg.Images.Bucket = v
	}
	if v := os.Getenv("IMAGES_REGION"); v != "" {
		cfg.Images.Region = v
	}
	if v := os.Getenv("DAILY_BRIEF_ENABLED"); v != "" {
		cfg.DailyBrief.Enabled = parseBool(v)
	}
	if v := os.Getenv("DAILY_BRIEF_SCHEDULE"); v != "" {
		cfg.DailyBrief.Schedule = v
	}
	if v := os.Getenv("DAILY_BRIEF_TIMEZONE"); v != "" {
		cfg.DailyBrief.Timezone = v
	}
	if v := os.Getenv("DAILY_BRIEF_CITY"); v != "" {
		cfg.DailyBrief.City = v
	}
	if v := os.Getenv("MQTT_ENABLED"); v != "" {
		cfg.MQTT.Enabled = parseBool(v)
	}
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		cfg.MQTT.Broker = v
	}
	if v := os.Getenv("MQTT_CLIENT_ID"); v != "" {
		cfg.MQTT.ClientID = v
	}
	if v := os.Getenv("MQTT_USERNAME"); v != "" {
		cfg.MQTT.Username = v
	}
	if v := os.Getenv("MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Password = v
	}
	if v := os.Getenv("MQTT_TOPIC"); v != "" {
		cfg.MQTT.Topic = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.weatherapi.com/v1",
			Breaker: BreakerConfig{
				Enabled:     true,
				MinRequests: 3,
				FailureRate: 0.6,
				OpenTimeout: 30 * time.Second,
			},
		},
		Storage: StorageConfig{
			SQLitePath: "data/outfits.db",
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
		Settings: SettingsConfig{
			Valkey: ValkeyConfig{
				Prefix: "outfit-advisor",
			},
		},
		Images: ImagesConfig{
			Bucket:   "outfit-images",
			MaxBytes: 5 << 20,
		},
		DailyBrief: DailyBriefConfig{
			Schedule: "0 7 * * *",
			Timezone: "UTC",
		},
		MQTT: MQTTConfig{
			Broker:   "tcp://localhost:1883",
			ClientID: "outfit-advisor",
			Topic:    "outfit-advisor/daily",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.Weather.BaseURL) == "" {
		return errors.New("weather.baseUrl cannot be empty")
	}
	if c.Weather.Breaker.Enabled {
		if c.Weather.Breaker.FailureRate <= 0 || c.Weather.Breaker.FailureRate > 1 {
			return errors.New("weather.breaker.failureRate must be within (0, 1]")
		}
		if c.Weather.Breaker.OpenTimeout <= 0 {
			return errors.New("weather.breaker.openTimeout must be positive")
		}
	}
	if strings.TrimSpace(c.Storage.SQLitePath) == "" {
		return errors.New("storage.sqlitePath cannot be empty")
	}
	if c.Settings.Valkey.Enabled && strings.TrimSpace(c.Settings.Valkey.Addr) == "" {
		return errors.New("settings.valkey.addr cannot be empty when valkey is enabled")
	}
	if c.Images.Enabled {
		if strings.TrimSpace(c.Images.Endpoint) == "" {
			return errors.New("images.endpoint cannot be empty when images are enabled")
		}
		if strings.TrimSpace(c.Images.Bucket) == "" {
			return errors.New("images.bucket cannot be empty when images are enabled")
		}
	}
	if c.Images.MaxBytes <= 0 {
		return errors.New("images.maxBytes must be positive")
	}
	if c.DailyBrief.Enabled {
		if strings.TrimSpace(c.DailyBrief.Schedule) == "" {
			return errors.New("dailyBrief.schedule cannot be empty when enabled")
		}
		if _, err := time.LoadLocation(c.DailyBrief.Timezone); err != nil {
			return fmt.Errorf("dailyBrief.timezone: %w", err)
		}
	}
	if c.MQTT.Enabled {
		if strings.TrimSpace(c.MQTT.Broker) == "" {
			return errors.New("mqtt.broker cannot be empty when mqtt is enabled")
		}
		if strings.TrimSpace(c.MQTT.Topic) == "" {
			return errors.New("mqtt.topic cannot be empty when mqtt is enabled")
		}
	}
	return nil
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
