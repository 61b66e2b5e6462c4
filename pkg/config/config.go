package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT" validate:"required,numeric"`
	LogLevel   string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	// Upstream profile and page templates. {profile} and {album} are
	// substituted at request time.
	TargetProfile      string `mapstructure:"TARGET_PROFILE" validate:"required"`
	UpstreamBaseURL    string `mapstructure:"UPSTREAM_BASE_URL" validate:"required,url"`
	AlbumsPathTemplate string `mapstructure:"ALBUMS_PATH_TEMPLATE" validate:"required,contains={profile}"`
	PhotosPathTemplate string `mapstructure:"PHOTOS_PATH_TEMPLATE" validate:"required,contains={album}"`

	UserAgents     []string `mapstructure:"USER_AGENTS" validate:"min=1,dive,required"`
	AcceptLanguage string   `mapstructure:"ACCEPT_LANGUAGE"`
	ProxyURLs      []string `mapstructure:"PROXY_URLS" validate:"dive,url"`

	FetchMode           string `mapstructure:"FETCH_MODE" validate:"oneof=http browser"`
	FetchTimeoutSeconds int    `mapstructure:"FETCH_TIMEOUT_SECONDS" validate:"min=1"`
	FetchRetries        int    `mapstructure:"FETCH_RETRIES" validate:"min=0,max=3"`
	RetryBackoffMS      int    `mapstructure:"RETRY_BACKOFF_MS" validate:"min=0"`

	CDNPattern          string   `mapstructure:"CDN_PATTERN" validate:"required"`
	PhotoExcludeMarkers []string `mapstructure:"PHOTO_EXCLUDE_MARKERS"`
	PhotoIDMode         string   `mapstructure:"PHOTO_ID_MODE" validate:"oneof=random hash"`

	PostgresURL           string `mapstructure:"POSTGRES_URL"`
	RedisAddr             string `mapstructure:"REDIS_ADDR"`
	RedisPassword         string `mapstructure:"REDIS_PASSWORD"`
	RedisDB               int    `mapstructure:"REDIS_DB"`
	FailureStreakTTLHours int    `mapstructure:"FAILURE_STREAK_TTL_HOURS" validate:"min=1"`
}

// Load reads configuration from an optional .env file and environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// A missing .env is fine; production is configured through the environment.
	_ = v.ReadInConfig()

	return load(v)
}

const listSeparator = "|"

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	setDefaults(v)

	// Lists come from the environment pipe-separated; user agents contain commas.
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(listSeparator),
	))

	var cfg Config
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TARGET_PROFILE", "terrastationvn")
	v.SetDefault("UPSTREAM_BASE_URL", "https://www.facebook.com")
	v.SetDefault("ALBUMS_PATH_TEMPLATE", "/{profile}/photos_albums")
	v.SetDefault("PHOTOS_PATH_TEMPLATE", "/{profile}/photos/?tab=album&album_id={album}")
	v.SetDefault("USER_AGENTS", []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	})
	v.SetDefault("ACCEPT_LANGUAGE", "en-US,en;q=0.9")
	v.SetDefault("PROXY_URLS", []string{})
	v.SetDefault("FETCH_MODE", "http")
	v.SetDefault("FETCH_TIMEOUT_SECONDS", 30)
	v.SetDefault("FETCH_RETRIES", 1)
	v.SetDefault("RETRY_BACKOFF_MS", 500)
	v.SetDefault("CDN_PATTERN", "fbcdn")
	v.SetDefault("PHOTO_EXCLUDE_MARKERS", []string{"profile", "icon"})
	v.SetDefault("PHOTO_ID_MODE", "random")
	v.SetDefault("POSTGRES_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("FAILURE_STREAK_TTL_HOURS", 24)
}

// FetchTimeout is the per-request upstream timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// RetryBackoff is the base delay before the retry of a failed upstream call.
func (c *Config) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffMS) * time.Millisecond
}

// FailureStreakTTL bounds how long a failure streak survives without new failures.
func (c *Config) FailureStreakTTL() time.Duration {
	return time.Duration(c.FailureStreakTTLHours) * time.Hour
}
