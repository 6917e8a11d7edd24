package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Paddle    PaddleConfig    `mapstructure:"paddle"`
	Webhook   WebhookConfig   `mapstructure:"webhook"`
	Caches    CachesConfig    `mapstructure:"caches"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type PaddleConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	APIKey     string        `mapstructure:"api_key"`
	APIVersion string        `mapstructure:"api_version"`
	Timeout    time.Duration `mapstructure:"timeout"`
	PerPage    int           `mapstructure:"per_page"`
}

type WebhookConfig struct {
	// Path is the URL path the webhook listener serves, e.g. "/webhooks/paddle".
	Path string `mapstructure:"path"`
	// Host is the public hostname notification destinations are registered
	// under. Secrets are looked up by the destination path under this host.
	Host string `mapstructure:"host"`
	// MaxSignatureAgeSeconds rejects signatures older than this. -1 disables
	// the age check entirely.
	MaxSignatureAgeSeconds int      `mapstructure:"max_signature_age_seconds"`
	RunInBackground        bool     `mapstructure:"run_in_background"`
	AllowIgnoredEvents     []string `mapstructure:"allow_ignored_events"`
	MaxBodySize            int64    `mapstructure:"max_body_size"`
}

type CachesConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	Prices          bool          `mapstructure:"prices"`
	Products        bool          `mapstructure:"products"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

type NATSConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	URL           string `mapstructure:"url"`
	SubjectPrefix string `mapstructure:"subject_prefix"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8099)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("paddle.base_url", "https://api.paddle.com")
	v.SetDefault("paddle.api_version", "1")
	v.SetDefault("paddle.timeout", "30s")
	v.SetDefault("paddle.per_page", 200)
	v.SetDefault("webhook.path", "/webhooks/paddle")
	v.SetDefault("webhook.max_signature_age_seconds", 60)
	v.SetDefault("webhook.run_in_background", false)
	v.SetDefault("webhook.max_body_size", 1048576)
	v.SetDefault("caches.refresh_interval", "15m")
	v.SetDefault("caches.prices", true)
	v.SetDefault("caches.products", true)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.requests", 600)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.subject_prefix", "paddle.events")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/paddlehook")
	}

	// Environment variables override
	v.SetEnvPrefix("PADDLEHOOK")
	v.AutomaticEnv()

	// Read config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the loaded config for values that cannot work at runtime.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Webhook.Path == "" || c.Webhook.Path[0] != '/' {
		return fmt.Errorf("webhook.path must start with '/': %q", c.Webhook.Path)
	}
	if c.Webhook.MaxSignatureAgeSeconds < -1 {
		return fmt.Errorf("webhook.max_signature_age_seconds must be >= -1: %d", c.Webhook.MaxSignatureAgeSeconds)
	}
	if c.Paddle.PerPage <= 0 {
		return fmt.Errorf("paddle.per_page must be positive: %d", c.Paddle.PerPage)
	}
	return nil
}
