// Package config loads client settings from a config file, the environment
// and an optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/enverbisevac/restmodel/httputil"
	"github.com/enverbisevac/restmodel/logger"
	"github.com/enverbisevac/restmodel/validator"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables Load reads, e.g. RESTMODEL_BASE_URL.
const EnvPrefix = "RESTMODEL"

// Config holds the settings of a transport client.
type Config struct {
	BaseURL        string            `mapstructure:"base_url"`
	TimeoutSeconds int64             `mapstructure:"timeout_seconds"`
	Timeout        time.Duration     `mapstructure:"-"`
	Headers        map[string]string `mapstructure:"headers"`
	RaiseForStatus bool              `mapstructure:"raise_for_status"`
	RequestID      bool              `mapstructure:"request_id"`
	Debug          bool              `mapstructure:"debug"`
	LogLevel       string            `mapstructure:"log_level"`
}

// Load reads the configuration. file may be empty; otherwise it names a
// yaml, json or toml file. Environment variables override the file, and a
// .env file in the working directory is loaded first when present.
func Load(file string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("base_url", "")
	v.SetDefault("timeout_seconds", 30)
	v.SetDefault("headers", map[string]string{})
	v.SetDefault("raise_for_status", false)
	v.SetDefault("request_id", false)
	v.SetDefault("debug", false)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var logLevels = []string{"", "debug", "info", "warn", "warning", "error"}

// Validate checks the configuration and reports every invalid field.
func (c *Config) Validate() error {
	v := validator.Validator{}

	v.CheckField(validator.NotBlank(c.BaseURL), "base_url", "must be provided")
	v.CheckField(c.BaseURL == "" || validator.IsURL(c.BaseURL), "base_url", "must be an absolute http(s) url")
	v.CheckField(c.TimeoutSeconds >= 0, "timeout_seconds", "must not be negative")
	v.CheckField(validator.OneOf(strings.ToLower(strings.TrimSpace(c.LogLevel)), logLevels...),
		"log_level", "must be one of debug, info, warn, error")

	return v.Err("invalid config")
}

// Options converts the configuration into client options.
func (c *Config) Options() []httputil.ClientOption {
	return []httputil.ClientOption{
		httputil.WithTimeout(c.Timeout),
		httputil.WithHeaders(c.Headers),
		httputil.WithRaiseForStatus(c.RaiseForStatus),
		httputil.WithRequestID(c.RequestID),
		httputil.WithDebug(c.Debug),
	}
}

// NewClient builds a client with a logger at the configured level.
func NewClient(c *Config, options ...httputil.ClientOption) (*httputil.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(c.LogLevel)
	if err != nil {
		return nil, err
	}

	opts := append(c.Options(), httputil.WithLogger(log))
	return httputil.NewClient(c.BaseURL, append(opts, options...)...)
}
