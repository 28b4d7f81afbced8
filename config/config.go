// Package config loads application configuration from environment variables
// and an optional YAML file. Configuration is read once at startup and is
// read-only afterwards.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig
	Extract ExtractConfig
	Gemini  GeminiConfig
	Browser BrowserConfig
	Store   StoreConfig
}

// ServerConfig holds HTTP API configuration.
type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	Environment    string        `mapstructure:"environment"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxRawHTML     int           `mapstructure:"max_raw_html"`
	RateLimitRPS   float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
}

// ExtractConfig holds extraction pipeline configuration.
type ExtractConfig struct {
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout"`
	RenderTimeout    time.Duration `mapstructure:"render_timeout"`
	InferenceTimeout time.Duration `mapstructure:"inference_timeout"`
	DomainRPS        float64       `mapstructure:"domain_rps"`
}

// GeminiConfig holds Gemini API configuration. An empty API key disables
// the AI-assisted strategy rather than failing startup.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// BrowserConfig holds headless browser configuration.
type BrowserConfig struct {
	MaxPages      int64 `mapstructure:"max_pages"`
	MaxConcurrent int64 `mapstructure:"max_concurrent"`
}

// StoreConfig holds wishlist storage configuration.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/linkwish/")

	v.SetEnvPrefix("LINKWISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.request_timeout", "60s")
	v.SetDefault("server.max_raw_html", 512*1024)
	v.SetDefault("server.rate_limit_rps", 5.0)
	v.SetDefault("server.rate_limit_burst", 10)

	v.SetDefault("extract.fetch_timeout", "10s")
	v.SetDefault("extract.render_timeout", "20s")
	v.SetDefault("extract.inference_timeout", "15s")
	v.SetDefault("extract.domain_rps", 1.0)

	// The empty default makes viper aware of the key so AutomaticEnv can
	// resolve LINKWISH_GEMINI_API_KEY.
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")

	v.SetDefault("browser.max_pages", 75)
	v.SetDefault("browser.max_concurrent", 2)

	v.SetDefault("store.path", "linkwish.db")
}

// validate validates the configuration.
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required (set LINKWISH_SERVER_PORT)")
	}
	if config.Server.MaxRawHTML <= 0 {
		return fmt.Errorf("max raw HTML size must be positive, got: %d", config.Server.MaxRawHTML)
	}
	if config.Server.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit must be positive, got: %f", config.Server.RateLimitRPS)
	}
	if config.Extract.DomainRPS <= 0 {
		return fmt.Errorf("domain rate limit must be positive, got: %f", config.Extract.DomainRPS)
	}
	if config.Store.Path == "" {
		return fmt.Errorf("store path is required (set LINKWISH_STORE_PATH)")
	}
	return nil
}
