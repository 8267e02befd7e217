// Package config loads relay settings from defaults, a TOML file, a .env
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Defaults
const (
	DefaultServerPort       = ":8080"
	DefaultUpstreamURL      = "https://api.anthropic.com/v1/messages"
	DefaultAnthropicVersion = "2023-06-01"
	DefaultMaxTokens        = 1024
	DefaultMaxBodyBytes     = 10 << 20
	DefaultCORSMaxAge       = 3600
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
	DefaultReadTimeout      = 60 * time.Second
	DefaultIdleTimeout      = 120 * time.Second
)

// Config holds application configuration.
// Priority: env vars → .env file → config.toml → defaults
type Config struct {
	// ServerPort is the address to bind the server to (e.g., ":8080")
	ServerPort string

	// UpstreamURL is the Messages API endpoint every request is forwarded to
	UpstreamURL string

	// AnthropicVersion is sent as the anthropic-version header
	AnthropicVersion string

	// DefaultMaxTokens is used when the caller omits max_tokens
	DefaultMaxTokens int

	// MaxBodyBytes caps the inbound request body; zero means unlimited
	MaxBodyBytes int64

	// UpstreamTimeout bounds the outbound call; zero disables it
	UpstreamTimeout time.Duration

	// Server timeouts. Zero disables each one. WriteTimeout defaults to zero
	// so a long upstream generation is never cut off mid-relay.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// CORSMaxAge is advertised to browsers in Access-Control-Max-Age (seconds)
	CORSMaxAge int

	LogLevel  string
	LogFormat string
}

// Load reads configPath (TOML, optional) and envPath (.env, optional),
// then applies environment overrides. Empty paths fall back to ConfigPath()
// and ".env".
func Load(configPath, envPath string) (*Config, error) {
	if configPath == "" {
		configPath = ConfigPath()
	}
	fileConfig, err := LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", configPath, err)
	}

	if envPath == "" {
		envPath = ".env"
	}
	// godotenv never overwrites variables already set in the process.
	if _, statErr := os.Stat(envPath); statErr == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", envPath, err)
		}
	}

	cfg := &Config{
		ServerPort:       getEnvOrFile("SERVER_PORT", fileConfig.ServerPort, DefaultServerPort),
		UpstreamURL:      getEnvOrFile("UPSTREAM_URL", fileConfig.UpstreamURL, DefaultUpstreamURL),
		AnthropicVersion: getEnvOrFile("ANTHROPIC_VERSION", fileConfig.AnthropicVersion, DefaultAnthropicVersion),
		LogLevel:         getEnvOrFile("LOG_LEVEL", fileConfig.LogLevel, DefaultLogLevel),
		LogFormat:        getEnvOrFile("LOG_FORMAT", fileConfig.LogFormat, DefaultLogFormat),
	}

	if cfg.DefaultMaxTokens, err = getEnvIntOrFile("DEFAULT_MAX_TOKENS", fileConfig.DefaultMaxTokens, DefaultMaxTokens); err != nil {
		return nil, err
	}
	if cfg.CORSMaxAge, err = getEnvIntOrFile("CORS_MAX_AGE", fileConfig.CORSMaxAge, DefaultCORSMaxAge); err != nil {
		return nil, err
	}
	maxBody, err := getEnvIntOrFile("MAX_BODY_BYTES", fileConfig.MaxBodyBytes, DefaultMaxBodyBytes)
	if err != nil {
		return nil, err
	}
	cfg.MaxBodyBytes = int64(maxBody)

	if cfg.UpstreamTimeout, err = getEnvDurationOrFile("UPSTREAM_TIMEOUT", fileConfig.UpstreamTimeout, 0); err != nil {
		return nil, err
	}
	if cfg.ReadTimeout, err = getEnvDurationOrFile("READ_TIMEOUT", fileConfig.ReadTimeout, DefaultReadTimeout); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = getEnvDurationOrFile("WRITE_TIMEOUT", fileConfig.WriteTimeout, 0); err != nil {
		return nil, err
	}
	if cfg.IdleTimeout, err = getEnvDurationOrFile("IDLE_TIMEOUT", fileConfig.IdleTimeout, DefaultIdleTimeout); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.UpstreamURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: upstream_url %q must be an absolute URL", ErrInvalidConfig, c.UpstreamURL)
	}
	if c.AnthropicVersion == "" {
		return fmt.Errorf("%w: anthropic_version must not be empty", ErrInvalidConfig)
	}
	if c.DefaultMaxTokens <= 0 {
		return fmt.Errorf("%w: default_max_tokens must be positive", ErrInvalidConfig)
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: max_body_bytes must not be negative", ErrInvalidConfig)
	}
	for name, d := range map[string]time.Duration{
		"upstream_timeout": c.UpstreamTimeout,
		"read_timeout":     c.ReadTimeout,
		"write_timeout":    c.WriteTimeout,
		"idle_timeout":     c.IdleTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, name)
		}
	}
	if c.CORSMaxAge < 0 {
		return fmt.Errorf("%w: cors_max_age must not be negative", ErrInvalidConfig)
	}
	return nil
}

// getEnvOrFile returns env value, file value, or default (in priority order)
func getEnvOrFile(key, fileValue, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

// getEnvIntOrFile returns env int, file int, or default (in priority order)
func getEnvIntOrFile(key string, fileValue *int, defaultValue int) (int, error) {
	if value := os.Getenv(key); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, value)
		}
		return n, nil
	}
	if fileValue != nil {
		return *fileValue, nil
	}
	return defaultValue, nil
}

// getEnvDurationOrFile accepts Go duration strings ("30s", "2m").
func getEnvDurationOrFile(key, fileValue string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		value = fileValue
	}
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a duration", ErrInvalidConfig, key, value)
	}
	return d, nil
}
