package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file structure.
// Pointer fields distinguish "unset" from zero.
type FileConfig struct {
	ServerPort       string `toml:"server_port"`
	UpstreamURL      string `toml:"upstream_url"`
	AnthropicVersion string `toml:"anthropic_version"`
	DefaultMaxTokens *int   `toml:"default_max_tokens"`
	MaxBodyBytes     *int   `toml:"max_body_bytes"`
	UpstreamTimeout  string `toml:"upstream_timeout"`
	ReadTimeout      string `toml:"read_timeout"`
	WriteTimeout     string `toml:"write_timeout"`
	IdleTimeout      string `toml:"idle_timeout"`
	CORSMaxAge       *int   `toml:"cors_max_age"`
	LogLevel         string `toml:"log_level"`
	LogFormat        string `toml:"log_format"`
}

// LoadFile loads configuration from the TOML file at path.
// Returns an empty FileConfig if the file doesn't exist.
func LoadFile(path string) (*FileConfig, error) {
	cfg := &FileConfig{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EnsureConfigFile writes a commented default config to path if none exists.
// Missing parent directories are created.
func EnsureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	defaultConfig := `# msgrelay configuration
# Environment variables (SERVER_PORT, UPSTREAM_URL, ...) override these values.

# server_port = ":8080"
# upstream_url = "https://api.anthropic.com/v1/messages"
# anthropic_version = "2023-06-01"
# default_max_tokens = 1024
# max_body_bytes = 10485760  # 0 = unlimited

# Empty or "0s" disables the upstream timeout
# upstream_timeout = "0s"

# HTTP server timeouts; "0s" disables. write_timeout stays off by default
# so long generations are relayed in full.
# read_timeout = "60s"
# write_timeout = "0s"
# idle_timeout = "120s"

# cors_max_age = 3600
# log_level = "info"   # debug, info, warn, error
# log_format = "text"  # text, json
`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
