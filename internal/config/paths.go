package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DataDir returns the path to the msgrelay data directory.
// - Windows: %APPDATA%\msgrelay
// - Other OS: ~/.msgrelay
func DataDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "msgrelay")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".msgrelay"
	}
	return filepath.Join(home, ".msgrelay")
}

// ConfigPath returns the default config file path (~/.msgrelay/config.toml).
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.toml")
}
