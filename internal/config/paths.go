package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DataDir returns the default data directory for smutbot.
// Windows: %LOCALAPPDATA%\smutbot
// Linux/Mac: ~/.local/share/smutbot
func DataDir() string {
	if dir := os.Getenv("SMUTBOT_DATA_DIR"); dir != "" {
		return dir
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "smutbot")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "smutbot")
}

// CacheDir returns the default thumbnail cache directory.
func CacheDir() string {
	return filepath.Join(DataDir(), "cache")
}

// EnsureDirs creates the required directories if they don't exist.
func EnsureDirs(cfg *Config) error {
	for _, dir := range []string{DataDir(), cfg.CacheDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
