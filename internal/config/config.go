package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the plugin configuration.
type Config struct {
	Proxy         string `yaml:"proxy"`          // empty = disabled; http(s):// or socks5:// URL
	BlurLevel     int    `yaml:"blur_level"`     // 0-100, 0 = no blur
	MaxResults    int    `yaml:"max_results"`    // 1-50 list entries per reply
	Timeout       int    `yaml:"timeout"`        // request timeout in seconds, 1-300
	CacheDir      string `yaml:"cache_dir"`      // thumbnail cache directory
	AutoCleanup   bool   `yaml:"auto_cleanup"`   // drop old thumbnails before fetching new ones
	ShowThumbnail bool   `yaml:"show_thumbnail"` // attach thumbnails to replies

	// Gateway server settings.
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DefaultConfig returns a Config with documented defaults.
func DefaultConfig() *Config {
	return &Config{
		BlurLevel:     0,
		MaxResults:    10,
		Timeout:       30,
		CacheDir:      CacheDir(),
		AutoCleanup:   true,
		ShowThumbnail: true,
		Host:          "0.0.0.0",
		Port:          8087,
	}
}

// Load builds the effective configuration: defaults, then the YAML file (the
// given path, or the default file if one exists), then environment
// overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		if candidate := filepath.Join(DataDir(), "config.yaml"); fileExists(candidate) {
			path = candidate
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the documented ranges.
func (c *Config) Validate() error {
	if c.BlurLevel < 0 || c.BlurLevel > 100 {
		return fmt.Errorf("blur_level %d out of range 0-100", c.BlurLevel)
	}
	if c.MaxResults < 1 || c.MaxResults > 50 {
		return fmt.Errorf("max_results %d out of range 1-50", c.MaxResults)
	}
	if c.Timeout < 1 || c.Timeout > 300 {
		return fmt.Errorf("timeout %d out of range 1-300 seconds", c.Timeout)
	}
	if c.CacheDir == "" {
		return fmt.Errorf("cache_dir must not be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SMUTBOT_PROXY"); v != "" {
		c.Proxy = v
	}
	if v, ok := envInt("SMUTBOT_BLUR_LEVEL"); ok {
		c.BlurLevel = v
	}
	if v, ok := envInt("SMUTBOT_MAX_RESULTS"); ok {
		c.MaxResults = v
	}
	if v, ok := envInt("SMUTBOT_TIMEOUT"); ok {
		c.Timeout = v
	}
	if v := os.Getenv("SMUTBOT_CACHE_DIR"); v != "" {
		c.CacheDir = v
	}
	if v, ok := envBool("SMUTBOT_AUTO_CLEANUP"); ok {
		c.AutoCleanup = v
	}
	if v, ok := envBool("SMUTBOT_SHOW_THUMBNAIL"); ok {
		c.ShowThumbnail = v
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
