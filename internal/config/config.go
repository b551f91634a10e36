package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything Showcase needs to reach the catalog and run.
type Config struct {
	APIBaseURL      string
	RequestTimeout  time.Duration
	CacheTTL        time.Duration
	Retries         int
	RetryBase       time.Duration
	RefreshInterval time.Duration
	Listen          string
	LogFile         string
	LogLevel        string
}

const (
	defaultConfigPath      = "~/.config/showcase/config.toml"
	defaultAPIBaseURL      = "https://fakestoreapi.com"
	defaultRequestTimeout  = 12 * time.Second
	defaultCacheTTL        = 60 * time.Second
	defaultRetries         = 2
	defaultRetryBase       = 300 * time.Millisecond
	defaultRefreshInterval = 5 * time.Minute
	defaultListen          = "127.0.0.1:8484"
	defaultLogFile         = "~/.local/state/showcase/showcase.log"
	defaultLogLevel        = "info"

	envPrefix = "showcase"
)

// env holds overrides read from SHOWCASE_* variables.
type env struct {
	APIBaseURL string `envconfig:"API_BASE_URL"`
	Listen     string `envconfig:"LISTEN"`
	LogLevel   string `envconfig:"LOG_LEVEL"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBaseURL:      defaultAPIBaseURL,
		RequestTimeout:  defaultRequestTimeout,
		CacheTTL:        defaultCacheTTL,
		Retries:         defaultRetries,
		RetryBase:       defaultRetryBase,
		RefreshInterval: defaultRefreshInterval,
		Listen:          defaultListen,
		LogFile:         mustExpand(defaultLogFile),
		LogLevel:        defaultLogLevel,
	}
}

// Load locates and parses the config file, falling back to defaults when it
// is missing, then applies SHOWCASE_* environment overrides.
func Load(path string) (Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return Config{}, err
	}

	var overrides env
	if err := envconfig.Process(envPrefix, &overrides); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if v := strings.TrimSpace(overrides.APIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := strings.TrimSpace(overrides.Listen); v != "" {
		cfg.Listen = v
	}
	if v := strings.TrimSpace(overrides.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBaseURL      string `toml:"api_base_url"`
		RequestTimeout  string `toml:"request_timeout"`
		CacheTTL        string `toml:"cache_ttl"`
		Retries         *int   `toml:"retries"`
		RetryBase       string `toml:"retry_base"`
		RefreshInterval string `toml:"refresh_interval"`
		Listen          string `toml:"listen"`
		LogFile         string `toml:"log_file"`
		LogLevel        string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := strings.TrimSpace(raw.Listen); v != "" {
		cfg.Listen = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if raw.Retries != nil {
		if *raw.Retries < 0 {
			return Config{}, fmt.Errorf("parse config: retries must be >= 0, got %d", *raw.Retries)
		}
		cfg.Retries = *raw.Retries
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"request_timeout", raw.RequestTimeout, &cfg.RequestTimeout},
		{"cache_ttl", raw.CacheTTL, &cfg.CacheTTL},
		{"retry_base", raw.RetryBase, &cfg.RetryBase},
		{"refresh_interval", raw.RefreshInterval, &cfg.RefreshInterval},
	}
	for _, d := range durations {
		if err := parseDuration(d.key, d.raw, d.dst); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

func parseDuration(key, raw string, dst *time.Duration) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return fmt.Errorf("parse config: %s: %w", key, err)
	}
	if d <= 0 {
		return fmt.Errorf("parse config: %s must be positive, got %s", key, trimmed)
	}
	*dst = d
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
