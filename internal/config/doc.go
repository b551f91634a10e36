// Package config loads Showcase configuration.
//
// # Overview
//
// Configuration comes from three layers, later layers winning:
//
//  1. Built-in defaults (Default)
//  2. A TOML file, ~/.config/showcase/config.toml unless a path is given
//  3. SHOWCASE_* environment variables
//
// A missing file is not an error; the defaults are used. Empty or blank
// values in the file also fall back to defaults.
//
// # Default Values
//
//   - API base URL: https://fakestoreapi.com
//   - Request timeout: 12s per attempt
//   - Cache TTL: 60s
//   - Retries: 2, backoff unit 300ms
//   - Count refresh interval: 5m
//   - Listen address (serve mode): 127.0.0.1:8484
//   - Log file (TUI mode): ~/.local/state/showcase/showcase.log
//   - Log level: info
//
// # TOML Format
//
//	api_base_url = "https://fakestoreapi.com"
//	request_timeout = "12s"
//	cache_ttl = "60s"
//	retries = 2
//	retry_base = "300ms"
//	refresh_interval = "5m"
//	listen = "127.0.0.1:8484"
//	log_file = "~/.local/state/showcase/showcase.log"
//	log_level = "info"
//
// Durations use Go syntax (time.ParseDuration) and must be positive.
//
// # Environment
//
//   - SHOWCASE_API_BASE_URL: catalog root
//   - SHOWCASE_LISTEN: serve mode listen address
//   - SHOWCASE_LOG_LEVEL: zap level name
//
// Variables are read with envconfig. The cmd layer loads a .env file first
// when one exists, so the same names work there.
//
// # Path Expansion
//
// Paths beginning with ~ expand to the user's home directory and are made
// absolute.
package config
