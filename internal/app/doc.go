// Package app provides the orchestration layer for the Showcase application.
//
// # Overview
//
// This package wires together configuration, preferences, logging, the
// catalog client, the browse controller and either the TUI or the HTTP page
// server. It is the composition root where all dependencies are initialized
// and connected.
//
// # Components
//
//   - app.go: Run (terminal browser) and Serve (product page server)
//   - refresher.go: Background goroutine that re-reads the catalog size
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()       Read config.toml + SHOWCASE_* env
//	       ├─────> prefs.Load()        Theme and last viewed product
//	       ├─────> logging.New()       zap logger writing to the log file
//	       ├─────> catalog.NewClient() Cached, retrying HTTP client
//	       ├─────> browse.New()        Controller at the start product
//	       ├─────> StartRefresher()    Launch background catalog refresh
//	       ├─────> ui.Run()            Start TUI (blocks)
//	       └─────> prefs.Save()        Remember the last product
//
//	┌──────────────┐
//	│   Serve()    │
//	└──────┬───────┘
//	       ├─────> catalog.NewMetrics() Client collectors on a fresh registry
//	       ├─────> web.NewHandler()     chi router, metrics, tracing
//	       └─────> web.Serve()          Blocks until ctx is cancelled
//
// # Refresh Behavior
//
// The refresher waits one interval (default: 5 minutes), then re-runs
// Controller.Init. When the catalog shrank below the current product the
// controller moves back to product 1 and the refresher reloads it. Failures
// are logged and retried after calculateBackoff, which doubles from 2s up to
// 30s, then the regular interval resumes.
//
// # Error Handling
//
// Fatal errors (returned from Run or Serve):
//   - Config file invalid (a missing file falls back to defaults)
//   - Unusable log level or log file location
//   - Invalid catalog base URL or -product reference
//   - Listen failures in Serve
//
// Recoverable errors (logged or shown in the UI):
//   - Catalog fetch and count failures
//   - Preference save failures
//
// # Usage Example
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{Product: "fancy-shirt-18"}); err != nil {
//		log.Fatalf("showcase failed: %v", err)
//	}
package app
