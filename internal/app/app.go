package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/five82/showcase/internal/browse"
	"github.com/five82/showcase/internal/catalog"
	"github.com/five82/showcase/internal/config"
	"github.com/five82/showcase/internal/logging"
	"github.com/five82/showcase/internal/prefs"
	"github.com/five82/showcase/internal/route"
	"github.com/five82/showcase/internal/ui"
	"github.com/five82/showcase/internal/web"
)

const serviceName = "showcase"

// Options configure the Showcase application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/showcase/prefs.toml
	Product    string // id or slug to open; empty resumes the last product
	Listen     string // overrides the configured listen address for Serve
}

// Run boots the Showcase TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	startID, err := resolveStartID(opts.Product, userPrefs.LastProductID)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	log, err := logging.New(logging.Options{Service: serviceName, Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	client, err := newCatalogClient(cfg, log, nil)
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	ctrl := browse.New(client, startID)
	StartRefresher(ctx, ctrl, cfg.RefreshInterval, log)

	runErr := ui.Run(ui.Options{
		Context:    ctx,
		Controller: ctrl,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
		Log:        log,
	})

	// Reload so a theme chosen in the UI is kept.
	saved := prefs.Load(opts.PrefsPath)
	saved.LastProductID = ctrl.State().CurrentID
	if err := prefs.Save(opts.PrefsPath, saved); err != nil {
		log.Warn("save prefs failed", zap.Error(err))
	}

	return runErr
}

// Serve runs the product page HTTP server until the context is cancelled.
func Serve(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(logging.Options{Service: serviceName, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	client, err := newCatalogClient(cfg, log, catalog.NewMetrics(reg))
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	addr := cfg.Listen
	if v := strings.TrimSpace(opts.Listen); v != "" {
		addr = v
	}

	h := web.NewHandler(&web.Server{Catalog: client, Log: log}, web.Deps{
		Log:      log,
		Service:  serviceName,
		Registry: reg,
	})
	return web.Serve(ctx, addr, h, log)
}

func newCatalogClient(cfg config.Config, log *zap.Logger, metrics *catalog.Metrics) (*catalog.Client, error) {
	return catalog.NewClient(cfg.APIBaseURL,
		catalog.WithTimeout(cfg.RequestTimeout),
		catalog.WithRetries(cfg.Retries),
		catalog.WithRetryBase(cfg.RetryBase),
		catalog.WithCacheTTL(cfg.CacheTTL),
		catalog.WithLogger(log),
		catalog.WithMetrics(metrics),
	)
}

// resolveStartID picks the product to open: an explicit id or slug wins over
// the last viewed id.
func resolveStartID(product string, lastID int) (int, error) {
	if strings.TrimSpace(product) == "" {
		return max(1, lastID), nil
	}
	ref, err := route.ParseRef(product)
	if err != nil {
		return 0, fmt.Errorf("parse product %q: %w", product, err)
	}
	return ref.ID, nil
}
