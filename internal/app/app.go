package app

import (
	"context"
	"fmt"

	"github.com/artpar/marquee/internal/catalog"
	"github.com/artpar/marquee/internal/config"
	"github.com/artpar/marquee/internal/crawl"
	"github.com/artpar/marquee/internal/kv"
	"github.com/artpar/marquee/internal/kv/sqlite"
	"github.com/artpar/marquee/internal/locale"
	"github.com/artpar/marquee/internal/wishlist"
	"go.uber.org/zap"
)

// App is the main application container with dependency injection.
type App struct {
	config   config.Config
	logger   *zap.Logger
	catalog  catalog.Catalog
	store    kv.Store
	apply    func(locale.Projection)
	wishlist *wishlist.Store
	language *locale.Store
}

// Option is a function that configures the App.
type Option func(*App)

// New creates a new App with the given options. Missing collaborators get
// defaults: an in-memory store and a catalog client built from the config.
func New(opts ...Option) *App {
	app := &App{
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.store == nil {
		app.store = kv.NewMemory()
	}
	if app.catalog == nil {
		app.catalog = NewCatalog(app.config)
	}

	app.wishlist = wishlist.New(app.store, app.logger)
	app.language = locale.NewStore(app.store, app.logger, app.apply)
	return app
}

// Open builds an App persisting to the SQLite database under the configured
// data directory.
func Open(cfg config.Config, opts ...Option) (*App, error) {
	path, err := cfg.DatabasePath()
	if err != nil {
		return nil, err
	}

	store, err := sqlite.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	opts = append([]Option{WithConfig(cfg), WithStore(store)}, opts...)
	return New(opts...), nil
}

// NewCatalog builds the TMDB client described by cfg.
func NewCatalog(cfg config.Config) *catalog.Client {
	opts := []catalog.Option{
		catalog.WithAPIKey(cfg.APIKey),
		catalog.WithRateLimit(cfg.RateLimit),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, catalog.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, catalog.WithTimeout(cfg.Timeout))
	}
	return catalog.NewClient(opts...)
}

// WithConfig sets the application configuration.
func WithConfig(cfg config.Config) Option {
	return func(a *App) {
		a.config = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithCatalog sets the remote catalog.
func WithCatalog(c catalog.Catalog) Option {
	return func(a *App) {
		a.catalog = c
	}
}

// WithStore sets the durable store.
func WithStore(store kv.Store) Option {
	return func(a *App) {
		a.store = store
	}
}

// WithProjection registers the function that applies language changes to
// the rendering layer.
func WithProjection(apply func(locale.Projection)) Option {
	return func(a *App) {
		a.apply = apply
	}
}

// Load reads persisted state. It is safe to call repeatedly.
func (a *App) Load(ctx context.Context) {
	a.wishlist.Load(ctx)
	a.language.Load(ctx)
}

// Config returns the application configuration.
func (a *App) Config() config.Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Catalog returns the remote catalog.
func (a *App) Catalog() catalog.Catalog {
	return a.catalog
}

// Wishlist returns the wishlist store.
func (a *App) Wishlist() *wishlist.Store {
	return a.wishlist
}

// Language returns the language preference store.
func (a *App) Language() *locale.Store {
	return a.language
}

// Lang returns the current language code for catalog requests.
func (a *App) Lang() string {
	return string(a.language.Value())
}

// Crawler returns a crawler configured from the application config.
func (a *App) Crawler(overrides ...crawl.Option) *crawl.Crawler {
	cfg := crawl.DefaultConfig()
	if c := a.config.Crawl; c.Pages > 0 || c.Seeds > 0 {
		cfg.Pages = c.Pages
		cfg.Seeds = c.Seeds
	}
	if a.config.Crawl.Concurrency > 0 {
		cfg.Concurrency = a.config.Crawl.Concurrency
	}
	if a.config.Crawl.RequestTimeout > 0 {
		cfg.RequestTimeout = a.config.Crawl.RequestTimeout
	}

	opts := append([]crawl.Option{crawl.WithConfig(cfg), crawl.WithLogger(a.logger)}, overrides...)
	return crawl.New(a.catalog, opts...)
}

// Close releases the durable store.
func (a *App) Close() error {
	return a.store.Close()
}
