// Package worksite serves and builds the Work page of a content-managed
// studio site, built with Go, Echo, and templ.
//
// Content is resolved from a headless CMS GraphQL endpoint, with the last
// good response kept in SQLite and a YAML fixture as last resort. Rendering
// lives in the views package; this package owns configuration, the HTTP
// server, the content cache, snapshots, and the static build.
package worksite

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/worksite/content"
)

// App is the central worksite application. It wires together the store,
// content sources, cache, handlers and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *BundleCache
	Logger *zap.Logger

	cms          *content.CMSClient
	source       content.Source
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
	initialized  bool
}

// New creates a new worksite App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{
		Config:    cfg,
		Echo:      e,
		Logger:    zap.NewNop(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the store, assembles the content sources and cache, and
// registers middleware and routes. Start calls it; tests and the build
// command use it directly.
func (a *App) Init() error {
	if a.initialized {
		return nil
	}
	if err := a.Config.validate(); err != nil {
		return err
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("worksite: init store: %w", err)
	}
	a.Store = store

	if a.Config.CMSEndpoint != "" {
		a.cms = content.NewCMSClient(a.Config.CMSEndpoint, a.Config.CMSToken, a.Config.CMSTimeout)
	}
	if a.source == nil {
		a.source = a.buildSource()
	}
	a.Cache = NewBundleCache(a.source, a.Config.ContentCacheTTL)

	if a.adminEnabled() {
		a.loginLimiter = NewLoginLimiter(5, time.Minute)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.initialized = true
	return nil
}

// Start initializes the app and serves until ctx is done, then shuts the
// server down gracefully.
func (a *App) Start(ctx context.Context) error {
	if err := a.Init(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("listening", zap.String("addr", a.Config.Addr), zap.Bool("admin", a.adminEnabled()))
		errCh <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.Logger.Info("shutting down")
	if err := a.Echo.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) adminEnabled() bool {
	return a.Config.AdminPassword != ""
}

// content returns the source pages render from, preferring the cache.
func (a *App) content() content.Source {
	if a.Cache != nil {
		return content.SourceFunc(a.Cache.Get)
	}
	return a.source
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
