package worksite

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eringen/worksite/content"
	"github.com/eringen/worksite/views"
)

// SiteConfig holds all configuration for a worksite server or build.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Fallback site title (default "Studio")
	URL         string `yaml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `yaml:"description"` // Meta description of the Work page

	Addr         string `yaml:"addr"`          // Listen address (default ":3000")
	DatabasePath string `yaml:"database_path"` // SQLite snapshot store (default "data/content.db")

	CMSEndpoint string        `yaml:"cms_endpoint"` // GraphQL endpoint; empty disables remote fetches
	CMSToken    string        `yaml:"cms_token"`
	CMSTimeout  time.Duration `yaml:"cms_timeout"`  // default 10s
	FixturePath string        `yaml:"fixture_path"` // YAML bundle used when nothing else resolves

	ContentCacheTTL   time.Duration `yaml:"content_cache_ttl"`  // default 5min
	SnapshotRetention int           `yaml:"snapshot_retention"` // snapshots kept after each save (default 20)

	AdminPassword string `yaml:"admin_password"` // Enables /admin/ when set
	SessionSecret string `yaml:"session_secret"` // Required with AdminPassword
	CookieSecure  bool   `yaml:"cookie_secure"`  // Set true for HTTPS

	SingleOpen    bool   `yaml:"single_open"`    // Opening a service popover closes the others
	DisclosureKey string `yaml:"disclosure_key"` // "index" (default) or "title"
	HtmxSrc       string `yaml:"htmx_src"`       // Script enabling partial swaps; empty disables

	LogLevel string `yaml:"log_level"` // debug, info, warn, error (default info)
	Dev      bool   `yaml:"dev"`       // Console logging
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Studio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/content.db"
	}
	if c.CMSTimeout == 0 {
		c.CMSTimeout = 10 * time.Second
	}
	if c.ContentCacheTTL == 0 {
		c.ContentCacheTTL = 5 * time.Minute
	}
	if c.SnapshotRetention == 0 {
		c.SnapshotRetention = 20
	}
	if c.DisclosureKey == "" {
		c.DisclosureKey = "index"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *SiteConfig) validate() error {
	switch c.DisclosureKey {
	case "index", "title":
	default:
		return fmt.Errorf("worksite: disclosure_key must be index or title, got %q", c.DisclosureKey)
	}
	if c.AdminPassword != "" && c.SessionSecret == "" {
		return fmt.Errorf("worksite: SessionSecret is required when AdminPassword is set")
	}
	return nil
}

func (c *SiteConfig) disclosureKey() views.DisclosureKey {
	if c.DisclosureKey == "title" {
		return views.DisclosureKeyTitle
	}
	return views.DisclosureKeyIndex
}

func (c *SiteConfig) siteInfo() views.SiteInfo {
	return views.SiteInfo{
		Name:        c.Name,
		URL:         c.URL,
		Description: c.Description,
		Stylesheet:  stylesheetPath,
		HtmxSrc:     c.HtmxSrc,
	}
}

// LoadConfig reads an optional YAML file and applies WORKSITE_* environment
// overrides on top of it. An empty path skips the file.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("worksite: read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("worksite: parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *SiteConfig) applyEnv() error {
	c.Name = EnvOr("WORKSITE_NAME", c.Name)
	c.URL = EnvOr("WORKSITE_URL", c.URL)
	c.Description = EnvOr("WORKSITE_DESCRIPTION", c.Description)
	c.Addr = EnvOr("WORKSITE_ADDR", c.Addr)
	c.DatabasePath = EnvOr("WORKSITE_DATABASE_PATH", c.DatabasePath)
	c.CMSEndpoint = EnvOr("WORKSITE_CMS_ENDPOINT", c.CMSEndpoint)
	c.CMSToken = EnvOr("WORKSITE_CMS_TOKEN", c.CMSToken)
	c.FixturePath = EnvOr("WORKSITE_FIXTURE_PATH", c.FixturePath)
	c.AdminPassword = EnvOr("WORKSITE_ADMIN_PASSWORD", c.AdminPassword)
	c.SessionSecret = EnvOr("WORKSITE_SESSION_SECRET", c.SessionSecret)
	c.DisclosureKey = EnvOr("WORKSITE_DISCLOSURE_KEY", c.DisclosureKey)
	c.HtmxSrc = EnvOr("WORKSITE_HTMX_SRC", c.HtmxSrc)
	c.LogLevel = EnvOr("WORKSITE_LOG_LEVEL", c.LogLevel)

	var err error
	if c.CMSTimeout, err = envDuration("WORKSITE_CMS_TIMEOUT", c.CMSTimeout); err != nil {
		return err
	}
	if c.ContentCacheTTL, err = envDuration("WORKSITE_CONTENT_CACHE_TTL", c.ContentCacheTTL); err != nil {
		return err
	}
	if c.CookieSecure, err = envBool("WORKSITE_COOKIE_SECURE", c.CookieSecure); err != nil {
		return err
	}
	if c.SingleOpen, err = envBool("WORKSITE_SINGLE_OPEN", c.SingleOpen); err != nil {
		return err
	}
	if c.Dev, err = envBool("WORKSITE_DEV", c.Dev); err != nil {
		return err
	}
	return nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback, fmt.Errorf("worksite: %s: %w", key, err)
	}
	return d, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, fmt.Errorf("worksite: %s: %w", key, err)
	}
	return b, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger sets the logger (default no-op).
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.Logger = l
		}
	}
}

// WithSource replaces the content source chain built from the config.
func WithSource(src content.Source) Option {
	return func(a *App) {
		a.source = src
	}
}
