package worksite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/eringen/worksite/views"
)

// Build renders the Work page as static files under outDir:
//
//	index.html                      redirect to /work/
//	work/index.html                 every disclosure closed
//	work/services/<id>/index.html   one disclosure open
//	public/work.css
//
// Static hosting cannot read query strings, so each disclosure state gets its
// own path and at most one popover is open.
func (a *App) Build(ctx context.Context, outDir string) error {
	b, err := a.content().Fetch(ctx)
	if err != nil {
		return fmt.Errorf("worksite: build: %w", err)
	}

	opts := views.WorkOptions{
		Site:   a.Config.siteInfo(),
		Key:    views.DisclosureKeyIndex,
		Static: true,
	}
	opts.Site.HtmxSrc = ""

	pages := map[string]*views.Disclosures{
		filepath.Join("work", "index.html"): views.NewDisclosures(true),
	}
	for i, svc := range b.Services {
		id := views.ServiceID(opts.Key, i, svc)
		pages[filepath.Join("work", "services", id, "index.html")] = views.NewDisclosures(true, id)
	}

	for rel, state := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		o := opts
		o.Disclosures = state
		if err := writeNode(ctx, filepath.Join(outDir, rel), views.Component(views.WorkPage(b, o))); err != nil {
			return err
		}
	}

	css, err := EmbeddedAssets.ReadFile("embedded/work.css")
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(outDir, "public", "work.css"), css); err != nil {
		return err
	}
	redirect := []byte(`<!doctype html><meta charset="utf-8"><meta http-equiv="refresh" content="0; url=/work/"><link rel="canonical" href="/work/">`)
	if err := writeFile(filepath.Join(outDir, "index.html"), redirect); err != nil {
		return err
	}

	a.Logger.Info("static build written",
		zap.String("out", outDir),
		zap.Int("pages", len(pages)),
	)
	return nil
}

func writeNode(ctx context.Context, path string, cmp templ.Component) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("worksite: create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("worksite: create %s: %w", path, err)
	}
	if err := cmp.Render(ctx, f); err != nil {
		f.Close()
		return fmt.Errorf("worksite: render %s: %w", path, err)
	}
	return f.Close()
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("worksite: create %s: %w", filepath.Dir(path), err)
	}
	return os.WriteFile(path, data, 0o644)
}
