package worksite

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/eringen/worksite/content"
)

// Snapshot sources.
const (
	SourceCMS     = "cms"
	SourceFixture = "fixture"
)

// recordingSource stores every bundle the wrapped source resolves.
type recordingSource struct {
	source content.Source
	name   string
	store  *Store
	keep   int
	logger *zap.Logger
}

func (r *recordingSource) Fetch(ctx context.Context) (content.Bundle, error) {
	b, err := r.source.Fetch(ctx)
	if err != nil {
		return b, err
	}
	if _, err := r.store.SaveSnapshot(ctx, r.name, b); err != nil {
		r.logger.Warn("save snapshot failed", zap.String("source", r.name), zap.Error(err))
		return b, nil
	}
	if n, err := r.store.PruneSnapshots(ctx, r.keep); err != nil {
		r.logger.Warn("prune snapshots failed", zap.Error(err))
	} else if n > 0 {
		r.logger.Debug("pruned snapshots", zap.Int64("removed", n))
	}
	return b, nil
}

// buildSource assembles the content chain from the config: the CMS (recorded
// into the store), the latest stored snapshot, then the fixture file.
func (a *App) buildSource() content.Source {
	var sources []content.Source
	names := []string{}
	if a.cms != nil {
		sources = append(sources, &recordingSource{
			source: a.cms,
			name:   SourceCMS,
			store:  a.Store,
			keep:   a.Config.SnapshotRetention,
			logger: a.Logger,
		})
		names = append(names, SourceCMS)
	}
	if a.Store != nil {
		sources = append(sources, a.Store)
		names = append(names, "snapshot")
	}
	if a.Config.FixturePath != "" {
		sources = append(sources, content.FileSource{Path: a.Config.FixturePath})
		names = append(names, SourceFixture)
	}
	chain := content.NewChain(sources...)
	chain.OnError = func(i int, err error) {
		if errors.Is(err, content.ErrNotFound) {
			a.Logger.Debug("content source empty", zap.String("source", names[i]))
			return
		}
		a.Logger.Warn("content source failed", zap.String("source", names[i]), zap.Error(err))
	}
	return chain
}

// Sync fetches the bundle from the CMS, stores it as the newest snapshot and
// drops the cached copy. Without a CMS endpoint it loads the fixture instead.
func (a *App) Sync(ctx context.Context) (Snapshot, error) {
	if a.Store == nil {
		return Snapshot{}, fmt.Errorf("worksite: store not initialized")
	}
	var (
		src  content.Source
		name string
	)
	switch {
	case a.cms != nil:
		src, name = a.cms, SourceCMS
	case a.Config.FixturePath != "":
		src, name = content.FileSource{Path: a.Config.FixturePath}, SourceFixture
	default:
		return Snapshot{}, fmt.Errorf("worksite: nothing to sync: set cms_endpoint or fixture_path")
	}

	b, err := src.Fetch(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("worksite: sync from %s: %w", name, err)
	}
	snap, err := a.Store.SaveSnapshot(ctx, name, b)
	if err != nil {
		return Snapshot{}, fmt.Errorf("worksite: save snapshot: %w", err)
	}
	if _, err := a.Store.PruneSnapshots(ctx, a.Config.SnapshotRetention); err != nil {
		a.Logger.Warn("prune snapshots failed", zap.Error(err))
	}
	if a.Cache != nil {
		a.Cache.Invalidate()
	}
	a.Logger.Info("content synced",
		zap.String("source", name),
		zap.Int64("snapshot", snap.ID),
		zap.Int("services", len(b.Services)),
		zap.Int("clients", len(b.Page.Clients)),
	)
	return snap, nil
}
