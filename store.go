package worksite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/eringen/worksite/content"
)

// Snapshot is a resolved content bundle as it was stored.
type Snapshot struct {
	ID        int64
	Slug      string
	Source    string
	FetchedAt time.Time
	Size      int
	Bundle    content.Bundle
}

// Store wraps a SQLite database holding content snapshots, so the site can
// still render the last known content when the CMS is unreachable.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the refresh handler write while page renders read; the busy
	// timeout makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS snapshots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    slug TEXT NOT NULL,
    source TEXT NOT NULL,
    payload TEXT NOT NULL,
    fetched_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS snapshots_slug_id ON snapshots (slug, id DESC);
`)
	return err
}

// SaveSnapshot stores b as the newest snapshot of the Work page.
func (s *Store) SaveSnapshot(ctx context.Context, source string, b content.Bundle) (Snapshot, error) {
	payload, err := json.Marshal(b)
	if err != nil {
		return Snapshot{}, fmt.Errorf("worksite: encode snapshot: %w", err)
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (slug, source, payload, fetched_at) VALUES (?, ?, ?, ?)`,
		content.PageSlug, source, string(payload), now.Format(time.RFC3339Nano))
	if err != nil {
		return Snapshot{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		ID:        id,
		Slug:      content.PageSlug,
		Source:    source,
		FetchedAt: now,
		Size:      len(payload),
		Bundle:    b,
	}, nil
}

// LatestSnapshot returns the newest snapshot, or content.ErrNotFound when
// none has been stored.
func (s *Store) LatestSnapshot(ctx context.Context) (Snapshot, error) {
	var (
		snap             Snapshot
		payload, fetched string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, slug, source, payload, fetched_at FROM snapshots WHERE slug = ? ORDER BY id DESC LIMIT 1`,
		content.PageSlug).Scan(&snap.ID, &snap.Slug, &snap.Source, &payload, &fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, content.ErrNotFound
	}
	if err != nil {
		return Snapshot{}, err
	}
	if err := json.Unmarshal([]byte(payload), &snap.Bundle); err != nil {
		return Snapshot{}, fmt.Errorf("worksite: decode snapshot %d: %w", snap.ID, err)
	}
	snap.Size = len(payload)
	snap.FetchedAt = parseStoredTime(fetched)
	return snap, nil
}

// ListSnapshots returns up to limit snapshots, newest first, without their
// bundles.
func (s *Store) ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, slug, source, length(payload), fetched_at FROM snapshots WHERE slug = ? ORDER BY id DESC LIMIT ?`,
		content.PageSlug, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var (
			snap    Snapshot
			fetched string
		)
		if err := rows.Scan(&snap.ID, &snap.Slug, &snap.Source, &snap.Size, &fetched); err != nil {
			return nil, err
		}
		snap.FetchedAt = parseStoredTime(fetched)
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// PruneSnapshots deletes all but the newest keep snapshots and reports how
// many were removed.
func (s *Store) PruneSnapshots(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}
	res, err := s.db.ExecContext(ctx, `
DELETE FROM snapshots
WHERE slug = ? AND id NOT IN (
    SELECT id FROM snapshots WHERE slug = ? ORDER BY id DESC LIMIT ?
)`, content.PageSlug, content.PageSlug, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Fetch serves the latest snapshot as a content source.
func (s *Store) Fetch(ctx context.Context) (content.Bundle, error) {
	snap, err := s.LatestSnapshot(ctx)
	if err != nil {
		return content.Bundle{}, err
	}
	return snap.Bundle, nil
}

func parseStoredTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
