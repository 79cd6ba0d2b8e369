package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/deckweaver/deckweaver/internal/deck"
)

// LastSync returns the last successful-sync time recorded for a project, or
// the zero time when the project has never synced.
func (s *Store) LastSync(ctx context.Context, projectName string) (time.Time, error) {
	var ts time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT last_sync FROM sync_times WHERE project_name = ?`, projectName).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("loading last sync for %q: %w", projectName, err)
	}
	return ts, nil
}

// SetLastSync records the last successful-sync time for a project.
func (s *Store) SetLastSync(ctx context.Context, projectName string, t time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_times (project_name, last_sync) VALUES (?, ?)
		ON CONFLICT(project_name) DO UPDATE SET last_sync = excluded.last_sync`,
		projectName, t.UTC())
	if err != nil {
		return fmt.Errorf("recording last sync for %q: %w", projectName, err)
	}
	return nil
}

// SetPending stores a snapshot in the single pending-sync slot, replacing
// any previous occupant.
func (s *Store) SetPending(ctx context.Context, p *deck.Project) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding pending snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pending_sync (slot, document, queued_at) VALUES (1, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			document = excluded.document,
			queued_at = excluded.queued_at`,
		string(doc), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("storing pending snapshot: %w", err)
	}
	return nil
}

// Pending returns the queued pending-sync snapshot, or nil when the slot is
// empty.
func (s *Store) Pending(ctx context.Context) (*deck.Project, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM pending_sync WHERE slot = 1`).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading pending snapshot: %w", err)
	}

	var p deck.Project
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("decoding pending snapshot: %w", err)
	}
	return &p, nil
}

// ClearPending empties the pending-sync slot.
func (s *Store) ClearPending(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pending_sync WHERE slot = 1`); err != nil {
		return fmt.Errorf("clearing pending snapshot: %w", err)
	}
	return nil
}

// SyncEnabled reports the stored sync-enabled flag; defaults to false.
func (s *Store) SyncEnabled(ctx context.Context) (bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = 'sync_enabled'`).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading sync flag: %w", err)
	}
	return value == "true", nil
}

// SetSyncEnabled stores the sync-enabled flag.
func (s *Store) SetSyncEnabled(ctx context.Context, enabled bool) error {
	value := "false"
	if enabled {
		value = "true"
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES ('sync_enabled', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, value)
	if err != nil {
		return fmt.Errorf("storing sync flag: %w", err)
	}
	return nil
}
