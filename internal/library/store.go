// Package library persists projects and sync bookkeeping locally: the saved
// project list, per-project last-sync times, the single pending-sync
// snapshot slot, and the sync-enabled flag.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/deckweaver/deckweaver/internal/db"
	"github.com/deckweaver/deckweaver/internal/deck"
)

// ErrNotFound is returned when a named project does not exist locally.
var ErrNotFound = errors.New("project not found")

// Store provides local persistence over the shared database.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Save upserts a project under its name, stamping SavedAt. Unsaved
// (unnamed) projects cannot be persisted.
func (s *Store) Save(ctx context.Context, p *deck.Project) error {
	if p.Unsaved() {
		return fmt.Errorf("saving project: project has no name")
	}

	p.SavedAt = time.Now().UTC()
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding project %q: %w", p.Name, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO projects (name, document, saved_at, drive_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			document = excluded.document,
			saved_at = excluded.saved_at,
			drive_id = excluded.drive_id`,
		p.Name, string(doc), p.SavedAt, p.DriveID)
	if err != nil {
		return fmt.Errorf("saving project %q: %w", p.Name, err)
	}
	return nil
}

// Get loads a project by name.
func (s *Store) Get(ctx context.Context, name string) (*deck.Project, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM projects WHERE name = ?`, name).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading project %q: %w", name, err)
	}

	var p deck.Project
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("decoding project %q: %w", name, err)
	}
	return &p, nil
}

// List returns the names of all saved projects, most recently saved first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM projects ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning project name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes a project and its sync bookkeeping.
func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE name = ?`, name); err != nil {
		return fmt.Errorf("deleting project %q: %w", name, err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sync_times WHERE project_name = ?`, name); err != nil {
		return fmt.Errorf("deleting sync time for %q: %w", name, err)
	}
	return nil
}

// Rename moves a project to a new name, carrying its sync time along.
func (s *Store) Rename(ctx context.Context, oldName, newName string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET name = ? WHERE name = ?`, newName, oldName)
	if err != nil {
		return fmt.Errorf("renaming project %q: %w", oldName, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE sync_times SET project_name = ? WHERE project_name = ?`, newName, oldName)
	if err != nil {
		return fmt.Errorf("renaming sync time for %q: %w", oldName, err)
	}
	return nil
}
