package library

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deckweaver/deckweaver/internal/db"
	"github.com/deckweaver/deckweaver/internal/deck"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func sampleProject(name string) *deck.Project {
	p := deck.NewProject()
	p.Name = name
	p.Slides = append(p.Slides, deck.Slide{
		Template: deck.KindBullets,
		Data:     &deck.BulletsData{Title: "B", Items: []deck.BulletItem{{Text: "x"}}},
	})
	return p
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := sampleProject("demo")
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if p.SavedAt.IsZero() {
		t.Errorf("Save should stamp SavedAt")
	}

	got, err := s.Get(ctx, "demo")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "demo" || len(got.Slides) != 2 {
		t.Errorf("round trip lost data: %+v", got)
	}
	if got.Slides[1].Data.(*deck.BulletsData).Items[0].Text != "x" {
		t.Errorf("slide data lost in round trip")
	}
}

func TestSaveRejectsUnnamedProject(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(context.Background(), deck.NewProject()); err == nil {
		t.Errorf("expected error saving unnamed project")
	}
}

func TestGetMissingProject(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListOrdersByRecency(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second"} {
		if err := s.Save(ctx, sampleProject(name)); err != nil {
			t.Fatalf("Save(%s) failed: %v", name, err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 2 || names[0] != "second" {
		t.Errorf("expected most recent first, got %v", names)
	}
}

func TestDeleteRemovesSyncTime(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, sampleProject("doomed")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.SetLastSync(ctx, "doomed", time.Now()); err != nil {
		t.Fatalf("SetLastSync failed: %v", err)
	}
	if err := s.Delete(ctx, "doomed"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	ts, err := s.LastSync(ctx, "doomed")
	if err != nil {
		t.Fatalf("LastSync failed: %v", err)
	}
	if !ts.IsZero() {
		t.Errorf("sync time should be gone after delete")
	}
}

func TestRename(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, sampleProject("old")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Rename(ctx, "old", "new"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if _, err := s.Get(ctx, "new"); err != nil {
		t.Errorf("renamed project not found: %v", err)
	}
	if err := s.Rename(ctx, "ghost", "other"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound renaming missing project, got %v", err)
	}
}

func TestLastSyncLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ts, err := s.LastSync(ctx, "demo")
	if err != nil {
		t.Fatalf("LastSync failed: %v", err)
	}
	if !ts.IsZero() {
		t.Errorf("unseen project should have zero last-sync time")
	}

	when := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := s.SetLastSync(ctx, "demo", when); err != nil {
		t.Fatalf("SetLastSync failed: %v", err)
	}
	ts, err = s.LastSync(ctx, "demo")
	if err != nil {
		t.Fatalf("LastSync failed: %v", err)
	}
	if !ts.Equal(when) {
		t.Errorf("last sync: got %v, want %v", ts, when)
	}
}

func TestPendingSlot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p, err := s.Pending(ctx)
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	if p != nil {
		t.Fatalf("expected empty pending slot, got %+v", p)
	}

	if err := s.SetPending(ctx, sampleProject("queued")); err != nil {
		t.Fatalf("SetPending failed: %v", err)
	}
	// A second snapshot replaces the first: it is a slot, not a queue.
	if err := s.SetPending(ctx, sampleProject("latest")); err != nil {
		t.Fatalf("SetPending failed: %v", err)
	}

	p, err = s.Pending(ctx)
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	if p == nil || p.Name != "latest" {
		t.Errorf("pending slot should hold the latest snapshot, got %+v", p)
	}

	if err := s.ClearPending(ctx); err != nil {
		t.Fatalf("ClearPending failed: %v", err)
	}
	p, _ = s.Pending(ctx)
	if p != nil {
		t.Errorf("pending slot should be empty after clear")
	}
}

func TestSyncEnabledFlag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	enabled, err := s.SyncEnabled(ctx)
	if err != nil {
		t.Fatalf("SyncEnabled failed: %v", err)
	}
	if enabled {
		t.Errorf("sync should default to disabled")
	}

	if err := s.SetSyncEnabled(ctx, true); err != nil {
		t.Fatalf("SetSyncEnabled failed: %v", err)
	}
	enabled, _ = s.SyncEnabled(ctx)
	if !enabled {
		t.Errorf("sync flag did not persist")
	}
}
