package syncer

import (
	"context"
	"testing"
	"time"

	"github.com/deckweaver/deckweaver/internal/deck"
	"github.com/deckweaver/deckweaver/internal/store"
)

// conflictFixture wires an engine into a diverged state: both the local and
// remote versions of "demo" changed after the last sync point, with a skew
// well past the threshold.
type conflictFixture struct {
	engine      *Engine
	remoteDrive *countingClient
	conflict    *Conflict
	remoteID    string
}

func setupConflict(t *testing.T, live *store.Store) *conflictFixture {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	remote := newCountingClient()
	e, local := newTestEngine(t, remote, Options{ConflictThreshold: 5 * time.Second})
	e.live = live

	remoteVersion := namedProject("demo")
	remoteVersion.Metadata.Title = "remote edit"
	ref, err := remote.Memory.Create(ctx, remoteVersion)
	if err != nil {
		t.Fatalf("seeding remote failed: %v", err)
	}
	remote.SetModifiedTime(ref.ID, base.Add(30*time.Second))
	if err := local.SetLastSync(ctx, "demo", base); err != nil {
		t.Fatalf("SetLastSync failed: %v", err)
	}

	localVersion := namedProject("demo")
	localVersion.Metadata.Title = "local edit"
	localVersion.DriveID = ref.ID
	localVersion.SavedAt = base.Add(10 * time.Second)

	var got *Conflict
	e.Events().OnConflict(func(c *Conflict) { got = c })

	e.PerformSync(ctx, localVersion)

	if e.Status() != StatusConflict {
		t.Fatalf("expected conflict status, got %s", e.Status())
	}
	if got == nil {
		t.Fatal("expected conflict event")
	}
	return &conflictFixture{engine: e, remoteDrive: remote, conflict: got, remoteID: ref.ID}
}

func TestConflictCarriesBothVersions(t *testing.T) {
	f := setupConflict(t, nil)

	if f.conflict.Local.Metadata.Title != "local edit" {
		t.Errorf("conflict local title = %q", f.conflict.Local.Metadata.Title)
	}
	if f.conflict.Remote.Metadata.Title != "remote edit" {
		t.Errorf("conflict remote title = %q", f.conflict.Remote.Metadata.Title)
	}
	if f.remoteDrive.updates != 0 {
		t.Errorf("a detected conflict must not push, updates=%d", f.remoteDrive.updates)
	}
}

func TestResolveLocalOverwritesRemote(t *testing.T) {
	ctx := context.Background()
	f := setupConflict(t, nil)

	if err := f.conflict.Resolve(ctx, ChoiceLocal); err != nil {
		t.Fatalf("Resolve(local) failed: %v", err)
	}

	got, err := f.remoteDrive.Get(ctx, f.remoteID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Metadata.Title != "local edit" {
		t.Errorf("remote title after local resolution = %q", got.Metadata.Title)
	}
	if f.engine.Status() != StatusSynced {
		t.Errorf("expected synced after resolution, got %s", f.engine.Status())
	}
}

func TestResolveRemoteAdoptsRemoteLocally(t *testing.T) {
	ctx := context.Background()
	f := setupConflict(t, nil)

	if err := f.conflict.Resolve(ctx, ChoiceRemote); err != nil {
		t.Fatalf("Resolve(remote) failed: %v", err)
	}

	adopted, err := f.engine.local.Get(ctx, "demo")
	if err != nil {
		t.Fatalf("Get adopted project: %v", err)
	}
	if adopted.Metadata.Title != "remote edit" {
		t.Errorf("adopted title = %q", adopted.Metadata.Title)
	}
	if adopted.DriveID != f.remoteID {
		t.Errorf("adopted DriveID = %q, want %q", adopted.DriveID, f.remoteID)
	}
}

func TestResolveRemoteSwapsLiveProject(t *testing.T) {
	ctx := context.Background()
	live := store.New()
	live.Update(func(p *deck.Project) { p.Name = "demo" })

	f := setupConflict(t, live)

	if err := f.conflict.Resolve(ctx, ChoiceRemote); err != nil {
		t.Fatalf("Resolve(remote) failed: %v", err)
	}
	if got := live.State().Metadata.Title; got != "remote edit" {
		t.Errorf("live project title after adoption = %q", got)
	}
}

func TestResolveBothKeepsRenamedCopy(t *testing.T) {
	ctx := context.Background()
	f := setupConflict(t, nil)

	if err := f.conflict.Resolve(ctx, ChoiceBoth); err != nil {
		t.Fatalf("Resolve(both) failed: %v", err)
	}

	copyName := "demo" + ConflictCopySuffix
	copyProject, err := f.engine.local.Get(ctx, copyName)
	if err != nil {
		t.Fatalf("Get conflict copy: %v", err)
	}
	if copyProject.Metadata.Title != "local edit" {
		t.Errorf("conflict copy title = %q", copyProject.Metadata.Title)
	}
	if copyProject.DriveID == "" || copyProject.DriveID == f.remoteID {
		t.Errorf("conflict copy should live on a fresh remote file, got id %q", copyProject.DriveID)
	}

	canonical, err := f.engine.local.Get(ctx, "demo")
	if err != nil {
		t.Fatalf("Get canonical project: %v", err)
	}
	if canonical.Metadata.Title != "remote edit" {
		t.Errorf("canonical title = %q", canonical.Metadata.Title)
	}
	if canonical.DriveID != f.remoteID {
		t.Errorf("canonical DriveID = %q, want %q", canonical.DriveID, f.remoteID)
	}

	if f.remoteDrive.Count() != 2 {
		t.Errorf("expected 2 remote files after keeping both, got %d", f.remoteDrive.Count())
	}

	copySync, err := f.engine.local.LastSync(ctx, copyName)
	if err != nil {
		t.Fatalf("LastSync for copy: %v", err)
	}
	if copySync.IsZero() {
		t.Errorf("conflict copy should record its own sync time")
	}
}

func TestResolveIsValidOnce(t *testing.T) {
	ctx := context.Background()
	f := setupConflict(t, nil)

	if err := f.conflict.Resolve(ctx, ChoiceLocal); err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}
	if err := f.conflict.Resolve(ctx, ChoiceLocal); err == nil {
		t.Error("second Resolve should fail")
	}
}
