package syncer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/deckweaver/deckweaver/internal/db"
	"github.com/deckweaver/deckweaver/internal/deck"
	"github.com/deckweaver/deckweaver/internal/drive"
	"github.com/deckweaver/deckweaver/internal/library"
)

// countingClient wraps the in-memory drive to observe outbound call
// patterns: total update/create counts and the maximum number of
// concurrently running updates.
type countingClient struct {
	*drive.Memory

	mu          sync.Mutex
	updates     int
	creates     int
	active      int
	maxActive   int
	updateDelay time.Duration
}

func newCountingClient() *countingClient {
	return &countingClient{Memory: drive.NewMemory()}
}

func (c *countingClient) Create(ctx context.Context, p *deck.Project) (*drive.FileRef, error) {
	c.mu.Lock()
	c.creates++
	c.mu.Unlock()
	return c.Memory.Create(ctx, p)
}

func (c *countingClient) Update(ctx context.Context, fileID string, p *deck.Project) (*drive.FileRef, error) {
	c.mu.Lock()
	c.updates++
	c.active++
	if c.active > c.maxActive {
		c.maxActive = c.active
	}
	delay := c.updateDelay
	c.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	ref, err := c.Memory.Update(ctx, fileID, p)

	c.mu.Lock()
	c.active--
	c.mu.Unlock()
	return ref, err
}

func newTestEngine(t *testing.T, remote drive.Client, opts Options) (*Engine, *library.Store) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	local := library.NewStore(database)

	if opts.Debounce == 0 {
		opts.Debounce = 20 * time.Millisecond
	}
	if opts.BackoffBase == 0 {
		opts.BackoffBase = time.Millisecond
	}
	if opts.SyncedHold == 0 {
		opts.SyncedHold = 10 * time.Millisecond
	}

	e := New(remote, local, nil, opts)
	e.SetSignedIn(true)
	e.SetEnabled(true)
	return e, local
}

func namedProject(name string) *deck.Project {
	p := deck.NewProject()
	p.Name = name
	p.SavedAt = time.Now().UTC()
	return p
}

func TestDetectConflict(t *testing.T) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		local     time.Time
		remote    time.Time
		lastSync  time.Time
		threshold time.Duration
		want      bool
	}{
		{
			name:  "both diverged, skew above threshold",
			local: base.Add(10 * time.Second), remote: base.Add(10200 * time.Millisecond),
			lastSync: base, threshold: 100 * time.Millisecond, want: true,
		},
		{
			name:  "both diverged, skew within threshold",
			local: base.Add(10 * time.Second), remote: base.Add(10200 * time.Millisecond),
			lastSync: base, threshold: 5 * time.Second, want: false,
		},
		{
			name:  "remote unchanged since last sync",
			local: base.Add(time.Hour), remote: base,
			lastSync: base, threshold: time.Second, want: false,
		},
		{
			name:  "local unchanged since last sync",
			local: base, remote: base.Add(time.Hour),
			lastSync: base, threshold: time.Second, want: false,
		},
		{
			name:  "skew exactly at threshold is not a conflict",
			local: base.Add(10 * time.Second), remote: base.Add(15 * time.Second),
			lastSync: base, threshold: 5 * time.Second, want: false,
		},
	}
	for _, tc := range tests {
		if got := detectConflict(tc.local, tc.remote, tc.lastSync, tc.threshold); got != tc.want {
			t.Errorf("%s: detectConflict = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestQueueSyncRequiresSignInAndEnable(t *testing.T) {
	remote := newCountingClient()
	e, _ := newTestEngine(t, remote, Options{})
	e.SetSignedIn(false)

	e.QueueSync(namedProject("demo"))
	time.Sleep(60 * time.Millisecond)

	if remote.creates != 0 || remote.updates != 0 {
		t.Errorf("sync ran while signed out: creates=%d updates=%d", remote.creates, remote.updates)
	}
}

func TestDebounceCoalescesToLatestSnapshot(t *testing.T) {
	remote := newCountingClient()
	e, _ := newTestEngine(t, remote, Options{})

	for i := 0; i < 5; i++ {
		p := namedProject("demo")
		p.Metadata.Title = string(rune('a' + i))
		e.QueueSync(p)
	}
	time.Sleep(100 * time.Millisecond)

	remote.mu.Lock()
	total := remote.creates + remote.updates
	remote.mu.Unlock()
	if total != 1 {
		t.Fatalf("expected exactly 1 outbound sync, got %d", total)
	}

	ref, err := remote.FindByName(context.Background(), "demo")
	if err != nil || ref == nil {
		t.Fatalf("FindByName failed: ref=%v err=%v", ref, err)
	}
	got, err := remote.Get(context.Background(), ref.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Metadata.Title != "e" {
		t.Errorf("expected last-queued snapshot pushed, got title %q", got.Metadata.Title)
	}
}

func TestPerformSyncSerializes(t *testing.T) {
	remote := newCountingClient()
	remote.updateDelay = 30 * time.Millisecond
	e, local := newTestEngine(t, remote, Options{})
	ctx := context.Background()

	ref, err := remote.Memory.Create(ctx, namedProject("demo"))
	if err != nil {
		t.Fatalf("seeding remote failed: %v", err)
	}
	if err := local.SetLastSync(ctx, "demo", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("SetLastSync failed: %v", err)
	}

	mk := func(title string) *deck.Project {
		p := namedProject("demo")
		p.DriveID = ref.ID
		p.Metadata.Title = title
		return p
	}

	var wg sync.WaitGroup
	for _, title := range []string{"one", "two", "three"} {
		wg.Add(1)
		go func(title string) {
			defer wg.Done()
			e.PerformSync(ctx, mk(title))
		}(title)
	}
	wg.Wait()
	time.Sleep(100 * time.Millisecond)

	remote.mu.Lock()
	defer remote.mu.Unlock()
	if remote.maxActive > 1 {
		t.Errorf("observed %d concurrent updates; syncs must serialize", remote.maxActive)
	}
}

func TestOfflineQueuesSnapshotAndFlushesOnReconnect(t *testing.T) {
	online := false
	remote := newCountingClient()
	e, local := newTestEngine(t, remote, Options{Online: func() bool { return online }})
	ctx := context.Background()

	e.PerformSync(ctx, namedProject("demo"))
	if e.Status() != StatusOffline {
		t.Fatalf("expected offline status, got %s", e.Status())
	}
	pending, err := local.Pending(ctx)
	if err != nil || pending == nil {
		t.Fatalf("expected persisted pending snapshot, got %v err=%v", pending, err)
	}

	online = true
	e.NotifyOnline(ctx)

	if remote.Count() != 1 {
		t.Errorf("expected pending snapshot flushed to remote, count=%d", remote.Count())
	}
	pending, _ = local.Pending(ctx)
	if pending != nil {
		t.Errorf("pending slot should clear after flush")
	}
}

func TestUpdateNotFoundFallsBackToCreate(t *testing.T) {
	remote := newCountingClient()
	e, _ := newTestEngine(t, remote, Options{})
	ctx := context.Background()

	p := namedProject("demo")
	p.DriveID = "vanished"
	e.PerformSync(ctx, p)

	if remote.creates != 1 {
		t.Errorf("expected fallback create, creates=%d", remote.creates)
	}
	if e.Status() == StatusError {
		t.Errorf("not-found must not be terminal")
	}
}

func TestUpdateRetriesThenErrors(t *testing.T) {
	remote := newCountingClient()
	e, local := newTestEngine(t, remote, Options{MaxAttempts: 3})
	ctx := context.Background()

	ref, err := remote.Memory.Create(ctx, namedProject("demo"))
	if err != nil {
		t.Fatalf("seeding remote failed: %v", err)
	}
	if err := local.SetLastSync(ctx, "demo", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("SetLastSync failed: %v", err)
	}

	var terminal error
	e.Events().OnError(func(err error) { terminal = err })

	remote.Memory.Fail = errors.New("remote overloaded")
	p := namedProject("demo")
	p.DriveID = ref.ID
	e.PerformSync(ctx, p)

	if remote.updates != 3 {
		t.Errorf("expected 3 update attempts, got %d", remote.updates)
	}
	if e.Status() != StatusError {
		t.Errorf("expected error status, got %s", e.Status())
	}
	if terminal == nil {
		t.Errorf("expected terminal error event")
	}
	pending, _ := local.Pending(ctx)
	if pending == nil {
		t.Errorf("failed sync should preserve snapshot for manual retry")
	}
}

func TestSyncedAutoRevertsToIdle(t *testing.T) {
	remote := newCountingClient()
	e, _ := newTestEngine(t, remote, Options{SyncedHold: 15 * time.Millisecond})
	ctx := context.Background()

	e.PerformSync(ctx, namedProject("demo"))
	if e.Status() != StatusSynced {
		t.Fatalf("expected synced immediately after push, got %s", e.Status())
	}

	time.Sleep(60 * time.Millisecond)
	if e.Status() != StatusIdle {
		t.Errorf("expected auto-revert to idle, got %s", e.Status())
	}
}
