package syncer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/deckweaver/deckweaver/internal/deck"
	"github.com/deckweaver/deckweaver/internal/drive"
	"github.com/deckweaver/deckweaver/internal/library"
	"github.com/deckweaver/deckweaver/internal/store"
)

// Engine pushes project snapshots to the remote drive. For a single
// project, syncs are strictly serialized: one in-flight push at a time,
// with at most one pending snapshot queued behind it. The debounce ensures
// rapid local edits collapse into one outbound sync.
type Engine struct {
	opts   Options
	remote drive.Client
	local  *library.Store
	live   *store.Store
	events *Events

	mu            sync.Mutex
	status        Status
	statusSeq     int
	enabled       bool
	signedIn      bool
	debounceTimer *time.Timer
	queued        *deck.Project
	inFlight      bool
	pending       *deck.Project
	conflict      *Conflict
}

// New creates an engine. live may be nil when no editor session is attached
// (CLI one-shot syncs).
func New(remote drive.Client, local *library.Store, live *store.Store, opts Options) *Engine {
	return &Engine{
		opts:   opts.withDefaults(),
		remote: remote,
		local:  local,
		live:   live,
		events: &Events{},
		status: StatusIdle,
	}
}

// Events returns the engine's typed event surface.
func (e *Engine) Events() *Events { return e.events }

// Status returns the current engine status.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// SetSignedIn toggles the signed-in gate; QueueSync is a no-op while false.
func (e *Engine) SetSignedIn(v bool) {
	e.mu.Lock()
	e.signedIn = v
	e.mu.Unlock()
}

// SetEnabled toggles the sync-enabled gate; QueueSync is a no-op while
// false.
func (e *Engine) SetEnabled(v bool) {
	e.mu.Lock()
	e.enabled = v
	e.mu.Unlock()
}

// QueueSync schedules a debounced push of the given snapshot. Repeated
// calls inside the debounce window coalesce, keeping only the latest
// snapshot. The input is cloned immediately so later caller mutations
// cannot race the push.
func (e *Engine) QueueSync(p *deck.Project) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.signedIn || !e.enabled {
		return
	}

	e.queued = p.Clone()
	if e.debounceTimer != nil {
		e.debounceTimer.Stop()
	}
	e.debounceTimer = time.AfterFunc(e.opts.Debounce, e.fireQueued)
}

// fireQueued launches the push of the latest queued snapshot.
func (e *Engine) fireQueued() {
	e.mu.Lock()
	p := e.queued
	e.queued = nil
	e.mu.Unlock()
	if p != nil {
		e.PerformSync(context.Background(), p)
	}
}

// PerformSync pushes a snapshot now, bypassing the debounce. A sync invoked
// while another is in flight parks itself in the pending slot and is
// launched after the current one resolves.
func (e *Engine) PerformSync(ctx context.Context, p *deck.Project) {
	e.mu.Lock()
	if e.inFlight {
		e.pending = p.Clone()
		e.mu.Unlock()
		return
	}
	e.inFlight = true
	e.mu.Unlock()

	e.runSync(ctx, p)

	// Pending-after-finally: a snapshot queued while we were in flight
	// triggers a corrective re-sync.
	e.mu.Lock()
	e.inFlight = false
	next := e.pending
	e.pending = nil
	e.mu.Unlock()
	if next != nil {
		e.PerformSync(ctx, next)
	}
}

// runSync executes one sync pass against the remote.
func (e *Engine) runSync(ctx context.Context, p *deck.Project) {
	if !e.opts.Online() {
		e.setStatus(StatusOffline)
		if err := e.local.SetPending(ctx, p); err != nil {
			log.Printf("sync: persisting offline snapshot: %v", err)
		}
		return
	}

	e.setStatus(StatusSyncing)

	fileID := p.DriveID

	// An unlinked project links to an existing remote file by exact
	// sanitized name, or creates a fresh one.
	if fileID == "" {
		ref, err := e.remote.FindByName(ctx, p.Name)
		if err != nil {
			e.fail(ctx, p, fmt.Errorf("searching remote by name: %w", err))
			return
		}
		if ref == nil {
			e.createRemote(ctx, p)
			return
		}
		fileID = ref.ID
		p.DriveID = ref.ID
		e.linkLive(p.Name, ref.ID)
	}

	meta, err := e.remote.GetMetadata(ctx, fileID)
	if errors.Is(err, drive.ErrNotFound) {
		// The linked file vanished remotely; recreate rather than fail.
		p.DriveID = ""
		e.createRemote(ctx, p)
		return
	}
	if err != nil {
		e.fail(ctx, p, fmt.Errorf("fetching remote metadata: %w", err))
		return
	}

	lastSync, err := e.local.LastSync(ctx, p.Name)
	if err != nil {
		e.fail(ctx, p, fmt.Errorf("loading last sync time: %w", err))
		return
	}

	if detectConflict(p.SavedAt, meta.ModifiedTime, lastSync, e.opts.ConflictThreshold) {
		remoteProject, err := e.remote.Get(ctx, fileID)
		if err != nil {
			e.fail(ctx, p, fmt.Errorf("fetching remote project: %w", err))
			return
		}
		c := &Conflict{
			Local:  p,
			Remote: remoteProject,
			Ref:    meta,
			engine: e,
		}
		e.mu.Lock()
		e.conflict = c
		e.mu.Unlock()
		e.setStatus(StatusConflict)
		e.events.emitConflict(c)
		return
	}

	e.updateRemote(ctx, p, fileID)
}

// createRemote uploads a new file and records the link.
func (e *Engine) createRemote(ctx context.Context, p *deck.Project) {
	ref, err := e.remote.Create(ctx, p)
	if err != nil {
		e.fail(ctx, p, fmt.Errorf("creating remote file: %w", err))
		return
	}
	p.DriveID = ref.ID
	e.linkLive(p.Name, ref.ID)
	e.finish(ctx, p, ref)
}

// updateRemote overwrites the remote file, retrying transient failures with
// exponential backoff. Not-found falls back to create.
func (e *Engine) updateRemote(ctx context.Context, p *deck.Project, fileID string) {
	delay := e.opts.BackoffBase
	var lastErr error
	for attempt := 1; attempt <= e.opts.MaxAttempts; attempt++ {
		ref, err := e.remote.Update(ctx, fileID, p)
		if err == nil {
			e.finish(ctx, p, ref)
			return
		}
		if errors.Is(err, drive.ErrNotFound) {
			p.DriveID = ""
			e.createRemote(ctx, p)
			return
		}
		lastErr = err
		if attempt < e.opts.MaxAttempts {
			log.Printf("sync: update attempt %d failed, retrying in %s: %v", attempt, delay, err)
			time.Sleep(delay)
			delay *= 2
		}
	}
	e.fail(ctx, p, fmt.Errorf("updating remote after %d attempts: %w", e.opts.MaxAttempts, lastErr))
}

// finish records the successful push and schedules the synced→idle revert.
func (e *Engine) finish(ctx context.Context, p *deck.Project, ref *drive.FileRef) {
	syncedAt := ref.ModifiedTime
	if syncedAt.IsZero() {
		syncedAt = time.Now().UTC()
	}
	if err := e.local.SetLastSync(ctx, p.Name, syncedAt); err != nil {
		log.Printf("sync: recording last sync: %v", err)
	}
	if err := e.local.ClearPending(ctx); err != nil {
		log.Printf("sync: clearing pending snapshot: %v", err)
	}

	seq := e.setStatus(StatusSynced)
	e.events.emitSynced()

	// Auto-revert to idle unless another status change preempts it.
	time.AfterFunc(e.opts.SyncedHold, func() {
		e.mu.Lock()
		if e.statusSeq == seq && e.status == StatusSynced {
			e.status = StatusIdle
			e.statusSeq++
			e.mu.Unlock()
			e.events.emitStatus(StatusIdle)
			return
		}
		e.mu.Unlock()
	})
}

// fail transitions to the terminal error state, preserving the snapshot for
// manual retry.
func (e *Engine) fail(ctx context.Context, p *deck.Project, err error) {
	log.Printf("sync: %v", err)
	if perr := e.local.SetPending(ctx, p); perr != nil {
		log.Printf("sync: persisting snapshot after failure: %v", perr)
	}
	e.setStatus(StatusError)
	e.events.emitError(err)
}

// NotifyOnline flushes the persisted pending snapshot after connectivity
// returns. Mirrors the browser online event.
func (e *Engine) NotifyOnline(ctx context.Context) {
	e.mu.Lock()
	offline := e.status == StatusOffline
	e.mu.Unlock()
	if !offline {
		return
	}

	p, err := e.local.Pending(ctx)
	if err != nil {
		log.Printf("sync: loading pending snapshot: %v", err)
		return
	}
	if p == nil {
		e.setStatus(StatusIdle)
		return
	}
	e.PerformSync(ctx, p)
}

// setStatus transitions the status, emits the event, and returns the new
// sequence number used by the auto-revert preemption check.
func (e *Engine) setStatus(s Status) int {
	e.mu.Lock()
	e.status = s
	e.statusSeq++
	seq := e.statusSeq
	e.mu.Unlock()
	e.events.emitStatus(s)
	return seq
}

// linkLive records a freshly discovered remote id on the live project, when
// an editor session is attached and still shows the same project.
func (e *Engine) linkLive(name, fileID string) {
	if e.live == nil {
		return
	}
	state := e.live.State()
	if state.Name != name {
		return
	}
	id := fileID
	e.live.Apply(store.Patch{DriveID: &id})
}
