// Package syncer reconciles local project state with a remote drive: debounced
// pushes, metadata-based conflict detection, three-way resolution, retry
// with backoff, and offline queuing.
package syncer

import "time"

// Status is the engine's externally visible state.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusSyncing  Status = "syncing"
	StatusSynced   Status = "synced"
	StatusConflict Status = "conflict"
	StatusError    Status = "error"
	StatusOffline  Status = "offline"
)

// Options tune the engine's timing. Zero values take the defaults; tests
// inject small durations.
type Options struct {
	// Debounce coalesces rapid QueueSync calls into one push.
	Debounce time.Duration
	// ConflictThreshold is the minimum local/remote timestamp skew that
	// counts as a conflict. Near-simultaneous writes inside the threshold
	// are treated as non-conflicting.
	ConflictThreshold time.Duration
	// MaxAttempts caps update retries before the terminal error state.
	MaxAttempts int
	// BackoffBase is the first retry delay; it doubles per attempt.
	BackoffBase time.Duration
	// SyncedHold is how long the synced status lingers before auto-reverting
	// to idle.
	SyncedHold time.Duration
	// Online probes connectivity. Defaults to always-online.
	Online func() bool
}

func (o Options) withDefaults() Options {
	if o.Debounce == 0 {
		o.Debounce = 2 * time.Second
	}
	if o.ConflictThreshold == 0 {
		o.ConflictThreshold = 5 * time.Second
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = 3
	}
	if o.BackoffBase == 0 {
		o.BackoffBase = time.Second
	}
	if o.SyncedHold == 0 {
		o.SyncedHold = 3 * time.Second
	}
	if o.Online == nil {
		o.Online = func() bool { return true }
	}
	return o
}
