package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/deckweaver/deckweaver/internal/deck"
	"github.com/deckweaver/deckweaver/internal/drive"
)

// ConflictCopySuffix is appended to the local project's name when the user
// resolves a conflict by keeping both versions.
const ConflictCopySuffix = " (conflict copy)"

// Choice selects a conflict resolution.
type Choice string

const (
	// ChoiceLocal force-overwrites the remote with the local version.
	ChoiceLocal Choice = "local"
	// ChoiceRemote overwrites local storage with the remote version and
	// swaps the live project if it is the active one.
	ChoiceRemote Choice = "remote"
	// ChoiceBoth keeps the local version as a renamed copy on a fresh
	// remote file and adopts the remote version as canonical under the
	// original name and id.
	ChoiceBoth Choice = "both"
)

// Conflict carries both versions of a diverged project and resolves via the
// engine it came from.
type Conflict struct {
	Local  *deck.Project
	Remote *deck.Project
	Ref    *drive.FileRef

	engine *Engine
}

// detectConflict implements the divergence rule: both sides must have
// changed independently since the last sync point, and their skew must
// exceed the threshold. A side whose timestamp is at or before lastSync has
// not diverged.
func detectConflict(localSaved, remoteModified, lastSync time.Time, threshold time.Duration) bool {
	if !remoteModified.After(lastSync) || !localSaved.After(lastSync) {
		return false
	}
	skew := localSaved.Sub(remoteModified)
	if skew < 0 {
		skew = -skew
	}
	return skew > threshold
}

// Resolve applies the user's choice. It is valid exactly once per conflict.
func (c *Conflict) Resolve(ctx context.Context, choice Choice) error {
	e := c.engine

	e.mu.Lock()
	if e.conflict != c {
		e.mu.Unlock()
		return fmt.Errorf("resolving conflict: already resolved")
	}
	e.conflict = nil
	e.mu.Unlock()

	switch choice {
	case ChoiceLocal:
		return e.resolveLocal(ctx, c)
	case ChoiceRemote:
		return e.resolveRemote(ctx, c)
	case ChoiceBoth:
		return e.resolveBoth(ctx, c)
	default:
		return fmt.Errorf("resolving conflict: unknown choice %q", choice)
	}
}

// resolveLocal force-overwrites the remote with the local version.
func (e *Engine) resolveLocal(ctx context.Context, c *Conflict) error {
	ref, err := e.remote.Update(ctx, c.Ref.ID, c.Local)
	if err != nil {
		e.fail(ctx, c.Local, fmt.Errorf("overwriting remote with local: %w", err))
		return err
	}
	e.finish(ctx, c.Local, ref)
	return nil
}

// resolveRemote overwrites local storage with the remote version and swaps
// the live project when it is the active one.
func (e *Engine) resolveRemote(ctx context.Context, c *Conflict) error {
	adopted := c.Remote.Clone()
	adopted.Name = c.Local.Name
	adopted.DriveID = c.Ref.ID

	if err := e.local.Save(ctx, adopted); err != nil {
		e.fail(ctx, adopted, fmt.Errorf("adopting remote version locally: %w", err))
		return err
	}
	if e.live != nil && e.live.State().Name == c.Local.Name {
		e.live.Replace(adopted)
	}
	e.finish(ctx, adopted, c.Ref)
	return nil
}

// resolveBoth keeps the local version under a renamed copy with a fresh
// remote file, then adopts the remote version as canonical under the
// original name and the original remote id.
func (e *Engine) resolveBoth(ctx context.Context, c *Conflict) error {
	copyProject := c.Local.Clone()
	copyProject.Name = c.Local.Name + ConflictCopySuffix
	copyProject.DriveID = ""

	copyRef, err := e.remote.Create(ctx, copyProject)
	if err != nil {
		e.fail(ctx, c.Local, fmt.Errorf("uploading conflict copy: %w", err))
		return err
	}
	copyProject.DriveID = copyRef.ID

	if err := e.local.Save(ctx, copyProject); err != nil {
		e.fail(ctx, copyProject, fmt.Errorf("saving conflict copy locally: %w", err))
		return err
	}
	syncedAt := copyRef.ModifiedTime
	if syncedAt.IsZero() {
		syncedAt = time.Now().UTC()
	}
	if err := e.local.SetLastSync(ctx, copyProject.Name, syncedAt); err != nil {
		return fmt.Errorf("recording conflict copy sync time: %w", err)
	}

	return e.resolveRemote(ctx, c)
}
