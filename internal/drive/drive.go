// Package drive abstracts the remote file store the sync engine reconciles
// against. The core depends only on the Client interface; the REST client
// and the in-memory implementation both satisfy it.
package drive

import (
	"context"
	"errors"
	"time"

	"github.com/deckweaver/deckweaver/internal/deck"
)

// ErrNotFound is returned when a remote file id does not exist. The sync
// engine treats not-found on update as a recoverable case (fall back to
// create), never as a terminal error.
var ErrNotFound = errors.New("remote file not found")

// FileRef describes a remote file without its content.
type FileRef struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	ModifiedTime time.Time         `json:"modifiedTime"`
	Size         int64             `json:"size,omitempty"`
	Properties   map[string]string `json:"properties,omitempty"`
}

// Client is the remote drive contract consumed by the sync engine.
type Client interface {
	// List returns the files in the application folder.
	List(ctx context.Context) ([]FileRef, error)
	// Get fetches and decodes a project document.
	Get(ctx context.Context, fileID string) (*deck.Project, error)
	// GetMetadata fetches a file's metadata without its content.
	GetMetadata(ctx context.Context, fileID string) (*FileRef, error)
	// Create uploads a new project document and returns its reference.
	Create(ctx context.Context, p *deck.Project) (*FileRef, error)
	// Update overwrites an existing document. Returns ErrNotFound when the
	// id no longer exists.
	Update(ctx context.Context, fileID string, p *deck.Project) (*FileRef, error)
	// Delete permanently removes a file.
	Delete(ctx context.Context, fileID string) error
	// Trash moves a file to the trash.
	Trash(ctx context.Context, fileID string) error
	// FindByName returns the file whose name exactly matches the sanitized
	// project name, or nil when absent.
	FindByName(ctx context.Context, name string) (*FileRef, error)
}
