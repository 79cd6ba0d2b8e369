package drive

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/deckweaver/deckweaver/internal/deck"
)

// Memory is an in-memory Client used by tests and offline development. A
// settable clock makes modified-time assertions deterministic.
type Memory struct {
	mu      sync.Mutex
	files   map[string]*memoryFile
	trashed map[string]bool

	// Now supplies modified times; defaults to time.Now.
	Now func() time.Time

	// Fail, when set, is returned by every mutating call. Lets tests
	// exercise the retry path.
	Fail error
}

type memoryFile struct {
	ref     FileRef
	project *deck.Project
}

// NewMemory creates an empty in-memory drive.
func NewMemory() *Memory {
	return &Memory{
		files:   make(map[string]*memoryFile),
		trashed: make(map[string]bool),
		Now:     time.Now,
	}
}

func (m *Memory) List(ctx context.Context) ([]FileRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var refs []FileRef
	for id, f := range m.files {
		if m.trashed[id] {
			continue
		}
		refs = append(refs, f.ref)
	}
	return refs, nil
}

func (m *Memory) Get(ctx context.Context, fileID string) (*deck.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[fileID]
	if !ok || m.trashed[fileID] {
		return nil, ErrNotFound
	}
	return f.project.Clone(), nil
}

func (m *Memory) GetMetadata(ctx context.Context, fileID string) (*FileRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[fileID]
	if !ok || m.trashed[fileID] {
		return nil, ErrNotFound
	}
	ref := f.ref
	return &ref, nil
}

func (m *Memory) Create(ctx context.Context, p *deck.Project) (*FileRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return nil, m.Fail
	}
	id := uuid.New().String()
	f := &memoryFile{
		ref: FileRef{
			ID:           id,
			Name:         SanitizeName(p.Name),
			ModifiedTime: m.Now(),
		},
		project: p.Clone(),
	}
	m.files[id] = f
	ref := f.ref
	return &ref, nil
}

func (m *Memory) Update(ctx context.Context, fileID string, p *deck.Project) (*FileRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return nil, m.Fail
	}
	f, ok := m.files[fileID]
	if !ok || m.trashed[fileID] {
		return nil, ErrNotFound
	}
	f.project = p.Clone()
	f.ref.Name = SanitizeName(p.Name)
	f.ref.ModifiedTime = m.Now()
	ref := f.ref
	return &ref, nil
}

func (m *Memory) Delete(ctx context.Context, fileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	if _, ok := m.files[fileID]; !ok {
		return ErrNotFound
	}
	delete(m.files, fileID)
	delete(m.trashed, fileID)
	return nil
}

func (m *Memory) Trash(ctx context.Context, fileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	if _, ok := m.files[fileID]; !ok {
		return ErrNotFound
	}
	m.trashed[fileID] = true
	return nil
}

func (m *Memory) FindByName(ctx context.Context, name string) (*FileRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := SanitizeName(name)
	for id, f := range m.files {
		if m.trashed[id] {
			continue
		}
		if f.ref.Name == want {
			ref := f.ref
			return &ref, nil
		}
	}
	return nil, nil
}

// SetModifiedTime overrides a file's modified time; test helper for
// conflict-detection scenarios.
func (m *Memory) SetModifiedTime(fileID string, t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.files[fileID]; ok {
		f.ref.ModifiedTime = t
	}
}

// Count returns the number of live (non-trashed) files.
func (m *Memory) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id := range m.files {
		if !m.trashed[id] {
			n++
		}
	}
	return n
}
