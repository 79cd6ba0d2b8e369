package store

import (
	"github.com/deckweaver/deckweaver/internal/deck"
)

// Patch is a partial project update. Nil fields leave the corresponding
// state unchanged; object-valued fields merge key-wise through their own
// patch types, while slice fields (Slides) replace wholesale — callers must
// pass a full replacement slide list, never a partial one.
type Patch struct {
	Name     *string
	Metadata *MetadataPatch
	Theme    *ThemePatch
	Slides   []deck.Slide
	DriveID  *string
}

// MetadataPatch updates individual metadata fields.
type MetadataPatch struct {
	Title   *string
	Author  *string
	Date    *string
	Version *string
}

// ThemePatch updates the base theme name and/or merges color overrides.
// Overrides merge key-wise; an empty-string value deletes the key.
type ThemePatch struct {
	Base      *string
	Overrides map[string]string
}

// Apply merges a partial update into the project and notifies listeners
// once.
func (s *Store) Apply(p Patch) {
	s.mu.Lock()
	s.applyLocked(p)
	s.markDirtyLocked()
	s.mu.Unlock()
	s.notify()
}

func (s *Store) applyLocked(p Patch) {
	project := s.project

	if p.Name != nil {
		project.Name = *p.Name
	}
	if p.DriveID != nil {
		project.DriveID = *p.DriveID
	}
	if p.Metadata != nil {
		m := p.Metadata
		if m.Title != nil {
			project.Metadata.Title = *m.Title
		}
		if m.Author != nil {
			project.Metadata.Author = *m.Author
		}
		if m.Date != nil {
			project.Metadata.Date = *m.Date
		}
		if m.Version != nil {
			project.Metadata.Version = *m.Version
		}
	}
	if p.Theme != nil {
		if p.Theme.Base != nil {
			project.Theme.Base = *p.Theme.Base
		}
		if len(p.Theme.Overrides) > 0 {
			if project.Theme.Overrides == nil {
				project.Theme.Overrides = make(map[string]string)
			}
			for k, v := range p.Theme.Overrides {
				if v == "" {
					delete(project.Theme.Overrides, k)
				} else {
					project.Theme.Overrides[k] = v
				}
			}
		}
	}
	if p.Slides != nil {
		slides := make([]deck.Slide, len(p.Slides))
		for i, sl := range p.Slides {
			slides[i] = sl.Clone()
		}
		project.Slides = slides
		s.selected = clamp(s.selected, len(project.Slides))
	}
}
