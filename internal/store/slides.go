package store

import (
	"fmt"

	"github.com/deckweaver/deckweaver/internal/deck"
)

// AddSlide appends a slide of the given kind with its template-default data
// and selects it.
func (s *Store) AddSlide(kind deck.TemplateKind) {
	s.mu.Lock()
	s.project.Slides = append(s.project.Slides, deck.Slide{
		Template: kind,
		Data:     deck.DefaultData(kind),
	})
	s.selected = len(s.project.Slides) - 1
	s.markDirtyLocked()
	s.mu.Unlock()
	s.notify()
}

// InsertSlide inserts a fully formed slide at index, clamped into range.
func (s *Store) InsertSlide(index int, slide deck.Slide) {
	s.mu.Lock()
	n := len(s.project.Slides)
	if index < 0 {
		index = 0
	}
	if index > n {
		index = n
	}
	s.project.Slides = append(s.project.Slides, deck.Slide{})
	copy(s.project.Slides[index+1:], s.project.Slides[index:])
	s.project.Slides[index] = slide.Clone()
	s.selected = index
	s.markDirtyLocked()
	s.mu.Unlock()
	s.notify()
}

// DuplicateSlide deep-copies the slide at index and inserts the copy right
// after it, selecting the copy.
func (s *Store) DuplicateSlide(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.project.Slides) {
		s.mu.Unlock()
		return fmt.Errorf("duplicating slide %d: index out of range", index)
	}
	dup := s.project.Slides[index].Clone()
	s.project.Slides = append(s.project.Slides, deck.Slide{})
	copy(s.project.Slides[index+2:], s.project.Slides[index+1:])
	s.project.Slides[index+1] = dup
	s.selected = index + 1
	s.markDirtyLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

// DeleteSlide splices out the slide at index, clamping the selection back
// into bounds.
func (s *Store) DeleteSlide(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.project.Slides) {
		s.mu.Unlock()
		return fmt.Errorf("deleting slide %d: index out of range", index)
	}
	s.project.Slides = append(s.project.Slides[:index], s.project.Slides[index+1:]...)
	s.selected = clamp(s.selected, len(s.project.Slides))
	s.markDirtyLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

// MoveSlide moves the slide at from to position to, keeping it selected.
func (s *Store) MoveSlide(from, to int) error {
	s.mu.Lock()
	n := len(s.project.Slides)
	if from < 0 || from >= n || to < 0 || to >= n {
		s.mu.Unlock()
		return fmt.Errorf("moving slide %d to %d: index out of range", from, to)
	}
	slide := s.project.Slides[from]
	s.project.Slides = append(s.project.Slides[:from], s.project.Slides[from+1:]...)
	s.project.Slides = append(s.project.Slides, deck.Slide{})
	copy(s.project.Slides[to+1:], s.project.Slides[to:])
	s.project.Slides[to] = slide
	s.selected = to
	s.markDirtyLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetSlideData replaces the data of the slide at index. The slide's
// template kind follows the data's kind so the pair stays consistent.
func (s *Store) SetSlideData(index int, data deck.SlideData) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.project.Slides) {
		s.mu.Unlock()
		return fmt.Errorf("updating slide %d: index out of range", index)
	}
	s.project.Slides[index].Data = data.CloneData()
	s.project.Slides[index].Template = data.Kind()
	s.markDirtyLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetSlideColors replaces the per-slide color override map.
func (s *Store) SetSlideColors(index int, colors map[string]string) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.project.Slides) {
		s.mu.Unlock()
		return fmt.Errorf("updating slide %d colors: index out of range", index)
	}
	if colors == nil {
		s.project.Slides[index].Colors = nil
	} else {
		cp := make(map[string]string, len(colors))
		for k, v := range colors {
			cp[k] = v
		}
		s.project.Slides[index].Colors = cp
	}
	s.markDirtyLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

// Select sets the selection index, clamped into bounds. Subscribers are
// notified only when the selection actually changes.
func (s *Store) Select(index int) {
	s.mu.Lock()
	next := clamp(index, len(s.project.Slides))
	if next == s.selected {
		s.mu.Unlock()
		return
	}
	s.selected = next
	s.markDirtyLocked()
	s.mu.Unlock()
	s.notify()
}
