package store

import (
	"reflect"
	"testing"

	"github.com/deckweaver/deckweaver/internal/deck"
)

func TestStateReturnsIsolatedSnapshot(t *testing.T) {
	s := New()
	snap := s.State()
	snap.Metadata.Title = "mutated"
	snap.Slides[0].Data.(*deck.TitleData).Title = "mutated"

	if s.State().Metadata.Title == "mutated" {
		t.Errorf("snapshot mutation leaked into store metadata")
	}
	if s.State().Slides[0].Data.(*deck.TitleData).Title == "mutated" {
		t.Errorf("snapshot mutation leaked into store slides")
	}
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	s := New()
	var calls int
	unsubscribe := s.Subscribe(func(Change) { calls++ })

	s.AddSlide(deck.KindBullets)
	if calls != 1 {
		t.Fatalf("expected 1 notification, got %d", calls)
	}

	unsubscribe()
	s.AddSlide(deck.KindBullets)
	if calls != 1 {
		t.Errorf("unsubscribed listener still notified")
	}
}

func TestListenerPanicDoesNotAbortOthers(t *testing.T) {
	s := New()
	var secondRan bool
	s.Subscribe(func(Change) { panic("boom") })
	s.Subscribe(func(Change) { secondRan = true })

	s.AddSlide(deck.KindQuote)
	if !secondRan {
		t.Errorf("panicking listener aborted subsequent listeners")
	}
}

func TestNestedBatchNotifiesOnce(t *testing.T) {
	s := New()
	var calls int
	s.Subscribe(func(Change) { calls++ })

	s.Batch(func() {
		s.AddSlide(deck.KindBullets)
		s.Batch(func() {
			s.AddSlide(deck.KindQuote)
			s.AddSlide(deck.KindStats)
		})
		s.AddSlide(deck.KindCode)
	})

	if calls != 1 {
		t.Errorf("expected exactly 1 notification after outermost batch, got %d", calls)
	}
	if got := len(s.State().Slides); got != 5 {
		t.Errorf("expected 5 slides, got %d", got)
	}
}

func TestEmptyBatchDoesNotNotify(t *testing.T) {
	s := New()
	var calls int
	s.Subscribe(func(Change) { calls++ })

	s.Batch(func() {})
	if calls != 0 {
		t.Errorf("batch with no mutations should not notify, got %d", calls)
	}
}

func TestDuplicateSlideIsDeepCopy(t *testing.T) {
	s := New()
	s.AddSlide(deck.KindBullets)
	if err := s.SetSlideData(1, &deck.BulletsData{
		Title: "Original",
		Items: []deck.BulletItem{{Text: "one"}, {Text: "two"}},
	}); err != nil {
		t.Fatalf("SetSlideData failed: %v", err)
	}

	if err := s.DuplicateSlide(1); err != nil {
		t.Fatalf("DuplicateSlide failed: %v", err)
	}

	state := s.State()
	if len(state.Slides) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(state.Slides))
	}
	if !reflect.DeepEqual(state.Slides[1].Data, state.Slides[2].Data) {
		t.Errorf("duplicate not deep-equal to original at duplication time")
	}

	// Mutating the duplicate must not touch the original.
	if err := s.SetSlideData(2, &deck.BulletsData{
		Title: "Changed",
		Items: []deck.BulletItem{{Text: "three"}},
	}); err != nil {
		t.Fatalf("SetSlideData failed: %v", err)
	}
	state = s.State()
	original := state.Slides[1].Data.(*deck.BulletsData)
	if original.Title != "Original" || len(original.Items) != 2 {
		t.Errorf("mutating duplicate affected original: %+v", original)
	}
}

func TestDeleteSlideClampsSelection(t *testing.T) {
	s := New()
	s.AddSlide(deck.KindBullets)
	s.AddSlide(deck.KindQuote)
	// Selection follows AddSlide to the last index.
	if got := s.Selected(); got != 2 {
		t.Fatalf("expected selection 2, got %d", got)
	}

	if err := s.DeleteSlide(2); err != nil {
		t.Fatalf("DeleteSlide failed: %v", err)
	}
	if got := s.Selected(); got != 1 {
		t.Errorf("selection not clamped to length-1: %d", got)
	}

	if err := s.DeleteSlide(5); err == nil {
		t.Errorf("expected error deleting out-of-range index")
	}
}

func TestMoveSlideReorders(t *testing.T) {
	s := New()
	s.AddSlide(deck.KindBullets)
	s.AddSlide(deck.KindQuote)

	if err := s.MoveSlide(2, 0); err != nil {
		t.Fatalf("MoveSlide failed: %v", err)
	}
	state := s.State()
	if state.Slides[0].Template != deck.KindQuote {
		t.Errorf("expected quote slide first, got %s", state.Slides[0].Template)
	}
	if s.Selected() != 0 {
		t.Errorf("moved slide should stay selected, got %d", s.Selected())
	}
}

func TestApplyPatchMergesObjectsAndReplacesSlides(t *testing.T) {
	s := New()
	title := "Quarterly Review"
	s.Apply(Patch{Metadata: &MetadataPatch{Title: &title}})

	state := s.State()
	if state.Metadata.Title != "Quarterly Review" {
		t.Errorf("metadata title not merged: %q", state.Metadata.Title)
	}
	// Untouched metadata fields survive.
	if state.Metadata.Version != "1.0" {
		t.Errorf("untouched metadata field lost: %q", state.Metadata.Version)
	}

	// Theme overrides merge key-wise; empty value deletes.
	s.Apply(Patch{Theme: &ThemePatch{Overrides: map[string]string{"accent": "#111111", "text": "#222222"}}})
	s.Apply(Patch{Theme: &ThemePatch{Overrides: map[string]string{"accent": ""}}})
	state = s.State()
	if _, ok := state.Theme.Overrides["accent"]; ok {
		t.Errorf("empty override value should delete the key")
	}
	if state.Theme.Overrides["text"] != "#222222" {
		t.Errorf("sibling override lost during merge")
	}

	// Slides replace wholesale.
	s.Apply(Patch{Slides: []deck.Slide{{Template: deck.KindQuote, Data: &deck.QuoteData{Text: "q"}}}})
	state = s.State()
	if len(state.Slides) != 1 || state.Slides[0].Template != deck.KindQuote {
		t.Errorf("slides did not replace wholesale: %+v", state.Slides)
	}
}

func TestReset(t *testing.T) {
	s := New()
	s.AddSlide(deck.KindBullets)
	name := "saved"
	s.Apply(Patch{Name: &name})

	s.Reset()
	state := s.State()
	if !state.Unsaved() {
		t.Errorf("reset project should be unsaved")
	}
	if len(state.Slides) != 1 || state.Slides[0].Template != deck.KindTitle {
		t.Errorf("reset should restore the factory default deck: %+v", state.Slides)
	}
}

func TestEndToEndCreateDuplicateIsolation(t *testing.T) {
	s := New()
	s.AddSlide(deck.KindBullets)
	if err := s.SetSlideData(1, &deck.BulletsData{
		Title: "Points",
		Items: []deck.BulletItem{{Text: "alpha"}, {Text: "beta"}},
	}); err != nil {
		t.Fatalf("SetSlideData failed: %v", err)
	}
	if err := s.DuplicateSlide(1); err != nil {
		t.Fatalf("DuplicateSlide failed: %v", err)
	}

	state := s.State()
	if len(state.Slides) != 3 {
		t.Fatalf("list length: got %d, want 3", len(state.Slides))
	}
	if !reflect.DeepEqual(state.Slides[1], state.Slides[2]) {
		t.Fatalf("duplicate differs from original")
	}

	dup := state.Slides[2].Data.(*deck.BulletsData)
	dup.Items[0].Text = "mutated"
	fresh := s.State()
	if fresh.Slides[1].Data.(*deck.BulletsData).Items[0].Text != "alpha" {
		t.Errorf("duplicate shares references with original")
	}
}

func TestSelectNotifiesOnlyOnChange(t *testing.T) {
	s := New()
	s.AddSlide(deck.KindBullets) // two slides, selection on the new one

	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.Select(0)
	if len(changes) != 1 || changes[0].Selected != 0 {
		t.Fatalf("expected one notification with selected 0, got %d", len(changes))
	}

	s.Select(0)
	if len(changes) != 1 {
		t.Errorf("selecting the already-selected slide notified, %d notifications", len(changes))
	}

	s.Select(99) // clamps to the last slide, which is a real change
	if len(changes) != 2 || changes[1].Selected != 1 {
		t.Fatalf("expected clamped selection notification, got %d", len(changes))
	}

	s.Select(5) // clamps to the same index again
	if len(changes) != 2 {
		t.Errorf("clamped no-op select notified, %d notifications", len(changes))
	}
}
