package syncer

import (
	"errors"
	"testing"
)

func TestEventsFanOutToAllHandlers(t *testing.T) {
	ev := &Events{}

	var statuses []Status
	ev.OnStatus(func(s Status) { statuses = append(statuses, s) })
	ev.OnStatus(func(s Status) { statuses = append(statuses, s) })

	var conflicts, errs, synced int
	ev.OnConflict(func(*Conflict) { conflicts++ })
	ev.OnError(func(error) { errs++ })
	ev.OnSynced(func() { synced++ })

	ev.emitStatus(StatusSyncing)
	ev.emitConflict(&Conflict{})
	ev.emitError(errors.New("push failed"))
	ev.emitSynced()

	if len(statuses) != 2 || statuses[0] != StatusSyncing {
		t.Errorf("status fan-out = %v", statuses)
	}
	if conflicts != 1 || errs != 1 || synced != 1 {
		t.Errorf("handler counts: conflicts=%d errs=%d synced=%d", conflicts, errs, synced)
	}
}

func TestEventsHandlerPanicDoesNotBlockOthers(t *testing.T) {
	ev := &Events{}

	var ran bool
	ev.OnSynced(func() { panic("handler boom") })
	ev.OnSynced(func() { ran = true })

	ev.emitSynced()

	if !ran {
		t.Error("second handler did not run after the first panicked")
	}
}
