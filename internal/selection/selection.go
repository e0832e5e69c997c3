// Package selection holds a caller-local draft of seats a user is
// considering booking. The draft is ephemeral and never authoritative:
// the booking engine re-validates every seat inside its transaction, so
// a tracker is only a convenience for building the seat-ID set sent to
// commit.
//
// The HTTP API is deliberately stateless about drafts: a client (or an
// embedding Go program, such as a kiosk frontend) keeps one Tracker per
// browsing session against the seat map from GET /v1/schedules/:id/seats
// and submits SeatIDs to POST /v1/schedules/:id/book. The server never
// persists a draft.
package selection

import (
	"sort"
	"sync"

	"github.com/movietix/movietix/internal/model"
)

// Tracker is a selection set scoped to one schedule at a time. It is
// safe for concurrent use, though a tracker normally belongs to a
// single user session. The zero value is not usable; call New.
type Tracker struct {
	mu         sync.Mutex
	scheduleID uint64
	seats      map[uint64]model.EventSeat
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{seats: make(map[uint64]model.EventSeat)}
}

// Toggle adds the seat to the selection if absent or removes it if
// present, keyed by seat ID. Booked seats never enter the selection;
// toggling one is a no-op. Toggling a seat from a different schedule
// than the current selection clears the selection first. It returns the
// resulting selection.
func (t *Tracker) Toggle(seat model.EventSeat) []model.EventSeat {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seat.Booked {
		return t.snapshot()
	}
	if t.scheduleID != seat.ScheduleID {
		t.seats = make(map[uint64]model.EventSeat)
		t.scheduleID = seat.ScheduleID
	}
	if _, ok := t.seats[seat.ID]; ok {
		delete(t.seats, seat.ID)
	} else {
		t.seats[seat.ID] = seat
	}
	return t.snapshot()
}

// Clear empties the selection.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seats = make(map[uint64]model.EventSeat)
	t.scheduleID = 0
}

// Selected returns the current selection ordered by seat ID.
func (t *Tracker) Selected() []model.EventSeat {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}

// SeatIDs returns the IDs of the current selection ordered ascending,
// in the shape the booking engine's commit expects.
func (t *Tracker) SeatIDs() []uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]uint64, 0, len(t.seats))
	for id := range t.seats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// TotalCents sums the price of every selected seat.
func (t *Tracker) TotalCents() uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	var total uint32
	for _, s := range t.seats {
		total += s.PriceCents
	}
	return total
}

// snapshot returns the selection sorted by seat ID. Caller must hold mu.
func (t *Tracker) snapshot() []model.EventSeat {
	out := make([]model.EventSeat, 0, len(t.seats))
	for _, s := range t.seats {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
