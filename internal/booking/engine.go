// Package booking commits seat selections into immutable booking
// records. The engine never trusts client-held seat state: every commit
// re-validates the booked flag through the store's atomic book
// operation, so two overlapping commits can never both win a seat.
package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/movietix/movietix/internal/model"
)

// Sentinel errors surfaced by the engine. Handlers translate these into
// HTTP status codes; anything else is a store failure and propagates
// unchanged.
var (
	// ErrEmptySelection is returned when a commit carries no seat IDs.
	ErrEmptySelection = errors.New("no seats selected")
	// ErrSeatNotFound is returned when a requested seat does not exist
	// or does not belong to the schedule being booked.
	ErrSeatNotFound = errors.New("seat not found")
	// ErrSeatConflict is returned when one or more requested seats are
	// already booked at commit time. The commit performs no partial
	// mutation: either every seat flips or none does.
	ErrSeatConflict = errors.New("seat already booked")
	// ErrBookingNotFound is returned when a booking ID does not resolve
	// for the acting user.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrAlreadyCancelled is returned when cancelling a booking twice.
	ErrAlreadyCancelled = errors.New("booking already cancelled")
)

// Store is the persistence boundary the engine requires. BookSeats must
// be atomic at the batch level: it marks every seat booked if and only
// if all of them are currently unbooked, inserts the booking record in
// the same transaction, and returns ErrSeatConflict without any partial
// flip otherwise. The SQL implementation lives in internal/repository.
type Store interface {
	ScheduleByID(ctx context.Context, id uint64) (*model.EventSchedule, error)
	SeatsByIDs(ctx context.Context, scheduleID uint64, seatIDs []uint64) ([]model.EventSeat, error)
	BookSeats(ctx context.Context, b *model.Booking) error
	ReleaseBooking(ctx context.Context, bookingID, userID uint64) error
	BookingsByUser(ctx context.Context, userID uint64) ([]model.Booking, error)
}

// Engine orchestrates booking commits and cancellations over a Store.
type Engine struct {
	store Store
}

// NewEngine returns an Engine bound to the given store.
func NewEngine(store Store) *Engine {
	if store == nil {
		panic("nil store passed to NewEngine")
	}
	return &Engine{store: store}
}

// Commit turns a non-empty seat selection into a CONFIRMED booking. The
// total price is the sum of each seat's stored generation-time price;
// it is never recomputed from the schedule, so later schedule edits do
// not change what was charged. Duplicate seat IDs in the request are
// collapsed and the rest are booked in ascending ID order, so
// overlapping commits always contend on rows in the same sequence. On
// any seat conflict the whole commit fails and no seat state changes.
func (e *Engine) Commit(ctx context.Context, userID, scheduleID uint64, seatIDs []uint64) (*model.Booking, error) {
	ids := dedupe(seatIDs)
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}
	sched, err := e.store.ScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	seats, err := e.store.SeatsByIDs(ctx, scheduleID, ids)
	if err != nil {
		return nil, err
	}
	if len(seats) != len(ids) {
		return nil, ErrSeatNotFound
	}
	// Cheap pre-check; the authoritative check is the atomic flip in
	// BookSeats.
	var total uint32
	for _, s := range seats {
		if s.Booked {
			return nil, ErrSeatConflict
		}
		total += s.PriceCents
	}
	b := &model.Booking{
		UserID:          userID,
		ScheduleID:      sched.ID,
		CompanyID:       sched.CompanyID,
		MovieID:         sched.MovieID,
		Status:          model.BookingConfirmed,
		TotalPriceCents: total,
		SeatIDs:         ids,
	}
	if err := e.store.BookSeats(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Cancel transitions a CONFIRMED booking owned by userID to CANCELLED
// and releases its seats back to unbooked.
func (e *Engine) Cancel(ctx context.Context, userID, bookingID uint64) error {
	if err := e.store.ReleaseBooking(ctx, bookingID, userID); err != nil {
		return fmt.Errorf("cancel booking %d: %w", bookingID, err)
	}
	return nil
}

// BookingsByUser lists a user's bookings in the store's creation-time
// order (the SQL store returns newest first).
func (e *Engine) BookingsByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return e.store.BookingsByUser(ctx, userID)
}

func dedupe(ids []uint64) []uint64 {
	out := make([]uint64, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	// Ascending order imposes a global row-lock order; without it two
	// commits over the same seats in opposite orders can deadlock.
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
