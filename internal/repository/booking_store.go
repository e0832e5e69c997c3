package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/movietix/movietix/internal/booking"
	"github.com/movietix/movietix/internal/model"
)

// BookingStore implements booking.Store over MySQL by composing the
// schedule, seat and booking repositories. All multi-row mutations run
// inside a single transaction.
type BookingStore struct {
	db        *sql.DB
	schedules *ScheduleRepo
	seats     *EventSeatRepo
	bookings  *BookingRepo
}

// NewBookingStore constructs a BookingStore over the given repositories.
func NewBookingStore(db *sql.DB, schedules *ScheduleRepo, seats *EventSeatRepo, bookings *BookingRepo) *BookingStore {
	return &BookingStore{db: db, schedules: schedules, seats: seats, bookings: bookings}
}

// ScheduleByID resolves a schedule. ErrScheduleNotFound passes through
// so handlers can distinguish a bad schedule from a bad seat.
func (s *BookingStore) ScheduleByID(ctx context.Context, id uint64) (*model.EventSchedule, error) {
	return s.schedules.GetByID(ctx, id)
}

// SeatsByIDs loads the requested seats of one schedule.
func (s *BookingStore) SeatsByIDs(ctx context.Context, scheduleID uint64, seatIDs []uint64) ([]model.EventSeat, error) {
	return s.seats.SeatsByIDs(ctx, scheduleID, seatIDs)
}

// BookSeats performs the all-or-nothing commit: every seat is flipped
// through a per-seat compare-and-set, and the first seat that was
// already booked aborts the whole transaction with ErrSeatConflict.
// The booking row and its seat line items are written in the same
// transaction, so a booking can never reference a seat it did not win.
func (s *BookingStore) BookSeats(ctx context.Context, b *model.Booking) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	for _, seatID := range b.SeatIDs {
		ok, err := s.seats.MarkBookedTx(ctx, tx, b.ScheduleID, seatID)
		if err != nil {
			return err
		}
		if !ok {
			return booking.ErrSeatConflict
		}
	}
	if err := s.bookings.CreateTx(ctx, tx, b); err != nil {
		return err
	}
	if err := insertBookingSeatsFromEventSeatsTx(ctx, tx, b.ID, b.SeatIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ReleaseBooking cancels a booking owned by userID and frees its seats
// in one transaction. A booking already cancelled maps to
// booking.ErrAlreadyCancelled, an unknown or foreign booking to
// booking.ErrBookingNotFound.
func (s *BookingStore) ReleaseBooking(ctx context.Context, bookingID, userID uint64) error {
	b, err := s.bookings.GetByIDAndUser(ctx, bookingID, userID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return booking.ErrBookingNotFound
		}
		return err
	}
	if b.Status == model.BookingCancelled {
		return booking.ErrAlreadyCancelled
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	changed, err := s.bookings.UpdateStatusTx(ctx, tx, b.ID, model.BookingCancelled)
	if err != nil {
		return err
	}
	if !changed {
		// Lost a race with another cancel of the same booking.
		return booking.ErrAlreadyCancelled
	}
	if err := s.seats.ReleaseTx(ctx, tx, b.SeatIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// BookingsByUser lists the user's bookings as plain booking records.
func (s *BookingStore) BookingsByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	details, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]model.Booking, 0, len(details))
	for _, d := range details {
		out = append(out, d.Booking)
	}
	return out, nil
}

// insertBookingSeatsFromEventSeatsTx copies each seat's current stored
// price into booking_seats, pinning what was charged at commit time.
func insertBookingSeatsFromEventSeatsTx(ctx context.Context, tx *sql.Tx, bookingID uint64, seatIDs []uint64) error {
	if len(seatIDs) == 0 {
		return nil
	}
	query := `INSERT INTO booking_seats (booking_id, seat_id, price_cents)
	          SELECT ?, id, price_cents FROM event_seats WHERE id IN (`
	args := make([]interface{}, 0, len(seatIDs)+1)
	args = append(args, bookingID)
	for i, id := range seatIDs {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += ")"
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}
