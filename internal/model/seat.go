package model

import "time"

// EventSeat is a single bookable seat belonging to one schedule. Seats
// are created in bulk when the schedule is created, as the deterministic
// expansion of the schedule's seat types, and are never deleted while
// the schedule exists. The booked flag is flipped only by the booking
// engine: false→true on commit, true→false on cancellation.
//
// Fields:
//  ID         – primary key identifier.
//  ScheduleID – owning schedule.
//  SeatType   – name of the seat type this seat was generated from.
//  RowLabel   – row letters ("A", "B", ... "AA" past 26 rows).
//  SeatNo     – 1-based seat number within the row.
//  PriceCents – price copied from the seat type at generation time.
//  Booked     – whether the seat is committed to a booking.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type EventSeat struct {
	ID         uint64    // event_seats.id
	ScheduleID uint64    // event_seats.schedule_id
	SeatType   string    // event_seats.seat_type
	RowLabel   string    // event_seats.row_label
	SeatNo     uint32    // event_seats.seat_no
	PriceCents uint32    // event_seats.price_cents
	Booked     bool      // event_seats.booked
	CreatedAt  time.Time // event_seats.created_at
	UpdatedAt  time.Time // event_seats.updated_at
}
