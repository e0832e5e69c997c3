package model

import "time"

// Booking statuses. Commit produces CONFIRMED directly; PENDING exists
// in the enum for schema completeness but is never observable through
// the booking flow. CANCELLED releases the booking's seats.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// Booking is the committed, priced record of seats purchased by a user
// for one schedule. It references — but does not own — the schedule,
// company and movie involved. After confirmation the record is
// immutable except for the CONFIRMED → CANCELLED status transition.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – user who booked.
//  ScheduleID      – schedule the seats belong to.
//  CompanyID       – theater, denormalized for history views.
//  MovieID         – movie, denormalized for history views.
//  Status          – PENDING, CONFIRMED or CANCELLED.
//  TotalPriceCents – sum of each committed seat's generation-time price.
//  SeatIDs         – identifiers of the committed seats.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Booking struct {
	ID              uint64    // bookings.id
	UserID          uint64    // bookings.user_id
	ScheduleID      uint64    // bookings.schedule_id
	CompanyID       uint64    // bookings.company_id
	MovieID         uint64    // bookings.movie_id
	Status          string    // bookings.status
	TotalPriceCents uint32    // bookings.total_price_cents
	SeatIDs         []uint64  // booking_seats.seat_id, ordered by insertion
	CreatedAt       time.Time // bookings.created_at
	UpdatedAt       time.Time // bookings.updated_at
}

// BookingSeat links a booking to one committed seat and freezes the
// price paid for it.
type BookingSeat struct {
	ID         uint64    // booking_seats.id
	BookingID  uint64    // booking_seats.booking_id
	SeatID     uint64    // booking_seats.seat_id
	PriceCents uint32    // booking_seats.price_cents
	CreatedAt  time.Time // booking_seats.created_at
}
