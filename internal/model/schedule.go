package model

import "time"

// EventSchedule is a screening of a movie at a company's theater on a
// calendar date. Its seat types are a priced copy of the company's
// template taken at creation time; editing the company later never
// changes an existing schedule's pricing or capacity.
//
// Fields:
//  ID        – primary key identifier.
//  OwnerID   – vendor user who created the schedule.
//  CompanyID – theater being screened at.
//  MovieID   – movie being screened.
//  ShowDate  – calendar date of the screening ("2006-01-02").
//  ShowTime  – optional time of day ("15:04"), nil when absent.
//  SeatTypes – ordered, priced seat-type inventory.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type EventSchedule struct {
	ID        uint64     // event_schedules.id
	OwnerID   uint64     // event_schedules.owner_id
	CompanyID uint64     // event_schedules.company_id
	MovieID   uint64     // event_schedules.movie_id
	ShowDate  string     // event_schedules.show_date
	ShowTime  *string    // event_schedules.show_time (nullable)
	SeatTypes []SeatType // schedule_seat_types, ordered by position
	CreatedAt time.Time  // event_schedules.created_at
	UpdatedAt time.Time  // event_schedules.updated_at
}

// SeatType is a priced seating category scoped to one schedule.
//
// Fields:
//  Name       – category name (Standard, VIP, ...), unique per schedule.
//  PriceCents – price per seat in cents (non-negative).
//  Capacity   – number of seats to generate (positive).
//  Color      – display color tag.
type SeatType struct {
	Name       string // schedule_seat_types.name
	PriceCents uint32 // schedule_seat_types.price_cents
	Capacity   uint32 // schedule_seat_types.capacity
	Color      string // schedule_seat_types.color
}
