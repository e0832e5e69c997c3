package model

import "time"

// Company represents a theater owned by a vendor. A company is a
// template: it carries a seat-type configuration but no bookable seats
// of its own — seats exist only on schedules, which copy the
// configuration (with prices) at creation time.
//
// Fields:
//  ID        – primary key identifier.
//  OwnerID   – user ID of the owning vendor.
//  Name      – theater name.
//  SeatTypes – ordered seat-type configuration.
//  CreatedAt – timestamp when the company was created.
//  UpdatedAt – timestamp of last update.
type Company struct {
	ID        uint64           // companies.id
	OwnerID   uint64           // companies.owner_id
	Name      string           // companies.name
	SeatTypes []SeatTypeConfig // company_seat_types, ordered by position
	CreatedAt time.Time        // companies.created_at
	UpdatedAt time.Time        // companies.updated_at
}

// SeatTypeConfig is one entry of a company's seating template. Name is
// unique within the company. DefaultPriceCents seeds the schedule form
// but the authoritative price lives on the schedule's seat types.
type SeatTypeConfig struct {
	Name              string  // company_seat_types.name
	Capacity          uint32  // company_seat_types.capacity (positive)
	Color             string  // company_seat_types.color (display tag)
	DefaultPriceCents *uint32 // company_seat_types.default_price_cents (nullable)
}
