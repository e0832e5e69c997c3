// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking commit succeeds.
// It carries enough for downstream consumers to log, notify, or feed
// analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID       uint64   `json:"booking_id"`
	UserID          uint64   `json:"user_id"`
	ScheduleID      uint64   `json:"schedule_id"`
	CompanyID       uint64   `json:"company_id"`
	CompanyName     string   `json:"company_name"`
	MovieID         uint64   `json:"movie_id"`
	MovieTitle      string   `json:"movie_title"`
	ShowDate        string   `json:"show_date"`
	ShowTime        string   `json:"show_time,omitempty"`
	SeatLabels      []string `json:"seats"`
	TotalPriceCents uint32   `json:"total_price_cents"`
	ConfirmedAt     string   `json:"confirmed_at"`
}
