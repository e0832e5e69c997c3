package handler

import (
	"github.com/movietix/movietix/internal/catalog"
	"github.com/movietix/movietix/internal/repository"
)

// VendorHandler bundles the repositories vendors need to manage their
// movies, companies and schedules.
type VendorHandler struct {
	Movies    *repository.MovieRepo
	Companies *repository.CompanyRepo
	Schedules *repository.ScheduleRepo
	Seats     *repository.EventSeatRepo
	Bookings  *repository.BookingRepo
	Catalog   *catalog.Service
}

// NewVendorHandler constructs a VendorHandler and panics if any
// dependency is nil.
func NewVendorHandler(movies *repository.MovieRepo, companies *repository.CompanyRepo, schedules *repository.ScheduleRepo, seats *repository.EventSeatRepo, bookings *repository.BookingRepo, cat *catalog.Service) *VendorHandler {
	if movies == nil || companies == nil || schedules == nil || seats == nil || bookings == nil || cat == nil {
		panic("nil dependency passed to NewVendorHandler")
	}
	return &VendorHandler{
		Movies:    movies,
		Companies: companies,
		Schedules: schedules,
		Seats:     seats,
		Bookings:  bookings,
		Catalog:   cat,
	}
}
