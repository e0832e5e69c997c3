package router

import (
	"github.com/labstack/echo/v4"

	"github.com/movietix/movietix/internal/handler"
	"github.com/movietix/movietix/internal/middleware"
	"github.com/movietix/movietix/internal/model"
)

// RegisterCustomer registers booking endpoints under /v1. All routes
// require a valid JWT; any authenticated role can book seats.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleVendor, model.RoleAdmin),
	)
	// Seat maps are public (GET /v1/schedules/:id/seats); booking
	// starts here.
	g.POST("/schedules/:id/book", h.Book)
	g.GET("/my-bookings", h.MyBookings)
	g.GET("/bookings/:id", h.GetBooking)
	g.DELETE("/bookings/:id", h.CancelBooking)
}
