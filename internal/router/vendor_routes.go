package router

import (
	"github.com/labstack/echo/v4"

	"github.com/movietix/movietix/internal/handler"
	"github.com/movietix/movietix/internal/middleware"
	"github.com/movietix/movietix/internal/model"
)

// RegisterVendor registers vendor-scoped endpoints under /v1. All
// routes require a valid JWT and the VENDOR (or ADMIN) role.
func RegisterVendor(e *echo.Echo, v *handler.VendorHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleVendor, model.RoleAdmin),
	)

	// ---- Movies ----
	g.POST("/movies", v.CreateMovie)
	g.GET("/my/movies", v.ListMyMovies)
	g.PUT("/movies/:id", v.UpdateMovie)
	g.PATCH("/movies/:id", v.UpdateMovie)
	g.DELETE("/movies/:id", v.DeleteMovie)

	// ---- Companies ----
	g.POST("/companies", v.CreateCompany)
	g.GET("/my/companies", v.ListMyCompanies)
	g.PUT("/companies/:id", v.UpdateCompany)
	g.PATCH("/companies/:id", v.UpdateCompany)
	g.DELETE("/companies/:id", v.DeleteCompany)

	// ---- Schedules ----
	g.POST("/schedules", v.CreateSchedule)
	g.GET("/my/schedules", v.ListMySchedules)
	g.PUT("/schedules/:id", v.UpdateSchedule)
	g.PATCH("/schedules/:id", v.UpdateSchedule)
	g.DELETE("/schedules/:id", v.DeleteSchedule)

	// ---- Bookings taken on a vendor's schedule ----
	g.GET("/schedules/:id/bookings", v.ListScheduleBookings)
}
