// Package router registers the HTTP routes of the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/movietix/movietix/internal/handler"
	"github.com/movietix/movietix/internal/middleware"
	"github.com/movietix/movietix/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes. Unauthenticated
// operations live under /v1/auth, the protected /v1/me beside them.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; refresh-access only issues a
	// new access token.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout takes either a bearer token (revoke all sessions) or a
	// refresh_token body (revoke one), so it skips the JWT middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleVendor, model.RoleUser),
	)
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints:
// catalog, schedules and seat maps. Guests can inspect everything up
// to the point of booking.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
	e.GET("/v1/movies", p.ListMovies)
	e.GET("/v1/movies/:id", p.GetMovie)
	e.GET("/v1/movies/:id/schedules", p.ListMovieSchedules)
	e.GET("/v1/schedules", p.ListSchedules)
	e.GET("/v1/schedules/:id", p.GetSchedule)
	e.GET("/v1/schedules/:id/seats", p.GetScheduleSeats)
}
