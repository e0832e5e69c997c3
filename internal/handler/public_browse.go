package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/movietix/movietix/internal/catalog"
	"github.com/movietix/movietix/internal/model"
	"github.com/movietix/movietix/internal/repository"
)

// PublicHandler exposes unauthenticated browse endpoints: the movie
// catalog, schedules and per-schedule seat maps.
type PublicHandler struct {
	Catalog   *catalog.Service
	Schedules *repository.ScheduleRepo
	Seats     *repository.EventSeatRepo
}

// NewPublicHandler constructs a PublicHandler and panics if any
// dependency is nil.
func NewPublicHandler(cat *catalog.Service, schedules *repository.ScheduleRepo, seats *repository.EventSeatRepo) *PublicHandler {
	if cat == nil || schedules == nil || seats == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	return &PublicHandler{Catalog: cat, Schedules: schedules, Seats: seats}
}

// ListMovies returns the movie catalog. An optional ?q= filter matches
// movie names case-insensitively. When the store is down the catalog
// serves its last known snapshot; only a cold start with no snapshot
// yields 503.
func (h *PublicHandler) ListMovies(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	movies, err := h.Catalog.ListMovies(ctx)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store unavailable"})
	}
	if q := strings.ToLower(strings.TrimSpace(c.QueryParam("q"))); q != "" {
		filtered := make([]model.Movie, 0, len(movies))
		for _, m := range movies {
			if strings.Contains(strings.ToLower(m.Name), q) {
				filtered = append(filtered, m)
			}
		}
		movies = filtered
	}
	return c.JSON(http.StatusOK, movies)
}

// GetMovie returns one movie by ID.
func (h *PublicHandler) GetMovie(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	m, err := h.Catalog.MovieByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store unavailable"})
	}
	return c.JSON(http.StatusOK, m)
}

// ListSchedules returns schedules filtered by optional date, company
// and movie query parameters.
func (h *PublicHandler) ListSchedules(c echo.Context) error {
	f := repository.ScheduleFilter{ShowDate: c.QueryParam("date")}
	if v := c.QueryParam("company_id"); v != "" {
		if n, ok := parseQueryID(v); ok {
			f.CompanyID = n
		}
	}
	if v := c.QueryParam("movie_id"); v != "" {
		if n, ok := parseQueryID(v); ok {
			f.MovieID = n
		}
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	schedules, err := h.Schedules.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store unavailable"})
	}
	return c.JSON(http.StatusOK, schedules)
}

// ListMovieSchedules returns schedules of one movie, optionally
// filtered by date.
func (h *PublicHandler) ListMovieSchedules(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	f := repository.ScheduleFilter{MovieID: id, ShowDate: c.QueryParam("date")}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	schedules, err := h.Schedules.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store unavailable"})
	}
	return c.JSON(http.StatusOK, schedules)
}

// GetSchedule returns one schedule with its seat types.
func (h *PublicHandler) GetSchedule(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	s, err := h.Schedules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store unavailable"})
	}
	return c.JSON(http.StatusOK, s)
}

// seatRow is one rendered row of the seat map.
type seatRow struct {
	Row   string            `json:"row"`
	Seats []model.EventSeat `json:"seats"`
}

// seatGroup is one seat type with its rows in display order.
type seatGroup struct {
	SeatType   string    `json:"seat_type"`
	PriceCents uint32    `json:"price_cents"`
	Rows       []seatRow `json:"rows"`
}

// GetScheduleSeats returns the full seat map of a schedule grouped by
// seat type and row, the shape clients render the seat picker from.
func (h *PublicHandler) GetScheduleSeats(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if _, err := h.Schedules.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store unavailable"})
	}
	seats, err := h.Seats.ListBySchedule(ctx, id)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"schedule_id": id,
		"groups":      groupSeats(seats),
	})
}

// groupSeats folds an ordered flat seat list into type and row groups.
// The input order (seat type position, then id) already matches the
// generation order, so rows come out A, B, C within each type.
func groupSeats(seats []model.EventSeat) []seatGroup {
	groups := make([]seatGroup, 0)
	for _, s := range seats {
		if len(groups) == 0 || groups[len(groups)-1].SeatType != s.SeatType {
			groups = append(groups, seatGroup{SeatType: s.SeatType, PriceCents: s.PriceCents})
		}
		g := &groups[len(groups)-1]
		if len(g.Rows) == 0 || g.Rows[len(g.Rows)-1].Row != s.RowLabel {
			g.Rows = append(g.Rows, seatRow{Row: s.RowLabel})
		}
		r := &g.Rows[len(g.Rows)-1]
		r.Seats = append(r.Seats, s)
	}
	return groups
}
