package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/movietix/movietix/internal/model"
	"github.com/movietix/movietix/internal/repository"
	"github.com/movietix/movietix/internal/schedule"
	"github.com/movietix/movietix/internal/seatmap"
)

// CreateSchedule validates the request, snapshots prices from the
// company template where the request omits them, and creates the
// schedule together with its full seat map in one transaction.
func (h *VendorHandler) CreateSchedule(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req schedule.CreateInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := schedule.Validate(req); err != nil {
		var verr *schedule.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error(), "field": verr.Field})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	co, err := h.Companies.GetByIDAndOwner(ctx, req.CompanyID, uid)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load company failed"})
	}
	if _, err := h.Movies.GetByID(ctx, req.MovieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load movie failed"})
	}

	seatTypes := mergeCompanyDefaults(req.SeatTypes, co.SeatTypes)
	s := &model.EventSchedule{
		OwnerID:   uid,
		CompanyID: req.CompanyID,
		MovieID:   req.MovieID,
		ShowDate:  req.ShowDate,
		ShowTime:  req.ShowTime,
		SeatTypes: seatTypes,
	}

	tx, err := h.Schedules.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create schedule failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := h.Schedules.CreateTx(ctx, tx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create schedule failed"})
	}
	seats := seatmap.Generate(s.ID, s.SeatTypes)
	if err := h.Seats.CreateBulkTx(ctx, tx, seats); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create seats failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create schedule failed"})
	}
	committed = true

	return c.JSON(http.StatusCreated, echo.Map{
		"schedule":   s,
		"seat_count": len(seats),
	})
}

// mergeCompanyDefaults fills a zero seat-type price from the company
// template entry of the same name, when one exists.
func mergeCompanyDefaults(requested []model.SeatType, template []model.SeatTypeConfig) []model.SeatType {
	defaults := make(map[string]uint32, len(template))
	colors := make(map[string]string, len(template))
	for _, t := range template {
		key := strings.ToLower(t.Name)
		if t.DefaultPriceCents != nil {
			defaults[key] = *t.DefaultPriceCents
		}
		colors[key] = t.Color
	}
	out := make([]model.SeatType, len(requested))
	for i, st := range requested {
		key := strings.ToLower(strings.TrimSpace(st.Name))
		if st.PriceCents == 0 {
			if def, ok := defaults[key]; ok {
				st.PriceCents = def
			}
		}
		if st.Color == "" {
			st.Color = colors[key]
		}
		out[i] = st
	}
	return out
}

// ListMySchedules returns the vendor's schedules, optionally filtered
// by date, company or movie via query parameters.
func (h *VendorHandler) ListMySchedules(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	f := repository.ScheduleFilter{OwnerID: uid, ShowDate: c.QueryParam("date")}
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
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list schedules failed"})
	}
	return c.JSON(http.StatusOK, schedules)
}

// UpdateSchedule changes a schedule's show date/time. Seat types and
// the generated seat map are immutable once created.
func (h *VendorHandler) UpdateSchedule(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
	}
	var req struct {
		ShowDate string  `json:"show_date"`
		ShowTime *string `json:"show_time,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if _, err := time.Parse(schedule.DateLayout, req.ShowDate); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "show_date must be a date in YYYY-MM-DD form"})
	}
	if req.ShowTime != nil {
		if _, err := time.Parse(schedule.TimeLayout, *req.ShowTime); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "show_time must be a time in HH:MM form"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Schedules.UpdateDateByIDAndOwner(ctx, id, uid, req.ShowDate, req.ShowTime); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		case errors.Is(err, repository.ErrNoChange):
			return c.JSON(http.StatusOK, echo.Map{"updated": false})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update schedule failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": true})
}

// DeleteSchedule removes a schedule and its seat map. Schedules with
// active bookings cannot be deleted.
func (h *VendorHandler) DeleteSchedule(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Schedules.DeleteByIDAndOwner(ctx, id, uid); err != nil {
		switch err {
		case repository.ErrScheduleNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "schedule has active bookings"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete schedule failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// ListScheduleBookings lets a vendor inspect the bookings taken on one
// of their schedules.
func (h *VendorHandler) ListScheduleBookings(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	bookings, err := h.Bookings.ListByScheduleForOwner(ctx, id, uid)
	if err != nil {
		switch err {
		case repository.ErrScheduleNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
		}
	}
	return c.JSON(http.StatusOK, bookings)
}
