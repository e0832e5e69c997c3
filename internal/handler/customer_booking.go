package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/movietix/movietix/internal/booking"
	"github.com/movietix/movietix/internal/queue"
	"github.com/movietix/movietix/internal/repository"
	publisher "github.com/movietix/movietix/internal/service"
)

// CustomerHandler serves booking endpoints for authenticated users.
type CustomerHandler struct {
	Engine   *booking.Engine
	Bookings *repository.BookingRepo
	amqpURL  string
}

// NewCustomerHandler constructs a CustomerHandler and panics if any
// dependency is nil.
func NewCustomerHandler(engine *booking.Engine, bookings *repository.BookingRepo, amqpURL string) *CustomerHandler {
	if engine == nil || bookings == nil {
		panic("nil dependency passed to NewCustomerHandler")
	}
	return &CustomerHandler{Engine: engine, Bookings: bookings, amqpURL: amqpURL}
}

type bookReq struct {
	SeatIDs []uint64 `json:"seat_ids"`
}

// Book commits a seat selection on a schedule. All requested seats are
// booked or none are; a conflict on any seat returns 409 with the seat
// state unchanged.
func (h *CustomerHandler) Book(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	scheduleID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	b, err := h.Engine.Commit(ctx, uid, scheduleID, req.SeatIDs)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrEmptySelection):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no seats selected"})
		case errors.Is(err, booking.ErrSeatNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		case errors.Is(err, repository.ErrScheduleNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		case errors.Is(err, booking.ErrSeatConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "one or more seats are already booked"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
		}
	}

	h.publishConfirmed(b.ID, uid)

	return c.JSON(http.StatusCreated, b)
}

// publishConfirmed emits a booking.confirmed event in the background.
// Failures are logged and never affect the request that triggered them.
func (h *CustomerHandler) publishConfirmed(bookingID, userID uint64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		d, err := h.bookingDetail(ctx, bookingID, userID)
		if err != nil {
			log.Printf("booking-event: load detail failed: %v", err)
			return
		}
		ev := queue.BookingConfirmedEvent{
			BookingID:       d.ID,
			UserID:          d.UserID,
			ScheduleID:      d.ScheduleID,
			CompanyID:       d.CompanyID,
			CompanyName:     d.CompanyName,
			MovieID:         d.MovieID,
			MovieTitle:      d.MovieName,
			ShowDate:        d.ShowDate,
			SeatLabels:      d.Seats,
			TotalPriceCents: d.TotalPriceCents,
			ConfirmedAt:     d.CreatedAt.UTC().Format(time.RFC3339),
		}
		if d.ShowTime != nil {
			ev.ShowTime = *d.ShowTime
		}
		if err := publisher.PublishBookingConfirmed(ctx, h.amqpURL, ev); err != nil {
			log.Printf("booking-event: publish failed: %v", err)
		}
	}()
}

func (h *CustomerHandler) bookingDetail(ctx context.Context, bookingID, userID uint64) (*repository.BookingDetail, error) {
	details, err := h.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range details {
		if details[i].ID == bookingID {
			return &details[i], nil
		}
	}
	return nil, repository.ErrBookingNotFound
}

// MyBookings lists the caller's bookings with movie, company and seat
// details.
func (h *CustomerHandler) MyBookings(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	details, err := h.Bookings.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, details)
}

// GetBooking returns a single booking owned by the caller.
func (h *CustomerHandler) GetBooking(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	b, err := h.Bookings.GetByIDAndUser(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	return c.JSON(http.StatusOK, b)
}

// CancelBooking cancels a booking owned by the caller and releases its
// seats.
func (h *CustomerHandler) CancelBooking(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	if err := h.Engine.Cancel(ctx, uid, id); err != nil {
		switch {
		case errors.Is(err, booking.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, booking.ErrAlreadyCancelled):
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking already cancelled"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel booking failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
