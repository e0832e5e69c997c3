package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/movietix/movietix/internal/model"
	"github.com/movietix/movietix/internal/repository"
)

type movieReq struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
	DurationMin uint32   `json:"duration_min"`
	ImageURL    string   `json:"image_url"`
	Rating      *float64 `json:"rating,omitempty"`
}

// CreateMovie adds a movie to the catalog owned by the acting vendor.
func (h *VendorHandler) CreateMovie(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.DurationMin == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "duration_min must be greater than zero"})
	}
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 10) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 0 and 10"})
	}

	m := &model.Movie{
		OwnerID:     uid,
		Name:        req.Name,
		Description: req.Description,
		Genres:      req.Genres,
		DurationMin: req.DurationMin,
		ImageURL:    req.ImageURL,
		Rating:      req.Rating,
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Movies.Create(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}
	return c.JSON(http.StatusCreated, m)
}

// ListMyMovies returns the vendor's own movies.
func (h *VendorHandler) ListMyMovies(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	movies, err := h.Movies.ListByOwner(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list movies failed"})
	}
	return c.JSON(http.StatusOK, movies)
}

// UpdateMovie replaces the mutable fields of a movie the vendor owns.
// A movie referenced by any schedule is frozen and returns 409.
func (h *VendorHandler) UpdateMovie(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.DurationMin == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "duration_min must be greater than zero"})
	}

	m := &model.Movie{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Genres:      req.Genres,
		DurationMin: req.DurationMin,
		ImageURL:    req.ImageURL,
		Rating:      req.Rating,
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Movies.UpdateByIDAndOwner(ctx, m, uid); err != nil {
		switch err {
		case repository.ErrMovieNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "movie has schedules"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": true})
}

// DeleteMovie removes a movie the vendor owns. A movie referenced by
// any schedule cannot be deleted.
func (h *VendorHandler) DeleteMovie(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Movies.DeleteByIDAndOwner(ctx, id, uid); err != nil {
		switch err {
		case repository.ErrMovieNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "movie has schedules"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete movie failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
