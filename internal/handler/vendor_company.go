package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/movietix/movietix/internal/model"
	"github.com/movietix/movietix/internal/repository"
)

type companyReq struct {
	Name      string                 `json:"name"`
	SeatTypes []model.SeatTypeConfig `json:"seat_types"`
}

func validateCompanyReq(req *companyReq) string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name required"
	}
	seen := make(map[string]struct{}, len(req.SeatTypes))
	for _, st := range req.SeatTypes {
		name := strings.ToLower(strings.TrimSpace(st.Name))
		if name == "" {
			return "seat type name required"
		}
		if _, dup := seen[name]; dup {
			return "duplicate seat type name"
		}
		seen[name] = struct{}{}
		if st.Capacity == 0 {
			return "seat type capacity must be greater than zero"
		}
	}
	return ""
}

// CreateCompany registers a venue with its seat-type template. The
// template seeds seat types when the vendor later schedules a showing.
func (h *VendorHandler) CreateCompany(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req companyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := validateCompanyReq(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	co := &model.Company{OwnerID: uid, Name: req.Name, SeatTypes: req.SeatTypes}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Companies.Create(ctx, co); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create company failed"})
	}
	return c.JSON(http.StatusCreated, co)
}

// ListMyCompanies returns the vendor's companies through the catalog
// service, so a transient store failure degrades to the last snapshot.
func (h *VendorHandler) ListMyCompanies(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	companies, err := h.Catalog.CompaniesByOwner(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store unavailable"})
	}
	return c.JSON(http.StatusOK, companies)
}

// UpdateCompany replaces the name and seat-type template of a company
// the vendor owns. Existing schedules are unaffected: they carry their
// own priced copy of the template.
func (h *VendorHandler) UpdateCompany(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid company id"})
	}
	var req companyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := validateCompanyReq(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	co := &model.Company{ID: id, Name: req.Name, SeatTypes: req.SeatTypes}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Companies.UpdateByIDAndOwner(ctx, co, uid); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update company failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": true})
}

// DeleteCompany removes a company the vendor owns, unless schedules
// still reference it.
func (h *VendorHandler) DeleteCompany(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid company id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Companies.DeleteByIDAndOwner(ctx, id, uid); err != nil {
		switch err {
		case repository.ErrCompanyNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "company has schedules"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete company failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
