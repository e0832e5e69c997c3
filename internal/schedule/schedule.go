// Package schedule validates vendor input for new event schedules
// before any row is written. The seat grid itself is derived from the
// validated seat types by internal/seatmap.
package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/movietix/movietix/internal/model"
)

// DateLayout is the accepted calendar date format for show dates.
const DateLayout = "2006-01-02"

// TimeLayout is the accepted clock format for optional show times.
const TimeLayout = "15:04"

// ValidationError reports a rejected field of a create/update request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CreateInput carries a vendor's request to schedule a movie showing.
type CreateInput struct {
	CompanyID uint64           `json:"company_id"`
	MovieID   uint64           `json:"movie_id"`
	ShowDate  string           `json:"show_date"`
	ShowTime  *string          `json:"show_time,omitempty"`
	SeatTypes []model.SeatType `json:"seat_types"`
}

// Validate checks a create request. It returns a *ValidationError for
// the first field that fails, nil when the input is acceptable.
func Validate(in CreateInput) error {
	if in.CompanyID == 0 {
		return &ValidationError{Field: "company_id", Reason: "required"}
	}
	if in.MovieID == 0 {
		return &ValidationError{Field: "movie_id", Reason: "required"}
	}
	if _, err := time.Parse(DateLayout, in.ShowDate); err != nil {
		return &ValidationError{Field: "show_date", Reason: "must be a date in YYYY-MM-DD form"}
	}
	if in.ShowTime != nil {
		if _, err := time.Parse(TimeLayout, *in.ShowTime); err != nil {
			return &ValidationError{Field: "show_time", Reason: "must be a time in HH:MM form"}
		}
	}
	if len(in.SeatTypes) == 0 {
		return &ValidationError{Field: "seat_types", Reason: "at least one seat type is required"}
	}
	seen := make(map[string]struct{}, len(in.SeatTypes))
	for i, st := range in.SeatTypes {
		name := strings.TrimSpace(st.Name)
		if name == "" {
			return &ValidationError{Field: fmt.Sprintf("seat_types[%d].name", i), Reason: "required"}
		}
		if _, dup := seen[strings.ToLower(name)]; dup {
			return &ValidationError{Field: fmt.Sprintf("seat_types[%d].name", i), Reason: "duplicate seat type name"}
		}
		seen[strings.ToLower(name)] = struct{}{}
		if st.Capacity == 0 {
			return &ValidationError{Field: fmt.Sprintf("seat_types[%d].capacity", i), Reason: "must be greater than zero"}
		}
	}
	return nil
}
