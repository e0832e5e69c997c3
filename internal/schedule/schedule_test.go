package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/movietix/movietix/internal/model"
)

func validInput() CreateInput {
	return CreateInput{
		CompanyID: 1,
		MovieID:   2,
		ShowDate:  "2026-09-14",
		SeatTypes: []model.SeatType{
			{Name: "VIP", PriceCents: 2500, Capacity: 10, Color: "#FFD700"},
			{Name: "Standard", PriceCents: 1200, Capacity: 40, Color: "#CCCCCC"},
		},
	}
}

func TestValidateAccepts(t *testing.T) {
	assert.NoError(t, Validate(validInput()))

	in := validInput()
	tm := "19:30"
	in.ShowTime = &tm
	assert.NoError(t, Validate(in))
}

func TestValidateRejectsEmptySeatTypes(t *testing.T) {
	in := validInput()
	in.SeatTypes = nil

	err := Validate(in)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "seat_types", verr.Field)
}

func TestValidateRejectsBadDate(t *testing.T) {
	for _, d := range []string{"", "14-09-2026", "2026/09/14", "not-a-date"} {
		in := validInput()
		in.ShowDate = d

		err := Validate(in)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, "date %q", d)
		assert.Equal(t, "show_date", verr.Field)
	}
}

func TestValidateRejectsBadTime(t *testing.T) {
	in := validInput()
	tm := "7pm"
	in.ShowTime = &tm

	err := Validate(in)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "show_time", verr.Field)
}

func TestValidateRejectsZeroCapacity(t *testing.T) {
	in := validInput()
	in.SeatTypes[1].Capacity = 0

	err := Validate(in)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "seat_types[1].capacity", verr.Field)
}

func TestValidateRejectsDuplicateTypeNames(t *testing.T) {
	in := validInput()
	in.SeatTypes[1].Name = "vip"

	err := Validate(in)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "seat_types[1].name", verr.Field)
}

func TestValidateRejectsMissingRefs(t *testing.T) {
	in := validInput()
	in.CompanyID = 0
	err := Validate(in)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "company_id", verr.Field)

	in = validInput()
	in.MovieID = 0
	err = Validate(in)
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "movie_id", verr.Field)
}
