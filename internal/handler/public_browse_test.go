package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/movietix/movietix/internal/model"
	"github.com/movietix/movietix/internal/seatmap"
)

func TestGroupSeatsShapesRows(t *testing.T) {
	seats := seatmap.Generate(7, []model.SeatType{
		{Name: "VIP", PriceCents: 2500, Capacity: 10},
		{Name: "Standard", PriceCents: 1200, Capacity: 23},
	})

	groups := groupSeats(seats)

	assert.Len(t, groups, 2)
	assert.Equal(t, "VIP", groups[0].SeatType)
	assert.Equal(t, uint32(2500), groups[0].PriceCents)
	assert.Len(t, groups[0].Rows, 1)
	assert.Equal(t, "A", groups[0].Rows[0].Row)
	assert.Len(t, groups[0].Rows[0].Seats, 10)

	assert.Equal(t, "Standard", groups[1].SeatType)
	assert.Len(t, groups[1].Rows, 3)
	assert.Equal(t, "C", groups[1].Rows[2].Row)
	assert.Len(t, groups[1].Rows[2].Seats, 3)
}

func TestGroupSeatsEmpty(t *testing.T) {
	assert.Empty(t, groupSeats(nil))
}
