package seatmap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/movietix/movietix/internal/model"
)

func TestGenerateExactCapacity(t *testing.T) {
	cases := []uint32{1, 9, 10, 11, 25, 100, 101, 120}
	for _, cap := range cases {
		t.Run(fmt.Sprintf("capacity_%d", cap), func(t *testing.T) {
			seats := Generate(1, []model.SeatType{{Name: "Standard", PriceCents: 1000, Capacity: cap}})
			assert.Len(t, seats, int(cap), "must produce exactly capacity seats")

			rows := map[string]bool{}
			for _, s := range seats {
				rows[s.RowLabel] = true
			}
			assert.Len(t, rows, RowCount(cap), "distinct row labels must equal ceil(capacity/10)")
		})
	}
}

func TestGenerateSingleRowScenario(t *testing.T) {
	// Cineverse VIP: capacity 10, price 25.00 -> exactly A1..A10.
	seats := Generate(7, []model.SeatType{{Name: "VIP", PriceCents: 2500, Capacity: 10, Color: "purple-500"}})
	assert.Len(t, seats, 10)
	for i, s := range seats {
		assert.Equal(t, "A", s.RowLabel)
		assert.Equal(t, uint32(i+1), s.SeatNo)
		assert.Equal(t, "VIP", s.SeatType)
		assert.Equal(t, uint32(2500), s.PriceCents)
		assert.False(t, s.Booked)
		assert.Equal(t, uint64(7), s.ScheduleID)
	}
}

func TestGenerateRemainderRow(t *testing.T) {
	seats := Generate(1, []model.SeatType{{Name: "Premium", PriceCents: 1500, Capacity: 23}})
	assert.Len(t, seats, 23)

	perRow := map[string][]uint32{}
	for _, s := range seats {
		perRow[s.RowLabel] = append(perRow[s.RowLabel], s.SeatNo)
	}
	assert.Equal(t, []uint32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, perRow["A"])
	assert.Equal(t, []uint32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, perRow["B"])
	assert.Equal(t, []uint32{1, 2, 3}, perRow["C"], "last row holds capacity mod 10 seats")
}

func TestGenerateTypesKeepOrderAndRestartRows(t *testing.T) {
	seats := Generate(1, []model.SeatType{
		{Name: "Standard", PriceCents: 1000, Capacity: 12},
		{Name: "VIP", PriceCents: 2500, Capacity: 5},
	})
	assert.Len(t, seats, 17)
	// Standard occupies the first 12 entries, VIP the rest.
	assert.Equal(t, "Standard", seats[0].SeatType)
	assert.Equal(t, "Standard", seats[11].SeatType)
	assert.Equal(t, "VIP", seats[12].SeatType)
	// VIP rows restart at A even though Standard already used A and B.
	assert.Equal(t, "A", seats[12].RowLabel)
	assert.Equal(t, uint32(1), seats[12].SeatNo)
}

func TestGenerateDeterministic(t *testing.T) {
	types := []model.SeatType{
		{Name: "Standard", PriceCents: 1000, Capacity: 34},
		{Name: "Premium", PriceCents: 1500, Capacity: 7},
	}
	a := Generate(42, types)
	b := Generate(42, types)
	assert.Equal(t, a, b, "generation must be a pure function of its input")

	// Every (type,row,no) address is unique.
	seen := map[string]bool{}
	for _, s := range a {
		key := fmt.Sprintf("%s/%s/%d", s.SeatType, s.RowLabel, s.SeatNo)
		assert.False(t, seen[key], "duplicate seat address %s", key)
		seen[key] = true
	}
}

func TestRowLabelWraparound(t *testing.T) {
	cases := map[int]string{
		0:  "A",
		1:  "B",
		25: "Z",
		26: "AA",
		27: "AB",
		51: "AZ",
		52: "BA",
	}
	for idx, want := range cases {
		assert.Equal(t, want, RowLabel(idx), "index %d", idx)
	}
	assert.Equal(t, "", RowLabel(-1))
}

func TestRowIndexRoundTrip(t *testing.T) {
	for i := 0; i < 200; i++ {
		got, ok := RowIndex(RowLabel(i))
		assert.True(t, ok)
		assert.Equal(t, i, got)
	}
	_, ok := RowIndex("")
	assert.False(t, ok)
	_, ok = RowIndex("A1")
	assert.False(t, ok)
}

func TestGenerateLargeTypeCrossesZZ(t *testing.T) {
	// 280 seats -> 28 rows -> labels reach AA and AB.
	seats := Generate(1, []model.SeatType{{Name: "Standard", PriceCents: 900, Capacity: 280}})
	assert.Len(t, seats, 280)
	assert.Equal(t, "AA", seats[260].RowLabel)
	assert.Equal(t, "AB", seats[270].RowLabel)
}
