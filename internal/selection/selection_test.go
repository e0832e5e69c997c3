package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/movietix/movietix/internal/model"
)

func seat(id, scheduleID uint64, booked bool, price uint32) model.EventSeat {
	return model.EventSeat{ID: id, ScheduleID: scheduleID, Booked: booked, PriceCents: price}
}

func TestToggleAddsAndRemoves(t *testing.T) {
	tr := New()
	s := seat(1, 10, false, 1000)

	got := tr.Toggle(s)
	assert.Len(t, got, 1)
	assert.Equal(t, uint64(1), got[0].ID)

	got = tr.Toggle(s)
	assert.Empty(t, got, "second toggle of the same seat removes it")
}

func TestToggleBookedSeatIsNoop(t *testing.T) {
	tr := New()
	tr.Toggle(seat(1, 10, false, 1000))

	got := tr.Toggle(seat(2, 10, true, 1000))
	assert.Len(t, got, 1, "booked seat must not enter the selection")
	assert.Equal(t, uint64(1), got[0].ID)
}

func TestToggleKeyedByIdentityNotPosition(t *testing.T) {
	tr := New()
	a := seat(5, 10, false, 1000)
	// Same ID seen again with different field values still toggles off.
	b := a
	b.PriceCents = 9999

	tr.Toggle(a)
	got := tr.Toggle(b)
	assert.Empty(t, got)
}

func TestNoDuplicateEntries(t *testing.T) {
	tr := New()
	s := seat(3, 10, false, 500)
	tr.Toggle(s)
	tr.Toggle(s)
	tr.Toggle(s)
	assert.Len(t, tr.Selected(), 1)
}

func TestSwitchingScheduleClearsSelection(t *testing.T) {
	tr := New()
	tr.Toggle(seat(1, 10, false, 1000))
	tr.Toggle(seat(2, 10, false, 1000))

	got := tr.Toggle(seat(7, 20, false, 1500))
	assert.Len(t, got, 1, "selection may hold seats from only one schedule")
	assert.Equal(t, uint64(7), got[0].ID)
}

func TestClear(t *testing.T) {
	tr := New()
	tr.Toggle(seat(1, 10, false, 1000))
	tr.Clear()
	assert.Empty(t, tr.Selected())
	assert.Zero(t, tr.TotalCents())
}

func TestSeatIDsAndTotal(t *testing.T) {
	tr := New()
	tr.Toggle(seat(9, 10, false, 2500))
	tr.Toggle(seat(2, 10, false, 1000))
	tr.Toggle(seat(5, 10, false, 1500))

	assert.Equal(t, []uint64{2, 5, 9}, tr.SeatIDs())
	assert.Equal(t, uint32(5000), tr.TotalCents())
}
