package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/movietix/movietix/internal/model"
	"github.com/movietix/movietix/internal/seatmap"
)

// memStore is an in-memory Store with the same atomicity contract as
// the SQL implementation: BookSeats flips all seats or none under one
// lock.
type memStore struct {
	mu        sync.Mutex
	schedules map[uint64]*model.EventSchedule
	seats     map[uint64]*model.EventSeat
	bookings  []*model.Booking
	nextID    uint64
}

func newMemStore() *memStore {
	return &memStore{
		schedules: make(map[uint64]*model.EventSchedule),
		seats:     make(map[uint64]*model.EventSeat),
		nextID:    1,
	}
}

func (m *memStore) addSchedule(s *model.EventSchedule) {
	m.schedules[s.ID] = s
	for i, seat := range seatmap.Generate(s.ID, s.SeatTypes) {
		seat.ID = s.ID*1000 + uint64(i) + 1
		cp := seat
		m.seats[cp.ID] = &cp
	}
}

func (m *memStore) ScheduleByID(_ context.Context, id uint64) (*model.EventSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.schedules[id]
	if !ok {
		return nil, errors.New("schedule not found")
	}
	return s, nil
}

func (m *memStore) SeatsByIDs(_ context.Context, scheduleID uint64, seatIDs []uint64) ([]model.EventSeat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.EventSeat, 0, len(seatIDs))
	for _, id := range seatIDs {
		s, ok := m.seats[id]
		if !ok || s.ScheduleID != scheduleID {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (m *memStore) BookSeats(_ context.Context, b *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range b.SeatIDs {
		s, ok := m.seats[id]
		if !ok || s.ScheduleID != b.ScheduleID {
			return ErrSeatNotFound
		}
		if s.Booked {
			return ErrSeatConflict // nothing flipped yet for this batch
		}
	}
	for _, id := range b.SeatIDs {
		m.seats[id].Booked = true
	}
	b.ID = m.nextID
	m.nextID++
	cp := *b
	m.bookings = append(m.bookings, &cp)
	return nil
}

func (m *memStore) ReleaseBooking(_ context.Context, bookingID, userID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.ID != bookingID {
			continue
		}
		if b.UserID != userID {
			return ErrBookingNotFound
		}
		if b.Status == model.BookingCancelled {
			return ErrAlreadyCancelled
		}
		b.Status = model.BookingCancelled
		for _, id := range b.SeatIDs {
			m.seats[id].Booked = false
		}
		return nil
	}
	return ErrBookingNotFound
}

func (m *memStore) BookingsByUser(_ context.Context, userID uint64) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memStore) seatIDsFor(scheduleID uint64, n int) []uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]uint64, 0, n)
	for id := scheduleID*1000 + 1; len(ids) < n; id++ {
		if _, ok := m.seats[id]; !ok {
			break
		}
		ids = append(ids, id)
	}
	return ids
}

func newTestEngine() (*Engine, *memStore) {
	st := newMemStore()
	st.addSchedule(&model.EventSchedule{
		ID: 1, OwnerID: 2, CompanyID: 3, MovieID: 4,
		ShowDate: "2026-09-01",
		SeatTypes: []model.SeatType{
			{Name: "Standard", PriceCents: 1000, Capacity: 20},
			{Name: "VIP", PriceCents: 2500, Capacity: 10},
		},
	})
	return NewEngine(st), st
}

func TestCommitHappyPath(t *testing.T) {
	e, st := newTestEngine()
	ids := st.seatIDsFor(1, 3)

	b, err := e.Commit(context.Background(), 9, 1, ids)
	assert.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, b.Status)
	assert.Equal(t, uint32(3000), b.TotalPriceCents)
	assert.Equal(t, uint64(3), b.CompanyID)
	assert.Equal(t, uint64(4), b.MovieID)

	seats, _ := st.SeatsByIDs(context.Background(), 1, ids)
	for _, s := range seats {
		assert.True(t, s.Booked)
	}
}

func TestCommitEmptySelection(t *testing.T) {
	e, _ := newTestEngine()
	_, err := e.Commit(context.Background(), 9, 1, nil)
	assert.ErrorIs(t, err, ErrEmptySelection)

	_, err = e.Commit(context.Background(), 9, 1, []uint64{0, 0})
	assert.ErrorIs(t, err, ErrEmptySelection, "zero IDs are dropped before validation")
}

func TestCommitDeduplicatesSeatIDs(t *testing.T) {
	e, st := newTestEngine()
	ids := st.seatIDsFor(1, 1)

	b, err := e.Commit(context.Background(), 9, 1, []uint64{ids[0], ids[0], ids[0]})
	assert.NoError(t, err)
	assert.Equal(t, []uint64{ids[0]}, b.SeatIDs)
	assert.Equal(t, uint32(1000), b.TotalPriceCents)
}

func TestCommitBooksSeatsInAscendingOrder(t *testing.T) {
	e, st := newTestEngine()
	ids := st.seatIDsFor(1, 4)

	// Request order is scrambled; the committed batch must contend on
	// rows in one global order regardless.
	b, err := e.Commit(context.Background(), 9, 1, []uint64{ids[2], ids[0], ids[3], ids[1]})
	assert.NoError(t, err)
	assert.Equal(t, []uint64{ids[0], ids[1], ids[2], ids[3]}, b.SeatIDs)
}

func TestCommitUnknownSeat(t *testing.T) {
	e, _ := newTestEngine()
	_, err := e.Commit(context.Background(), 9, 1, []uint64{999999})
	assert.ErrorIs(t, err, ErrSeatNotFound)
}

func TestCommitConflictIsAllOrNothing(t *testing.T) {
	e, st := newTestEngine()
	ids := st.seatIDsFor(1, 4)

	// Another user already holds the last seat of the batch.
	_, err := e.Commit(context.Background(), 7, 1, ids[3:4])
	assert.NoError(t, err)

	_, err = e.Commit(context.Background(), 9, 1, ids)
	assert.ErrorIs(t, err, ErrSeatConflict)

	// The three free seats of the failed batch are untouched.
	seats, _ := st.SeatsByIDs(context.Background(), 1, ids[:3])
	for _, s := range seats {
		assert.False(t, s.Booked, "failed commit must not flip any seat")
	}
}

func TestCommitConcurrentOverlap(t *testing.T) {
	e, st := newTestEngine()
	ids := st.seatIDsFor(1, 1)

	const attempts = 32
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(user uint64) {
			defer wg.Done()
			_, err := e.Commit(context.Background(), user, 1, ids)
			results <- err
		}(uint64(100 + i))
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSeatConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactly one commit may win the seat")
	assert.Equal(t, attempts-1, conflicts)
}

func TestCommitPriceStableAgainstScheduleEdits(t *testing.T) {
	e, st := newTestEngine()
	ids := st.seatIDsFor(1, 2)

	// Vendor raises the schedule's Standard price after the seat map
	// was generated. Seats keep their generation-time price.
	st.schedules[1].SeatTypes[0].PriceCents = 9999

	b, err := e.Commit(context.Background(), 9, 1, ids)
	assert.NoError(t, err)
	assert.Equal(t, uint32(2000), b.TotalPriceCents)
}

func TestCancelReleasesSeats(t *testing.T) {
	e, st := newTestEngine()
	ids := st.seatIDsFor(1, 2)

	b, err := e.Commit(context.Background(), 9, 1, ids)
	assert.NoError(t, err)

	assert.NoError(t, e.Cancel(context.Background(), 9, b.ID))
	seats, _ := st.SeatsByIDs(context.Background(), 1, ids)
	for _, s := range seats {
		assert.False(t, s.Booked, "cancellation must flip seats back to unbooked")
	}

	err = e.Cancel(context.Background(), 9, b.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	err = e.Cancel(context.Background(), 8, b.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound, "other users cannot cancel the booking")
}

func TestBookingsByUser(t *testing.T) {
	e, st := newTestEngine()
	ids := st.seatIDsFor(1, 4)

	_, err := e.Commit(context.Background(), 9, 1, ids[:2])
	assert.NoError(t, err)
	_, err = e.Commit(context.Background(), 9, 1, ids[2:])
	assert.NoError(t, err)

	got, err := e.BookingsByUser(context.Background(), 9)
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	other, err := e.BookingsByUser(context.Background(), 5)
	assert.NoError(t, err)
	assert.Empty(t, other)
}
