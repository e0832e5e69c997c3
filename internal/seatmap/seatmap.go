// Package seatmap expands a schedule's seat-type inventory into the
// enumerated per-seat grid. Generation is a pure function of the seat
// types: the same input always produces the same (type, row, number,
// price) tuples, which is what makes schedule creation reproducible.
package seatmap

import "github.com/movietix/movietix/internal/model"

// RowSize is the fixed number of seats per row. A seat type with
// capacity C spans ceil(C/RowSize) rows; the last row holds the
// remainder.
const RowSize = 10

// Generate expands each seat type of the schedule, in order, into
// individual seats. Row labels restart at "A" for every seat type and
// seat numbers within a row are 1-based and contiguous. Seats carry the
// type's price and start unbooked. IDs are left zero; the store assigns
// them on insert.
func Generate(scheduleID uint64, seatTypes []model.SeatType) []model.EventSeat {
	var total uint32
	for _, st := range seatTypes {
		total += st.Capacity
	}
	seats := make([]model.EventSeat, 0, total)
	for _, st := range seatTypes {
		for i := uint32(0); i < st.Capacity; i++ {
			seats = append(seats, model.EventSeat{
				ScheduleID: scheduleID,
				SeatType:   st.Name,
				RowLabel:   RowLabel(int(i / RowSize)),
				SeatNo:     i%RowSize + 1,
				PriceCents: st.PriceCents,
				Booked:     false,
			})
		}
	}
	return seats
}

// RowLabel converts a zero-based row index to its letter label: 0→A,
// 25→Z, 26→AA, 27→AB and so on. Negative indices yield "".
func RowLabel(i int) string {
	if i < 0 {
		return ""
	}
	var res []rune
	for {
		res = append(res, rune('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// RowIndex converts a row label like "A" or "AA" back to its zero-based
// index. It reports false for empty labels or non-letter characters.
func RowIndex(label string) (int, bool) {
	if label == "" {
		return -1, false
	}
	n := 0
	for i := 0; i < len(label); i++ {
		ch := label[i]
		if ch >= 'a' && ch <= 'z' {
			ch -= 32
		}
		if ch < 'A' || ch > 'Z' {
			return -1, false
		}
		n = n*26 + int(ch-'A'+1)
	}
	return n - 1, true
}

// RowCount returns how many rows a seat type of the given capacity
// occupies.
func RowCount(capacity uint32) int {
	return int((capacity + RowSize - 1) / RowSize)
}
