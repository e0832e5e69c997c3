package repository

import (
	"context"
	"database/sql"

	"github.com/movietix/movietix/internal/model"
)

// EventSeatRepo manages the per-schedule seat grid.
type EventSeatRepo struct {
	db *sql.DB
}

// NewEventSeatRepo constructs an EventSeatRepo with the given DB handle.
func NewEventSeatRepo(db *sql.DB) *EventSeatRepo {
	return &EventSeatRepo{db: db}
}

// CreateBulkTx inserts all seats for a schedule inside the given
// transaction. Seat slices generated for a full schedule can be large,
// so rows are inserted in chunks to keep each statement's placeholder
// count bounded.
func (r *EventSeatRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, seats []model.EventSeat) error {
	const chunk = 500
	for start := 0; start < len(seats); start += chunk {
		end := start + chunk
		if end > len(seats) {
			end = len(seats)
		}
		part := seats[start:end]
		query := `INSERT INTO event_seats (schedule_id, seat_type, row_label, seat_no, price_cents, booked) VALUES `
		args := make([]interface{}, 0, len(part)*6)
		for i, s := range part {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?, ?, ?)"
			args = append(args, s.ScheduleID, s.SeatType, s.RowLabel, s.SeatNo, s.PriceCents, s.Booked)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	return nil
}

// ListBySchedule returns every seat of a schedule ordered by seat type
// position, row and number so clients can render the grid directly.
func (r *EventSeatRepo) ListBySchedule(ctx context.Context, scheduleID uint64) ([]model.EventSeat, error) {
	const q = `SELECT es.id, es.schedule_id, es.seat_type, es.row_label, es.seat_no, es.price_cents, es.booked, es.created_at, es.updated_at
	           FROM event_seats es
	           JOIN schedule_seat_types sst ON sst.schedule_id = es.schedule_id AND sst.name = es.seat_type
	           WHERE es.schedule_id = ?
	           ORDER BY sst.position, es.id`
	rows, err := r.db.QueryContext(ctx, q, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSeats(rows)
}

// SeatsByIDs loads the given seats of one schedule. Seats belonging to
// other schedules are silently excluded, so callers can detect foreign
// or unknown IDs by comparing lengths.
func (r *EventSeatRepo) SeatsByIDs(ctx context.Context, scheduleID uint64, seatIDs []uint64) ([]model.EventSeat, error) {
	if len(seatIDs) == 0 {
		return []model.EventSeat{}, nil
	}
	query := `SELECT id, schedule_id, seat_type, row_label, seat_no, price_cents, booked, created_at, updated_at
	          FROM event_seats WHERE schedule_id = ? AND id IN (`
	args := make([]interface{}, 0, len(seatIDs)+1)
	args = append(args, scheduleID)
	for i, id := range seatIDs {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += ") ORDER BY id"
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSeats(rows)
}

// MarkBookedTx flips one seat to booked inside the given transaction,
// but only if it is currently free. The WHERE clause carries the
// compare-and-set: when another transaction already booked the seat the
// update matches zero rows and false is returned.
func (r *EventSeatRepo) MarkBookedTx(ctx context.Context, tx *sql.Tx, scheduleID, seatID uint64) (bool, error) {
	const q = `UPDATE event_seats
	           SET booked = 1, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND schedule_id = ? AND booked = 0`
	res, err := tx.ExecContext(ctx, q, seatID, scheduleID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ReleaseTx frees the given seats inside the given transaction. Used
// when a booking is cancelled.
func (r *EventSeatRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, seatIDs []uint64) error {
	if len(seatIDs) == 0 {
		return nil
	}
	query := `UPDATE event_seats SET booked = 0, updated_at = CURRENT_TIMESTAMP WHERE id IN (`
	args := make([]interface{}, 0, len(seatIDs))
	for i, id := range seatIDs {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += ")"
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

func scanSeats(rows *sql.Rows) ([]model.EventSeat, error) {
	out := make([]model.EventSeat, 0)
	for rows.Next() {
		var s model.EventSeat
		if err := rows.Scan(&s.ID, &s.ScheduleID, &s.SeatType, &s.RowLabel, &s.SeatNo, &s.PriceCents, &s.Booked, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
