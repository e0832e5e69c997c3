package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/movietix/movietix/internal/model"
)

// BookingRepo manages bookings and their seat line items.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// CreateTx inserts a booking row inside the given transaction and
// fills in the generated ID.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, schedule_id, company_id, movie_id, status, total_price_cents)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.UserID, b.ScheduleID, b.CompanyID, b.MovieID, b.Status, b.TotalPriceCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM bookings WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt, &b.UpdatedAt)
}

// GetByIDAndUser loads a booking owned by the user, including its seat
// IDs. Returns ErrBookingNotFound when missing or owned by someone else.
func (r *BookingRepo) GetByIDAndUser(ctx context.Context, id, userID uint64) (*model.Booking, error) {
	const q = `SELECT id, user_id, schedule_id, company_id, movie_id, status, total_price_cents, created_at, updated_at
	           FROM bookings WHERE id = ? AND user_id = ?`
	var b model.Booking
	err := r.db.QueryRowContext(ctx, q, id, userID).Scan(
		&b.ID, &b.UserID, &b.ScheduleID, &b.CompanyID, &b.MovieID, &b.Status, &b.TotalPriceCents, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	ids, err := r.seatIDs(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.SeatIDs = ids
	return &b, nil
}

// UpdateStatusTx moves a booking to the given status inside the given
// transaction. Returns false when the booking was already in that
// status or does not exist.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) (bool, error) {
	const q = `UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status <> ?`
	res, err := tx.ExecContext(ctx, q, status, id, status)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// BookingDetail is a booking joined with its movie, company and seat
// addresses for list responses.
type BookingDetail struct {
	model.Booking
	MovieName   string   `json:"movie_name"`
	CompanyName string   `json:"company_name"`
	ShowDate    string   `json:"show_date"`
	ShowTime    *string  `json:"show_time,omitempty"`
	Seats       []string `json:"seats"`
}

// ListByUser returns the user's bookings ordered by creation time,
// newest first (IDs are monotonic, so id DESC is reverse creation
// order), with joined movie/company names and human seat addresses
// like "A7".
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.user_id, b.schedule_id, b.company_id, b.movie_id, b.status, b.total_price_cents,
	                  b.created_at, b.updated_at, m.name, c.name, s.show_date, s.show_time
	           FROM bookings b
	           JOIN movies m ON m.id = b.movie_id
	           JOIN companies c ON c.id = b.company_id
	           JOIN event_schedules s ON s.id = b.schedule_id
	           WHERE b.user_id = ?
	           ORDER BY b.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]BookingDetail, 0)
	for rows.Next() {
		var (
			d        BookingDetail
			showTime sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.UserID, &d.ScheduleID, &d.CompanyID, &d.MovieID, &d.Status, &d.TotalPriceCents,
			&d.CreatedAt, &d.UpdatedAt, &d.MovieName, &d.CompanyName, &d.ShowDate, &showTime); err != nil {
			return nil, err
		}
		if showTime.Valid {
			t := showTime.String
			d.ShowTime = &t
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.attachSeats(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ListByScheduleForOwner returns all bookings of a schedule, for the
// vendor that owns it. Returns ErrScheduleNotFound / ErrForbidden the
// same way schedule lookups do.
func (r *BookingRepo) ListByScheduleForOwner(ctx context.Context, scheduleID, ownerID uint64) ([]BookingDetail, error) {
	var dbOwnerID uint64
	err := r.db.QueryRowContext(ctx, `SELECT owner_id FROM event_schedules WHERE id = ?`, scheduleID).Scan(&dbOwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	if dbOwnerID != ownerID {
		return nil, ErrForbidden
	}
	const q = `SELECT b.id, b.user_id, b.schedule_id, b.company_id, b.movie_id, b.status, b.total_price_cents,
	                  b.created_at, b.updated_at, m.name, c.name, s.show_date, s.show_time
	           FROM bookings b
	           JOIN movies m ON m.id = b.movie_id
	           JOIN companies c ON c.id = b.company_id
	           JOIN event_schedules s ON s.id = b.schedule_id
	           WHERE b.schedule_id = ?
	           ORDER BY b.id DESC`
	rows, err := r.db.QueryContext(ctx, q, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]BookingDetail, 0)
	for rows.Next() {
		var (
			d        BookingDetail
			showTime sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.UserID, &d.ScheduleID, &d.CompanyID, &d.MovieID, &d.Status, &d.TotalPriceCents,
			&d.CreatedAt, &d.UpdatedAt, &d.MovieName, &d.CompanyName, &d.ShowDate, &showTime); err != nil {
			return nil, err
		}
		if showTime.Valid {
			t := showTime.String
			d.ShowTime = &t
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.attachSeats(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *BookingRepo) attachSeats(ctx context.Context, d *BookingDetail) error {
	const q = `SELECT bs.seat_id, CONCAT(es.row_label, es.seat_no)
	           FROM booking_seats bs
	           JOIN event_seats es ON es.id = bs.seat_id
	           WHERE bs.booking_id = ?
	           ORDER BY es.id`
	rows, err := r.db.QueryContext(ctx, q, d.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			seatID uint64
			addr   string
		)
		if err := rows.Scan(&seatID, &addr); err != nil {
			return err
		}
		d.SeatIDs = append(d.SeatIDs, seatID)
		d.Seats = append(d.Seats, addr)
	}
	return rows.Err()
}

func (r *BookingRepo) seatIDs(ctx context.Context, bookingID uint64) ([]uint64, error) {
	const q = `SELECT seat_id FROM booking_seats WHERE booking_id = ? ORDER BY seat_id`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
