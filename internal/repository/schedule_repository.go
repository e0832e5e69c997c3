// This file defines repository methods for event schedules. A schedule
// and its generated seat map are created in one transaction so a
// half-materialized seat grid can never be observed.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/movietix/movietix/internal/model"
)

// ScheduleRepo manages persistence for event schedules and their
// priced seat types.
type ScheduleRepo struct {
	db *sql.DB
}

// NewScheduleRepo constructs a ScheduleRepo with the given DB handle.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

// DB exposes the underlying sql.DB. It allows callers to begin
// transactions spanning multiple repositories, for example creating a
// schedule and bulk-inserting its seat map atomically.
func (r *ScheduleRepo) DB() *sql.DB {
	return r.db
}

// CreateTx inserts a schedule and its seat types within the provided
// transaction. The caller must commit or roll back. On success the
// generated ID and timestamps are populated on the given schedule.
func (r *ScheduleRepo) CreateTx(ctx context.Context, tx *sql.Tx, s *model.EventSchedule) error {
	const q = `INSERT INTO event_schedules (owner_id, company_id, movie_id, show_date, show_time)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, s.OwnerID, s.CompanyID, s.MovieID, s.ShowDate, s.ShowTime)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	if err := insertScheduleSeatTypesTx(ctx, tx, s.ID, s.SeatTypes); err != nil {
		return err
	}
	const sel = `SELECT created_at, updated_at FROM event_schedules WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, s.ID).Scan(&s.CreatedAt, &s.UpdatedAt)
}

// GetByID retrieves a schedule with its seat types. Returns
// ErrScheduleNotFound when no row matches.
func (r *ScheduleRepo) GetByID(ctx context.Context, id uint64) (*model.EventSchedule, error) {
	const q = `SELECT id, owner_id, company_id, movie_id, show_date, show_time, created_at, updated_at
	           FROM event_schedules WHERE id = ?`
	var (
		s        model.EventSchedule
		showTime sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.OwnerID, &s.CompanyID, &s.MovieID, &s.ShowDate, &showTime, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	if showTime.Valid {
		t := showTime.String
		s.ShowTime = &t
	}
	types, err := r.seatTypes(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.SeatTypes = types
	return &s, nil
}

// ScheduleFilter narrows List results. Zero values mean "no filter".
type ScheduleFilter struct {
	CompanyID uint64
	MovieID   uint64
	ShowDate  string
	OwnerID   uint64
}

// List returns schedules matching the filter ordered by show date then
// id. Seat types are loaded for each returned schedule.
func (r *ScheduleRepo) List(ctx context.Context, f ScheduleFilter) ([]model.EventSchedule, error) {
	q := `SELECT id, owner_id, company_id, movie_id, show_date, show_time, created_at, updated_at
	      FROM event_schedules WHERE 1=1`
	args := make([]interface{}, 0, 4)
	if f.CompanyID != 0 {
		q += " AND company_id = ?"
		args = append(args, f.CompanyID)
	}
	if f.MovieID != 0 {
		q += " AND movie_id = ?"
		args = append(args, f.MovieID)
	}
	if f.ShowDate != "" {
		q += " AND show_date = ?"
		args = append(args, f.ShowDate)
	}
	if f.OwnerID != 0 {
		q += " AND owner_id = ?"
		args = append(args, f.OwnerID)
	}
	q += " ORDER BY show_date, id"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.EventSchedule, 0)
	for rows.Next() {
		var (
			s        model.EventSchedule
			showTime sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.CompanyID, &s.MovieID, &s.ShowDate, &showTime, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if showTime.Valid {
			t := showTime.String
			s.ShowTime = &t
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		types, err := r.seatTypes(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].SeatTypes = types
	}
	return out, nil
}

// UpdateDateByIDAndOwner changes a schedule's date/time when it belongs
// to the owner. Company and movie references are deliberately not
// updatable: a schedule keeps pointing at the entities it was created
// against. Returns sql.ErrNoRows when not found / not owned and
// ErrNoChange when the values already match.
func (r *ScheduleRepo) UpdateDateByIDAndOwner(ctx context.Context, id, ownerID uint64, showDate string, showTime *string) error {
	const q = `UPDATE event_schedules
	           SET show_date = ?, show_time = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ?
	             AND (show_date <> ? OR NOT (show_time <=> ?))`
	res, err := r.db.ExecContext(ctx, q, showDate, showTime, id, ownerID, showDate, showTime)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM event_schedules WHERE id = ? AND owner_id = ? LIMIT 1`, id, ownerID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return err
	}
	return ErrNoChange
}

// DeleteByIDAndOwner removes a schedule, its seat types and its seats
// in one transaction. Returns ErrScheduleNotFound when missing,
// ErrForbidden when owned by someone else and ErrConflict when active
// bookings reference the schedule.
func (r *ScheduleRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	var dbOwnerID uint64
	if err = tx.QueryRowContext(ctx, `SELECT owner_id FROM event_schedules WHERE id = ?`, id).Scan(&dbOwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrScheduleNotFound
		}
		return err
	}
	if dbOwnerID != ownerID {
		err = ErrForbidden
		return err
	}
	var active int
	if err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE schedule_id = ? AND status <> ?`, id, model.BookingCancelled).Scan(&active); err != nil {
		return err
	}
	if active > 0 {
		err = ErrConflict
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM event_seats WHERE schedule_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM schedule_seat_types WHERE schedule_id = ?`, id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM event_schedules WHERE id = ?`, id)
	return err
}

func (r *ScheduleRepo) seatTypes(ctx context.Context, scheduleID uint64) ([]model.SeatType, error) {
	const q = `SELECT name, price_cents, capacity, color
	           FROM schedule_seat_types WHERE schedule_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, q, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.SeatType, 0)
	for rows.Next() {
		var st model.SeatType
		if err := rows.Scan(&st.Name, &st.PriceCents, &st.Capacity, &st.Color); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func insertScheduleSeatTypesTx(ctx context.Context, tx *sql.Tx, scheduleID uint64, types []model.SeatType) error {
	if len(types) == 0 {
		return nil
	}
	query := `INSERT INTO schedule_seat_types (schedule_id, position, name, price_cents, capacity, color) VALUES `
	args := make([]interface{}, 0, len(types)*6)
	for i, st := range types {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?)"
		args = append(args, scheduleID, i, st.Name, st.PriceCents, st.Capacity, st.Color)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}
