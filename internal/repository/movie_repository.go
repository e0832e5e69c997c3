// Package repository contains data access logic separated from HTTP
// handlers. This file covers the movies catalog. Genres are stored as a
// JSON array in a TEXT column so their display order survives the round
// trip.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/movietix/movietix/internal/model"
)

// MovieRepo encapsulates all database queries related to movies.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the provided DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// Create inserts a new movie. On success the movie's ID and CreatedAt
// are populated.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	genres, err := json.Marshal(m.Genres)
	if err != nil {
		return err
	}
	const qInsert = `INSERT INTO movies (owner_id, name, description, genres, duration_min, image_url, rating)
	                 VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, m.OwnerID, m.Name, m.Description, string(genres), m.DurationMin, m.ImageURL, m.Rating)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	const qSelect = `SELECT created_at FROM movies WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, m.ID).Scan(&m.CreatedAt)
}

// GetByID fetches a movie by its ID. It returns ErrMovieNotFound when
// no row exists.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = `SELECT id, owner_id, name, description, genres, duration_min, image_url, rating, created_at
	           FROM movies WHERE id = ?`
	m, err := scanMovie(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return m, nil
}

// ListAll returns every movie ordered by insertion (id ascending).
func (r *MovieRepo) ListAll(ctx context.Context) ([]model.Movie, error) {
	const q = `SELECT id, owner_id, name, description, genres, duration_min, image_url, rating, created_at
	           FROM movies ORDER BY id`
	return r.list(ctx, q)
}

// ListByOwner returns the movies created by one user, insertion order.
func (r *MovieRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Movie, error) {
	const q = `SELECT id, owner_id, name, description, genres, duration_min, image_url, rating, created_at
	           FROM movies WHERE owner_id = ? ORDER BY id`
	return r.list(ctx, q, ownerID)
}

// UpdateByIDAndOwner updates a movie's editable fields when it belongs
// to the given owner. A movie that any schedule references is frozen:
// its details are part of what existing bookings display, so the update
// is refused with ErrConflict the same way deletion is.
func (r *MovieRepo) UpdateByIDAndOwner(ctx context.Context, m *model.Movie, ownerID uint64) error {
	genres, err := json.Marshal(m.Genres)
	if err != nil {
		return err
	}
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
	if err = tx.QueryRowContext(ctx, `SELECT owner_id FROM movies WHERE id = ?`, m.ID).Scan(&dbOwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrMovieNotFound
		}
		return err
	}
	if dbOwnerID != ownerID {
		err = ErrForbidden
		return err
	}
	var refs int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_schedules WHERE movie_id = ?`, m.ID).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		err = ErrConflict
		return err
	}
	const q = `UPDATE movies
	           SET name = ?, description = ?, genres = ?, duration_min = ?, image_url = ?, rating = ?
	           WHERE id = ?`
	_, err = tx.ExecContext(ctx, q, m.Name, m.Description, string(genres), m.DurationMin, m.ImageURL, m.Rating, m.ID)
	return err
}

// DeleteByIDAndOwner removes a movie owned by the caller. Movies that
// schedules still reference cannot be deleted; ErrConflict is returned
// so callers can surface a 409.
func (r *MovieRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
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
	if err = tx.QueryRowContext(ctx, `SELECT owner_id FROM movies WHERE id = ?`, id).Scan(&dbOwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrMovieNotFound
		}
		return err
	}
	if dbOwnerID != ownerID {
		err = ErrForbidden
		return err
	}
	var refs int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_schedules WHERE movie_id = ?`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		err = ErrConflict
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	return err
}

func (r *MovieRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(row rowScanner) (*model.Movie, error) {
	var (
		m      model.Movie
		genres string
		rating sql.NullFloat64
	)
	if err := row.Scan(&m.ID, &m.OwnerID, &m.Name, &m.Description, &genres, &m.DurationMin, &m.ImageURL, &rating, &m.CreatedAt); err != nil {
		return nil, err
	}
	if genres != "" {
		if err := json.Unmarshal([]byte(genres), &m.Genres); err != nil {
			return nil, err
		}
	}
	if rating.Valid {
		v := rating.Float64
		m.Rating = &v
	}
	return &m, nil
}
