// This file defines repository methods for companies (theaters) and
// their seat-type templates. A company never holds bookable seats
// itself; schedules copy its template at creation time, so editing or
// deleting a company leaves existing schedules untouched.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/movietix/movietix/internal/model"
)

// CompanyRepo encapsulates all database queries related to companies.
type CompanyRepo struct {
	db *sql.DB
}

// NewCompanyRepo constructs a CompanyRepo with the provided DB handle.
func NewCompanyRepo(db *sql.DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// Create inserts a company together with its ordered seat-type template
// in one transaction. On success the company's ID and timestamps are
// populated.
func (r *CompanyRepo) Create(ctx context.Context, c *model.Company) error {
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
	res, err := tx.ExecContext(ctx, `INSERT INTO companies (owner_id, name) VALUES (?, ?)`, c.OwnerID, c.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	if err = insertSeatTypeConfigsTx(ctx, tx, c.ID, c.SeatTypes); err != nil {
		return err
	}
	err = tx.QueryRowContext(ctx, `SELECT created_at, updated_at FROM companies WHERE id = ?`, c.ID).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	return err
}

// GetByID fetches a company with its seat-type template. Returns
// ErrCompanyNotFound when no row exists.
func (r *CompanyRepo) GetByID(ctx context.Context, id uint64) (*model.Company, error) {
	const q = `SELECT id, owner_id, name, created_at, updated_at FROM companies WHERE id = ?`
	var c model.Company
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.OwnerID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	types, err := r.seatTypes(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.SeatTypes = types
	return &c, nil
}

// GetByIDAndOwner fetches a company only when it belongs to the given
// owner; otherwise ErrCompanyNotFound.
func (r *CompanyRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Company, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != ownerID {
		return nil, ErrCompanyNotFound
	}
	return c, nil
}

// ListByOwner returns all companies for one owner ordered by id, each
// with its seat-type template loaded.
func (r *CompanyRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Company, error) {
	const q = `SELECT id, owner_id, name, created_at, updated_at FROM companies WHERE owner_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Company, 0)
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
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

// UpdateByIDAndOwner replaces the company's name and seat-type template
// when owned by the caller. Existing schedules keep their own priced
// copy of the old template. Returns sql.ErrNoRows when not found or
// not owned.
func (r *CompanyRepo) UpdateByIDAndOwner(ctx context.Context, c *model.Company, ownerID uint64) error {
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
	res, err := tx.ExecContext(ctx,
		`UPDATE companies SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND owner_id = ?`,
		c.Name, c.ID, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err = tx.QueryRowContext(ctx, `SELECT 1 FROM companies WHERE id = ? AND owner_id = ? LIMIT 1`, c.ID, ownerID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				err = sql.ErrNoRows
			}
			return err
		}
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM company_seat_types WHERE company_id = ?`, c.ID); err != nil {
		return err
	}
	err = insertSeatTypeConfigsTx(ctx, tx, c.ID, c.SeatTypes)
	return err
}

// DeleteByIDAndOwner removes a company and its template. Companies that
// schedules still reference cannot be deleted (ErrConflict).
func (r *CompanyRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
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
	if err = tx.QueryRowContext(ctx, `SELECT owner_id FROM companies WHERE id = ?`, id).Scan(&dbOwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrCompanyNotFound
		}
		return err
	}
	if dbOwnerID != ownerID {
		err = ErrForbidden
		return err
	}
	var refs int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_schedules WHERE company_id = ?`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		err = ErrConflict
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM company_seat_types WHERE company_id = ?`, id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM companies WHERE id = ?`, id)
	return err
}

func (r *CompanyRepo) seatTypes(ctx context.Context, companyID uint64) ([]model.SeatTypeConfig, error) {
	const q = `SELECT name, capacity, color, default_price_cents
	           FROM company_seat_types WHERE company_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, q, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.SeatTypeConfig, 0)
	for rows.Next() {
		var (
			st    model.SeatTypeConfig
			price sql.NullInt64
		)
		if err := rows.Scan(&st.Name, &st.Capacity, &st.Color, &price); err != nil {
			return nil, err
		}
		if price.Valid {
			p := uint32(price.Int64)
			st.DefaultPriceCents = &p
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func insertSeatTypeConfigsTx(ctx context.Context, tx *sql.Tx, companyID uint64, types []model.SeatTypeConfig) error {
	if len(types) == 0 {
		return nil
	}
	query := `INSERT INTO company_seat_types (company_id, position, name, capacity, color, default_price_cents) VALUES `
	args := make([]interface{}, 0, len(types)*6)
	for i, st := range types {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?)"
		args = append(args, companyID, i, st.Name, st.Capacity, st.Color, st.DefaultPriceCents)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}
