package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/hmsdev/hotel-frontdesk/internal/model"
)

// CompanionRepo manages the named companions registered under a stay.
type CompanionRepo struct {
	db *sql.DB
}

// NewCompanionRepo returns a new CompanionRepo bound to the given database.
func NewCompanionRepo(db *sql.DB) *CompanionRepo { return &CompanionRepo{db: db} }

// ErrCompanionNotFound is returned when no companion with the ID exists.
var ErrCompanionNotFound = errors.New("companion not found")

// CreateBulk inserts all companions in a single multi-row statement and
// returns the number inserted. A nil or empty slice is a no-op.
func (r *CompanionRepo) CreateBulk(ctx context.Context, stayID uint64, companions []model.Companion) (int64, error) {
	if len(companions) == 0 {
		return 0, nil
	}
	placeholders := make([]string, 0, len(companions))
	args := make([]interface{}, 0, len(companions)*4)
	for _, c := range companions {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?)")
		args = append(args, stayID, c.Name, c.TaxID, c.Passport, c.BirthDate)
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO companions (stay_id, name, tax_id, passport, birth_date) VALUES `+
			strings.Join(placeholders, ", "), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListByStay returns the companions of a stay ordered by name.
func (r *CompanionRepo) ListByStay(ctx context.Context, stayID uint64) ([]model.Companion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, stay_id, name, tax_id, passport, birth_date
		 FROM companions WHERE stay_id = ? ORDER BY name`, stayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Companion, 0)
	for rows.Next() {
		var (
			c        model.Companion
			taxID    sql.NullString
			passport sql.NullString
			birth    sql.NullTime
		)
		if err := rows.Scan(&c.ID, &c.StayID, &c.Name, &taxID, &passport, &birth); err != nil {
			return nil, err
		}
		if taxID.Valid {
			c.TaxID = &taxID.String
		}
		if passport.Valid {
			c.Passport = &passport.String
		}
		if birth.Valid {
			t := birth.Time
			c.BirthDate = &t
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByStay returns how many companions a stay has.
func (r *CompanionRepo) CountByStay(ctx context.Context, stayID uint64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM companions WHERE stay_id = ?`, stayID).Scan(&n)
	return n, err
}

// StayIDOf returns the stay a companion belongs to.
func (r *CompanionRepo) StayIDOf(ctx context.Context, id uint64) (uint64, error) {
	var stayID uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT stay_id FROM companions WHERE id = ?`, id).Scan(&stayID)
	if err == sql.ErrNoRows {
		return 0, ErrCompanionNotFound
	}
	return stayID, err
}

// Delete removes a single companion by ID.
func (r *CompanionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM companions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCompanionNotFound
	}
	return nil
}
