package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hmsdev/hotel-frontdesk/internal/model"
)

// RoomTypeRepo provides persistence for room types.
type RoomTypeRepo struct {
	db *sql.DB
}

// NewRoomTypeRepo returns a new RoomTypeRepo bound to the given database.
func NewRoomTypeRepo(db *sql.DB) *RoomTypeRepo { return &RoomTypeRepo{db: db} }

// ErrRoomTypeNotFound is returned when no room type with the ID exists.
var ErrRoomTypeNotFound = errors.New("room type not found")

// List returns all room types ordered by label.
func (r *RoomTypeRepo) List(ctx context.Context) ([]model.RoomType, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, label, description, base_daily_rate FROM room_types ORDER BY label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	types := make([]model.RoomType, 0)
	for rows.Next() {
		var t model.RoomType
		if err := rows.Scan(&t.ID, &t.Label, &t.Description, &t.BaseDailyRate); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return types, nil
}

// GetByID fetches a single room type.
func (r *RoomTypeRepo) GetByID(ctx context.Context, id uint64) (model.RoomType, error) {
	var t model.RoomType
	err := r.db.QueryRowContext(ctx,
		`SELECT id, label, description, base_daily_rate FROM room_types WHERE id = ?`,
		id).Scan(&t.ID, &t.Label, &t.Description, &t.BaseDailyRate)
	if err == sql.ErrNoRows {
		return model.RoomType{}, ErrRoomTypeNotFound
	}
	return t, err
}

// Create inserts a new room type and populates the generated ID.
func (r *RoomTypeRepo) Create(ctx context.Context, t *model.RoomType) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO room_types (label, description, base_daily_rate) VALUES (?, ?, ?)`,
		t.Label, t.Description, t.BaseDailyRate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// Update rewrites a room type's label, description and base rate.
func (r *RoomTypeRepo) Update(ctx context.Context, t *model.RoomType) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE room_types SET label = ?, description = ?, base_daily_rate = ? WHERE id = ?`,
		t.Label, t.Description, t.BaseDailyRate, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM room_types WHERE id = ?`, t.ID).Scan(&one); err == sql.ErrNoRows {
			return ErrRoomTypeNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a room type. Types still used by rooms are rejected with
// ErrRowReferenced: the dependent-rooms count is checked first so the
// caller gets a clean conflict even on engines without the FK restriction,
// and the foreign key error is mapped the same way as a fallback.
func (r *RoomTypeRepo) Delete(ctx context.Context, id uint64) error {
	var dependents int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rooms WHERE type_id = ?`, id).Scan(&dependents); err != nil {
		return err
	}
	if dependents > 0 {
		return ErrRowReferenced
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM room_types WHERE id = ?`, id)
	if err != nil {
		if isRowReferenced(err) {
			return ErrRowReferenced
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomTypeNotFound
	}
	return nil
}
