package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hmsdev/hotel-frontdesk/internal/model"
)

// RoomRepo provides persistence for rooms. Room status transitions driven
// by the stay workflow go through SetStatus; administrative edits go
// through Update.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// ErrRoomNotFound is returned when no room with the given number exists.
var ErrRoomNotFound = errors.New("room not found")

// ErrRoomExists is returned when creating a room whose number is taken.
var ErrRoomExists = errors.New("room number already exists")

// RoomListItem is a room joined with its type for listing. DailyRate is
// already coalesced with the type's base rate.
type RoomListItem struct {
	Number      string  `json:"number"`
	TypeID      uint64  `json:"type_id"`
	TypeLabel   string  `json:"type"`
	Description string  `json:"description"`
	DailyRate   float64 `json:"daily_rate"`
	Status      string  `json:"status"`
}

// List returns all rooms joined with their type. The effective daily rate
// falls back to the type's base rate when the room has no override.
func (r *RoomRepo) List(ctx context.Context) ([]RoomListItem, error) {
	const q = `SELECT ro.number, ro.type_id, rt.label, ro.description,
	                  COALESCE(ro.daily_rate, rt.base_daily_rate), ro.status
	           FROM rooms ro
	           JOIN room_types rt ON rt.id = ro.type_id
	           ORDER BY ro.number`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]RoomListItem, 0)
	for rows.Next() {
		var it RoomListItem
		if err := rows.Scan(&it.Number, &it.TypeID, &it.TypeLabel, &it.Description,
			&it.DailyRate, &it.Status); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByNumber fetches a single room. Returns ErrRoomNotFound when absent.
func (r *RoomRepo) GetByNumber(ctx context.Context, number string) (model.Room, error) {
	var (
		room model.Room
		rate sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT number, type_id, description, daily_rate, status FROM rooms WHERE number = ?`,
		number).Scan(&room.Number, &room.TypeID, &room.Description, &rate, &room.Status)
	if err == sql.ErrNoRows {
		return model.Room{}, ErrRoomNotFound
	}
	if err != nil {
		return model.Room{}, err
	}
	if rate.Valid {
		room.DailyRate = &rate.Float64
	}
	return room, nil
}

// Create inserts a new room. The status defaults to available when empty.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	if room.Status == "" {
		room.Status = model.RoomAvailable
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (number, type_id, description, daily_rate, status) VALUES (?, ?, ?, ?, ?)`,
		room.Number, room.TypeID, room.Description, room.DailyRate, room.Status)
	if isDuplicateKey(err) {
		return ErrRoomExists
	}
	return err
}

// Update rewrites a room's type, status, description and rate override.
func (r *RoomRepo) Update(ctx context.Context, room *model.Room) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET type_id = ?, status = ?, description = ?, daily_rate = ? WHERE number = ?`,
		room.TypeID, room.Status, room.Description, room.DailyRate, room.Number)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM rooms WHERE number = ?`, room.Number).Scan(&one); err == sql.ErrNoRows {
			return ErrRoomNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// SetStatus flips a room's status. Used by the stay workflow: occupied at
// check-in, available at check-out.
func (r *RoomRepo) SetStatus(ctx context.Context, number, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET status = ? WHERE number = ?`, status, number)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM rooms WHERE number = ?`, number).Scan(&one); err == sql.ErrNoRows {
			return ErrRoomNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a room. Rooms referenced by stays cannot be deleted; the
// foreign key restriction surfaces as ErrRowReferenced.
func (r *RoomRepo) Delete(ctx context.Context, number string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE number = ?`, number)
	if err != nil {
		if isRowReferenced(err) {
			return ErrRowReferenced
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}
