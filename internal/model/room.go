package model

// Room status values. Status is mutated only by the stay workflow
// (occupied on check-in, available on check-out) and by explicit
// administrative blocking.
const (
	RoomAvailable = "available"
	RoomOccupied  = "occupied"
	RoomBlocked   = "blocked"
)

// Room mirrors the `rooms` table. The room number is the natural key used
// across the API; DailyRate is nullable and falls back to the type's base
// rate when unset.
type Room struct {
	Number      string   `json:"number"` // primary key
	TypeID      uint64   `json:"type_id"`
	Description string   `json:"description"`
	DailyRate   *float64 `json:"daily_rate,omitempty"` // overrides the type rate
	Status      string   `json:"status"`               // available|occupied|blocked
}

// RoomType mirrors the `room_types` table.
type RoomType struct {
	ID            uint64  `json:"id"`
	Label         string  `json:"label"`
	Description   string  `json:"description"`
	BaseDailyRate float64 `json:"base_daily_rate"`
}

// EffectiveRate returns the room's own rate when set, else the type's base
// rate.
func (r Room) EffectiveRate(t RoomType) float64 {
	if r.DailyRate != nil {
		return *r.DailyRate
	}
	return t.BaseDailyRate
}
