// Package queue defines message payloads exchanged over the message broker.
package queue

// StayCheckedInEvent is published when a check-in completes. It carries
// enough for downstream consumers (night audit, housekeeping boards) to
// react without querying the primary database.
type StayCheckedInEvent struct {
	StayID      uint64  `json:"stay_id"`
	RoomNumber  string  `json:"room_number"`
	GuestID     uint64  `json:"guest_id"`
	GuestName   string  `json:"guest_name"`
	CheckinDate string  `json:"checkin_date"`
	CheckinTime string  `json:"checkin_time"`
	DailyRate   float64 `json:"daily_rate"`
	Companions  int     `json:"companions"`
	OccurredAt  string  `json:"occurred_at"`
}

// StayCheckedOutEvent is published when a stay is closed at the desk.
type StayCheckedOutEvent struct {
	StayID       uint64  `json:"stay_id"`
	RoomNumber   string  `json:"room_number"`
	GuestID      uint64  `json:"guest_id"`
	GuestName    string  `json:"guest_name"`
	CheckoutDate string  `json:"checkout_date"`
	CheckoutTime string  `json:"checkout_time"`
	Nights       int     `json:"nights"`
	RoomCharges  float64 `json:"room_charges"`
	Consumption  float64 `json:"consumption"`
	Discount     float64 `json:"discount"`
	Total        float64 `json:"total"`
	OccurredAt   string  `json:"occurred_at"`
}
