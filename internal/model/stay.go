package model

import "time"

// Stay status values. A room has at most one active stay at a time; the
// workflow enforces this, not the schema.
const (
	StayActive = "active"
	StayClosed = "closed"
)

// Stay records a guest's occupancy of a room over a date range.
// Check-in and check-out are split into a DATE and a TIME column,
// matching how the front desk captures them. DailyRate is the billed
// rate; BaseDailyRate preserves the rate agreed at check-in so the bill
// can be audited or recomputed.
//
// Fields:
//
//	ID                  – primary key identifier.
//	RoomNumber          – room being occupied.
//	GuestID             – guest who checked in.
//	CheckinDate/Time    – actual arrival.
//	CheckoutDate/Time   – actual departure (null while active).
//	ExpectedCheckoutDate/Time – planned departure (optional).
//	DailyRate           – billed daily rate; authoritative once checkout sets it.
//	BaseDailyRate       – rate recorded at check-in, kept for audit.
//	Discount            – flat discount applied to the bill.
//	Status              – active or closed.
//	Reason              – free-text reason for the stay (optional).
//	Prepaid             – whether the stay was prepaid through a booking channel.
type Stay struct {
	ID                   uint64     `json:"id"`
	RoomNumber           string     `json:"room_number"`
	GuestID              uint64     `json:"guest_id"`
	CheckinDate          time.Time  `json:"checkin_date"` // DATE
	CheckinTime          string     `json:"checkin_time"` // TIME, "HH:MM:SS"
	CheckoutDate         *time.Time `json:"checkout_date,omitempty"`
	CheckoutTime         *string    `json:"checkout_time,omitempty"`
	ExpectedCheckoutDate *time.Time `json:"expected_checkout_date,omitempty"`
	ExpectedCheckoutTime *string    `json:"expected_checkout_time,omitempty"`
	DailyRate            *float64   `json:"daily_rate,omitempty"`
	BaseDailyRate        *float64   `json:"base_daily_rate,omitempty"`
	Discount             float64    `json:"discount"`
	Status               string     `json:"status"` // active|closed
	Reason               *string    `json:"reason,omitempty"`
	Prepaid              bool       `json:"prepaid"`
	CreatedAt            time.Time  `json:"created_at"`
}

// Companion is an additional named person registered under a stay. Rows
// are owned by the stay and removed when the stay is deleted.
type Companion struct {
	ID        uint64     `json:"id"`
	StayID    uint64     `json:"stay_id"`
	Name      string     `json:"name"`
	TaxID     *string    `json:"tax_id,omitempty"`
	Passport  *string    `json:"passport,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

// FinalRate computes the rate billed at checkout: the stay's daily rate if
// set, else the base rate recorded at check-in, else zero. Companion count
// never affects the rate.
func (s Stay) FinalRate() float64 {
	if s.DailyRate != nil {
		return *s.DailyRate
	}
	if s.BaseDailyRate != nil {
		return *s.BaseDailyRate
	}
	return 0
}

// EffectiveCheckout returns the actual checkout date when recorded, else
// the expected checkout date. The second return is false when neither
// exists (an open-ended active stay).
func (s Stay) EffectiveCheckout() (time.Time, bool) {
	if s.CheckoutDate != nil {
		return *s.CheckoutDate, true
	}
	if s.ExpectedCheckoutDate != nil {
		return *s.ExpectedCheckoutDate, true
	}
	return time.Time{}, false
}

// DisplayEnd returns the end date used when drawing the stay on an
// occupancy timeline. A stay whose effective checkout falls on or before
// its check-in date is stretched to exactly one night so the interval
// never has zero or negative width.
func (s Stay) DisplayEnd() time.Time {
	end, ok := s.EffectiveCheckout()
	if !ok || !end.After(s.CheckinDate) {
		return s.CheckinDate.AddDate(0, 0, 1)
	}
	return end
}
