package repository

import (
	"context"
	"database/sql"
	"time"
)

// FrontDeskRow is the shape shared by the front-desk day views: one line
// per stay with the guest's identity and contact, the room, and the rate
// that applies. At is the time of day relevant to the view (arrival time
// for check-ins, departure time for check-outs).
type FrontDeskRow struct {
	StayID     uint64     `json:"stay_id"`
	GuestName  string     `json:"guest_name"`
	TaxID      *string    `json:"tax_id,omitempty"`
	Passport   *string    `json:"passport,omitempty"`
	Phone      *string    `json:"phone,omitempty"`
	Email      *string    `json:"email,omitempty"`
	RoomNumber string     `json:"room_number"`
	RoomType   string     `json:"room_type"`
	Date       time.Time  `json:"date"`
	At         string     `json:"at"`
	DailyRate  float64    `json:"daily_rate"`
	Reason     *string    `json:"reason,omitempty"`
	Expected   *time.Time `json:"expected_checkout_date,omitempty"`
}

// frontDeskRate coalesces the rate sources in billing precedence order:
// the stay's billed rate, the rate agreed at check-in, the room override,
// then the type's base rate.
const frontDeskRate = `COALESCE(s.daily_rate, s.base_daily_rate, ro.daily_rate, rt.base_daily_rate)`

const frontDeskJoin = `
	FROM stays s
	JOIN guests g ON g.id = s.guest_id
	JOIN rooms ro ON ro.number = s.room_number
	JOIN room_types rt ON rt.id = ro.type_id`

func (r *StayRepo) queryFrontDesk(ctx context.Context, q string, args ...interface{}) ([]FrontDeskRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]FrontDeskRow, 0)
	for rows.Next() {
		var (
			row      FrontDeskRow
			taxID    sql.NullString
			passport sql.NullString
			phone    sql.NullString
			email    sql.NullString
			reason   sql.NullString
			expected sql.NullTime
		)
		if err := rows.Scan(&row.StayID, &row.GuestName, &taxID, &passport, &phone, &email,
			&row.RoomNumber, &row.RoomType, &row.Date, &row.At, &row.DailyRate,
			&reason, &expected); err != nil {
			return nil, err
		}
		if taxID.Valid {
			row.TaxID = &taxID.String
		}
		if passport.Valid {
			row.Passport = &passport.String
		}
		if phone.Valid {
			row.Phone = &phone.String
		}
		if email.Valid {
			row.Email = &email.String
		}
		if reason.Valid {
			row.Reason = &reason.String
		}
		if expected.Valid {
			t := expected.Time
			row.Expected = &t
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Arrivals lists the stays whose check-in falls on the given day.
func (r *StayRepo) Arrivals(ctx context.Context, day time.Time) ([]FrontDeskRow, error) {
	q := `SELECT s.id, g.name, g.tax_id, g.passport, g.phone, g.email,
	             s.room_number, rt.label, s.checkin_date, s.checkin_time, ` + frontDeskRate + `,
	             s.reason, s.expected_checkout_date` + frontDeskJoin + `
	WHERE s.checkin_date = ?
	ORDER BY s.checkin_time`
	return r.queryFrontDesk(ctx, q, day)
}

// Departures lists the stays that checked out, or are expected to check
// out, on the given day.
func (r *StayRepo) Departures(ctx context.Context, day time.Time) ([]FrontDeskRow, error) {
	q := `SELECT s.id, g.name, g.tax_id, g.passport, g.phone, g.email,
	             s.room_number, rt.label,
	             IFNULL(s.checkout_date, s.expected_checkout_date),
	             IFNULL(IFNULL(s.checkout_time, s.expected_checkout_time), '00:00:00'), ` + frontDeskRate + `,
	             s.reason, s.expected_checkout_date` + frontDeskJoin + `
	WHERE IFNULL(s.checkout_date, s.expected_checkout_date) = ?
	ORDER BY s.room_number`
	return r.queryFrontDesk(ctx, q, day)
}

// InHouse lists all stays currently active, ordered by room.
func (r *StayRepo) InHouse(ctx context.Context) ([]FrontDeskRow, error) {
	q := `SELECT s.id, g.name, g.tax_id, g.passport, g.phone, g.email,
	             s.room_number, rt.label, s.checkin_date, s.checkin_time, ` + frontDeskRate + `,
	             s.reason, s.expected_checkout_date` + frontDeskJoin + `
	WHERE s.status = 'active'
	ORDER BY s.room_number`
	return r.queryFrontDesk(ctx, q)
}

// Overdue lists active stays whose expected checkout date has already
// passed, the guests the front desk should be chasing.
func (r *StayRepo) Overdue(ctx context.Context, today time.Time) ([]FrontDeskRow, error) {
	q := `SELECT s.id, g.name, g.tax_id, g.passport, g.phone, g.email,
	             s.room_number, rt.label, s.checkin_date, s.checkin_time, ` + frontDeskRate + `,
	             s.reason, s.expected_checkout_date` + frontDeskJoin + `
	WHERE s.status = 'active'
	  AND s.expected_checkout_date IS NOT NULL
	  AND s.expected_checkout_date < ?
	ORDER BY s.expected_checkout_date`
	return r.queryFrontDesk(ctx, q, today)
}
