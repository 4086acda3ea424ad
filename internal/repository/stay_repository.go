package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/hmsdev/hotel-frontdesk/internal/model"
)

// StayRepo provides persistence for stays, the reservation/occupancy
// records created by check-in and closed by check-out. The active-stay
// checks used by the workflow are plain reads: the check-in sequence is
// check-then-act and is not isolated from the subsequent insert, so two
// concurrent check-ins for the same room can race. Closing that window
// would take a row lock on the room or a unique partial index on
// (room_number, status='active').
type StayRepo struct {
	db *sql.DB
}

// NewStayRepo returns a new StayRepo bound to the given database.
func NewStayRepo(db *sql.DB) *StayRepo { return &StayRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span repositories.
func (r *StayRepo) DB() *sql.DB { return r.db }

// ErrStayNotFound is returned when no stay with the given ID exists.
var ErrStayNotFound = errors.New("stay not found")

const stayColumns = `id, room_number, guest_id, checkin_date, checkin_time,
	checkout_date, checkout_time, expected_checkout_date, expected_checkout_time,
	daily_rate, base_daily_rate, discount, status, reason, prepaid, created_at`

func scanStay(row interface{ Scan(...interface{}) error }) (model.Stay, error) {
	var (
		s        model.Stay
		outDate  sql.NullTime
		outTime  sql.NullString
		expDate  sql.NullTime
		expTime  sql.NullString
		rate     sql.NullFloat64
		baseRate sql.NullFloat64
		reason   sql.NullString
	)
	err := row.Scan(&s.ID, &s.RoomNumber, &s.GuestID, &s.CheckinDate, &s.CheckinTime,
		&outDate, &outTime, &expDate, &expTime,
		&rate, &baseRate, &s.Discount, &s.Status, &reason, &s.Prepaid, &s.CreatedAt)
	if err != nil {
		return model.Stay{}, err
	}
	if outDate.Valid {
		t := outDate.Time
		s.CheckoutDate = &t
	}
	if outTime.Valid {
		s.CheckoutTime = &outTime.String
	}
	if expDate.Valid {
		t := expDate.Time
		s.ExpectedCheckoutDate = &t
	}
	if expTime.Valid {
		s.ExpectedCheckoutTime = &expTime.String
	}
	if rate.Valid {
		s.DailyRate = &rate.Float64
	}
	if baseRate.Valid {
		s.BaseDailyRate = &baseRate.Float64
	}
	if reason.Valid {
		s.Reason = &reason.String
	}
	return s, nil
}

// Create inserts a new stay and populates the generated ID. Callers set
// BaseDailyRate alongside DailyRate so the agreed rate survives later
// checkout adjustments.
func (r *StayRepo) Create(ctx context.Context, s *model.Stay) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO stays (room_number, guest_id, checkin_date, checkin_time,
		        expected_checkout_date, expected_checkout_time,
		        daily_rate, base_daily_rate, discount, status, reason, prepaid)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.RoomNumber, s.GuestID, s.CheckinDate, s.CheckinTime,
		s.ExpectedCheckoutDate, s.ExpectedCheckoutTime,
		s.DailyRate, s.BaseDailyRate, s.Discount, s.Status, s.Reason, s.Prepaid)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID fetches a stay by primary key.
func (r *StayRepo) GetByID(ctx context.Context, id uint64) (model.Stay, error) {
	s, err := scanStay(r.db.QueryRowContext(ctx,
		`SELECT `+stayColumns+` FROM stays WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return model.Stay{}, ErrStayNotFound
	}
	return s, err
}

// HasActiveByRoom reports whether the room currently has an active stay.
func (r *StayRepo) HasActiveByRoom(ctx context.Context, roomNumber string) (bool, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM stays WHERE room_number = ? AND status = ? LIMIT 1`,
		roomNumber, model.StayActive).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// HasActiveByGuest reports whether the guest currently has an active stay.
func (r *StayRepo) HasActiveByGuest(ctx context.Context, guestID uint64) (bool, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM stays WHERE guest_id = ? AND status = ? LIMIT 1`,
		guestID, model.StayActive).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Close finalizes a stay at check-out: records the actual departure,
// freezes the billed daily rate and flips the status to closed.
func (r *StayRepo) Close(ctx context.Context, id uint64, date time.Time, timeOfDay string, finalRate float64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE stays SET checkout_date = ?, checkout_time = ?, status = ?, daily_rate = ? WHERE id = ?`,
		date, timeOfDay, model.StayClosed, finalRate, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM stays WHERE id = ?`, id).Scan(&one); err == sql.ErrNoRows {
			return ErrStayNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// ActiveStayDetail is an active stay joined with its guest and room for
// the front-desk lookup endpoints. FinalDailyRate carries the rate that
// would be billed if the stay checked out now.
type ActiveStayDetail struct {
	Stay           model.Stay `json:"stay"`
	GuestName      string     `json:"guest_name"`
	GuestPhone     *string    `json:"guest_phone,omitempty"`
	GuestEmail     *string    `json:"guest_email,omitempty"`
	TypeRate       float64    `json:"type_daily_rate"`
	FinalDailyRate float64    `json:"final_daily_rate"`
}

const activeStayQuery = `SELECT s.id, s.room_number, s.guest_id, s.checkin_date, s.checkin_time,
	       s.checkout_date, s.checkout_time, s.expected_checkout_date, s.expected_checkout_time,
	       s.daily_rate, s.base_daily_rate, s.discount, s.status, s.reason, s.prepaid, s.created_at,
	       g.name, g.phone, g.email, rt.base_daily_rate
	FROM stays s
	JOIN guests g ON g.id = s.guest_id
	JOIN rooms ro ON ro.number = s.room_number
	JOIN room_types rt ON rt.id = ro.type_id`

func (r *StayRepo) scanActiveDetail(row *sql.Row) (ActiveStayDetail, error) {
	var (
		det      ActiveStayDetail
		s        model.Stay
		outDate  sql.NullTime
		outTime  sql.NullString
		expDate  sql.NullTime
		expTime  sql.NullString
		rate     sql.NullFloat64
		baseRate sql.NullFloat64
		reason   sql.NullString
		phone    sql.NullString
		email    sql.NullString
	)
	err := row.Scan(&s.ID, &s.RoomNumber, &s.GuestID, &s.CheckinDate, &s.CheckinTime,
		&outDate, &outTime, &expDate, &expTime,
		&rate, &baseRate, &s.Discount, &s.Status, &reason, &s.Prepaid, &s.CreatedAt,
		&det.GuestName, &phone, &email, &det.TypeRate)
	if err != nil {
		return ActiveStayDetail{}, err
	}
	if outDate.Valid {
		t := outDate.Time
		s.CheckoutDate = &t
	}
	if outTime.Valid {
		s.CheckoutTime = &outTime.String
	}
	if expDate.Valid {
		t := expDate.Time
		s.ExpectedCheckoutDate = &t
	}
	if expTime.Valid {
		s.ExpectedCheckoutTime = &expTime.String
	}
	if rate.Valid {
		s.DailyRate = &rate.Float64
	}
	if baseRate.Valid {
		s.BaseDailyRate = &baseRate.Float64
	}
	if reason.Valid {
		s.Reason = &reason.String
	}
	if phone.Valid {
		det.GuestPhone = &phone.String
	}
	if email.Valid {
		det.GuestEmail = &email.String
	}
	det.Stay = s
	det.FinalDailyRate = s.FinalRate()
	if det.FinalDailyRate == 0 && s.DailyRate == nil && s.BaseDailyRate == nil {
		det.FinalDailyRate = det.TypeRate
	}
	return det, nil
}

// ActiveByGuest returns the most recent active stay for a guest, joined
// with contact and rate details. Returns ErrStayNotFound when the guest
// has no active stay.
func (r *StayRepo) ActiveByGuest(ctx context.Context, guestID uint64) (ActiveStayDetail, error) {
	det, err := r.scanActiveDetail(r.db.QueryRowContext(ctx,
		activeStayQuery+`
	WHERE s.guest_id = ? AND s.status = ?
	ORDER BY s.checkin_date DESC LIMIT 1`, guestID, model.StayActive))
	if err == sql.ErrNoRows {
		return ActiveStayDetail{}, ErrStayNotFound
	}
	return det, err
}

// ActiveByRoom returns the latest active stay for a room.
func (r *StayRepo) ActiveByRoom(ctx context.Context, roomNumber string) (ActiveStayDetail, error) {
	det, err := r.scanActiveDetail(r.db.QueryRowContext(ctx,
		activeStayQuery+`
	WHERE s.room_number = ? AND s.status = ?
	ORDER BY s.id DESC LIMIT 1`, roomNumber, model.StayActive))
	if err == sql.ErrNoRows {
		return ActiveStayDetail{}, ErrStayNotFound
	}
	return det, err
}

// StayListItem is a stay joined with its guest plus the companions
// registered under it, shaped for the reservations listing.
type StayListItem struct {
	ID            uint64            `json:"id"`
	GuestName     string            `json:"guest_name"`
	GuestTaxID    *string           `json:"guest_tax_id,omitempty"`
	GuestPassport *string           `json:"guest_passport,omitempty"`
	RoomNumber    string            `json:"room_number"`
	CheckinDate   time.Time         `json:"checkin_date"`
	CheckinTime   string            `json:"checkin_time"`
	CheckoutDate  *time.Time        `json:"checkout_date,omitempty"`
	CheckoutTime  *string           `json:"checkout_time,omitempty"`
	Status        string            `json:"status"`
	Reason        *string           `json:"reason,omitempty"`
	Companions    []model.Companion `json:"companions"`
}

// List returns stays joined with guest identity, newest check-in first.
// With upcoming set, only active stays whose expected checkout is today or
// later are returned. A non-empty roomNumber restricts to that room.
// Effective checkout (actual, else expected) fills the checkout columns.
// Companions are attached with a single IN query.
func (r *StayRepo) List(ctx context.Context, upcoming bool, roomNumber string) ([]StayListItem, error) {
	q := `SELECT s.id, g.name, g.tax_id, g.passport, s.room_number,
	             s.checkin_date, s.checkin_time,
	             IFNULL(s.checkout_date, s.expected_checkout_date),
	             IFNULL(s.checkout_time, s.expected_checkout_time),
	             s.status, s.reason
	      FROM stays s
	      JOIN guests g ON g.id = s.guest_id`
	conds := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)
	if upcoming {
		conds = append(conds, `s.expected_checkout_date >= CURDATE() AND s.status = 'active'`)
	}
	if roomNumber != "" {
		conds = append(conds, `s.room_number = ?`)
		args = append(args, roomNumber)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY s.checkin_date DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]StayListItem, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var (
			it       StayListItem
			taxID    sql.NullString
			passport sql.NullString
			outDate  sql.NullTime
			outTime  sql.NullString
			reason   sql.NullString
		)
		if err := rows.Scan(&it.ID, &it.GuestName, &taxID, &passport, &it.RoomNumber,
			&it.CheckinDate, &it.CheckinTime, &outDate, &outTime, &it.Status, &reason); err != nil {
			return nil, err
		}
		if taxID.Valid {
			it.GuestTaxID = &taxID.String
		}
		if passport.Valid {
			it.GuestPassport = &passport.String
		}
		if outDate.Valid {
			t := outDate.Time
			it.CheckoutDate = &t
		}
		if outTime.Valid {
			it.CheckoutTime = &outTime.String
		}
		if reason.Valid {
			it.Reason = &reason.String
		}
		it.Companions = []model.Companion{}
		index[it.ID] = len(items)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}
	// Attach companions for all stays in one query.
	ids := make([]interface{}, 0, len(items))
	placeholders := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
		placeholders = append(placeholders, "?")
	}
	compQ := `SELECT id, stay_id, name, tax_id, passport, birth_date
	          FROM companions
	          WHERE stay_id IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY stay_id, name`
	crows, err := r.db.QueryContext(ctx, compQ, ids...)
	if err != nil {
		return nil, err
	}
	defer crows.Close()
	for crows.Next() {
		var (
			comp     model.Companion
			taxID    sql.NullString
			passport sql.NullString
			birth    sql.NullTime
		)
		if err := crows.Scan(&comp.ID, &comp.StayID, &comp.Name, &taxID, &passport, &birth); err != nil {
			return nil, err
		}
		if taxID.Valid {
			comp.TaxID = &taxID.String
		}
		if passport.Valid {
			comp.Passport = &passport.String
		}
		if birth.Valid {
			t := birth.Time
			comp.BirthDate = &t
		}
		idx, ok := index[comp.StayID]
		if !ok {
			continue
		}
		items[idx].Companions = append(items[idx].Companions, comp)
	}
	if err := crows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// OccupancyRow is a stay plus guest name as returned by the occupancy
// query. Callers use the embedded stay's DisplayEnd for timeline drawing.
type OccupancyRow struct {
	model.Stay
	GuestName string
}

// Occupancy returns all stays (active or closed) whose occupancy interval
// intersects [from, to]. The interval runs from the check-in date to the
// effective checkout (actual, else expected); stays with neither checkout
// recorded are excluded since they have no drawable end.
func (r *StayRepo) Occupancy(ctx context.Context, from, to time.Time) ([]OccupancyRow, error) {
	const q = `SELECT s.id, s.room_number, s.checkin_date,
	                  s.checkout_date, s.expected_checkout_date, s.status, g.name
	           FROM stays s
	           JOIN guests g ON g.id = s.guest_id
	           WHERE s.status IN ('active', 'closed')
	             AND s.checkin_date <= ?
	             AND IFNULL(s.checkout_date, s.expected_checkout_date) >= ?`
	rows, err := r.db.QueryContext(ctx, q, to, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]OccupancyRow, 0)
	for rows.Next() {
		var (
			row     OccupancyRow
			outDate sql.NullTime
			expDate sql.NullTime
		)
		if err := rows.Scan(&row.ID, &row.RoomNumber, &row.CheckinDate,
			&outDate, &expDate, &row.Status, &row.GuestName); err != nil {
			return nil, err
		}
		if outDate.Valid {
			t := outDate.Time
			row.CheckoutDate = &t
		}
		if expDate.Valid {
			t := expDate.Time
			row.ExpectedCheckoutDate = &t
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a stay and its companions in one transaction. Stays with
// recorded consumptions are protected by the foreign key and surface as
// ErrRowReferenced.
func (r *StayRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM companions WHERE stay_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM stays WHERE id = ?`, id)
	if err != nil {
		if isRowReferenced(err) {
			return ErrRowReferenced
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStayNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
