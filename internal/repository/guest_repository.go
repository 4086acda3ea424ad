package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hmsdev/hotel-frontdesk/internal/model"
	"github.com/hmsdev/hotel-frontdesk/internal/utils"
)

// GuestRepo provides CRUD operations for the guest directory. Tax IDs are
// stored digit-normalized; every lookup normalizes its input the same way
// so formatted and unformatted identifiers match the same row.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo returns a new GuestRepo bound to the given database.
func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

// ErrGuestNotFound is returned when no guest matches the given key.
var ErrGuestNotFound = errors.New("guest not found")

// ErrDuplicateIdentifier is returned when a create or update collides with
// another guest's tax ID or passport.
var ErrDuplicateIdentifier = errors.New("tax id or passport already registered")

const guestColumns = `id, tax_id, passport, name, phone, email, address, postal_code, birth_date, nationality, created_at, updated_at`

func scanGuest(row interface{ Scan(...interface{}) error }) (model.Guest, error) {
	var (
		g         model.Guest
		taxID     sql.NullString
		passport  sql.NullString
		phone     sql.NullString
		email     sql.NullString
		address   sql.NullString
		postal    sql.NullString
		birth     sql.NullTime
		nat       sql.NullString
	)
	err := row.Scan(&g.ID, &taxID, &passport, &g.Name, &phone, &email,
		&address, &postal, &birth, &nat, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return model.Guest{}, err
	}
	if taxID.Valid {
		g.TaxID = &taxID.String
	}
	if passport.Valid {
		g.Passport = &passport.String
	}
	if phone.Valid {
		g.Phone = &phone.String
	}
	if email.Valid {
		g.Email = &email.String
	}
	if address.Valid {
		g.Address = &address.String
	}
	if postal.Valid {
		g.PostalCode = &postal.String
	}
	if birth.Valid {
		t := birth.Time
		g.BirthDate = &t
	}
	if nat.Valid {
		g.Nationality = &nat.String
	}
	return g, nil
}

// List returns all guests ordered by name.
func (r *GuestRepo) List(ctx context.Context) ([]model.Guest, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+guestColumns+` FROM guests ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	guests := make([]model.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return guests, nil
}

// GetByID fetches a single guest by primary key. Returns ErrGuestNotFound
// when the row does not exist.
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (model.Guest, error) {
	g, err := scanGuest(r.db.QueryRowContext(ctx,
		`SELECT `+guestColumns+` FROM guests WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return model.Guest{}, ErrGuestNotFound
	}
	return g, err
}

// FindByIdentifier resolves a guest by tax ID or passport. The tax ID is
// digit-normalized before matching, so "123.456.789-00" finds a guest
// stored as "12345678900". When both identifiers are given, either may
// match. Returns ErrGuestNotFound when neither does.
func (r *GuestRepo) FindByIdentifier(ctx context.Context, taxID, passport string) (model.Guest, error) {
	taxID = utils.NormalizeTaxID(taxID)
	var (
		row *sql.Row
	)
	switch {
	case taxID != "" && passport != "":
		row = r.db.QueryRowContext(ctx,
			`SELECT `+guestColumns+` FROM guests WHERE tax_id = ? OR passport = ? LIMIT 1`,
			taxID, passport)
	case taxID != "":
		row = r.db.QueryRowContext(ctx,
			`SELECT `+guestColumns+` FROM guests WHERE tax_id = ? LIMIT 1`, taxID)
	case passport != "":
		row = r.db.QueryRowContext(ctx,
			`SELECT `+guestColumns+` FROM guests WHERE passport = ? LIMIT 1`, passport)
	default:
		return model.Guest{}, ErrGuestNotFound
	}
	g, err := scanGuest(row)
	if err == sql.ErrNoRows {
		return model.Guest{}, ErrGuestNotFound
	}
	return g, err
}

// Create inserts a new guest and populates the generated ID. A duplicate
// tax ID or passport yields ErrDuplicateIdentifier.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO guests (tax_id, passport, name, phone, email, address, postal_code, birth_date, nationality)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.TaxID, g.Passport, g.Name, g.Phone, g.Email, g.Address, g.PostalCode, g.BirthDate, g.Nationality)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateIdentifier
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// Update rewrites a guest's mutable fields by ID. Returns
// ErrGuestNotFound when the row does not exist and ErrDuplicateIdentifier
// when the new identifiers collide with another guest.
func (r *GuestRepo) Update(ctx context.Context, g *model.Guest) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE guests SET tax_id = ?, passport = ?, name = ?, phone = ?, email = ?,
		        address = ?, postal_code = ?, birth_date = ?, nationality = ?
		 WHERE id = ?`,
		g.TaxID, g.Passport, g.Name, g.Phone, g.Email, g.Address, g.PostalCode,
		g.BirthDate, g.Nationality, g.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateIdentifier
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Zero rows can also mean "nothing changed"; verify existence so a
		// no-op update still succeeds.
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM guests WHERE id = ?`, g.ID).Scan(&one); err == sql.ErrNoRows {
			return ErrGuestNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a guest by ID. Deleting a guest who still has stays is
// blocked by the foreign key and surfaces as ErrRowReferenced.
func (r *GuestRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM guests WHERE id = ?`, id)
	if err != nil {
		if isRowReferenced(err) {
			return ErrRowReferenced
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGuestNotFound
	}
	return nil
}
