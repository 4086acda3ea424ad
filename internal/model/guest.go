package model

import "time"

// Guest mirrors the `guests` table. A guest is identified by a national
// tax ID, a passport number, or both; at least one must be present.
// TaxID is stored digit-normalized (no punctuation).
type Guest struct {
	ID          uint64     `json:"id"`
	TaxID       *string    `json:"tax_id,omitempty"` // digits only
	Passport    *string    `json:"passport,omitempty"`
	Name        string     `json:"name"`
	Phone       *string    `json:"phone,omitempty"`
	Email       *string    `json:"email,omitempty"`
	Address     *string    `json:"address,omitempty"`
	PostalCode  *string    `json:"postal_code,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Nationality *string    `json:"nationality,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
