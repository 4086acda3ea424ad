// Package repository defines error values that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between failure scenarios. For example, ErrRowReferenced
// signals that a delete cannot proceed because dependent records exist
// (e.g. deleting a room that still has stays), while ErrForbidden indicates
// the caller is not allowed to act on the target record.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation on a
// record they may not touch (e.g. a manager editing an admin user).
// Handlers should translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrRowReferenced is returned when a delete cannot be performed because
// other rows still reference the target (MySQL errno 1451). Handlers
// should translate this into an HTTP 409 response.
var ErrRowReferenced = errors.New("row referenced by dependent records")

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (errno 1062, unique constraint).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isRowReferenced reports whether err is a MySQL foreign-key restriction
// on delete (errno 1451).
func isRowReferenced(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1451")
}
