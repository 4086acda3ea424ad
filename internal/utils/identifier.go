package utils

import "strings"

// NormalizeTaxID strips every non-digit character from a tax ID so that
// formatted inputs like "123.456.789-00" compare equal to the stored
// "12345678900". An empty result means the input carried no digits at all.
func NormalizeTaxID(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TrimToNil converts a whitespace-only string to nil so optional columns
// are stored as SQL NULL instead of empty strings.
func TrimToNil(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}
