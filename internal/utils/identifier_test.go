package utils

import "testing"

func TestNormalizeTaxID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"123.456.789-00", "12345678900"},
		{"12345678900", "12345678900"},
		{" 123 456 ", "123456"},
		{"abc", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeTaxID(tc.in); got != tc.want {
			t.Errorf("NormalizeTaxID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTrimToNil(t *testing.T) {
	if got := TrimToNil("  "); got != nil {
		t.Errorf("TrimToNil(blank) = %q, want nil", *got)
	}
	if got := TrimToNil(" x "); got == nil || *got != "x" {
		t.Errorf("TrimToNil(\" x \") = %v, want \"x\"", got)
	}
}
