package model

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func f(v float64) *float64 { return &v }

func TestFinalRate(t *testing.T) {
	cases := []struct {
		name string
		stay Stay
		want float64
	}{
		{"billed rate wins", Stay{DailyRate: f(200), BaseDailyRate: f(150)}, 200},
		{"falls back to base", Stay{BaseDailyRate: f(150)}, 150},
		{"zero when neither set", Stay{}, 0},
		{"explicit zero rate is kept", Stay{DailyRate: f(0), BaseDailyRate: f(150)}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.stay.FinalRate(); got != tc.want {
				t.Fatalf("FinalRate() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEffectiveCheckout(t *testing.T) {
	in := date(2025, 3, 10)
	actual := date(2025, 3, 12)
	expected := date(2025, 3, 15)

	s := Stay{CheckinDate: in, CheckoutDate: &actual, ExpectedCheckoutDate: &expected}
	if got, ok := s.EffectiveCheckout(); !ok || !got.Equal(actual) {
		t.Fatalf("EffectiveCheckout() = %v, %v; want actual date", got, ok)
	}

	s = Stay{CheckinDate: in, ExpectedCheckoutDate: &expected}
	if got, ok := s.EffectiveCheckout(); !ok || !got.Equal(expected) {
		t.Fatalf("EffectiveCheckout() = %v, %v; want expected date", got, ok)
	}

	s = Stay{CheckinDate: in}
	if _, ok := s.EffectiveCheckout(); ok {
		t.Fatal("EffectiveCheckout() reported a date for an open-ended stay")
	}
}

func TestDisplayEnd(t *testing.T) {
	in := date(2025, 3, 10)
	oneNight := date(2025, 3, 11)

	cases := []struct {
		name string
		stay Stay
		want time.Time
	}{
		{
			"normal interval keeps its end",
			Stay{CheckinDate: in, ExpectedCheckoutDate: ptr(date(2025, 3, 14))},
			date(2025, 3, 14),
		},
		{
			"same-day checkout stretches to one night",
			Stay{CheckinDate: in, CheckoutDate: ptr(in)},
			oneNight,
		},
		{
			"checkout before check-in stretches to one night",
			Stay{CheckinDate: in, CheckoutDate: ptr(date(2025, 3, 8))},
			oneNight,
		},
		{
			"open-ended stay draws one night",
			Stay{CheckinDate: in},
			oneNight,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.stay.DisplayEnd(); !got.Equal(tc.want) {
				t.Fatalf("DisplayEnd() = %v, want %v", got, tc.want)
			}
		})
	}
}

func ptr(t time.Time) *time.Time { return &t }

func TestRoomEffectiveRate(t *testing.T) {
	rt := RoomType{BaseDailyRate: 120}
	if got := (Room{DailyRate: f(95)}).EffectiveRate(rt); got != 95 {
		t.Fatalf("EffectiveRate() = %v, want room override", got)
	}
	if got := (Room{}).EffectiveRate(rt); got != 120 {
		t.Fatalf("EffectiveRate() = %v, want base rate", got)
	}
}
