package handler

import (
	"testing"
	"time"

	"github.com/hmsdev/hotel-frontdesk/internal/model"
)

func TestNormalizeClock(t *testing.T) {
	if got, err := normalizeClock("14:30"); err != nil || got != "14:30:00" {
		t.Errorf("normalizeClock(14:30) = %q, %v", got, err)
	}
	if got, err := normalizeClock("14:30:15"); err != nil || got != "14:30:15" {
		t.Errorf("normalizeClock(14:30:15) = %q, %v", got, err)
	}
	if _, err := normalizeClock("25:00"); err == nil {
		t.Error("normalizeClock accepted 25:00")
	}
	if _, err := normalizeClock("noon"); err == nil {
		t.Error("normalizeClock accepted noon")
	}
}

func TestTodayUsesLocalCalendarDate(t *testing.T) {
	now := time.Now()
	got := today()
	if got.Year() != now.Year() || got.Month() != now.Month() || got.Day() != now.Day() {
		t.Fatalf("today() = %v, local date is %v", got, now)
	}
	h, m, s := got.Clock()
	if h != 0 || m != 0 || s != 0 {
		t.Fatalf("today() = %v, want midnight", got)
	}
	if got.Location() != time.UTC {
		t.Fatalf("today() location = %v, want UTC", got.Location())
	}
}

func TestBillFor(t *testing.T) {
	in := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	stay := model.Stay{CheckinDate: in}

	nights, charges, total := billFor(stay, 100, in.AddDate(0, 0, 3), 45, 20)
	if nights != 3 || charges != 300 || total != 325 {
		t.Fatalf("billFor = %d nights, %v charges, %v total", nights, charges, total)
	}

	// Same-day checkout still bills one night.
	nights, charges, total = billFor(stay, 100, in, 0, 0)
	if nights != 1 || charges != 100 || total != 100 {
		t.Fatalf("same-day billFor = %d nights, %v charges, %v total", nights, charges, total)
	}

	// A discount larger than the bill clamps to zero rather than refunding.
	_, _, total = billFor(stay, 50, in.AddDate(0, 0, 1), 0, 500)
	if total != 0 {
		t.Fatalf("over-discounted total = %v, want 0", total)
	}
}

func TestGuestReqValidation(t *testing.T) {
	if _, msg := (guestReq{Name: "Ana", TaxID: "123.456.789-00"}).toModel(); msg != "" {
		t.Errorf("valid guest rejected: %s", msg)
	}
	if _, msg := (guestReq{TaxID: "123"}).toModel(); msg == "" {
		t.Error("nameless guest accepted")
	}
	if _, msg := (guestReq{Name: "Ana"}).toModel(); msg == "" {
		t.Error("guest without documents accepted")
	}
	if _, msg := (guestReq{Name: "Ana", TaxID: "..."}).toModel(); msg == "" {
		t.Error("tax id with no digits accepted as a document")
	}
	g, msg := (guestReq{Name: "Ana", TaxID: "123.456.789-00"}).toModel()
	if msg != "" || g.TaxID == nil || *g.TaxID != "12345678900" {
		t.Errorf("tax id not normalized: %v", g.TaxID)
	}
}

func TestManagerTouchingAdmin(t *testing.T) {
	if !managerTouchingAdmin(model.RoleManager, model.RoleAdmin) {
		t.Error("manager acting on admin not flagged")
	}
	if managerTouchingAdmin(model.RoleAdmin, model.RoleAdmin) {
		t.Error("admin acting on admin flagged")
	}
	if managerTouchingAdmin(model.RoleManager, model.RoleStandard) {
		t.Error("manager acting on standard flagged")
	}
}
