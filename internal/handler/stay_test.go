package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hmsdev/hotel-frontdesk/internal/model"
)

type stepLog struct {
	steps []string
}

type fakeRoomStatus struct {
	log *stepLog
	err error
}

func (f *fakeRoomStatus) SetStatus(ctx context.Context, number, status string) error {
	f.log.steps = append(f.log.steps, "room:"+number+":"+status)
	return f.err
}

type fakeCompanionBulk struct {
	log *stepLog
	err error
}

func (f *fakeCompanionBulk) CreateBulk(ctx context.Context, stayID uint64, companions []model.Companion) (int64, error) {
	f.log.steps = append(f.log.steps, "companions")
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(companions)), nil
}

func TestFinishCheckInMarksRoomBeforeCompanions(t *testing.T) {
	log := &stepLog{}
	stay := model.Stay{ID: 7, RoomNumber: "204"}
	comps := []model.Companion{{Name: "Rui"}, {Name: "Bea"}}

	n, err := finishCheckIn(context.Background(), &fakeRoomStatus{log: log}, &fakeCompanionBulk{log: log}, stay, comps)
	if err != nil {
		t.Fatalf("finishCheckIn: %v", err)
	}
	if n != 2 {
		t.Fatalf("registered %d companions, want 2", n)
	}
	want := []string{"room:204:occupied", "companions"}
	if len(log.steps) != 2 || log.steps[0] != want[0] || log.steps[1] != want[1] {
		t.Fatalf("step order = %v, want %v", log.steps, want)
	}
}

func TestFinishCheckInRoomFailureSkipsCompanions(t *testing.T) {
	log := &stepLog{}
	rooms := &fakeRoomStatus{log: log, err: errors.New("update failed")}

	_, err := finishCheckIn(context.Background(), rooms, &fakeCompanionBulk{log: log},
		model.Stay{ID: 7, RoomNumber: "204"}, []model.Companion{{Name: "Rui"}})
	if err == nil {
		t.Fatal("room failure not surfaced")
	}
	for _, s := range log.steps {
		if s == "companions" {
			t.Fatal("companions written after room update failed")
		}
	}
}

func TestFinishCheckInCompanionFailureAfterRoom(t *testing.T) {
	log := &stepLog{}
	comps := &fakeCompanionBulk{log: log, err: errors.New("insert failed")}

	_, err := finishCheckIn(context.Background(), &fakeRoomStatus{log: log}, comps,
		model.Stay{ID: 7, RoomNumber: "204"}, []model.Companion{{Name: "Rui"}})
	if err == nil {
		t.Fatal("companion failure not surfaced")
	}
	if len(log.steps) == 0 || log.steps[0] != "room:204:occupied" {
		t.Fatalf("room not marked occupied before companion insert: %v", log.steps)
	}
}

func jsonCtx(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// Required-field validation happens before any store access, so a bare
// handler is enough to exercise the 400 paths.
func TestCheckInRequiredFields(t *testing.T) {
	e := echo.New()
	h := &StayHandler{}

	cases := []struct {
		name string
		body string
		want string
	}{
		{"no room", `{}`, "room_number is required"},
		{"no date", `{"room_number":"204"}`, "checkin_date is required"},
		{"bad date", `{"room_number":"204","checkin_date":"28/08/2026"}`, "checkin_date must be YYYY-MM-DD"},
		{"no time", `{"room_number":"204","checkin_date":"2026-08-28"}`, "checkin_time is required"},
		{"no rate", `{"room_number":"204","checkin_date":"2026-08-28","checkin_time":"14:00"}`, "daily_rate is required"},
		{"negative rate", `{"room_number":"204","checkin_date":"2026-08-28","checkin_time":"14:00","daily_rate":-1}`, "daily_rate must be non-negative"},
	}
	for _, tc := range cases {
		c, rec := jsonCtx(e, http.MethodPost, "/v1/stays/check-in", tc.body)
		if err := h.CheckIn(c); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), tc.want) {
			t.Errorf("%s: body = %s, want %q", tc.name, rec.Body.String(), tc.want)
		}
	}
}

func TestCheckOutRequiredFields(t *testing.T) {
	e := echo.New()
	h := &StayHandler{}

	cases := []struct {
		name string
		body string
		want string
	}{
		{"no date", `{}`, "checkout_date is required"},
		{"bad date", `{"checkout_date":"yesterday"}`, "checkout_date must be YYYY-MM-DD"},
		{"no time", `{"checkout_date":"2026-08-28"}`, "checkout_time is required"},
		{"bad time", `{"checkout_date":"2026-08-28","checkout_time":"25:99"}`, "checkout_time must be HH:MM"},
	}
	for _, tc := range cases {
		c, rec := jsonCtx(e, http.MethodPut, "/", tc.body)
		c.SetParamNames("id")
		c.SetParamValues("7")
		if err := h.CheckOut(c); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), tc.want) {
			t.Errorf("%s: body = %s, want %q", tc.name, rec.Body.String(), tc.want)
		}
	}
}
