package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hmsdev/hotel-frontdesk/internal/model"
	"github.com/hmsdev/hotel-frontdesk/internal/queue"
	"github.com/hmsdev/hotel-frontdesk/internal/repository"
	queue_publisher "github.com/hmsdev/hotel-frontdesk/internal/service"
	"github.com/hmsdev/hotel-frontdesk/internal/utils"
)

// StayHandler drives the check-in/check-out workflow and the stay queries
// built on top of it.
//
// The check-in conflict checks are reads followed by an insert, not a
// single transaction. Two desks checking into the same room at the same
// instant can both pass the check; the window is accepted and documented
// rather than closed, since a hotel desk has human pacing. The consumption
// ledger in consumption.go is where real atomicity lives.
type StayHandler struct {
	Stays        *repository.StayRepo
	Guests       *repository.GuestRepo
	Rooms        *repository.RoomRepo
	Companions   *repository.CompanionRepo
	Consumptions *repository.ConsumptionRepo
}

func NewStayHandler(stays *repository.StayRepo, guests *repository.GuestRepo,
	rooms *repository.RoomRepo, companions *repository.CompanionRepo,
	consumptions *repository.ConsumptionRepo) *StayHandler {
	return &StayHandler{
		Stays:        stays,
		Guests:       guests,
		Rooms:        rooms,
		Companions:   companions,
		Consumptions: consumptions,
	}
}

type companionReq struct {
	Name      string `json:"name"`
	TaxID     string `json:"tax_id"`
	Passport  string `json:"passport"`
	BirthDate string `json:"birth_date"`
}

type checkinReq struct {
	GuestID              uint64         `json:"guest_id"`
	Guest                *guestReq      `json:"guest"`
	RoomNumber           string         `json:"room_number"`
	CheckinDate          string         `json:"checkin_date"`
	CheckinTime          string         `json:"checkin_time"`
	ExpectedCheckoutDate string         `json:"expected_checkout_date"`
	ExpectedCheckoutTime string         `json:"expected_checkout_time"`
	DailyRate            *float64       `json:"daily_rate"`
	Discount             float64        `json:"discount"`
	Reason               string         `json:"reason"`
	Prepaid              bool           `json:"prepaid"`
	Companions           []companionReq `json:"companions"`
	IgnoreActiveStay     bool           `json:"ignore_active_stay"`
}

type checkoutReq struct {
	CheckoutDate string   `json:"checkout_date"`
	CheckoutTime string   `json:"checkout_time"`
	DailyRate    *float64 `json:"daily_rate"`
	Discount     *float64 `json:"discount"`
}

// resolveGuest returns the guest to check in: by explicit ID, else by
// identifier lookup on the inline payload, else by registering the inline
// payload as a new guest.
func (h *StayHandler) resolveGuest(ctx context.Context, req checkinReq) (model.Guest, int, string) {
	if req.GuestID != 0 {
		g, err := h.Guests.GetByID(ctx, req.GuestID)
		if err == repository.ErrGuestNotFound {
			return model.Guest{}, http.StatusNotFound, "guest not found"
		}
		if err != nil {
			return model.Guest{}, http.StatusInternalServerError, "load guest failed"
		}
		return g, 0, ""
	}
	if req.Guest == nil {
		return model.Guest{}, http.StatusBadRequest, "guest_id or guest is required"
	}
	taxID := req.Guest.TaxID
	passport := strings.TrimSpace(req.Guest.Passport)
	if utils.NormalizeTaxID(taxID) != "" || passport != "" {
		g, err := h.Guests.FindByIdentifier(ctx, taxID, passport)
		if err == nil {
			return g, 0, ""
		}
		if err != repository.ErrGuestNotFound {
			return model.Guest{}, http.StatusInternalServerError, "find guest failed"
		}
	}
	g, msg := req.Guest.toModel()
	if msg != "" {
		return model.Guest{}, http.StatusBadRequest, msg
	}
	if err := h.Guests.Create(ctx, &g); err != nil {
		if err == repository.ErrDuplicateIdentifier {
			return model.Guest{}, http.StatusConflict, "tax id or passport already registered"
		}
		return model.Guest{}, http.StatusInternalServerError, "create guest failed"
	}
	return g, 0, ""
}

// roomStatusSetter and companionBulkCreator are the slices of RoomRepo
// and CompanionRepo the post-insert check-in steps touch.
type roomStatusSetter interface {
	SetStatus(ctx context.Context, number, status string) error
}

type companionBulkCreator interface {
	CreateBulk(ctx context.Context, stayID uint64, companions []model.Companion) (int64, error)
}

// finishCheckIn runs the steps that follow the stay insert: mark the room
// occupied, then register the companions. The room update comes first and
// its failure aborts the sequence, so a companion failure always leaves
// the stay and room consistent and the desk can retry the companions
// alone.
func finishCheckIn(ctx context.Context, rooms roomStatusSetter, companions companionBulkCreator,
	stay model.Stay, comps []model.Companion) (int64, error) {
	if err := rooms.SetStatus(ctx, stay.RoomNumber, model.RoomOccupied); err != nil {
		return 0, fmt.Errorf("mark room %s occupied: %w", stay.RoomNumber, err)
	}
	n, err := companions.CreateBulk(ctx, stay.ID, comps)
	if err != nil {
		return 0, fmt.Errorf("register companions: %w", err)
	}
	return n, nil
}

// CheckIn opens a stay. A room with an active stay is always rejected. A
// guest with an active stay is rejected with needs_confirmation unless the
// caller set ignore_active_stay, which lets the desk register a second
// room for the same guest.
func (h *StayHandler) CheckIn(c echo.Context) error {
	var req checkinReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.RoomNumber = strings.TrimSpace(req.RoomNumber)
	if req.RoomNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "room_number is required"})
	}
	if strings.TrimSpace(req.CheckinDate) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "checkin_date is required"})
	}
	checkinDate, err := parseDate(strings.TrimSpace(req.CheckinDate))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "checkin_date must be YYYY-MM-DD"})
	}
	if strings.TrimSpace(req.CheckinTime) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "checkin_time is required"})
	}
	checkinTime, err := normalizeClock(strings.TrimSpace(req.CheckinTime))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "checkin_time must be HH:MM"})
	}
	if req.DailyRate == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "daily_rate is required"})
	}
	rate := *req.DailyRate
	if rate < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "daily_rate must be non-negative"})
	}

	stay := model.Stay{
		RoomNumber:  req.RoomNumber,
		CheckinDate: checkinDate,
		CheckinTime: checkinTime,
		DailyRate:   &rate,
		// the agreed rate is preserved for audit even if checkout overrides it
		BaseDailyRate: &rate,
		Discount:      req.Discount,
		Status:        model.StayActive,
		Prepaid:       req.Prepaid,
	}
	if s := strings.TrimSpace(req.ExpectedCheckoutDate); s != "" {
		d, err := parseDate(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "expected_checkout_date must be YYYY-MM-DD"})
		}
		if d.Before(checkinDate) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "expected_checkout_date before checkin_date"})
		}
		stay.ExpectedCheckoutDate = &d
	}
	if s := strings.TrimSpace(req.ExpectedCheckoutTime); s != "" {
		t, err := normalizeClock(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "expected_checkout_time must be HH:MM"})
		}
		stay.ExpectedCheckoutTime = &t
	}
	stay.Reason = utils.TrimToNil(req.Reason)
	ctx := c.Request().Context()

	// Fixed step order: resolve the guest, then the room conflict (never
	// overridable), then the guest conflict (overridable).
	guest, code, msg := h.resolveGuest(ctx, req)
	if msg != "" {
		return c.JSON(code, echo.Map{"message": msg})
	}
	stay.GuestID = guest.ID

	room, err := h.Rooms.GetByNumber(ctx, req.RoomNumber)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "room not found"})
		}
		return internalError(c, "load room failed", err)
	}
	if room.Status == model.RoomBlocked {
		return c.JSON(http.StatusConflict, echo.Map{"message": "room is blocked"})
	}
	busy, err := h.Stays.HasActiveByRoom(ctx, room.Number)
	if err != nil {
		return internalError(c, "room availability check failed", err)
	}
	if busy {
		return c.JSON(http.StatusConflict, echo.Map{"message": "room already has an active stay"})
	}

	if !req.IgnoreActiveStay {
		active, err := h.Stays.HasActiveByGuest(ctx, guest.ID)
		if err != nil {
			return internalError(c, "guest stay check failed", err)
		}
		if active {
			return c.JSON(http.StatusConflict, echo.Map{
				"message":            "guest already has an active stay",
				"needs_confirmation": true,
			})
		}
	}

	if err := h.Stays.Create(ctx, &stay); err != nil {
		return internalError(c, "create stay failed", err)
	}

	companions := make([]model.Companion, 0, len(req.Companions))
	for _, cr := range req.Companions {
		name := strings.TrimSpace(cr.Name)
		if name == "" {
			continue
		}
		comp := model.Companion{Name: name}
		if t := utils.NormalizeTaxID(cr.TaxID); t != "" {
			comp.TaxID = &t
		}
		comp.Passport = utils.TrimToNil(cr.Passport)
		if s := strings.TrimSpace(cr.BirthDate); s != "" {
			if d, err := parseDate(s); err == nil {
				comp.BirthDate = &d
			}
		}
		companions = append(companions, comp)
	}

	// The stay row exists from here on: the room is flagged occupied before
	// any companion row is written, and either failure surfaces to the desk.
	registered, err := finishCheckIn(ctx, h.Rooms, h.Companions, stay, companions)
	if err != nil {
		return internalError(c, "check-in incomplete", err)
	}

	event := queue.StayCheckedInEvent{
		StayID:      stay.ID,
		RoomNumber:  stay.RoomNumber,
		GuestID:     guest.ID,
		GuestName:   guest.Name,
		CheckinDate: stay.CheckinDate.Format("2006-01-02"),
		CheckinTime: stay.CheckinTime,
		DailyRate:   rate,
		Companions:  len(companions),
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishStayCheckedIn(ctx, event)
	}()

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "check-in completed",
		"stay_id":    stay.ID,
		"guest_id":   guest.ID,
		"daily_rate": rate,
		"companions": registered,
	})
}

// billFor computes the bill for a stay as of the given checkout moment.
func billFor(stay model.Stay, finalRate float64, checkout time.Time, consumption float64, discount float64) (nights int, roomCharges, total float64) {
	nights = int(checkout.Sub(stay.CheckinDate).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	roomCharges = float64(nights) * finalRate
	total = roomCharges + consumption - discount
	if total < 0 {
		total = 0
	}
	return nights, roomCharges, total
}

// CheckOut closes a stay: freezes the billed rate, totals room charges,
// consumption and discount, marks the stay closed and frees the room.
// Checking out an already closed stay is rejected with a conflict.
func (h *StayHandler) CheckOut(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid stay id"})
	}
	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if strings.TrimSpace(req.CheckoutDate) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "checkout_date is required"})
	}
	checkoutDate, err := parseDate(strings.TrimSpace(req.CheckoutDate))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "checkout_date must be YYYY-MM-DD"})
	}
	if strings.TrimSpace(req.CheckoutTime) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "checkout_time is required"})
	}
	checkoutTime, err := normalizeClock(strings.TrimSpace(req.CheckoutTime))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "checkout_time must be HH:MM"})
	}
	ctx := c.Request().Context()

	stay, err := h.Stays.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrStayNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "stay not found"})
		}
		return internalError(c, "load stay failed", err)
	}
	if stay.Status != model.StayActive {
		return c.JSON(http.StatusConflict, echo.Map{"message": "stay is not active"})
	}
	if checkoutDate.Before(stay.CheckinDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "checkout_date before checkin_date"})
	}

	// Billed rate: override from the desk, else the stay's rate with the
	// check-in rate as fallback.
	finalRate := stay.FinalRate()
	if req.DailyRate != nil {
		if *req.DailyRate < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "daily_rate must be non-negative"})
		}
		finalRate = *req.DailyRate
	}
	discount := stay.Discount
	if req.Discount != nil {
		if *req.Discount < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "discount must be non-negative"})
		}
		discount = *req.Discount
	}

	consumption, err := h.Consumptions.TotalByStay(ctx, stay.ID)
	if err != nil {
		return internalError(c, "total consumption failed", err)
	}
	nights, roomCharges, total := billFor(stay, finalRate, checkoutDate, consumption, discount)

	if err := h.Stays.Close(ctx, stay.ID, checkoutDate, checkoutTime, finalRate); err != nil {
		return internalError(c, "close stay failed", err)
	}

	if err := h.Rooms.SetStatus(ctx, stay.RoomNumber, model.RoomAvailable); err != nil {
		log.Printf("check-out: mark room %s available failed: %v", stay.RoomNumber, err)
	}

	guest, gerr := h.Guests.GetByID(ctx, stay.GuestID)
	guestName := ""
	if gerr == nil {
		guestName = guest.Name
	}
	event := queue.StayCheckedOutEvent{
		StayID:       stay.ID,
		RoomNumber:   stay.RoomNumber,
		GuestID:      stay.GuestID,
		GuestName:    guestName,
		CheckoutDate: checkoutDate.Format("2006-01-02"),
		CheckoutTime: checkoutTime,
		Nights:       nights,
		RoomCharges:  roomCharges,
		Consumption:  consumption,
		Discount:     discount,
		Total:        total,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishStayCheckedOut(ctx, event)
	}()

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "check-out completed",
		"stay_id":      stay.ID,
		"nights":       nights,
		"daily_rate":   finalRate,
		"room_charges": roomCharges,
		"consumption":  consumption,
		"discount":     discount,
		"total":        total,
	})
}

// Bill previews a stay's bill as of now without closing it.
func (h *StayHandler) Bill(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid stay id"})
	}
	ctx := c.Request().Context()
	stay, err := h.Stays.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrStayNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "stay not found"})
		}
		return internalError(c, "load stay failed", err)
	}
	items, err := h.Consumptions.ListByStay(ctx, stay.ID)
	if err != nil {
		return internalError(c, "list consumptions failed", err)
	}
	consumption := 0.0
	for _, it := range items {
		consumption += it.Total
	}
	asOf := today()
	if stay.CheckoutDate != nil {
		asOf = *stay.CheckoutDate
	}
	nights, roomCharges, total := billFor(stay, stay.FinalRate(), asOf, consumption, stay.Discount)
	return c.JSON(http.StatusOK, echo.Map{
		"stay_id":      stay.ID,
		"nights":       nights,
		"daily_rate":   stay.FinalRate(),
		"room_charges": roomCharges,
		"consumptions": items,
		"consumption":  consumption,
		"discount":     stay.Discount,
		"total":        total,
	})
}

// ActiveByGuest returns the guest's current stay for the desk lookup.
func (h *StayHandler) ActiveByGuest(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid guest id"})
	}
	det, err := h.Stays.ActiveByGuest(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrStayNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "no active stay for guest"})
		}
		return internalError(c, "load active stay failed", err)
	}
	return c.JSON(http.StatusOK, det)
}

// ActiveByRoom returns the room's current stay.
func (h *StayHandler) ActiveByRoom(c echo.Context) error {
	number := strings.TrimSpace(c.Param("number"))
	if number == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid room number"})
	}
	det, err := h.Stays.ActiveByRoom(c.Request().Context(), number)
	if err != nil {
		if err == repository.ErrStayNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "no active stay for room"})
		}
		return internalError(c, "load active stay failed", err)
	}
	return c.JSON(http.StatusOK, det)
}

// List returns stays with guest identity and companions. Query parameters:
// upcoming=true restricts to active stays not yet due, room filters by
// room number.
func (h *StayHandler) List(c echo.Context) error {
	upcoming := c.QueryParam("upcoming") == "true"
	room := strings.TrimSpace(c.QueryParam("room"))
	items, err := h.Stays.List(c.Request().Context(), upcoming, room)
	if err != nil {
		return internalError(c, "list stays failed", err)
	}
	return c.JSON(http.StatusOK, items)
}

// occupancyEntry is one bar on the occupancy timeline.
type occupancyEntry struct {
	StayID     uint64 `json:"stay_id"`
	RoomNumber string `json:"room_number"`
	GuestName  string `json:"guest_name"`
	Status     string `json:"status"`
	Start      string `json:"start"`
	End        string `json:"end"`
}

// Occupancy returns the room occupancy timeline between from and to
// (YYYY-MM-DD query parameters, defaulting to a 30-day window starting
// today). Stays whose effective checkout does not extend past check-in
// are drawn as one night.
func (h *StayHandler) Occupancy(c echo.Context) error {
	from := today()
	to := from.AddDate(0, 0, 30)
	var err error
	if s := strings.TrimSpace(c.QueryParam("from")); s != "" {
		if from, err = parseDate(s); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "from must be YYYY-MM-DD"})
		}
	}
	if s := strings.TrimSpace(c.QueryParam("to")); s != "" {
		if to, err = parseDate(s); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "to must be YYYY-MM-DD"})
		}
	}
	if to.Before(from) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "to before from"})
	}
	rows, err := h.Stays.Occupancy(c.Request().Context(), from, to)
	if err != nil {
		return internalError(c, "occupancy query failed", err)
	}
	entries := make([]occupancyEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, occupancyEntry{
			StayID:     row.ID,
			RoomNumber: row.RoomNumber,
			GuestName:  row.GuestName,
			Status:     row.Status,
			Start:      row.CheckinDate.Format("2006-01-02"),
			End:        row.DisplayEnd().Format("2006-01-02"),
		})
	}
	return c.JSON(http.StatusOK, entries)
}

// Delete removes a stay record and its companions. Intended for records
// created by mistake; stays with consumptions are protected.
func (h *StayHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid stay id"})
	}
	ctx := c.Request().Context()
	stay, err := h.Stays.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrStayNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "stay not found"})
		}
		return internalError(c, "load stay failed", err)
	}
	if err := h.Stays.Delete(ctx, id); err != nil {
		switch err {
		case repository.ErrStayNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "stay not found"})
		case repository.ErrRowReferenced:
			return c.JSON(http.StatusConflict, echo.Map{"message": "stay has consumptions and cannot be deleted"})
		}
		return internalError(c, "delete stay failed", err)
	}
	if stay.Status == model.StayActive {
		if err := h.Rooms.SetStatus(ctx, stay.RoomNumber, model.RoomAvailable); err != nil {
			log.Printf("stay delete: mark room %s available failed: %v", stay.RoomNumber, err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "stay deleted"})
}

// AddCompanions registers extra companions under an existing active stay.
func (h *StayHandler) AddCompanions(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid stay id"})
	}
	var reqs []companionReq
	if err := c.Bind(&reqs); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	ctx := c.Request().Context()
	stay, err := h.Stays.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrStayNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "stay not found"})
		}
		return internalError(c, "load stay failed", err)
	}
	if stay.Status != model.StayActive {
		return c.JSON(http.StatusConflict, echo.Map{"message": "stay is not active"})
	}
	companions := make([]model.Companion, 0, len(reqs))
	for _, cr := range reqs {
		name := strings.TrimSpace(cr.Name)
		if name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "companion name is required"})
		}
		comp := model.Companion{Name: name}
		if t := utils.NormalizeTaxID(cr.TaxID); t != "" {
			comp.TaxID = &t
		}
		comp.Passport = utils.TrimToNil(cr.Passport)
		if s := strings.TrimSpace(cr.BirthDate); s != "" {
			d, err := parseDate(s)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"message": "birth_date must be YYYY-MM-DD"})
			}
			comp.BirthDate = &d
		}
		companions = append(companions, comp)
	}
	n, err := h.Companions.CreateBulk(ctx, stay.ID, companions)
	if err != nil {
		return internalError(c, "register companions failed", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "companions added", "added": n})
}

// ListCompanions returns the companions registered under a stay.
func (h *StayHandler) ListCompanions(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid stay id"})
	}
	companions, err := h.Companions.ListByStay(c.Request().Context(), id)
	if err != nil {
		return internalError(c, "list companions failed", err)
	}
	return c.JSON(http.StatusOK, companions)
}

// DeleteCompanion removes a single companion and reports how many remain
// on the stay.
func (h *StayHandler) DeleteCompanion(c echo.Context) error {
	id, err := parseIDParam(c, "companionID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid companion id"})
	}
	ctx := c.Request().Context()
	stayID, err := h.Companions.StayIDOf(ctx, id)
	if err != nil {
		if err == repository.ErrCompanionNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "companion not found"})
		}
		return internalError(c, "load companion failed", err)
	}
	if err := h.Companions.Delete(ctx, id); err != nil {
		if err == repository.ErrCompanionNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "companion not found"})
		}
		return internalError(c, "delete companion failed", err)
	}
	remaining, err := h.Companions.CountByStay(ctx, stayID)
	if err != nil {
		return internalError(c, "count companions failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "companion removed", "remaining": remaining})
}
