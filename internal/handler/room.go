package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hmsdev/hotel-frontdesk/internal/model"
	"github.com/hmsdev/hotel-frontdesk/internal/repository"
)

// RoomHandler serves room inventory and room type administration.
type RoomHandler struct {
	Rooms *repository.RoomRepo
	Types *repository.RoomTypeRepo
}

func NewRoomHandler(rooms *repository.RoomRepo, types *repository.RoomTypeRepo) *RoomHandler {
	return &RoomHandler{Rooms: rooms, Types: types}
}

type roomTypeReq struct {
	Label         string  `json:"label"`
	Description   string  `json:"description"`
	BaseDailyRate float64 `json:"base_daily_rate"`
}

type roomReq struct {
	Number      string   `json:"number"`
	TypeID      uint64   `json:"type_id"`
	Description string   `json:"description"`
	DailyRate   *float64 `json:"daily_rate"`
	Status      string   `json:"status"`
}

func validRoomStatus(s string) bool {
	return s == model.RoomAvailable || s == model.RoomOccupied || s == model.RoomBlocked
}

// ----- room types -----

// ListTypes returns all room types.
func (h *RoomHandler) ListTypes(c echo.Context) error {
	types, err := h.Types.List(c.Request().Context())
	if err != nil {
		return internalError(c, "list room types failed", err)
	}
	return c.JSON(http.StatusOK, types)
}

// CreateType registers a new room type.
func (h *RoomHandler) CreateType(c echo.Context) error {
	var req roomTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Label = strings.TrimSpace(req.Label)
	if req.Label == "" || req.BaseDailyRate < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "label and non-negative base_daily_rate required"})
	}
	t := model.RoomType{Label: req.Label, Description: req.Description, BaseDailyRate: req.BaseDailyRate}
	if err := h.Types.Create(c.Request().Context(), &t); err != nil {
		return internalError(c, "create room type failed", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "room type created", "id": t.ID})
}

// UpdateType rewrites a room type.
func (h *RoomHandler) UpdateType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid room type id"})
	}
	var req roomTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Label = strings.TrimSpace(req.Label)
	if req.Label == "" || req.BaseDailyRate < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "label and non-negative base_daily_rate required"})
	}
	t := model.RoomType{ID: id, Label: req.Label, Description: req.Description, BaseDailyRate: req.BaseDailyRate}
	if err := h.Types.Update(c.Request().Context(), &t); err != nil {
		if err == repository.ErrRoomTypeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "room type not found"})
		}
		return internalError(c, "update room type failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room type updated"})
}

// DeleteType removes a room type with no rooms.
func (h *RoomHandler) DeleteType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid room type id"})
	}
	if err := h.Types.Delete(c.Request().Context(), id); err != nil {
		switch err {
		case repository.ErrRoomTypeNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "room type not found"})
		case repository.ErrRowReferenced:
			return c.JSON(http.StatusConflict, echo.Map{"message": "room type still has rooms"})
		}
		return internalError(c, "delete room type failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room type deleted"})
}

// ----- rooms -----

// List returns all rooms with their effective daily rate.
func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.Rooms.List(c.Request().Context())
	if err != nil {
		return internalError(c, "list rooms failed", err)
	}
	return c.JSON(http.StatusOK, rooms)
}

// Get returns a single room by number.
func (h *RoomHandler) Get(c echo.Context) error {
	number := strings.TrimSpace(c.Param("number"))
	if number == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid room number"})
	}
	room, err := h.Rooms.GetByNumber(c.Request().Context(), number)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "room not found"})
		}
		return internalError(c, "load room failed", err)
	}
	return c.JSON(http.StatusOK, room)
}

// Create registers a room under an existing type.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Number = strings.TrimSpace(req.Number)
	if req.Number == "" || req.TypeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "number and type_id required"})
	}
	if req.Status != "" && !validRoomStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid status"})
	}
	if _, err := h.Types.GetByID(c.Request().Context(), req.TypeID); err != nil {
		if err == repository.ErrRoomTypeNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "room type does not exist"})
		}
		return internalError(c, "load room type failed", err)
	}
	room := model.Room{
		Number:      req.Number,
		TypeID:      req.TypeID,
		Description: req.Description,
		DailyRate:   req.DailyRate,
		Status:      req.Status,
	}
	if err := h.Rooms.Create(c.Request().Context(), &room); err != nil {
		if err == repository.ErrRoomExists {
			return c.JSON(http.StatusConflict, echo.Map{"message": "room number already exists"})
		}
		return internalError(c, "create room failed", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "room created", "number": room.Number})
}

// Update rewrites a room's type, status, description and rate override.
func (h *RoomHandler) Update(c echo.Context) error {
	number := strings.TrimSpace(c.Param("number"))
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.TypeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "type_id required"})
	}
	if req.Status == "" || !validRoomStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid status"})
	}
	room := model.Room{
		Number:      number,
		TypeID:      req.TypeID,
		Description: req.Description,
		DailyRate:   req.DailyRate,
		Status:      req.Status,
	}
	if err := h.Rooms.Update(c.Request().Context(), &room); err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "room not found"})
		}
		return internalError(c, "update room failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room updated"})
}

// Delete removes a room that no stay references.
func (h *RoomHandler) Delete(c echo.Context) error {
	number := strings.TrimSpace(c.Param("number"))
	if err := h.Rooms.Delete(c.Request().Context(), number); err != nil {
		switch err {
		case repository.ErrRoomNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "room not found"})
		case repository.ErrRowReferenced:
			return c.JSON(http.StatusConflict, echo.Map{"message": "room has stays and cannot be deleted"})
		}
		return internalError(c, "delete room failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room deleted"})
}
