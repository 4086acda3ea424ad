package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hmsdev/hotel-frontdesk/internal/repository"
)

// FrontDeskHandler serves the day views shown on the reception dashboard.
type FrontDeskHandler struct {
	Stays *repository.StayRepo
}

func NewFrontDeskHandler(stays *repository.StayRepo) *FrontDeskHandler {
	return &FrontDeskHandler{Stays: stays}
}

// dayParam reads the optional ?date= parameter, defaulting to today.
func dayParam(c echo.Context) (time.Time, error) {
	if s := strings.TrimSpace(c.QueryParam("date")); s != "" {
		return parseDate(s)
	}
	return today(), nil
}

// Arrivals lists the check-ins of the day.
func (h *FrontDeskHandler) Arrivals(c echo.Context) error {
	day, err := dayParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "date must be YYYY-MM-DD"})
	}
	rows, err := h.Stays.Arrivals(c.Request().Context(), day)
	if err != nil {
		return internalError(c, "list arrivals failed", err)
	}
	return c.JSON(http.StatusOK, rows)
}

// Departures lists the check-outs of the day, actual or expected.
func (h *FrontDeskHandler) Departures(c echo.Context) error {
	day, err := dayParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "date must be YYYY-MM-DD"})
	}
	rows, err := h.Stays.Departures(c.Request().Context(), day)
	if err != nil {
		return internalError(c, "list departures failed", err)
	}
	return c.JSON(http.StatusOK, rows)
}

// InHouse lists the guests currently staying.
func (h *FrontDeskHandler) InHouse(c echo.Context) error {
	rows, err := h.Stays.InHouse(c.Request().Context())
	if err != nil {
		return internalError(c, "list in-house guests failed", err)
	}
	return c.JSON(http.StatusOK, rows)
}

// Overdue lists active stays past their expected checkout.
func (h *FrontDeskHandler) Overdue(c echo.Context) error {
	rows, err := h.Stays.Overdue(c.Request().Context(), today())
	if err != nil {
		return internalError(c, "list overdue stays failed", err)
	}
	return c.JSON(http.StatusOK, rows)
}
