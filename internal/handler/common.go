package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the authenticated user's ID from the context. The JWT
// middleware stores the raw claim, which arrives as float64 after parsing.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole extracts the authenticated user's role from the context.
func getRole(c echo.Context) string {
	if s, ok := c.Get("role").(string); ok {
		return s
	}
	return ""
}

// parseIDParam reads a numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// parseDate parses a calendar date in YYYY-MM-DD form.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// today returns midnight (UTC) of the local calendar date. Truncating the
// UTC clock instead flips the date during the evening for any desk west
// of UTC.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// normalizeClock turns "HH:MM" into "HH:MM:SS" and validates the result.
func normalizeClock(s string) (string, error) {
	if len(s) == 5 {
		s += ":00"
	}
	if _, err := time.Parse("15:04:05", s); err != nil {
		return "", err
	}
	return s, nil
}

// internalError renders a 500 with the failure attached under "error" so
// operators can see the cause without digging through logs.
func internalError(c echo.Context, msg string, err error) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": msg, "error": err.Error()})
}
