package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hmsdev/hotel-frontdesk/internal/model"
	"github.com/hmsdev/hotel-frontdesk/internal/repository"
	"github.com/hmsdev/hotel-frontdesk/internal/utils"
)

// GuestHandler serves the guest directory.
type GuestHandler struct {
	Guests *repository.GuestRepo
}

func NewGuestHandler(g *repository.GuestRepo) *GuestHandler {
	return &GuestHandler{Guests: g}
}

type guestReq struct {
	Name        string `json:"name"`
	TaxID       string `json:"tax_id"`
	Passport    string `json:"passport"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	PostalCode  string `json:"postal_code"`
	BirthDate   string `json:"birth_date"` // YYYY-MM-DD
	Nationality string `json:"nationality"`
}

// toModel validates the request and maps it into a guest record. A guest
// must have a name and at least one identity document; the tax ID is
// stored digit-normalized.
func (req guestReq) toModel() (model.Guest, string) {
	g := model.Guest{Name: strings.TrimSpace(req.Name)}
	if g.Name == "" {
		return g, "name is required"
	}
	taxID := utils.NormalizeTaxID(req.TaxID)
	passport := strings.TrimSpace(req.Passport)
	if taxID == "" && passport == "" {
		return g, "tax_id or passport is required"
	}
	if taxID != "" {
		g.TaxID = &taxID
	}
	if passport != "" {
		g.Passport = &passport
	}
	g.Phone = utils.TrimToNil(req.Phone)
	g.Email = utils.TrimToNil(req.Email)
	g.Address = utils.TrimToNil(req.Address)
	g.PostalCode = utils.TrimToNil(req.PostalCode)
	g.Nationality = utils.TrimToNil(req.Nationality)
	if s := strings.TrimSpace(req.BirthDate); s != "" {
		d, err := parseDate(s)
		if err != nil {
			return g, "birth_date must be YYYY-MM-DD"
		}
		g.BirthDate = &d
	}
	return g, ""
}

// List returns all registered guests.
func (h *GuestHandler) List(c echo.Context) error {
	guests, err := h.Guests.List(c.Request().Context())
	if err != nil {
		return internalError(c, "list guests failed", err)
	}
	return c.JSON(http.StatusOK, guests)
}

// Get returns a single guest by ID.
func (h *GuestHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid guest id"})
	}
	g, err := h.Guests.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrGuestNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "guest not found"})
		}
		return internalError(c, "load guest failed", err)
	}
	return c.JSON(http.StatusOK, g)
}

// Find resolves a guest by tax ID or passport given as query parameters.
// Used by the check-in form to prefill returning guests.
func (h *GuestHandler) Find(c echo.Context) error {
	taxID := c.QueryParam("tax_id")
	passport := strings.TrimSpace(c.QueryParam("passport"))
	if utils.NormalizeTaxID(taxID) == "" && passport == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "tax_id or passport is required"})
	}
	g, err := h.Guests.FindByIdentifier(c.Request().Context(), taxID, passport)
	if err != nil {
		if err == repository.ErrGuestNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "guest not found"})
		}
		return internalError(c, "find guest failed", err)
	}
	return c.JSON(http.StatusOK, g)
}

// Create registers a new guest.
func (h *GuestHandler) Create(c echo.Context) error {
	var req guestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	g, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}
	if err := h.Guests.Create(c.Request().Context(), &g); err != nil {
		if err == repository.ErrDuplicateIdentifier {
			return c.JSON(http.StatusConflict, echo.Map{"message": "tax id or passport already registered"})
		}
		return internalError(c, "create guest failed", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "guest created", "id": g.ID})
}

// Update rewrites a guest's record.
func (h *GuestHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid guest id"})
	}
	var req guestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	g, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}
	g.ID = id
	if err := h.Guests.Update(c.Request().Context(), &g); err != nil {
		switch err {
		case repository.ErrGuestNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "guest not found"})
		case repository.ErrDuplicateIdentifier:
			return c.JSON(http.StatusConflict, echo.Map{"message": "tax id or passport already registered"})
		}
		return internalError(c, "update guest failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "guest updated"})
}

// Delete removes a guest without stays.
func (h *GuestHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid guest id"})
	}
	if err := h.Guests.Delete(c.Request().Context(), id); err != nil {
		switch err {
		case repository.ErrGuestNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "guest not found"})
		case repository.ErrRowReferenced:
			return c.JSON(http.StatusConflict, echo.Map{"message": "guest has stays and cannot be deleted"})
		}
		return internalError(c, "delete guest failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "guest deleted"})
}
