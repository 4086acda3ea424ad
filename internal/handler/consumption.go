package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hmsdev/hotel-frontdesk/internal/model"
	"github.com/hmsdev/hotel-frontdesk/internal/repository"
)

// ConsumptionHandler serves the product catalog and the consumption
// ledger. Adding a ledger entry and decrementing the product stock happen
// in one transaction built around a conditional update, so stock can
// never go negative no matter how many desks sell at once.
type ConsumptionHandler struct {
	Products     *repository.ProductRepo
	Consumptions *repository.ConsumptionRepo
	Stays        *repository.StayRepo
}

func NewConsumptionHandler(products *repository.ProductRepo,
	consumptions *repository.ConsumptionRepo, stays *repository.StayRepo) *ConsumptionHandler {
	return &ConsumptionHandler{Products: products, Consumptions: consumptions, Stays: stays}
}

type productReq struct {
	Name          string  `json:"name"`
	UnitPrice     float64 `json:"unit_price"`
	StockQuantity int64   `json:"stock_quantity"`
}

type consumptionReq struct {
	StayID    uint64 `json:"stay_id"`
	ProductID uint64 `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// ----- products -----

// ListProducts returns the catalog.
func (h *ConsumptionHandler) ListProducts(c echo.Context) error {
	products, err := h.Products.List(c.Request().Context())
	if err != nil {
		return internalError(c, "list products failed", err)
	}
	return c.JSON(http.StatusOK, products)
}

// CreateProduct registers a catalog item.
func (h *ConsumptionHandler) CreateProduct(c echo.Context) error {
	var req productReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.UnitPrice < 0 || req.StockQuantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name, non-negative unit_price and stock_quantity required"})
	}
	p := model.Product{Name: req.Name, UnitPrice: req.UnitPrice, StockQuantity: req.StockQuantity}
	if err := h.Products.Create(c.Request().Context(), &p); err != nil {
		return internalError(c, "create product failed", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "product created", "id": p.ID})
}

// UpdateProduct rewrites a catalog item; the stock write here is an
// administrative restock, not a sale.
func (h *ConsumptionHandler) UpdateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid product id"})
	}
	var req productReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.UnitPrice < 0 || req.StockQuantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name, non-negative unit_price and stock_quantity required"})
	}
	p := model.Product{ID: id, Name: req.Name, UnitPrice: req.UnitPrice, StockQuantity: req.StockQuantity}
	if err := h.Products.Update(c.Request().Context(), &p); err != nil {
		if err == repository.ErrProductNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "product not found"})
		}
		return internalError(c, "update product failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product updated"})
}

// DeleteProduct removes a catalog item that no ledger entry references.
func (h *ConsumptionHandler) DeleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid product id"})
	}
	if err := h.Products.Delete(c.Request().Context(), id); err != nil {
		switch err {
		case repository.ErrProductNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "product not found"})
		case repository.ErrRowReferenced:
			return c.JSON(http.StatusConflict, echo.Map{"message": "product has consumptions and cannot be deleted"})
		}
		return internalError(c, "delete product failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted"})
}

// ----- consumption ledger -----

// Add bills a product to an active stay. The ledger insert and the stock
// decrement commit together or not at all: the decrement's WHERE clause
// refuses to go below zero, and a refused decrement rolls the whole
// transaction back with a 409.
func (h *ConsumptionHandler) Add(c echo.Context) error {
	var req consumptionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.StayID == 0 || req.ProductID == 0 || req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "stay_id, product_id and positive quantity required"})
	}
	ctx := c.Request().Context()

	stay, err := h.Stays.GetByID(ctx, req.StayID)
	if err != nil {
		if err == repository.ErrStayNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "stay not found"})
		}
		return internalError(c, "load stay failed", err)
	}
	if stay.Status != model.StayActive {
		return c.JSON(http.StatusConflict, echo.Map{"message": "stay is not active"})
	}

	tx, err := h.Stays.DB().BeginTx(ctx, nil)
	if err != nil {
		return internalError(c, "begin transaction failed", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	product, err := h.Products.GetTx(ctx, tx, req.ProductID)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "product not found"})
		}
		return internalError(c, "load product failed", err)
	}
	if err := h.Products.DecrementStockTx(ctx, tx, product.ID, req.Quantity); err != nil {
		if err == repository.ErrInsufficientStock {
			return c.JSON(http.StatusConflict, echo.Map{
				"message": "insufficient stock",
				"stock":   product.StockQuantity,
			})
		}
		return internalError(c, "decrement stock failed", err)
	}
	entry := model.Consumption{
		StayID:    stay.ID,
		ProductID: product.ID,
		Quantity:  req.Quantity,
		UnitPrice: product.UnitPrice, // copied so later price edits do not rewrite old bills
	}
	if err := h.Consumptions.CreateTx(ctx, tx, &entry); err != nil {
		return internalError(c, "record consumption failed", err)
	}
	if err := tx.Commit(); err != nil {
		return internalError(c, "commit failed", err)
	}
	committed = true

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "consumption recorded",
		"id":         entry.ID,
		"unit_price": entry.UnitPrice,
		"total":      float64(entry.Quantity) * entry.UnitPrice,
	})
}

// ListByStay returns a stay's ledger with line totals.
func (h *ConsumptionHandler) ListByStay(c echo.Context) error {
	stayID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid stay id"})
	}
	items, err := h.Consumptions.ListByStay(c.Request().Context(), stayID)
	if err != nil {
		return internalError(c, "list consumptions failed", err)
	}
	return c.JSON(http.StatusOK, items)
}

// Delete voids a ledger entry and puts the quantity back in stock, in one
// transaction.
func (h *ConsumptionHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "consumptionID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid consumption id"})
	}
	ctx := c.Request().Context()

	tx, err := h.Stays.DB().BeginTx(ctx, nil)
	if err != nil {
		return internalError(c, "begin transaction failed", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	entry, err := h.Consumptions.GetTx(ctx, tx, id)
	if err != nil {
		if err == repository.ErrConsumptionNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "consumption not found"})
		}
		return internalError(c, "load consumption failed", err)
	}
	if err := h.Consumptions.DeleteTx(ctx, tx, entry.ID); err != nil {
		return internalError(c, "delete consumption failed", err)
	}
	if err := h.Products.RestoreStockTx(ctx, tx, entry.ProductID, entry.Quantity); err != nil {
		return internalError(c, "restore stock failed", err)
	}
	if err := tx.Commit(); err != nil {
		return internalError(c, "commit failed", err)
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{"message": "consumption removed"})
}
