package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hmsdev/hotel-frontdesk/internal/model"
)

// ConsumptionRepo persists the consumption ledger: one row per product
// purchase billed to a stay. All writes run inside transactions opened by
// the handler so the ledger entry and the stock movement commit together.
type ConsumptionRepo struct {
	db *sql.DB
}

// NewConsumptionRepo returns a new ConsumptionRepo bound to the database.
func NewConsumptionRepo(db *sql.DB) *ConsumptionRepo { return &ConsumptionRepo{db: db} }

// ErrConsumptionNotFound is returned when no ledger entry with the ID exists.
var ErrConsumptionNotFound = errors.New("consumption not found")

// ConsumptionItem is a ledger entry joined with its product name for the
// stay bill.
type ConsumptionItem struct {
	ID          uint64  `json:"id"`
	ProductID   uint64  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int64   `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// CreateTx inserts a ledger entry inside the given transaction and
// populates the generated ID. The unit price must already be copied from
// the product.
func (r *ConsumptionRepo) CreateTx(ctx context.Context, tx *sql.Tx, c *model.Consumption) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO consumptions (stay_id, product_id, quantity, unit_price) VALUES (?, ?, ?, ?)`,
		c.StayID, c.ProductID, c.Quantity, c.UnitPrice)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// ListByStay returns the stay's ledger entries joined with product names,
// oldest first, for the bill.
func (r *ConsumptionRepo) ListByStay(ctx context.Context, stayID uint64) ([]ConsumptionItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.product_id, p.name, c.quantity, c.unit_price
		 FROM consumptions c
		 JOIN products p ON p.id = c.product_id
		 WHERE c.stay_id = ?
		 ORDER BY c.id`, stayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]ConsumptionItem, 0)
	for rows.Next() {
		var it ConsumptionItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		it.Total = float64(it.Quantity) * it.UnitPrice
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// TotalByStay returns the summed ledger amount for a stay.
func (r *ConsumptionRepo) TotalByStay(ctx context.Context, stayID uint64) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx,
		`SELECT IFNULL(SUM(quantity * unit_price), 0) FROM consumptions WHERE stay_id = ?`,
		stayID).Scan(&total)
	return total, err
}

// GetTx fetches a ledger entry inside the given transaction so a void can
// read the quantity it is about to restore under the same isolation.
func (r *ConsumptionRepo) GetTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Consumption, error) {
	var c model.Consumption
	err := tx.QueryRowContext(ctx,
		`SELECT id, stay_id, product_id, quantity, unit_price FROM consumptions WHERE id = ?`,
		id).Scan(&c.ID, &c.StayID, &c.ProductID, &c.Quantity, &c.UnitPrice)
	if err == sql.ErrNoRows {
		return model.Consumption{}, ErrConsumptionNotFound
	}
	return c, err
}

// DeleteTx removes a ledger entry inside the given transaction. The
// caller restores the product stock in the same transaction.
func (r *ConsumptionRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM consumptions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConsumptionNotFound
	}
	return nil
}
