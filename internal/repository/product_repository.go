package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hmsdev/hotel-frontdesk/internal/model"
)

// ProductRepo manages the minibar/consumable catalog. Stock is only ever
// decremented through DecrementStockTx, a conditional single-statement
// update that cannot take the quantity below zero.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo returns a new ProductRepo bound to the given database.
func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

// ErrProductNotFound is returned when no product with the ID exists.
var ErrProductNotFound = errors.New("product not found")

// ErrInsufficientStock is returned when a decrement would take the
// product's stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// List returns all products ordered by name.
func (r *ProductRepo) List(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, unit_price, stock_quantity FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	products := make([]model.Product, 0)
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.UnitPrice, &p.StockQuantity); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID fetches a single product.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (model.Product, error) {
	var p model.Product
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, unit_price, stock_quantity FROM products WHERE id = ?`,
		id).Scan(&p.ID, &p.Name, &p.UnitPrice, &p.StockQuantity)
	if err == sql.ErrNoRows {
		return model.Product{}, ErrProductNotFound
	}
	return p, err
}

// GetTx fetches a product inside an open transaction so price and stock
// are read under the same isolation as the decrement that follows.
func (r *ProductRepo) GetTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Product, error) {
	var p model.Product
	err := tx.QueryRowContext(ctx,
		`SELECT id, name, unit_price, stock_quantity FROM products WHERE id = ?`,
		id).Scan(&p.ID, &p.Name, &p.UnitPrice, &p.StockQuantity)
	if err == sql.ErrNoRows {
		return model.Product{}, ErrProductNotFound
	}
	return p, err
}

// Create inserts a new product and populates the generated ID.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO products (name, unit_price, stock_quantity) VALUES (?, ?, ?)`,
		p.Name, p.UnitPrice, p.StockQuantity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// Update rewrites a product's name, price and stock level. Direct stock
// edits here are administrative restocks, not sales.
func (r *ProductRepo) Update(ctx context.Context, p *model.Product) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = ?, unit_price = ?, stock_quantity = ? WHERE id = ?`,
		p.Name, p.UnitPrice, p.StockQuantity, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM products WHERE id = ?`, p.ID).Scan(&one); err == sql.ErrNoRows {
			return ErrProductNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a product. Products referenced by consumptions are
// protected by the foreign key and surface as ErrRowReferenced.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		if isRowReferenced(err) {
			return ErrRowReferenced
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DecrementStockTx atomically subtracts qty from the product's stock
// inside the given transaction. The guard in the WHERE clause makes the
// check and the write a single statement: zero rows affected means the
// stock was insufficient (or the product vanished) and the caller must
// roll back.
func (r *ProductRepo) DecrementStockTx(ctx context.Context, tx *sql.Tx, productID uint64, qty int64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE products SET stock_quantity = stock_quantity - ? WHERE id = ? AND stock_quantity >= ?`,
		qty, productID, qty)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// RestoreStockTx adds qty back to the product's stock inside the given
// transaction. Used when a consumption entry is voided.
func (r *ProductRepo) RestoreStockTx(ctx context.Context, tx *sql.Tx, productID uint64, qty int64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE products SET stock_quantity = stock_quantity + ? WHERE id = ?`,
		qty, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}
