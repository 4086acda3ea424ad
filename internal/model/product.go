package model

// Product mirrors the `products` table. StockQuantity is only ever
// decremented through the consumption ledger's conditional update and can
// never go below zero.
type Product struct {
	ID            uint64  `json:"id"`
	Name          string  `json:"name"`
	UnitPrice     float64 `json:"unit_price"`
	StockQuantity int64   `json:"stock_quantity"`
}

// Consumption is a billable product purchase attributed to a stay. The
// unit price is copied from the product at purchase time so later price
// changes do not rewrite past bills.
type Consumption struct {
	ID        uint64  `json:"id"`
	StayID    uint64  `json:"stay_id"`
	ProductID uint64  `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
