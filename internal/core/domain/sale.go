package domain

import "time"

// SaleLine is one product/quantity/price tuple within a sale request. The
// unit price is captured at sale time, not re-derived from the live product.
type SaleLine struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"qty"`
	UnitPrice float64 `json:"price"`
}

// Sale is the header of one completed transaction. ItemsDescription is a
// read-time annotation ("3x Sugar, 1x Bread") built when listing sales.
type Sale struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	TotalAmount      float64   `json:"total_amount"`
	SaleDate         time.Time `json:"sale_date"`
	ItemsDescription string    `json:"items_description,omitempty"`
}

// RecentSale is the dashboard's compact view of a sale.
type RecentSale struct {
	ID          int64     `json:"id"`
	TotalAmount float64   `json:"total_amount"`
	SaleDate    time.Time `json:"sale_date"`
	ItemsCount  int       `json:"items_count"`
}
