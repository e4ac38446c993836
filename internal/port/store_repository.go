package port

import (
	"context"

	"github.com/dukapro/dukapro/internal/core/domain"
)

// SaleRepository owns the only multi-statement write path in the system.
type SaleRepository interface {
	// CreateSale atomically inserts the sale header, all line items, and
	// applies one conditional stock decrement per line. If any decrement
	// matches zero rows it returns *domain.InsufficientStockError and no
	// write from the call persists.
	CreateSale(ctx context.Context, userID int64, lines []domain.SaleLine, total float64) (int64, error)

	// ListSales returns the caller's sales newest-first, each annotated
	// with a human-readable line-item description.
	ListSales(ctx context.Context, userID int64) ([]domain.Sale, error)
}

type ProductRepository interface {
	ListProducts(ctx context.Context, userID int64) ([]domain.Product, error)
	GetProduct(ctx context.Context, userID, productID int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) (int64, error)
	// UpdateProduct applies the non-nil fields of upd to the caller's
	// product. Returns domain.ErrNotFound when no owned row matches.
	UpdateProduct(ctx context.Context, userID, productID int64, upd domain.ProductUpdate) error
	DeleteProduct(ctx context.Context, userID, productID int64) error
}

type DebtRepository interface {
	// ListDebts filters by status unless status is empty ("all").
	ListDebts(ctx context.Context, userID int64, status domain.DebtStatus) ([]domain.Debt, error)
	CreateDebt(ctx context.Context, d *domain.Debt) (int64, error)
	UpdateDebt(ctx context.Context, userID, debtID int64, upd domain.DebtUpdate) error
	DeleteDebt(ctx context.Context, userID, debtID int64) error
}

type UserRepository interface {
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	CreateUser(ctx context.Context, u *domain.User) (int64, error)
}

type StatsRepository interface {
	DashboardStats(ctx context.Context, userID int64) (*domain.DashboardStats, error)
}
