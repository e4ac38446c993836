package storage

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukapro/dukapro/internal/core/domain"
)

func getMySQLAdapter(t *testing.T) (*MySQLAdapter, *sql.DB) {
	t.Helper()

	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/dukapro_test?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	adapter := NewMySQLAdapter(db)
	ctx := context.Background()
	require.NoError(t, adapter.EnsureSchema(ctx))

	// Wipe in FK order so every test starts clean.
	for _, table := range []string{"sale_items", "sales", "debts", "items", "users"} {
		_, err := db.ExecContext(ctx, "DELETE FROM "+table)
		require.NoError(t, err)
	}

	t.Cleanup(func() { db.Close() })
	return adapter, db
}

func createTestUser(t *testing.T, adapter *MySQLAdapter, username string) int64 {
	t.Helper()
	id, err := adapter.CreateUser(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: "not-a-real-hash",
		Name:         "Test Keeper",
	})
	require.NoError(t, err)
	return id
}

func createTestProduct(t *testing.T, adapter *MySQLAdapter, userID int64, name string, price float64, qty int) int64 {
	t.Helper()
	id, err := adapter.CreateProduct(context.Background(), &domain.Product{
		UserID:   userID,
		Name:     name,
		Price:    price,
		Quantity: qty,
		Category: "Test",
	})
	require.NoError(t, err)
	return id
}

func productQuantity(t *testing.T, db *sql.DB, productID int64) int {
	t.Helper()
	var qty int
	require.NoError(t, db.QueryRow(`SELECT quantity FROM items WHERE id = ?`, productID).Scan(&qty))
	return qty
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestCreateSale_DecrementsStock(t *testing.T) {
	adapter, db := getMySQLAdapter(t)
	ctx := context.Background()

	userID := createTestUser(t, adapter, "keeper-a")
	productID := createTestProduct(t, adapter, userID, "Sugar 1kg", 100, 5)

	saleID, err := adapter.CreateSale(ctx, userID,
		[]domain.SaleLine{{ProductID: productID, Quantity: 3, UnitPrice: 100}}, 300)
	require.NoError(t, err)
	assert.NotZero(t, saleID)

	assert.Equal(t, 2, productQuantity(t, db, productID))
	assert.Equal(t, 1, countRows(t, db, "sales"))
	assert.Equal(t, 1, countRows(t, db, "sale_items"))

	// Only 2 left now: the identical follow-up must fail, change nothing,
	// and name the product.
	_, err = adapter.CreateSale(ctx, userID,
		[]domain.SaleLine{{ProductID: productID, Quantity: 3, UnitPrice: 100}}, 300)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, productID, stockErr.ProductID)
	assert.Equal(t, 2, productQuantity(t, db, productID))
	assert.Equal(t, 1, countRows(t, db, "sales"))
	assert.Equal(t, 1, countRows(t, db, "sale_items"))
}

func TestCreateSale_RollsBackAllLinesOnFailure(t *testing.T) {
	adapter, db := getMySQLAdapter(t)
	ctx := context.Background()

	userID := createTestUser(t, adapter, "keeper-b")
	productID := createTestProduct(t, adapter, userID, "Bread", 60, 5)

	// Line 1 has plenty of stock; line 2 references a nonexistent product.
	_, err := adapter.CreateSale(ctx, userID, []domain.SaleLine{
		{ProductID: productID, Quantity: 3, UnitPrice: 60},
		{ProductID: productID + 9999, Quantity: 1, UnitPrice: 10},
	}, 190)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, productID+9999, stockErr.ProductID)

	assert.Equal(t, 5, productQuantity(t, db, productID), "line 1's decrement must be rolled back")
	assert.Equal(t, 0, countRows(t, db, "sales"))
	assert.Equal(t, 0, countRows(t, db, "sale_items"))
}

func TestCreateSale_OwnershipEnforced(t *testing.T) {
	adapter, db := getMySQLAdapter(t)
	ctx := context.Background()

	ownerID := createTestUser(t, adapter, "owner")
	intruderID := createTestUser(t, adapter, "intruder")
	productID := createTestProduct(t, adapter, ownerID, "Milk 500ml", 55, 100)

	_, err := adapter.CreateSale(ctx, intruderID,
		[]domain.SaleLine{{ProductID: productID, Quantity: 1, UnitPrice: 55}}, 55)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 100, productQuantity(t, db, productID))
	assert.Equal(t, 0, countRows(t, db, "sales"))
}

func TestListSales_NewestFirstWithDescription(t *testing.T) {
	adapter, _ := getMySQLAdapter(t)
	ctx := context.Background()

	userID := createTestUser(t, adapter, "keeper-c")
	sugar := createTestProduct(t, adapter, userID, "Sugar 1kg", 100, 20)
	bread := createTestProduct(t, adapter, userID, "Bread", 60, 20)

	first, err := adapter.CreateSale(ctx, userID, []domain.SaleLine{
		{ProductID: sugar, Quantity: 3, UnitPrice: 100},
		{ProductID: bread, Quantity: 1, UnitPrice: 60},
	}, 360)
	require.NoError(t, err)

	second, err := adapter.CreateSale(ctx, userID,
		[]domain.SaleLine{{ProductID: bread, Quantity: 2, UnitPrice: 60}}, 120)
	require.NoError(t, err)

	sales, err := adapter.ListSales(ctx, userID)
	require.NoError(t, err)
	require.Len(t, sales, 2)

	assert.Equal(t, second, sales[0].ID)
	assert.Equal(t, first, sales[1].ID)
	assert.Equal(t, "2x Bread", sales[0].ItemsDescription)
	assert.Contains(t, sales[1].ItemsDescription, "3x Sugar 1kg")
	assert.Contains(t, sales[1].ItemsDescription, "1x Bread")
}

func TestListSales_ScopedToOwner(t *testing.T) {
	adapter, _ := getMySQLAdapter(t)
	ctx := context.Background()

	sellerID := createTestUser(t, adapter, "seller")
	otherID := createTestUser(t, adapter, "other")
	productID := createTestProduct(t, adapter, sellerID, "Rice 2kg", 200, 10)

	_, err := adapter.CreateSale(ctx, sellerID,
		[]domain.SaleLine{{ProductID: productID, Quantity: 1, UnitPrice: 200}}, 200)
	require.NoError(t, err)

	sales, err := adapter.ListSales(ctx, otherID)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestProductCRUD(t *testing.T) {
	adapter, _ := getMySQLAdapter(t)
	ctx := context.Background()

	userID := createTestUser(t, adapter, "keeper-d")
	productID := createTestProduct(t, adapter, userID, "Cooking Oil 1L", 320, 8)

	got, err := adapter.GetProduct(ctx, userID, productID)
	require.NoError(t, err)
	assert.Equal(t, "Cooking Oil 1L", got.Name)
	assert.Equal(t, 8, got.Quantity)

	qty := 30
	price := 310.0
	require.NoError(t, adapter.UpdateProduct(ctx, userID, productID, domain.ProductUpdate{
		Quantity: &qty,
		Price:    &price,
	}))

	got, err = adapter.GetProduct(ctx, userID, productID)
	require.NoError(t, err)
	assert.Equal(t, 30, got.Quantity)
	assert.InDelta(t, 310.0, got.Price, 0.001)

	// A stranger can neither see nor delete it.
	_, err = adapter.GetProduct(ctx, userID+1, productID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, adapter.DeleteProduct(ctx, userID+1, productID), domain.ErrNotFound)

	require.NoError(t, adapter.DeleteProduct(ctx, userID, productID))
	assert.ErrorIs(t, adapter.DeleteProduct(ctx, userID, productID), domain.ErrNotFound)
}

func TestDebtCRUD(t *testing.T) {
	adapter, _ := getMySQLAdapter(t)
	ctx := context.Background()

	userID := createTestUser(t, adapter, "keeper-e")

	debtID, err := adapter.CreateDebt(ctx, &domain.Debt{
		UserID:       userID,
		CustomerName: "Wanjiku",
		Amount:       450,
		Status:       domain.DebtStatusPending,
	})
	require.NoError(t, err)

	pending, err := adapter.ListDebts(ctx, userID, domain.DebtStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Wanjiku", pending[0].CustomerName)

	paid := domain.DebtStatusPaid
	require.NoError(t, adapter.UpdateDebt(ctx, userID, debtID, domain.DebtUpdate{Status: &paid}))

	pending, err = adapter.ListDebts(ctx, userID, domain.DebtStatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	all, err := adapter.ListDebts(ctx, userID, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, adapter.DeleteDebt(ctx, userID, debtID))
	assert.ErrorIs(t, adapter.DeleteDebt(ctx, userID, debtID), domain.ErrNotFound)
}

func TestDashboardStats(t *testing.T) {
	adapter, _ := getMySQLAdapter(t)
	ctx := context.Background()

	userID := createTestUser(t, adapter, "keeper-f")
	sugar := createTestProduct(t, adapter, userID, "Sugar 1kg", 100, 50)
	createTestProduct(t, adapter, userID, "Matches", 10, 3) // below the low-stock threshold

	_, err := adapter.CreateSale(ctx, userID,
		[]domain.SaleLine{{ProductID: sugar, Quantity: 2, UnitPrice: 100}}, 200)
	require.NoError(t, err)

	_, err = adapter.CreateDebt(ctx, &domain.Debt{
		UserID:       userID,
		CustomerName: "Otieno",
		Amount:       300,
		Status:       domain.DebtStatusPending,
	})
	require.NoError(t, err)

	stats, err := adapter.DashboardStats(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 1, stats.TodaySales)
	assert.InDelta(t, 200.0, stats.TodayRevenue, 0.001)
	assert.Equal(t, 1, stats.PendingDebts)
	assert.InDelta(t, 300.0, stats.TotalDebts, 0.001)
	assert.Equal(t, 1, stats.LowStockItems)
	require.Len(t, stats.RecentSales, 1)
	assert.Equal(t, 1, stats.RecentSales[0].ItemsCount)
}

func TestGetUserByID(t *testing.T) {
	adapter, _ := getMySQLAdapter(t)
	ctx := context.Background()

	userID := createTestUser(t, adapter, "lookup")

	u, err := adapter.GetUserByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "lookup", u.Username)
	assert.Equal(t, "Test Keeper", u.Name)

	_, err = adapter.GetUserByID(ctx, userID+999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	adapter, _ := getMySQLAdapter(t)
	ctx := context.Background()

	createTestUser(t, adapter, "taken")

	_, err := adapter.CreateUser(ctx, &domain.User{
		Username:     "taken",
		PasswordHash: "hash",
		Name:         "Someone Else",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}
