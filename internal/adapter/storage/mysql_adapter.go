package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dukapro/dukapro/internal/core/domain"
)

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// CreateSale inserts the sale header and its line items and decrements the
// stock of every referenced product inside one transaction. Each decrement
// is a single conditional UPDATE; the affected-row count is the only
// success signal, so a concurrent sale can never drive stock negative.
func (m *MySQLAdapter) CreateSale(ctx context.Context, userID int64, lines []domain.SaleLine, total float64) (int64, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO sales (user_id, total_amount)
		VALUES (?, ?)`,
		userID, total,
	)
	if err != nil {
		return 0, fmt.Errorf("insert sale: %w", err)
	}

	saleID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sale id: %w", err)
	}

	for _, line := range lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sale_items (sale_id, item_id, quantity, unit_price)
			VALUES (?, ?, ?, ?)`,
			saleID, line.ProductID, line.Quantity, line.UnitPrice,
		)
		if err != nil {
			// A missing product trips the item_id foreign key here, before
			// the decrement ever runs. Same outcome for the caller.
			if isFKViolation(err) {
				return 0, &domain.InsufficientStockError{ProductID: line.ProductID}
			}
			return 0, fmt.Errorf("insert sale item: %w", err)
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE items
			SET quantity = quantity - ?
			WHERE id = ? AND user_id = ? AND quantity >= ?`,
			line.Quantity, line.ProductID, userID, line.Quantity,
		)
		if err != nil {
			return 0, fmt.Errorf("update stock: %w", err)
		}

		rows, _ := result.RowsAffected()
		if rows == 0 {
			return 0, &domain.InsufficientStockError{ProductID: line.ProductID}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit sale: %w", err)
	}

	return saleID, nil
}

func (m *MySQLAdapter) ListSales(ctx context.Context, userID int64) ([]domain.Sale, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT s.id, s.user_id, s.total_amount, s.sale_date,
		       COALESCE(GROUP_CONCAT(CONCAT(si.quantity, 'x ', i.name) SEPARATOR ', '), '')
		FROM sales s
		LEFT JOIN sale_items si ON s.id = si.sale_id
		LEFT JOIN items i ON si.item_id = i.id
		WHERE s.user_id = ?
		GROUP BY s.id
		ORDER BY s.sale_date DESC, s.id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	sales := make([]domain.Sale, 0)
	for rows.Next() {
		var s domain.Sale
		if err := rows.Scan(&s.ID, &s.UserID, &s.TotalAmount, &s.SaleDate, &s.ItemsDescription); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (m *MySQLAdapter) ListProducts(ctx context.Context, userID int64) ([]domain.Product, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, user_id, name, description, price, quantity, category, created_at, updated_at
		FROM items
		WHERE user_id = ?
		ORDER BY name`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Price,
			&p.Quantity, &p.Category, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (m *MySQLAdapter) GetProduct(ctx context.Context, userID, productID int64) (*domain.Product, error) {
	var p domain.Product
	err := m.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, description, price, quantity, category, created_at, updated_at
		FROM items
		WHERE id = ? AND user_id = ?`, productID, userID,
	).Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Price,
		&p.Quantity, &p.Category, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query item: %w", err)
	}
	return &p, nil
}

func (m *MySQLAdapter) CreateProduct(ctx context.Context, p *domain.Product) (int64, error) {
	res, err := m.db.ExecContext(ctx, `
		INSERT INTO items (user_id, name, description, price, quantity, category)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Name, p.Description, p.Price, p.Quantity, p.Category,
	)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	return res.LastInsertId()
}

func (m *MySQLAdapter) UpdateProduct(ctx context.Context, userID, productID int64, upd domain.ProductUpdate) error {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 7)
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *upd.Price)
	}
	if upd.Quantity != nil {
		sets = append(sets, "quantity = ?")
		args = append(args, *upd.Quantity)
	}
	if upd.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *upd.Category)
	}
	if len(sets) == 0 {
		return fmt.Errorf("update item: no fields")
	}

	args = append(args, productID, userID)
	result, err := m.db.ExecContext(ctx,
		"UPDATE items SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?",
		args...,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		// MySQL reports zero affected rows both for a missing row and for
		// an update that carried the same values; only the former is an error.
		if _, err := m.GetProduct(ctx, userID, productID); err != nil {
			return err
		}
	}
	return nil
}

func (m *MySQLAdapter) DeleteProduct(ctx context.Context, userID, productID int64) error {
	result, err := m.db.ExecContext(ctx,
		`DELETE FROM items WHERE id = ? AND user_id = ?`, productID, userID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *MySQLAdapter) ListDebts(ctx context.Context, userID int64, status domain.DebtStatus) ([]domain.Debt, error) {
	query := `
		SELECT id, user_id, customer_name, customer_phone, amount, description, status, created_at
		FROM debts
		WHERE user_id = ?`
	args := []any{userID}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query debts: %w", err)
	}
	defer rows.Close()

	debts := make([]domain.Debt, 0)
	for rows.Next() {
		var d domain.Debt
		err := rows.Scan(&d.ID, &d.UserID, &d.CustomerName, &d.CustomerPhone,
			&d.Amount, &d.Description, &d.Status, &d.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

func (m *MySQLAdapter) CreateDebt(ctx context.Context, d *domain.Debt) (int64, error) {
	res, err := m.db.ExecContext(ctx, `
		INSERT INTO debts (user_id, customer_name, customer_phone, amount, description, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.UserID, d.CustomerName, d.CustomerPhone, d.Amount, d.Description, d.Status,
	)
	if err != nil {
		return 0, fmt.Errorf("insert debt: %w", err)
	}
	return res.LastInsertId()
}

func (m *MySQLAdapter) UpdateDebt(ctx context.Context, userID, debtID int64, upd domain.DebtUpdate) error {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 7)
	if upd.CustomerName != nil {
		sets = append(sets, "customer_name = ?")
		args = append(args, *upd.CustomerName)
	}
	if upd.CustomerPhone != nil {
		sets = append(sets, "customer_phone = ?")
		args = append(args, *upd.CustomerPhone)
	}
	if upd.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, *upd.Amount)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *upd.Status)
	}
	if len(sets) == 0 {
		return fmt.Errorf("update debt: no fields")
	}

	args = append(args, debtID, userID)
	result, err := m.db.ExecContext(ctx,
		"UPDATE debts SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?",
		args...,
	)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		var exists bool
		err := m.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM debts WHERE id = ? AND user_id = ?)`,
			debtID, userID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check debt: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (m *MySQLAdapter) DeleteDebt(ctx context.Context, userID, debtID int64) error {
	result, err := m.db.ExecContext(ctx,
		`DELETE FROM debts WHERE id = ? AND user_id = ?`, debtID, userID)
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *MySQLAdapter) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := m.db.QueryRowContext(ctx, `
		SELECT id, username, password, name, created_at
		FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

func (m *MySQLAdapter) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := m.db.QueryRowContext(ctx, `
		SELECT id, username, password, name, created_at
		FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

func (m *MySQLAdapter) CreateUser(ctx context.Context, u *domain.User) (int64, error) {
	res, err := m.db.ExecContext(ctx, `
		INSERT INTO users (username, password, name)
		VALUES (?, ?, ?)`,
		u.Username, u.PasswordHash, u.Name,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, domain.ErrUsernameTaken
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return res.LastInsertId()
}

func (m *MySQLAdapter) DashboardStats(ctx context.Context, userID int64) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{RecentSales: make([]domain.RecentSale, 0, 5)}

	err := m.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE user_id = ?`, userID,
	).Scan(&stats.TotalProducts)
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}

	err = m.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM sales
		WHERE user_id = ? AND DATE(sale_date) = CURDATE()`, userID,
	).Scan(&stats.TodaySales, &stats.TodayRevenue)
	if err != nil {
		return nil, fmt.Errorf("today sales: %w", err)
	}

	err = m.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(amount), 0)
		FROM debts
		WHERE user_id = ? AND status = 'pending'`, userID,
	).Scan(&stats.PendingDebts, &stats.TotalDebts)
	if err != nil {
		return nil, fmt.Errorf("pending debts: %w", err)
	}

	err = m.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE user_id = ? AND quantity < 10`, userID,
	).Scan(&stats.LowStockItems)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT s.id, s.total_amount, s.sale_date, COUNT(si.id)
		FROM sales s
		LEFT JOIN sale_items si ON s.id = si.sale_id
		WHERE s.user_id = ?
		GROUP BY s.id
		ORDER BY s.sale_date DESC, s.id DESC
		LIMIT 5`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("recent sales: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rs domain.RecentSale
		if err := rows.Scan(&rs.ID, &rs.TotalAmount, &rs.SaleDate, &rs.ItemsCount); err != nil {
			return nil, fmt.Errorf("scan recent sale: %w", err)
		}
		stats.RecentSales = append(stats.RecentSales, rs)
	}
	return stats, rows.Err()
}
