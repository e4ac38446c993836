package domain

import "time"

type DebtStatus string

const (
	DebtStatusPending DebtStatus = "pending"
	DebtStatusPaid    DebtStatus = "paid"
)

// ValidDebtStatus reports whether s is a persistable debt status.
func ValidDebtStatus(s DebtStatus) bool {
	return s == DebtStatusPending || s == DebtStatusPaid
}

type Debt struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	Amount        float64    `json:"amount"`
	Description   string     `json:"description"`
	Status        DebtStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}

// DebtUpdate carries the writable debt fields for a partial update.
type DebtUpdate struct {
	CustomerName  *string     `json:"customer_name"`
	CustomerPhone *string     `json:"customer_phone"`
	Amount        *float64    `json:"amount"`
	Description   *string     `json:"description"`
	Status        *DebtStatus `json:"status"`
}
