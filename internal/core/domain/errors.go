package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a row does not exist or is owned by a
	// different user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("record not found")

	// ErrNoSession is returned when a session token has no live mapping.
	ErrNoSession = errors.New("no active session")

	// ErrInvalidCredentials covers both unknown username and wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUsernameTaken is returned when registering a duplicate username.
	ErrUsernameTaken = errors.New("username already taken")
)

// ValidationError enumerates the invalid fields of a request. It maps to an
// HTTP 400 with the details echoed back to the caller.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Details)
}

// InsufficientStockError means a sale line's conditional decrement matched
// zero rows: the product is out of stock, missing, or owned by someone else.
type InsufficientStockError struct {
	ProductID int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}
