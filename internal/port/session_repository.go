package port

import "context"

// SessionRepository maps opaque session tokens to user identifiers with a
// TTL. It replaces ambient server-side session state with an explicit store.
type SessionRepository interface {
	// Create mints a fresh token for userID.
	Create(ctx context.Context, userID int64) (string, error)

	// Get resolves a token, returning domain.ErrNoSession when it is
	// absent or expired.
	Get(ctx context.Context, token string) (int64, error)

	// Refresh extends the token's TTL. Missing tokens are not an error.
	Refresh(ctx context.Context, token string) error

	// Delete removes the token. Deleting a missing token is not an error.
	Delete(ctx context.Context, token string) error
}
