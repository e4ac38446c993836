package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dukapro/dukapro/internal/core/domain"
	"github.com/dukapro/dukapro/internal/port"
)

// AuthService verifies credentials and manages the session lifecycle.
type AuthService struct {
	users    port.UserRepository
	sessions port.SessionRepository
	logger   *zap.Logger
}

func NewAuthService(users port.UserRepository, sessions port.SessionRepository, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{users: users, sessions: sessions, logger: logger}
}

// Login verifies the password against the stored bcrypt hash and opens a
// session. Unknown usernames and wrong passwords are indistinguishable to
// the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		s.logger.Error("user lookup failed", zap.String("username", username), zap.Error(err))
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to create session", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return user, token, nil
}

// Register creates a new shopkeeper account.
func (s *AuthService) Register(ctx context.Context, username, password, name string) (*domain.User, error) {
	var details []string
	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)
	if username == "" {
		details = append(details, "Field 'username' is required")
	}
	if len(password) < 6 {
		details = append(details, "Field 'password' must be at least 6 characters")
	}
	if name == "" {
		details = append(details, "Field 'name' is required")
	}
	if len(details) > 0 {
		return nil, &domain.ValidationError{Details: details}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Name:         name,
	}

	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		if !errors.Is(err, domain.ErrUsernameTaken) {
			s.logger.Error("failed to create user", zap.String("username", username), zap.Error(err))
		}
		return nil, err
	}
	user.ID = id

	s.logger.Info("user registered", zap.Int64("user_id", id), zap.String("username", username))
	return user, nil
}

// Authenticate resolves a session token to a user id, sliding the TTL on hit.
func (s *AuthService) Authenticate(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, domain.ErrNoSession
	}

	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		return 0, err
	}

	if err := s.sessions.Refresh(ctx, token); err != nil {
		s.logger.Warn("session refresh failed", zap.Error(err))
	}
	return userID, nil
}

// SessionUser resolves a session token to the full user record, so a page
// reload can restore the logged-in identity. A session whose user has since
// been deleted counts as no session.
func (s *AuthService) SessionUser(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoSession
		}
		s.logger.Error("user lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// Logout closes the session. A missing token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}
