package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dukapro/dukapro/internal/core/domain"
)

// AuthManager is the slice of AuthService the HTTP layer needs.
type AuthManager interface {
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
	Register(ctx context.Context, username, password, name string) (*domain.User, error)
	Authenticate(ctx context.Context, token string) (int64, error)
	SessionUser(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
}

type authHandler struct {
	auth         AuthManager
	cookieMaxAge int
	logger       *zap.Logger
}

func newAuthHandler(auth AuthManager, cookieMaxAge int, logger *zap.Logger) *authHandler {
	return &authHandler{auth: auth, cookieMaxAge: cookieMaxAge, logger: logger}
}

func userPayload(u *domain.User) gin.H {
	return gin.H{"id": u.ID, "username": u.Username, "name": u.Name}
}

func (h *authHandler) handleLogin(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind login request", zap.Error(err))
		respondBadJSON(c)
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid username or password",
			})
			return
		}
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, token, h.cookieMaxAge)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": userPayload(user)})
}

func (h *authHandler) handleRegister(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind register request", zap.Error(err))
		respondBadJSON(c)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   "Username already taken",
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created successfully",
		"user":    userPayload(user),
	})
}

// handleSession reports whether the caller holds a live session. It never
// fails: an absent or stale cookie is just loggedIn=false.
func (h *authHandler) handleSession(c *gin.Context) {
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"loggedIn": false})
		return
	}

	user, err := h.auth.SessionUser(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"loggedIn": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"loggedIn": true, "user": userPayload(user)})
}

func (h *authHandler) handleLogout(c *gin.Context) {
	token, err := c.Cookie(SessionCookie)
	if err == nil {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil {
			h.logger.Warn("failed to delete session", zap.Error(err))
		}
	}

	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *authHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", false, true)
}
