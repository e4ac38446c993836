package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dukapro/dukapro/internal/core/domain"
)

// DebtManager is the slice of DebtService the HTTP layer needs.
type DebtManager interface {
	List(ctx context.Context, userID int64, statusFilter string) ([]domain.Debt, error)
	Create(ctx context.Context, userID int64, d domain.Debt) (int64, error)
	Update(ctx context.Context, userID, debtID int64, upd domain.DebtUpdate) error
	Delete(ctx context.Context, userID, debtID int64) error
}

type debtHandler struct {
	debts  DebtManager
	logger *zap.Logger
}

func newDebtHandler(debts DebtManager, logger *zap.Logger) *debtHandler {
	return &debtHandler{debts: debts, logger: logger}
}

func (h *debtHandler) handleList(c *gin.Context) {
	status := c.DefaultQuery("status", "all")

	debts, err := h.debts.List(c.Request.Context(), currentUserID(c), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": debts})
}

func (h *debtHandler) handleCreate(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		CustomerName  string            `json:"customer_name"`
		CustomerPhone string            `json:"customer_phone"`
		Amount        float64           `json:"amount"`
		Description   string            `json:"description"`
		Status        domain.DebtStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind debt request", zap.Int64("user_id", userID), zap.Error(err))
		respondBadJSON(c)
		return
	}

	id, err := h.debts.Create(c.Request.Context(), userID, domain.Debt{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Amount:        req.Amount,
		Description:   req.Description,
		Status:        req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Debt record created successfully",
		"debt_id": id,
	})
}

func (h *debtHandler) handleUpdate(c *gin.Context) {
	userID := currentUserID(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	var upd domain.DebtUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		h.logger.Warn("failed to bind debt update", zap.Int64("user_id", userID), zap.Error(err))
		respondBadJSON(c)
		return
	}

	if err := h.debts.Update(c.Request.Context(), userID, id, upd); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Debt record updated successfully"})
}

func (h *debtHandler) handleDelete(c *gin.Context) {
	userID := currentUserID(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.debts.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Debt record deleted successfully"})
}
