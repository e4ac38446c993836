package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dukapro/dukapro/internal/core/domain"
)

// SaleRecorder is the slice of SaleService the HTTP layer needs.
type SaleRecorder interface {
	RecordSale(ctx context.Context, userID int64, lines []domain.SaleLine, declaredTotal float64) (int64, error)
	ListSales(ctx context.Context, userID int64) ([]domain.Sale, error)
}

type saleHandler struct {
	sales  SaleRecorder
	logger *zap.Logger
}

func newSaleHandler(sales SaleRecorder, logger *zap.Logger) *saleHandler {
	return &saleHandler{sales: sales, logger: logger}
}

type createSaleRequest struct {
	Items       []domain.SaleLine `json:"items"`
	TotalAmount float64           `json:"total_amount"`
}

func (h *saleHandler) handleCreateSale(c *gin.Context) {
	userID := currentUserID(c)

	var req createSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind sale request", zap.Int64("user_id", userID), zap.Error(err))
		respondBadJSON(c)
		return
	}

	saleID, err := h.sales.RecordSale(c.Request.Context(), userID, req.Items, req.TotalAmount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sale recorded successfully",
		"sale_id": saleID,
	})
}

func (h *saleHandler) handleListSales(c *gin.Context) {
	userID := currentUserID(c)

	sales, err := h.sales.ListSales(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": sales})
}
