package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dukapro/dukapro/internal/core/domain"
)

// ProductManager is the slice of ProductService the HTTP layer needs.
type ProductManager interface {
	List(ctx context.Context, userID int64) ([]domain.Product, error)
	Create(ctx context.Context, userID int64, p domain.Product) (int64, error)
	Update(ctx context.Context, userID, productID int64, upd domain.ProductUpdate) error
	Delete(ctx context.Context, userID, productID int64) error
}

type productHandler struct {
	products ProductManager
	logger   *zap.Logger
}

func newProductHandler(products ProductManager, logger *zap.Logger) *productHandler {
	return &productHandler{products: products, logger: logger}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"details": []string{"invalid id"},
		})
		return 0, false
	}
	return id, true
}

func (h *productHandler) handleList(c *gin.Context) {
	products, err := h.products.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
}

func (h *productHandler) handleCreate(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Quantity    int     `json:"quantity"`
		Category    string  `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind product request", zap.Int64("user_id", userID), zap.Error(err))
		respondBadJSON(c)
		return
	}

	id, err := h.products.Create(c.Request.Context(), userID, domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product created successfully",
		"id":      id,
	})
}

func (h *productHandler) handleUpdate(c *gin.Context) {
	userID := currentUserID(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	var upd domain.ProductUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		h.logger.Warn("failed to bind product update", zap.Int64("user_id", userID), zap.Error(err))
		respondBadJSON(c)
		return
	}

	if err := h.products.Update(c.Request.Context(), userID, id, upd); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product updated successfully"})
}

func (h *productHandler) handleDelete(c *gin.Context) {
	userID := currentUserID(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
}
