package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dukapro/dukapro/internal/core/domain"
)

// StatsProvider is the slice of DashboardService the HTTP layer needs.
type StatsProvider interface {
	Stats(ctx context.Context, userID int64) (*domain.DashboardStats, error)
}

type dashboardHandler struct {
	stats StatsProvider
}

func newDashboardHandler(stats StatsProvider) *dashboardHandler {
	return &dashboardHandler{stats: stats}
}

func (h *dashboardHandler) handleStats(c *gin.Context) {
	stats, err := h.stats.Stats(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}
