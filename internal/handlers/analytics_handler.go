package handlers

import (
	"net/http"

	"github.com/casaledger/casaledger-api/internal/services"
	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsSvc *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsSvc *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

// @Summary Dashboard Summary
// @Description Returns cash and bank totals, monthly expenses and entity counts. Results are cached briefly.
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.DashboardResponse
// @Security BearerAuth
// @Router /analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	summary, err := h.analyticsSvc.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary.ToResponse())
}

// @Summary Refresh Dashboard
// @Description Recomputes the dashboard summary, bypassing the cache (Admin)
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.DashboardResponse
// @Security BearerAuth
// @Router /analytics/dashboard/refresh [post]
func (h *AnalyticsHandler) Refresh(c *gin.Context) {
	summary, err := h.analyticsSvc.RefreshCache(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary.ToResponse())
}
