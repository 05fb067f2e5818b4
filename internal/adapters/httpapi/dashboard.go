package httpapi

import (
	"net/http"
	"strconv"

	"github.com/cybershield/threat-analyzer/internal/core"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const recentAlertLimit = 5

// DashboardHandler serves the aggregate views backing the dashboard UI.
type DashboardHandler struct {
	store  core.ResultStore
	logger *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(store core.ResultStore, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{store: store, logger: logger}
}

// Register mounts the dashboard routes on the given router group.
func (h *DashboardHandler) Register(rg *gin.RouterGroup) {
	d := rg.Group("/dashboard")
	{
		d.GET("/metrics", h.Metrics)
		d.GET("/trends", h.Trends)
		d.GET("/stats", h.Stats)
	}
}

// Metrics handles GET /dashboard/metrics — the KPI aggregates.
func (h *DashboardHandler) Metrics(c *gin.Context) {
	m, err := h.store.Metrics(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to compute metrics", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to compute metrics")
		return
	}
	respondOK(c, m)
}

// Trends handles GET /dashboard/trends?days=N — per-day threat series and
// distributions. days must be in 1..30 and defaults to 7.
func (h *DashboardHandler) Trends(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 || days > 30 {
		respondError(c, http.StatusBadRequest, "days must be an integer between 1 and 30")
		return
	}

	t, err := h.store.Trends(c.Request.Context(), days)
	if err != nil {
		h.logger.Error("Failed to compute trends", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to compute trends")
		return
	}
	respondOK(c, t)
}

// Stats handles GET /dashboard/stats — the KPI aggregates plus the most
// recent non-safe analyses.
func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	m, err := h.store.Metrics(ctx)
	if err != nil {
		h.logger.Error("Failed to compute metrics", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	alerts, err := h.store.RecentAlerts(ctx, recentAlertLimit)
	if err != nil {
		h.logger.Error("Failed to query recent alerts", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	items := make([]historyItem, 0, len(alerts))
	for _, rec := range alerts {
		items = append(items, toHistoryItem(rec))
	}

	respondOK(c, gin.H{
		"metrics":      m,
		"recentAlerts": items,
	})
}
