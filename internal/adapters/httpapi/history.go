package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/cybershield/threat-analyzer/internal/core"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HistoryHandler exposes the stored analysis history.
type HistoryHandler struct {
	store  core.ResultStore
	logger *zap.Logger
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(store core.ResultStore, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{store: store, logger: logger}
}

// Register mounts the history routes on the given router group.
func (h *HistoryHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/history", h.List)
	rg.GET("/history/:id", h.Get)
}

// historyItem is the list-view projection of a stored record. The input hash
// is truncated to its 16-character prefix, matching the analyze response.
type historyItem struct {
	ID         string `json:"id"`
	InputHash  string `json:"inputHash"`
	Type       string `json:"type"`
	ThreatType string `json:"threatType"`
	Severity   string `json:"severity"`
	RiskScore  int    `json:"riskScore"`
	Confidence int    `json:"confidence"`
	Summary    string `json:"summary"`
	AnalyzedAt string `json:"analyzedAt"`
}

func toHistoryItem(rec *core.AnalysisRecord) historyItem {
	hash := rec.InputHash
	if len(hash) > 16 {
		hash = hash[:16]
	}
	return historyItem{
		ID:         rec.ID,
		InputHash:  hash,
		Type:       string(rec.InputType),
		ThreatType: string(rec.ThreatType),
		Severity:   string(rec.Severity),
		RiskScore:  rec.RiskScore,
		Confidence: rec.Confidence,
		Summary:    rec.Summary,
		AnalyzedAt: rec.AnalyzedAt.UTC().Format(time.RFC3339),
	}
}

// List handles GET /history — a filtered, paginated page of past analyses.
func (h *HistoryHandler) List(c *gin.Context) {
	f := core.ListFilter{
		Severity:   c.Query("severity"),
		ThreatType: c.Query("threatType"),
		InputType:  c.Query("type"),
	}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.PageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	recs, total, err := h.store.List(c.Request.Context(), f)
	if err != nil {
		h.logger.Error("Failed to list history", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to query history")
		return
	}

	items := make([]historyItem, 0, len(recs))
	for _, rec := range recs {
		items = append(items, toHistoryItem(rec))
	}

	respondOK(c, gin.H{
		"items":    items,
		"total":    total,
		"page":     max(f.Page, 1),
		"pageSize": f.PageSize,
	})
}

// Get handles GET /history/:id — the full stored verdict for one analysis.
func (h *HistoryHandler) Get(c *gin.Context) {
	rec, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			respondError(c, http.StatusNotFound, "analysis not found")
			return
		}
		h.logger.Error("Failed to get history record", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to query history")
		return
	}

	respondOK(c, gin.H{
		"record": toHistoryItem(rec),
		"result": json.RawMessage(rec.Detail),
	})
}
