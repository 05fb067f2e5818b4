package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/cybershield/threat-analyzer/internal/core"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FeedbackHandler accepts user reports on prior analyses.
type FeedbackHandler struct {
	store  core.ResultStore
	logger *zap.Logger
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(store core.ResultStore, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{store: store, logger: logger}
}

// Register mounts the feedback route on the given router group.
func (h *FeedbackHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/feedback", h.Submit)
}

type feedbackRequest struct {
	AnalysisHash string `json:"analysisHash" binding:"required"`
	FeedbackType string `json:"feedbackType" binding:"required"`
	Comment      string `json:"comment"`
}

// Submit handles POST /feedback. A false_positive report additionally flags
// the matching records so the dashboard's false-positive rate reflects it.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "analysisHash and feedbackType are required")
		return
	}

	switch req.FeedbackType {
	case "false_positive", "false_negative", "accurate":
	default:
		respondError(c, http.StatusBadRequest, "feedbackType must be one of: false_positive, false_negative, accurate")
		return
	}

	ctx := c.Request.Context()
	fb := &core.Feedback{
		ID:           uuid.NewString(),
		AnalysisHash: req.AnalysisHash,
		FeedbackType: req.FeedbackType,
		Comment:      req.Comment,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.store.SaveFeedback(ctx, fb); err != nil {
		h.logger.Error("Failed to save feedback", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to save feedback")
		return
	}

	if req.FeedbackType == "false_positive" {
		if err := h.store.MarkFalsePositive(ctx, req.AnalysisHash); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				respondError(c, http.StatusNotFound, "no analysis matches the given hash")
				return
			}
			h.logger.Error("Failed to mark false positive", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "failed to record false positive")
			return
		}
	}

	respondOK(c, gin.H{"id": fb.ID})
}
