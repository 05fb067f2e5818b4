package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cybershield/threat-analyzer/internal/core"
	"github.com/cybershield/threat-analyzer/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnalyzeHandler exposes the scoring engine over HTTP.
type AnalyzeHandler struct {
	analyzer  *core.AnalysisService
	sanitizer *utils.ContentSanitizer
	store     core.ResultStore
	logger    *zap.Logger
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(analyzer *core.AnalysisService, sanitizer *utils.ContentSanitizer, store core.ResultStore, logger *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:  analyzer,
		sanitizer: sanitizer,
		store:     store,
		logger:    logger,
	}
}

// Register mounts the analyze route on the given router group.
func (h *AnalyzeHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.Analyze)
}

// Analyze handles POST /analyze — scores one piece of content and persists
// the anonymized record.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req core.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.ContentType {
	case core.ContentTypeEmail, core.ContentTypeURL, core.ContentTypeMessage:
	default:
		respondError(c, http.StatusBadRequest, "type must be one of: email, url, message")
		return
	}

	content, err := h.sanitizer.Sanitize(req.Content)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrEmptyContent):
			respondError(c, http.StatusBadRequest, "content must not be empty")
		case errors.Is(err, utils.ErrContentTooLarge):
			respondError(c, http.StatusBadRequest, "content exceeds maximum length")
		default:
			respondError(c, http.StatusBadRequest, "invalid content")
		}
		return
	}
	req.Content = content

	result, err := h.analyzer.Analyze(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("Analysis failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "analysis failed")
		return
	}

	RecordAnalysis(string(req.ContentType), string(result.Severity), result.RiskScore)

	if err := h.persist(c, &req, result); err != nil {
		// The verdict still goes back to the caller; only history is lost.
		h.logger.Error("Failed to persist analysis record", zap.Error(err))
	}

	respondOK(c, result)
}

// persist stores the anonymized record. Raw content never reaches the store;
// only the full SHA-256 hash and the verdict are kept.
func (h *AnalyzeHandler) persist(c *gin.Context, req *core.AnalysisRequest, result *core.AnalysisResult) error {
	detail, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return h.store.Save(c.Request.Context(), &core.AnalysisRecord{
		ID:               result.ID,
		InputHash:        core.HashContent(req.Content),
		InputType:        req.ContentType,
		ThreatType:       result.ThreatType,
		Severity:         result.Severity,
		RiskScore:        result.RiskScore,
		Confidence:       result.Confidence,
		Summary:          result.Summary,
		AnalyzedAt:       result.AnalyzedAt,
		ProcessingTimeMs: result.ProcessingTimeMs,
		ModelVersion:     result.ModelVersion,
		Detail:           detail,
	})
}
