package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalysisService is the threat-scoring engine. It holds the immutable rule
// tables and is safe for concurrent use; each analysis is a pure computation
// over one request with no shared mutable state.
type AnalysisService struct {
	evaluators   map[ContentType]evaluator
	fallback     evaluator
	logger       *zap.Logger
	modelVersion string
}

// NewAnalysisService creates an engine instance with a freshly built pattern
// library.
func NewAnalysisService(logger *zap.Logger, modelVersion string) *AnalysisService {
	patterns := NewPatternLibrary()
	message := &messageEvaluator{patterns: patterns}
	return &AnalysisService{
		evaluators: map[ContentType]evaluator{
			ContentTypeEmail:   &emailEvaluator{patterns: patterns},
			ContentTypeURL:     &urlEvaluator{patterns: patterns},
			ContentTypeMessage: message,
		},
		// Unrecognized content types fall through to the message rules; the
		// boundary rejects them before they get here.
		fallback:     message,
		logger:       logger,
		modelVersion: modelVersion,
	}
}

// Analyze routes the request to its evaluator and assembles the full verdict.
// It always returns a result, degrading to safe/unknown when no rule fires.
func (s *AnalysisService) Analyze(ctx context.Context, req *AnalysisRequest) (*AnalysisResult, error) {
	start := time.Now()
	lower := strings.ToLower(req.Content)

	ev, ok := s.evaluators[req.ContentType]
	if !ok {
		ev = s.fallback
	}
	out := ev.evaluate(req.Content, lower)

	explanation := out.explanations
	if len(explanation) == 0 {
		explanation = []ExplanationSection{out.safeExplanation}
	}

	indicators := out.indicators
	if indicators == nil {
		indicators = []ThreatIndicator{}
	}
	contributions := out.contributions
	if contributions == nil {
		contributions = []RiskContribution{}
	}

	result := &AnalysisResult{
		ID:                      uuid.NewString(),
		ThreatType:              out.threatType,
		Severity:                out.severity,
		RiskScore:               min(out.totalRisk, 100),
		Confidence:              out.confidence,
		Summary:                 generateSummary(out.threatType, out.severity, out.totalRisk, len(out.indicators)),
		Explanation:             explanation,
		Indicators:              indicators,
		Recommendations:         generateRecommendations(out.threatType, out.severity),
		RiskContributions:       contributions,
		AnalyzedAt:              time.Now().UTC(),
		InputHash:               HashContent(req.Content)[:16],
		ProcessingTimeMs:        time.Since(start).Milliseconds(),
		ModelVersion:            s.modelVersion,
		FalsePositiveLikelihood: falsePositiveLikelihood(out.confidence),
	}

	s.logger.Debug("Analysis complete",
		zap.String("content_type", string(req.ContentType)),
		zap.String("threat_type", string(result.ThreatType)),
		zap.String("severity", string(result.Severity)),
		zap.Int("risk_score", result.RiskScore),
		zap.Int("confidence", result.Confidence),
		zap.Int64("processing_ms", result.ProcessingTimeMs))

	return result, nil
}

// ModelVersion reports the constant version string stamped on results.
func (s *AnalysisService) ModelVersion() string {
	return s.modelVersion
}

// HashContent returns the full hex SHA-256 of content, used for
// privacy-preserving correlation and storage.
func HashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
