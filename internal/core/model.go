package core

import (
	"time"
)

// ContentType identifies what kind of content an AnalysisRequest carries.
type ContentType string

const (
	ContentTypeEmail   ContentType = "email"
	ContentTypeURL     ContentType = "url"
	ContentTypeMessage ContentType = "message"
)

// ThreatType is the classified category of malicious intent.
type ThreatType string

const (
	ThreatPhishing          ThreatType = "phishing"
	ThreatMalware           ThreatType = "malware"
	ThreatSpam              ThreatType = "spam"
	ThreatSocialEngineering ThreatType = "social_engineering"
	ThreatCredentialTheft   ThreatType = "credential_theft"
	ThreatURL               ThreatType = "url_threat"
	ThreatDataExfiltration  ThreatType = "data_exfiltration"
	ThreatSafe              ThreatType = "safe"
	ThreatUnknown           ThreatType = "unknown"
)

// SeverityLevel is the coarse-grained risk tier derived from total risk.
type SeverityLevel string

const (
	SeverityCritical SeverityLevel = "critical"
	SeverityHigh     SeverityLevel = "high"
	SeverityMedium   SeverityLevel = "medium"
	SeverityLow      SeverityLevel = "low"
	SeveritySafe     SeverityLevel = "safe"
)

// IndicatorKind distinguishes the four signal families an evaluator can emit.
type IndicatorKind string

const (
	IndicatorKeyword    IndicatorKind = "keyword"
	IndicatorURL        IndicatorKind = "url"
	IndicatorPattern    IndicatorKind = "pattern"
	IndicatorBehavioral IndicatorKind = "behavioral"
)

// FPLikelihood buckets how likely a verdict is a false positive.
type FPLikelihood string

const (
	FPLow    FPLikelihood = "low"
	FPMedium FPLikelihood = "medium"
	FPHigh   FPLikelihood = "high"
)

// AnalysisRequest is the normalized input to the engine. Content must already
// be trimmed and length-bounded (1..50,000 chars) by the caller.
type AnalysisRequest struct {
	ContentType ContentType `json:"type"`
	Content     string      `json:"content"`
}

// ThreatIndicator is a single detected signal. Value may be masked or
// redacted before it leaves the engine.
type ThreatIndicator struct {
	Kind             IndicatorKind `json:"type"`
	Value            string        `json:"value"`
	RiskContribution int           `json:"riskContribution"`
	Description      string        `json:"description"`
}

// RiskContribution is an aggregated, category-level risk amount. It is
// reported independently of individual indicators and the two lists are not
// guaranteed to sum identically.
type RiskContribution struct {
	Label    string `json:"label"`
	Value    int    `json:"value"`
	Category string `json:"category"`
}

// ExplanationSection is one block of the explainable verdict.
type ExplanationSection struct {
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Severity   SeverityLevel     `json:"severity"`
	Indicators []ThreatIndicator `json:"indicators,omitempty"`
}

// AnalysisResult is the full explainable verdict for one request. It is
// created once and never re-evaluated.
type AnalysisResult struct {
	ID                      string               `json:"id"`
	ThreatType              ThreatType           `json:"threatType"`
	Severity                SeverityLevel        `json:"severity"`
	RiskScore               int                  `json:"riskScore"`
	Confidence              int                  `json:"confidence"`
	Summary                 string               `json:"summary"`
	Explanation             []ExplanationSection `json:"explanation"`
	Indicators              []ThreatIndicator    `json:"indicators"`
	Recommendations         []string             `json:"recommendations"`
	RiskContributions       []RiskContribution   `json:"riskContributions"`
	AnalyzedAt              time.Time            `json:"analyzedAt"`
	InputHash               string               `json:"inputHash"`
	ProcessingTimeMs        int64                `json:"processingTimeMs"`
	ModelVersion            string               `json:"modelVersion"`
	FalsePositiveLikelihood FPLikelihood         `json:"falsePositiveLikelihood"`
}
