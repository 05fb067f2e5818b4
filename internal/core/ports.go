package core

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned by a ResultStore when no record matches.
var ErrNotFound = errors.New("record not found")

// AnalysisRecord is the anonymized form of a result that may be persisted.
// It carries the full SHA-256 input hash but never the raw content.
type AnalysisRecord struct {
	ID               string
	InputHash        string
	InputType        ContentType
	ThreatType       ThreatType
	Severity         SeverityLevel
	RiskScore        int
	Confidence       int
	Summary          string
	AnalyzedAt       time.Time
	ProcessingTimeMs int64
	ModelVersion     string
	IsFalsePositive  bool

	// Detail holds the serialized AnalysisResult for the history detail view.
	Detail json.RawMessage
}

// Feedback is a user report on a prior analysis, keyed by input-hash prefix.
type Feedback struct {
	ID           string
	AnalysisHash string
	FeedbackType string
	Comment      string
	CreatedAt    time.Time
}

// ListFilter narrows and pages a history query. Empty string fields match
// everything.
type ListFilter struct {
	Severity   string
	ThreatType string
	InputType  string
	Page       int
	PageSize   int
}

// DashboardMetrics are the KPI aggregates shown on the dashboard.
type DashboardMetrics struct {
	TotalThreats      int     `json:"totalThreats"`
	HighRiskCount     int     `json:"highRiskCount"`
	ThreatsToday      int     `json:"threatsToday"`
	AvgRiskScore      float64 `json:"avgRiskScore"`
	DetectionRate     float64 `json:"detectionRate"`
	FalsePositiveRate float64 `json:"falsePositiveRate"`
}

// TrendPoint is one day in a threats-over-time series.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DashboardTrends are the chart aggregates for the last N days.
type DashboardTrends struct {
	ThreatsOverTime      []TrendPoint   `json:"threatsOverTime"`
	ThreatsByType        map[string]int `json:"threatsByType"`
	SeverityDistribution map[string]int `json:"severityDistribution"`
}

// ResultStore persists anonymized analysis records and feedback.
type ResultStore interface {
	// Save stores one anonymized record.
	Save(ctx context.Context, rec *AnalysisRecord) error

	// Get retrieves a record by id.
	Get(ctx context.Context, id string) (*AnalysisRecord, error)

	// List returns a page of records, newest first, plus the total count
	// matching the filter.
	List(ctx context.Context, f ListFilter) ([]*AnalysisRecord, int, error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int, error)

	// Metrics computes the dashboard KPI aggregates.
	Metrics(ctx context.Context) (*DashboardMetrics, error)

	// Trends computes per-day threat counts and distributions for the
	// trailing window of days.
	Trends(ctx context.Context, days int) (*DashboardTrends, error)

	// RecentAlerts returns the latest non-safe records, newest first.
	RecentAlerts(ctx context.Context, limit int) ([]*AnalysisRecord, error)

	// SaveFeedback stores a feedback record.
	SaveFeedback(ctx context.Context, fb *Feedback) error

	// MarkFalsePositive flags the record whose input hash starts with the
	// given prefix.
	MarkFalsePositive(ctx context.Context, hashPrefix string) error

	// Cleanup removes records older than the retention window.
	Cleanup(ctx context.Context) error
}
