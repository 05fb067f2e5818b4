package store

import (
	"context"
	"testing"
	"time"

	"github.com/cybershield/threat-analyzer/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore(time.Hour, time.Hour, zap.NewNop())
	t.Cleanup(s.Stop)
	return s
}

func testRecord(id string, sev core.SeverityLevel, tt core.ThreatType, age time.Duration) *core.AnalysisRecord {
	return &core.AnalysisRecord{
		ID:         id,
		InputHash:  "hash-" + id,
		InputType:  core.ContentTypeEmail,
		ThreatType: tt,
		Severity:   sev,
		RiskScore:  50,
		Confidence: 80,
		AnalyzedAt: time.Now().UTC().Add(-age),
	}
}

func TestMemoryStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("a", core.SeverityHigh, core.ThreatPhishing, 0)
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, rec.InputHash, got.InputHash)
	assert.Equal(t, core.SeverityHigh, got.Severity)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestMemoryStore_ListFiltersAndPages(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testRecord("a", core.SeverityHigh, core.ThreatPhishing, 3*time.Minute)))
	require.NoError(t, s.Save(ctx, testRecord("b", core.SeveritySafe, core.ThreatSafe, 2*time.Minute)))
	require.NoError(t, s.Save(ctx, testRecord("c", core.SeverityHigh, core.ThreatSpam, time.Minute)))

	recs, total, err := s.List(ctx, core.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, recs, 3)
	assert.Equal(t, "c", recs[0].ID, "newest record first")

	recs, total, err = s.List(ctx, core.ListFilter{Severity: "high"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, recs, 2)

	recs, total, err = s.List(ctx, core.ListFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, recs, 1)
	assert.Equal(t, "a", recs[0].ID)

	recs, _, err = s.List(ctx, core.ListFilter{Page: 5, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestMemoryStore_Metrics(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testRecord("a", core.SeverityCritical, core.ThreatPhishing, 0)))
	require.NoError(t, s.Save(ctx, testRecord("b", core.SeverityMedium, core.ThreatSpam, 0)))
	safe := testRecord("c", core.SeveritySafe, core.ThreatSafe, 0)
	safe.RiskScore = 0
	require.NoError(t, s.Save(ctx, safe))
	require.NoError(t, s.MarkFalsePositive(ctx, "hash-b"))

	m, err := s.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, m.TotalThreats)
	assert.Equal(t, 1, m.HighRiskCount)
	assert.Equal(t, 2, m.ThreatsToday)
	assert.InDelta(t, 33.3, m.AvgRiskScore, 0.05)
	assert.InDelta(t, 66.7, m.DetectionRate, 0.05)
	assert.InDelta(t, 33.3, m.FalsePositiveRate, 0.05)
}

func TestMemoryStore_MetricsEmpty(t *testing.T) {
	s := newTestStore(t)

	m, err := s.Metrics(context.Background())
	require.NoError(t, err)
	assert.Zero(t, m.TotalThreats)
	assert.Zero(t, m.AvgRiskScore)
}

func TestMemoryStore_Trends(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testRecord("a", core.SeverityHigh, core.ThreatPhishing, 0)))
	require.NoError(t, s.Save(ctx, testRecord("b", core.SeverityHigh, core.ThreatPhishing, 0)))
	require.NoError(t, s.Save(ctx, testRecord("c", core.SeveritySafe, core.ThreatSafe, 0)))
	// Outside the 7-day window
	require.NoError(t, s.Save(ctx, testRecord("d", core.SeverityCritical, core.ThreatSpam, 10*24*time.Hour)))

	tr, err := s.Trends(ctx, 7)
	require.NoError(t, err)
	require.Len(t, tr.ThreatsOverTime, 7)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), tr.ThreatsOverTime[6].Date)
	assert.Equal(t, 2, tr.ThreatsOverTime[6].Count, "safe records are not threats")
	assert.Equal(t, map[string]int{"phishing": 2}, tr.ThreatsByType)
	assert.Equal(t, map[string]int{"high": 2, "safe": 1}, tr.SeverityDistribution)
}

func TestMemoryStore_RecentAlerts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testRecord("a", core.SeverityHigh, core.ThreatPhishing, 3*time.Minute)))
	require.NoError(t, s.Save(ctx, testRecord("b", core.SeveritySafe, core.ThreatSafe, 2*time.Minute)))
	require.NoError(t, s.Save(ctx, testRecord("c", core.SeverityCritical, core.ThreatSpam, time.Minute)))

	alerts, err := s.RecentAlerts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "c", alerts[0].ID)

	alerts, err = s.RecentAlerts(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, alerts, 1)
}

func TestMemoryStore_MarkFalsePositive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("a", core.SeverityHigh, core.ThreatPhishing, 0)
	rec.InputHash = "abcdef0123456789"
	require.NoError(t, s.Save(ctx, rec))

	require.NoError(t, s.MarkFalsePositive(ctx, "abcdef01"))
	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, got.IsFalsePositive)

	assert.ErrorIs(t, s.MarkFalsePositive(ctx, "ffff"), core.ErrNotFound)
}

func TestMemoryStore_Cleanup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testRecord("old", core.SeverityHigh, core.ThreatPhishing, 2*time.Hour)))
	require.NoError(t, s.Save(ctx, testRecord("new", core.SeverityHigh, core.ThreatPhishing, time.Minute)))

	require.NoError(t, s.Cleanup(ctx))

	_, err := s.Get(ctx, "old")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = s.Get(ctx, "new")
	assert.NoError(t, err)
}

func TestMemoryStore_SaveFeedback(t *testing.T) {
	s := newTestStore(t)

	err := s.SaveFeedback(context.Background(), &core.Feedback{
		ID:           "fb1",
		AnalysisHash: "abcd",
		FeedbackType: "false_positive",
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)
}
