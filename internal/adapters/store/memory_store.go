package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cybershield/threat-analyzer/internal/core"
	"go.uber.org/zap"
)

// MemoryStore is an in-memory implementation of the ResultStore interface.
// Records are lost on restart; it is the default for demo deployments.
type MemoryStore struct {
	records     map[string]*core.AnalysisRecord
	feedback    []*core.Feedback
	mu          sync.RWMutex
	logger      *zap.Logger
	retention   time.Duration
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewMemoryStore creates a new in-memory result store
func NewMemoryStore(retention, cleanupFreq time.Duration, logger *zap.Logger) *MemoryStore {
	s := &MemoryStore{
		records:     make(map[string]*core.AnalysisRecord),
		logger:      logger,
		retention:   retention,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	// Start background cleanup
	go s.startCleanupTask()

	return s
}

// Save stores one anonymized record
func (s *MemoryStore) Save(ctx context.Context, rec *core.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	s.records[rec.ID] = &cp
	return nil
}

// Get retrieves a record by id
func (s *MemoryStore) Get(ctx context.Context, id string) (*core.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

// List returns a page of records, newest first, plus the total match count
func (s *MemoryStore) List(ctx context.Context, f core.ListFilter) ([]*core.AnalysisRecord, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*core.AnalysisRecord, 0, len(s.records))
	for _, rec := range s.records {
		if !matchesFilter(rec, f) {
			continue
		}
		matched = append(matched, rec)
	}
	sortNewestFirst(matched)

	total := len(matched)
	page, size := normalizePage(f.Page, f.PageSize)
	start := (page - 1) * size
	if start >= total {
		return []*core.AnalysisRecord{}, total, nil
	}
	end := min(start+size, total)

	out := make([]*core.AnalysisRecord, 0, end-start)
	for _, rec := range matched[start:end] {
		cp := *rec
		out = append(out, &cp)
	}
	return out, total, nil
}

// Count returns the total number of stored records
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Metrics computes the dashboard KPI aggregates
func (s *MemoryStore) Metrics(ctx context.Context) (*core.DashboardMetrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := &core.DashboardMetrics{}
	total := len(s.records)
	if total == 0 {
		return m, nil
	}

	dayStart := time.Now().UTC().Truncate(24 * time.Hour)
	riskSum := 0
	fpCount := 0
	for _, rec := range s.records {
		riskSum += rec.RiskScore
		if rec.IsFalsePositive {
			fpCount++
		}
		if rec.Severity == core.SeveritySafe {
			continue
		}
		m.TotalThreats++
		if rec.Severity == core.SeverityCritical || rec.Severity == core.SeverityHigh {
			m.HighRiskCount++
		}
		if !rec.AnalyzedAt.Before(dayStart) {
			m.ThreatsToday++
		}
	}
	m.AvgRiskScore = round1(float64(riskSum) / float64(total))
	m.DetectionRate = round1(float64(m.TotalThreats) / float64(total) * 100)
	m.FalsePositiveRate = round1(float64(fpCount) / float64(total) * 100)
	return m, nil
}

// Trends computes per-day counts and distributions for the trailing window
func (s *MemoryStore) Trends(ctx context.Context, days int) (*core.DashboardTrends, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t := newTrendWindow(time.Now().UTC(), days)
	for _, rec := range s.records {
		t.add(rec)
	}
	return t.result(), nil
}

// RecentAlerts returns the latest non-safe records, newest first
func (s *MemoryStore) RecentAlerts(ctx context.Context, limit int) ([]*core.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alerts := make([]*core.AnalysisRecord, 0, limit)
	for _, rec := range s.records {
		if rec.Severity == core.SeveritySafe {
			continue
		}
		alerts = append(alerts, rec)
	}
	sortNewestFirst(alerts)
	if len(alerts) > limit {
		alerts = alerts[:limit]
	}

	out := make([]*core.AnalysisRecord, 0, len(alerts))
	for _, rec := range alerts {
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

// SaveFeedback stores a feedback record
func (s *MemoryStore) SaveFeedback(ctx context.Context, fb *core.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *fb
	s.feedback = append(s.feedback, &cp)
	return nil
}

// MarkFalsePositive flags all records whose input hash starts with the prefix
func (s *MemoryStore) MarkFalsePositive(ctx context.Context, hashPrefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for _, rec := range s.records {
		if strings.HasPrefix(rec.InputHash, hashPrefix) {
			rec.IsFalsePositive = true
			found = true
		}
	}
	if !found {
		return core.ErrNotFound
	}
	return nil
}

// Cleanup removes records older than the retention window
func (s *MemoryStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.retention <= 0 {
		return nil
	}
	cutoff := time.Now().Add(-s.retention)
	removed := 0
	for id, rec := range s.records {
		if rec.AnalyzedAt.Before(cutoff) {
			delete(s.records, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Debug("Cleaned up expired records", zap.Int("expired_count", removed))
	}
	return nil
}

// startCleanupTask starts a background task to clean up expired records
func (s *MemoryStore) startCleanupTask() {
	ticker := time.NewTicker(s.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Cleanup(context.Background()); err != nil {
				s.logger.Error("Failed to clean up records", zap.Error(err))
			}
		case <-s.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task
func (s *MemoryStore) Stop() {
	close(s.stopCh)
}

func matchesFilter(rec *core.AnalysisRecord, f core.ListFilter) bool {
	if f.Severity != "" && string(rec.Severity) != f.Severity {
		return false
	}
	if f.ThreatType != "" && string(rec.ThreatType) != f.ThreatType {
		return false
	}
	if f.InputType != "" && string(rec.InputType) != f.InputType {
		return false
	}
	return true
}

func sortNewestFirst(recs []*core.AnalysisRecord) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].AnalyzedAt.Equal(recs[j].AnalyzedAt) {
			return recs[i].ID > recs[j].ID
		}
		return recs[i].AnalyzedAt.After(recs[j].AnalyzedAt)
	})
}
