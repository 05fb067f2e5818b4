package store

import (
	"math"
	"time"

	"github.com/cybershield/threat-analyzer/internal/core"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// trendWindow accumulates per-day and per-category counts over a trailing
// window of whole UTC days, ending today.
type trendWindow struct {
	start    time.Time
	days     int
	perDay   []int
	byType   map[string]int
	severity map[string]int
}

func newTrendWindow(now time.Time, days int) *trendWindow {
	dayEnd := now.UTC().Truncate(24 * time.Hour)
	return &trendWindow{
		start:    dayEnd.AddDate(0, 0, -(days - 1)),
		days:     days,
		perDay:   make([]int, days),
		byType:   make(map[string]int),
		severity: make(map[string]int),
	}
}

func (t *trendWindow) add(rec *core.AnalysisRecord) {
	day := int(rec.AnalyzedAt.UTC().Truncate(24*time.Hour).Sub(t.start).Hours() / 24)
	if day < 0 || day >= t.days {
		return
	}
	t.severity[string(rec.Severity)]++
	if rec.Severity == core.SeveritySafe {
		return
	}
	t.perDay[day]++
	t.byType[string(rec.ThreatType)]++
}

func (t *trendWindow) result() *core.DashboardTrends {
	series := make([]core.TrendPoint, t.days)
	for i := range series {
		series[i] = core.TrendPoint{
			Date:  t.start.AddDate(0, 0, i).Format("2006-01-02"),
			Count: t.perDay[i],
		}
	}
	return &core.DashboardTrends{
		ThreatsOverTime:      series,
		ThreatsByType:        t.byType,
		SeverityDistribution: t.severity,
	}
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
