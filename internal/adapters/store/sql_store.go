package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cybershield/threat-analyzer/internal/core"
	"go.uber.org/zap"
)

// sqlStore holds the dialect-neutral SQL implementation shared by the SQLite
// and MySQL stores. Both drivers take ? placeholders, and timestamps are
// stored as RFC 3339 UTC strings so string comparison orders them correctly.
type sqlStore struct {
	db          *sql.DB
	logger      *zap.Logger
	retention   time.Duration
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

const recordColumns = `id, input_hash, input_type, threat_type, severity, risk_score,
	confidence, summary, analyzed_at, processing_time_ms, model_version,
	is_false_positive, detail`

// Save stores one anonymized record
func (s *sqlStore) Save(ctx context.Context, rec *core.AnalysisRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analysis_results (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.InputHash,
		string(rec.InputType),
		string(rec.ThreatType),
		string(rec.Severity),
		rec.RiskScore,
		rec.Confidence,
		rec.Summary,
		formatTime(rec.AnalyzedAt),
		rec.ProcessingTimeMs,
		rec.ModelVersion,
		rec.IsFalsePositive,
		string(rec.Detail),
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis record: %w", err)
	}
	return nil
}

// Get retrieves a record by id
func (s *sqlStore) Get(ctx context.Context, id string) (*core.AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM analysis_results
		WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis record: %w", err)
	}
	return rec, nil
}

// List returns a page of records, newest first, plus the total match count
func (s *sqlStore) List(ctx context.Context, f core.ListFilter) ([]*core.AnalysisRecord, int, error) {
	where, args := buildFilter(f)

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM analysis_results`+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count analysis records: %w", err)
	}

	page, size := normalizePage(f.Page, f.PageSize)
	query := `
		SELECT ` + recordColumns + `
		FROM analysis_results` + where + `
		ORDER BY analyzed_at DESC, id DESC
		LIMIT ? OFFSET ?
	`
	rows, err := s.db.QueryContext(ctx, query, append(args, size, (page-1)*size)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query analysis records: %w", err)
	}
	defer rows.Close()

	recs, err := scanRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}

// Count returns the total number of stored records
func (s *sqlStore) Count(ctx context.Context) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analysis_results`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count analysis records: %w", err)
	}
	return total, nil
}

// Metrics computes the dashboard KPI aggregates
func (s *sqlStore) Metrics(ctx context.Context) (*core.DashboardMetrics, error) {
	m := &core.DashboardMetrics{}

	var total, fpCount int
	var riskSum sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(risk_score), 0),
		       COALESCE(SUM(CASE WHEN is_false_positive THEN 1 ELSE 0 END), 0)
		FROM analysis_results
	`).Scan(&total, &riskSum, &fpCount)
	if err != nil {
		return nil, fmt.Errorf("failed to compute metrics: %w", err)
	}
	if total == 0 {
		return m, nil
	}

	dayStart := formatTime(time.Now().UTC().Truncate(24 * time.Hour))
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN severity IN ('critical', 'high') THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN analyzed_at >= ? THEN 1 ELSE 0 END), 0)
		FROM analysis_results
		WHERE severity != 'safe'
	`, dayStart).Scan(&m.TotalThreats, &m.HighRiskCount, &m.ThreatsToday)
	if err != nil {
		return nil, fmt.Errorf("failed to compute threat metrics: %w", err)
	}

	m.AvgRiskScore = round1(riskSum.Float64 / float64(total))
	m.DetectionRate = round1(float64(m.TotalThreats) / float64(total) * 100)
	m.FalsePositiveRate = round1(float64(fpCount) / float64(total) * 100)
	return m, nil
}

// Trends computes per-day counts and distributions for the trailing window
func (s *sqlStore) Trends(ctx context.Context, days int) (*core.DashboardTrends, error) {
	t := newTrendWindow(time.Now().UTC(), days)

	rows, err := s.db.QueryContext(ctx, `
		SELECT threat_type, severity, analyzed_at
		FROM analysis_results
		WHERE analyzed_at >= ?
	`, formatTime(t.start))
	if err != nil {
		return nil, fmt.Errorf("failed to query trend window: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var threatType, severity, analyzedAt string
		if err := rows.Scan(&threatType, &severity, &analyzedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trend row: %w", err)
		}
		ts, err := time.Parse(time.RFC3339, analyzedAt)
		if err != nil {
			s.logger.Warn("Skipping record with bad timestamp", zap.Error(err))
			continue
		}
		t.add(&core.AnalysisRecord{
			ThreatType: core.ThreatType(threatType),
			Severity:   core.SeverityLevel(severity),
			AnalyzedAt: ts,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trend rows: %w", err)
	}
	return t.result(), nil
}

// RecentAlerts returns the latest non-safe records, newest first
func (s *sqlStore) RecentAlerts(ctx context.Context, limit int) ([]*core.AnalysisRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM analysis_results
		WHERE severity != 'safe'
		ORDER BY analyzed_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent alerts: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// SaveFeedback stores a feedback record
func (s *sqlStore) SaveFeedback(ctx context.Context, fb *core.Feedback) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (id, analysis_hash, feedback_type, comment, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, fb.ID, fb.AnalysisHash, fb.FeedbackType, fb.Comment, formatTime(fb.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

// MarkFalsePositive flags all records whose input hash starts with the prefix
func (s *sqlStore) MarkFalsePositive(ctx context.Context, hashPrefix string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE analysis_results
		SET is_false_positive = ?
		WHERE input_hash LIKE ?
	`, true, likePrefix(hashPrefix))
	if err != nil {
		return fmt.Errorf("failed to mark false positive: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}
	return nil
}

// Cleanup removes records older than the retention window
func (s *sqlStore) Cleanup(ctx context.Context) error {
	if s.retention <= 0 {
		return nil
	}

	cutoff := formatTime(time.Now().Add(-s.retention))
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM analysis_results
		WHERE analyzed_at <= ?
	`, cutoff)
	if err != nil {
		return fmt.Errorf("failed to clean up expired records: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		s.logger.Warn("Failed to get rows affected during cleanup", zap.Error(err))
	} else if affected > 0 {
		s.logger.Debug("Cleaned up expired records", zap.Int64("expired_count", affected))
	}
	return nil
}

// startCleanupTask starts a background task to clean up expired records
func (s *sqlStore) startCleanupTask() {
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

// Stop stops the background cleanup task and closes the database connection
func (s *sqlStore) Stop() {
	close(s.stopCh)
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close database", zap.Error(err))
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// likePrefix escapes LIKE wildcards so a hash prefix matches literally.
func likePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}

func buildFilter(f core.ListFilter) (string, []any) {
	var conds []string
	var args []any
	if f.Severity != "" {
		conds = append(conds, "severity = ?")
		args = append(args, f.Severity)
	}
	if f.ThreatType != "" {
		conds = append(conds, "threat_type = ?")
		args = append(args, f.ThreatType)
	}
	if f.InputType != "" {
		conds = append(conds, "input_type = ?")
		args = append(args, f.InputType)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*core.AnalysisRecord, error) {
	var rec core.AnalysisRecord
	var inputType, threatType, severity, analyzedAt, detail string

	err := row.Scan(
		&rec.ID,
		&rec.InputHash,
		&inputType,
		&threatType,
		&severity,
		&rec.RiskScore,
		&rec.Confidence,
		&rec.Summary,
		&analyzedAt,
		&rec.ProcessingTimeMs,
		&rec.ModelVersion,
		&rec.IsFalsePositive,
		&detail,
	)
	if err != nil {
		return nil, err
	}

	rec.InputType = core.ContentType(inputType)
	rec.ThreatType = core.ThreatType(threatType)
	rec.Severity = core.SeverityLevel(severity)
	rec.Detail = []byte(detail)
	rec.AnalyzedAt, err = time.Parse(time.RFC3339, analyzedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse analyzed_at timestamp: %w", err)
	}
	return &rec, nil
}

func scanRecords(rows *sql.Rows) ([]*core.AnalysisRecord, error) {
	recs := []*core.AnalysisRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis record: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analysis records: %w", err)
	}
	return recs, nil
}
