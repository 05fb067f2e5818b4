package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteStore is a SQLite implementation of the ResultStore interface
type SQLiteStore struct {
	sqlStore
}

// NewSQLiteStore creates a new SQLite result store
func NewSQLiteStore(dbPath string, retention, cleanupFreq time.Duration, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{sqlStore{
		db:          db,
		logger:      logger,
		retention:   retention,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}}

	// Start background cleanup
	go s.startCleanupTask()

	return s, nil
}

// createSchema creates the tables and indexes if they don't exist
func createSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_results (
			id VARCHAR(64) PRIMARY KEY,
			input_hash VARCHAR(64) NOT NULL,
			input_type VARCHAR(16) NOT NULL,
			threat_type VARCHAR(32) NOT NULL,
			severity VARCHAR(16) NOT NULL,
			risk_score INTEGER NOT NULL,
			confidence INTEGER NOT NULL,
			summary TEXT,
			analyzed_at VARCHAR(35) NOT NULL,
			processing_time_ms BIGINT NOT NULL,
			model_version VARCHAR(32),
			is_false_positive BOOLEAN NOT NULL,
			detail TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyzed_at ON analysis_results(analyzed_at)`,
		`CREATE INDEX IF NOT EXISTS idx_input_hash ON analysis_results(input_hash)`,
		`CREATE TABLE IF NOT EXISTS feedback (
			id VARCHAR(64) PRIMARY KEY,
			analysis_hash VARCHAR(64) NOT NULL,
			feedback_type VARCHAR(32) NOT NULL,
			comment TEXT,
			created_at VARCHAR(35) NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
