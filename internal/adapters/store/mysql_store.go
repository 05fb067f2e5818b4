package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// MySQLStore is a MySQL implementation of the ResultStore interface
type MySQLStore struct {
	sqlStore
}

// NewMySQLStore creates a new MySQL result store
func NewMySQLStore(dsn string, retention, cleanupFreq time.Duration, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	// MySQL lacks CREATE INDEX IF NOT EXISTS, so indexes go inline
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
			detail TEXT,
			INDEX idx_analyzed_at (analyzed_at),
			INDEX idx_input_hash (input_hash)
		)`,
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
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	s := &MySQLStore{sqlStore{
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
