package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"logview/models"
)

const (
	defaultLimit = 50
	maxLimit     = 1000
)

// InsertLogsBatch inserts multiple log entries using pgx batching.
// All logs are sent in a single network round-trip.
// If any log fails, returns BatchInsertError indicating which log failed.
// Empty slice is a no-op and returns nil.
func (db *DB) InsertLogsBatch(ctx context.Context, logs []models.StoredLog) error {
	if len(logs) == 0 {
		return nil
	}

	start := time.Now()
	defer func() {
		log.Debug().Dur("duration", time.Since(start)).Int("count", len(logs)).Msg("InsertLogsBatch")
	}()

	query := fmt.Sprintf(`
		INSERT INTO logs (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, columnID, columnLevel, columnMessage, columnTimestamp, columnService, columnComponent)

	batch := &pgx.Batch{}
	for _, entry := range logs {
		batch.Queue(query, entry.ID, entry.Level, entry.Message,
			entry.Timestamp, entry.Service, entry.Component)
	}

	results := db.Pool.SendBatch(ctx, batch)
	defer func() {
		_ = results.Close()
	}()

	for i := 0; i < len(logs); i++ {
		_, err := results.Exec()
		if err != nil {
			return &BatchInsertError{
				FailedIndex: i,
				TotalLogs:   len(logs),
				Err:         err,
			}
		}
	}

	return nil
}

// QueryLogs retrieves logs with optional filtering and pagination.
// Uses COUNT(*) OVER() window function to get total count in single query.
// Returns logs ordered by timestamp DESC (newest first), total count, and any error.
//
// Filters applied:
//   - Level: exact match (e.g., "ERROR", "INFO")
//   - Service: exact match
//   - Search: case-insensitive substring of message
//   - StartTime/EndTime: inclusive timestamp range (RFC3339 format)
//   - Page: 1-based page number (default 1)
//   - Limit: page size (default 50, max 1000)
//
// Returns empty slice (not nil) if no logs match.
func (db *DB) QueryLogs(ctx context.Context, params models.QueryParams) ([]models.StoredLog, int64, error) {
	start := time.Now()
	defer func() {
		log.Debug().
			Dur("duration", time.Since(start)).
			Str("level", params.Level).
			Str("service", params.Service).
			Str("search", params.Search).
			Msg("QueryLogs")
	}()

	limit := validateLimit(params.Limit, defaultLimit, maxLimit)
	offset := pageOffset(params.Page, limit)

	qb := NewQueryBuilder()
	if params.Level != "" {
		qb.AddCondition(columnLevel, params.Level)
	}
	if params.Service != "" {
		qb.AddCondition(columnService, params.Service)
	}
	if params.Search != "" {
		qb.AddContains(columnMessage, params.Search)
	}
	if err := qb.AddTimeRange(columnTimestamp, params.StartTime, params.EndTime); err != nil {
		return nil, 0, err
	}

	// SAFETY: All user input is parameterized via $N placeholders.
	// WhereClause only contains column constants and SQL operators.
	query := fmt.Sprintf(`
		SELECT
			%s, %s, %s, %s, %s, %s,
			COUNT(*) OVER() as total_count
		FROM logs
		%s
		ORDER BY %s DESC
		LIMIT $%d OFFSET $%d
	`, columnID, columnLevel, columnMessage, columnTimestamp, columnService, columnComponent,
		qb.WhereClause(), columnTimestamp, qb.NextArgNum(), qb.NextArgNum()+1)

	args := append(qb.Args(), limit, offset)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query logs: %w", err)
	}
	defer rows.Close()

	return scanLogs(rows)
}

// LogStatistics returns count and oldest/newest timestamps (unix seconds) per level.
func (db *DB) LogStatistics(ctx context.Context) (map[string]models.LevelStatistics, error) {
	start := time.Now()
	defer func() {
		log.Debug().Dur("duration", time.Since(start)).Msg("LogStatistics")
	}()

	query := fmt.Sprintf(`
		SELECT
			%s,
			COUNT(*) as count,
			EXTRACT(EPOCH FROM MIN(%s))::bigint as oldest,
			EXTRACT(EPOCH FROM MAX(%s))::bigint as newest
		FROM logs
		GROUP BY %s
	`, columnLevel, columnTimestamp, columnTimestamp, columnLevel)

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query log statistics: %w", err)
	}
	defer rows.Close()

	return scanStatistics(rows)
}

// Helper functions

type rowScanner interface {
	Scan(dest ...interface{}) error
}

type rowsScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanLog(row rowScanner) (*models.StoredLog, int64, error) {
	var entry models.StoredLog
	var total int64

	err := row.Scan(
		&entry.ID, &entry.Level, &entry.Message,
		&entry.Timestamp, &entry.Service, &entry.Component, &total,
	)
	if err != nil {
		return nil, 0, err
	}

	return &entry, total, nil
}

func scanLogs(rows rowsScanner) ([]models.StoredLog, int64, error) {
	logs := []models.StoredLog{}
	var total int64

	for rows.Next() {
		entry, t, err := scanLog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan log: %w", err)
		}
		total = t
		logs = append(logs, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating logs: %w", err)
	}

	return logs, total, nil
}

func scanStatistics(rows rowsScanner) (map[string]models.LevelStatistics, error) {
	stats := map[string]models.LevelStatistics{}

	for rows.Next() {
		var level string
		var s models.LevelStatistics
		if err := rows.Scan(&level, &s.Count, &s.Oldest, &s.Newest); err != nil {
			return nil, fmt.Errorf("failed to scan statistics: %w", err)
		}
		stats[level] = s
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statistics: %w", err)
	}

	return stats, nil
}
