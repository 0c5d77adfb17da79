package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"labor-dashboard/internal/model"
	"labor-dashboard/internal/source"
)

const schema = `
CREATE TABLE IF NOT EXISTS dataset_rows (
	id TEXT PRIMARY KEY,
	dataset TEXT NOT NULL,
	position INTEGER NOT NULL,
	payload TEXT NOT NULL,
	created_at DATETIME
);
CREATE INDEX IF NOT EXISTS dataset_rows_dataset ON dataset_rows (dataset, position);
`

// SQLite is a local backend storing each dataset row as a JSON document.
// Filtering happens in Go with the same rules as the fallback catalog.
type SQLite struct {
	db      *sql.DB
	maxRows int
	logger  *zap.Logger
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path string, maxRows int, retry model.RetryConfig, logger *zap.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	err = withRetry(ctx, retry, logger, "sqlite connect", func(ctx context.Context) error {
		return db.PingContext(ctx)
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}
	return &SQLite{db: db, maxRows: maxRows, logger: logger}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Seed replaces the rows of dataset with records.
func (s *SQLite) Seed(ctx context.Context, dataset string, records []model.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM dataset_rows WHERE dataset = ?`, dataset); err != nil {
		return fmt.Errorf("clear %s: %w", dataset, err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO dataset_rows (id, dataset, position, payload, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, r := range records {
		payload, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode %s row %d: %w", dataset, i, err)
		}
		if _, err := stmt.ExecContext(ctx, uuid.NewString(), dataset, i, string(payload), now); err != nil {
			return fmt.Errorf("insert %s row %d: %w", dataset, i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("dataset seeded", zap.String("dataset", dataset), zap.Int("rows", len(records)))
	return nil
}

// Fetch implements source.Fetcher.
func (s *SQLite) Fetch(ctx context.Context, dataset string, filters source.Filters) ([]model.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM dataset_rows WHERE dataset = ? ORDER BY position`, dataset)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", dataset, err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var rec model.Record
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("decode %s row: %w", dataset, err)
		}
		if !filters.Match(rec) {
			continue
		}
		records = append(records, rec)
		if s.maxRows > 0 && len(records) >= s.maxRows {
			break
		}
	}
	return records, rows.Err()
}

// Datasets lists the datasets present with their row counts.
func (s *SQLite) Datasets(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT dataset, COUNT(*) FROM dataset_rows GROUP BY dataset`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		out[name] = n
	}
	return out, rows.Err()
}
