package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"labor-dashboard/internal/model"
	"labor-dashboard/internal/source"
)

// Postgres reads dashboard views from the hosted relational database.
type Postgres struct {
	pool     *pgxpool.Pool
	registry *Registry
	maxRows  int
	logger   *zap.Logger
}

// OpenPostgres connects to dsn, retrying per retry.
func OpenPostgres(ctx context.Context, dsn string, registry *Registry, maxRows int, retry model.RetryConfig, logger *zap.Logger) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	var pool *pgxpool.Pool
	err = withRetry(ctx, retry, logger, "postgres connect", func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("connected to postgres", zap.String("host", cfg.ConnConfig.Host))
	return &Postgres{pool: pool, registry: registry, maxRows: maxRows, logger: logger}, nil
}

// Close releases the pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// Fetch implements source.Fetcher.
func (p *Postgres) Fetch(ctx context.Context, dataset string, filters source.Filters) ([]model.Record, error) {
	view, err := p.registry.Lookup(dataset)
	if err != nil {
		return nil, err
	}
	query, args := buildQuery(view, filters, p.maxRows)

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", view.Relation, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var records []model.Record
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", view.Relation, err)
		}
		rec := make(model.Record, len(fields))
		for i, fd := range fields {
			rec[fd.Name] = normalizeValue(values[i])
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", view.Relation, err)
	}
	return records, nil
}

// buildQuery selects from view with one equality predicate per allowed
// filter. Identifiers are quoted; values are always bound parameters.
func buildQuery(view View, filters source.Filters, limit int) (string, []interface{}) {
	active := filters.Active().Only(view.Filters)

	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(pgx.Identifier(strings.Split(view.Relation, ".")).Sanitize())

	var args []interface{}
	// view.Filters fixes the predicate order so equal filters build equal SQL
	for _, col := range view.Filters {
		v, ok := active[col]
		if !ok {
			continue
		}
		if len(args) == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		args = append(args, v)
		fmt.Fprintf(&b, "%s::text = $%d", pgx.Identifier{col}.Sanitize(), len(args))
	}
	if limit > 0 {
		args = append(args, limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	return b.String(), args
}

// normalizeValue turns driver types into the scalars records carry.
func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case pgtype.Numeric:
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339)
	case [16]byte:
		return uuid.UUID(val).String()
	case []byte:
		return string(val)
	}
	return v
}
