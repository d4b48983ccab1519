package core

// store_postgres.go keeps reports in PostgreSQL.
//
// Each report is one row. The full report is stored as JSONB so its wire
// shape is preserved exactly; the scalar columns exist for ordering,
// retention and ad-hoc queries.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/brfss/internal/validation"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const submissionsSchema = `
CREATE TABLE IF NOT EXISTS brfss_submissions (
	submission_id TEXT PRIMARY KEY,
	filename      TEXT        NOT NULL,
	status        TEXT        NOT NULL,
	submitted_at  TIMESTAMPTZ NOT NULL,
	row_count     INTEGER     NOT NULL,
	valid_rows    INTEGER     NOT NULL,
	error_count   INTEGER     NOT NULL,
	report        JSONB       NOT NULL,
	seq           BIGSERIAL
);
CREATE INDEX IF NOT EXISTS brfss_submissions_submitted_at_idx
	ON brfss_submissions (submitted_at DESC, seq DESC);
`

// pgPool is the subset of *pgxpool.Pool the store uses.
type pgPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore is a Store backed by a pgx connection pool.
type PostgresStore struct {
	pool pgPool
}

// NewPostgresStore wraps pool. Call EnsureSchema before first use.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the submissions table if it does not exist.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, submissionsSchema); err != nil {
		return fmt.Errorf("create submissions table: %w", err)
	}
	return nil
}

func (p *PostgresStore) Save(ctx context.Context, res *validation.ValidationResult) error {
	report, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode report %s: %w", res.SubmissionID, err)
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO brfss_submissions
			(submission_id, filename, status, submitted_at, row_count, valid_rows, error_count, report)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (submission_id) DO UPDATE SET
			filename     = EXCLUDED.filename,
			status       = EXCLUDED.status,
			submitted_at = EXCLUDED.submitted_at,
			row_count    = EXCLUDED.row_count,
			valid_rows   = EXCLUDED.valid_rows,
			error_count  = EXCLUDED.error_count,
			report       = EXCLUDED.report`,
		res.SubmissionID,
		res.Filename,
		string(res.Status),
		toPgTimestamptz(res.Timestamp),
		toPgInt4(res.RowCount),
		toPgInt4(res.ValidRows),
		toPgInt4(res.ErrorCount()),
		report,
	)
	if err != nil {
		return fmt.Errorf("save report %s: %w", res.SubmissionID, err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, id string) (*validation.ValidationResult, error) {
	var report []byte
	err := p.pool.QueryRow(ctx,
		`SELECT report FROM brfss_submissions WHERE submission_id = $1`, id,
	).Scan(&report)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load report %s: %w", id, err)
	}
	return decodeReport(report)
}

func (p *PostgresStore) List(ctx context.Context) ([]*validation.ValidationResult, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT report FROM brfss_submissions ORDER BY submitted_at DESC, seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	reports, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*validation.ValidationResult, error) {
		var report []byte
		if err := row.Scan(&report); err != nil {
			return nil, err
		}
		return decodeReport(report)
	})
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

func (p *PostgresStore) Clear(ctx context.Context) (int, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM brfss_submissions`)
	if err != nil {
		return 0, fmt.Errorf("clear reports: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (p *PostgresStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM brfss_submissions WHERE submitted_at < $1`, toPgTimestamptz(cutoff))
	if err != nil {
		return 0, fmt.Errorf("delete old reports: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (p *PostgresStore) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

func (p *PostgresStore) Close() { p.pool.Close() }

func decodeReport(data []byte) (*validation.ValidationResult, error) {
	var res validation.ValidationResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &res, nil
}

func toPgTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func toPgInt4(n int) pgtype.Int4 {
	return pgtype.Int4{Int32: int32(n), Valid: true}
}
