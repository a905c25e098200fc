package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"

	"github.com/bnema/audiobatch/internal/domain"
	"github.com/bnema/audiobatch/internal/port"
)

//go:embed migrations/*.sql
var migrations embed.FS

const dbFileName = "history.db"

type Store struct {
	db *sql.DB
}

var hookOnce sync.Once

func registerHook() {
	hookOnce.Do(func() {
		sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, dsn string) error {
			pragmas := []string{
				"PRAGMA journal_mode = WAL",
				"PRAGMA busy_timeout = 5000",
				"PRAGMA synchronous = NORMAL",
				"PRAGMA foreign_keys = ON",
			}
			for _, p := range pragmas {
				if _, err := conn.ExecContext(context.Background(), p, nil); err != nil {
					return fmt.Errorf("execute %s: %w", p, err)
				}
			}
			return nil
		})
	})
}

var migrateMu sync.Mutex

func NewStore(dataDir string) (*Store, error) {
	registerHook()

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single connection for SQLite (WAL allows concurrent reads but only one writer)
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrations)
	goose.SetLogger(log.New(io.Discard, "", 0))
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) DB() *sql.DB {
	return s.db
}

// SaveOutcome writes the batch and all of its results, replacing any
// previous copy with the same ID.
func (s *Store) SaveOutcome(ctx context.Context, o *domain.BatchOutcome) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO batches (id, operation, started_at, finished_at, cancelled)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			operation = excluded.operation,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			cancelled = excluded.cancelled`,
		o.ID, string(o.Operation), toUnix(o.StartedAt), toUnix(o.FinishedAt), boolToInt(o.Cancelled),
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	if err := replaceResults(ctx, tx, o.ID, o.Results); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) GetOutcome(ctx context.Context, id string) (*domain.BatchOutcome, error) {
	var (
		o         domain.BatchOutcome
		op        string
		started   int64
		finished  int64
		cancelled int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, operation, started_at, finished_at, cancelled FROM batches WHERE id = ?`, id,
	).Scan(&o.ID, &op, &started, &finished, &cancelled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o.Operation = domain.Operation(op)
	o.StartedAt = fromUnix(started)
	o.FinishedAt = fromUnix(finished)
	o.Cancelled = cancelled != 0

	results, err := listResults(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	o.Results = results
	return &o, nil
}

// ListOutcomes returns the most recent batches first. limit <= 0 means all.
func (s *Store) ListOutcomes(ctx context.Context, limit int) ([]domain.BatchSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.operation, b.started_at, b.finished_at, b.cancelled,
			COUNT(r.idx),
			COALESCE(SUM(CASE WHEN r.status = 'succeeded' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN r.status = 'failed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN r.status = 'skipped' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN r.status = 'not_run' THEN 1 ELSE 0 END), 0)
		FROM batches b
		LEFT JOIN file_results r ON r.batch_id = b.id
		GROUP BY b.id
		ORDER BY b.started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var summaries []domain.BatchSummary
	for rows.Next() {
		var (
			sum               domain.BatchSummary
			op                string
			started, finished int64
			cancelled         int64
		)
		if err := rows.Scan(&sum.ID, &op, &started, &finished, &cancelled,
			&sum.Counts.Total, &sum.Counts.Succeeded, &sum.Counts.Failed,
			&sum.Counts.Skipped, &sum.Counts.NotRun); err != nil {
			return nil, err
		}
		sum.Operation = domain.Operation(op)
		sum.Cancelled = cancelled != 0
		sum.StartedAt = fromUnix(started)
		sum.FinishedAt = fromUnix(finished)
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

func (s *Store) DeleteOutcome(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM file_results WHERE batch_id = ?`, id); err != nil {
		return fmt.Errorf("delete results: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM batches WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnix(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}

var _ port.HistoryStore = (*Store)(nil)
