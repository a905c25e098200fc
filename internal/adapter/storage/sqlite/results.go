package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/bnema/audiobatch/internal/domain"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func replaceResults(ctx context.Context, tx execer, batchID string, results []domain.FileResult) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM file_results WHERE batch_id = ?`, batchID); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO file_results (
			batch_id, idx, input_path, operation, status, output_path,
			error_kind, error_message, fingerprint, probe_json, started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare result insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range results {
		probeJSON := ""
		if r.Probe != nil {
			b, err := json.Marshal(r.Probe)
			if err != nil {
				return fmt.Errorf("encode probe for %d: %w", r.Index, err)
			}
			probeJSON = string(b)
		}
		if _, err := stmt.ExecContext(ctx,
			batchID, r.Index, r.InputPath, string(r.Operation), string(r.Status), r.OutputPath,
			string(r.ErrorKind), r.ErrorMessage, r.Fingerprint, probeJSON,
			toUnix(r.StartedAt), toUnix(r.FinishedAt),
		); err != nil {
			return fmt.Errorf("insert result %d: %w", r.Index, err)
		}
	}
	return nil
}

func listResults(ctx context.Context, q querier, batchID string) ([]domain.FileResult, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT idx, input_path, operation, status, output_path, error_kind,
			error_message, fingerprint, probe_json, started_at, finished_at
		FROM file_results
		WHERE batch_id = ?
		ORDER BY idx`, batchID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	results := []domain.FileResult{}
	for rows.Next() {
		var row resultRow
		if err := rows.Scan(&row.idx, &row.inputPath, &row.operation, &row.status, &row.outputPath,
			&row.errorKind, &row.errorMessage, &row.fingerprint, &row.probeJSON,
			&row.startedAt, &row.finishedAt); err != nil {
			return nil, err
		}
		r, err := resultFromRow(row)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

type resultRow struct {
	idx          int64
	inputPath    string
	operation    string
	status       string
	outputPath   string
	errorKind    string
	errorMessage string
	fingerprint  string
	probeJSON    string
	startedAt    int64
	finishedAt   int64
}

func resultFromRow(row resultRow) (domain.FileResult, error) {
	r := domain.FileResult{
		Index:        int(row.idx),
		InputPath:    row.inputPath,
		Operation:    domain.Operation(row.operation),
		Status:       domain.JobStatus(row.status),
		OutputPath:   row.outputPath,
		ErrorKind:    domain.ErrorKind(row.errorKind),
		ErrorMessage: row.errorMessage,
		Fingerprint:  row.fingerprint,
		StartedAt:    fromUnix(row.startedAt),
		FinishedAt:   fromUnix(row.finishedAt),
	}
	if row.probeJSON != "" {
		var probe domain.ProbeResult
		if err := json.Unmarshal([]byte(row.probeJSON), &probe); err != nil {
			return r, fmt.Errorf("decode probe for %d: %w", row.idx, err)
		}
		r.Probe = &probe
	}
	return r, nil
}
