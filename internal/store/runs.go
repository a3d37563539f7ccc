package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
)

// RecordRun 写入一次转换记录及其跳过的 sheet
func (s *Store) RecordRun(ctx context.Context, run model.RunRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (
			id, username, filename, file_size, file_hash,
			project_id, line_items, summary_rows,
			status, error, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID, run.Username, run.Filename, run.FileSize, run.FileHash,
		run.ProjectID, run.LineItems, run.SummaryRows,
		run.Status, run.Error, run.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, sk := range run.Skipped {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO run_sheets (run_id, sheet_name, reason, detail)
			VALUES (?, ?, ?, ?)
		`, run.ID, sk.Name, string(sk.Reason.Code), sk.Reason.Detail); err != nil {
			return fmt.Errorf("failed to insert run sheet: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// ListRuns 按时间倒序列出最近的转换记录
func (s *Store) ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, filename, file_size, file_hash,
		       project_id, line_items, summary_rows, status, error, created_at
		FROM runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []model.RunRecord
	for rows.Next() {
		var r model.RunRecord
		if err := rows.Scan(
			&r.ID, &r.Username, &r.Filename, &r.FileSize, &r.FileHash,
			&r.ProjectID, &r.LineItems, &r.SummaryRows, &r.Status, &r.Error, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		skipped, err := s.runSheets(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Skipped = skipped
	}
	return runs, nil
}

func (s *Store) runSheets(ctx context.Context, runID string) ([]model.SkippedSheet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sheet_name, reason, detail FROM run_sheets WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run sheets: %w", err)
	}
	defer rows.Close()

	var out []model.SkippedSheet
	for rows.Next() {
		var sk model.SkippedSheet
		var code string
		if err := rows.Scan(&sk.Name, &code, &sk.Reason.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan run sheet: %w", err)
		}
		sk.Reason.Code = model.SkipCode(code)
		out = append(out, sk)
	}
	return out, rows.Err()
}
