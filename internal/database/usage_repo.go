package database

import (
	"context"
	"fmt"
	"time"

	"github.com/foxxcyber/ocr-gateway/internal/models"
)

// RecordOCRCall inserts a ledger row and fills in its ID and timestamp
func (db *DB) RecordOCRCall(ctx context.Context, call *models.OCRCall) error {
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO ocr_calls (request_id, filename, size_bytes, content_digest, provider,
		                       success, error_message, processing_time_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, call.RequestID, call.Filename, call.SizeBytes, call.ContentDigest, call.Provider,
		call.Success, call.ErrorMessage, call.ProcessingTimeMS).Scan(&call.ID, &call.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert ocr call: %w", err)
	}

	return nil
}

// CleanupOldCalls deletes ledger rows older than retentionDays and returns
// how many were removed. A non-positive retention keeps everything.
func (db *DB) CleanupOldCalls(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM ocr_calls WHERE created_at < NOW() - make_interval(days => $1)`,
		retentionDays,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup ocr calls: %w", err)
	}

	return tag.RowsAffected(), nil
}

// GetUsageSummary aggregates ledger rows created at or after since
func (db *DB) GetUsageSummary(ctx context.Context, since time.Time) (*models.UsageSummary, error) {
	summary := &models.UsageSummary{}

	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE NOT success),
		       COALESCE(SUM(size_bytes), 0),
		       COALESCE(AVG(processing_time_ms), 0)::BIGINT
		FROM ocr_calls
		WHERE created_at >= $1
	`, since).Scan(&summary.Calls, &summary.Failures, &summary.Bytes, &summary.AvgTimeMS)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize ocr calls: %w", err)
	}

	return summary, nil
}

// ListRecentCalls returns the newest ledger rows, newest first
func (db *DB) ListRecentCalls(ctx context.Context, limit int) ([]*models.OCRCall, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, request_id, filename, size_bytes, content_digest, provider,
		       success, error_message, processing_time_ms, created_at
		FROM ocr_calls
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calls []*models.OCRCall
	for rows.Next() {
		call := &models.OCRCall{}
		if err := rows.Scan(
			&call.ID, &call.RequestID, &call.Filename, &call.SizeBytes, &call.ContentDigest, &call.Provider,
			&call.Success, &call.ErrorMessage, &call.ProcessingTimeMS, &call.CreatedAt,
		); err != nil {
			return nil, err
		}
		calls = append(calls, call)
	}

	return calls, rows.Err()
}
