package analysis

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new analysis record.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (id, user_id, resume_data, result, analysis_type, provider, score, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	snapshot, err := json.Marshal(analysis.Snapshot)
	if err != nil {
		return err
	}
	result, err := json.Marshal(analysis.Result)
	if err != nil {
		return err
	}
	metadata, err := json.Marshal(analysis.Metadata)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.UserID,
		snapshot,
		result,
		analysis.AnalysisType,
		analysis.Provider,
		analysis.Score,
		metadata,
		analysis.CreatedAt,
	)
	return err
}

// GetByID returns the analysis scoped to its owner. Missing and unowned
// records are indistinguishable to the caller.
func (r *PGRepo) GetByID(ctx context.Context, userID, analysisID string) (Analysis, error) {
	const query = `
SELECT id, user_id, resume_data, result, analysis_type, provider, score, metadata, created_at
FROM analyses
WHERE id = $1 AND user_id = $2
LIMIT 1`

	row := r.DB.QueryRowContext(ctx, query, analysisID, userID)
	analysis, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	return analysis, nil
}

// ListByUser lists one page of the user's analyses newest-first and counts
// the total.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM analyses WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `
SELECT id, user_id, resume_data, result, analysis_type, provider, score, metadata, created_at
FROM analyses
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, analysis)
	}
	return out, total, rows.Err()
}

// PurgeExpired deletes records older than the cutoff.
func (r *PGRepo) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM analyses WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

var _ Repo = (*PGRepo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var a Analysis
	var snapshot, result []byte
	var metadata sql.NullString
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&snapshot,
		&result,
		&a.AnalysisType,
		&a.Provider,
		&a.Score,
		&metadata,
		&a.CreatedAt,
	); err != nil {
		return Analysis{}, err
	}
	if err := json.Unmarshal(snapshot, &a.Snapshot); err != nil {
		return Analysis{}, err
	}
	if err := json.Unmarshal(result, &a.Result); err != nil {
		return Analysis{}, err
	}
	if metadata.Valid {
		_ = json.Unmarshal([]byte(metadata.String), &a.Metadata)
	}
	return a, nil
}
