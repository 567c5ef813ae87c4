package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AnalysisSnapshot struct {
	ID           uuid.UUID
	ProspectID   uuid.UUID
	AnalysisType string
	Version      int
	Completed    bool
	QualityScore *int
	Content      []byte
	CreatedAt    time.Time
}

type InsertSnapshotParams struct {
	TenantID     uuid.UUID
	ProspectID   uuid.UUID
	AnalysisType string
	Version      int
	Completed    bool
	QualityScore *int
	Content      []byte
}

// LatestSnapshotVersion returns 0 when the prospect has no snapshots yet.
func (r *Repository) LatestSnapshotVersion(ctx context.Context, prospectID, tenantID uuid.UUID) (int, error) {
	var version int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(MAX(version), 0)
		FROM analysis_snapshots
		WHERE prospect_id = $1 AND tenant_id = $2
	`, prospectID, tenantID).Scan(&version)
	return version, err
}

func (r *Repository) InsertSnapshot(ctx context.Context, params InsertSnapshotParams) (AnalysisSnapshot, error) {
	var s AnalysisSnapshot
	err := r.pool.QueryRow(ctx, `
		INSERT INTO analysis_snapshots (tenant_id, prospect_id, analysis_type, version, completed, quality_score, content)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, prospect_id, analysis_type, version, completed, quality_score, content, created_at
	`, params.TenantID, params.ProspectID, params.AnalysisType, params.Version,
		params.Completed, params.QualityScore, params.Content,
	).Scan(&s.ID, &s.ProspectID, &s.AnalysisType, &s.Version, &s.Completed, &s.QualityScore, &s.Content, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return AnalysisSnapshot{}, ErrNotFound
	}
	return s, err
}

// ListCompletedSnapshots returns every completed snapshot for scoring input.
func (r *Repository) ListCompletedSnapshots(ctx context.Context, prospectID, tenantID uuid.UUID) ([]AnalysisSnapshot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, prospect_id, analysis_type, version, completed, quality_score, content, created_at
		FROM analysis_snapshots
		WHERE prospect_id = $1 AND tenant_id = $2 AND completed = true
		ORDER BY version ASC
	`, prospectID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]AnalysisSnapshot, 0)
	for rows.Next() {
		var s AnalysisSnapshot
		if err := rows.Scan(&s.ID, &s.ProspectID, &s.AnalysisType, &s.Version, &s.Completed, &s.QualityScore, &s.Content, &s.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}

	return items, rows.Err()
}
