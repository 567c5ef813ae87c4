package repository

import (
	"context"
	"errors"
	"time"

	"outreach_backend/internal/prospects/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ScoreRecord struct {
	ProspectID      uuid.UUID
	LeadScore       int
	EngagementScore int
	Temperature     domain.Temperature
	Factors         []byte
	ScoreVersion    string
	UpdatedAt       time.Time
}

type UpsertScoreParams struct {
	TenantID        uuid.UUID
	ProspectID      uuid.UUID
	LeadScore       int
	EngagementScore int
	Temperature     domain.Temperature
	Factors         []byte
	ScoreVersion    string
}

func (r *Repository) GetScoreRecord(ctx context.Context, prospectID, tenantID uuid.UUID) (ScoreRecord, error) {
	var s ScoreRecord
	err := r.pool.QueryRow(ctx, `
		SELECT prospect_id, lead_score, engagement_score, temperature, factors, score_version, updated_at
		FROM score_records
		WHERE prospect_id = $1 AND tenant_id = $2
	`, prospectID, tenantID).Scan(
		&s.ProspectID, &s.LeadScore, &s.EngagementScore, &s.Temperature, &s.Factors, &s.ScoreVersion, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ScoreRecord{}, ErrNotFound
	}
	return s, err
}

func (r *Repository) UpsertScoreRecord(ctx context.Context, params UpsertScoreParams) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO score_records (prospect_id, tenant_id, lead_score, engagement_score, temperature, factors, score_version, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (prospect_id) DO UPDATE SET
			lead_score = EXCLUDED.lead_score,
			engagement_score = EXCLUDED.engagement_score,
			temperature = EXCLUDED.temperature,
			factors = EXCLUDED.factors,
			score_version = EXCLUDED.score_version,
			updated_at = now()
	`, params.ProspectID, params.TenantID, params.LeadScore, params.EngagementScore,
		params.Temperature, params.Factors, params.ScoreVersion)
	return err
}

type CampaignAssignment struct {
	ID         uuid.UUID
	ProspectID uuid.UUID
	CampaignID string
	SequenceID string
	DelayHours float64
	Priority   string
	Reason     string
	CreatedAt  time.Time
}

type InsertAssignmentParams struct {
	TenantID   uuid.UUID
	ProspectID uuid.UUID
	CampaignID string
	SequenceID string
	DelayHours float64
	Priority   string
	Reason     string
}

func (r *Repository) InsertAssignment(ctx context.Context, params InsertAssignmentParams) (CampaignAssignment, error) {
	var a CampaignAssignment
	err := r.pool.QueryRow(ctx, `
		INSERT INTO campaign_assignments (tenant_id, prospect_id, campaign_id, sequence_id, delay_hours, priority, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, prospect_id, campaign_id, sequence_id, delay_hours, priority, reason, created_at
	`, params.TenantID, params.ProspectID, params.CampaignID, params.SequenceID,
		params.DelayHours, params.Priority, params.Reason,
	).Scan(&a.ID, &a.ProspectID, &a.CampaignID, &a.SequenceID, &a.DelayHours, &a.Priority, &a.Reason, &a.CreatedAt)
	return a, err
}

func (r *Repository) LatestAssignment(ctx context.Context, prospectID, tenantID uuid.UUID) (CampaignAssignment, error) {
	var a CampaignAssignment
	err := r.pool.QueryRow(ctx, `
		SELECT id, prospect_id, campaign_id, sequence_id, delay_hours, priority, reason, created_at
		FROM campaign_assignments
		WHERE prospect_id = $1 AND tenant_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`, prospectID, tenantID).Scan(
		&a.ID, &a.ProspectID, &a.CampaignID, &a.SequenceID, &a.DelayHours, &a.Priority, &a.Reason, &a.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return CampaignAssignment{}, ErrNotFound
	}
	return a, err
}
