package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Opportunity struct {
	ID            uuid.UUID
	ProspectID    uuid.UUID
	Title         string
	PriorityScore int
	ServiceTier   *string
	ROIEstimate   float64
	CreatedAt     time.Time
}

type InsertOpportunityParams struct {
	TenantID      uuid.UUID
	ProspectID    uuid.UUID
	Title         string
	PriorityScore int
	ServiceTier   *string
	ROIEstimate   float64
}

func (r *Repository) InsertOpportunity(ctx context.Context, params InsertOpportunityParams) (Opportunity, error) {
	var o Opportunity
	err := r.pool.QueryRow(ctx, `
		INSERT INTO opportunities (tenant_id, prospect_id, title, priority_score, service_tier, roi_estimate)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, prospect_id, title, priority_score, service_tier, roi_estimate, created_at
	`, params.TenantID, params.ProspectID, params.Title, params.PriorityScore, params.ServiceTier, params.ROIEstimate,
	).Scan(&o.ID, &o.ProspectID, &o.Title, &o.PriorityScore, &o.ServiceTier, &o.ROIEstimate, &o.CreatedAt)
	return o, err
}

func (r *Repository) ListOpportunities(ctx context.Context, prospectID, tenantID uuid.UUID) ([]Opportunity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, prospect_id, title, priority_score, service_tier, roi_estimate, created_at
		FROM opportunities
		WHERE prospect_id = $1 AND tenant_id = $2
		ORDER BY priority_score DESC, created_at ASC
	`, prospectID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Opportunity, 0)
	for rows.Next() {
		var o Opportunity
		if err := rows.Scan(&o.ID, &o.ProspectID, &o.Title, &o.PriorityScore, &o.ServiceTier, &o.ROIEstimate, &o.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, o)
	}

	return items, rows.Err()
}
