package repository

import (
	"context"
	"errors"
	"time"

	"outreach_backend/internal/prospects/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("prospect not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Prospect struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	CompanyName  string
	ContactName  string
	ContactEmail *string
	ContactPhone string
	Industry     string
	SizeCategory string
	RevenueBand  string
	Stage        domain.Stage
	Temperature  domain.Temperature
	LeadStatus   domain.LeadStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateProspectParams struct {
	TenantID     uuid.UUID
	CompanyName  string
	ContactName  string
	ContactEmail *string
	ContactPhone string
	Industry     string
	SizeCategory string
	RevenueBand  string
}

const prospectColumns = `id, tenant_id, company_name, contact_name, contact_email, contact_phone,
		industry, size_category, revenue_band, stage, temperature, lead_status, created_at, updated_at`

func scanProspect(row pgx.Row) (Prospect, error) {
	var p Prospect
	err := row.Scan(
		&p.ID, &p.TenantID, &p.CompanyName, &p.ContactName, &p.ContactEmail, &p.ContactPhone,
		&p.Industry, &p.SizeCategory, &p.RevenueBand, &p.Stage, &p.Temperature, &p.LeadStatus,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Prospect{}, ErrNotFound
	}
	return p, err
}

func (r *Repository) Create(ctx context.Context, params CreateProspectParams) (Prospect, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO prospects (
			tenant_id, company_name, contact_name, contact_email, contact_phone,
			industry, size_category, revenue_band
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+prospectColumns,
		params.TenantID, params.CompanyName, params.ContactName, params.ContactEmail, params.ContactPhone,
		params.Industry, params.SizeCategory, params.RevenueBand,
	)
	return scanProspect(row)
}

func (r *Repository) GetByID(ctx context.Context, id, tenantID uuid.UUID) (Prospect, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+prospectColumns+`
		FROM prospects
		WHERE id = $1 AND tenant_id = $2
	`, id, tenantID)
	return scanProspect(row)
}

func (r *Repository) List(ctx context.Context, tenantID uuid.UUID, stage *domain.Stage, limit, offset int) ([]Prospect, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+prospectColumns+`
		FROM prospects
		WHERE tenant_id = $1 AND ($2::text IS NULL OR stage = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, tenantID, stage, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Prospect, 0)
	for rows.Next() {
		var p Prospect
		if err := rows.Scan(
			&p.ID, &p.TenantID, &p.CompanyName, &p.ContactName, &p.ContactEmail, &p.ContactPhone,
			&p.Industry, &p.SizeCategory, &p.RevenueBand, &p.Stage, &p.Temperature, &p.LeadStatus,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, p)
	}

	return items, rows.Err()
}

// UpdateStage moves a prospect to a new stage and records the transition.
// Both writes share a transaction so the audit trail cannot drift.
func (r *Repository) UpdateStage(ctx context.Context, id, tenantID uuid.UUID, from, to domain.Stage, trigger string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE prospects
		SET stage = $3, updated_at = now()
		WHERE id = $1 AND tenant_id = $2 AND stage = $4
	`, id, tenantID, to, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Stage moved under us; the caller re-reads and retries.
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO stage_transitions (tenant_id, prospect_id, from_stage, to_stage, trigger)
		VALUES ($1, $2, $3, $4, $5)
	`, tenantID, id, from, to, trigger); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// UpdateEngagementFields persists event-driven temperature and status.
func (r *Repository) UpdateEngagementFields(ctx context.Context, id, tenantID uuid.UUID, temp domain.Temperature, status domain.LeadStatus) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE prospects
		SET temperature = $3, lead_status = $4, updated_at = now()
		WHERE id = $1 AND tenant_id = $2
	`, id, tenantID, temp, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateTemperature persists a recompute-derived temperature only.
func (r *Repository) UpdateTemperature(ctx context.Context, id, tenantID uuid.UUID, temp domain.Temperature) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE prospects
		SET temperature = $3, updated_at = now()
		WHERE id = $1 AND tenant_id = $2
	`, id, tenantID, temp)
	return err
}

type StageTransition struct {
	ID         uuid.UUID
	ProspectID uuid.UUID
	FromStage  domain.Stage
	ToStage    domain.Stage
	Trigger    string
	CreatedAt  time.Time
}

func (r *Repository) ListStageTransitions(ctx context.Context, prospectID, tenantID uuid.UUID) ([]StageTransition, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, prospect_id, from_stage, to_stage, trigger, created_at
		FROM stage_transitions
		WHERE prospect_id = $1 AND tenant_id = $2
		ORDER BY created_at ASC
	`, prospectID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]StageTransition, 0)
	for rows.Next() {
		var t StageTransition
		if err := rows.Scan(&t.ID, &t.ProspectID, &t.FromStage, &t.ToStage, &t.Trigger, &t.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, t)
	}

	return items, rows.Err()
}
