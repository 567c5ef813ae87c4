package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type EngagementEvent struct {
	ID               uuid.UUID
	ProspectID       uuid.UUID
	IntegrationID    string
	ExternalID       string
	Kind             string
	OccurredAt       time.Time
	ReplyText        *string
	ReplySentiment   *string
	ReplyIntent      *string
	ReplyConfidence  *string
	NeedsHumanReview bool
	RecordedAt       time.Time
}

type InsertEventParams struct {
	TenantID         uuid.UUID
	ProspectID       uuid.UUID
	IntegrationID    string
	ExternalID       string
	Kind             string
	OccurredAt       time.Time
	ReplyText        *string
	ReplySentiment   *string
	ReplyIntent      *string
	ReplyConfidence  *string
	NeedsHumanReview bool
}

// InsertEvent appends an engagement event. The unique index on
// (tenant_id, prospect_id, external_id) makes replays a no-op; the returned
// bool reports whether a row was actually written.
func (r *Repository) InsertEvent(ctx context.Context, params InsertEventParams) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO engagement_events (
			tenant_id, prospect_id, integration_id, external_id, kind, occurred_at,
			reply_text, reply_sentiment, reply_intent, reply_confidence, needs_human_review
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (tenant_id, prospect_id, external_id) DO NOTHING
	`, params.TenantID, params.ProspectID, params.IntegrationID, params.ExternalID, params.Kind, params.OccurredAt,
		params.ReplyText, params.ReplySentiment, params.ReplyIntent, params.ReplyConfidence, params.NeedsHumanReview)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) ListEvents(ctx context.Context, prospectID, tenantID uuid.UUID) ([]EngagementEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, prospect_id, integration_id, external_id, kind, occurred_at,
			reply_text, reply_sentiment, reply_intent, reply_confidence, needs_human_review, recorded_at
		FROM engagement_events
		WHERE prospect_id = $1 AND tenant_id = $2
		ORDER BY occurred_at ASC
	`, prospectID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]EngagementEvent, 0)
	for rows.Next() {
		var e EngagementEvent
		if err := rows.Scan(
			&e.ID, &e.ProspectID, &e.IntegrationID, &e.ExternalID, &e.Kind, &e.OccurredAt,
			&e.ReplyText, &e.ReplySentiment, &e.ReplyIntent, &e.ReplyConfidence, &e.NeedsHumanReview, &e.RecordedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, e)
	}

	return items, rows.Err()
}

type IngestKey struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	Name       string
	SecretHash string
	RevokedAt  *time.Time
}

// GetIngestKey looks up an active ingest key by its public identifier.
func (r *Repository) GetIngestKey(ctx context.Context, id uuid.UUID) (IngestKey, error) {
	var k IngestKey
	err := r.pool.QueryRow(ctx, `
		SELECT id, tenant_id, name, secret_hash, revoked_at
		FROM ingest_keys
		WHERE id = $1 AND revoked_at IS NULL
	`, id).Scan(&k.ID, &k.TenantID, &k.Name, &k.SecretHash, &k.RevokedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return IngestKey{}, ErrNotFound
	}
	return k, err
}
