// Package signals provides the engagement signal ingest surface: external
// integrations push email activity events which are validated, deduplicated,
// classified (for replies), and fed into scoring and lifecycle updates.
package signals

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"outreach_backend/internal/classifier"
	"outreach_backend/internal/events"
	"outreach_backend/internal/lifecycle"
	"outreach_backend/internal/prospects/domain"
	"outreach_backend/internal/prospects/repository"
	"outreach_backend/internal/scoring"
	"outreach_backend/platform/apperr"
	"outreach_backend/platform/logger"
	"outreach_backend/platform/sanitize"

	"github.com/google/uuid"
)

// ProspectStore is the slice of the prospects repository the collector needs.
type ProspectStore interface {
	GetByID(ctx context.Context, id, tenantID uuid.UUID) (repository.Prospect, error)
	InsertEvent(ctx context.Context, params repository.InsertEventParams) (bool, error)
	UpdateEngagementFields(ctx context.Context, id, tenantID uuid.UUID, temp domain.Temperature, status domain.LeadStatus) error
}

// RecomputeEnqueuer schedules an asynchronous score recompute.
type RecomputeEnqueuer interface {
	EnqueueRecompute(ctx context.Context, tenantID, prospectID uuid.UUID) error
}

// EventRequest is one engagement event pushed by an integration.
type EventRequest struct {
	ProspectID    uuid.UUID  `json:"prospectId" validate:"required"`
	ExternalID    string     `json:"externalId" validate:"required,min=1,max=200"`
	Kind          string     `json:"kind" validate:"required"`
	OccurredAt    *time.Time `json:"occurredAt" validate:"required"`
	IntegrationID string     `json:"integrationId" validate:"omitempty,max=120"`
	Content       string     `json:"content"`
}

// EventResponse reports the outcome of a signal submission.
type EventResponse struct {
	Recorded       bool               `json:"recorded"`
	Duplicate      bool               `json:"duplicate"`
	Classification *classifier.Result `json:"classification,omitempty"`
}

// Collector validates, stores, and fans out engagement signals.
type Collector struct {
	store      ProspectStore
	classifier *classifier.Classifier
	bus        events.Bus
	enqueuer   RecomputeEnqueuer
	log        *logger.Logger
}

// NewCollector creates a new signal collector.
func NewCollector(store ProspectStore, cls *classifier.Classifier, bus events.Bus, enqueuer RecomputeEnqueuer, log *logger.Logger) *Collector {
	return &Collector{store: store, classifier: cls, bus: bus, enqueuer: enqueuer, log: log}
}

// Record processes one engagement event. Replays of an already-recorded
// external ID are accepted as no-ops so integrations can retry safely.
func (c *Collector) Record(ctx context.Context, tenantID uuid.UUID, req EventRequest) (*EventResponse, error) {
	if !scoring.KnownEventKind(req.Kind) {
		c.log.SignalRejected(req.ProspectID.String(), req.Kind, "unknown event kind")
		return nil, apperr.Validation(fmt.Sprintf("unknown event kind %q", req.Kind))
	}
	if req.OccurredAt == nil {
		c.log.SignalRejected(req.ProspectID.String(), req.Kind, "missing occurredAt timestamp")
		return nil, apperr.Validation("occurredAt is required")
	}

	prospect, err := c.store.GetByID(ctx, req.ProspectID, tenantID)
	if err != nil {
		if err == repository.ErrNotFound {
			c.log.SignalRejected(req.ProspectID.String(), req.Kind, "unknown prospect")
			return nil, apperr.NotFound("prospect not found")
		}
		return nil, fmt.Errorf("load prospect: %w", err)
	}

	params := repository.InsertEventParams{
		TenantID:      tenantID,
		ProspectID:    req.ProspectID,
		IntegrationID: req.IntegrationID,
		ExternalID:    req.ExternalID,
		Kind:          req.Kind,
		OccurredAt:    *req.OccurredAt,
	}

	var result *classifier.Result
	if scoring.EventKind(req.Kind) == scoring.KindReplied {
		text := sanitize.Text(req.Content)
		r := c.classifier.Classify(text)
		result = &r

		sentiment := string(r.Sentiment)
		intent := string(r.Intent)
		confidence := string(r.Confidence)
		params.ReplyText = &text
		params.ReplySentiment = &sentiment
		params.ReplyIntent = &intent
		params.ReplyConfidence = &confidence
		params.NeedsHumanReview = r.NeedsHumanReview
	}

	inserted, err := c.store.InsertEvent(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	if !inserted {
		return &EventResponse{Recorded: false, Duplicate: true}, nil
	}

	update := lifecycle.ApplyEngagement(prospect.Temperature, prospect.LeadStatus, lifecycle.EngagementSignal{
		Kind:  scoring.EventKind(req.Kind),
		Reply: result,
	})
	if update.Changed {
		if err := c.store.UpdateEngagementFields(ctx, req.ProspectID, tenantID, update.Temperature, update.Status); err != nil {
			return nil, fmt.Errorf("update engagement fields: %w", err)
		}
	}

	if c.enqueuer != nil {
		if err := c.enqueuer.EnqueueRecompute(ctx, tenantID, req.ProspectID); err != nil {
			c.log.Error("failed to enqueue recompute", "error", err, "prospect_id", req.ProspectID)
		}
	}

	c.bus.Publish(ctx, events.SignalRecorded{
		BaseEvent:  events.NewBaseEvent(),
		TenantID:   tenantID,
		ProspectID: req.ProspectID,
		Kind:       req.Kind,
		ExternalID: req.ExternalID,
	})

	if result != nil {
		c.bus.Publish(ctx, events.ReplyClassified{
			BaseEvent:   events.NewBaseEvent(),
			TenantID:    tenantID,
			ProspectID:  req.ProspectID,
			CompanyName: prospect.CompanyName,
			Result:      *result,
			Snippet:     snippet(sanitize.Text(req.Content), 200),
		})
	}

	return &EventResponse{Recorded: true, Classification: result}, nil
}

// Preview classifies content without storing anything. Used by operators to
// inspect how a reply would be handled.
func (c *Collector) Preview(content string) classifier.Result {
	return c.classifier.Classify(sanitize.Text(content))
}

// snippet truncates s to at most max bytes without splitting a rune.
func snippet(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
