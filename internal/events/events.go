// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"outreach_backend/internal/classifier"
	"outreach_backend/internal/prospects/domain"
	"outreach_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Signal Domain Events
// =============================================================================

// SignalRecorded is published when a new engagement event is appended to a
// prospect's log. Duplicates never publish this event.
type SignalRecorded struct {
	BaseEvent
	TenantID   uuid.UUID `json:"tenantId"`
	ProspectID uuid.UUID `json:"prospectId"`
	Kind       string    `json:"kind"`
	ExternalID string    `json:"externalId"`
}

func (e SignalRecorded) EventName() string { return "signals.event.recorded" }

// ReplyClassified is published when a replied event's content has been run
// through the classifier.
type ReplyClassified struct {
	BaseEvent
	TenantID    uuid.UUID         `json:"tenantId"`
	ProspectID  uuid.UUID         `json:"prospectId"`
	CompanyName string            `json:"companyName"`
	Result      classifier.Result `json:"result"`
	Snippet     string            `json:"snippet"`
}

func (e ReplyClassified) EventName() string { return "signals.reply.classified" }

// =============================================================================
// Prospect Domain Events
// =============================================================================

// ScoreRecomputed is published after a successful score recompute.
type ScoreRecomputed struct {
	BaseEvent
	TenantID        uuid.UUID          `json:"tenantId"`
	ProspectID      uuid.UUID          `json:"prospectId"`
	LeadScore       int                `json:"leadScore"`
	EngagementScore int                `json:"engagementScore"`
	Temperature     domain.Temperature `json:"temperature"`
}

func (e ScoreRecomputed) EventName() string { return "prospects.score.recomputed" }

// StageChanged is published when a prospect's lifecycle stage moves, carrying
// both endpoints for downstream automation.
type StageChanged struct {
	BaseEvent
	TenantID    uuid.UUID    `json:"tenantId"`
	ProspectID  uuid.UUID    `json:"prospectId"`
	CompanyName string       `json:"companyName"`
	FromStage   domain.Stage `json:"fromStage"`
	ToStage     domain.Stage `json:"toStage"`
	Trigger     string       `json:"trigger"`
}

func (e StageChanged) EventName() string { return "prospects.stage.changed" }

// AssignmentChanged is published when the resolver produces a new campaign
// assignment for a prospect.
type AssignmentChanged struct {
	BaseEvent
	TenantID   uuid.UUID `json:"tenantId"`
	ProspectID uuid.UUID `json:"prospectId"`
	CampaignID string    `json:"campaignId"`
	SequenceID string    `json:"sequenceId"`
	Priority   string    `json:"priority"`
	Reason     string    `json:"reason"`
}

func (e AssignmentChanged) EventName() string { return "prospects.assignment.changed" }
