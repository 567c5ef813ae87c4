package transport

import (
	"encoding/json"
	"time"

	"outreach_backend/internal/prospects/domain"

	"github.com/google/uuid"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// CreateProspectRequest is the request body for registering a new prospect.
type CreateProspectRequest struct {
	CompanyName  string  `json:"companyName" validate:"required,min=1,max=300"`
	ContactName  string  `json:"contactName" validate:"omitempty,max=200"`
	ContactEmail *string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone string  `json:"contactPhone" validate:"omitempty,max=40"`
	Industry     string  `json:"industry" validate:"omitempty,max=120"`
	SizeCategory string  `json:"sizeCategory" validate:"omitempty,oneof=enterprise large medium small unknown"`
	RevenueBand  string  `json:"revenueBand" validate:"omitempty,max=60"`
}

// RecordSnapshotRequest is the request body for recording an analysis snapshot.
type RecordSnapshotRequest struct {
	AnalysisType string          `json:"analysisType" validate:"required,min=1,max=80"`
	Version      int             `json:"version" validate:"required,min=1"`
	Completed    bool            `json:"completed"`
	QualityScore *int            `json:"qualityScore" validate:"omitempty,min=0,max=100"`
	Content      json.RawMessage `json:"content"`
}

// AddOpportunityRequest is the request body for attaching an opportunity.
type AddOpportunityRequest struct {
	Title         string  `json:"title" validate:"omitempty,max=300"`
	PriorityScore int     `json:"priorityScore" validate:"required,min=1,max=100"`
	ServiceTier   *string `json:"serviceTier" validate:"omitempty,max=60"`
	ROIEstimate   float64 `json:"roiEstimate" validate:"min=0"`
}

// UpdateStageRequest is the request body for an operator-driven stage move.
type UpdateStageRequest struct {
	Stage   domain.Stage `json:"stage" validate:"required,oneof=identified analyzing analyzed contacted qualified disqualified converted"`
	Trigger string       `json:"trigger" validate:"omitempty,max=200"`
}

// PreviewAssignmentRequest feeds the resolver directly, without persisting.
type PreviewAssignmentRequest struct {
	LeadScore        int     `json:"leadScore" validate:"min=0,max=100"`
	ROIPotential     float64 `json:"roiPotential" validate:"min=0"`
	Industry         string  `json:"industry" validate:"omitempty,max=120"`
	CompanySize      string  `json:"companySize" validate:"omitempty,oneof=enterprise large medium small unknown"`
	OpportunityCount int     `json:"opportunityCount" validate:"min=0"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// ProspectResponse is the API representation of a prospect.
type ProspectResponse struct {
	ID           uuid.UUID          `json:"id"`
	CompanyName  string             `json:"companyName"`
	ContactName  string             `json:"contactName"`
	ContactEmail *string            `json:"contactEmail,omitempty"`
	ContactPhone string             `json:"contactPhone"`
	Industry     string             `json:"industry"`
	SizeCategory string             `json:"sizeCategory"`
	RevenueBand  string             `json:"revenueBand"`
	Stage        domain.Stage       `json:"stage"`
	Temperature  domain.Temperature `json:"temperature"`
	LeadStatus   domain.LeadStatus  `json:"leadStatus"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// ScoreResponse reports the latest persisted scores for a prospect.
type ScoreResponse struct {
	LeadScore       int                `json:"leadScore"`
	EngagementScore int                `json:"engagementScore"`
	Temperature     domain.Temperature `json:"temperature"`
	Factors         json.RawMessage    `json:"factors,omitempty"`
	ScoreVersion    string             `json:"scoreVersion"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// AssignmentResponse reports the active campaign assignment.
type AssignmentResponse struct {
	CampaignID string    `json:"campaignId"`
	SequenceID string    `json:"sequenceId"`
	DelayHours float64   `json:"delayHours"`
	Priority   string    `json:"priority"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SnapshotResponse is the API representation of an analysis snapshot.
type SnapshotResponse struct {
	ID           uuid.UUID       `json:"id"`
	AnalysisType string          `json:"analysisType"`
	Version      int             `json:"version"`
	Completed    bool            `json:"completed"`
	QualityScore *int            `json:"qualityScore,omitempty"`
	Content      json.RawMessage `json:"content,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// OpportunityResponse is the API representation of an opportunity.
type OpportunityResponse struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	PriorityScore int       `json:"priorityScore"`
	ServiceTier   *string   `json:"serviceTier,omitempty"`
	ROIEstimate   float64   `json:"roiEstimate"`
	CreatedAt     time.Time `json:"createdAt"`
}

// StageTransitionResponse is one entry in a prospect's stage history.
type StageTransitionResponse struct {
	FromStage domain.Stage `json:"fromStage"`
	ToStage   domain.Stage `json:"toStage"`
	Trigger   string       `json:"trigger"`
	CreatedAt time.Time    `json:"createdAt"`
}

// ProspectDetailResponse aggregates a prospect with its scoring context.
type ProspectDetailResponse struct {
	Prospect      ProspectResponse          `json:"prospect"`
	Score         *ScoreResponse            `json:"score,omitempty"`
	Assignment    *AssignmentResponse       `json:"assignment,omitempty"`
	Snapshots     []SnapshotResponse        `json:"snapshots"`
	Opportunities []OpportunityResponse     `json:"opportunities"`
	StageHistory  []StageTransitionResponse `json:"stageHistory"`
}

// ListProspectsResponse is the paginated list payload.
type ListProspectsResponse struct {
	Items  []ProspectResponse `json:"items"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}
