package service

import (
	"context"
	"fmt"

	"outreach_backend/internal/events"
	"outreach_backend/internal/lifecycle"
	"outreach_backend/internal/prospects/domain"
	"outreach_backend/internal/prospects/repository"
	"outreach_backend/internal/prospects/transport"
	"outreach_backend/platform/apperr"
	"outreach_backend/platform/logger"
	"outreach_backend/platform/phone"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RecomputeEnqueuer is the narrow interface the service needs to request an
// asynchronous score recompute. Implemented by the scheduler client.
type RecomputeEnqueuer interface {
	EnqueueRecompute(ctx context.Context, tenantID, prospectID uuid.UUID) error
}

// Service provides business logic for prospects: registration, analysis
// snapshots, opportunities, and lifecycle stage management.
type Service struct {
	repo     *repository.Repository
	bus      events.Bus
	enqueuer RecomputeEnqueuer
	log      *logger.Logger
}

// New creates a new prospects service.
func New(repo *repository.Repository, bus events.Bus, enqueuer RecomputeEnqueuer, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, enqueuer: enqueuer, log: log}
}

// Repository exposes the repository for cross-module wiring.
func (s *Service) Repository() *repository.Repository {
	return s.repo
}

// Create registers a new prospect in the identified stage.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, req transport.CreateProspectRequest) (*transport.ProspectResponse, error) {
	phoneNumber := phone.NormalizeE164(req.ContactPhone)

	sizeCategory := req.SizeCategory
	if sizeCategory == "" {
		sizeCategory = "unknown"
	}

	p, err := s.repo.Create(ctx, repository.CreateProspectParams{
		TenantID:     tenantID,
		CompanyName:  req.CompanyName,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: phoneNumber,
		Industry:     req.Industry,
		SizeCategory: sizeCategory,
		RevenueBand:  req.RevenueBand,
	})
	if err != nil {
		return nil, fmt.Errorf("create prospect: %w", err)
	}

	resp := toProspectResponse(p)
	return &resp, nil
}

// List returns a page of prospects, optionally filtered by stage.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, stage *domain.Stage, limit, offset int) (*transport.ListProspectsResponse, error) {
	if stage != nil && !stage.Valid() {
		return nil, apperr.Validation("unknown stage filter")
	}

	items, err := s.repo.List(ctx, tenantID, stage, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list prospects: %w", err)
	}

	resp := &transport.ListProspectsResponse{
		Items:  make([]transport.ProspectResponse, len(items)),
		Limit:  limit,
		Offset: offset,
	}
	for i, p := range items {
		resp.Items[i] = toProspectResponse(p)
	}
	return resp, nil
}

// GetDetail aggregates the prospect with its score, assignment, snapshots,
// opportunities, and stage history. The independent reads run concurrently.
func (s *Service) GetDetail(ctx context.Context, id, tenantID uuid.UUID) (*transport.ProspectDetailResponse, error) {
	p, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, mapRepoErr(err, "prospect")
	}

	detail := &transport.ProspectDetailResponse{Prospect: toProspectResponse(p)}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		record, err := s.repo.GetScoreRecord(gctx, id, tenantID)
		if err != nil {
			if err == repository.ErrNotFound {
				return nil
			}
			return err
		}
		detail.Score = &transport.ScoreResponse{
			LeadScore:       record.LeadScore,
			EngagementScore: record.EngagementScore,
			Temperature:     record.Temperature,
			Factors:         record.Factors,
			ScoreVersion:    record.ScoreVersion,
			UpdatedAt:       record.UpdatedAt,
		}
		return nil
	})

	g.Go(func() error {
		a, err := s.repo.LatestAssignment(gctx, id, tenantID)
		if err != nil {
			if err == repository.ErrNotFound {
				return nil
			}
			return err
		}
		detail.Assignment = &transport.AssignmentResponse{
			CampaignID: a.CampaignID,
			SequenceID: a.SequenceID,
			DelayHours: a.DelayHours,
			Priority:   a.Priority,
			Reason:     a.Reason,
			CreatedAt:  a.CreatedAt,
		}
		return nil
	})

	g.Go(func() error {
		snaps, err := s.repo.ListCompletedSnapshots(gctx, id, tenantID)
		if err != nil {
			return err
		}
		detail.Snapshots = make([]transport.SnapshotResponse, len(snaps))
		for i, sn := range snaps {
			detail.Snapshots[i] = transport.SnapshotResponse{
				ID:           sn.ID,
				AnalysisType: sn.AnalysisType,
				Version:      sn.Version,
				Completed:    sn.Completed,
				QualityScore: sn.QualityScore,
				Content:      sn.Content,
				CreatedAt:    sn.CreatedAt,
			}
		}
		return nil
	})

	g.Go(func() error {
		opps, err := s.repo.ListOpportunities(gctx, id, tenantID)
		if err != nil {
			return err
		}
		detail.Opportunities = make([]transport.OpportunityResponse, len(opps))
		for i, o := range opps {
			detail.Opportunities[i] = transport.OpportunityResponse{
				ID:            o.ID,
				Title:         o.Title,
				PriorityScore: o.PriorityScore,
				ServiceTier:   o.ServiceTier,
				ROIEstimate:   o.ROIEstimate,
				CreatedAt:     o.CreatedAt,
			}
		}
		return nil
	})

	g.Go(func() error {
		history, err := s.repo.ListStageTransitions(gctx, id, tenantID)
		if err != nil {
			return err
		}
		detail.StageHistory = make([]transport.StageTransitionResponse, len(history))
		for i, t := range history {
			detail.StageHistory[i] = transport.StageTransitionResponse{
				FromStage: t.FromStage,
				ToStage:   t.ToStage,
				Trigger:   t.Trigger,
				CreatedAt: t.CreatedAt,
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load prospect detail: %w", err)
	}
	return detail, nil
}

// RecordSnapshot stores an analysis snapshot, auto-advances the lifecycle
// stage one step, and schedules a score recompute. Snapshot versions must be
// strictly increasing per prospect.
func (s *Service) RecordSnapshot(ctx context.Context, tenantID, prospectID uuid.UUID, req transport.RecordSnapshotRequest) (*transport.SnapshotResponse, error) {
	p, err := s.repo.GetByID(ctx, prospectID, tenantID)
	if err != nil {
		return nil, mapRepoErr(err, "prospect")
	}

	latest, err := s.repo.LatestSnapshotVersion(ctx, prospectID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("latest snapshot version: %w", err)
	}
	if req.Version <= latest {
		return nil, apperr.Conflict(fmt.Sprintf("snapshot version %d is not after current version %d", req.Version, latest))
	}

	snap, err := s.repo.InsertSnapshot(ctx, repository.InsertSnapshotParams{
		TenantID:     tenantID,
		ProspectID:   prospectID,
		AnalysisType: req.AnalysisType,
		Version:      req.Version,
		Completed:    req.Completed,
		QualityScore: req.QualityScore,
		Content:      req.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}

	if next, advanced := lifecycle.AdvanceOnAnalysis(p.Stage); advanced {
		if err := s.repo.UpdateStage(ctx, prospectID, tenantID, p.Stage, next, "analysis_snapshot"); err != nil {
			return nil, fmt.Errorf("advance stage: %w", err)
		}
		s.log.StageChanged(prospectID.String(), string(p.Stage), string(next))
		s.bus.Publish(ctx, events.StageChanged{
			BaseEvent:   events.NewBaseEvent(),
			TenantID:    tenantID,
			ProspectID:  prospectID,
			CompanyName: p.CompanyName,
			FromStage:   p.Stage,
			ToStage:     next,
			Trigger:     "analysis_snapshot",
		})
	}

	s.requestRecompute(ctx, tenantID, prospectID)

	return &transport.SnapshotResponse{
		ID:           snap.ID,
		AnalysisType: snap.AnalysisType,
		Version:      snap.Version,
		Completed:    snap.Completed,
		QualityScore: snap.QualityScore,
		Content:      snap.Content,
		CreatedAt:    snap.CreatedAt,
	}, nil
}

// AddOpportunity attaches an opportunity and schedules a recompute, since
// opportunity value feeds both the lead score and the assignment decision.
func (s *Service) AddOpportunity(ctx context.Context, tenantID, prospectID uuid.UUID, req transport.AddOpportunityRequest) (*transport.OpportunityResponse, error) {
	if _, err := s.repo.GetByID(ctx, prospectID, tenantID); err != nil {
		return nil, mapRepoErr(err, "prospect")
	}

	o, err := s.repo.InsertOpportunity(ctx, repository.InsertOpportunityParams{
		TenantID:      tenantID,
		ProspectID:    prospectID,
		Title:         req.Title,
		PriorityScore: req.PriorityScore,
		ServiceTier:   req.ServiceTier,
		ROIEstimate:   req.ROIEstimate,
	})
	if err != nil {
		return nil, fmt.Errorf("insert opportunity: %w", err)
	}

	s.requestRecompute(ctx, tenantID, prospectID)

	return &transport.OpportunityResponse{
		ID:            o.ID,
		Title:         o.Title,
		PriorityScore: o.PriorityScore,
		ServiceTier:   o.ServiceTier,
		ROIEstimate:   o.ROIEstimate,
		CreatedAt:     o.CreatedAt,
	}, nil
}

// UpdateStage performs an operator-driven stage move. Only forward moves are
// allowed; reaching qualified also pins the temperature to qualified.
func (s *Service) UpdateStage(ctx context.Context, tenantID, prospectID uuid.UUID, req transport.UpdateStageRequest) (*transport.ProspectResponse, error) {
	p, err := s.repo.GetByID(ctx, prospectID, tenantID)
	if err != nil {
		return nil, mapRepoErr(err, "prospect")
	}

	if p.Stage == req.Stage {
		resp := toProspectResponse(p)
		return &resp, nil
	}
	if !p.Stage.CanAdvanceTo(req.Stage) {
		return nil, apperr.Validation(fmt.Sprintf("cannot move from %s to %s", p.Stage, req.Stage))
	}

	trigger := req.Trigger
	if trigger == "" {
		trigger = "manual"
	}

	if err := s.repo.UpdateStage(ctx, prospectID, tenantID, p.Stage, req.Stage, trigger); err != nil {
		return nil, fmt.Errorf("update stage: %w", err)
	}

	if req.Stage == domain.StageQualified && p.Temperature.Rank() < domain.TemperatureQualified.Rank() {
		if err := s.repo.UpdateTemperature(ctx, prospectID, tenantID, domain.TemperatureQualified); err != nil {
			return nil, fmt.Errorf("update temperature: %w", err)
		}
	}

	s.log.StageChanged(prospectID.String(), string(p.Stage), string(req.Stage))
	s.bus.Publish(ctx, events.StageChanged{
		BaseEvent:   events.NewBaseEvent(),
		TenantID:    tenantID,
		ProspectID:  prospectID,
		CompanyName: p.CompanyName,
		FromStage:   p.Stage,
		ToStage:     req.Stage,
		Trigger:     trigger,
	})

	updated, err := s.repo.GetByID(ctx, prospectID, tenantID)
	if err != nil {
		return nil, mapRepoErr(err, "prospect")
	}
	resp := toProspectResponse(updated)
	return &resp, nil
}

// RequestRecompute schedules an asynchronous recompute for a prospect.
func (s *Service) RequestRecompute(ctx context.Context, tenantID, prospectID uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, prospectID, tenantID); err != nil {
		return mapRepoErr(err, "prospect")
	}
	s.requestRecompute(ctx, tenantID, prospectID)
	return nil
}

func (s *Service) requestRecompute(ctx context.Context, tenantID, prospectID uuid.UUID) {
	if s.enqueuer == nil {
		return
	}
	if err := s.enqueuer.EnqueueRecompute(ctx, tenantID, prospectID); err != nil {
		s.log.Error("failed to enqueue recompute", "error", err, "prospect_id", prospectID)
	}
}

func toProspectResponse(p repository.Prospect) transport.ProspectResponse {
	return transport.ProspectResponse{
		ID:           p.ID,
		CompanyName:  p.CompanyName,
		ContactName:  p.ContactName,
		ContactEmail: p.ContactEmail,
		ContactPhone: p.ContactPhone,
		Industry:     p.Industry,
		SizeCategory: p.SizeCategory,
		RevenueBand:  p.RevenueBand,
		Stage:        p.Stage,
		Temperature:  p.Temperature,
		LeadStatus:   p.LeadStatus,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func mapRepoErr(err error, entity string) error {
	if err == repository.ErrNotFound {
		return apperr.NotFound(entity + " not found")
	}
	return err
}
