package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"outreach_backend/internal/assignment"
	"outreach_backend/internal/events"
	"outreach_backend/internal/prospects/domain"
	"outreach_backend/internal/prospects/repository"
	"outreach_backend/platform/apperr"
	"outreach_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Score bands used to detect a material change. Crossing a band boundary
// re-runs assignment resolution.
func scoreBand(score int) int {
	switch {
	case score >= 80:
		return 3
	case score >= 60:
		return 2
	case score >= 40:
		return 1
	default:
		return 0
	}
}

// Service orchestrates score recomputes: it loads the prospect's inputs,
// runs the pure scoring functions, persists the result, and resolves a new
// campaign assignment when the outcome changed materially.
type Service struct {
	repo *repository.Repository
	bus  events.Bus
	log  *logger.Logger

	// locks serializes recomputes per (tenant, prospect) so concurrent
	// signal bursts cannot interleave read-compute-write cycles.
	locks sync.Map
}

// NewService creates a new scoring service.
func NewService(repo *repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Recompute recalculates both scores for a prospect and persists the result.
// Safe to call repeatedly; the computation only depends on stored inputs.
func (s *Service) Recompute(ctx context.Context, tenantID, prospectID uuid.UUID) error {
	key := tenantID.String() + ":" + prospectID.String()
	muAny, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	mu := muAny.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()

	prospect, err := s.repo.GetByID(ctx, prospectID, tenantID)
	if err != nil {
		if err == repository.ErrNotFound {
			return apperr.NotFound("prospect not found")
		}
		return fmt.Errorf("load prospect: %w", err)
	}

	var (
		snapshots     []repository.AnalysisSnapshot
		opportunities []repository.Opportunity
		eventRows     []repository.EngagementEvent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snapshots, err = s.repo.ListCompletedSnapshots(gctx, prospectID, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		opportunities, err = s.repo.ListOpportunities(gctx, prospectID, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		eventRows, err = s.repo.ListEvents(gctx, prospectID, tenantID)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load scoring inputs: %w", err)
	}

	oppInputs := make([]OpportunityInput, len(opportunities))
	for i, o := range opportunities {
		oppInputs[i] = OpportunityInput{
			PriorityScore: o.PriorityScore,
			ServiceTier:   o.ServiceTier,
			ROIEstimate:   o.ROIEstimate,
		}
	}

	analysisTypes := make([]string, len(snapshots))
	for i, sn := range snapshots {
		analysisTypes[i] = sn.AnalysisType
	}

	engEvents := make([]EngagementEvent, 0, len(eventRows))
	for _, e := range eventRows {
		if !KnownEventKind(e.Kind) {
			continue
		}
		engEvents = append(engEvents, EngagementEvent{
			Kind:       EventKind(e.Kind),
			OccurredAt: e.OccurredAt,
		})
	}

	lead := LeadScore(prospect.SizeCategory, oppInputs, analysisTypes)
	engagement := EngagementScore(engEvents, time.Now())
	temperature := deriveTemperature(prospect.Temperature, engagement.Score)

	previous, prevErr := s.repo.GetScoreRecord(ctx, prospectID, tenantID)
	hadPrevious := prevErr == nil
	if prevErr != nil && prevErr != repository.ErrNotFound {
		return fmt.Errorf("load previous score: %w", prevErr)
	}

	factors := map[string]map[string]float64{
		"lead":       lead.Factors,
		"engagement": engagement.Factors,
	}
	factorsJSON, err := json.Marshal(factors)
	if err != nil {
		return fmt.Errorf("marshal factors: %w", err)
	}

	if err := s.repo.UpsertScoreRecord(ctx, repository.UpsertScoreParams{
		TenantID:        tenantID,
		ProspectID:      prospectID,
		LeadScore:       lead.Score,
		EngagementScore: engagement.Score,
		Temperature:     temperature,
		Factors:         factorsJSON,
		ScoreVersion:    scoreVersion,
	}); err != nil {
		return fmt.Errorf("upsert score record: %w", err)
	}

	if temperature != prospect.Temperature {
		if err := s.repo.UpdateTemperature(ctx, prospectID, tenantID, temperature); err != nil {
			return fmt.Errorf("update temperature: %w", err)
		}
	}

	s.log.ScoreRecomputed(prospectID.String(), lead.Score, engagement.Score, string(temperature))
	s.bus.Publish(ctx, events.ScoreRecomputed{
		BaseEvent:       events.NewBaseEvent(),
		TenantID:        tenantID,
		ProspectID:      prospectID,
		LeadScore:       lead.Score,
		EngagementScore: engagement.Score,
		Temperature:     temperature,
	})

	material := !hadPrevious ||
		scoreBand(previous.LeadScore) != scoreBand(lead.Score) ||
		scoreBand(previous.EngagementScore) != scoreBand(engagement.Score)
	if !material {
		return nil
	}

	resolved := assignment.Resolve(assignment.Input{
		LeadScore:        lead.Score,
		ROIPotential:     ROIPotential(oppInputs),
		Industry:         prospect.Industry,
		CompanySize:      prospect.SizeCategory,
		OpportunityCount: len(opportunities),
	})

	if _, err := s.repo.InsertAssignment(ctx, repository.InsertAssignmentParams{
		TenantID:   tenantID,
		ProspectID: prospectID,
		CampaignID: resolved.CampaignID,
		SequenceID: resolved.SequenceID,
		DelayHours: resolved.DelayHours,
		Priority:   string(resolved.Priority),
		Reason:     resolved.Reason,
	}); err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}

	s.bus.Publish(ctx, events.AssignmentChanged{
		BaseEvent:  events.NewBaseEvent(),
		TenantID:   tenantID,
		ProspectID: prospectID,
		CampaignID: resolved.CampaignID,
		SequenceID: resolved.SequenceID,
		Priority:   string(resolved.Priority),
		Reason:     resolved.Reason,
	})

	return nil
}

// deriveTemperature lifts the temperature to an engagement-score floor.
// Downgrades stay event-driven (negative replies, unsubscribes), so the
// recompute never cools a prospect that a recent signal marked hot.
func deriveTemperature(current domain.Temperature, engagementScore int) domain.Temperature {
	var floor domain.Temperature
	switch {
	case engagementScore >= 75:
		floor = domain.TemperatureHot
	case engagementScore >= 40:
		floor = domain.TemperatureWarm
	default:
		floor = domain.TemperatureCold
	}

	if floor.Rank() > current.Rank() {
		return floor
	}
	return current
}
