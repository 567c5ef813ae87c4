// Package lifecycle holds the prospect state machine rules: automatic stage
// advancement on analysis completion, and event-driven temperature and status
// updates. The rules are pure; services apply the returned decisions.
package lifecycle

import (
	"outreach_backend/internal/classifier"
	"outreach_backend/internal/prospects/domain"
	"outreach_backend/internal/scoring"
)

// AdvanceOnAnalysis returns the next stage after a new analysis snapshot
// arrives. Only identified and analyzing auto-advance, one step at a time;
// every other stage is a no-op, which makes repeated triggers idempotent.
func AdvanceOnAnalysis(current domain.Stage) (domain.Stage, bool) {
	switch current {
	case domain.StageIdentified:
		return domain.StageAnalyzing, true
	case domain.StageAnalyzing:
		return domain.StageAnalyzed, true
	default:
		return current, false
	}
}

// EngagementSignal is a classified activity event applied to the mutable
// temperature and status fields.
type EngagementSignal struct {
	Kind  scoring.EventKind
	Reply *classifier.Result // set for replied events
}

// FieldUpdate is the outcome of applying a signal.
type FieldUpdate struct {
	Temperature domain.Temperature
	Status      domain.LeadStatus
	Changed     bool
}

// ApplyEngagement applies an engagement signal to the current temperature and
// status. Temperature is not monotonic: the most recent signal is treated as
// authoritative, so a negative reply downgrades a previously hot prospect.
func ApplyEngagement(temp domain.Temperature, status domain.LeadStatus, sig EngagementSignal) FieldUpdate {
	next := FieldUpdate{Temperature: temp, Status: status}

	switch sig.Kind {
	case scoring.KindReplied:
		next.Status = domain.StatusReplied
		if sig.Reply != nil {
			switch {
			case sig.Reply.Intent == classifier.IntentUnsubscribeRequest:
				next.Status = domain.StatusUnsubscribed
				next.Temperature = domain.TemperatureCold
			case sig.Reply.Sentiment == classifier.SentimentNegative:
				next.Status = domain.StatusUnsubscribed
				next.Temperature = domain.TemperatureCold
			case sig.Reply.Sentiment == classifier.SentimentPositive:
				next.Temperature = domain.TemperatureHot
			}
		}

	case scoring.KindClicked:
		if next.Temperature.Rank() < domain.TemperatureWarm.Rank() {
			next.Temperature = domain.TemperatureWarm
		}

	case scoring.KindUnsubscribed, scoring.KindComplained:
		next.Status = domain.StatusUnsubscribed
		next.Temperature = domain.TemperatureCold

	case scoring.KindBounced:
		if next.Status == domain.StatusNew || next.Status == domain.StatusContacted {
			next.Status = domain.StatusBounced
		}

	case scoring.KindSent:
		if next.Status == domain.StatusNew {
			next.Status = domain.StatusContacted
		}
	}

	next.Changed = next.Temperature != temp || next.Status != status
	return next
}
