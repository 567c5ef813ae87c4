package scoring

import (
	"math"
	"time"
)

// EventKind is the recognized engagement activity type.
type EventKind string

const (
	KindSent         EventKind = "sent"
	KindDelivered    EventKind = "delivered"
	KindOpened       EventKind = "opened"
	KindClicked      EventKind = "clicked"
	KindReplied      EventKind = "replied"
	KindBounced      EventKind = "bounced"
	KindUnsubscribed EventKind = "unsubscribed"
	KindComplained   EventKind = "complained"
)

// KnownEventKind reports whether kind is a recognized activity type.
func KnownEventKind(kind string) bool {
	switch EventKind(kind) {
	case KindSent, KindDelivered, KindOpened, KindClicked, KindReplied,
		KindBounced, KindUnsubscribed, KindComplained:
		return true
	}
	return false
}

// EngagementEvent is the slice of a logged activity the fold needs.
type EngagementEvent struct {
	Kind       EventKind
	OccurredAt time.Time
}

// EngagementScoreResult carries the composite score and its term breakdown.
type EngagementScoreResult struct {
	Score   int
	Factors map[string]float64
}

// activityWindow is the trailing window for the frequency term.
const activityWindow = 30 * 24 * time.Hour

// EngagementScore folds the full event log into the composite 0-100
// engagement score. The fold is aggregate-based: it counts kinds, tracks the
// latest activity, and collects distinct active days, so the result is
// independent of event order and of duplicate-free replays.
func EngagementScore(events []EngagementEvent, now time.Time) EngagementScoreResult {
	var (
		sent, opened, clicked, replied, bounced int
		lastActivity                            time.Time
	)
	activeDays := map[string]struct{}{}
	windowStart := now.Add(-activityWindow)

	for _, e := range events {
		switch e.Kind {
		case KindSent:
			sent++
		case KindOpened:
			opened++
		case KindClicked:
			clicked++
		case KindReplied:
			replied++
		case KindBounced:
			bounced++
		}

		if e.OccurredAt.After(lastActivity) {
			lastActivity = e.OccurredAt
		}
		if !e.OccurredAt.Before(windowStart) && !e.OccurredAt.After(now) {
			activeDays[e.OccurredAt.UTC().Format("2006-01-02")] = struct{}{}
		}
	}

	factors := map[string]float64{}

	// Ratio terms guard their denominators: no sends or no opens yields 0,
	// never a division error.
	var openRate float64
	if sent > 0 {
		openRate = math.Min(15, float64(opened)/float64(sent)*100*0.6)
	}
	factors["open_rate"] = openRate

	var clickRate float64
	if opened > 0 {
		clickRate = math.Min(20, float64(clicked)/float64(opened)*100*6.67)
	}
	factors["click_rate"] = clickRate

	replyPoints := math.Min(25, float64(replied)*25)
	factors["replies"] = replyPoints

	bouncePenalty := float64(bounced) * -5
	factors["bounce_penalty"] = bouncePenalty

	recency := recencyPoints(lastActivity, now)
	factors["recency"] = recency

	frequency := math.Min(20, float64(len(activeDays))*2)
	factors["activity_frequency"] = frequency

	total := openRate + clickRate + replyPoints + bouncePenalty + recency + frequency
	return EngagementScoreResult{
		Score:   clampScore(total),
		Factors: factors,
	}
}

// recencyPoints scores days since the last activity of any kind.
func recencyPoints(lastActivity, now time.Time) float64 {
	if lastActivity.IsZero() {
		return 0
	}

	days := now.Sub(lastActivity).Hours() / 24
	switch {
	case days <= 1:
		return 20
	case days <= 7:
		return 15
	case days <= 30:
		return 10
	case days <= 90:
		return 5
	default:
		return 0
	}
}
