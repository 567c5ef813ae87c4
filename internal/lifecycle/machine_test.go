package lifecycle

import (
	"testing"

	"outreach_backend/internal/classifier"
	"outreach_backend/internal/prospects/domain"
	"outreach_backend/internal/scoring"
)

func TestAdvanceOnAnalysis_ForwardOnly(t *testing.T) {
	cases := []struct {
		current  domain.Stage
		next     domain.Stage
		advanced bool
	}{
		{domain.StageIdentified, domain.StageAnalyzing, true},
		{domain.StageAnalyzing, domain.StageAnalyzed, true},
		{domain.StageAnalyzed, domain.StageAnalyzed, false},
		{domain.StageContacted, domain.StageContacted, false},
		{domain.StageConverted, domain.StageConverted, false},
	}

	for _, tc := range cases {
		next, advanced := AdvanceOnAnalysis(tc.current)
		if next != tc.next || advanced != tc.advanced {
			t.Errorf("%s: expected (%s, %v), got (%s, %v)", tc.current, tc.next, tc.advanced, next, advanced)
		}
	}
}

func TestAdvanceOnAnalysis_IdempotentAtAnalyzed(t *testing.T) {
	stage := domain.StageAnalyzing

	stage, _ = AdvanceOnAnalysis(stage)
	if stage != domain.StageAnalyzed {
		t.Fatalf("expected analyzed, got %s", stage)
	}

	// Repeated triggers are no-ops once analyzed.
	for i := 0; i < 3; i++ {
		next, advanced := AdvanceOnAnalysis(stage)
		if advanced || next != domain.StageAnalyzed {
			t.Fatalf("trigger %d: expected no-op at analyzed, got (%s, %v)", i, next, advanced)
		}
	}
}

func TestApplyEngagement_PositiveReplySetsHot(t *testing.T) {
	reply := classifier.Result{Sentiment: classifier.SentimentPositive, Intent: classifier.IntentInterested}

	update := ApplyEngagement(domain.TemperatureCold, domain.StatusContacted, EngagementSignal{
		Kind:  scoring.KindReplied,
		Reply: &reply,
	})

	if update.Temperature != domain.TemperatureHot {
		t.Fatalf("expected hot, got %s", update.Temperature)
	}
	if update.Status != domain.StatusReplied {
		t.Fatalf("expected replied status, got %s", update.Status)
	}
	if !update.Changed {
		t.Fatal("expected update to be flagged as changed")
	}
}

func TestApplyEngagement_NegativeReplyDowngradesHot(t *testing.T) {
	reply := classifier.Result{Sentiment: classifier.SentimentNegative, Intent: classifier.IntentNotInterested}

	update := ApplyEngagement(domain.TemperatureHot, domain.StatusReplied, EngagementSignal{
		Kind:  scoring.KindReplied,
		Reply: &reply,
	})

	if update.Temperature != domain.TemperatureCold {
		t.Fatalf("expected cold after negative reply, got %s", update.Temperature)
	}
	if update.Status != domain.StatusUnsubscribed {
		t.Fatalf("expected unsubscribed status, got %s", update.Status)
	}
}

func TestApplyEngagement_ClickOnlyWarmsColder(t *testing.T) {
	update := ApplyEngagement(domain.TemperatureCold, domain.StatusContacted, EngagementSignal{Kind: scoring.KindClicked})
	if update.Temperature != domain.TemperatureWarm {
		t.Fatalf("expected warm after click, got %s", update.Temperature)
	}

	update = ApplyEngagement(domain.TemperatureHot, domain.StatusReplied, EngagementSignal{Kind: scoring.KindClicked})
	if update.Temperature != domain.TemperatureHot {
		t.Fatalf("click should not cool a hot prospect, got %s", update.Temperature)
	}
	if update.Changed {
		t.Fatal("no-op click should not be flagged as changed")
	}
}

func TestApplyEngagement_SentMarksContacted(t *testing.T) {
	update := ApplyEngagement(domain.TemperatureCold, domain.StatusNew, EngagementSignal{Kind: scoring.KindSent})
	if update.Status != domain.StatusContacted {
		t.Fatalf("expected contacted, got %s", update.Status)
	}

	// A later send must not reset a replied status.
	update = ApplyEngagement(domain.TemperatureHot, domain.StatusReplied, EngagementSignal{Kind: scoring.KindSent})
	if update.Status != domain.StatusReplied {
		t.Fatalf("send should not downgrade replied status, got %s", update.Status)
	}
}
