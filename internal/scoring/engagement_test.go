package scoring

import (
	"math/rand"
	"testing"
	"time"
)

func TestEngagementScore_ActiveIntegration(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	var events []EngagementEvent
	add := func(kind EventKind, n int, daysAgo int) {
		for i := 0; i < n; i++ {
			events = append(events, EngagementEvent{Kind: kind, OccurredAt: now.AddDate(0, 0, -daysAgo)})
		}
	}

	// 100 sent, 50 opened, 10 clicked, 1 reply, 2 bounces spread over 10
	// distinct days in the trailing 30, latest activity today.
	for day := 0; day < 10; day++ {
		add(KindSent, 10, day)
		add(KindOpened, 5, day)
		add(KindClicked, 1, day)
	}
	add(KindReplied, 1, 0)
	add(KindBounced, 2, 3)

	result := EngagementScore(events, now)

	// open 50/100 -> min(15, 30) = 15; click 10/50 -> min(20, 133.4) = 20;
	// reply 25; bounces -10; recency 20; frequency min(20, 10*2) = 20.
	if result.Score != 90 {
		t.Fatalf("expected 90, got %d (factors %v)", result.Score, result.Factors)
	}
	if result.Factors["open_rate"] != 15 {
		t.Fatalf("open rate term should cap at 15, got %v", result.Factors["open_rate"])
	}
	if result.Factors["click_rate"] != 20 {
		t.Fatalf("click rate term should cap at 20, got %v", result.Factors["click_rate"])
	}
	if result.Factors["bounce_penalty"] != -10 {
		t.Fatalf("expected -10 bounce penalty, got %v", result.Factors["bounce_penalty"])
	}
}

func TestEngagementScore_NoEvents(t *testing.T) {
	result := EngagementScore(nil, time.Now())
	if result.Score != 0 {
		t.Fatalf("expected 0 for empty log, got %d", result.Score)
	}
}

func TestEngagementScore_ZeroDenominatorsYieldZero(t *testing.T) {
	now := time.Now()

	// Opens without sends: ratio terms guard the zero denominator.
	events := []EngagementEvent{
		{Kind: KindOpened, OccurredAt: now},
	}
	result := EngagementScore(events, now)
	if result.Factors["open_rate"] != 0 {
		t.Fatalf("open rate with zero sends should be 0, got %v", result.Factors["open_rate"])
	}

	// Clicks without opens.
	events = []EngagementEvent{
		{Kind: KindSent, OccurredAt: now},
		{Kind: KindClicked, OccurredAt: now},
	}
	result = EngagementScore(events, now)
	if result.Factors["click_rate"] != 0 {
		t.Fatalf("click rate with zero opens should be 0, got %v", result.Factors["click_rate"])
	}
}

func TestEngagementScore_SingleReplySaturates(t *testing.T) {
	now := time.Now()
	one := EngagementScore([]EngagementEvent{
		{Kind: KindSent, OccurredAt: now},
		{Kind: KindReplied, OccurredAt: now},
	}, now)
	three := EngagementScore([]EngagementEvent{
		{Kind: KindSent, OccurredAt: now},
		{Kind: KindReplied, OccurredAt: now},
		{Kind: KindReplied, OccurredAt: now},
		{Kind: KindReplied, OccurredAt: now},
	}, now)

	if one.Factors["replies"] != 25 || three.Factors["replies"] != 25 {
		t.Fatalf("reply term should saturate at 25: %v vs %v", one.Factors["replies"], three.Factors["replies"])
	}
}

func TestEngagementScore_BouncesCanDriveTotalNegativeBeforeClamp(t *testing.T) {
	now := time.Now()
	events := make([]EngagementEvent, 0, 30)
	for i := 0; i < 30; i++ {
		events = append(events, EngagementEvent{Kind: KindBounced, OccurredAt: now.AddDate(0, 0, -200)})
	}

	result := EngagementScore(events, now)
	if result.Score != 0 {
		t.Fatalf("expected clamp to 0, got %d", result.Score)
	}
	if result.Factors["bounce_penalty"] != -150 {
		t.Fatalf("expected raw -150 penalty, got %v", result.Factors["bounce_penalty"])
	}
}

func TestEngagementScore_ClampsAt100(t *testing.T) {
	now := time.Now()
	var events []EngagementEvent
	for day := 0; day < 15; day++ {
		ts := now.AddDate(0, 0, -day)
		events = append(events,
			EngagementEvent{Kind: KindSent, OccurredAt: ts},
			EngagementEvent{Kind: KindOpened, OccurredAt: ts},
			EngagementEvent{Kind: KindClicked, OccurredAt: ts},
			EngagementEvent{Kind: KindReplied, OccurredAt: ts},
		)
	}

	result := EngagementScore(events, now)
	if result.Score != 100 {
		t.Fatalf("expected capped 100, got %d", result.Score)
	}
}

func TestEngagementScore_OrderIndependent(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	events := []EngagementEvent{
		{Kind: KindSent, OccurredAt: now.AddDate(0, 0, -9)},
		{Kind: KindSent, OccurredAt: now.AddDate(0, 0, -8)},
		{Kind: KindOpened, OccurredAt: now.AddDate(0, 0, -7)},
		{Kind: KindClicked, OccurredAt: now.AddDate(0, 0, -6)},
		{Kind: KindReplied, OccurredAt: now.AddDate(0, 0, -2)},
		{Kind: KindBounced, OccurredAt: now.AddDate(0, 0, -1)},
	}

	sorted := EngagementScore(events, now)

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		shuffled := append([]EngagementEvent(nil), events...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		if got := EngagementScore(shuffled, now); got.Score != sorted.Score {
			t.Fatalf("fold is order-dependent: %d vs %d", got.Score, sorted.Score)
		}
	}
}

func TestEngagementScore_RecencyBands(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		daysAgo int
		want    float64
	}{
		{0, 20},
		{1, 20},
		{5, 15},
		{20, 10},
		{60, 5},
		{200, 0},
	}

	for _, tc := range cases {
		events := []EngagementEvent{{Kind: KindSent, OccurredAt: now.AddDate(0, 0, -tc.daysAgo)}}
		result := EngagementScore(events, now)
		if result.Factors["recency"] != tc.want {
			t.Errorf("%d days ago: expected recency %v, got %v", tc.daysAgo, tc.want, result.Factors["recency"])
		}
	}
}
