package scoring

import (
	"testing"

	"outreach_backend/internal/prospects/domain"
)

func TestScoreBandBoundaries(t *testing.T) {
	cases := []struct {
		score int
		band  int
	}{
		{0, 0},
		{39, 0},
		{40, 1},
		{59, 1},
		{60, 2},
		{79, 2},
		{80, 3},
		{100, 3},
	}
	for _, tc := range cases {
		if got := scoreBand(tc.score); got != tc.band {
			t.Errorf("score %d: expected band %d, got %d", tc.score, tc.band, got)
		}
	}
}

func TestDeriveTemperature_LiftsToFloor(t *testing.T) {
	if got := deriveTemperature(domain.TemperatureCold, 80); got != domain.TemperatureHot {
		t.Fatalf("expected hot, got %s", got)
	}
	if got := deriveTemperature(domain.TemperatureCold, 50); got != domain.TemperatureWarm {
		t.Fatalf("expected warm, got %s", got)
	}
	if got := deriveTemperature(domain.TemperatureCold, 10); got != domain.TemperatureCold {
		t.Fatalf("expected cold, got %s", got)
	}
}

func TestDeriveTemperature_NeverDowngrades(t *testing.T) {
	// A hot prospect with a quiet log stays hot; cooling is event-driven.
	if got := deriveTemperature(domain.TemperatureHot, 0); got != domain.TemperatureHot {
		t.Fatalf("expected hot preserved, got %s", got)
	}
	if got := deriveTemperature(domain.TemperatureQualified, 80); got != domain.TemperatureQualified {
		t.Fatalf("expected qualified preserved, got %s", got)
	}
}
