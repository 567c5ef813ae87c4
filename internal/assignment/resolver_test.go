package assignment

import (
	"strings"
	"testing"
)

func TestResolve_EnterpriseTier(t *testing.T) {
	result := Resolve(Input{LeadScore: 85, ROIPotential: 60_000, OpportunityCount: 3})

	if result.Tier != TierEnterprise {
		t.Fatalf("expected enterprise tier, got %s", result.Tier)
	}
	if result.DelayHours != 0.5 {
		t.Fatalf("expected 0.5h delay, got %v", result.DelayHours)
	}
	if result.Priority != PriorityHigh {
		t.Fatalf("expected high priority, got %s", result.Priority)
	}
}

func TestResolve_RegulatedIndustryOverride(t *testing.T) {
	result := Resolve(Input{LeadScore: 45, Industry: "Healthcare Services", OpportunityCount: 1})

	if result.Tier != TierWarm {
		t.Fatalf("expected warm tier, got %s", result.Tier)
	}
	if result.DelayHours != 4 {
		t.Fatalf("expected warm tier delay of 4h, got %v", result.DelayHours)
	}
	if !strings.HasSuffix(result.SequenceID, complianceSuffix) {
		t.Fatalf("expected compliance sequence variant, got %s", result.SequenceID)
	}

	fast := Resolve(Input{LeadScore: 85, Industry: "Healthcare Services", OpportunityCount: 1})
	if fast.DelayHours != 2 {
		t.Fatalf("expected compliance floor to raise enterprise delay to 2h, got %v", fast.DelayHours)
	}
}

func TestResolve_DecisionTable(t *testing.T) {
	cases := []struct {
		name     string
		in       Input
		tier     Tier
		delay    float64
		priority Priority
	}{
		{
			name:     "high ROI alone reaches enterprise",
			in:       Input{LeadScore: 10, ROIPotential: 50_001},
			tier:     TierEnterprise,
			delay:    0.5,
			priority: PriorityHigh,
		},
		{
			name:     "score 60 reaches professional",
			in:       Input{LeadScore: 60},
			tier:     TierProfessional,
			delay:    1,
			priority: PriorityMedium,
		},
		{
			name:     "mid ROI needs two opportunities",
			in:       Input{LeadScore: 10, ROIPotential: 30_000, OpportunityCount: 2},
			tier:     TierProfessional,
			delay:    1,
			priority: PriorityMedium,
		},
		{
			name:     "mid ROI with one opportunity falls to warm",
			in:       Input{LeadScore: 10, ROIPotential: 30_000, OpportunityCount: 1},
			tier:     TierWarm,
			delay:    4,
			priority: PriorityMedium,
		},
		{
			name:     "single opportunity reaches warm",
			in:       Input{LeadScore: 0, OpportunityCount: 1},
			tier:     TierWarm,
			delay:    4,
			priority: PriorityMedium,
		},
		{
			name:     "nothing matches falls to cold",
			in:       Input{LeadScore: 39},
			tier:     TierCold,
			delay:    24,
			priority: PriorityLow,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Resolve(tc.in)
			if result.Tier != tc.tier {
				t.Errorf("tier: expected %s, got %s", tc.tier, result.Tier)
			}
			if result.DelayHours != tc.delay {
				t.Errorf("delay: expected %v, got %v", tc.delay, result.DelayHours)
			}
			if result.Priority != tc.priority {
				t.Errorf("priority: expected %s, got %s", tc.priority, result.Priority)
			}
		})
	}
}

func TestResolve_EnterpriseSizeRaisesDelay(t *testing.T) {
	result := Resolve(Input{LeadScore: 85, CompanySize: "enterprise"})

	if result.DelayHours != 4 {
		t.Fatalf("expected delay raised to 4h for enterprise size, got %v", result.DelayHours)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	in := Input{LeadScore: 72, ROIPotential: 31_500, Industry: "Legal", CompanySize: "large", OpportunityCount: 2}

	first := Resolve(in)
	for i := 0; i < 10; i++ {
		if got := Resolve(in); got != first {
			t.Fatalf("resolver not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestResolve_ReasonCitesInputs(t *testing.T) {
	result := Resolve(Input{LeadScore: 85, ROIPotential: 60_400, OpportunityCount: 3})

	if !strings.Contains(result.Reason, "85") {
		t.Errorf("reason should cite lead score: %s", result.Reason)
	}
	if !strings.Contains(result.Reason, "$60k") {
		t.Errorf("reason should cite ROI rounded to nearest thousand: %s", result.Reason)
	}
	if !strings.Contains(result.Reason, "3 opportunities") {
		t.Errorf("reason should cite opportunity count: %s", result.Reason)
	}
}
