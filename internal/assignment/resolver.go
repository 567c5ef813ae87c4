// Package assignment maps a scored prospect to an outreach treatment: a
// campaign, a sequence, an initial delay, and a priority. Resolution is a
// deterministic decision table; it always returns a populated assignment and
// never fails.
package assignment

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Priority is the outreach priority attached to an assignment.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Tier identifies the campaign tier a prospect is routed to.
type Tier string

const (
	TierEnterprise   Tier = "enterprise"
	TierProfessional Tier = "professional"
	TierWarm         Tier = "warm"
	TierCold         Tier = "cold"
)

// Input carries the scoring context the resolver decides on.
type Input struct {
	LeadScore        int
	ROIPotential     float64
	Industry         string
	CompanySize      string
	OpportunityCount int
}

// Assignment is the resolved outreach treatment.
type Assignment struct {
	CampaignID string   `json:"campaignId"`
	SequenceID string   `json:"sequenceId"`
	DelayHours float64  `json:"delayHours"`
	Priority   Priority `json:"priority"`
	Reason     string   `json:"reason"`
	Tier       Tier     `json:"tier"`
}

// regulatedIndustry matches industries that require a compliance-reviewed
// sequence and a longer minimum delay.
var regulatedIndustry = regexp.MustCompile(`(?i)legal|law|attorney|health|medical|clinic|pharma|financ|bank|insurance|accounting`)

const complianceSuffix = "-compliance"

// Resolve evaluates the decision table top-down; the first matching tier
// wins. Post-processing overrides may raise the delay and swap in the
// compliance sequence variant.
func Resolve(in Input) Assignment {
	var (
		tier     Tier
		delay    float64
		priority Priority
	)

	switch {
	case in.LeadScore >= 80 || in.ROIPotential > 50_000:
		tier, delay, priority = TierEnterprise, 0.5, PriorityHigh
	case in.LeadScore >= 60 || (in.ROIPotential > 25_000 && in.OpportunityCount >= 2):
		tier, delay, priority = TierProfessional, 1, PriorityMedium
	case in.LeadScore >= 40 || in.OpportunityCount >= 1:
		tier, delay, priority = TierWarm, 4, PriorityMedium
	default:
		tier, delay, priority = TierCold, 24, PriorityLow
	}

	sequenceID := fmt.Sprintf("seq-%s-standard", tier)

	// Regulated industries get the compliance sequence variant and at least
	// a two hour delay before first touch.
	if regulatedIndustry.MatchString(in.Industry) {
		sequenceID += complianceSuffix
		delay = math.Max(delay, 2)
	}

	// Larger organizations respond poorly to immediate automated follow-up.
	switch strings.ToLower(strings.TrimSpace(in.CompanySize)) {
	case "enterprise", "large":
		delay = math.Max(delay, 4)
	}

	return Assignment{
		CampaignID: fmt.Sprintf("camp-%s", tier),
		SequenceID: sequenceID,
		DelayHours: delay,
		Priority:   priority,
		Reason:     reason(in, tier),
		Tier:       tier,
	}
}

// reason summarizes the inputs that produced the assignment, with ROI rounded
// to the nearest thousand.
func reason(in Input, tier Tier) string {
	roiK := int(math.Round(in.ROIPotential / 1000))
	return fmt.Sprintf("lead score %d, estimated ROI $%dk, %d opportunities: routed to %s tier",
		in.LeadScore, roiK, in.OpportunityCount, tier)
}
