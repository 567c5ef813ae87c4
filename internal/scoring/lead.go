// Package scoring computes lead and engagement scores for prospects. The
// score math lives in pure functions so recomputation is fully derivable from
// its inputs; the Service wires persistence, serialization, and downstream
// assignment around them.
package scoring

import "math"

const (
	// scoreVersion tracks the scoring model for debugging and analysis.
	// Bump this when changing scoring logic significantly.
	scoreVersion = "2026-v1"

	// Maximum contribution from each lead score component. The caps keep the
	// composite inside 0-100 without a final renormalization pass.
	maxCompanySizeComponent = 25.0
	maxOpportunityComponent = 35.0
	maxAnalysisComponent    = 25.0
	maxServiceFitComponent  = 15.0
)

// companySizePoints maps the firmographic size category to its component.
// Unknown categories still earn a floor so a sparse record is not zeroed out.
var companySizePoints = map[string]float64{
	"enterprise": 25,
	"large":      20,
	"medium":     15,
	"small":      10,
}

const unknownSizePoints = 5

// OpportunityInput is the slice of an opportunity record the lead score needs.
type OpportunityInput struct {
	PriorityScore int
	ServiceTier   *string
	ROIEstimate   float64
}

// LeadScoreResult carries the composite score and its per-component factors
// for audit trails and assignment reasons.
type LeadScoreResult struct {
	Score   int
	Factors map[string]float64
}

// LeadScore computes the composite 0-100 lead score from company size,
// opportunity records, and the distinct completed analysis types.
func LeadScore(sizeCategory string, opportunities []OpportunityInput, completedAnalysisTypes []string) LeadScoreResult {
	factors := map[string]float64{}

	sizePoints, ok := companySizePoints[sizeCategory]
	if !ok {
		sizePoints = unknownSizePoints
	}
	factors["company_size"] = sizePoints

	var opportunityPoints float64
	if len(opportunities) > 0 {
		var sum float64
		for _, o := range opportunities {
			sum += float64(o.PriorityScore)
		}
		avg := sum / float64(len(opportunities))
		opportunityPoints = math.Min(maxOpportunityComponent, avg*0.35)
	}
	factors["opportunities"] = opportunityPoints

	analysisPoints := analysisCompleteness(completedAnalysisTypes)
	factors["analysis_completeness"] = analysisPoints

	var tiered int
	for _, o := range opportunities {
		if o.ServiceTier != nil && *o.ServiceTier != "" {
			tiered++
		}
	}
	serviceFitPoints := math.Min(maxServiceFitComponent, float64(tiered)*5)
	factors["service_fit"] = serviceFitPoints

	total := sizePoints + opportunityPoints + analysisPoints + serviceFitPoints
	return LeadScoreResult{
		Score:   clampScore(total),
		Factors: factors,
	}
}

// analysisCompleteness scores the count of distinct completed analysis types.
func analysisCompleteness(types []string) float64 {
	distinct := map[string]struct{}{}
	for _, t := range types {
		if t != "" {
			distinct[t] = struct{}{}
		}
	}

	switch n := len(distinct); {
	case n >= 3:
		return maxAnalysisComponent
	case n == 2:
		return 20
	case n == 1:
		return 15
	default:
		return 0
	}
}

// clampScore bounds a running total to the 0-100 score range.
func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}

// ROIPotential sums the ROI estimates across opportunity records; it feeds
// the assignment resolver, not the score itself.
func ROIPotential(opportunities []OpportunityInput) float64 {
	var total float64
	for _, o := range opportunities {
		total += o.ROIEstimate
	}
	return total
}
