// Package domain holds the prospect lifecycle vocabulary: pipeline stages,
// engagement temperature, and lead status. These are shared by the scoring,
// lifecycle, and transport layers.
package domain

// Stage is a prospect's position in the pipeline. Stages only advance
// forward via automatic triggers; moving backward is a manual operator
// action outside this system.
type Stage string

const (
	StageIdentified   Stage = "identified"
	StageAnalyzing    Stage = "analyzing"
	StageAnalyzed     Stage = "analyzed"
	StageContacted    Stage = "contacted"
	StageQualified    Stage = "qualified"
	StageDisqualified Stage = "disqualified"
	StageConverted    Stage = "converted"
)

// stageOrder positions each stage along the forward chain. The terminal
// stages share the highest order; transitions between them are not allowed.
var stageOrder = map[Stage]int{
	StageIdentified:   0,
	StageAnalyzing:    1,
	StageAnalyzed:     2,
	StageContacted:    3,
	StageQualified:    4,
	StageDisqualified: 5,
	StageConverted:    5,
}

// Valid reports whether s is a recognized stage.
func (s Stage) Valid() bool {
	_, ok := stageOrder[s]
	return ok
}

// Order returns the stage's position along the forward chain.
func (s Stage) Order() int {
	return stageOrder[s]
}

// CanAdvanceTo reports whether moving from s to next is a forward step.
// Disqualified and converted are terminal.
func (s Stage) CanAdvanceTo(next Stage) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == StageDisqualified || s == StageConverted {
		return false
	}
	return next.Order() > s.Order()
}

// Temperature is the coarse engagement category for a prospect.
type Temperature string

const (
	TemperatureCold       Temperature = "cold"
	TemperatureWarm       Temperature = "warm"
	TemperatureHot        Temperature = "hot"
	TemperatureInterested Temperature = "interested"
	TemperatureQualified  Temperature = "qualified"
)

// temperatureRank orders temperatures from coldest to hottest.
var temperatureRank = map[Temperature]int{
	TemperatureCold:       0,
	TemperatureWarm:       1,
	TemperatureHot:        2,
	TemperatureInterested: 3,
	TemperatureQualified:  4,
}

// Rank returns the temperature's heat order; unknown values rank coldest.
func (t Temperature) Rank() int {
	return temperatureRank[t]
}

// Valid reports whether t is a recognized temperature.
func (t Temperature) Valid() bool {
	_, ok := temperatureRank[t]
	return ok
}

// LeadStatus is the mutable outreach status, driven by engagement events.
type LeadStatus string

const (
	StatusNew          LeadStatus = "new"
	StatusContacted    LeadStatus = "contacted"
	StatusReplied      LeadStatus = "replied"
	StatusBounced      LeadStatus = "bounced"
	StatusUnsubscribed LeadStatus = "unsubscribed"
)
