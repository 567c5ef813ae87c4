package domain

import "testing"

func TestStage_CanAdvanceTo(t *testing.T) {
	cases := []struct {
		from, to Stage
		want     bool
	}{
		{StageIdentified, StageAnalyzing, true},
		{StageAnalyzing, StageAnalyzed, true},
		{StageAnalyzed, StageContacted, true},
		{StageContacted, StageQualified, true},
		{StageQualified, StageConverted, true},
		{StageQualified, StageDisqualified, true},
		{StageAnalyzed, StageIdentified, false},
		{StageContacted, StageAnalyzing, false},
		{StageConverted, StageQualified, false},
		{StageDisqualified, StageConverted, false},
		{StageIdentified, Stage("bogus"), false},
	}

	for _, tc := range cases {
		if got := tc.from.CanAdvanceTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestTemperature_Rank(t *testing.T) {
	if TemperatureCold.Rank() >= TemperatureWarm.Rank() {
		t.Fatal("cold should rank below warm")
	}
	if TemperatureWarm.Rank() >= TemperatureHot.Rank() {
		t.Fatal("warm should rank below hot")
	}
	if Temperature("bogus").Rank() != TemperatureCold.Rank() {
		t.Fatal("unknown temperature should rank coldest")
	}
}
