package sampler

import "testing"

func TestDensityForDefault(t *testing.T) {
	p := &DensityPolicy{Default: 25}
	if got := p.DensityFor("Anything"); got != 25 {
		t.Errorf("DensityFor with no rules = %v, want 25", got)
	}
}

func TestDensityForSubstring(t *testing.T) {
	p := &DensityPolicy{
		Default: 10,
		Rules: []DensityRule{
			{Keyword: "Chair", Density: 50},
		},
	}

	if got := p.DensityFor("ArmChair_01"); got != 50 {
		t.Errorf("DensityFor(ArmChair_01) = %v, want 50", got)
	}
	if got := p.DensityFor("armchair_01"); got != 50 {
		t.Errorf("substring match should be case-insensitive, got %v", got)
	}
	if got := p.DensityFor("Table"); got != 10 {
		t.Errorf("DensityFor(Table) = %v, want default 10", got)
	}
}

func TestDensityForExact(t *testing.T) {
	p := &DensityPolicy{
		Default: 10,
		Rules: []DensityRule{
			{Keyword: "Floor", Density: 5, Exact: true},
		},
	}

	if got := p.DensityFor("floor"); got != 5 {
		t.Errorf("exact match should be case-insensitive, got %v", got)
	}
	if got := p.DensityFor("Floor_02"); got != 10 {
		t.Errorf("exact rule must not match substrings, got %v", got)
	}
}

func TestDensityForFirstRuleWins(t *testing.T) {
	p := &DensityPolicy{
		Default: 10,
		Rules: []DensityRule{
			{Keyword: "chair", Density: 50},
			{Keyword: "armchair", Density: 99},
		},
	}

	// Both rules match; the earlier declaration wins.
	if got := p.DensityFor("ArmChair_01"); got != 50 {
		t.Errorf("first declared rule should win, got %v", got)
	}
}
