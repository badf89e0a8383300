// Package sampler converts triangle meshes into labeled, colored,
// oriented surface point samples with density proportional to area.
package sampler

import "strings"

// DensityRule maps an object-name keyword to a sampling density.
type DensityRule struct {
	Keyword string
	Density float32 // points per square unit
	Exact   bool    // full-name match instead of substring
}

// DensityPolicy resolves an object's sampling density from an ordered
// rule list. Rules are read-only for the duration of a session and may
// be shared across sampling goroutines.
type DensityPolicy struct {
	Default float32
	Rules   []DensityRule
}

// DensityFor returns the density for an object name. Rules are checked
// in declared order and the first match wins; this ordering is the only
// conflict-resolution mechanism when several rules could match. Matching
// is case-insensitive: exact rules compare the whole name, others look
// for the keyword as a substring. No match falls back to Default.
func (p *DensityPolicy) DensityFor(name string) float32 {
	lower := strings.ToLower(name)
	for _, rule := range p.Rules {
		if rule.Exact {
			if strings.EqualFold(name, rule.Keyword) {
				return rule.Density
			}
		} else if strings.Contains(lower, strings.ToLower(rule.Keyword)) {
			return rule.Density
		}
	}
	return p.Default
}
