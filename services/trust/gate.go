// Package trust holds the eligibility predicate controlling who may act as
// a service provider. The reputation score itself is computed elsewhere;
// this package only applies thresholds.
package trust

import "strings"

// Gate is a pure, deterministic threshold check. Each vertical carries its
// own instance; thresholds come from configuration, never constants.
type Gate struct {
	MinScore      int
	AllowedLevels []string
}

// NewGate builds a gate from config values. levels is a comma-separated
// list, e.g. "trusted,verified".
func NewGate(minScore int, levels string) Gate {
	var allowed []string
	for _, l := range strings.Split(levels, ",") {
		if l = strings.TrimSpace(l); l != "" {
			allowed = append(allowed, l)
		}
	}
	return Gate{MinScore: minScore, AllowedLevels: allowed}
}

// CanOperate reports whether a participant with the given reputation may
// act as a provider: score at or above the minimum and level allowed.
func (g Gate) CanOperate(score int, level string) bool {
	if score < g.MinScore {
		return false
	}
	for _, allowed := range g.AllowedLevels {
		if level == allowed {
			return true
		}
	}
	return false
}
