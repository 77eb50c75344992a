package controller

import "github.com/casperlundberg/euf-controller/pkg/models"

// Select implements spec.md §4.8's selection algorithm: above a throughput
// target, minimise power; below it, climb throughput greedily; with no
// target, minimise power with a stability tie-break toward the current
// best. candidates is iterated in slice order, matching "enumeration
// order" in the spec text.
func Select(candidates []models.Configuration, targetTps *float64, seed *models.Configuration) models.Configuration {
	if len(candidates) == 1 {
		return candidates[0]
	}

	var best *models.Configuration
	if seed != nil {
		b := *seed
		best = &b
	}

	for i := range candidates {
		c := candidates[i]
		if targetTps == nil {
			if best == nil || c.PowerW < best.PowerW {
				best = &c
			}
			continue
		}
		if best == nil {
			best = &c
			continue
		}

		cMeets, bestMeets := c.Tps >= *targetTps, best.Tps >= *targetTps
		switch {
		case cMeets && bestMeets:
			// both reach the target: minimise power between them.
			if c.PowerW < best.PowerW {
				best = &c
			}
		case cMeets:
			// c reaches the target and best does not: a feasible candidate
			// always beats an infeasible one, even if best's power happens
			// to be lower (it was climbing, not yet competing on power).
			best = &c
		case bestMeets:
			// best already reaches the target, c does not: keep best.
		case c.Tps >= best.Tps:
			best = &c // neither reaches the target yet: climb toward it.
		}
	}
	return *best
}
