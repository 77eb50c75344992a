// Package pareto is the Pareto reducer (PR): given a candidate set and an
// ordered list of polarity-tagged objectives, it returns the non-dominated
// subset.
package pareto

import "github.com/casperlundberg/euf-controller/pkg/models"

// Polarity is whether an objective should be minimised or maximised.
type Polarity int

const (
	Min Polarity = iota
	Max
)

// Objective is a tagged record (field, polarity) per spec.md §9's preferred
// shape over the source's string-prefix convention ("<power", ">tps").
type Objective struct {
	Name     string
	Polarity Polarity
	Value    func(models.Configuration) float64
}

// PowerObjective minimises Configuration.PowerW.
var PowerObjective = Objective{
	Name:     "power",
	Polarity: Min,
	Value:    func(c models.Configuration) float64 { return c.PowerW },
}

// ThroughputObjective maximises Configuration.Tps.
var ThroughputObjective = Objective{
	Name:     "tps",
	Polarity: Max,
	Value:    func(c models.Configuration) float64 { return c.Tps },
}

// DefaultObjectives is the (power, tps) objective vector spec.md uses
// throughout: minimise power, maximise throughput.
func DefaultObjectives() []Objective {
	return []Objective{PowerObjective, ThroughputObjective}
}

// betterOrEqual reports whether a's value is no worse than b's under polarity.
func betterOrEqual(polarity Polarity, a, b float64) bool {
	if polarity == Min {
		return a <= b
	}
	return a >= b
}

// strictlyBetter reports whether a's value is strictly better than b's.
func strictlyBetter(polarity Polarity, a, b float64) bool {
	if polarity == Min {
		return a < b
	}
	return a > b
}

// dominates reports whether b dominates a: b is no worse on every
// objective and strictly better on at least one (spec.md §4.4).
func dominates(objectives []Objective, b, a models.Configuration) bool {
	strictlyBetterOnOne := false
	for _, obj := range objectives {
		av, bv := obj.Value(a), obj.Value(b)
		if !betterOrEqual(obj.Polarity, bv, av) {
			return false
		}
		if strictlyBetter(obj.Polarity, bv, av) {
			strictlyBetterOnOne = true
		}
	}
	return strictlyBetterOnOne
}

func sameVector(objectives []Objective, a, b models.Configuration) bool {
	for _, obj := range objectives {
		if obj.Value(a) != obj.Value(b) {
			return false
		}
	}
	return true
}

// Reduce returns the non-dominated subset of candidates under objectives.
// Ties (identical objective vectors) collapse to the first-seen
// representative, matching spec.md §4.4's determinism requirement. O(n^2),
// acceptable for the hundreds of candidates CG produces.
func Reduce(candidates []models.Configuration, objectives []Objective) []models.Configuration {
	if len(objectives) == 0 {
		return append([]models.Configuration(nil), candidates...)
	}

	// Collapse ties to their first-seen representative before the dominance
	// pass, so two identical vectors never eliminate each other.
	var deduped []models.Configuration
	for _, c := range candidates {
		isTie := false
		for _, existing := range deduped {
			if sameVector(objectives, c, existing) {
				isTie = true
				break
			}
		}
		if !isTie {
			deduped = append(deduped, c)
		}
	}

	var result []models.Configuration
	for i, candidate := range deduped {
		dominated := false
		for j, other := range deduped {
			if i == j {
				continue
			}
			if dominates(objectives, other, candidate) {
				dominated = true
				break
			}
		}
		if !dominated {
			result = append(result, candidate)
		}
	}
	return result
}
