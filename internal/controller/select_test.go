package controller

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/casperlundberg/euf-controller/pkg/models"
)

func cfg(freqKHz, cores int, ht bool, tps, powerW float64) models.Configuration {
	return models.NewConfiguration(freqKHz, cores, ht, 1, powerW, tps)
}

type SelectTestSuite struct {
	suite.Suite
}

func TestSelectTestSuite(t *testing.T) {
	suite.Run(t, new(SelectTestSuite))
}

// P4: with no target, select returns the global minimum-power candidate.
func (s *SelectTestSuite) TestNoTargetPicksMinimumPower() {
	candidates := []models.Configuration{
		cfg(1_200_000, 2, false, 100, 10),
		cfg(1_800_000, 2, false, 150, 3),
		cfg(2_400_000, 4, true, 300, 20),
	}

	got := Select(candidates, nil, nil)
	s.InDelta(3.0, got.PowerW, 1e-9)
}

// P5: with a feasible target, select returns a candidate meeting the target
// whose power is the minimum among all candidates that meet it — even when
// an infeasible, lower-power candidate is seen first or seeded.
func (s *SelectTestSuite) TestFeasibleTargetPicksMinimumPowerAmongFeasible() {
	low := cfg(1_200_000, 2, false, 100, 1) // infeasible, lowest power overall
	feasibleCheap := cfg(1_800_000, 2, false, 200, 8)
	feasibleExpensive := cfg(2_400_000, 4, true, 250, 20)
	target := 150.0

	got := Select([]models.Configuration{low, feasibleExpensive, feasibleCheap}, &target, nil)
	s.GreaterOrEqual(got.Tps, target)
	s.InDelta(8.0, got.PowerW, 1e-9)

	// Seeding with the infeasible candidate must not pin select to it once a
	// feasible candidate is seen.
	seed := low
	got = Select([]models.Configuration{feasibleExpensive, feasibleCheap}, &target, &seed)
	s.GreaterOrEqual(got.Tps, target)
	s.InDelta(8.0, got.PowerW, 1e-9)
}

// P6: with an infeasible target (no candidate meets it), select climbs to
// the candidate with the maximum tps.
func (s *SelectTestSuite) TestInfeasibleTargetClimbsToMaxTps() {
	candidates := []models.Configuration{
		cfg(1_200_000, 2, false, 100, 1),
		cfg(1_800_000, 2, false, 200, 8),
		cfg(2_400_000, 4, true, 250, 20),
	}
	target := 1_000.0

	got := Select(candidates, &target, nil)
	s.InDelta(250.0, got.Tps, 1e-9)
}

// Single-candidate shortcut bypasses target/seed handling entirely.
func (s *SelectTestSuite) TestSingleCandidateShortcut() {
	only := cfg(1_200_000, 2, false, 100, 5)
	target := 1_000.0
	got := Select([]models.Configuration{only}, &target, nil)
	s.True(only.Equal(got))
}
