package hwmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/casperlundberg/euf-controller/pkg/models"
)

type HwModelTestSuite struct {
	suite.Suite
	model Model
}

func TestHwModelTestSuite(t *testing.T) {
	suite.Run(t, new(HwModelTestSuite))
}

// Mirrors the stub formulas from spec.md §8: P_PKG=cpus*0.5*(freq/2_400_000), P_Ram=1.
func (s *HwModelTestSuite) SetupTest() {
	s.model = New(Params{
		RefFreqKHz:   2_400_000,
		BaseIPC:      1,
		PkgBaseW:     0,
		PkgPerCoreW:  0.5,
		PkgFreqPower: 1,
		RamBaseW:     1,
	}, Axes{
		FreqsKHz: []int{1_200_000, 2_400_000},
		Cores:    []int{2, 4},
		HTs:      []bool{false, true},
	})
}

func (s *HwModelTestSuite) TestPPkgMatchesStubFormula() {
	wd := models.WorkloadDesc{IPT: 10_000}
	p := s.model.PPkg(wd, 2, 1_200_000, false)
	s.InDelta(2.0*0.5*(1_200_000.0/2_400_000.0), p, 1e-9)

	p2 := s.model.PPkg(wd, 4, 2_400_000, true)
	s.InDelta(4.0*0.5*1.0, p2, 1e-9)
}

func (s *HwModelTestSuite) TestPRamIsConstantOne() {
	wd := models.WorkloadDesc{}
	s.Equal(1.0, s.model.PRam(wd, 2, 1_200_000, false))
}

func (s *HwModelTestSuite) TestIPCNeverNegative() {
	wd := models.WorkloadDesc{MemoryHeaviness: 1000}
	ipc := s.model.IPC(wd, 4, 2_400_000, true)
	assert.GreaterOrEqual(s.T(), ipc, 0.0)
}

func (s *HwModelTestSuite) TestAxesMinMax() {
	s.Equal(2_400_000, s.model.Axes.MaxFreqKHz())
	s.Equal(1_200_000, s.model.Axes.MinFreqKHz())
	s.Equal(4, s.model.Axes.MaxCores())
	s.Equal(2, s.model.Axes.MinCores())
}
