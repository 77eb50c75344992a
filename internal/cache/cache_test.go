package cache

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/casperlundberg/euf-controller/pkg/configgen"
	"github.com/casperlundberg/euf-controller/pkg/hwmodel"
	"github.com/casperlundberg/euf-controller/pkg/models"
	"github.com/casperlundberg/euf-controller/pkg/pareto"
	"github.com/casperlundberg/euf-controller/pkg/workload"
)

type CacheTestSuite struct {
	suite.Suite
	cache *Cache
}

func TestCacheTestSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func (s *CacheTestSuite) SetupTest() {
	hw := hwmodel.New(hwmodel.Params{
		RefFreqKHz: 2_400_000, BaseIPC: 1, PkgPerCoreW: 0.5, PkgFreqPower: 1, RamBaseW: 1,
	}, hwmodel.Axes{
		FreqsKHz: []int{1_200_000, 2_400_000},
		Cores:    []int{2, 4},
		HTs:      []bool{false, true},
	})
	wm := workload.New(map[string]models.WorkloadDesc{"B": {IPT: 10_000}})
	s.cache = New(configgen.New(hw, wm), pareto.DefaultObjectives())
}

func (s *CacheTestSuite) TestGetMemoizes() {
	cs1, err := s.cache.Get("B")
	s.Require().NoError(err)
	s.NotEmpty(cs1.All)

	cs2, err := s.cache.Get("B")
	s.Require().NoError(err)
	s.Equal(cs1, cs2)
}

func (s *CacheTestSuite) TestUnknownBenchmarkReturnsError() {
	_, err := s.cache.Get("nope")
	s.Error(err)
}
