package workload

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/casperlundberg/euf-controller/pkg/models"
)

type WorkloadTestSuite struct {
	suite.Suite
	model Model
}

func TestWorkloadTestSuite(t *testing.T) {
	suite.Run(t, new(WorkloadTestSuite))
}

func (s *WorkloadTestSuite) SetupTest() {
	s.model = New(map[string]models.WorkloadDesc{
		"B": {IPT: 10_000},
	})
}

func (s *WorkloadTestSuite) TestKnownBenchmark() {
	wd, err := s.model.Benchmarks("B")
	s.NoError(err)
	s.Equal(10_000.0, wd.IPT)
}

func (s *WorkloadTestSuite) TestUnknownBenchmarkFails() {
	_, err := s.model.Benchmarks("nope")
	s.Error(err)
	s.True(errors.Is(err, models.ErrUnknownBenchmark))
}

func (s *WorkloadTestSuite) TestKnown() {
	s.True(s.model.Known("B"))
	s.False(s.model.Known("nope"))
}
