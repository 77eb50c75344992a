package rapl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type RAPLTestSuite struct {
	suite.Suite
}

func TestRAPLTestSuite(t *testing.T) {
	suite.Run(t, new(RAPLTestSuite))
}

func (s *RAPLTestSuite) TestSubComputesWattsFromJouleDelta() {
	base := time.Unix(1000, 0)
	prior := Snapshot{Timestamp: base, PackageJoule: 0, DramJoule: 0}
	next := Snapshot{Timestamp: base.Add(time.Second), PackageJoule: 10, DramJoule: 2}

	delta := next.Sub(prior)
	s.InDelta(10.0, delta.PackageWatts, 1e-9)
	s.InDelta(2.0, delta.DramWatts, 1e-9)
	s.InDelta(12.0, delta.Watts(), 1e-9)
}

func (s *RAPLTestSuite) TestSubGuardsAgainstNonPositiveElapsed() {
	base := time.Unix(1000, 0)
	prior := Snapshot{Timestamp: base, PackageJoule: 5, DramJoule: 1}
	same := Snapshot{Timestamp: base, PackageJoule: 7, DramJoule: 2}

	delta := same.Sub(prior)
	s.Equal(0.0, delta.Watts())
}

func (s *RAPLTestSuite) TestMockReaderRepeatsLastSnapshotAfterExhaustion() {
	m := &MockReader{Snapshots: []Snapshot{{PackageJoule: 1}, {PackageJoule: 2}}}

	first, err := m.Read()
	s.Require().NoError(err)
	s.Equal(1.0, first.PackageJoule)

	second, err := m.Read()
	s.Require().NoError(err)
	s.Equal(2.0, second.PackageJoule)

	third, err := m.Read()
	s.Require().NoError(err)
	s.Equal(2.0, third.PackageJoule)
}
