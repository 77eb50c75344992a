package telemetry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/casperlundberg/euf-controller/internal/engine"
	"github.com/casperlundberg/euf-controller/internal/rapl"
	"github.com/casperlundberg/euf-controller/pkg/models"
)

type TelemetryTestSuite struct {
	suite.Suite
	client *engine.MockClient
	rapl   *rapl.MockReader
}

func TestTelemetryTestSuite(t *testing.T) {
	suite.Run(t, new(TelemetryTestSuite))
}

func (s *TelemetryTestSuite) SetupTest() {
	s.client = engine.NewMockClient()
	s.rapl = &rapl.MockReader{}
}

func (s *TelemetryTestSuite) TestPullAppendsThroughputAndPower() {
	base := time.Unix(1000, 0)
	s.client.AddMockCounter("Tasks.Finished", []engine.CounterPoint{{Timestamp: base, Value: 42}})
	s.client.AddMockCounter("Tasks.Started", []engine.CounterPoint{{Timestamp: base, Value: 50}})
	s.client.AddMockCounter("Tasks.Active", []engine.CounterPoint{{Timestamp: base, Value: 5}})
	s.rapl.Snapshots = []rapl.Snapshot{
		{Timestamp: base, PackageJoule: 0, DramJoule: 0},
		{Timestamp: base.Add(1 * time.Second), PackageJoule: 10, DramJoule: 2},
	}

	puller := New(s.client, s.rapl, time.Second, 300*time.Second)
	active := models.NewConfiguration(2_400_000, 4, false, 1, 5, 1000)

	puller.Pull(base, &active)
	s.Equal(1, puller.Throughput.Len())
	s.Equal(0, puller.Power.Len(), "first RAPL read only seeds the baseline")
	s.Equal(50.0, puller.LastStarted())
	s.Equal(5.0, puller.LastActive())

	puller.Pull(base.Add(1*time.Second), &active)
	s.Equal(1, puller.Power.Len())
	samples := puller.Power.Samples()
	s.InDelta(12.0, samples[0].Actual, 1e-9)
}

func (s *TelemetryTestSuite) TestRAPLUnavailableAppendsZeroSample() {
	s.rapl.Err = errors.New("rapl unavailable")
	puller := New(s.client, s.rapl, time.Second, 300*time.Second)
	active := models.NewConfiguration(2_400_000, 4, false, 1, 5, 1000)

	now := time.Now()
	puller.Pull(now, &active)
	s.Equal(1, puller.Power.Len())
	s.Equal(0.0, puller.Power.Samples()[0].Actual)
}

func (s *TelemetryTestSuite) TestNoPullWithoutActiveConfig() {
	puller := New(s.client, s.rapl, time.Second, 300*time.Second)
	puller.Pull(time.Now(), nil)
	s.Equal(0, puller.Power.Len())
	s.Equal(0, puller.Throughput.Len())
}

func (s *TelemetryTestSuite) TestNotDueSkipsPull() {
	puller := New(s.client, s.rapl, time.Minute, 300*time.Second)
	active := models.NewConfiguration(2_400_000, 4, false, 1, 5, 1000)
	now := time.Now()
	puller.Pull(now, &active)
	puller.Pull(now.Add(time.Second), &active)
	s.True(puller.lastPull.Equal(now))
}
