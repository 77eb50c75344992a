// Package telemetry is the telemetry puller (TP): on a fixed cadence it
// reads the engine's task counters and the RAPL energy counters and
// appends samples to two bounded rings, one for power and one for
// throughput (spec.md §4.6).
package telemetry

import (
	"time"

	"github.com/casperlundberg/euf-controller/internal/engine"
	"github.com/casperlundberg/euf-controller/internal/rapl"
	"github.com/casperlundberg/euf-controller/pkg/models"
)

const (
	counterFinished = "Tasks.Finished"
	counterStarted  = "Tasks.Started"
	counterActive   = "Tasks.Active"
)

// DefaultRefreshInterval is the cadence spec.md §4.6 names as the default.
const DefaultRefreshInterval = 1 * time.Second

// DefaultHistoryWindow is the default ring retention spec.md §3 names.
const DefaultHistoryWindow = 300 * time.Second

// Puller owns the power and throughput series and the bookkeeping needed to
// compute RAPL deltas and honour the refresh cadence.
type Puller struct {
	client engine.Client
	rapl   rapl.Reader

	refreshInterval time.Duration
	historyWindow   time.Duration

	lastPull    time.Time
	lastRAPL    *rapl.Snapshot
	lastStarted float64
	lastActive  float64

	Power      models.Series
	Throughput models.Series
}

// New builds a Puller. A zero refreshInterval/historyWindow falls back to
// the package defaults.
func New(client engine.Client, raplReader rapl.Reader, refreshInterval, historyWindow time.Duration) *Puller {
	if refreshInterval <= 0 {
		refreshInterval = DefaultRefreshInterval
	}
	if historyWindow <= 0 {
		historyWindow = DefaultHistoryWindow
	}
	return &Puller{
		client:          client,
		rapl:            raplReader,
		refreshInterval: refreshInterval,
		historyWindow:   historyWindow,
	}
}

// Due reports whether enough time has elapsed since the last pull.
func (p *Puller) Due(now time.Time) bool {
	return p.lastPull.IsZero() || now.Sub(p.lastPull) >= p.refreshInterval
}

// LastStarted and LastActive expose the most recently observed Tasks.Started
// / Tasks.Active counter values, consumed by the controller's adaptation
// check (spec.md §4.8 step 3: needed = max(started_counter, active_counter)).
func (p *Puller) LastStarted() float64 { return p.lastStarted }
func (p *Puller) LastActive() float64  { return p.lastActive }

// Pull reads engine and RAPL counters if the cadence allows it and appends
// samples to the power/throughput series. activeConfig may be nil before
// the first commit, in which case no sample is appended (there is nothing
// to compare telemetry against yet). Telemetry-pull failures are silent per
// spec.md §4.6/§7: the series simply gains no sample, except RAPL
// unavailability, which still appends a (now, 0, estimated) sample.
func (p *Puller) Pull(now time.Time, activeConfig *models.Configuration) {
	if !p.Due(now) {
		return
	}
	p.lastPull = now

	p.pullCounters(now, activeConfig)
	p.pullPower(now, activeConfig)
}

func (p *Puller) pullCounters(now time.Time, activeConfig *models.Configuration) {
	counters, err := p.client.Counters()
	if err != nil {
		return
	}
	var finished, started, active engine.Counter
	for _, c := range counters {
		switch c.DistName() {
		case counterFinished:
			finished = c
		case counterStarted:
			started = c
		case counterActive:
			active = c
		}
	}

	if started != nil {
		if v, ok := latestValue(started); ok {
			p.lastStarted = v
		}
	}
	if active != nil {
		if v, ok := latestValue(active); ok {
			p.lastActive = v
		}
	}

	if finished == nil || activeConfig == nil {
		return
	}
	v, ok := latestValue(finished)
	if !ok {
		return
	}
	p.Throughput.Append(models.TelemetrySample{
		Timestamp: now,
		Actual:    v,
		Estimated: activeConfig.Tps,
	}, now, p.historyWindow)
}

func (p *Puller) pullPower(now time.Time, activeConfig *models.Configuration) {
	if activeConfig == nil {
		return
	}
	snapshot, err := p.rapl.Read()
	if err != nil {
		p.Power.Append(models.TelemetrySample{
			Timestamp: now,
			Actual:    0,
			Estimated: activeConfig.PowerW,
		}, now, p.historyWindow)
		return
	}

	if p.lastRAPL == nil {
		// No prior reading to diff against yet; store and wait for the
		// next tick, as a single snapshot carries no rate information.
		p.lastRAPL = &snapshot
		return
	}
	delta := snapshot.Sub(*p.lastRAPL)
	p.lastRAPL = &snapshot
	p.Power.Append(models.TelemetrySample{
		Timestamp: delta.Timestamp,
		Actual:    delta.Watts(),
		Estimated: activeConfig.PowerW,
	}, now, p.historyWindow)
}

func latestValue(c engine.Counter) (float64, bool) {
	points, err := c.Monitor().Values(true)
	if err != nil || len(points) == 0 {
		return 0, false
	}
	return points[len(points)-1].Value, true
}
