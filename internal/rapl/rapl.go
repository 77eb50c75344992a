// Package rapl defines the RAPL energy-counter contract (spec.md §6): an
// opaque external collaborator exposing a snapshot of cumulative package and
// DRAM energy, and the delta between two snapshots expressed in watts. The
// real reader (procfs/sysfs powercap, or vendor tooling) is out of scope;
// only the interface, an unwired sysfs stub and a mock for tests live here.
package rapl

import "time"

// Snapshot is one point-in-time reading of the package-0 and dram RAPL
// energy domains, in joules (RAPL's native cumulative-energy unit).
type Snapshot struct {
	Timestamp    time.Time
	PackageJoule float64
	DramJoule    float64
}

// Delta is the watts computed between two snapshots: (joules difference) /
// (seconds elapsed) per domain, summed by the telemetry puller into
// spec.md §4.6's actual_watts = pkg0.watts + dram.watts.
type Delta struct {
	Timestamp    time.Time
	PackageWatts float64
	DramWatts    float64
}

// Sub computes the Delta from prior to s. Returns the zero Delta with a
// zero duration guarded against (no divide-by-zero) if the two snapshots
// share a timestamp.
func (s Snapshot) Sub(prior Snapshot) Delta {
	elapsed := s.Timestamp.Sub(prior.Timestamp).Seconds()
	if elapsed <= 0 {
		return Delta{Timestamp: s.Timestamp}
	}
	return Delta{
		Timestamp:    s.Timestamp,
		PackageWatts: (s.PackageJoule - prior.PackageJoule) / elapsed,
		DramWatts:    (s.DramJoule - prior.DramJoule) / elapsed,
	}
}

// Watts is the sum the telemetry puller reports as actual power.
func (d Delta) Watts() float64 {
	return d.PackageWatts + d.DramWatts
}

// Reader is the RAPL contract consumed by the telemetry puller.
type Reader interface {
	Read() (Snapshot, error)
}
