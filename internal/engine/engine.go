// Package engine defines the engine client contract (EC) consumed by the
// controller and the telemetry puller (spec.md §6). The engine itself —
// opening a session, enumerating counters, commanding workers — is an
// external collaborator; only its interface, a thin HTTP-backed
// implementation stub, and an in-memory mock for tests live here.
package engine

import (
	"time"

	"github.com/casperlundberg/euf-controller/pkg/models"
)

// Worker is one schedulable execution context (a logical CPU) the engine
// exposes for enable/disable/frequency commands.
type Worker interface {
	LocalID() int
	Enable() error
	Disable() error
	Frequency(kHz int) error
}

// CounterPoint is one (timestamp, value) observation from a Monitor.
type CounterPoint struct {
	Timestamp time.Time
	Value     float64
}

// Monitor streams values for one counter.
type Monitor interface {
	// Values returns the ordered sequence of observations. When refresh is
	// true the engine is asked to poll its source before returning, per
	// spec.md §6's Monitor.values(refresh:bool) contract.
	Values(refresh bool) ([]CounterPoint, error)
}

// Counter is one named task counter (e.g. "Tasks.Finished").
type Counter interface {
	DistName() string
	Monitor() Monitor
}

// Benchmark is one benchmark's lifecycle view within a session.
type Benchmark interface {
	State() models.LifecycleState
	Active() bool
}

// Profile is an opaque named configuration profile a session can activate.
type Profile interface {
	ID() string
}

// Session is one named benchmark session: it enumerates the benchmarks and
// profiles it knows about and accepts activation commands. The
// underscore-prefixed names in the source (_activate_benchmark,
// _activate_profile, _update) are its documented public contract per
// spec.md §9 and are exported here without the prefix.
type Session interface {
	Benchmarks() map[string]Benchmark
	Profiles() map[string]Profile
	ActivateBenchmark(id string) error
	ActivateProfile(id string) error
	// Refresh forces the session to pull a fresh state snapshot from the
	// engine before the next Benchmarks()/Profiles() call is trusted.
	Refresh() error
}

// Client is the engine client contract: opening sessions, enumerating
// workers and counters, and disabling the engine's own control loop at
// startup (spec.md §6's energy_management(loop:bool, adapt:bool)).
type Client interface {
	Workers() ([]Worker, error)
	Counters() ([]Counter, error)
	Session(name string) (Session, error)
	EnergyManagement(loop, adapt bool) error
}
