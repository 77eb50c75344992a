package models

// ControllerState is the single process-wide singleton described by spec.md
// §3. It is never copied implicitly: the control loop is its sole mutator,
// and API handlers reach it through an injected handle guarded by one mutex
// (see internal/controller), never a package-level global.
type ControllerState struct {
	// Enabled is the desired-mode flag toggled by the API (POST /services/eclon).
	Enabled bool
	// PendingUpdate is set by API mutators and consumed by the next tick.
	PendingUpdate bool
	// ActiveConfig is the configuration most recently committed to the engine,
	// or nil before the first commit (invariant I1).
	ActiveConfig *Configuration
	// CurrentCandidates is the set the controller selects from on this tick;
	// a subset of the active benchmark's Pareto frontier, or synthetic.
	CurrentCandidates []Configuration
	// AllCandidates is the non-reduced set, kept only for visualisation.
	AllCandidates []Configuration
	// LastState is the most recent benchmark-state snapshot, or nil before
	// the first refresh.
	LastState BenchmarkState
}

// SynthMax builds the placeholder configuration committed whenever the
// controller is disabled or a benchmark is loading: max frequency, max
// cores, hyperthreading on. Its telemetry fields are fixed placeholders (1)
// because it exists to command the engine, not to be ranked against others.
func SynthMax(maxFreqKHz, maxCores int) Configuration {
	return Configuration{
		FreqKHz: maxFreqKHz,
		Cores:   maxCores,
		HT:      true,
		Cpus:    2 * maxCores,
		IPC:     1,
		PowerW:  1,
		Tps:     1,
		EPR:     1,
	}
}

// SynthIdle builds the placeholder configuration committed when no
// benchmark is running or loading: min frequency, min cores, no HT.
func SynthIdle(minFreqKHz, minCores int) Configuration {
	return Configuration{
		FreqKHz: minFreqKHz,
		Cores:   minCores,
		HT:      false,
		Cpus:    minCores,
		IPC:     1,
		PowerW:  1,
		Tps:     1,
		EPR:     1,
	}
}
