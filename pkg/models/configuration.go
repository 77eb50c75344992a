package models

// Configuration is an immutable record describing one operating point of the
// engine's CPU topology plus the hardware model's predictions for it.
//
// Equality (Equal, below) considers only (FreqKHz, Cores, HT) — Cpus, IPC,
// PowerW, Tps and EPR are derived and never participate in identity. This is
// load-bearing: the controller uses equality to decide whether a
// reconfiguration must be issued at all (see internal/controller Commit).
type Configuration struct {
	FreqKHz int     `json:"freq_khz"`
	Cores   int     `json:"cores"`
	HT      bool    `json:"ht"`
	Cpus    int     `json:"cpus"`
	IPC     float64 `json:"ipc"`
	PowerW  float64 `json:"power_w"`
	Tps     float64 `json:"tps"`
	EPR     float64 `json:"epr"`
}

// NewConfiguration builds a Configuration, deriving Cpus and EPR from the
// remaining fields so callers never have to keep them in sync by hand.
func NewConfiguration(freqKHz, cores int, ht bool, ipc, powerW, tps float64) Configuration {
	cpus := cores
	if ht {
		cpus = 2 * cores
	}
	epr := 0.0
	if tps > 0 {
		epr = powerW / tps
	}
	return Configuration{
		FreqKHz: freqKHz,
		Cores:   cores,
		HT:      ht,
		Cpus:    cpus,
		IPC:     ipc,
		PowerW:  powerW,
		Tps:     tps,
		EPR:     epr,
	}
}

// Equal implements the spec's custom equality: only the tuning triple matters.
func (c Configuration) Equal(other Configuration) bool {
	return c.FreqKHz == other.FreqKHz && c.Cores == other.Cores && c.HT == other.HT
}

// Validate checks the structural invariants of a Configuration record.
func (c Configuration) Validate(maxPhysicalCores int) error {
	var errs ValidationErrors
	errs.AddIf(c.FreqKHz <= 0, "FreqKHz", c.FreqKHz, "freq_kHz must be positive")
	errs.AddIf(c.Cores < 1, "Cores", c.Cores, "cores must be >= 1")
	errs.AddIf(maxPhysicalCores > 0 && c.Cores > maxPhysicalCores, "Cores", c.Cores,
		"cores must not exceed max physical cores")
	wantCpus := c.Cores
	if c.HT {
		wantCpus = 2 * c.Cores
	}
	errs.AddIf(c.Cpus != wantCpus, "Cpus", c.Cpus, "cpus must equal (ht?2:1)*cores")
	errs.AddIf(c.IPC < 0, "IPC", c.IPC, "ipc must be non-negative")
	errs.AddIf(c.PowerW < 0, "PowerW", c.PowerW, "power_W must be non-negative")
	errs.AddIf(c.Tps < 0, "Tps", c.Tps, "tps must be non-negative")
	errs.AddIf(c.EPR < 0, "EPR", c.EPR, "epr must be non-negative")
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// ConfigurationSet is the per-benchmark memoised result of CG+PR: the full
// candidate list and its Pareto-reduced subset. Populated once by the
// configuration cache and read-only thereafter.
type ConfigurationSet struct {
	All    []Configuration
	Pareto []Configuration
}
