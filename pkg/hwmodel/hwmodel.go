// Package hwmodel is the hardware model (HM): a pure function library that,
// given a workload descriptor and a CPU topology point, predicts IPC and
// package/core/DRAM power. It also publishes the discrete tuning axes
// (allowed frequencies, core counts and hyperthreading values) that the
// configuration generator enumerates.
//
// The model's coefficients are supplied externally via a model file (see
// modelfile.go) and treated as opaque, deterministic, side-effect-free
// data; only the functional shape evaluating them lives in Go.
package hwmodel

import "github.com/casperlundberg/euf-controller/pkg/models"

// Params are the externally-supplied, opaque coefficients of the analytical
// model. They are loaded from a model file (LoadModel) or constructed
// directly in tests.
type Params struct {
	// RefFreqKHz is the frequency the power formulas are normalised against.
	RefFreqKHz int `toml:"ref_freq_khz"`

	// IPC model: baseline IPC degraded by workload heaviness, improved by AVX.
	BaseIPC        float64 `toml:"base_ipc"`
	MemoryPenalty  float64 `toml:"memory_penalty"`
	BranchPenalty  float64 `toml:"branch_penalty"`
	CachePenalty   float64 `toml:"cache_penalty"`
	AvxBonus       float64 `toml:"avx_bonus"`
	ComputeBonus   float64 `toml:"compute_bonus"`
	HTIpcPenalty   float64 `toml:"ht_ipc_penalty"` // fractional IPC loss per logical sibling when HT is on

	// Package power model: base watts plus a per-core term scaled by
	// (freq/RefFreqKHz).
	PkgBaseW     float64 `toml:"pkg_base_w"`
	PkgPerCoreW  float64 `toml:"pkg_per_core_w"`
	PkgFreqPower float64 `toml:"pkg_freq_power"` // exponent applied to the frequency ratio

	// Core-only power subset of package power (exposed separately per spec.md §4.1).
	CoreBaseW    float64 `toml:"core_base_w"`
	CorePerCoreW float64 `toml:"core_per_core_w"`

	// DRAM power model: base watts plus a term proportional to memory heaviness.
	RamBaseW        float64 `toml:"ram_base_w"`
	RamMemoryFactor float64 `toml:"ram_memory_factor"`
}

// Axes are the discrete tuning axes CG enumerates the Cartesian product of.
type Axes struct {
	FreqsKHz []int
	Cores    []int
	HTs      []bool
}

// MaxFreqKHz, MinFreqKHz, MaxCores and MinCores are convenience accessors
// used by the controller to build SYNTH_MAX / SYNTH_IDLE and the
// frequency-level percentage in the /configurations payload.
func (a Axes) MaxFreqKHz() int { return maxInt(a.FreqsKHz) }
func (a Axes) MinFreqKHz() int { return minInt(a.FreqsKHz) }
func (a Axes) MaxCores() int   { return maxInt(a.Cores) }
func (a Axes) MinCores() int   { return minInt(a.Cores) }

func maxInt(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func minInt(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// Model binds Params and Axes into the four pure functions spec.md §4.1
// requires: IPC, P_PKG, P_Cores, P_Ram.
type Model struct {
	Params Params
	Axes   Axes
}

// New builds a Model from explicit params and axes.
func New(params Params, axes Axes) Model {
	return Model{Params: params, Axes: axes}
}

// IPC computes modelled instructions-per-cycle for a workload running on
// cpus logical CPUs at freqKHz with hyperthreading flag ht. freqKHz is
// accepted for interface symmetry with the other three functions, even
// though this formula does not vary with frequency; cpus only matters when
// ht is set.
func (m Model) IPC(wd models.WorkloadDesc, cpus int, freqKHz int, ht bool) float64 {
	ipc := m.Params.BaseIPC
	ipc -= m.Params.MemoryPenalty * wd.MemoryHeaviness
	ipc -= m.Params.BranchPenalty * wd.BranchHeaviness
	ipc -= m.Params.CachePenalty * wd.CacheHeaviness
	ipc += m.Params.AvxBonus * wd.AvxHeaviness
	ipc += m.Params.ComputeBonus * wd.ComputeHeaviness
	if ht && cpus > 0 {
		// each SMT sibling dilutes per-thread IPC by a fixed fraction.
		siblings := float64(cpus) / 2.0
		ipc -= m.Params.HTIpcPenalty * siblings
	}
	if ipc < 0 {
		ipc = 0
	}
	return ipc
}

// PPkg computes modelled package watts (core package, not DRAM).
func (m Model) PPkg(wd models.WorkloadDesc, cpus int, freqKHz int, ht bool) float64 {
	ratio := freqRatio(freqKHz, m.Params.RefFreqKHz)
	p := m.Params.PkgBaseW + m.Params.PkgPerCoreW*float64(cpus)*pow(ratio, m.Params.PkgFreqPower)
	return nonNegative(p)
}

// PCores computes the core-only subset of package power.
func (m Model) PCores(wd models.WorkloadDesc, cpus int, freqKHz int, ht bool) float64 {
	ratio := freqRatio(freqKHz, m.Params.RefFreqKHz)
	p := m.Params.CoreBaseW + m.Params.CorePerCoreW*float64(cpus)*ratio
	return nonNegative(p)
}

// PRam computes modelled DRAM watts.
func (m Model) PRam(wd models.WorkloadDesc, cpus int, freqKHz int, ht bool) float64 {
	p := m.Params.RamBaseW + m.Params.RamMemoryFactor*wd.MemoryHeaviness
	return nonNegative(p)
}

func freqRatio(freqKHz, refFreqKHz int) float64 {
	if refFreqKHz <= 0 {
		return 1
	}
	return float64(freqKHz) / float64(refFreqKHz)
}

func pow(base, exp float64) float64 {
	if exp == 1 {
		return base
	}
	if exp == 0 {
		return 1
	}
	result := 1.0
	// exponents used by real model files are small integers; a loop avoids
	// pulling in math.Pow's float edge-case handling for this opaque model.
	neg := exp < 0
	n := int(exp)
	if neg {
		n = -n
	}
	for i := 0; i < n; i++ {
		result *= base
	}
	if neg && result != 0 {
		result = 1 / result
	}
	return result
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
