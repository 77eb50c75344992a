package hwmodel

import "github.com/klauspost/cpuid/v2"

// MaxPhysicalCores returns the real host's physical core count, used by the
// controller's commit procedure (spec.md §4.8) to compute SMT-sibling worker
// ids (i + max_physical_cores). A model file's own `cores` axis may list fewer
// cores than this for testing or for deliberately under-provisioning the
// engine; this value is the hardware ceiling, not the configured axis.
func MaxPhysicalCores() int {
	if cpuid.CPU.PhysicalCores > 0 {
		return cpuid.CPU.PhysicalCores
	}
	if cpuid.CPU.LogicalCores > 0 {
		return cpuid.CPU.LogicalCores
	}
	return 1
}

// SupportsHT reports whether the host exposes more logical than physical
// cores. DefaultAxes uses it to decide whether the hts axis includes true.
func SupportsHT() bool {
	return cpuid.CPU.LogicalCores > cpuid.CPU.PhysicalCores && cpuid.CPU.PhysicalCores > 0
}

// DefaultAxes builds an Axes from the host topology discovered via cpuid.
// Nothing in this repository calls it: cmd/eufctl always loads its axes
// from a model file (LoadModel), which rejects a file that declares no
// axes, and the tests construct their Axes explicitly.
func DefaultAxes() Axes {
	maxCores := MaxPhysicalCores()
	cores := []int{maxCores}
	if maxCores > 1 {
		cores = []int{1, maxCores}
	}
	hts := []bool{false}
	if SupportsHT() {
		hts = []bool{false, true}
	}
	return Axes{
		FreqsKHz: []int{1_200_000, 2_400_000},
		Cores:    cores,
		HTs:      hts,
	}
}
