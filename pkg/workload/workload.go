// Package workload is the workload model (WM): given a benchmark name, it
// returns the workload descriptor the hardware model needs. Like the
// hardware model, its data is supplied externally and treated as opaque.
package workload

import (
	"fmt"

	"github.com/casperlundberg/euf-controller/pkg/models"
)

// Model holds the benchmark-name → workload descriptor table loaded from a
// model file. It never varies with CPU topology; spec.md §4.2 defines it as
// a pure function of the benchmark name alone.
type Model struct {
	descriptors map[string]models.WorkloadDesc
}

// New builds a Model from an explicit descriptor table, primarily for tests.
func New(descriptors map[string]models.WorkloadDesc) Model {
	return Model{descriptors: descriptors}
}

// Benchmarks returns the workload descriptor for name, or
// models.ErrUnknownBenchmark if name is not in the table.
func (m Model) Benchmarks(name string) (models.WorkloadDesc, error) {
	wd, ok := m.descriptors[name]
	if !ok {
		return models.WorkloadDesc{}, fmt.Errorf("%w: %s", models.ErrUnknownBenchmark, name)
	}
	return wd, nil
}

// Known reports whether name has a descriptor, without allocating an error.
func (m Model) Known(name string) bool {
	_, ok := m.descriptors[name]
	return ok
}
