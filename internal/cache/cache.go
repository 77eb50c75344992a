// Package cache is the configuration cache (CC): the per-benchmark
// memoised result of running the configuration generator and Pareto
// reducer. Entries are computed lazily on first request and never
// invalidated during a run (spec.md §4.5, §9 "lazy with memoisation" — see
// DESIGN.md for why eager startup generation was not used).
package cache

import (
	"sync"

	"github.com/casperlundberg/euf-controller/pkg/configgen"
	"github.com/casperlundberg/euf-controller/pkg/models"
	"github.com/casperlundberg/euf-controller/pkg/pareto"
)

// Cache memoises configgen.Generate + pareto.Reduce per benchmark name.
type Cache struct {
	mu         sync.Mutex
	gen        configgen.Generator
	objectives []pareto.Objective
	entries    map[string]models.ConfigurationSet
}

// New builds a Cache over gen, reducing with objectives.
func New(gen configgen.Generator, objectives []pareto.Objective) *Cache {
	return &Cache{
		gen:        gen,
		objectives: objectives,
		entries:    make(map[string]models.ConfigurationSet),
	}
}

// Get returns the memoised ConfigurationSet for benchmark, computing it on
// first access. The returned error is the configuration generator's
// (typically models.ErrUnknownBenchmark); a failed computation is never
// cached, so the next call for that benchmark runs the generator again. The
// caller (the controller) is responsible for falling back to SYNTH_MAX on
// error, per spec.md §4.5 and §4.8's failure semantics.
func (c *Cache) Get(benchmark string) (models.ConfigurationSet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cs, ok := c.entries[benchmark]; ok {
		return cs, nil
	}

	all, err := c.gen.Generate(benchmark)
	if err != nil {
		return models.ConfigurationSet{}, err
	}
	reduced := pareto.Reduce(all, c.objectives)
	cs := models.ConfigurationSet{All: all, Pareto: reduced}
	c.entries[benchmark] = cs
	return cs, nil
}

// Invalidate drops a memoised entry so the next Get recomputes it. Nothing
// in this repository calls it; the running controller never does (CC is
// never invalidated during a run per spec.md §4.5).
func (c *Cache) Invalidate(benchmark string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, benchmark)
}
