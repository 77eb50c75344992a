// Package configgen is the configuration generator (CG): it enumerates the
// Cartesian product of the hardware model's tuning axes, evaluates the
// hardware and workload models at every point, and produces the candidate
// Configuration list a benchmark's Pareto reduction and controller selection
// operate over.
package configgen

import (
	"github.com/casperlundberg/euf-controller/pkg/hwmodel"
	"github.com/casperlundberg/euf-controller/pkg/models"
	"github.com/casperlundberg/euf-controller/pkg/workload"
)

// Generator ties one hardware model to one workload model.
type Generator struct {
	hw hwmodel.Model
	wm workload.Model
}

// New builds a Generator from a hardware model and a workload model.
func New(hw hwmodel.Model, wm workload.Model) Generator {
	return Generator{hw: hw, wm: wm}
}

// Generate returns every Configuration over freqs × cores × hts for
// benchmark. The enumeration order is unspecified and callers must not rely
// on it (spec.md §4.3). Fails with models.ErrUnknownBenchmark if the
// workload model does not know benchmark.
func (g Generator) Generate(benchmark string) ([]models.Configuration, error) {
	wd, err := g.wm.Benchmarks(benchmark)
	if err != nil {
		return nil, err
	}

	axes := g.hw.Axes
	candidates := make([]models.Configuration, 0, len(axes.FreqsKHz)*len(axes.Cores)*len(axes.HTs))
	for _, freqKHz := range axes.FreqsKHz {
		for _, cores := range axes.Cores {
			for _, ht := range axes.HTs {
				cpus := cores
				if ht {
					cpus = 2 * cores
				}
				ipc := g.hw.IPC(wd, cpus, freqKHz, ht)
				pPkg := g.hw.PPkg(wd, cpus, freqKHz, ht)
				pRam := g.hw.PRam(wd, cpus, freqKHz, ht)
				power := pPkg + pRam

				var tps float64
				if ipc > 0 && wd.IPT > 0 {
					cyclesPerTask := wd.IPT / ipc
					if cyclesPerTask > 0 {
						tps = (float64(freqKHz) * 1000) / cyclesPerTask
					}
				}

				candidates = append(candidates, models.NewConfiguration(freqKHz, cores, ht, ipc, power, tps))
			}
		}
	}
	return candidates, nil
}
