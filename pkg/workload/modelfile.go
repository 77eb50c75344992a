package workload

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/casperlundberg/euf-controller/pkg/models"
)

// ModelFile is the on-disk shape of the workload model: one table per
// benchmark name, keyed by name, each holding the heaviness axes and ipt.
type ModelFile struct {
	Benchmarks map[string]models.WorkloadDesc `toml:"benchmarks"`
}

// LoadModel reads and parses a workload model file from path. A missing or
// malformed file is models.ErrModelUnavailable, fatal at startup.
func LoadModel(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Model{}, fmt.Errorf("%w: reading workload model file %s: %v", models.ErrModelUnavailable, path, err)
	}
	var mf ModelFile
	if err := toml.Unmarshal(data, &mf); err != nil {
		return Model{}, fmt.Errorf("%w: parsing workload model file %s: %v", models.ErrModelUnavailable, path, err)
	}
	if len(mf.Benchmarks) == 0 {
		return Model{}, fmt.Errorf("%w: workload model file %s declares no benchmarks", models.ErrModelUnavailable, path)
	}
	return New(mf.Benchmarks), nil
}
