package hwmodel

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/casperlundberg/euf-controller/pkg/models"
)

// ModelFile is the on-disk shape of the externally-supplied hardware model:
// the opaque analytical coefficients plus the tuning axes the configuration
// generator enumerates. A missing or malformed file is ErrModelUnavailable,
// fatal at startup per spec.md §7.
type ModelFile struct {
	Params   Params `toml:"params"`
	FreqsKHz []int  `toml:"freqs_khz"`
	Cores    []int  `toml:"cores"`
	// HTs lists the allowed hyperthreading values as 0/1, since TOML has no
	// native array-of-bool idiom as tidy as array-of-int for this axis.
	HTs []int `toml:"hts"`
}

// LoadModel reads and parses a hardware model file from path.
func LoadModel(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Model{}, fmt.Errorf("%w: reading hardware model file %s: %v", models.ErrModelUnavailable, path, err)
	}
	var mf ModelFile
	if err := toml.Unmarshal(data, &mf); err != nil {
		return Model{}, fmt.Errorf("%w: parsing hardware model file %s: %v", models.ErrModelUnavailable, path, err)
	}
	if len(mf.FreqsKHz) == 0 || len(mf.Cores) == 0 || len(mf.HTs) == 0 {
		return Model{}, fmt.Errorf("%w: hardware model file %s declares no tuning axes", models.ErrModelUnavailable, path)
	}
	hts := make([]bool, len(mf.HTs))
	for i, v := range mf.HTs {
		hts[i] = v != 0
	}
	return New(mf.Params, Axes{FreqsKHz: mf.FreqsKHz, Cores: mf.Cores, HTs: hts}), nil
}
