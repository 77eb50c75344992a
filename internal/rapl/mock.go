package rapl

import (
	"fmt"

	"github.com/casperlundberg/euf-controller/pkg/models"
)

// SysfsReader reads RAPL energy counters from the Linux powercap sysfs
// interface (/sys/class/powercap/intel-rapl:0/energy_uj and the dram
// subzone). Actual sysfs parsing is out of scope for this repository (the
// spec treats the RAPL reader purely as an external collaborator); this
// type exists so callers have a concrete Reader to wire in production
// rather than only a mock.
type SysfsReader struct {
	BasePath string
}

// NewSysfsReader builds a reader rooted at basePath, typically
// "/sys/class/powercap/intel-rapl:0".
func NewSysfsReader(basePath string) *SysfsReader {
	return &SysfsReader{BasePath: basePath}
}

// Read returns models.ErrTelemetryUnavailable-wrapped errors to the caller
// by convention (see internal/telemetry); the sysfs read itself is not
// implemented here.
// TODO: read energy_uj files under BasePath and its dram subzone.
func (r *SysfsReader) Read() (Snapshot, error) {
	return Snapshot{}, fmt.Errorf("%w: rapl sysfs reader not wired to a counter source (base %s)", models.ErrTelemetryUnavailable, r.BasePath)
}

// MockReader is a scripted Reader for tests: each call to Read pops the
// next queued snapshot, repeating the last one once the queue is drained.
type MockReader struct {
	Snapshots []Snapshot
	Err       error
	calls     int
}

// Read implements Reader.
func (m *MockReader) Read() (Snapshot, error) {
	if m.Err != nil {
		return Snapshot{}, m.Err
	}
	if len(m.Snapshots) == 0 {
		return Snapshot{}, fmt.Errorf("rapl: mock has no queued snapshots")
	}
	idx := m.calls
	if idx >= len(m.Snapshots) {
		idx = len(m.Snapshots) - 1
	}
	m.calls++
	return m.Snapshots[idx], nil
}
