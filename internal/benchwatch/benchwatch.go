// Package benchwatch is the benchmark state watcher (BSW): on every tick it
// snapshots every benchmark's (lifecycle_state, active) pair from the
// engine session and reports whether anything changed since the previous
// refresh.
package benchwatch

import (
	"fmt"

	"github.com/casperlundberg/euf-controller/internal/engine"
	"github.com/casperlundberg/euf-controller/pkg/models"
)

// Watcher tracks one engine session's benchmark state across ticks.
type Watcher struct {
	client      engine.Client
	sessionName string
	previous    models.BenchmarkState
	hasRun      bool
}

// New builds a Watcher over sessionName.
func New(client engine.Client, sessionName string) *Watcher {
	return &Watcher{client: client, sessionName: sessionName}
}

// Refresh snapshots the session's benchmarks, compares the snapshot to the
// previous one, and returns whether anything changed. The first call after
// construction always reports changed=true, per spec.md §4.7.
func (w *Watcher) Refresh() (changed bool, snapshot models.BenchmarkState, err error) {
	session, err := w.client.Session(w.sessionName)
	if err != nil {
		return false, nil, fmt.Errorf("benchwatch: opening session %q: %w", w.sessionName, err)
	}
	if err := session.Refresh(); err != nil {
		return false, nil, fmt.Errorf("benchwatch: refreshing session %q: %w", w.sessionName, err)
	}

	current := make(models.BenchmarkState)
	for name, b := range session.Benchmarks() {
		current[name] = models.BenchEntry{State: b.State(), Active: b.Active()}
	}

	changed = !w.hasRun || !w.previous.Equal(current)
	w.previous = current
	w.hasRun = true
	return changed, current.Clone(), nil
}
