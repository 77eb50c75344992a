// Package controller is the controller (CTL): the central, tick-driven
// state machine that owns the active configuration, chooses the current
// candidate set, selects and commits operating points, and evaluates the
// need to adapt to the offered task rate (spec.md §4.8).
package controller

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/casperlundberg/euf-controller/internal/benchwatch"
	"github.com/casperlundberg/euf-controller/internal/cache"
	"github.com/casperlundberg/euf-controller/internal/engine"
	"github.com/casperlundberg/euf-controller/internal/telemetry"
	"github.com/casperlundberg/euf-controller/pkg/hwmodel"
	"github.com/casperlundberg/euf-controller/pkg/models"
)

// AdaptationThreshold is the fractional deviation between the needed and
// the active configuration's tps that triggers a re-selection (spec.md
// §4.8 step 3's 0.05 constant).
const AdaptationThreshold = 0.05

// Controller is the single per-process control-loop singleton. A single
// mutex protects every field of its embedded ControllerState, held for the
// full body of a tick or for the duration of an API mutation/snapshot read
// (spec.md §5). It is constructed once and handed to the API layer by
// dependency injection, never reached through a package-level global
// (spec.md §9).
type Controller struct {
	mu    sync.Mutex
	state models.ControllerState

	client  engine.Client
	cache   *cache.Cache
	watcher *benchwatch.Watcher
	puller  *telemetry.Puller
	axes    hwmodel.Axes

	maxPhysicalCores int
	newID            func() string
	logf             func(format string, args ...interface{})
}

// Option customises a Controller at construction time.
type Option func(*Controller)

// WithIDGenerator overrides the commit-correlation id generator; tests use
// this to get deterministic ids instead of random UUIDs.
func WithIDGenerator(f func() string) Option {
	return func(c *Controller) { c.newID = f }
}

// WithLogger overrides the log sink; tests use this to capture output
// instead of writing to the process-wide standard logger.
func WithLogger(f func(format string, args ...interface{})) Option {
	return func(c *Controller) { c.logf = f }
}

// New builds a Controller. maxPhysicalCores is the hardware ceiling used to
// compute SMT-sibling worker ids in Commit.
func New(client engine.Client, cc *cache.Cache, watcher *benchwatch.Watcher, puller *telemetry.Puller, axes hwmodel.Axes, maxPhysicalCores int, opts ...Option) *Controller {
	c := &Controller{
		client:           client,
		cache:            cc,
		watcher:          watcher,
		puller:           puller,
		axes:             axes,
		maxPhysicalCores: maxPhysicalCores,
		newID:            func() string { return uuid.NewString() },
		logf:             log.Printf,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetEnabled mutates the desired-mode flag and schedules a reselection at
// the next tick boundary (spec.md §4.8/§9: the API↔controller handoff is a
// request-flag pattern guarded by the controller's mutex).
func (c *Controller) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Enabled = enabled
	c.state.PendingUpdate = true
}

// Enabled reports the current desired-mode flag.
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Enabled
}

// Snapshot returns a self-consistent copy of the controller state, safe for
// the API layer to read without further locking (spec.md §5: "reads of
// current_candidates and active_config through the API always return
// coherent snapshots").
func (c *Controller) Snapshot() models.ControllerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneState(c.state)
}

func cloneState(s models.ControllerState) models.ControllerState {
	clone := s
	clone.CurrentCandidates = append([]models.Configuration(nil), s.CurrentCandidates...)
	clone.AllCandidates = append([]models.Configuration(nil), s.AllCandidates...)
	if s.ActiveConfig != nil {
		cfg := *s.ActiveConfig
		clone.ActiveConfig = &cfg
	}
	clone.LastState = s.LastState.Clone()
	return clone
}

// ActivateBenchmark asks the named engine session to switch its active
// benchmark. It does not touch ControllerState directly: the next tick's
// BSW refresh observes the resulting lifecycle edge and reselects
// naturally.
func (c *Controller) ActivateBenchmark(session, benchmark string) error {
	sess, err := c.client.Session(session)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrAPIOperationFailed, err)
	}
	if err := sess.ActivateBenchmark(benchmark); err != nil {
		return fmt.Errorf("%w: %v", models.ErrAPIOperationFailed, err)
	}
	return nil
}

// ActivateProfile asks the named engine session to switch its active profile.
func (c *Controller) ActivateProfile(session, profile string) error {
	sess, err := c.client.Session(session)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrAPIOperationFailed, err)
	}
	if err := sess.ActivateProfile(profile); err != nil {
		return fmt.Errorf("%w: %v", models.ErrAPIOperationFailed, err)
	}
	return nil
}

// Tick runs one iteration of the per-tick procedure (spec.md §4.8): refresh
// benchmark state, reselect if needed, evaluate the adaptation need, and
// pull telemetry. The whole body executes under the controller lock, so it
// is atomic with respect to API mutations (spec.md §5).
func (c *Controller) Tick(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed, snapshot, err := c.watcher.Refresh()
	if err != nil {
		// EngineUnavailable at runtime: log and retry next tick: spec.md §7.
		c.logf("controller: benchmark state refresh failed: %v", err)
		changed = false
	}

	if snapshot != nil {
		c.state.LastState = snapshot
	}

	mustReselect := changed || c.state.PendingUpdate
	if mustReselect {
		current, all := c.computeCandidates()
		c.state.CurrentCandidates = current
		c.state.AllCandidates = all
		c.state.PendingUpdate = false
		best := Select(current, nil, nil)
		c.commit(best)
	}

	c.evaluateAdaptation()
	c.puller.Pull(now, c.state.ActiveConfig)
}

// computeCandidates implements the mode table of spec.md §4.8.
func (c *Controller) computeCandidates() ([]models.Configuration, []models.Configuration) {
	if !c.state.Enabled {
		synth := models.SynthMax(c.axes.MaxFreqKHz(), c.axes.MaxCores())
		return []models.Configuration{synth}, []models.Configuration{synth}
	}
	if c.state.LastState.AnyLoading() {
		synth := models.SynthMax(c.axes.MaxFreqKHz(), c.axes.MaxCores())
		return []models.Configuration{synth}, []models.Configuration{synth}
	}

	running := c.state.LastState.RunningBenchmarks()
	switch len(running) {
	case 0:
		return c.idleCandidates()
	case 1:
		cs, err := c.cache.Get(running[0])
		if err != nil {
			c.logf("controller: configuration cache miss for benchmark %q: %v; falling back to SYNTH_MAX", running[0], err)
			synth := models.SynthMax(c.axes.MaxFreqKHz(), c.axes.MaxCores())
			return []models.Configuration{synth}, []models.Configuration{synth}
		}
		return cs.Pareto, cs.All
	default:
		// spec.md's mode table only defines the exactly-one-Running row;
		// more than one benchmark Running simultaneously has no single
		// benchmark to key the configuration cache on, so it is treated
		// like the no-Running-no-Loading row rather than left undefined.
		return c.idleCandidates()
	}
}

func (c *Controller) idleCandidates() ([]models.Configuration, []models.Configuration) {
	idle := models.SynthIdle(c.axes.MinFreqKHz(), c.axes.MinCores())
	current := []models.Configuration{idle}
	if c.state.ActiveConfig != nil && !c.state.ActiveConfig.Equal(idle) {
		current = append(current, *c.state.ActiveConfig)
	}
	return current, current
}

// evaluateAdaptation implements spec.md §4.8 step 3.
func (c *Controller) evaluateAdaptation() {
	if c.state.ActiveConfig == nil || len(c.state.CurrentCandidates) == 1 {
		return
	}
	needed := math.Max(c.puller.LastStarted(), c.puller.LastActive())
	if math.Abs(needed-c.state.ActiveConfig.Tps) > AdaptationThreshold*needed {
		target := needed
		seed := *c.state.ActiveConfig
		best := Select(c.state.CurrentCandidates, &target, &seed)
		c.commit(best)
	}
}

// commit implements spec.md §4.8's Commit procedure, including P7's
// idempotency: issuing engine commands only when the tuning triple differs
// from the active configuration.
func (c *Controller) commit(next models.Configuration) {
	if c.state.ActiveConfig != nil && c.state.ActiveConfig.Equal(next) {
		updated := next
		c.state.ActiveConfig = &updated
		return
	}

	id := c.newID()
	workers, err := c.client.Workers()
	if err != nil {
		c.logf("commit %s: engine unavailable, will retry next tick: %v", id, err)
		c.state.PendingUpdate = true
		return
	}

	enabledIDs := make(map[int]bool, next.Cores*2)
	for i := 0; i < next.Cores; i++ {
		enabledIDs[i] = true
		if next.HT {
			enabledIDs[i+c.maxPhysicalCores] = true
		}
	}

	ok := true
	for _, w := range workers {
		if err := w.Frequency(next.FreqKHz); err != nil {
			c.logf("commit %s: setting frequency on worker %d failed: %v", id, w.LocalID(), err)
			ok = false
		}
		if enabledIDs[w.LocalID()] {
			if err := w.Enable(); err != nil {
				c.logf("commit %s: enabling worker %d failed: %v", id, w.LocalID(), err)
				ok = false
			}
		} else {
			if err := w.Disable(); err != nil {
				c.logf("commit %s: disabling worker %d failed: %v", id, w.LocalID(), err)
				ok = false
			}
		}
	}
	if !ok {
		c.logf("commit %s: one or more engine commands failed, will retry next tick", id)
		c.state.PendingUpdate = true
		return
	}

	updated := next
	c.state.ActiveConfig = &updated
	c.logf("commit %s: active configuration -> freq=%d cores=%d ht=%v", id, next.FreqKHz, next.Cores, next.HT)
}
