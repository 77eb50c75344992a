package engine

import (
	"fmt"
	"sync"

	"github.com/casperlundberg/euf-controller/pkg/models"
)

// mockWorker is a fully in-memory Worker used by tests and by MockClient.
type mockWorker struct {
	mu        sync.Mutex
	id        int
	enabled   bool
	freqKHz   int
}

func (w *mockWorker) LocalID() int { return w.id }

func (w *mockWorker) Enable() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.enabled = true
	return nil
}

func (w *mockWorker) Disable() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.enabled = false
	return nil
}

func (w *mockWorker) Frequency(kHz int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.freqKHz = kHz
	return nil
}

// Enabled and FreqKHz are test-only accessors exposing mockWorker's state,
// since the Worker interface intentionally has no getters (the real engine
// is write-only from the controller's point of view).
func (w *mockWorker) Enabled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enabled
}

func (w *mockWorker) FreqKHz() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.freqKHz
}

// mockMonitor replays a scripted sequence of points, settable between ticks.
type mockMonitor struct {
	mu     sync.Mutex
	points []CounterPoint
}

func (m *mockMonitor) Values(refresh bool) ([]CounterPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.points, nil
}

// Set replaces the monitor's scripted points, letting a test change a
// counter's latest value between two ticks.
func (m *mockMonitor) Set(points []CounterPoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points = points
}

// mockCounter pairs a name with a mockMonitor.
type mockCounter struct {
	name    string
	monitor *mockMonitor
}

func (c *mockCounter) DistName() string { return c.name }
func (c *mockCounter) Monitor() Monitor { return c.monitor }

// Set lets a test rescript this counter's latest value between ticks.
func (c *mockCounter) Set(points []CounterPoint) {
	c.monitor.Set(points)
}

// mockBenchmark is a settable Benchmark used to script lifecycle edges.
type mockBenchmark struct {
	mu     sync.Mutex
	state  models.LifecycleState
	active bool
}

func (b *mockBenchmark) State() models.LifecycleState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *mockBenchmark) Active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// SetState lets a test script a lifecycle transition between ticks.
func (b *mockBenchmark) SetState(state models.LifecycleState, active bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state, b.active = state, active
}

// mockProfile is an opaque named profile.
type mockProfile struct{ id string }

func (p *mockProfile) ID() string { return p.id }

// mockSession is a fully in-memory Session.
type mockSession struct {
	mu         sync.Mutex
	name       string
	benchmarks map[string]*mockBenchmark
	profiles   map[string]*mockProfile
}

func (s *mockSession) Benchmarks() map[string]Benchmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Benchmark, len(s.benchmarks))
	for k, v := range s.benchmarks {
		out[k] = v
	}
	return out
}

func (s *mockSession) Profiles() map[string]Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Profile, len(s.profiles))
	for k, v := range s.profiles {
		out[k] = v
	}
	return out
}

func (s *mockSession) ActivateBenchmark(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.benchmarks[id]; !ok {
		return fmt.Errorf("%w: unknown benchmark %q", models.ErrAPIOperationFailed, id)
	}
	return nil
}

func (s *mockSession) ActivateProfile(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[id]; !ok {
		return fmt.Errorf("%w: unknown profile %q", models.ErrAPIOperationFailed, id)
	}
	return nil
}

func (s *mockSession) Refresh() error { return nil }

// MockClient is a scripted, fully-functioning in-memory Client for tests —
// the engine-domain analogue of the teacher's MockColonyOSClient
// (pkg/colonyos/client.go).
type MockClient struct {
	mu       sync.Mutex
	workers  []Worker
	counters []Counter
	sessions map[string]*mockSession
	energyMgmtCalls []struct{ Loop, Adapt bool }
}

// NewMockClient builds an empty MockClient; use the AddMock* helpers to
// populate workers, counters and sessions before exercising a controller
// against it.
func NewMockClient() *MockClient {
	return &MockClient{sessions: make(map[string]*mockSession)}
}

// AddMockWorker registers a worker with the given local id.
func (c *MockClient) AddMockWorker(id int) *mockWorker {
	c.mu.Lock()
	defer c.mu.Unlock()
	w := &mockWorker{id: id}
	c.workers = append(c.workers, w)
	return w
}

// AddMockCounter registers a counter with a scripted value sequence and
// returns it so a test can later rescript its points with Set.
func (c *MockClient) AddMockCounter(name string, points []CounterPoint) *mockCounter {
	c.mu.Lock()
	defer c.mu.Unlock()
	mc := &mockCounter{name: name, monitor: &mockMonitor{points: points}}
	c.counters = append(c.counters, mc)
	return mc
}

// AddMockSession registers a named session with no benchmarks or profiles
// yet; use AddMockBenchmark/AddMockProfile to populate it.
func (c *MockClient) AddMockSession(name string) *mockSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := &mockSession{name: name, benchmarks: make(map[string]*mockBenchmark), profiles: make(map[string]*mockProfile)}
	c.sessions[name] = s
	return s
}

// AddMockBenchmark registers benchmark id on session s in Ready/inactive state.
func (s *mockSession) AddMockBenchmark(id string) *mockBenchmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := &mockBenchmark{state: models.Ready}
	s.benchmarks[id] = b
	return b
}

// AddMockProfile registers profile id on session s.
func (s *mockSession) AddMockProfile(id string) *mockProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &mockProfile{id: id}
	s.profiles[id] = p
	return p
}

func (c *MockClient) Workers() ([]Worker, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Worker(nil), c.workers...), nil
}

func (c *MockClient) Counters() ([]Counter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Counter(nil), c.counters...), nil
}

func (c *MockClient) Session(name string) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown session %q", models.ErrEngineUnavailable, name)
	}
	return s, nil
}

func (c *MockClient) EnergyManagement(loop, adapt bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.energyMgmtCalls = append(c.energyMgmtCalls, struct{ Loop, Adapt bool }{loop, adapt})
	return nil
}

// EnergyManagementCalls exposes the recorded calls for test assertions.
func (c *MockClient) EnergyManagementCalls() []struct{ Loop, Adapt bool } {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]struct{ Loop, Adapt bool }(nil), c.energyMgmtCalls...)
}
