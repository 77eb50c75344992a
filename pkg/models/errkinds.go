package models

import "errors"

// Error kinds named by spec.md §7. Wrap a sentinel with fmt.Errorf("...: %w", ErrX)
// so callers can classify failures with errors.Is without string matching.
var (
	// ErrEngineUnavailable: engine client failed to connect or to complete a request.
	// Fatal at startup; logged and retried at runtime.
	ErrEngineUnavailable = errors.New("engine unavailable")

	// ErrModelUnavailable: the hardware or workload model file is absent or malformed.
	// Fatal at startup.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrUnknownBenchmark: a benchmark name has no workload descriptor. Skip and log.
	ErrUnknownBenchmark = errors.New("unknown benchmark")

	// ErrTelemetryUnavailable: RAPL or an engine counter produced no value. Never fatal.
	ErrTelemetryUnavailable = errors.New("telemetry unavailable")

	// ErrAPIBadRequest: an unparseable path segment. 400, no state change.
	ErrAPIBadRequest = errors.New("bad request")

	// ErrAPIOperationFailed: a downstream refusal, e.g. unknown benchmark/profile id. 400.
	ErrAPIOperationFailed = errors.New("operation failed")
)
