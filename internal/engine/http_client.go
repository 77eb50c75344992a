package engine

import (
	"fmt"
	"net/http"
	"time"

	"github.com/casperlundberg/euf-controller/pkg/models"
)

// HTTPClientConfig carries the connection details spec.md §6 assigns to the
// CLI flags --url, --user, --passwd.
type HTTPClientConfig struct {
	URL      string
	User     string
	Password string
	Timeout  time.Duration
}

// HTTPClient is the production Client: it talks to the execution engine's
// HTTP control surface. The wire protocol itself is out of scope for this
// repository (spec.md §1 lists "the engine client library" among the
// external collaborators whose interface, not implementation, is
// specified); each method below is a thin, named placeholder in the
// teacher's stub-with-TODO style so the dependency graph and call sites are
// real even though the transport is not.
type HTTPClient struct {
	config     HTTPClientConfig
	httpClient *http.Client
}

// NewHTTPClient builds an HTTPClient bound to config.
func NewHTTPClient(config HTTPClientConfig) *HTTPClient {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Workers enumerates the engine's schedulable logical CPUs.
// TODO: GET {url}/workers and decode the worker list.
func (c *HTTPClient) Workers() ([]Worker, error) {
	return nil, fmt.Errorf("%w: HTTPClient.Workers not wired to %s", models.ErrEngineUnavailable, c.config.URL)
}

// Counters enumerates the engine's task counters.
// TODO: GET {url}/counters and decode the counter list.
func (c *HTTPClient) Counters() ([]Counter, error) {
	return nil, fmt.Errorf("%w: HTTPClient.Counters not wired to %s", models.ErrEngineUnavailable, c.config.URL)
}

// Session opens (or attaches to) a named benchmark session.
// TODO: GET {url}/sessions/{name} and wrap the response in a Session.
func (c *HTTPClient) Session(name string) (Session, error) {
	return nil, fmt.Errorf("%w: HTTPClient.Session(%s) not wired to %s", models.ErrEngineUnavailable, name, c.config.URL)
}

// EnergyManagement disables (or enables) the engine's own control loop.
// TODO: POST {url}/energy-management with {loop, adapt}.
func (c *HTTPClient) EnergyManagement(loop, adapt bool) error {
	return fmt.Errorf("%w: HTTPClient.EnergyManagement not wired to %s", models.ErrEngineUnavailable, c.config.URL)
}
