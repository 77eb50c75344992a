package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/casperlundberg/euf-controller/internal/benchwatch"
	"github.com/casperlundberg/euf-controller/internal/cache"
	"github.com/casperlundberg/euf-controller/internal/controller"
	"github.com/casperlundberg/euf-controller/internal/engine"
	"github.com/casperlundberg/euf-controller/internal/rapl"
	"github.com/casperlundberg/euf-controller/internal/telemetry"
	"github.com/casperlundberg/euf-controller/pkg/configgen"
	"github.com/casperlundberg/euf-controller/pkg/hwmodel"
	"github.com/casperlundberg/euf-controller/pkg/models"
	"github.com/casperlundberg/euf-controller/pkg/pareto"
	"github.com/casperlundberg/euf-controller/pkg/workload"
)

var testAxes = hwmodel.Axes{
	FreqsKHz: []int{1_200_000, 2_400_000},
	Cores:    []int{2, 4},
	HTs:      []bool{false, true},
}

type ServerTestSuite struct {
	suite.Suite
	client *engine.MockClient
	ctl    *controller.Controller
	srv    *Server
}

func TestServerTestSuite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	s.client = engine.NewMockClient()
	s.client.AddMockWorker(0)
	s.client.AddMockWorker(1)
	sess := s.client.AddMockSession("sess")
	sess.AddMockBenchmark("B")

	hw := hwmodel.New(hwmodel.Params{
		RefFreqKHz: 2_400_000, BaseIPC: 1, PkgPerCoreW: 0.5, PkgFreqPower: 1, RamBaseW: 1,
	}, testAxes)
	wm := workload.New(map[string]models.WorkloadDesc{"B": {IPT: 10_000}})
	cc := cache.New(configgen.New(hw, wm), pareto.DefaultObjectives())
	watcher := benchwatch.New(s.client, "sess")
	puller := telemetry.New(s.client, &rapl.MockReader{Snapshots: []rapl.Snapshot{{}}}, time.Second, 300*time.Second)
	s.ctl = controller.New(s.client, cc, watcher, puller, testAxes, 2, controller.WithLogger(func(string, ...interface{}) {}))

	s.srv = NewServer(s.ctl, testAxes, []string{"sess"}, ":0")
}

func (s *ServerTestSuite) doRequest(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	s.srv.Router().ServeHTTP(w, req)
	return w
}

func (s *ServerTestSuite) TestRootRedirectsToServiceStatus() {
	w := s.doRequest(http.MethodGet, "/")
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/servicestatus", w.Header().Get("Location"))
}

func (s *ServerTestSuite) TestServiceStatusReflectsEnabledFlag() {
	s.ctl.SetEnabled(true)

	w := s.doRequest(http.MethodGet, "/servicestatus")
	s.Equal(http.StatusOK, w.Code)

	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal(true, body["eclOn"])
	s.Equal(false, body["adaptOn"])
}

func (s *ServerTestSuite) TestSetEclOnTogglesController() {
	w := s.doRequest(http.MethodPost, "/services/eclon/1")
	s.Equal(http.StatusOK, w.Code)
	s.True(s.ctl.Enabled())

	w = s.doRequest(http.MethodPost, "/services/eclon/0")
	s.Equal(http.StatusOK, w.Code)
	s.False(s.ctl.Enabled())
}

func (s *ServerTestSuite) TestSetEclOnRejectsBadFlag() {
	w := s.doRequest(http.MethodPost, "/services/eclon/nope")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ServerTestSuite) TestAdaptOnIsAlwaysNoOp() {
	w := s.doRequest(http.MethodPost, "/services/adapton/1")
	s.Equal(http.StatusOK, w.Code)
}

func (s *ServerTestSuite) TestSessionsListsManagedBenchmarks() {
	w := s.doRequest(http.MethodGet, "/benchmark/sessions")
	s.Equal(http.StatusOK, w.Code)

	var body map[string][]map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Require().Len(body["managedBenchmarks"], 1)
	s.Equal("sess", body["managedBenchmarks"][0]["name"])
}

func (s *ServerTestSuite) TestSetBenchmarkActivatesOnEngine() {
	w := s.doRequest(http.MethodPost, "/benchmark/setbenchmark/sess/B")
	s.Equal(http.StatusOK, w.Code)
}

func (s *ServerTestSuite) TestSetBenchmarkUnknownSessionFails() {
	w := s.doRequest(http.MethodPost, "/benchmark/setbenchmark/nope/B")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ServerTestSuite) TestConfigurationsMarksActiveEntry() {
	s.ctl.SetEnabled(true)
	s.ctl.Tick(time.Now())

	w := s.doRequest(http.MethodGet, "/configurations")
	s.Equal(http.StatusOK, w.Code)

	var body struct {
		Sockets []struct {
			Configurations []map[string]interface{} `json:"configurations"`
		} `json:"sockets"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Require().Len(body.Sockets, 1)

	var activeCount int
	for _, entry := range body.Sockets[0].Configurations {
		if active, _ := entry["active"].(bool); active {
			activeCount++
		}
	}
	s.Equal(1, activeCount)
}
