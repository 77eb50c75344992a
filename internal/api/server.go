// Package api is the Control API (API): a small gin-backed HTTP surface
// that mutates the controller's desired-mode flag, switches benchmark and
// profile, and exposes the controller's state as JSON (spec.md §4.9, §6).
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/casperlundberg/euf-controller/internal/controller"
	"github.com/casperlundberg/euf-controller/pkg/hwmodel"
	"github.com/casperlundberg/euf-controller/pkg/models"
)

// Server wraps a gin.Engine bound to one Controller, following the shape of
// the teacher's internal/api/server.go (Server{router, deps} / NewServer /
// setupRoutes / Start), generalised from simulation-CRUD routes to the
// controller's mode/benchmark/profile surface.
type Server struct {
	router       *gin.Engine
	ctl          *controller.Controller
	axes         hwmodel.Axes
	sessionNames []string
	addr         string
}

// NewServer builds a Server bound to ctl, listening on addr (e.g.
// "localhost:5000" per spec.md §6). sessionNames is the fixed list of
// engine sessions the controller manages, returned by
// GET /benchmark/sessions.
func NewServer(ctl *controller.Controller, axes hwmodel.Axes, sessionNames []string, addr string) *Server {
	router := gin.Default()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	router.Use(cors.New(config))

	s := &Server{router: router, ctl: ctl, axes: axes, sessionNames: sessionNames, addr: addr}
	s.setupRoutes()
	return s
}

// Router exposes the underlying gin.Engine, primarily for tests that drive
// requests with httptest without binding a real listener.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start blocks serving HTTP on s.addr.
func (s *Server) Start() error {
	return s.router.Run(s.addr)
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleRoot)
	s.router.GET("/servicestatus", s.handleServiceStatus)
	s.router.POST("/services/eclon/:flag", s.handleSetEclOn)
	s.router.POST("/services/adapton/:flag", s.handleSetAdaptOn)
	s.router.GET("/configurations", s.handleConfigurations)
	s.router.GET("/benchmark/sessions", s.handleSessions)
	s.router.POST("/benchmark/setbenchmark/:session/:bench", s.handleSetBenchmark)
	s.router.POST("/benchmark/setprofile/:session/:profile", s.handleSetProfile)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.Redirect(http.StatusFound, "/servicestatus")
}

func (s *Server) handleServiceStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"adaptOn": false, // reserved, spec.md §6: /services/adapton is a no-op
		"eclOn":   s.ctl.Enabled(),
	})
}

func (s *Server) handleSetEclOn(c *gin.Context) {
	enabled, err := parseBoolFlag(c.Param("flag"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.ctl.SetEnabled(enabled)
	c.Status(http.StatusOK)
}

// handleSetAdaptOn is reserved and always a no-op per spec.md §6.
func (s *Server) handleSetAdaptOn(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (s *Server) handleSessions(c *gin.Context) {
	managed := make([]gin.H, 0, len(s.sessionNames))
	for _, name := range s.sessionNames {
		managed = append(managed, gin.H{"name": name})
	}
	c.JSON(http.StatusOK, gin.H{"managedBenchmarks": managed})
}

func (s *Server) handleSetBenchmark(c *gin.Context) {
	session, bench := c.Param("session"), c.Param("bench")
	if session == "" || bench == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrAPIBadRequest.Error()})
		return
	}
	if err := s.ctl.ActivateBenchmark(session, bench); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) handleSetProfile(c *gin.Context) {
	session, profile := c.Param("session"), c.Param("profile")
	if session == "" || profile == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrAPIBadRequest.Error()})
		return
	}
	if err := s.ctl.ActivateProfile(session, profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusOK)
}

// handleConfigurations renders the controller's visualisation payload
// (spec.md §6): one socket carrying the non-reduced candidate set, each
// scaled into the 0-100 ranges a dashboard expects.
func (s *Server) handleConfigurations(c *gin.Context) {
	snap := s.ctl.Snapshot()

	minFreq, maxFreq := s.axes.MinFreqKHz(), s.axes.MaxFreqKHz()
	var maxTps, maxInvEPR float64
	for _, cfg := range snap.AllCandidates {
		if cfg.Tps > maxTps {
			maxTps = cfg.Tps
		}
		if v := invEPR(cfg); v > maxInvEPR {
			maxInvEPR = v
		}
	}

	entries := make([]gin.H, 0, len(snap.AllCandidates))
	for _, cfg := range snap.AllCandidates {
		entries = append(entries, gin.H{
			"cpuCount":              cfg.Cpus,
			"avgCoreFrequency":      cfg.FreqKHz,
			"avgCoreFrequencyLevel": freqLevel(cfg.FreqKHz, minFreq, maxFreq),
			"uncoreFrequency":       2_400_000,
			"uncoreFrequencyLevel":  100,
			"relativePerformance":   ratioPct(cfg.Tps, maxTps),
			"relativeEE":            ratioPct(invEPR(cfg), maxInvEPR),
			"active":                snap.ActiveConfig != nil && snap.ActiveConfig.Equal(cfg),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"sockets": []gin.H{
			{
				"logicalId":      0,
				"adapting":       snap.Enabled,
				"reevalLeft":     0,
				"configurations": entries,
			},
		},
	})
}

func invEPR(cfg models.Configuration) float64 {
	if cfg.EPR <= 0 {
		return 0
	}
	return 1 / cfg.EPR
}

func freqLevel(freq, min, max int) float64 {
	if max <= min {
		return 0
	}
	return 100 * float64(freq-min) / float64(max-min)
}

func ratioPct(value, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return 100 * value / max
}

func parseBoolFlag(raw string) (bool, error) {
	switch raw {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		if _, err := strconv.Atoi(raw); err == nil {
			return false, models.ErrAPIBadRequest
		}
		return false, models.ErrAPIBadRequest
	}
}
