// Command eufctl runs the energy-utility feedback controller: it discovers
// hardware topology, loads the hardware and workload model files, connects
// to the execution engine, and serves the Control API while ticking the
// control loop on a fixed cadence (spec.md §4.9, §6, §7).
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casperlundberg/euf-controller/internal/api"
	"github.com/casperlundberg/euf-controller/internal/benchwatch"
	"github.com/casperlundberg/euf-controller/internal/cache"
	"github.com/casperlundberg/euf-controller/internal/config"
	"github.com/casperlundberg/euf-controller/internal/controller"
	"github.com/casperlundberg/euf-controller/internal/engine"
	"github.com/casperlundberg/euf-controller/internal/rapl"
	"github.com/casperlundberg/euf-controller/internal/telemetry"
	"github.com/casperlundberg/euf-controller/pkg/configgen"
	"github.com/casperlundberg/euf-controller/pkg/hwmodel"
	"github.com/casperlundberg/euf-controller/pkg/pareto"
	"github.com/casperlundberg/euf-controller/pkg/workload"
)

// tickInterval is the control thread's fixed wall-clock cadence (spec.md
// §4.8/§5: "the control thread blocks up to 1s between ticks"). It is
// independent of cfg.Controller.RefreshInterval, which only gates how often
// the telemetry puller samples RAPL/engine counters (spec.md §4.6).
const tickInterval = 1 * time.Second

func main() {
	var (
		configPath = flag.String("config", "./config/tunables.yaml", "Path to the controller tunables YAML file")
		url        = flag.String("url", "", "Execution engine URL (overrides the config file)")
		user       = flag.String("user", "", "Execution engine user (overrides the config file)")
		passwd     = flag.String("passwd", "", "Execution engine password (overrides the config file)")
		port       = flag.String("port", "", "Control API bind address (overrides the config file)")
		_          = flag.Bool("nocurses", true, "Accepted for compatibility; this build has no terminal UI")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("eufctl: loading tunables: %v", err)
	}
	if *url != "" {
		cfg.Engine.URL = *url
	}
	if *user != "" {
		cfg.Engine.User = *user
	}
	if *passwd != "" {
		cfg.Engine.Password = *passwd
	}
	if *port != "" {
		cfg.API.Addr = *port
	}

	hw, err := hwmodel.LoadModel(cfg.Models.HardwarePath)
	if err != nil {
		log.Fatalf("eufctl: %v", err)
	}
	wm, err := workload.LoadModel(cfg.Models.WorkloadPath)
	if err != nil {
		log.Fatalf("eufctl: %v", err)
	}

	client := engine.NewHTTPClient(engine.HTTPClientConfig{
		URL:      cfg.Engine.URL,
		User:     cfg.Engine.User,
		Password: cfg.Engine.Password,
		Timeout:  cfg.Engine.Timeout,
	})
	if err := client.EnergyManagement(false, false); err != nil {
		log.Fatalf("eufctl: disabling engine-native energy management: %v", err)
	}

	if len(cfg.Sessions) == 0 {
		log.Fatalf("eufctl: no sessions configured")
	}
	sessionName := cfg.Sessions[0]

	cc := cache.New(configgen.New(hw, wm), pareto.DefaultObjectives())
	watcher := benchwatch.New(client, sessionName)
	raplReader := rapl.NewSysfsReader("/sys/class/powercap/intel-rapl:0")
	puller := telemetry.New(client, raplReader, cfg.Controller.RefreshInterval, cfg.Controller.HistoryWindow)

	ctl := controller.New(client, cc, watcher, puller, hw.Axes, hwmodel.MaxPhysicalCores())
	server := api.NewServer(ctl, hw.Axes, cfg.Sessions, cfg.API.Addr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Start()
	}()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	tickDone := make(chan struct{})
	go runTickLoop(ctl, ticker, tickDone)

	select {
	case err := <-serveErr:
		if err != nil {
			log.Fatalf("eufctl: control API failed: %v", err)
		}
	case sig := <-sigChan:
		log.Printf("eufctl: received signal %v, shutting down", sig)
		close(tickDone)
	}
}

func runTickLoop(ctl *controller.Controller, ticker *time.Ticker, done <-chan struct{}) {
	for {
		select {
		case now := <-ticker.C:
			ctl.Tick(now)
		case <-done:
			return
		}
	}
}
