// Package config loads and validates the controller's tunables: the
// refresh cadence, the telemetry history window, the engine endpoint, and
// the HTTP bind address for the Control API. It follows the load-then-
// validate shape of the teacher's pkg/colonyos/config_loader.go, adapted
// from JSON to YAML and from hand-written checks to struct-tag validation.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Engine holds the connection details for the execution engine's Control
// API (spec.md §4.9's "engine client" collaborator).
type Engine struct {
	URL      string        `yaml:"url" validate:"required,url"`
	User     string        `yaml:"user"`
	Password string        `yaml:"password"`
	Timeout  time.Duration `yaml:"timeout" validate:"gt=0"`
}

// Controller holds the tuning constants of the control loop (spec.md §4.6,
// §4.7, §4.8).
type Controller struct {
	RefreshInterval    time.Duration `yaml:"refresh_interval" validate:"gt=0"`
	HistoryWindow      time.Duration `yaml:"history_window" validate:"gt=0"`
	AdaptationThreshold float64      `yaml:"adaptation_threshold" validate:"gt=0,lt=1"`
}

// API holds the Control API's bind address.
type API struct {
	Addr string `yaml:"addr" validate:"required"`
}

// Models holds the filesystem paths of the hardware and workload model
// files (spec.md §4.1, §4.2).
type Models struct {
	HardwarePath string `yaml:"hardware_path" validate:"required"`
	WorkloadPath string `yaml:"workload_path" validate:"required"`
}

// Config is the top-level tunables document loaded from YAML.
type Config struct {
	Engine     Engine     `yaml:"engine" validate:"required"`
	Controller Controller `yaml:"controller" validate:"required"`
	API        API        `yaml:"api" validate:"required"`
	Models     Models     `yaml:"models" validate:"required"`
	Sessions   []string   `yaml:"sessions" validate:"required,min=1"`
}

// Default returns the tunables spec.md §4.6/§4.9 names as defaults, used
// when a field is left zero by the YAML document.
func Default() Config {
	return Config{
		Controller: Controller{
			RefreshInterval:     time.Second,
			HistoryWindow:       300 * time.Second,
			AdaptationThreshold: 0.05,
		},
		API: API{Addr: "localhost:5000"},
	}
}

// Load reads and validates the tunables document at path.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}
