// Package config loads the simulator configuration from YAML with
// defaults applied first, so a missing file or a partial file both work.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Simulator holds all configuration for the simulator process.
type Simulator struct {
	// Tick loop
	TickMs      int64 `yaml:"tick_ms"`
	DurationMs  int64 `yaml:"duration_ms"`
	WorkerCount int   `yaml:"worker_count"` // entity shards ticked in parallel

	// Engines
	Flask FlaskConfig `yaml:"flask"`

	// Optional data overrides file (YAML); empty = built-in tables only.
	DataOverrides string `yaml:"data_overrides"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// FlaskConfig tunes the flask engine.
type FlaskConfig struct {
	SlotCount          int     `yaml:"slot_count"`
	GlobalCooldownMs   int64   `yaml:"global_cooldown_ms"`
	FlaskCooldownMs    int64   `yaml:"flask_cooldown_ms"`
	ChargeRecoveryRate float64 `yaml:"charge_recovery_rate"`
	RecoveryIntervalMs int64   `yaml:"recovery_interval_ms"`
}

// DefaultSimulator returns simulator config with sensible defaults.
func DefaultSimulator() Simulator {
	return Simulator{
		TickMs:      50,
		DurationMs:  30_000,
		WorkerCount: 4,
		Flask: FlaskConfig{
			SlotCount:          5,
			GlobalCooldownMs:   200,
			FlaskCooldownMs:    250,
			ChargeRecoveryRate: 1.0,
			RecoveryIntervalMs: 1000,
		},
		LogLevel: "info",
	}
}

// LoadSimulator loads simulator config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSimulator(path string) (Simulator, error) {
	cfg := DefaultSimulator()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the tick loop cannot run with.
func (c Simulator) Validate() error {
	if c.TickMs <= 0 {
		return fmt.Errorf("tick_ms must be positive, got %d", c.TickMs)
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("worker_count must be at least 1, got %d", c.WorkerCount)
	}
	if c.Flask.SlotCount < 1 {
		return fmt.Errorf("flask.slot_count must be at least 1, got %d", c.Flask.SlotCount)
	}
	if c.Flask.RecoveryIntervalMs <= 0 {
		return fmt.Errorf("flask.recovery_interval_ms must be positive, got %d", c.Flask.RecoveryIntervalMs)
	}
	return nil
}
