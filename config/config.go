package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/morpho-org/morpho-optimizers-sub014/broker"
	"github.com/morpho-org/morpho-optimizers-sub014/execution"
	"github.com/morpho-org/morpho-optimizers-sub014/metrics"
	"github.com/morpho-org/morpho-optimizers-sub014/pool"
)

const configFileName = "config.toml"

// Config ties together all other application configuration types.
type Config struct {
	Execution execution.Config `group:"Execution" namespace:"execution"`
	Broker    broker.Config    `group:"Broker"    namespace:"broker"`
	Pool      pool.Config      `group:"Pool"      namespace:"pool"`
	Metrics   metrics.Config   `group:"Metrics"   namespace:"metrics"`
}

// NewDefaultConfig returns a set of default configs for all packages, as
// specified at the per package config level.
func NewDefaultConfig() Config {
	return Config{
		Execution: execution.NewDefaultConfig(),
		Broker:    broker.NewDefaultConfig(),
		Pool:      pool.NewDefaultConfig(),
		Metrics:   metrics.NewDefaultConfig(),
	}
}

// Read loads the configuration file from the given root path, on top of
// the defaults.
func Read(rootPath string) (*Config, error) {
	path := filepath.Join(rootPath, configFileName)
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := NewDefaultConfig()
	if _, err := toml.Decode(string(buf), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Write saves the given configuration under the root path, used to seed a
// fresh deployment with the defaults.
func Write(rootPath string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(rootPath, configFileName), buf, 0o644)
}
