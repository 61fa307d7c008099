// Package config reads process configuration from ACTORKIT_* environment
// variables. Command-line flags registered with RegisterFlags override it.
package config

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

var ErrInvalidTPS = errors.New("config: ticks per second must be positive")

type Config struct {
	LogLevel  string `env:"ACTORKIT_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"ACTORKIT_LOG_FORMAT" envDefault:"console"`
	// Settings is the actor prefab whose settings are loaded and watched.
	Settings  string `env:"ACTORKIT_SETTINGS" envDefault:"actor.yaml"`
	Level     string `env:"ACTORKIT_LEVEL" envDefault:"level.yaml"`
	PrefabDir string `env:"ACTORKIT_PREFAB_DIR" envDefault:"prefabs"`
	TPS       int    `env:"ACTORKIT_TPS" envDefault:"60"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}

// RegisterFlags binds flags to cfg, using the current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: console, text or json")
	fs.StringVar(&c.Settings, "actor", c.Settings, "actor prefab to load")
	fs.StringVar(&c.Level, "level", c.Level, "level prefab to load")
	fs.StringVar(&c.PrefabDir, "prefabs", c.PrefabDir, "directory checked for prefab overrides")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
}

func (c Config) Validate() error {
	if c.TPS <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTPS, c.TPS)
	}
	return nil
}

// TickDuration is the fixed simulation step in seconds.
func (c Config) TickDuration() float64 {
	if c.TPS <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(c.TPS)
}
