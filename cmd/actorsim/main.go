// Command actorsim runs one actor headlessly from a tengo input script and
// logs every state transition.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/milk9111/actorkit/internal/config"
	"github.com/milk9111/actorkit/internal/logging"
	"github.com/milk9111/actorkit/prefabs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.RegisterFlags(flag.CommandLine)
	script := flag.String("script", "", "input script under prefabs/scripts (defaults to the actor's script)")
	seconds := flag.Float64("seconds", 12, "simulated seconds")
	flag.Parse()

	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(2)
	}
	prefabs.Dir = cfg.PrefabDir

	res, err := simulate(options{
		Actor:  cfg.Settings,
		Level:  cfg.Level,
		Script: *script,
		Ticks:  int(*seconds * float64(cfg.TPS)),
		TPS:    cfg.TPS,
	}, log)
	if err != nil {
		log.Error("simulate", "err", err)
		os.Exit(1)
	}
	if res.Err != nil {
		log.Warn("actor ran degraded", "err", res.Err)
	}
	log.Info("done",
		"ticks", res.Ticks,
		"elapsed", fmt.Sprintf("%.2f", res.Elapsed),
		"position", fmt.Sprintf("%.2f %.2f %.2f", res.Position.X(), res.Position.Y(), res.Position.Z()),
		"transitions", len(res.Transitions),
		"max_combo", res.MaxCombo,
		"swaps", res.Swaps,
	)
}
