// Package scenario wires the scenario command: configuration from the
// environment and flags, tracing, and the Lua runner.
package scenario

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/louisbranch/knightfall/internal/platform/config"
	"github.com/louisbranch/knightfall/internal/platform/otel"
	"github.com/louisbranch/knightfall/internal/platform/timeouts"
	"github.com/louisbranch/knightfall/internal/services/game/domain/engine"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
	"github.com/louisbranch/knightfall/internal/tools/scenario"
)

const serviceName = "knightfall-scenario"

// Config holds scenario command configuration.
type Config struct {
	Scenario   string        `env:"KNIGHTFALL_SCENARIO_FILE"`
	Assertions bool          `env:"KNIGHTFALL_SCENARIO_ASSERT"   envDefault:"true"`
	Verbose    bool          `env:"KNIGHTFALL_SCENARIO_VERBOSE"`
	Timeout    time.Duration `env:"KNIGHTFALL_SCENARIO_TIMEOUT"  envDefault:"10s"  validate:"gt=0"`
	SavePath   string        `env:"KNIGHTFALL_SCENARIO_SAVE_PATH"`
	Locale     string        `env:"KNIGHTFALL_LOCALE"            envDefault:"en-US" validate:"required"`
	// Engine holds the rule defaults every scripted game starts from.
	Engine engine.Config `env:"-" validate:"-"`
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	engineCfg, err := engine.LoadConfig()
	if err != nil {
		return Config{}, fmt.Errorf("load engine config: %w", err)
	}
	cfg.Engine = engineCfg

	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.BoolVar(&cfg.Assertions, "assert", cfg.Assertions, "enable assertions (disable to log expectations)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout per step")
	fs.StringVar(&cfg.SavePath, "save", cfg.SavePath, "sqlite file that receives the final game state")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for rejection messages")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Scenario == "" && fs.NArg() > 0 {
		cfg.Scenario = fs.Arg(0)
	}
	return cfg, nil
}

// Run executes the scenario command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if cfg.Scenario == "" {
		return errors.New("scenario path is required")
	}

	shutdown, err := otel.Setup(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		_ = shutdown(shutdownCtx)
	}()

	mode := scenario.AssertionStrict
	if !cfg.Assertions {
		mode = scenario.AssertionLogOnly
	}

	logger := log.New(errOut, "", 0)
	if err := scenario.RunFile(ctx, scenario.Config{
		Timeout:    cfg.Timeout,
		Assertions: mode,
		Verbose:    cfg.Verbose,
		Logger:     logger,
		SavePath:   cfg.SavePath,
		Locale:     cfg.Locale,
		Rules:      engineRules(cfg.Engine),
		Seed:       cfg.Engine.Seed,
	}, cfg.Scenario); err != nil {
		return err
	}
	fmt.Fprintf(out, "scenario passed: %s\n", cfg.Scenario)
	return nil
}

// engineRules returns the configured rules, or the standard rules when the
// engine config was never loaded.
func engineRules(c engine.Config) game.Rules {
	if c == (engine.Config{}) {
		return game.DefaultRules()
	}
	return c.Rules()
}
