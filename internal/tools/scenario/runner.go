package scenario

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/louisbranch/knightfall/internal/platform/timeouts"
	"github.com/louisbranch/knightfall/internal/services/game/domain/catalog"
	"github.com/louisbranch/knightfall/internal/services/game/domain/engine"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
	"github.com/louisbranch/knightfall/internal/services/game/storage"
	"github.com/louisbranch/knightfall/internal/services/game/storage/integrity"
	"github.com/louisbranch/knightfall/internal/services/game/storage/sqlite"
)

// Config controls scenario execution.
type Config struct {
	Timeout    time.Duration
	Assertions AssertionMode
	Verbose    bool
	Logger     *log.Logger
	// SavePath, when set, names a SQLite save store that receives the final
	// state of every scenario.
	SavePath string
	// Locale is used for rejection messages in logs.
	Locale string
	// Rules and Seed are the defaults for every game step. A zero Rules
	// selects game.DefaultRules; scripts may override single options.
	Rules game.Rules
	Seed  uint64
}

// DefaultConfig returns default runner configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:    timeouts.ScenarioStep,
		Assertions: AssertionStrict,
		Locale:     "en-US",
		Rules:      game.DefaultRules(),
		Seed:       1,
	}
}

// Runner executes Lua scenarios against an in-process engine.
type Runner struct {
	dispatcher *engine.Dispatcher
	store      storage.SaveStore
	closer     func() error
	assertions Assertions
	logger     *log.Logger
	verbose    bool
	timeout    time.Duration
	locale     string
	rules      game.Rules
	seed       uint64
}

// NewRunner builds the engine and, when cfg.SavePath is set, opens the save
// store. Saves are signed when KNIGHTFALL_SAVE_HMAC_KEY(S) is set.
func NewRunner(ctx context.Context, cfg Config) (*Runner, error) {
	dispatcher, err := engine.NewDispatcher(catalog.Static())
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}
	deps := runnerDeps{dispatcher: dispatcher}

	if cfg.SavePath != "" {
		keyring, err := integrity.KeyringFromEnv()
		if err != nil {
			return nil, fmt.Errorf("load save keyring: %w", err)
		}
		store, err := sqlite.Open(ctx, cfg.SavePath, sqlite.WithKeyring(keyring))
		if err != nil {
			return nil, fmt.Errorf("open save store: %w", err)
		}
		deps.store = store
		deps.closer = store.Close
	}
	return newRunnerWithDeps(cfg, deps)
}

// newRunnerWithDeps builds a Runner from pre-built dependencies.
// Config defaults (logger, timeout) are applied here so they are testable.
func newRunnerWithDeps(cfg Config, deps runnerDeps) (*Runner, error) {
	if deps.dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = timeouts.ScenarioStep
	}
	locale := cfg.Locale
	if locale == "" {
		locale = "en-US"
	}
	rules := cfg.Rules
	if rules == (game.Rules{}) {
		rules = game.DefaultRules()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	deps.dispatcher.Logger = logger

	return &Runner{
		dispatcher: deps.dispatcher,
		store:      deps.store,
		closer:     deps.closer,
		assertions: Assertions{Mode: cfg.Assertions, Logger: logger},
		logger:     logger,
		verbose:    cfg.Verbose,
		timeout:    timeout,
		locale:     locale,
		rules:      rules,
		seed:       seed,
	}, nil
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	if r.closer != nil {
		return r.closer()
	}
	return nil
}

// RunFile loads and executes a scenario file.
func RunFile(ctx context.Context, cfg Config, path string) error {
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		return err
	}
	runner, err := NewRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()
	return runner.RunScenario(ctx, scenario)
}

// RunScenario executes the scenario steps against a fresh session.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) error {
	if scenario == nil {
		return errors.New("scenario is required")
	}
	r.logf("scenario start: %s (%d steps)", scenario.Name, len(scenario.Steps))
	state := &scenarioState{}

	for index, step := range scenario.Steps {
		stepNumber := index + 1
		r.logf("step %d/%d start: %s", stepNumber, len(scenario.Steps), step.Kind)
		stepStart := time.Now()
		stepCtx, cancel := context.WithTimeout(ctx, r.timeout)
		err := r.runStep(stepCtx, state, step)
		cancel()
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", stepNumber, step.Kind, err)
		}
		r.logf("step %d/%d done: %s (%s)", stepNumber, len(scenario.Steps), step.Kind, time.Since(stepStart))
	}

	if r.store != nil && state.started {
		rec, err := storage.SaveSession(ctx, r.store, state.session)
		if err != nil {
			return err
		}
		r.logf("saved game %s at event %d", rec.GameID, rec.EventSeq)
	}
	r.logf("scenario done: %s", scenario.Name)
	return nil
}

func (r *Runner) logf(format string, args ...any) {
	if !r.verbose || r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}
