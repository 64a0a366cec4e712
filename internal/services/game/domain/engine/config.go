package engine

import (
	"github.com/louisbranch/knightfall/internal/platform/config"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
)

// Config holds the rule options hosts can tune through the environment.
type Config struct {
	MinCardsPerTurn int    `env:"KNIGHTFALL_MIN_CARDS_PER_TURN" envDefault:"1" validate:"min=0"`
	HandSize        int    `env:"KNIGHTFALL_HAND_SIZE"          envDefault:"5" validate:"min=1"`
	SourceDice      int    `env:"KNIGHTFALL_SOURCE_DICE"        envDefault:"3" validate:"min=1,max=8"`
	Rounds          int    `env:"KNIGHTFALL_ROUNDS"             envDefault:"6" validate:"min=1"`
	CommandTokens   int    `env:"KNIGHTFALL_COMMAND_TOKENS"     envDefault:"1" validate:"min=0"`
	Seed            uint64 `env:"KNIGHTFALL_SEED"               envDefault:"1"`
	Locale          string `env:"KNIGHTFALL_LOCALE"             envDefault:"en-US" validate:"required"`
}

// LoadConfig reads Config from the environment and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Rules returns the game rules the config selects.
func (c Config) Rules() game.Rules {
	return game.Rules{
		MinCardsPerTurn: c.MinCardsPerTurn,
		HandSize:        c.HandSize,
		SourceDice:      c.SourceDice,
		Rounds:          c.Rounds,
		CommandTokens:   c.CommandTokens,
	}
}
