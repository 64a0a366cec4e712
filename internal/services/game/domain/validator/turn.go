package validator

import (
	"fmt"

	"github.com/louisbranch/knightfall/internal/services/game/domain/action"
	"github.com/louisbranch/knightfall/internal/services/game/domain/catalog"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
)

// PlayerExists rejects actions from unknown players.
func PlayerExists(s game.State, playerID string, _ action.Action) Result {
	if s.PlayerIndex(playerID) < 0 {
		return Invalid(CodePlayerNotFound, fmt.Sprintf("player %s not found", playerID)).With("PlayerID", playerID)
	}
	return Valid()
}

// PlayersTurn rejects actions from anyone but the active player.
func PlayersTurn(s game.State, playerID string, _ action.Action) Result {
	if s.ActivePlayerID() != playerID {
		return Invalid(CodeNotPlayersTurn, fmt.Sprintf("it is %s's turn", s.ActivePlayerID())).With("PlayerID", s.ActivePlayerID())
	}
	return Valid()
}

// TurnsPhase rejects actions once the game is over.
func TurnsPhase(s game.State, _ string, _ action.Action) Result {
	if s.Phase != game.PhaseTurns {
		return Invalid(CodeWrongPhase, fmt.Sprintf("game phase is %s", s.Phase))
	}
	return Valid()
}

// NotInCombat rejects actions that cannot be taken while fighting.
func NotInCombat(s game.State, playerID string, _ action.Action) Result {
	if s.InCombat(playerID) {
		return Invalid(CodeInCombat, "action is not allowed during combat")
	}
	return Valid()
}

// InCombat rejects combat actions outside combat.
func InCombat(s game.State, playerID string, _ action.Action) Result {
	if !s.InCombat(playerID) {
		return Invalid(CodeNotInCombat, "player is not in combat")
	}
	return Valid()
}

// NoPendingChoice rejects actions while a choice is outstanding.
var NoPendingChoice = player(func(_ game.State, p game.Player) Result {
	if p.PendingChoice != nil {
		return Invalid(CodePendingChoiceRequired, "resolve the pending choice first")
	}
	return Valid()
})

// HasPendingChoice rejects choice resolution when nothing is pending.
var HasPendingChoice = player(func(_ game.State, p game.Player) Result {
	if p.PendingChoice == nil {
		return Invalid(CodeNoPendingChoice, "there is no pending choice")
	}
	return Valid()
})

// ChoiceInRange checks the chosen option index.
var ChoiceInRange = typed(func(_ game.State, p game.Player, a action.ResolveChoice) Result {
	if a.OptionIndex < 0 || a.OptionIndex >= len(p.PendingChoice.Options) {
		return Invalid(CodeChoiceIndexOutOfRange, fmt.Sprintf("option %d out of range", a.OptionIndex))
	}
	return Valid()
})

// MinimumTurn requires the configured number of cards played before the
// turn ends, unless the hand holds nothing but wounds.
func MinimumTurn(cat catalog.Catalog) Validator {
	return player(func(s game.State, p game.Player) Result {
		if !hasPlayableCard(cat, p.Hand) {
			return Valid()
		}
		if p.CardsPlayed < s.Rules.MinCardsPerTurn {
			return Invalid(CodeMinimumTurnRequired, fmt.Sprintf("play at least %d card(s) before ending the turn", s.Rules.MinCardsPerTurn)).
				With("Count", fmt.Sprint(s.Rules.MinCardsPerTurn))
		}
		return Valid()
	})
}

func hasPlayableCard(cat catalog.Catalog, hand []string) bool {
	for _, id := range hand {
		if def, ok := cat.Card(id); ok && !def.Wound {
			return true
		}
	}
	return false
}
