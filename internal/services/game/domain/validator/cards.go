package validator

import (
	"fmt"
	"slices"

	"github.com/louisbranch/knightfall/internal/services/game/domain/action"
	"github.com/louisbranch/knightfall/internal/services/game/domain/catalog"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
	"github.com/louisbranch/knightfall/internal/services/game/domain/mana"
)

func cardChecks(cat catalog.Catalog, cardID func(action.Action) string) []Validator {
	known := func(_ game.State, _ string, a action.Action) Result {
		id := cardID(a)
		if _, ok := cat.Card(id); !ok {
			return Invalid(CodeCardNotFound, fmt.Sprintf("card %s not found", id)).With("CardID", id)
		}
		return Valid()
	}
	inHand := func(s game.State, playerID string, a action.Action) Result {
		p, _ := s.Player(playerID)
		id := cardID(a)
		if !slices.Contains(p.Hand, id) {
			return Invalid(CodeCardNotInHand, fmt.Sprintf("card %s is not in hand", id)).With("CardID", id)
		}
		return Valid()
	}
	playable := func(_ game.State, _ string, a action.Action) Result {
		def, _ := cat.Card(cardID(a))
		if def.Wound {
			return Invalid(CodeCardUnplayable, "wounds cannot be played")
		}
		return Valid()
	}
	return []Validator{known, inHand, playable}
}

func playCardID(a action.Action) string {
	if pc, ok := a.(action.PlayCard); ok {
		return pc.CardID
	}
	return ""
}

func sidewaysCardID(a action.Action) string {
	if pc, ok := a.(action.PlayCardSideways); ok {
		return pc.CardID
	}
	return ""
}

// Powering checks that a powered play names a card with a powered effect and
// a mana payment the player can afford. Mana payments on a basic play are
// rejected as malformed.
func Powering(cat catalog.Catalog) Validator {
	return typed(func(s game.State, p game.Player, a action.PlayCard) Result {
		if !a.Powered {
			if a.Mana != nil {
				return Invalid(CodeActionInvalid, "mana is only paid for powered plays")
			}
			return Valid()
		}
		def, _ := cat.Card(a.CardID)
		if def.Powered == nil {
			return Invalid(CodeCardNotPowerable, fmt.Sprintf("card %s has no powered effect", a.CardID))
		}
		if a.Mana == nil {
			return Invalid(CodeInsufficientMana, "powering requires mana")
		}
		color, r := payingColor(s, p, *a.Mana)
		if !r.OK() {
			return r
		}
		rules := s.ManaRules(p.ID)
		if !rules.Usable(color) {
			return Invalid(CodeManaTimeOfDay, fmt.Sprintf("%s mana cannot be used now", color)).With("Color", string(color))
		}
		if !rules.Pays(color, def.Color) {
			return Invalid(CodeManaColorMismatch, fmt.Sprintf("%s mana does not power a %s card", color, def.Color)).
				With("Color", string(color))
		}
		return Valid()
	})
}

// payingColor resolves the color of a payment and checks availability.
func payingColor(s game.State, p game.Player, pay action.ManaPayment) (mana.Color, Result) {
	switch pay.Source {
	case action.ManaFromToken:
		if p.Mana[pay.Color] <= 0 {
			return "", Invalid(CodeInsufficientMana, fmt.Sprintf("no %s mana token", pay.Color))
		}
		return pay.Color, Valid()
	case action.ManaFromCrystal:
		if p.Crystals[pay.Color] <= 0 {
			return "", Invalid(CodeInsufficientMana, fmt.Sprintf("no %s crystal", pay.Color))
		}
		return pay.Color, Valid()
	case action.ManaFromDie:
		if r := dieAvailable(s, p, pay.DieIndex); !r.OK() {
			return "", r
		}
		return s.Source[pay.DieIndex].Color, Valid()
	default:
		return "", Invalid(CodeActionInvalid, fmt.Sprintf("mana source %q is not supported", pay.Source))
	}
}

func dieAvailable(s game.State, p game.Player, index int) Result {
	if p.UsedSource {
		return Invalid(CodeSourceAlreadyUsed, "the source was already used this turn")
	}
	if index < 0 || index >= len(s.Source) {
		return Invalid(CodeSourceDieNotFound, fmt.Sprintf("source die %d not found", index))
	}
	if s.Source[index].TakenBy != "" {
		return Invalid(CodeSourceDieTaken, fmt.Sprintf("source die %d is taken", index))
	}
	return Valid()
}

// SidewaysTarget checks that the sideways value is usable now: move and
// influence outside combat, attack and block inside.
var SidewaysTarget = typed(func(s game.State, p game.Player, a action.PlayCardSideways) Result {
	inCombat := s.InCombat(p.ID)
	switch a.As {
	case action.SidewaysMove, action.SidewaysInfluence:
		if inCombat {
			return Invalid(CodeSidewaysInvalid, fmt.Sprintf("%s is not usable during combat", a.As))
		}
	case action.SidewaysAttack, action.SidewaysBlock:
		if !inCombat {
			return Invalid(CodeSidewaysInvalid, fmt.Sprintf("%s is only usable in combat", a.As))
		}
	default:
		return Invalid(CodeSidewaysInvalid, fmt.Sprintf("sideways value %q is not supported", a.As))
	}
	return Valid()
})
