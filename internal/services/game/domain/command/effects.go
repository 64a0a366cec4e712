package command

import (
	"github.com/louisbranch/knightfall/internal/services/game/domain/catalog"
	"github.com/louisbranch/knightfall/internal/services/game/domain/event"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
	"github.com/louisbranch/knightfall/internal/services/game/domain/modifier"
)

// resolveEffect applies eff for the player at index i of s, which the caller
// has already cloned.
func resolveEffect(s *game.State, i int, eff catalog.Effect, src modifier.Source) ([]event.Event, error) {
	p := &s.Players[i]
	points := func(typ event.Type, total *int) []event.Event {
		*total += eff.Amount
		return []event.Event{event.New(typ, p.ID, s.Round, event.PointsGainedPayload{Amount: eff.Amount, Total: *total})}
	}

	switch eff.Kind {
	case catalog.EffectGainMove:
		return points(event.TypeMovePointsGained, &p.Move), nil
	case catalog.EffectGainInfluence:
		return points(event.TypeInfluenceGained, &p.Influence), nil
	case catalog.EffectGainAttack:
		return points(event.TypeAttackGained, &p.Attack), nil
	case catalog.EffectGainBlock:
		return points(event.TypeBlockGained, &p.Block), nil
	case catalog.EffectGainMana:
		p.Mana = p.Mana.With(eff.Color, eff.Amount)
		return []event.Event{event.New(event.TypeManaGained, p.ID, s.Round, event.ManaGainedPayload{Color: eff.Color, Amount: eff.Amount})}, nil
	case catalog.EffectGainCrystal:
		p.Crystals = p.Crystals.With(eff.Color, eff.Amount)
		return []event.Event{event.New(event.TypeCrystalGained, p.ID, s.Round, event.ManaGainedPayload{Color: eff.Color, Amount: eff.Amount})}, nil
	case catalog.EffectDrawCards:
		before := len(p.Hand)
		*p = game.DrawCards(*p, eff.Amount)
		return []event.Event{event.New(event.TypeCardsDrawn, p.ID, s.Round, event.CardsDrawnPayload{Count: len(p.Hand) - before})}, nil
	case catalog.EffectApplyModifier:
		if eff.Modifier == nil {
			return nil, invariantf("apply_modifier effect from %s %s has no template", src.Kind, src.ID)
		}
		var m modifier.Modifier
		*s, m = game.AddModifier(*s, modifier.Modifier{
			Source:            src,
			Duration:          eff.Modifier.Duration,
			Scope:             eff.Modifier.Scope,
			Effect:            eff.Modifier.Effect.Clone(),
			CreatedAtRound:    s.Round,
			CreatedByPlayerID: s.Players[i].ID,
		})
		return []event.Event{modifierEvent(event.TypeModifierAdded, s.Players[i].ID, s.Round, m)}, nil
	case catalog.EffectChoice:
		if p.PendingChoice != nil {
			return nil, invariantf("player %s already has a pending choice", p.ID)
		}
		opts := make([]catalog.Effect, len(eff.Options))
		for k, opt := range eff.Options {
			opts[k] = opt.Clone()
		}
		p.PendingChoice = &game.PendingChoice{Source: src, Options: opts}
		return []event.Event{event.New(event.TypeChoicePending, p.ID, s.Round, event.ChoicePendingPayload{Source: src, Options: len(opts)})}, nil
	default:
		return nil, invariantf("effect kind %q is not supported", eff.Kind)
	}
}

func modifierEvent(typ event.Type, playerID string, round int, m modifier.Modifier) event.Event {
	return event.New(typ, playerID, round, event.ModifierPayload{
		ModifierID: m.ID,
		Source:     m.Source,
		Duration:   m.Duration,
		EffectKind: m.Effect.Kind,
	})
}

func removedEvents(playerID string, round int, removed []modifier.Modifier) []event.Event {
	var out []event.Event
	for _, m := range removed {
		out = append(out, modifierEvent(event.TypeModifierRemoved, playerID, round, m))
	}
	return out
}

// effectCheckpoint returns the reason resolving eff cuts the history.
func effectCheckpoint(eff catalog.Effect) Reason {
	if eff.DrawsCards() {
		return ReasonCardDrawn
	}
	return ""
}
