package command

import (
	"slices"

	"github.com/louisbranch/knightfall/internal/services/game/domain/action"
	"github.com/louisbranch/knightfall/internal/services/game/domain/catalog"
	"github.com/louisbranch/knightfall/internal/services/game/domain/event"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
	"github.com/louisbranch/knightfall/internal/services/game/domain/mana"
	"github.com/louisbranch/knightfall/internal/services/game/domain/modifier"
)

// playCard moves a card from hand to the play area and pays for powering.
type playCard struct {
	base
	snapshotted
	cardID  string
	powered bool
	payment *action.ManaPayment
}

func (c *playCard) Execute(s game.State) (Outcome, error) {
	i, err := acting(s, c.playerID)
	if err != nil {
		return Outcome{}, err
	}
	at := slices.Index(s.Players[i].Hand, c.cardID)
	if at < 0 {
		return Outcome{}, invariantf("card %s not in hand of %s", c.cardID, c.playerID)
	}
	c.capture(s, i, game.PartPlayer|game.PartSource)

	next := s.Clone()
	p := &next.Players[i]
	p.Hand = removeAt(p.Hand, at)
	p.PlayArea = append(p.PlayArea, c.cardID)
	p.CardsPlayed++
	events := []event.Event{event.New(event.TypeCardPlayed, c.playerID, s.Round, event.CardPlayedPayload{CardID: c.cardID, Powered: c.powered})}

	if c.powered && c.payment != nil {
		color, err := pay(&next, i, *c.payment)
		if err != nil {
			return Outcome{}, err
		}
		events = append(events, event.New(event.TypeManaSpent, c.playerID, s.Round, event.ManaSpentPayload{Color: color, Source: string(c.payment.Source)}))
	}
	return Outcome{State: next, Events: events}, nil
}

func (c *playCard) Undo(s game.State) (Outcome, error) {
	return undone(s, &c.snapshotted, event.TypeCardPlayUndone, c.base)
}

// pay spends one mana for powering.
func pay(s *game.State, i int, payment action.ManaPayment) (mana.Color, error) {
	p := &s.Players[i]
	switch payment.Source {
	case action.ManaFromToken:
		if p.Mana[payment.Color] <= 0 {
			return "", invariantf("no %s token to spend", payment.Color)
		}
		p.Mana = p.Mana.With(payment.Color, -1)
		return payment.Color, nil
	case action.ManaFromCrystal:
		if p.Crystals[payment.Color] <= 0 {
			return "", invariantf("no %s crystal to spend", payment.Color)
		}
		p.Crystals = p.Crystals.With(payment.Color, -1)
		return payment.Color, nil
	case action.ManaFromDie:
		if payment.DieIndex < 0 || payment.DieIndex >= len(s.Source) || s.Source[payment.DieIndex].TakenBy != "" {
			return "", invariantf("source die %d is not available", payment.DieIndex)
		}
		s.Source[payment.DieIndex].TakenBy = p.ID
		p.UsedSource = true
		return s.Source[payment.DieIndex].Color, nil
	default:
		return "", invariantf("mana source %q is not supported", payment.Source)
	}
}

// applyEffect resolves a card, skill or unit effect.
type applyEffect struct {
	base
	snapshotted
	effect catalog.Effect
	source modifier.Source
}

func newApplyEffect(playerID string, eff catalog.Effect, src modifier.Source) *applyEffect {
	return &applyEffect{base: base{typ: TypeResolveEffect, playerID: playerID}, effect: eff, source: src}
}

// Checkpoint reports card_drawn for effects that draw cards.
func (c *applyEffect) Checkpoint() Reason {
	return effectCheckpoint(c.effect)
}

func (c *applyEffect) Execute(s game.State) (Outcome, error) {
	i, err := acting(s, c.playerID)
	if err != nil {
		return Outcome{}, err
	}
	c.capture(s, i, game.PartPlayer|game.PartModifiers)
	next := s.Clone()
	events, err := resolveEffect(&next, i, c.effect, c.source)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{State: next, Events: events}, nil
}

func (c *applyEffect) Undo(s game.State) (Outcome, error) {
	if c.Checkpoint() != "" {
		return Outcome{}, ErrIrreversible
	}
	return undone(s, &c.snapshotted, event.TypeCardPlayUndone, c.base)
}

// playSideways plays a card for a flat value.
type playSideways struct {
	base
	snapshotted
	cardID string
	as     action.SidewaysAs
}

func (c *playSideways) Execute(s game.State) (Outcome, error) {
	i, err := acting(s, c.playerID)
	if err != nil {
		return Outcome{}, err
	}
	at := slices.Index(s.Players[i].Hand, c.cardID)
	if at < 0 {
		return Outcome{}, invariantf("card %s not in hand of %s", c.cardID, c.playerID)
	}
	value := s.SidewaysValue(c.playerID)
	c.capture(s, i, game.PartPlayer)

	next := s.Clone()
	p := &next.Players[i]
	p.Hand = removeAt(p.Hand, at)
	p.PlayArea = append(p.PlayArea, c.cardID)
	p.CardsPlayed++
	switch c.as {
	case action.SidewaysMove:
		p.Move += value
	case action.SidewaysInfluence:
		p.Influence += value
	case action.SidewaysAttack:
		p.Attack += value
	case action.SidewaysBlock:
		p.Block += value
	default:
		return Outcome{}, invariantf("sideways value %q is not supported", c.as)
	}
	return Outcome{State: next, Events: []event.Event{
		event.New(event.TypeCardPlayedSideways, c.playerID, s.Round, event.CardPlayedSidewaysPayload{CardID: c.cardID, As: string(c.as), Value: value}),
	}}, nil
}

func (c *playSideways) Undo(s game.State) (Outcome, error) {
	return undone(s, &c.snapshotted, event.TypeCardPlayUndone, c.base)
}

// resolveChoice resolves one option of the pending choice. Chosen is the
// option as seen when the command was built; an option that draws cards
// makes the command irreversible.
type resolveChoice struct {
	base
	snapshotted
	option int
	chosen catalog.Effect
}

func (c *resolveChoice) Checkpoint() Reason {
	return effectCheckpoint(c.chosen)
}

func (c *resolveChoice) Execute(s game.State) (Outcome, error) {
	i, err := acting(s, c.playerID)
	if err != nil {
		return Outcome{}, err
	}
	pending := s.Players[i].PendingChoice
	if pending == nil || c.option < 0 || c.option >= len(pending.Options) {
		return Outcome{}, invariantf("player %s has no option %d to resolve", c.playerID, c.option)
	}
	c.capture(s, i, game.PartPlayer|game.PartModifiers)

	next := s.Clone()
	chosen := next.Players[i].PendingChoice.Options[c.option]
	source := next.Players[i].PendingChoice.Source
	next.Players[i].PendingChoice = nil
	events := []event.Event{event.New(event.TypeChoiceResolved, c.playerID, s.Round, event.ChoiceResolvedPayload{OptionIndex: c.option})}
	more, err := resolveEffect(&next, i, chosen, source)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{State: next, Events: append(events, more...)}, nil
}

func (c *resolveChoice) Undo(s game.State) (Outcome, error) {
	if c.Checkpoint() != "" {
		return Outcome{}, ErrIrreversible
	}
	return undone(s, &c.snapshotted, event.TypeChoiceUndone, c.base)
}

func removeAt[T any](in []T, i int) []T {
	out := make([]T, 0, len(in)-1)
	out = append(out, in[:i]...)
	out = append(out, in[i+1:]...)
	if len(out) == 0 {
		return nil
	}
	return out
}
