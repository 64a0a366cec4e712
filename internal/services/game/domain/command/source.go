package command

import (
	"github.com/louisbranch/knightfall/internal/services/game/domain/event"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
)

// takeMana takes a source die as a mana token.
type takeMana struct {
	base
	snapshotted
	die int
}

func (c *takeMana) Execute(s game.State) (Outcome, error) {
	i, err := acting(s, c.playerID)
	if err != nil {
		return Outcome{}, err
	}
	if c.die < 0 || c.die >= len(s.Source) || s.Source[c.die].TakenBy != "" || s.Players[i].UsedSource {
		return Outcome{}, invariantf("source die %d cannot be taken by %s", c.die, c.playerID)
	}
	c.capture(s, i, game.PartPlayer|game.PartSource)

	next := s.Clone()
	color := next.Source[c.die].Color
	next.Source[c.die].TakenBy = c.playerID
	p := &next.Players[i]
	p.UsedSource = true
	p.Mana = p.Mana.With(color, 1)
	return Outcome{State: next, Events: []event.Event{
		event.New(event.TypeManaTaken, c.playerID, s.Round, event.DiePayload{DieIndex: c.die, Color: color}),
	}}, nil
}

func (c *takeMana) Undo(s game.State) (Outcome, error) {
	return undone(s, &c.snapshotted, event.TypeManaTakeUndone, c.base)
}

// rerollDie rerolls a source die. Rolling reveals a random result, so it
// cannot be undone.
type rerollDie struct {
	base
	irreversible
	die int
}

func (c *rerollDie) Execute(s game.State) (Outcome, error) {
	i, err := acting(s, c.playerID)
	if err != nil {
		return Outcome{}, err
	}
	if c.die < 0 || c.die >= len(s.Source) || s.Source[c.die].TakenBy != "" || s.Players[i].UsedSource {
		return Outcome{}, invariantf("source die %d cannot be rerolled by %s", c.die, c.playerID)
	}
	next := s.Clone()
	next.Source[c.die].Color, next.RNG = game.RollDie(next.RNG)
	next.Players[i].UsedSource = true
	return Outcome{State: next, Events: []event.Event{
		event.New(event.TypeDieRolled, c.playerID, s.Round, event.DiePayload{DieIndex: c.die, Color: next.Source[c.die].Color}),
	}}, nil
}
