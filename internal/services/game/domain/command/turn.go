package command

import (
	"slices"

	"github.com/louisbranch/knightfall/internal/services/game/domain/event"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
	"github.com/louisbranch/knightfall/internal/services/game/domain/modifier"
)

// endTurn cleans up the active player and passes the turn. When the last
// player ends their turn the round ends too.
type endTurn struct {
	base
	irreversible
}

func newEndTurn(playerID string) *endTurn {
	return &endTurn{base: base{typ: TypeEndTurn, playerID: playerID}, irreversible: irreversible{reason: ReasonTurnEnded}}
}

func (c *endTurn) Execute(s game.State) (Outcome, error) {
	i, err := acting(s, c.playerID)
	if err != nil {
		return Outcome{}, err
	}
	if s.Turn != i {
		return Outcome{}, invariantf("it is not the turn of %s", c.playerID)
	}
	if s.Combat != nil {
		return Outcome{}, invariantf("turn cannot end during combat")
	}

	next := s.Clone()
	p := &next.Players[i]
	p.Discard = append(p.Discard, p.PlayArea...)
	p.PlayArea = nil
	p.Move, p.Influence, p.Attack, p.Block = 0, 0, 0, 0
	p.CardsPlayed = 0
	p.SkillsUsed = nil
	p.Mana = nil
	p.UsedSource = false
	for k := range next.Source {
		if next.Source[k].TakenBy != c.playerID {
			continue
		}
		next.Source[k].TakenBy = ""
		next.Source[k].Color, next.RNG = game.RollDie(next.RNG)
	}
	if missing := next.Rules.HandSize - len(p.Hand); missing > 0 {
		*p = game.DrawCards(*p, missing)
	}

	var removed []modifier.Modifier
	next, removed = game.PruneModifiers(next, modifier.Boundary{Kind: modifier.BoundaryTurnEnd, PlayerID: c.playerID})
	events := removedEvents(c.playerID, s.Round, removed)

	next.Turn = (i + 1) % len(next.Players)
	events = append(events, event.New(event.TypeTurnEnded, c.playerID, s.Round, event.TurnEndedPayload{NextPlayerID: next.ActivePlayerID()}))
	if next.Turn == 0 {
		var more []event.Event
		next, more = endRound(next, c.playerID)
		events = append(events, more...)
	}
	return Outcome{State: next, Events: events}, nil
}

// endRound finishes the game after the last round, otherwise starts the
// next round: time of day flips, units ready, every deck is reshuffled and
// the source is rerolled.
func endRound(s game.State, playerID string) (game.State, []event.Event) {
	if s.Round >= s.Rules.Rounds {
		s.Phase = game.PhaseFinished
		return s, []event.Event{event.New(event.TypeGameFinished, playerID, s.Round, nil)}
	}

	var removed []modifier.Modifier
	s, removed = game.PruneModifiers(s, modifier.Boundary{Kind: modifier.BoundaryRoundEnd, PlayerID: playerID})
	events := removedEvents(playerID, s.Round, removed)

	s.Round++
	s.TimeOfDay = s.TimeOfDay.Other()
	for k := range s.Players {
		p := &s.Players[k]
		for u := range p.Units {
			p.Units[u].Ready = true
		}
		cards := slices.Concat(p.Hand, p.Deck, p.Discard, p.PlayArea)
		p.Hand, p.Discard, p.PlayArea = nil, nil, nil
		p.Deck, s.RNG = s.RNG.Shuffle(cards)
		*p = game.DrawCards(*p, s.Rules.HandSize)
	}
	for k := range s.Source {
		s.Source[k].TakenBy = ""
		s.Source[k].Color, s.RNG = game.RollDie(s.RNG)
	}
	return s, append(events, event.New(event.TypeRoundEnded, playerID, s.Round, event.RoundEndedPayload{Round: s.Round, TimeOfDay: s.TimeOfDay}))
}
