package command

import (
	"github.com/louisbranch/knightfall/internal/services/game/domain/board"
	"github.com/louisbranch/knightfall/internal/services/game/domain/catalog"
	"github.com/louisbranch/knightfall/internal/services/game/domain/event"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
	"github.com/louisbranch/knightfall/internal/services/game/domain/modifier"
)

// ExploreCost is the move points spent to reveal a tile.
const ExploreCost = 2

// moveStep moves one hex.
type moveStep struct {
	base
	snapshotted
	to board.Coord
}

func (c *moveStep) Execute(s game.State) (Outcome, error) {
	i, err := acting(s, c.playerID)
	if err != nil {
		return Outcome{}, err
	}
	from := s.Players[i].Position
	if !board.Adjacent(from, c.to) {
		return Outcome{}, invariantf("%s is not adjacent to %s", c.to, from)
	}
	cost := s.MoveCost(c.playerID, c.to)
	if cost == board.Impassable || cost > s.Players[i].Move {
		return Outcome{}, invariantf("cannot pay %d to enter %s with %d move", cost, c.to, s.Players[i].Move)
	}
	c.capture(s, i, game.PartPlayer)

	next := s.Clone()
	next.Players[i].Position = c.to
	next.Players[i].Move -= cost
	return Outcome{State: next, Events: []event.Event{
		event.New(event.TypePlayerMoved, c.playerID, s.Round, event.PlayerMovedPayload{From: from, To: c.to, Cost: cost}),
	}}, nil
}

func (c *moveStep) Undo(s game.State) (Outcome, error) {
	return undone(s, &c.snapshotted, event.TypeMoveUndone, c.base)
}

// revealTile places the top tile of the deck centered on a hex.
type revealTile struct {
	base
	irreversible
	cat    catalog.Catalog
	target board.Coord
}

func (c *revealTile) Execute(s game.State) (Outcome, error) {
	i, err := acting(s, c.playerID)
	if err != nil {
		return Outcome{}, err
	}
	if len(s.TileDeck) == 0 {
		return Outcome{}, invariantf("tile deck is empty")
	}
	if s.Players[i].Move < ExploreCost {
		return Outcome{}, invariantf("exploring needs %d move, have %d", ExploreCost, s.Players[i].Move)
	}
	tileID := s.TileDeck[0]
	tile, ok := c.cat.Tile(tileID)
	if !ok {
		return Outcome{}, invariantf("tile %s not in catalog", tileID)
	}

	next := s.Clone()
	next.TileDeck = removeAt(next.TileDeck, 0)
	next.Players[i].Move -= ExploreCost
	events := []event.Event{event.New(event.TypeTileRevealed, c.playerID, s.Round, event.TileRevealedPayload{TileID: tileID, Center: c.target})}
	for k, h := range tile.Place(c.target) {
		if _, revealed := next.HexAt(h.Coord); revealed {
			continue
		}
		next.SetHex(h)
		rule := tile.Hexes[k].Rule
		if rule == nil {
			continue
		}
		var m modifier.Modifier
		next, m = game.AddModifier(next, modifier.Modifier{
			Source:            modifier.Source{Kind: modifier.SourceTerrain, ID: tileID},
			Duration:          modifier.DurationPermanent,
			Scope:             modifier.Scope{Kind: modifier.ScopeHex, Hex: h.Coord},
			Effect:            rule.Clone(),
			CreatedAtRound:    s.Round,
			CreatedByPlayerID: c.playerID,
		})
		events = append(events, modifierEvent(event.TypeModifierAdded, c.playerID, s.Round, m))
	}
	return Outcome{State: next, Events: events}, nil
}
