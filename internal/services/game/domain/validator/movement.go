package validator

import (
	"fmt"

	"github.com/louisbranch/knightfall/internal/services/game/domain/action"
	"github.com/louisbranch/knightfall/internal/services/game/domain/board"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
)

// ExploreCost is the move points spent to reveal a tile.
const ExploreCost = 2

// PathNotEmpty rejects a move without steps.
var PathNotEmpty = typed(func(_ game.State, _ game.Player, a action.Move) Result {
	if len(a.Path) == 0 {
		return Invalid(CodePathEmpty, "path is empty")
	}
	return Valid()
})

// PathWalkable checks each step in turn: adjacent to the previous hex,
// revealed, passable, and affordable with the move points left after the
// earlier steps. Costs include the modifiers in force at each hex.
var PathWalkable = typed(func(s game.State, p game.Player, a action.Move) Result {
	from := p.Position
	spent := 0
	for _, to := range a.Path {
		if !board.Adjacent(from, to) {
			return Invalid(CodeHexNotAdjacent, fmt.Sprintf("%s is not adjacent to %s", to, from)).With("Hex", to.String())
		}
		h, ok := s.HexAt(to)
		if !ok {
			return Invalid(CodeHexNotRevealed, fmt.Sprintf("%s is not revealed", to)).With("Hex", to.String())
		}
		cost := s.MoveCost(p.ID, to)
		if cost == board.Impassable {
			return Invalid(CodeHexImpassable, fmt.Sprintf("%s (%s) cannot be entered", to, h.Terrain)).With("Hex", to.String())
		}
		spent += cost
		if spent > p.Move {
			return Invalid(CodeInsufficientMove, fmt.Sprintf("path costs %d, have %d", spent, p.Move)).
				With("Need", fmt.Sprint(spent)).
				With("Have", fmt.Sprint(p.Move))
		}
		from = to
	}
	return Valid()
})

// ExploreTarget checks that the target is an unrevealed hex next to the
// player and that a tile is left to place there.
var ExploreTarget = typed(func(s game.State, p game.Player, a action.Explore) Result {
	if !board.Adjacent(p.Position, a.Target) {
		return Invalid(CodeHexNotAdjacent, fmt.Sprintf("%s is not adjacent to %s", a.Target, p.Position)).With("Hex", a.Target.String())
	}
	if _, revealed := s.HexAt(a.Target); revealed {
		return Invalid(CodeHexAlreadyRevealed, fmt.Sprintf("%s is already revealed", a.Target)).With("Hex", a.Target.String())
	}
	if len(s.TileDeck) == 0 {
		return Invalid(CodeTileDeckEmpty, "tile deck is empty")
	}
	return Valid()
})

// ExploreAffordable checks the move points for exploring.
var ExploreAffordable = player(func(_ game.State, p game.Player) Result {
	if p.Move < ExploreCost {
		return Invalid(CodeInsufficientMove, fmt.Sprintf("exploring costs %d, have %d", ExploreCost, p.Move)).
			With("Need", fmt.Sprint(ExploreCost)).
			With("Have", fmt.Sprint(p.Move))
	}
	return Valid()
})
