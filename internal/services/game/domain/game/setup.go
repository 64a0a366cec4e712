package game

import (
	"fmt"

	apperrors "github.com/louisbranch/knightfall/internal/platform/errors"
	"github.com/louisbranch/knightfall/internal/services/game/domain/board"
	"github.com/louisbranch/knightfall/internal/services/game/domain/catalog"
	"github.com/louisbranch/knightfall/internal/services/game/domain/mana"
)

// Setup describes a new game.
type Setup struct {
	ID        string   `validate:"required"`
	PlayerIDs []string `validate:"min=1,max=4,unique,dive,required"`
	Seed      uint64
	Rules     Rules
}

// New deals a new game from the catalog's starter data.
func New(setup Setup, cat catalog.Catalog) (State, error) {
	if setup.ID == "" {
		return State{}, fmt.Errorf("game id is required")
	}
	if len(setup.PlayerIDs) == 0 {
		return State{}, fmt.Errorf("at least one player is required")
	}
	rules := setup.Rules
	if rules == (Rules{}) {
		rules = DefaultRules()
	}
	start, ok := cat.Tile(catalog.StartTileID)
	if !ok {
		return State{}, apperrors.New(apperrors.CodeTileNotFound, "start tile not in catalog")
	}

	s := State{
		ID:        setup.ID,
		Round:     1,
		TimeOfDay: board.Day,
		Phase:     PhaseTurns,
		Map:       start.Place(board.Coord{}),
		UnitOffer: catalog.StarterUnitOffer(),
		Rules:     rules,
		RNG:       RNG{Seed: setup.Seed},
	}
	s.TileDeck, s.RNG = s.RNG.Shuffle(catalog.StarterTileDeck())
	piles := catalog.StarterEnemyPiles()
	s.EnemyPiles = make(map[string][]string, len(piles))
	for _, name := range []string{catalog.GreenPile} {
		s.EnemyPiles[name], s.RNG = s.RNG.Shuffle(piles[name])
	}

	seen := make(map[string]struct{}, len(setup.PlayerIDs))
	for _, id := range setup.PlayerIDs {
		if id == "" {
			return State{}, fmt.Errorf("player id is required")
		}
		if _, dup := seen[id]; dup {
			return State{}, fmt.Errorf("duplicate player id %q", id)
		}
		seen[id] = struct{}{}

		p := Player{
			ID:            id,
			Skills:        catalog.StarterSkills(),
			CommandTokens: rules.CommandTokens,
		}
		p.Deck, s.RNG = s.RNG.Shuffle(catalog.StarterDeck())
		p = DrawCards(p, rules.HandSize)
		s.Players = append(s.Players, p)
	}

	s.Source = make([]SourceDie, rules.SourceDice)
	for i := range s.Source {
		s.Source[i].Color, s.RNG = RollDie(s.RNG)
	}
	return s, nil
}

// RollDie rolls one mana die.
func RollDie(r RNG) (mana.Color, RNG) {
	face, next := r.IntN(len(mana.Colors))
	return mana.Colors[face], next
}

// DrawCards moves up to n cards from the top of the deck to the hand.
func DrawCards(p Player, n int) Player {
	n = min(n, len(p.Deck))
	if n <= 0 {
		return p
	}
	p.Hand = append(cloneSlice(p.Hand), p.Deck[:n]...)
	p.Deck = cloneSlice(p.Deck[n:])
	if len(p.Deck) == 0 {
		p.Deck = nil
	}
	return p
}
