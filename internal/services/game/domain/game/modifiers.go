package game

import (
	"fmt"

	"github.com/louisbranch/knightfall/internal/services/game/domain/board"
	"github.com/louisbranch/knightfall/internal/services/game/domain/mana"
	"github.com/louisbranch/knightfall/internal/services/game/domain/modifier"
)

// AddModifier attaches m with the next deterministic modifier id.
func AddModifier(s State, m modifier.Modifier) (State, modifier.Modifier) {
	s.ModifierSeq++
	m.ID = fmt.Sprintf("mod-%d", s.ModifierSeq)
	s.Modifiers = s.Modifiers.Add(m)
	return s, m
}

// PruneModifiers removes the modifiers that expire at b.
func PruneModifiers(s State, b modifier.Boundary) (State, []modifier.Modifier) {
	var removed []modifier.Modifier
	s.Modifiers, removed = s.Modifiers.Prune(b)
	return s, removed
}

// ModifiersFor returns the modifiers that apply to playerID standing on or
// entering at.
func (s State) ModifiersFor(playerID string, at board.Coord) []modifier.Modifier {
	target := modifier.Target{PlayerID: playerID, Hex: at, HasHex: true}
	if h, ok := s.HexAt(at); ok {
		target.Terrain = h.Terrain
	}
	return s.Modifiers.Query(modifier.AppliesTo(target))
}

// PlayerModifiers returns the modifiers that apply to playerID at their
// current position.
func (s State) PlayerModifiers(playerID string) []modifier.Modifier {
	p, ok := s.Player(playerID)
	if !ok {
		return nil
	}
	return s.ModifiersFor(playerID, p.Position)
}

// MoveCost returns what it costs playerID to enter at, or board.Impassable
// when the hex is unrevealed or cannot be entered.
func (s State) MoveCost(playerID string, at board.Coord) int {
	h, ok := s.HexAt(at)
	if !ok {
		return board.Impassable
	}
	base := board.BaseCost(h.Terrain, s.TimeOfDay)
	return modifier.TerrainCostFor(s.ModifiersFor(playerID, at), h.Terrain, base)
}

// ManaRules returns the mana rules in force for playerID.
func (s State) ManaRules(playerID string) mana.Rules {
	return modifier.ManaRules(s.PlayerModifiers(playerID), s.TimeOfDay)
}

// AttackBonus returns the attack bonus from active modifiers.
func (s State) AttackBonus(playerID string) int {
	return modifier.CombatBonus(s.PlayerModifiers(playerID), modifier.StatAttack)
}

// BlockBonus returns the block bonus from active modifiers.
func (s State) BlockBonus(playerID string) int {
	return modifier.CombatBonus(s.PlayerModifiers(playerID), modifier.StatBlock)
}

// RecruitDiscount returns the recruit discount for playerID and the
// until-used modifiers a recruit consumes.
func (s State) RecruitDiscount(playerID string) (int, []string) {
	return modifier.DiscountFor(s.PlayerModifiers(playerID))
}

// SidewaysValue returns what a card played sideways is worth.
func (s State) SidewaysValue(playerID string) int {
	return 1 + modifier.SidewaysBonus(s.PlayerModifiers(playerID))
}
