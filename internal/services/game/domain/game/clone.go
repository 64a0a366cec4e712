package game

import (
	"github.com/louisbranch/knightfall/internal/services/game/domain/board"
	"github.com/louisbranch/knightfall/internal/services/game/domain/catalog"
	"github.com/louisbranch/knightfall/internal/services/game/domain/modifier"
)

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	if s.Players != nil {
		out.Players = make([]Player, len(s.Players))
		for i, p := range s.Players {
			out.Players[i] = p.Clone()
		}
	}
	out.Map = cloneSlice(s.Map)
	out.TileDeck = cloneSlice(s.TileDeck)
	out.EnemyPiles = clonePiles(s.EnemyPiles)
	out.UnitOffer = cloneSlice(s.UnitOffer)
	out.Source = cloneSlice(s.Source)
	out.Modifiers = s.Modifiers.Clone()
	out.Combat = s.Combat.Clone()
	return out
}

// Clone returns a deep copy of the player.
func (p Player) Clone() Player {
	out := p
	out.Hand = cloneSlice(p.Hand)
	out.Deck = cloneSlice(p.Deck)
	out.Discard = cloneSlice(p.Discard)
	out.PlayArea = cloneSlice(p.PlayArea)
	out.Units = cloneSlice(p.Units)
	out.Skills = cloneSlice(p.Skills)
	out.SkillsUsed = cloneSlice(p.SkillsUsed)
	out.Mana = p.Mana.Clone()
	out.Crystals = p.Crystals.Clone()
	if p.PendingChoice != nil {
		pc := PendingChoice{Source: p.PendingChoice.Source}
		if p.PendingChoice.Options != nil {
			pc.Options = make([]catalog.Effect, len(p.PendingChoice.Options))
			for i, opt := range p.PendingChoice.Options {
				pc.Options[i] = opt.Clone()
			}
		}
		out.PendingChoice = &pc
	}
	return out
}

// Clone returns a deep copy of the combat, or nil.
func (c *Combat) Clone() *Combat {
	if c == nil {
		return nil
	}
	out := *c
	out.Enemies = cloneSlice(c.Enemies)
	return &out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func clonePiles(in map[string][]string) map[string][]string {
	if in == nil {
		return nil
	}
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = cloneSlice(v)
	}
	return out
}

// Part selects a slice of state for Capture.
type Part uint16

const (
	PartPlayer Part = 1 << iota
	PartModifiers
	PartSource
	PartCombat
	PartMap
	PartUnitOffer
	PartEnemyPiles
	PartTileDeck
)

// Snapshot holds copies of selected parts of a state, taken before a
// command changes them, so the command can restore them exactly on undo.
type Snapshot struct {
	parts       Part
	playerIndex int
	player      Player
	modifiers   modifier.Store
	modifierSeq int
	source      []SourceDie
	combat      *Combat
	hexes       []board.Hex
	unitOffer   []string
	enemyPiles  map[string][]string
	tileDeck    []string
}

// Capture copies the requested parts of s. PartPlayer copies the player at
// playerIndex.
func (s State) Capture(playerIndex int, parts Part) Snapshot {
	snap := Snapshot{parts: parts, playerIndex: playerIndex}
	if parts&PartPlayer != 0 && playerIndex >= 0 && playerIndex < len(s.Players) {
		snap.player = s.Players[playerIndex].Clone()
	}
	if parts&PartModifiers != 0 {
		snap.modifiers = s.Modifiers.Clone()
		snap.modifierSeq = s.ModifierSeq
	}
	if parts&PartSource != 0 {
		snap.source = cloneSlice(s.Source)
	}
	if parts&PartCombat != 0 {
		snap.combat = s.Combat.Clone()
	}
	if parts&PartMap != 0 {
		snap.hexes = cloneSlice(s.Map)
	}
	if parts&PartUnitOffer != 0 {
		snap.unitOffer = cloneSlice(s.UnitOffer)
	}
	if parts&PartEnemyPiles != 0 {
		snap.enemyPiles = clonePiles(s.EnemyPiles)
	}
	if parts&PartTileDeck != 0 {
		snap.tileDeck = cloneSlice(s.TileDeck)
	}
	return snap
}

// Restore returns a copy of s with the captured parts put back.
func (s State) Restore(snap Snapshot) State {
	out := s.Clone()
	if snap.parts&PartPlayer != 0 && snap.playerIndex >= 0 && snap.playerIndex < len(out.Players) {
		out.Players[snap.playerIndex] = snap.player.Clone()
	}
	if snap.parts&PartModifiers != 0 {
		out.Modifiers = snap.modifiers.Clone()
		out.ModifierSeq = snap.modifierSeq
	}
	if snap.parts&PartSource != 0 {
		out.Source = cloneSlice(snap.source)
	}
	if snap.parts&PartCombat != 0 {
		out.Combat = snap.combat.Clone()
	}
	if snap.parts&PartMap != 0 {
		out.Map = cloneSlice(snap.hexes)
	}
	if snap.parts&PartUnitOffer != 0 {
		out.UnitOffer = cloneSlice(snap.unitOffer)
	}
	if snap.parts&PartEnemyPiles != 0 {
		out.EnemyPiles = clonePiles(snap.enemyPiles)
	}
	if snap.parts&PartTileDeck != 0 {
		out.TileDeck = cloneSlice(snap.tileDeck)
	}
	return out
}
