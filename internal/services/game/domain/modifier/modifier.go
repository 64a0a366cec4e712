// Package modifier implements the store of active rule modifiers: temporary
// or permanent adjustments to movement costs, combat values, mana rules and
// recruitment that cards, skills, units and terrain attach to the game.
//
// A Store is a plain value. Every operation returns a new Store and leaves
// the receiver untouched, so game state snapshots stay independent.
package modifier

import (
	"fmt"

	"github.com/louisbranch/knightfall/internal/services/game/domain/board"
	"github.com/louisbranch/knightfall/internal/services/game/domain/mana"
)

// SourceKind identifies what attached a modifier.
type SourceKind string

const (
	SourceCard    SourceKind = "card"
	SourceSkill   SourceKind = "skill"
	SourceUnit    SourceKind = "unit"
	SourceTerrain SourceKind = "terrain"
)

// Source records the origin of a modifier.
type Source struct {
	Kind SourceKind `json:"kind"`
	// ID is the card, skill, unit or tile definition id.
	ID string `json:"id"`
	// PlayerID owns the card, skill or unit. Empty for terrain.
	PlayerID string `json:"player_id,omitempty"`
	// UnitIndex is the unit's position among its owner's units, so two
	// copies of one unit stay apart. Only meaningful for SourceUnit.
	UnitIndex int `json:"unit_index,omitempty"`
}

// Duration controls when a modifier expires.
type Duration string

const (
	DurationTurn      Duration = "turn"
	DurationRound     Duration = "round"
	DurationCombat    Duration = "combat"
	DurationUntilUsed Duration = "until_used"
	DurationPermanent Duration = "permanent"
)

// ScopeKind controls who a modifier applies to.
type ScopeKind string

const (
	// ScopeSelf applies only to the player who created the modifier.
	ScopeSelf ScopeKind = "self"
	// ScopeAllPlayers applies to every player.
	ScopeAllPlayers ScopeKind = "all_players"
	// ScopeTerrain applies to any player on or entering the terrain.
	ScopeTerrain ScopeKind = "terrain"
	// ScopeHex applies to any player on or entering the hex.
	ScopeHex ScopeKind = "hex"
)

// Scope narrows a modifier to a player, a terrain type, or a hex.
type Scope struct {
	Kind    ScopeKind     `json:"kind"`
	Terrain board.Terrain `json:"terrain,omitempty"`
	Hex     board.Coord   `json:"hex,omitempty"`
}

// Modifier is one active adjustment.
type Modifier struct {
	ID                string   `json:"id"`
	Source            Source   `json:"source"`
	Duration          Duration `json:"duration"`
	Scope             Scope    `json:"scope"`
	Effect            Effect   `json:"effect"`
	CreatedAtRound    int      `json:"created_at_round"`
	CreatedByPlayerID string   `json:"created_by_player_id"`
}

// Validate checks the modifier shape. The store itself never rejects a
// modifier; callers validate templates before attaching them.
func (m Modifier) Validate() error {
	switch m.Duration {
	case DurationTurn, DurationRound, DurationCombat, DurationUntilUsed, DurationPermanent:
	default:
		return fmt.Errorf("modifier duration %q is not supported", m.Duration)
	}
	switch m.Scope.Kind {
	case ScopeSelf, ScopeAllPlayers, ScopeHex:
	case ScopeTerrain:
		if m.Scope.Terrain == "" {
			return fmt.Errorf("terrain scope requires a terrain")
		}
	default:
		return fmt.Errorf("modifier scope %q is not supported", m.Scope.Kind)
	}
	return m.Effect.Validate()
}

// EffectKind identifies an effect payload.
type EffectKind string

const (
	EffectTerrainCost     EffectKind = "terrain_cost"
	EffectCombatValue     EffectKind = "combat_value"
	EffectManaRule        EffectKind = "mana_rule"
	EffectSidewaysValue   EffectKind = "sideways_value"
	EffectRecruitDiscount EffectKind = "recruit_discount"
)

// Effect is a tagged union over the closed set of effect payloads. Exactly
// the payload named by Kind is set.
type Effect struct {
	Kind            EffectKind       `json:"kind"`
	TerrainCost     *TerrainCost     `json:"terrain_cost,omitempty"`
	CombatValue     *CombatValue     `json:"combat_value,omitempty"`
	ManaRule        *ManaRule        `json:"mana_rule,omitempty"`
	SidewaysValue   *SidewaysValue   `json:"sideways_value,omitempty"`
	RecruitDiscount *RecruitDiscount `json:"recruit_discount,omitempty"`
}

// TerrainCost adjusts movement cost. An empty Terrain matches every terrain.
// Minimum, when set, is a floor on the combined cost.
type TerrainCost struct {
	Terrain board.Terrain `json:"terrain,omitempty"`
	Delta   int           `json:"delta"`
	Minimum *int          `json:"minimum,omitempty"`
}

// CombatStat names the combat value a CombatValue effect adjusts.
type CombatStat string

const (
	StatAttack CombatStat = "attack"
	StatBlock  CombatStat = "block"
)

// CombatValue adds to attack or block while the modifier is active.
type CombatValue struct {
	Stat   CombatStat `json:"stat"`
	Amount int        `json:"amount"`
}

// ManaRule lifts the time-of-day restriction on gold or black mana.
type ManaRule struct {
	Color mana.Color `json:"color"`
}

// SidewaysValue adds to the value of cards played sideways.
type SidewaysValue struct {
	Amount int `json:"amount"`
}

// RecruitDiscount lowers the influence cost of the next recruit.
type RecruitDiscount struct {
	Amount int `json:"amount"`
}

// Validate checks that exactly the payload named by Kind is present.
func (e Effect) Validate() error {
	set := 0
	for _, present := range []bool{
		e.TerrainCost != nil,
		e.CombatValue != nil,
		e.ManaRule != nil,
		e.SidewaysValue != nil,
		e.RecruitDiscount != nil,
	} {
		if present {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("effect %q must carry exactly one payload, has %d", e.Kind, set)
	}
	var ok bool
	switch e.Kind {
	case EffectTerrainCost:
		ok = e.TerrainCost != nil
	case EffectCombatValue:
		ok = e.CombatValue != nil && (e.CombatValue.Stat == StatAttack || e.CombatValue.Stat == StatBlock)
	case EffectManaRule:
		ok = e.ManaRule != nil && (e.ManaRule.Color == mana.Gold || e.ManaRule.Color == mana.Black)
	case EffectSidewaysValue:
		ok = e.SidewaysValue != nil
	case EffectRecruitDiscount:
		ok = e.RecruitDiscount != nil && e.RecruitDiscount.Amount > 0
	default:
		return fmt.Errorf("effect kind %q is not supported", e.Kind)
	}
	if !ok {
		return fmt.Errorf("effect %q payload is invalid", e.Kind)
	}
	return nil
}

// Clone returns a deep copy of the effect.
func (e Effect) Clone() Effect {
	out := Effect{Kind: e.Kind}
	if e.TerrainCost != nil {
		tc := *e.TerrainCost
		if tc.Minimum != nil {
			minimum := *tc.Minimum
			tc.Minimum = &minimum
		}
		out.TerrainCost = &tc
	}
	if e.CombatValue != nil {
		cv := *e.CombatValue
		out.CombatValue = &cv
	}
	if e.ManaRule != nil {
		mr := *e.ManaRule
		out.ManaRule = &mr
	}
	if e.SidewaysValue != nil {
		sv := *e.SidewaysValue
		out.SidewaysValue = &sv
	}
	if e.RecruitDiscount != nil {
		rd := *e.RecruitDiscount
		out.RecruitDiscount = &rd
	}
	return out
}

// Min returns a pointer to v for TerrainCost.Minimum literals.
func Min(v int) *int {
	return &v
}
