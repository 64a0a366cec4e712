// Package catalog provides read-only lookups for static game data: cards,
// units, skills, map tiles and enemies.
package catalog

import (
	"github.com/louisbranch/knightfall/internal/services/game/domain/board"
	"github.com/louisbranch/knightfall/internal/services/game/domain/mana"
	"github.com/louisbranch/knightfall/internal/services/game/domain/modifier"
)

// Catalog resolves definitions by id. Implementations never mutate the
// returned definitions after construction.
type Catalog interface {
	Card(id string) (CardDef, bool)
	Unit(id string) (UnitDef, bool)
	Skill(id string) (SkillDef, bool)
	Tile(id string) (TileDef, bool)
	Enemy(id string) (EnemyDef, bool)
}

// EffectKind identifies a card, skill or unit ability effect.
type EffectKind string

const (
	EffectGainMove      EffectKind = "gain_move"
	EffectGainInfluence EffectKind = "gain_influence"
	EffectGainAttack    EffectKind = "gain_attack"
	EffectGainBlock     EffectKind = "gain_block"
	EffectGainMana      EffectKind = "gain_mana"
	EffectGainCrystal   EffectKind = "gain_crystal"
	EffectDrawCards     EffectKind = "draw_cards"
	EffectApplyModifier EffectKind = "apply_modifier"
	EffectChoice        EffectKind = "choice"
)

// Effect is a resolvable game effect.
type Effect struct {
	Kind   EffectKind `json:"kind"`
	Amount int        `json:"amount,omitempty"`
	Color  mana.Color `json:"color,omitempty"`
	// Modifier is set for EffectApplyModifier.
	Modifier *ModifierTemplate `json:"modifier,omitempty"`
	// Options is set for EffectChoice.
	Options []Effect `json:"options,omitempty"`
}

// ModifierTemplate is attached to the state as a modifier when an effect
// resolves. The scope is filled in relative to the resolving player.
type ModifierTemplate struct {
	Duration modifier.Duration `json:"duration"`
	Scope    modifier.Scope    `json:"scope"`
	Effect   modifier.Effect   `json:"effect"`
}

// DrawsCards reports whether resolving e reveals hidden cards.
func (e Effect) DrawsCards() bool {
	return e.Kind == EffectDrawCards
}

// Clone returns a deep copy of the effect.
func (e Effect) Clone() Effect {
	out := e
	if e.Modifier != nil {
		tmpl := *e.Modifier
		tmpl.Effect = e.Modifier.Effect.Clone()
		out.Modifier = &tmpl
	}
	if e.Options != nil {
		out.Options = make([]Effect, len(e.Options))
		for i, opt := range e.Options {
			out.Options[i] = opt.Clone()
		}
	}
	return out
}

// WoundCardID is the id of the wound card added to hands by combat damage.
const WoundCardID = "wound"

// CardDef is a deed card.
type CardDef struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Color mana.Color `json:"color,omitempty"`
	Wound bool       `json:"wound,omitempty"`
	Basic Effect     `json:"basic"`
	// Powered is nil for cards that cannot be powered.
	Powered *Effect `json:"powered,omitempty"`
}

// Ability is one activatable unit ability.
type Ability struct {
	Name       string `json:"name"`
	Effect     Effect `json:"effect"`
	CombatOnly bool   `json:"combat_only,omitempty"`
}

// UnitDef is a recruitable unit.
type UnitDef struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Level     int              `json:"level"`
	Cost      int              `json:"cost"`
	Sites     []board.SiteKind `json:"sites"`
	Abilities []Ability        `json:"abilities"`
}

// RecruitableAt reports whether the unit can be recruited at site.
func (u UnitDef) RecruitableAt(site board.SiteKind) bool {
	for _, s := range u.Sites {
		if s == site {
			return true
		}
	}
	return false
}

// SkillDef is a once-per-turn hero skill.
type SkillDef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Effect Effect `json:"effect"`
}

// HexTemplate is one hex of a map tile.
type HexTemplate struct {
	Terrain   board.Terrain  `json:"terrain"`
	Site      board.SiteKind `json:"site,omitempty"`
	EnemyPile string         `json:"enemy_pile,omitempty"`
	// Rule, when set, is attached as a permanent modifier scoped to this hex
	// when the tile is revealed.
	Rule *modifier.Effect `json:"rule,omitempty"`
}

// TileDef is a seven-hex map tile: the center followed by the six
// neighbors in board.Coord.Neighbors order.
type TileDef struct {
	ID    string         `json:"id"`
	Hexes [7]HexTemplate `json:"hexes"`
}

// Place returns the tile's hexes with center at c.
func (t TileDef) Place(c board.Coord) []board.Hex {
	coords := append([]board.Coord{c}, c.Neighbors()...)
	out := make([]board.Hex, len(coords))
	for i, at := range coords {
		h := t.Hexes[i]
		out[i] = board.Hex{Coord: at, Terrain: h.Terrain, Site: h.Site, EnemyPile: h.EnemyPile}
	}
	return out
}

// EnemyDef is an enemy token.
type EnemyDef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Armor  int    `json:"armor"`
	Attack int    `json:"attack"`
	Fame   int    `json:"fame"`
}
