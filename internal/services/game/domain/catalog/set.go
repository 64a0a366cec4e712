package catalog

import (
	"fmt"

	"github.com/louisbranch/knightfall/internal/services/game/domain/modifier"
)

// Set is an in-memory Catalog built from definition lists.
type Set struct {
	cards   map[string]CardDef
	units   map[string]UnitDef
	skills  map[string]SkillDef
	tiles   map[string]TileDef
	enemies map[string]EnemyDef
}

// Definitions groups the inputs to NewSet.
type Definitions struct {
	Cards   []CardDef
	Units   []UnitDef
	Skills  []SkillDef
	Tiles   []TileDef
	Enemies []EnemyDef
}

// NewSet indexes defs by id and validates every effect.
func NewSet(defs Definitions) (*Set, error) {
	s := &Set{
		cards:   make(map[string]CardDef, len(defs.Cards)),
		units:   make(map[string]UnitDef, len(defs.Units)),
		skills:  make(map[string]SkillDef, len(defs.Skills)),
		tiles:   make(map[string]TileDef, len(defs.Tiles)),
		enemies: make(map[string]EnemyDef, len(defs.Enemies)),
	}
	for _, c := range defs.Cards {
		if err := index(s.cards, c.ID, c, "card"); err != nil {
			return nil, err
		}
		if c.Wound {
			continue
		}
		if err := ValidateEffect(c.Basic); err != nil {
			return nil, fmt.Errorf("card %s basic: %w", c.ID, err)
		}
		if c.Powered != nil {
			if !c.Color.Basic() {
				return nil, fmt.Errorf("card %s: powered cards need a basic color", c.ID)
			}
			if err := ValidateEffect(*c.Powered); err != nil {
				return nil, fmt.Errorf("card %s powered: %w", c.ID, err)
			}
		}
	}
	for _, u := range defs.Units {
		if err := index(s.units, u.ID, u, "unit"); err != nil {
			return nil, err
		}
		for i, a := range u.Abilities {
			if err := ValidateEffect(a.Effect); err != nil {
				return nil, fmt.Errorf("unit %s ability %d: %w", u.ID, i, err)
			}
		}
	}
	for _, sk := range defs.Skills {
		if err := index(s.skills, sk.ID, sk, "skill"); err != nil {
			return nil, err
		}
		if err := ValidateEffect(sk.Effect); err != nil {
			return nil, fmt.Errorf("skill %s: %w", sk.ID, err)
		}
	}
	for _, t := range defs.Tiles {
		if err := index(s.tiles, t.ID, t, "tile"); err != nil {
			return nil, err
		}
		for i, h := range t.Hexes {
			if h.Rule == nil {
				continue
			}
			if err := h.Rule.Validate(); err != nil {
				return nil, fmt.Errorf("tile %s hex %d rule: %w", t.ID, i, err)
			}
		}
	}
	for _, e := range defs.Enemies {
		if err := index(s.enemies, e.ID, e, "enemy"); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func index[T any](m map[string]T, id string, def T, kind string) error {
	if id == "" {
		return fmt.Errorf("%s id is required", kind)
	}
	if _, exists := m[id]; exists {
		return fmt.Errorf("duplicate %s id %q", kind, id)
	}
	m[id] = def
	return nil
}

// ValidateEffect checks an effect tree. Choice options must be resolvable
// without revealing hidden information, so they may not draw cards or nest
// further choices.
func ValidateEffect(e Effect) error {
	switch e.Kind {
	case EffectGainMove, EffectGainInfluence, EffectGainAttack, EffectGainBlock, EffectDrawCards:
		if e.Amount <= 0 {
			return fmt.Errorf("%s amount must be positive", e.Kind)
		}
	case EffectGainMana, EffectGainCrystal:
		if e.Amount <= 0 {
			return fmt.Errorf("%s amount must be positive", e.Kind)
		}
		if !e.Color.Valid() {
			return fmt.Errorf("%s color %q is invalid", e.Kind, e.Color)
		}
		if e.Kind == EffectGainCrystal && !e.Color.Basic() {
			return fmt.Errorf("crystals must be a basic color")
		}
	case EffectApplyModifier:
		if e.Modifier == nil {
			return fmt.Errorf("apply_modifier requires a template")
		}
		m := modifier.Modifier{Duration: e.Modifier.Duration, Scope: e.Modifier.Scope, Effect: e.Modifier.Effect}
		if err := m.Validate(); err != nil {
			return err
		}
	case EffectChoice:
		if len(e.Options) < 2 {
			return fmt.Errorf("choice requires at least two options")
		}
		for i, opt := range e.Options {
			if opt.Kind == EffectChoice || opt.DrawsCards() {
				return fmt.Errorf("choice option %d: %s cannot be an option", i, opt.Kind)
			}
			if err := ValidateEffect(opt); err != nil {
				return fmt.Errorf("choice option %d: %w", i, err)
			}
		}
	default:
		return fmt.Errorf("effect kind %q is not supported", e.Kind)
	}
	return nil
}

func (s *Set) Card(id string) (CardDef, bool) {
	c, ok := s.cards[id]
	return c, ok
}

func (s *Set) Unit(id string) (UnitDef, bool) {
	u, ok := s.units[id]
	return u, ok
}

func (s *Set) Skill(id string) (SkillDef, bool) {
	sk, ok := s.skills[id]
	return sk, ok
}

func (s *Set) Tile(id string) (TileDef, bool) {
	t, ok := s.tiles[id]
	return t, ok
}

func (s *Set) Enemy(id string) (EnemyDef, bool) {
	e, ok := s.enemies[id]
	return e, ok
}
