package modifier

import (
	"github.com/louisbranch/knightfall/internal/services/game/domain/board"
	"github.com/louisbranch/knightfall/internal/services/game/domain/mana"
)

// Store holds active modifiers in insertion order.
type Store []Modifier

// Add appends m. Add never fails; contradictory modifiers are resolved when
// effects are combined.
func (s Store) Add(m Modifier) Store {
	out := make(Store, 0, len(s)+1)
	out = append(out, s.Clone()...)
	out = append(out, m)
	return out
}

// Clone returns a deep copy of the store.
func (s Store) Clone() Store {
	if s == nil {
		return nil
	}
	out := make(Store, len(s))
	for i, m := range s {
		m.Effect = m.Effect.Clone()
		out[i] = m
	}
	return out
}

// Predicate selects modifiers.
type Predicate func(Modifier) bool

// Query returns the modifiers matching every predicate. A filter nothing can
// satisfy yields an empty result.
func (s Store) Query(preds ...Predicate) []Modifier {
	var out []Modifier
	for _, m := range s {
		if matchAll(m, preds) {
			out = append(out, m)
		}
	}
	return out
}

func matchAll(m Modifier, preds []Predicate) bool {
	for _, p := range preds {
		if p != nil && !p(m) {
			return false
		}
	}
	return true
}

// Remove drops the modifiers with the given ids and returns them.
func (s Store) Remove(ids ...string) (Store, []Modifier) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	return s.partition(func(m Modifier) bool {
		_, ok := drop[m.ID]
		return ok
	})
}

func (s Store) partition(remove Predicate) (Store, []Modifier) {
	var kept Store
	var removed []Modifier
	for _, m := range s {
		if remove(m) {
			removed = append(removed, m)
			continue
		}
		kept = append(kept, m)
	}
	return kept.Clone(), removed
}

// BoundaryKind names a phase boundary that expires modifiers.
type BoundaryKind string

const (
	BoundaryTurnEnd   BoundaryKind = "turn_end"
	BoundaryCombatEnd BoundaryKind = "combat_end"
	BoundaryRoundEnd  BoundaryKind = "round_end"
)

// Boundary is a phase boundary crossed by a player.
type Boundary struct {
	Kind     BoundaryKind
	PlayerID string
}

// Expired reports whether m expires at boundary b.
//
// Turn and combat modifiers expire when their creator's turn or combat ends.
// Everything except permanent modifiers expires at the end of the round.
func Expired(m Modifier, b Boundary) bool {
	switch b.Kind {
	case BoundaryTurnEnd:
		return m.Duration == DurationTurn && m.CreatedByPlayerID == b.PlayerID
	case BoundaryCombatEnd:
		return m.Duration == DurationCombat && m.CreatedByPlayerID == b.PlayerID
	case BoundaryRoundEnd:
		return m.Duration != DurationPermanent
	default:
		return false
	}
}

// Prune removes every modifier that expires at b and returns the removed
// modifiers.
func (s Store) Prune(b Boundary) (Store, []Modifier) {
	return s.partition(func(m Modifier) bool { return Expired(m, b) })
}

// Target describes who and where a query is evaluated for.
type Target struct {
	PlayerID string
	Terrain  board.Terrain
	// Hex is consulted only when HasHex is set.
	Hex    board.Coord
	HasHex bool
}

// AppliesTo selects modifiers whose scope covers target.
func AppliesTo(t Target) Predicate {
	return func(m Modifier) bool {
		switch m.Scope.Kind {
		case ScopeSelf:
			return m.CreatedByPlayerID == t.PlayerID
		case ScopeAllPlayers:
			return true
		case ScopeTerrain:
			return t.Terrain != "" && m.Scope.Terrain == t.Terrain
		case ScopeHex:
			return t.HasHex && m.Scope.Hex == t.Hex
		default:
			return false
		}
	}
}

// OfKind selects modifiers carrying an effect of kind k.
func OfKind(k EffectKind) Predicate {
	return func(m Modifier) bool { return m.Effect.Kind == k }
}

// FromSource selects modifiers attached by the given source kind.
func FromSource(k SourceKind) Predicate {
	return func(m Modifier) bool { return m.Source.Kind == k }
}

// FromUnit selects modifiers attached by the unit at index among
// playerID's units.
func FromUnit(playerID string, index int) Predicate {
	return func(m Modifier) bool {
		return m.Source.Kind == SourceUnit && m.Source.PlayerID == playerID && m.Source.UnitIndex == index
	}
}

// WithDuration selects modifiers of duration d.
func WithDuration(d Duration) Predicate {
	return func(m Modifier) bool { return m.Duration == d }
}

// TerrainCostFor combines terrain cost modifiers for terrain over base.
//
// Deltas add up; floors combine by taking the largest; the result is never
// negative. Impassable terrain stays impassable.
func TerrainCostFor(mods []Modifier, terrain board.Terrain, base int) int {
	if base == board.Impassable {
		return board.Impassable
	}
	cost := base
	floor := 0
	for _, m := range mods {
		tc := m.Effect.TerrainCost
		if m.Effect.Kind != EffectTerrainCost || tc == nil {
			continue
		}
		if tc.Terrain != "" && tc.Terrain != terrain {
			continue
		}
		cost += tc.Delta
		if tc.Minimum != nil && *tc.Minimum > floor {
			floor = *tc.Minimum
		}
	}
	return max(cost, floor, 0)
}

// CombatBonus sums combat value modifiers for stat.
func CombatBonus(mods []Modifier, stat CombatStat) int {
	total := 0
	for _, m := range mods {
		if cv := m.Effect.CombatValue; m.Effect.Kind == EffectCombatValue && cv != nil && cv.Stat == stat {
			total += cv.Amount
		}
	}
	return total
}

// ManaRules folds mana rule modifiers over the time-of-day defaults.
func ManaRules(mods []Modifier, tod board.TimeOfDay) mana.Rules {
	r := mana.Rules{Night: tod == board.Night}
	for _, m := range mods {
		mr := m.Effect.ManaRule
		if m.Effect.Kind != EffectManaRule || mr == nil {
			continue
		}
		switch mr.Color {
		case mana.Gold:
			r.GoldAnytime = true
		case mana.Black:
			r.BlackAnytime = true
		}
	}
	return r
}

// SidewaysBonus sums sideways value modifiers.
func SidewaysBonus(mods []Modifier) int {
	total := 0
	for _, m := range mods {
		if sv := m.Effect.SidewaysValue; m.Effect.Kind == EffectSidewaysValue && sv != nil {
			total += sv.Amount
		}
	}
	return total
}

// DiscountFor sums recruit discounts and returns the ids of the
// modifiers a recruit would consume.
func DiscountFor(mods []Modifier) (int, []string) {
	total := 0
	var ids []string
	for _, m := range mods {
		rd := m.Effect.RecruitDiscount
		if m.Effect.Kind != EffectRecruitDiscount || rd == nil {
			continue
		}
		total += rd.Amount
		if m.Duration == DurationUntilUsed {
			ids = append(ids, m.ID)
		}
	}
	return total, ids
}
