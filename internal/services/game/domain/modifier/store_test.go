package modifier

import (
	"reflect"
	"testing"

	"github.com/louisbranch/knightfall/internal/services/game/domain/board"
	"github.com/louisbranch/knightfall/internal/services/game/domain/mana"
)

func terrainCost(id string, delta int, minimum *int) Modifier {
	return Modifier{
		ID:                id,
		Source:            Source{Kind: SourceSkill, ID: "dark_paths"},
		Duration:          DurationTurn,
		Scope:             Scope{Kind: ScopeSelf},
		Effect:            Effect{Kind: EffectTerrainCost, TerrainCost: &TerrainCost{Delta: delta, Minimum: minimum}},
		CreatedAtRound:    1,
		CreatedByPlayerID: "p1",
	}
}

func TestAddDoesNotMutateReceiver(t *testing.T) {
	var s Store
	s1 := s.Add(terrainCost("m1", -1, nil))
	s2 := s1.Add(terrainCost("m2", -1, nil))

	if len(s) != 0 {
		t.Fatalf("len(s) = %d, want 0", len(s))
	}
	if len(s1) != 1 {
		t.Fatalf("len(s1) = %d, want 1", len(s1))
	}
	if len(s2) != 2 {
		t.Fatalf("len(s2) = %d, want 2", len(s2))
	}
	*s2[0].Effect.TerrainCost = TerrainCost{Delta: 9}
	if s1[0].Effect.TerrainCost.Delta != -1 {
		t.Fatalf("s1 aliased s2 effect payload")
	}
}

func TestTerrainCostStackingFloors(t *testing.T) {
	mods := []Modifier{
		terrainCost("m1", -1, Min(1)),
		terrainCost("m2", -2, Min(2)),
	}
	for _, base := range []int{2, 3, 4, 5, 6, 7} {
		got := TerrainCostFor(mods, board.TerrainHills, base)
		want := max(base-3, 2)
		if got != want {
			t.Fatalf("TerrainCostFor(base=%d) = %d, want %d", base, got, want)
		}
	}
}

func TestTerrainCostFiltersByTerrain(t *testing.T) {
	forest := terrainCost("m1", -2, nil)
	forest.Effect.TerrainCost.Terrain = board.TerrainForest

	if got := TerrainCostFor([]Modifier{forest}, board.TerrainForest, 5); got != 3 {
		t.Fatalf("forest cost = %d, want 3", got)
	}
	if got := TerrainCostFor([]Modifier{forest}, board.TerrainHills, 3); got != 3 {
		t.Fatalf("hills cost = %d, want 3", got)
	}
}

func TestTerrainCostNeverNegativeOrPassable(t *testing.T) {
	mods := []Modifier{terrainCost("m1", -10, nil)}
	if got := TerrainCostFor(mods, board.TerrainPlains, 2); got != 0 {
		t.Fatalf("cost = %d, want 0", got)
	}
	if got := TerrainCostFor(mods, board.TerrainLake, board.Impassable); got != board.Impassable {
		t.Fatalf("lake cost = %d, want impassable", got)
	}
}

func TestPruneTurnBoundary(t *testing.T) {
	own := terrainCost("m1", -1, nil)
	other := terrainCost("m2", -1, nil)
	other.CreatedByPlayerID = "p2"
	round := terrainCost("m3", -1, nil)
	round.Duration = DurationRound
	perm := terrainCost("m4", -1, nil)
	perm.Duration = DurationPermanent

	s := Store{own, other, round, perm}
	kept, removed := s.Prune(Boundary{Kind: BoundaryTurnEnd, PlayerID: "p1"})

	if len(removed) != 1 || removed[0].ID != "m1" {
		t.Fatalf("removed = %v, want [m1]", ids(removed))
	}
	if got := ids(kept); !reflect.DeepEqual(got, []string{"m2", "m3", "m4"}) {
		t.Fatalf("kept = %v, want [m2 m3 m4]", got)
	}
	if len(s) != 4 {
		t.Fatalf("receiver mutated: len = %d", len(s))
	}
	if got := len(kept.Query(WithDuration(DurationTurn), func(m Modifier) bool { return m.CreatedByPlayerID == "p1" })); got != 0 {
		t.Fatalf("turn modifiers for p1 after prune = %d, want 0", got)
	}
}

func TestPruneRoundBoundaryKeepsOnlyPermanent(t *testing.T) {
	used := terrainCost("m1", -1, nil)
	used.Duration = DurationUntilUsed
	combat := terrainCost("m2", -1, nil)
	combat.Duration = DurationCombat
	perm := terrainCost("m3", -1, nil)
	perm.Duration = DurationPermanent

	kept, removed := Store{used, combat, perm}.Prune(Boundary{Kind: BoundaryRoundEnd})
	if got := ids(kept); !reflect.DeepEqual(got, []string{"m3"}) {
		t.Fatalf("kept = %v, want [m3]", got)
	}
	if len(removed) != 2 {
		t.Fatalf("removed = %d, want 2", len(removed))
	}
}

func TestPruneCombatBoundary(t *testing.T) {
	combat := terrainCost("m1", -1, nil)
	combat.Duration = DurationCombat
	turn := terrainCost("m2", -1, nil)

	kept, removed := Store{combat, turn}.Prune(Boundary{Kind: BoundaryCombatEnd, PlayerID: "p1"})
	if got := ids(removed); !reflect.DeepEqual(got, []string{"m1"}) {
		t.Fatalf("removed = %v, want [m1]", got)
	}
	if got := ids(kept); !reflect.DeepEqual(got, []string{"m2"}) {
		t.Fatalf("kept = %v, want [m2]", got)
	}
}

func TestAppliesToScopes(t *testing.T) {
	hex := board.Coord{Q: 1, R: 0}
	tests := []struct {
		name   string
		scope  Scope
		target Target
		want   bool
	}{
		{"self owner", Scope{Kind: ScopeSelf}, Target{PlayerID: "p1"}, true},
		{"self other", Scope{Kind: ScopeSelf}, Target{PlayerID: "p2"}, false},
		{"all players", Scope{Kind: ScopeAllPlayers}, Target{PlayerID: "p2"}, true},
		{"terrain match", Scope{Kind: ScopeTerrain, Terrain: board.TerrainSwamp}, Target{PlayerID: "p2", Terrain: board.TerrainSwamp}, true},
		{"terrain miss", Scope{Kind: ScopeTerrain, Terrain: board.TerrainSwamp}, Target{PlayerID: "p1", Terrain: board.TerrainHills}, false},
		{"hex match", Scope{Kind: ScopeHex, Hex: hex}, Target{PlayerID: "p2", Hex: hex, HasHex: true}, true},
		{"hex without position", Scope{Kind: ScopeHex, Hex: hex}, Target{PlayerID: "p2"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := terrainCost("m1", -1, nil)
			m.Scope = tt.scope
			if got := AppliesTo(tt.target)(m); got != tt.want {
				t.Fatalf("AppliesTo = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueryImpossibleFilterIsEmpty(t *testing.T) {
	s := Store{terrainCost("m1", -1, nil)}
	got := s.Query(OfKind(EffectManaRule), FromSource(SourceUnit))
	if len(got) != 0 {
		t.Fatalf("Query = %v, want empty", got)
	}
}

func TestQueryFromUnitSeparatesCopies(t *testing.T) {
	first := terrainCost("m1", -1, nil)
	first.Source = Source{Kind: SourceUnit, ID: "foresters", PlayerID: "p1", UnitIndex: 0}
	second := terrainCost("m2", -1, nil)
	second.Source = Source{Kind: SourceUnit, ID: "foresters", PlayerID: "p1", UnitIndex: 1}
	other := terrainCost("m3", -1, nil)
	other.Source = Source{Kind: SourceUnit, ID: "foresters", PlayerID: "p2", UnitIndex: 1}
	s := Store{first, second, other}

	got := s.Query(FromUnit("p1", 1))
	if len(got) != 1 || got[0].ID != "m2" {
		t.Fatalf("Query(FromUnit(p1, 1)) = %v, want [m2]", got)
	}
	if got := s.Query(FromUnit("p1", 2)); len(got) != 0 {
		t.Fatalf("Query(FromUnit(p1, 2)) = %v, want empty", got)
	}
}

func TestRemoveReturnsRemoved(t *testing.T) {
	s := Store{terrainCost("m1", -1, nil), terrainCost("m2", -1, nil)}
	kept, removed := s.Remove("m2", "missing")
	if got := ids(kept); !reflect.DeepEqual(got, []string{"m1"}) {
		t.Fatalf("kept = %v, want [m1]", got)
	}
	if got := ids(removed); !reflect.DeepEqual(got, []string{"m2"}) {
		t.Fatalf("removed = %v, want [m2]", got)
	}
}

func TestCombineEffects(t *testing.T) {
	attack := Modifier{ID: "a", Effect: Effect{Kind: EffectCombatValue, CombatValue: &CombatValue{Stat: StatAttack, Amount: 2}}}
	block := Modifier{ID: "b", Effect: Effect{Kind: EffectCombatValue, CombatValue: &CombatValue{Stat: StatBlock, Amount: 3}}}
	black := Modifier{ID: "c", Effect: Effect{Kind: EffectManaRule, ManaRule: &ManaRule{Color: mana.Black}}}
	side := Modifier{ID: "d", Effect: Effect{Kind: EffectSidewaysValue, SidewaysValue: &SidewaysValue{Amount: 1}}}
	discount := Modifier{ID: "e", Duration: DurationUntilUsed, Effect: Effect{Kind: EffectRecruitDiscount, RecruitDiscount: &RecruitDiscount{Amount: 2}}}
	mods := []Modifier{attack, block, black, side, discount}

	if got := CombatBonus(mods, StatAttack); got != 2 {
		t.Fatalf("attack bonus = %d, want 2", got)
	}
	if got := CombatBonus(mods, StatBlock); got != 3 {
		t.Fatalf("block bonus = %d, want 3", got)
	}
	rules := ManaRules(mods, board.Day)
	if !rules.Usable(mana.Black) {
		t.Fatal("expected black usable by day with mana rule")
	}
	if got := SidewaysBonus(mods); got != 1 {
		t.Fatalf("sideways bonus = %d, want 1", got)
	}
	amount, consumed := DiscountFor(mods)
	if amount != 2 || !reflect.DeepEqual(consumed, []string{"e"}) {
		t.Fatalf("RecruitDiscount = %d %v, want 2 [e]", amount, consumed)
	}
}

func TestEffectValidate(t *testing.T) {
	tests := []struct {
		name    string
		effect  Effect
		wantErr bool
	}{
		{"terrain", Effect{Kind: EffectTerrainCost, TerrainCost: &TerrainCost{Delta: -1}}, false},
		{"missing payload", Effect{Kind: EffectTerrainCost}, true},
		{"wrong payload", Effect{Kind: EffectTerrainCost, SidewaysValue: &SidewaysValue{Amount: 1}}, true},
		{"two payloads", Effect{Kind: EffectSidewaysValue, SidewaysValue: &SidewaysValue{}, ManaRule: &ManaRule{Color: mana.Gold}}, true},
		{"basic mana rule", Effect{Kind: EffectManaRule, ManaRule: &ManaRule{Color: mana.Red}}, true},
		{"unknown kind", Effect{Kind: "teleport"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.effect.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func ids(mods []Modifier) []string {
	var out []string
	for _, m := range mods {
		out = append(out, m.ID)
	}
	return out
}
