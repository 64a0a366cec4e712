package catalog

import (
	"testing"

	"github.com/louisbranch/knightfall/internal/services/game/domain/board"
)

func TestStaticResolvesStarterData(t *testing.T) {
	cat := Static()
	for _, id := range StarterDeck() {
		if _, ok := cat.Card(id); !ok {
			t.Fatalf("starter card %q missing", id)
		}
	}
	for _, id := range StarterSkills() {
		if _, ok := cat.Skill(id); !ok {
			t.Fatalf("starter skill %q missing", id)
		}
	}
	for _, id := range StarterUnitOffer() {
		if _, ok := cat.Unit(id); !ok {
			t.Fatalf("starter unit %q missing", id)
		}
	}
	for _, id := range append(StarterTileDeck(), StartTileID) {
		if _, ok := cat.Tile(id); !ok {
			t.Fatalf("tile %q missing", id)
		}
	}
	for pile, ids := range StarterEnemyPiles() {
		for _, id := range ids {
			if _, ok := cat.Enemy(id); !ok {
				t.Fatalf("enemy %q in pile %s missing", id, pile)
			}
		}
	}
}

func TestLookupMissingReportsNotFound(t *testing.T) {
	cat := Static()
	if _, ok := cat.Card("nope"); ok {
		t.Fatal("expected missing card")
	}
	if _, ok := cat.Enemy("nope"); ok {
		t.Fatal("expected missing enemy")
	}
}

func TestNewSetRejectsDuplicateIDs(t *testing.T) {
	_, err := NewSet(Definitions{Enemies: []EnemyDef{{ID: "a"}, {ID: "a"}}})
	if err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestValidateEffect(t *testing.T) {
	tests := []struct {
		name    string
		effect  Effect
		wantErr bool
	}{
		{"move", gain(EffectGainMove, 2), false},
		{"zero amount", gain(EffectGainMove, 0), true},
		{"gold crystal", Effect{Kind: EffectGainCrystal, Color: "gold", Amount: 1}, true},
		{"modifier without template", Effect{Kind: EffectApplyModifier}, true},
		{"choice with one option", choice(gain(EffectGainMove, 1)), true},
		{"choice with draw", choice(gain(EffectGainMove, 1), gain(EffectDrawCards, 1)), true},
		{"nested choice", choice(gain(EffectGainMove, 1), choice(gain(EffectGainMove, 1), gain(EffectGainBlock, 1))), true},
		{"unknown", Effect{Kind: "summon"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEffect(tt.effect)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateEffect() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTilePlaceUsesNeighborOrder(t *testing.T) {
	tile, _ := Static().Tile(StartTileID)
	center := board.Coord{Q: 2, R: -1}
	hexes := tile.Place(center)
	if len(hexes) != 7 {
		t.Fatalf("len(hexes) = %d, want 7", len(hexes))
	}
	if hexes[0].Coord != center {
		t.Fatalf("center = %v, want %v", hexes[0].Coord, center)
	}
	for i, n := range center.Neighbors() {
		if hexes[i+1].Coord != n {
			t.Fatalf("hex %d = %v, want %v", i+1, hexes[i+1].Coord, n)
		}
	}
	if hexes[1].Site != board.SiteVillage {
		t.Fatalf("east site = %q, want village", hexes[1].Site)
	}
}

func TestEffectCloneIsDeep(t *testing.T) {
	card, _ := Static().Card("path_finding")
	c := card.Basic.Clone()
	c.Modifier.Effect.TerrainCost.Delta = 10
	if card.Basic.Modifier.Effect.TerrainCost.Delta != -1 {
		t.Fatal("clone aliased the catalog definition")
	}
}
