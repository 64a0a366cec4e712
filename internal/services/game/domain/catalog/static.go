package catalog

import (
	"sync"

	"github.com/louisbranch/knightfall/internal/services/game/domain/board"
	"github.com/louisbranch/knightfall/internal/services/game/domain/mana"
	"github.com/louisbranch/knightfall/internal/services/game/domain/modifier"
)

// StartTileID is the tile every game opens with, centered at the origin.
const StartTileID = "start"

// GreenPile is the enemy pile drawn from at monster dens.
const GreenPile = "green"

var (
	staticOnce sync.Once
	staticSet  *Set
)

// Static returns the built-in catalog. It is built once and shared.
func Static() *Set {
	staticOnce.Do(func() {
		s, err := NewSet(staticDefinitions())
		if err != nil {
			panic("catalog: static definitions are invalid: " + err.Error())
		}
		staticSet = s
	})
	return staticSet
}

// StarterDeck returns the deed cards each player starts with.
func StarterDeck() []string {
	return []string{
		"march", "march", "stamina", "stamina", "swiftness", "swiftness",
		"rage", "rage", "determination", "promises", "threaten",
		"crystallize", "mana_draw", "tranquility", "concentration", "improvisation",
	}
}

// StarterSkills returns the skills each player starts with.
func StarterSkills() []string {
	return []string{"dark_paths", "leadership", "battle_frenzy", "dark_fire_magic"}
}

// StarterUnitOffer returns the opening unit offer.
func StarterUnitOffer() []string {
	return []string{"peasants", "foresters", "utem_guardsmen", "guardian_golems"}
}

// StarterTileDeck returns the countryside tiles in draw order.
func StarterTileDeck() []string {
	return []string{"countryside_1", "countryside_2", "countryside_3"}
}

// StarterEnemyPiles returns the enemy piles in draw order.
func StarterEnemyPiles() map[string][]string {
	return map[string][]string{
		GreenPile: {"prowlers", "diggers", "wolf_riders", "cursed_hags"},
	}
}

func gain(kind EffectKind, amount int) Effect {
	return Effect{Kind: kind, Amount: amount}
}

func manaOf(kind EffectKind, c mana.Color, amount int) Effect {
	return Effect{Kind: kind, Color: c, Amount: amount}
}

func choice(opts ...Effect) Effect {
	return Effect{Kind: EffectChoice, Options: opts}
}

func attach(d modifier.Duration, eff modifier.Effect) Effect {
	return Effect{Kind: EffectApplyModifier, Modifier: &ModifierTemplate{
		Duration: d,
		Scope:    modifier.Scope{Kind: modifier.ScopeSelf},
		Effect:   eff,
	}}
}

func terrainCost(terrain board.Terrain, delta int, minimum *int) modifier.Effect {
	return modifier.Effect{Kind: modifier.EffectTerrainCost, TerrainCost: &modifier.TerrainCost{Terrain: terrain, Delta: delta, Minimum: minimum}}
}

func combatValue(stat modifier.CombatStat, amount int) modifier.Effect {
	return modifier.Effect{Kind: modifier.EffectCombatValue, CombatValue: &modifier.CombatValue{Stat: stat, Amount: amount}}
}

func powered(e Effect) *Effect {
	return &e
}

func staticDefinitions() Definitions {
	return Definitions{
		Cards: []CardDef{
			{ID: WoundCardID, Name: "Wound", Wound: true},
			{ID: "march", Name: "March", Color: mana.Green, Basic: gain(EffectGainMove, 2), Powered: powered(gain(EffectGainMove, 4))},
			{ID: "stamina", Name: "Stamina", Color: mana.Blue, Basic: gain(EffectGainMove, 2), Powered: powered(gain(EffectGainMove, 4))},
			{ID: "swiftness", Name: "Swiftness", Color: mana.White, Basic: gain(EffectGainMove, 2), Powered: powered(gain(EffectGainAttack, 3))},
			{ID: "rage", Name: "Rage", Color: mana.Red,
				Basic:   choice(gain(EffectGainAttack, 2), gain(EffectGainBlock, 2)),
				Powered: powered(gain(EffectGainAttack, 4))},
			{ID: "determination", Name: "Determination", Color: mana.Blue,
				Basic:   choice(gain(EffectGainAttack, 2), gain(EffectGainBlock, 2)),
				Powered: powered(gain(EffectGainBlock, 5))},
			{ID: "promises", Name: "Promises", Color: mana.White, Basic: gain(EffectGainInfluence, 2), Powered: powered(gain(EffectGainInfluence, 4))},
			{ID: "threaten", Name: "Threaten", Color: mana.Red, Basic: gain(EffectGainInfluence, 2), Powered: powered(gain(EffectGainInfluence, 5))},
			{ID: "crystallize", Name: "Crystallize", Color: mana.Blue, Basic: manaOf(EffectGainCrystal, mana.Blue, 1), Powered: powered(manaOf(EffectGainCrystal, mana.Blue, 2))},
			{ID: "mana_draw", Name: "Mana Draw", Color: mana.White,
				Basic: manaOf(EffectGainMana, mana.White, 1),
				Powered: powered(attach(modifier.DurationTurn, modifier.Effect{
					Kind: modifier.EffectManaRule, ManaRule: &modifier.ManaRule{Color: mana.Gold},
				}))},
			{ID: "tranquility", Name: "Tranquility", Color: mana.Green, Basic: gain(EffectDrawCards, 1), Powered: powered(gain(EffectDrawCards, 2))},
			{ID: "concentration", Name: "Concentration", Color: mana.Green,
				Basic: choice(manaOf(EffectGainMana, mana.Blue, 1), manaOf(EffectGainMana, mana.White, 1), manaOf(EffectGainMana, mana.Red, 1)),
				Powered: powered(attach(modifier.DurationTurn, modifier.Effect{
					Kind: modifier.EffectSidewaysValue, SidewaysValue: &modifier.SidewaysValue{Amount: 1},
				}))},
			{ID: "improvisation", Name: "Improvisation", Color: mana.Red,
				Basic:   choice(gain(EffectGainMove, 3), gain(EffectGainInfluence, 3), gain(EffectGainAttack, 3), gain(EffectGainBlock, 3)),
				Powered: powered(choice(gain(EffectGainMove, 5), gain(EffectGainInfluence, 5), gain(EffectGainAttack, 5), gain(EffectGainBlock, 5)))},
			{ID: "path_finding", Name: "Path Finding", Color: mana.Green,
				Basic:   attach(modifier.DurationTurn, terrainCost("", -1, modifier.Min(2))),
				Powered: powered(attach(modifier.DurationTurn, terrainCost("", -2, modifier.Min(2))))},
		},
		Units: []UnitDef{
			{ID: "peasants", Name: "Peasants", Level: 1, Cost: 4, Sites: []board.SiteKind{board.SiteVillage},
				Abilities: []Ability{
					{Name: "attack", Effect: gain(EffectGainAttack, 2), CombatOnly: true},
					{Name: "block", Effect: gain(EffectGainBlock, 2), CombatOnly: true},
					{Name: "influence", Effect: gain(EffectGainInfluence, 2)},
					{Name: "move", Effect: gain(EffectGainMove, 2)},
				}},
			{ID: "foresters", Name: "Foresters", Level: 1, Cost: 5, Sites: []board.SiteKind{board.SiteVillage},
				Abilities: []Ability{
					{Name: "move", Effect: gain(EffectGainMove, 2)},
					{Name: "forest_path", Effect: attach(modifier.DurationTurn, terrainCost(board.TerrainForest, -1, nil))},
					{Name: "block", Effect: gain(EffectGainBlock, 3), CombatOnly: true},
				}},
			{ID: "utem_guardsmen", Name: "Utem Guardsmen", Level: 2, Cost: 5, Sites: []board.SiteKind{board.SiteVillage, board.SiteKeep},
				Abilities: []Ability{
					{Name: "attack", Effect: gain(EffectGainAttack, 2), CombatOnly: true},
					{Name: "block", Effect: gain(EffectGainBlock, 4), CombatOnly: true},
				}},
			{ID: "guardian_golems", Name: "Guardian Golems", Level: 2, Cost: 7, Sites: []board.SiteKind{board.SiteKeep},
				Abilities: []Ability{
					{Name: "attack", Effect: gain(EffectGainAttack, 2), CombatOnly: true},
					{Name: "block", Effect: gain(EffectGainBlock, 4), CombatOnly: true},
				}},
		},
		Skills: []SkillDef{
			{ID: "dark_paths", Name: "Dark Paths", Effect: attach(modifier.DurationTurn, terrainCost("", -1, modifier.Min(1)))},
			{ID: "leadership", Name: "Leadership", Effect: attach(modifier.DurationUntilUsed, modifier.Effect{
				Kind: modifier.EffectRecruitDiscount, RecruitDiscount: &modifier.RecruitDiscount{Amount: 2},
			})},
			{ID: "battle_frenzy", Name: "Battle Frenzy", Effect: attach(modifier.DurationCombat, combatValue(modifier.StatAttack, 2))},
			{ID: "dark_fire_magic", Name: "Dark Fire Magic", Effect: attach(modifier.DurationTurn, modifier.Effect{
				Kind: modifier.EffectManaRule, ManaRule: &modifier.ManaRule{Color: mana.Black},
			})},
		},
		Tiles: []TileDef{
			{ID: StartTileID, Hexes: [7]HexTemplate{
				{Terrain: board.TerrainPlains},
				{Terrain: board.TerrainPlains, Site: board.SiteVillage},
				{Terrain: board.TerrainForest},
				{Terrain: board.TerrainHills},
				{Terrain: board.TerrainLake},
				{Terrain: board.TerrainPlains},
				{Terrain: board.TerrainForest},
			}},
			{ID: "countryside_1", Hexes: [7]HexTemplate{
				{Terrain: board.TerrainForest},
				{Terrain: board.TerrainPlains},
				{Terrain: board.TerrainHills, Site: board.SiteMonsterDen, EnemyPile: GreenPile},
				{Terrain: board.TerrainSwamp},
				{Terrain: board.TerrainPlains},
				{Terrain: board.TerrainForest},
				{Terrain: board.TerrainWasteland},
			}},
			{ID: "countryside_2", Hexes: [7]HexTemplate{
				{Terrain: board.TerrainHills, Site: board.SiteKeep},
				{Terrain: board.TerrainPlains},
				{Terrain: board.TerrainMountain},
				{Terrain: board.TerrainDesert},
				{Terrain: board.TerrainPlains, Site: board.SiteVillage},
				{Terrain: board.TerrainForest},
				{Terrain: board.TerrainSwamp},
			}},
			{ID: "countryside_3", Hexes: [7]HexTemplate{
				{Terrain: board.TerrainPlains},
				{Terrain: board.TerrainHills, Rule: &modifier.Effect{
					Kind: modifier.EffectTerrainCost, TerrainCost: &modifier.TerrainCost{Delta: -1},
				}},
				{Terrain: board.TerrainForest},
				{Terrain: board.TerrainPlains, Site: board.SiteMonsterDen, EnemyPile: GreenPile},
				{Terrain: board.TerrainLake},
				{Terrain: board.TerrainPlains},
				{Terrain: board.TerrainDesert},
			}},
		},
		Enemies: []EnemyDef{
			{ID: "prowlers", Name: "Prowlers", Armor: 3, Attack: 4, Fame: 2},
			{ID: "diggers", Name: "Diggers", Armor: 3, Attack: 3, Fame: 2},
			{ID: "wolf_riders", Name: "Wolf Riders", Armor: 4, Attack: 3, Fame: 3},
			{ID: "cursed_hags", Name: "Cursed Hags", Armor: 5, Attack: 3, Fame: 3},
		},
	}
}
