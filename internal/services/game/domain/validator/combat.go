package validator

import (
	"fmt"

	"github.com/louisbranch/knightfall/internal/services/game/domain/action"
	"github.com/louisbranch/knightfall/internal/services/game/domain/catalog"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
)

// TakeableDie checks the source and die for TAKE_MANA and REROLL_DIE. Taking
// also requires the die color to be usable now.
var TakeableDie Validator = func(s game.State, playerID string, a action.Action) Result {
	p, ok := s.Player(playerID)
	if !ok {
		return Invalid(CodePlayerNotFound, fmt.Sprintf("player %s not found", playerID))
	}
	var index int
	var take bool
	switch act := a.(type) {
	case action.TakeMana:
		index, take = act.DieIndex, true
	case action.RerollDie:
		index = act.DieIndex
	default:
		return Invalid(CodeActionInvalid, fmt.Sprintf("unexpected payload for %s", a.Kind()))
	}
	if r := dieAvailable(s, p, index); !r.OK() {
		return r
	}
	color := s.Source[index].Color
	if take && !s.ManaRules(p.ID).Usable(color) {
		return Invalid(CodeManaTimeOfDay, fmt.Sprintf("%s mana cannot be taken now", color)).With("Color", string(color))
	}
	return Valid()
}

// EnemiesHere checks the player stands on an unconquered site with defenders.
var EnemiesHere = player(func(s game.State, p game.Player) Result {
	h, ok := s.HexAt(p.Position)
	if !ok || h.EnemyPile == "" || h.Conquered || len(s.EnemyPiles[h.EnemyPile]) == 0 {
		return Invalid(CodeNoEnemiesHere, "no enemies to fight here")
	}
	return Valid()
})

// EnemyTarget checks the enemy index and that it is still standing.
var EnemyTarget = typed(func(s game.State, _ game.Player, a action.AttackEnemy) Result {
	if a.EnemyIndex < 0 || a.EnemyIndex >= len(s.Combat.Enemies) {
		return Invalid(CodeEnemyNotFound, fmt.Sprintf("enemy %d not found", a.EnemyIndex))
	}
	if s.Combat.Enemies[a.EnemyIndex].Defeated {
		return Invalid(CodeEnemyAlreadyDefeated, "enemy already defeated")
	}
	return Valid()
})

// AttackCovers checks that attack plus combat modifiers meets the armor.
func AttackCovers(cat catalog.Catalog) Validator {
	return typed(func(s game.State, p game.Player, a action.AttackEnemy) Result {
		id := s.Combat.Enemies[a.EnemyIndex].EnemyID
		def, ok := cat.Enemy(id)
		if !ok {
			return Invalid(CodeEnemyNotFound, fmt.Sprintf("enemy %s not found", id))
		}
		total := p.Attack + s.AttackBonus(p.ID)
		if total < def.Armor {
			return Invalid(CodeInsufficientAttack, fmt.Sprintf("attack %d is below armor %d", total, def.Armor)).
				With("Need", fmt.Sprint(def.Armor)).
				With("Have", fmt.Sprint(total))
		}
		return Valid()
	})
}
