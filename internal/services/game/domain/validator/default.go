package validator

import (
	"github.com/louisbranch/knightfall/internal/services/game/domain/action"
	"github.com/louisbranch/knightfall/internal/services/game/domain/catalog"
)

// Pipelines returns the standard pipeline for every action kind. Structural
// checks run first, then state checks, then payload checks.
func Pipelines(cat catalog.Catalog) map[action.Kind]Pipeline {
	turn := Pipeline{PlayerExists, PlayersTurn, TurnsPhase}
	open := append(turn.clone(), NoPendingChoice)
	outOfCombat := append(open.clone(), NotInCombat)
	fighting := append(open.clone(), InCombat)

	// UNDO also needs a non-empty history, which the dispatcher checks.
	return map[action.Kind]Pipeline{
		action.KindPlayCard:         join(open, cardChecks(cat, playCardID), Pipeline{Powering(cat)}),
		action.KindPlayCardSideways: join(open, cardChecks(cat, sidewaysCardID), Pipeline{SidewaysTarget}),
		action.KindMove:             join(outOfCombat, Pipeline{PathNotEmpty, PathWalkable}),
		action.KindExplore:          join(outOfCombat, Pipeline{ExploreTarget, ExploreAffordable}),
		action.KindRecruitUnit:      join(outOfCombat, Pipeline{RecruitSite, UnitOffered(cat), CommandCapacity, InfluenceCovers(cat)}),
		action.KindUseSkill:         join(open, Pipeline{SkillUsable(cat)}),
		action.KindActivateUnit:     join(open, Pipeline{UnitActivatable(cat)}),
		action.KindTakeMana:         join(open, Pipeline{TakeableDie}),
		action.KindRerollDie:        join(open, Pipeline{TakeableDie}),
		action.KindResolveChoice:    join(turn, Pipeline{HasPendingChoice, ChoiceInRange}),
		action.KindEnterCombat:      join(outOfCombat, Pipeline{EnemiesHere}),
		action.KindAttackEnemy:      join(fighting, Pipeline{EnemyTarget, AttackCovers(cat)}),
		action.KindEndCombat:        fighting.clone(),
		action.KindEndTurn:          join(outOfCombat, Pipeline{MinimumTurn(cat)}),
		action.KindUndo:             {PlayerExists, PlayersTurn},
	}
}

// Default builds the standard registry.
func Default(cat catalog.Catalog) (*Registry, error) {
	return NewRegistry(Pipelines(cat))
}

func (p Pipeline) clone() Pipeline {
	return append(Pipeline(nil), p...)
}

func join(parts ...[]Validator) Pipeline {
	var out Pipeline
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
