package command

import (
	"fmt"
	"sort"

	apperrors "github.com/louisbranch/knightfall/internal/platform/errors"
	"github.com/louisbranch/knightfall/internal/services/game/domain/action"
	"github.com/louisbranch/knightfall/internal/services/game/domain/catalog"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
	"github.com/louisbranch/knightfall/internal/services/game/domain/modifier"
)

// Factory builds the commands for a validated action. It returns nil when
// the action is not the kind it builds or references something that does
// not exist.
type Factory func(s game.State, playerID string, a action.Action) []Command

// Factories maps action kinds to factories. It is immutable once built.
type Factories struct {
	factories map[action.Kind]Factory
}

// NewFactories copies factories into a registry.
func NewFactories(factories map[action.Kind]Factory) (*Factories, error) {
	out := make(map[action.Kind]Factory, len(factories))
	for kind, f := range factories {
		if f == nil {
			return nil, fmt.Errorf("factory for %s is nil", kind)
		}
		out[kind] = f
	}
	return &Factories{factories: out}, nil
}

// Has reports whether kind has a factory.
func (f *Factories) Has(kind action.Kind) bool {
	if f == nil {
		return false
	}
	_, ok := f.factories[kind]
	return ok
}

// Kinds returns the registered kinds, sorted.
func (f *Factories) Kinds() []action.Kind {
	if f == nil {
		return nil
	}
	out := make([]action.Kind, 0, len(f.factories))
	for kind := range f.factories {
		out = append(out, kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Build returns the commands for a. An action without a factory, or one
// its factory cannot build, is an invariant violation: validation should
// have rejected it.
func (f *Factories) Build(s game.State, playerID string, a action.Action) ([]Command, error) {
	if a == nil {
		return nil, invariantf("action is required")
	}
	if !f.Has(a.Kind()) {
		return nil, apperrors.New(apperrors.CodeRegistryIncomplete, fmt.Sprintf("no factory for %s", a.Kind()))
	}
	cmds := f.factories[a.Kind()](s, playerID, a)
	if len(cmds) == 0 {
		return nil, invariantf("factory for %s built no commands", a.Kind())
	}
	return cmds, nil
}

// build adapts a factory over a concrete action type.
func build[A action.Action](fn func(s game.State, playerID string, a A) []Command) Factory {
	return func(s game.State, playerID string, act action.Action) []Command {
		a, ok := act.(A)
		if !ok {
			return nil
		}
		return fn(s, playerID, a)
	}
}

func one(c Command) []Command { return []Command{c} }

// Default returns factories for every action kind except UNDO, which the
// dispatcher handles against the history.
func Default(cat catalog.Catalog) (*Factories, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	return NewFactories(map[action.Kind]Factory{
		action.KindPlayCard: build(func(_ game.State, playerID string, a action.PlayCard) []Command {
			card, ok := cat.Card(a.CardID)
			if !ok {
				return nil
			}
			eff := card.Basic
			if a.Powered {
				if card.Powered == nil {
					return nil
				}
				eff = *card.Powered
			}
			var payment *action.ManaPayment
			if a.Mana != nil {
				cp := *a.Mana
				payment = &cp
			}
			return one(NewGroup(TypePlayCard, playerID,
				&playCard{base: base{typ: TypePlayCard, playerID: playerID}, cardID: a.CardID, powered: a.Powered, payment: payment},
				newApplyEffect(playerID, eff.Clone(), modifier.Source{Kind: modifier.SourceCard, ID: a.CardID, PlayerID: playerID}),
			))
		}),
		action.KindPlayCardSideways: build(func(_ game.State, playerID string, a action.PlayCardSideways) []Command {
			return one(&playSideways{base: base{typ: TypePlaySideways, playerID: playerID}, cardID: a.CardID, as: a.As})
		}),
		action.KindResolveChoice: build(func(s game.State, playerID string, a action.ResolveChoice) []Command {
			p, ok := s.Player(playerID)
			if !ok || p.PendingChoice == nil || a.OptionIndex < 0 || a.OptionIndex >= len(p.PendingChoice.Options) {
				return nil
			}
			return one(&resolveChoice{
				base:   base{typ: TypeResolveChoice, playerID: playerID},
				option: a.OptionIndex,
				chosen: p.PendingChoice.Options[a.OptionIndex].Clone(),
			})
		}),
		action.KindMove: build(func(_ game.State, playerID string, a action.Move) []Command {
			cmds := make([]Command, 0, len(a.Path))
			for _, to := range a.Path {
				cmds = append(cmds, &moveStep{base: base{typ: TypeMoveStep, playerID: playerID}, to: to})
			}
			return cmds
		}),
		action.KindExplore: build(func(_ game.State, playerID string, a action.Explore) []Command {
			return one(&revealTile{
				base:         base{typ: TypeRevealTile, playerID: playerID},
				irreversible: irreversible{reason: ReasonTileRevealed},
				cat:          cat,
				target:       a.Target,
			})
		}),
		action.KindRecruitUnit: build(func(_ game.State, playerID string, a action.RecruitUnit) []Command {
			unit, ok := cat.Unit(a.UnitID)
			if !ok {
				return nil
			}
			return one(&recruitUnit{base: base{typ: TypeRecruitUnit, playerID: playerID}, unit: unit})
		}),
		action.KindActivateUnit: build(func(s game.State, playerID string, a action.ActivateUnit) []Command {
			p, ok := s.Player(playerID)
			if !ok || a.UnitIndex < 0 || a.UnitIndex >= len(p.Units) {
				return nil
			}
			unit, ok := cat.Unit(p.Units[a.UnitIndex].DefID)
			if !ok || a.AbilityIndex < 0 || a.AbilityIndex >= len(unit.Abilities) {
				return nil
			}
			ability := unit.Abilities[a.AbilityIndex]
			ability.Effect = ability.Effect.Clone()
			return one(&activateUnit{base: base{typ: TypeActivateUnit, playerID: playerID}, unitIndex: a.UnitIndex, unit: unit, ability: ability})
		}),
		action.KindUseSkill: build(func(_ game.State, playerID string, a action.UseSkill) []Command {
			skill, ok := cat.Skill(a.SkillID)
			if !ok {
				return nil
			}
			return one(&useSkill{base: base{typ: TypeUseSkill, playerID: playerID}, skill: skill})
		}),
		action.KindTakeMana: build(func(_ game.State, playerID string, a action.TakeMana) []Command {
			return one(&takeMana{base: base{typ: TypeTakeMana, playerID: playerID}, die: a.DieIndex})
		}),
		action.KindRerollDie: build(func(_ game.State, playerID string, a action.RerollDie) []Command {
			return one(&rerollDie{base: base{typ: TypeRerollDie, playerID: playerID}, irreversible: irreversible{reason: ReasonDieRolled}, die: a.DieIndex})
		}),
		action.KindEnterCombat: build(func(_ game.State, playerID string, _ action.EnterCombat) []Command {
			return one(&enterCombat{base: base{typ: TypeEnterCombat, playerID: playerID}, irreversible: irreversible{reason: ReasonEnemyDrawn}})
		}),
		action.KindAttackEnemy: build(func(s game.State, playerID string, a action.AttackEnemy) []Command {
			if !s.InCombat(playerID) || a.EnemyIndex < 0 || a.EnemyIndex >= len(s.Combat.Enemies) {
				return nil
			}
			enemy, ok := cat.Enemy(s.Combat.Enemies[a.EnemyIndex].EnemyID)
			if !ok {
				return nil
			}
			return one(&attackEnemy{base: base{typ: TypeAttackEnemy, playerID: playerID}, index: a.EnemyIndex, enemy: enemy})
		}),
		action.KindEndCombat: build(func(_ game.State, playerID string, _ action.EndCombat) []Command {
			return one(NewGroup(TypeEndCombat, playerID,
				&takeWounds{base: base{typ: TypeTakeWounds, playerID: playerID}, cat: cat},
				&expireModifiers{base: base{typ: TypeExpireModifiers, playerID: playerID}, boundary: modifier.BoundaryCombatEnd},
				&leaveCombat{base: base{typ: TypeLeaveCombat, playerID: playerID}},
			))
		}),
		action.KindEndTurn: build(func(_ game.State, playerID string, _ action.EndTurn) []Command {
			return one(newEndTurn(playerID))
		}),
	})
}
