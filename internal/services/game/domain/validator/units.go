package validator

import (
	"fmt"
	"slices"

	"github.com/louisbranch/knightfall/internal/services/game/domain/action"
	"github.com/louisbranch/knightfall/internal/services/game/domain/catalog"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
)

// RecruitSite checks that the player stands on a site that recruits.
var RecruitSite = player(func(s game.State, p game.Player) Result {
	h, ok := s.HexAt(p.Position)
	if !ok || !h.Site.Recruits() {
		return Invalid(CodeSiteCannotRecruit, "no recruiting site here")
	}
	return Valid()
})

// UnitOffered checks that the unit is in the offer and recruitable at the
// player's site.
func UnitOffered(cat catalog.Catalog) Validator {
	return typed(func(s game.State, p game.Player, a action.RecruitUnit) Result {
		def, ok := cat.Unit(a.UnitID)
		if !ok || !slices.Contains(s.UnitOffer, a.UnitID) {
			return Invalid(CodeUnitNotFound, fmt.Sprintf("unit %s is not offered", a.UnitID)).With("UnitID", a.UnitID)
		}
		h, _ := s.HexAt(p.Position)
		if !def.RecruitableAt(h.Site) {
			return Invalid(CodeSiteCannotRecruit, fmt.Sprintf("%s cannot be recruited at a %s", def.Name, h.Site))
		}
		return Valid()
	})
}

// CommandCapacity checks the player has a free command token.
var CommandCapacity = player(func(_ game.State, p game.Player) Result {
	if len(p.Units) >= p.CommandTokens {
		return Invalid(CodeCommandLimitReached, fmt.Sprintf("command limit %d reached", p.CommandTokens))
	}
	return Valid()
})

// InfluenceCovers checks influence against the unit cost after discounts.
func InfluenceCovers(cat catalog.Catalog) Validator {
	return typed(func(s game.State, p game.Player, a action.RecruitUnit) Result {
		def, _ := cat.Unit(a.UnitID)
		discount, _ := s.RecruitDiscount(p.ID)
		cost := max(def.Cost-discount, 0)
		if p.Influence < cost {
			return Invalid(CodeInsufficientInfluence, fmt.Sprintf("%s costs %d influence, have %d", def.Name, cost, p.Influence)).
				With("Need", fmt.Sprint(cost)).
				With("Have", fmt.Sprint(p.Influence))
		}
		return Valid()
	})
}

// UnitActivatable checks the unit index, readiness, wounds, and the ability.
func UnitActivatable(cat catalog.Catalog) Validator {
	return typed(func(s game.State, p game.Player, a action.ActivateUnit) Result {
		if a.UnitIndex < 0 || a.UnitIndex >= len(p.Units) {
			return Invalid(CodeUnitNotFound, fmt.Sprintf("unit %d not found", a.UnitIndex))
		}
		u := p.Units[a.UnitIndex]
		if !u.Ready {
			return Invalid(CodeUnitNotReady, "unit is spent")
		}
		if u.Wounded {
			return Invalid(CodeUnitWounded, "unit is wounded")
		}
		def, ok := cat.Unit(u.DefID)
		if !ok {
			return Invalid(CodeUnitNotFound, fmt.Sprintf("unit %s not found", u.DefID)).With("UnitID", u.DefID)
		}
		if a.AbilityIndex < 0 || a.AbilityIndex >= len(def.Abilities) {
			return Invalid(CodeAbilityNotFound, fmt.Sprintf("ability %d not found", a.AbilityIndex))
		}
		if def.Abilities[a.AbilityIndex].CombatOnly && !s.InCombat(p.ID) {
			return Invalid(CodeAbilityCombatOnly, fmt.Sprintf("%s is usable only in combat", def.Abilities[a.AbilityIndex].Name))
		}
		return Valid()
	})
}

// SkillUsable checks the skill is owned, known, and unused this turn.
func SkillUsable(cat catalog.Catalog) Validator {
	return typed(func(_ game.State, p game.Player, a action.UseSkill) Result {
		if _, ok := cat.Skill(a.SkillID); !ok || !slices.Contains(p.Skills, a.SkillID) {
			return Invalid(CodeSkillNotFound, fmt.Sprintf("skill %s not found", a.SkillID)).With("SkillID", a.SkillID)
		}
		if slices.Contains(p.SkillsUsed, a.SkillID) {
			return Invalid(CodeSkillAlreadyUsed, fmt.Sprintf("skill %s already used", a.SkillID))
		}
		return Valid()
	})
}
