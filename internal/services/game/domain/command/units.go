package command

import (
	"slices"

	"github.com/louisbranch/knightfall/internal/services/game/domain/catalog"
	"github.com/louisbranch/knightfall/internal/services/game/domain/event"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
	"github.com/louisbranch/knightfall/internal/services/game/domain/modifier"
)

// recruitUnit takes a unit from the offer, pays influence, and consumes
// until-used recruit discounts.
type recruitUnit struct {
	base
	snapshotted
	unit catalog.UnitDef
}

func (c *recruitUnit) Execute(s game.State) (Outcome, error) {
	i, err := acting(s, c.playerID)
	if err != nil {
		return Outcome{}, err
	}
	at := slices.Index(s.UnitOffer, c.unit.ID)
	if at < 0 {
		return Outcome{}, invariantf("unit %s is not offered", c.unit.ID)
	}
	discount, consumed := s.RecruitDiscount(c.playerID)
	cost := max(c.unit.Cost-discount, 0)
	if s.Players[i].Influence < cost {
		return Outcome{}, invariantf("recruiting %s needs %d influence, have %d", c.unit.ID, cost, s.Players[i].Influence)
	}
	c.capture(s, i, game.PartPlayer|game.PartUnitOffer|game.PartModifiers)

	next := s.Clone()
	next.UnitOffer = removeAt(next.UnitOffer, at)
	p := &next.Players[i]
	p.Influence -= cost
	p.Units = append(p.Units, game.Unit{DefID: c.unit.ID, Ready: true})
	var removed []modifier.Modifier
	next.Modifiers, removed = next.Modifiers.Remove(consumed...)

	events := []event.Event{event.New(event.TypeUnitRecruited, c.playerID, s.Round, event.UnitRecruitedPayload{
		UnitID:   c.unit.ID,
		Cost:     cost,
		Discount: c.unit.Cost - cost,
	})}
	events = append(events, removedEvents(c.playerID, s.Round, removed)...)
	return Outcome{State: next, Events: events}, nil
}

func (c *recruitUnit) Undo(s game.State) (Outcome, error) {
	return undone(s, &c.snapshotted, event.TypeRecruitUndone, c.base)
}

// activateUnit spends a ready unit and resolves one of its abilities.
type activateUnit struct {
	base
	snapshotted
	unitIndex int
	unit      catalog.UnitDef
	ability   catalog.Ability
}

func (c *activateUnit) Checkpoint() Reason {
	return effectCheckpoint(c.ability.Effect)
}

func (c *activateUnit) Execute(s game.State) (Outcome, error) {
	i, err := acting(s, c.playerID)
	if err != nil {
		return Outcome{}, err
	}
	units := s.Players[i].Units
	if c.unitIndex < 0 || c.unitIndex >= len(units) || !units[c.unitIndex].Ready || units[c.unitIndex].Wounded {
		return Outcome{}, invariantf("unit %d of %s cannot be activated", c.unitIndex, c.playerID)
	}
	c.capture(s, i, game.PartPlayer|game.PartModifiers)

	next := s.Clone()
	next.Players[i].Units[c.unitIndex].Ready = false
	events := []event.Event{event.New(event.TypeUnitActivated, c.playerID, s.Round, event.UnitActivatedPayload{UnitID: c.unit.ID, Ability: c.ability.Name})}
	more, err := resolveEffect(&next, i, c.ability.Effect, modifier.Source{Kind: modifier.SourceUnit, ID: c.unit.ID, PlayerID: c.playerID, UnitIndex: c.unitIndex})
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{State: next, Events: append(events, more...)}, nil
}

func (c *activateUnit) Undo(s game.State) (Outcome, error) {
	if c.Checkpoint() != "" {
		return Outcome{}, ErrIrreversible
	}
	return undone(s, &c.snapshotted, event.TypeUnitActivationUndone, c.base)
}

// useSkill marks a skill used and resolves its effect.
type useSkill struct {
	base
	snapshotted
	skill catalog.SkillDef
}

func (c *useSkill) Checkpoint() Reason {
	return effectCheckpoint(c.skill.Effect)
}

func (c *useSkill) Execute(s game.State) (Outcome, error) {
	i, err := acting(s, c.playerID)
	if err != nil {
		return Outcome{}, err
	}
	if slices.Contains(s.Players[i].SkillsUsed, c.skill.ID) {
		return Outcome{}, invariantf("skill %s already used", c.skill.ID)
	}
	c.capture(s, i, game.PartPlayer|game.PartModifiers)

	next := s.Clone()
	next.Players[i].SkillsUsed = append(next.Players[i].SkillsUsed, c.skill.ID)
	events := []event.Event{event.New(event.TypeSkillUsed, c.playerID, s.Round, event.SkillUsedPayload{SkillID: c.skill.ID})}
	more, err := resolveEffect(&next, i, c.skill.Effect, modifier.Source{Kind: modifier.SourceSkill, ID: c.skill.ID, PlayerID: c.playerID})
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{State: next, Events: append(events, more...)}, nil
}

func (c *useSkill) Undo(s game.State) (Outcome, error) {
	if c.Checkpoint() != "" {
		return Outcome{}, ErrIrreversible
	}
	return undone(s, &c.snapshotted, event.TypeSkillUseUndone, c.base)
}
