package command

import (
	"github.com/louisbranch/knightfall/internal/services/game/domain/catalog"
	"github.com/louisbranch/knightfall/internal/services/game/domain/event"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
	"github.com/louisbranch/knightfall/internal/services/game/domain/modifier"
)

// enterCombat draws the site's defender from its enemy pile.
type enterCombat struct {
	base
	irreversible
}

func (c *enterCombat) Execute(s game.State) (Outcome, error) {
	i, err := acting(s, c.playerID)
	if err != nil {
		return Outcome{}, err
	}
	at := s.Players[i].Position
	h, ok := s.HexAt(at)
	if !ok || h.EnemyPile == "" || h.Conquered {
		return Outcome{}, invariantf("no enemies at %s", at)
	}
	pile := s.EnemyPiles[h.EnemyPile]
	if len(pile) == 0 {
		return Outcome{}, invariantf("enemy pile %s is empty", h.EnemyPile)
	}
	if s.Combat != nil {
		return Outcome{}, invariantf("combat already in progress for %s", s.Combat.PlayerID)
	}

	next := s.Clone()
	drawn := pile[0]
	next.EnemyPiles[h.EnemyPile] = removeAt(next.EnemyPiles[h.EnemyPile], 0)
	next.Combat = &game.Combat{PlayerID: c.playerID, Hex: at, Enemies: []game.CombatEnemy{{EnemyID: drawn}}}
	return Outcome{State: next, Events: []event.Event{
		event.New(event.TypeCombatStarted, c.playerID, s.Round, event.CombatStartedPayload{Hex: at}),
		event.New(event.TypeEnemyDrawn, c.playerID, s.Round, event.EnemyPayload{EnemyID: drawn}),
	}}, nil
}

// attackEnemy defeats an enemy whose armor the attack covers. Attack bonus
// modifiers reduce the attack points spent.
type attackEnemy struct {
	base
	snapshotted
	index int
	enemy catalog.EnemyDef
}

func (c *attackEnemy) Execute(s game.State) (Outcome, error) {
	i, err := acting(s, c.playerID)
	if err != nil {
		return Outcome{}, err
	}
	if !s.InCombat(c.playerID) || c.index < 0 || c.index >= len(s.Combat.Enemies) || s.Combat.Enemies[c.index].Defeated {
		return Outcome{}, invariantf("enemy %d cannot be attacked by %s", c.index, c.playerID)
	}
	bonus := s.AttackBonus(c.playerID)
	spent := max(c.enemy.Armor-bonus, 0)
	if s.Players[i].Attack < spent {
		return Outcome{}, invariantf("attack %d+%d below armor %d", s.Players[i].Attack, bonus, c.enemy.Armor)
	}
	c.capture(s, i, game.PartPlayer|game.PartCombat)

	next := s.Clone()
	next.Combat.Enemies[c.index].Defeated = true
	p := &next.Players[i]
	p.Attack -= spent
	p.Fame += c.enemy.Fame
	return Outcome{State: next, Events: []event.Event{
		event.New(event.TypeEnemyDefeated, c.playerID, s.Round, event.EnemyPayload{EnemyID: c.enemy.ID}),
		event.New(event.TypeFameGained, c.playerID, s.Round, event.FameGainedPayload{Amount: c.enemy.Fame, Total: p.Fame}),
	}}, nil
}

func (c *attackEnemy) Undo(s game.State) (Outcome, error) {
	return undone(s, &c.snapshotted, event.TypeAttackUndone, c.base)
}

// takeWounds resolves the attacks of surviving enemies. Block, including
// block bonus modifiers, absorbs attacks in order; each unblocked enemy
// deals one wound.
type takeWounds struct {
	base
	snapshotted
	cat catalog.Catalog
}

func (c *takeWounds) Execute(s game.State) (Outcome, error) {
	i, err := acting(s, c.playerID)
	if err != nil {
		return Outcome{}, err
	}
	if !s.InCombat(c.playerID) {
		return Outcome{}, invariantf("%s is not in combat", c.playerID)
	}
	block := s.Players[i].Block + s.BlockBonus(c.playerID)
	wounds := 0
	for _, e := range s.Combat.Enemies {
		if e.Defeated {
			continue
		}
		def, ok := c.cat.Enemy(e.EnemyID)
		if !ok {
			return Outcome{}, invariantf("enemy %s not in catalog", e.EnemyID)
		}
		if block >= def.Attack {
			block -= def.Attack
			continue
		}
		wounds++
	}
	c.capture(s, i, game.PartPlayer)

	next := s.Clone()
	p := &next.Players[i]
	for range wounds {
		p.Hand = append(p.Hand, catalog.WoundCardID)
	}
	var events []event.Event
	if wounds > 0 {
		events = append(events, event.New(event.TypeWoundTaken, c.playerID, s.Round, event.WoundTakenPayload{Count: wounds}))
	}
	return Outcome{State: next, Events: events}, nil
}

func (c *takeWounds) Undo(s game.State) (Outcome, error) {
	return undone(s, &c.snapshotted, event.TypeCombatEndUndone, c.base)
}

// expireModifiers prunes the modifiers that expire at a boundary.
type expireModifiers struct {
	base
	snapshotted
	boundary modifier.BoundaryKind
}

func (c *expireModifiers) Execute(s game.State) (Outcome, error) {
	c.capture(s, -1, game.PartModifiers)
	next, removed := game.PruneModifiers(s.Clone(), modifier.Boundary{Kind: c.boundary, PlayerID: c.playerID})
	return Outcome{State: next, Events: removedEvents(c.playerID, s.Round, removed)}, nil
}

func (c *expireModifiers) Undo(s game.State) (Outcome, error) {
	restored, err := c.restore(s)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{State: restored}, nil
}

// leaveCombat ends the combat. Undefeated enemies return to the top of
// their pile; a site with no survivors is conquered.
type leaveCombat struct {
	base
	snapshotted
}

func (c *leaveCombat) Execute(s game.State) (Outcome, error) {
	i, err := acting(s, c.playerID)
	if err != nil {
		return Outcome{}, err
	}
	if !s.InCombat(c.playerID) {
		return Outcome{}, invariantf("%s is not in combat", c.playerID)
	}
	c.capture(s, i, game.PartPlayer|game.PartCombat|game.PartMap|game.PartEnemyPiles)

	next := s.Clone()
	combat := next.Combat
	h, ok := next.HexAt(combat.Hex)
	if !ok {
		return Outcome{}, invariantf("combat hex %s is not revealed", combat.Hex)
	}
	var survivors []string
	for _, e := range combat.Enemies {
		if !e.Defeated {
			survivors = append(survivors, e.EnemyID)
		}
	}
	if len(survivors) > 0 {
		next.EnemyPiles[h.EnemyPile] = append(survivors, next.EnemyPiles[h.EnemyPile]...)
	} else {
		h.Conquered = true
		next.SetHex(h)
	}
	next.Combat = nil
	next.Players[i].Attack = 0
	next.Players[i].Block = 0
	return Outcome{State: next, Events: []event.Event{
		event.New(event.TypeCombatEnded, c.playerID, s.Round, event.CombatEndedPayload{Conquered: len(survivors) == 0}),
	}}, nil
}

func (c *leaveCombat) Undo(s game.State) (Outcome, error) {
	restored, err := c.restore(s)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{State: restored}, nil
}
