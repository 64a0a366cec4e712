// Package action defines the closed set of player actions the engine accepts.
//
// Action is a sum type: only the types in this package implement it, and
// every Kind has exactly one payload type.
package action

import (
	"github.com/louisbranch/knightfall/internal/services/game/domain/board"
	"github.com/louisbranch/knightfall/internal/services/game/domain/mana"
)

// Kind identifies an action.
type Kind string

const (
	KindPlayCard         Kind = "PLAY_CARD"
	KindPlayCardSideways Kind = "PLAY_CARD_SIDEWAYS"
	KindMove             Kind = "MOVE"
	KindExplore          Kind = "EXPLORE"
	KindRecruitUnit      Kind = "RECRUIT_UNIT"
	KindUseSkill         Kind = "USE_SKILL"
	KindActivateUnit     Kind = "ACTIVATE_UNIT"
	KindTakeMana         Kind = "TAKE_MANA"
	KindRerollDie        Kind = "REROLL_DIE"
	KindResolveChoice    Kind = "RESOLVE_CHOICE"
	KindEnterCombat      Kind = "ENTER_COMBAT"
	KindAttackEnemy      Kind = "ATTACK_ENEMY"
	KindEndCombat        Kind = "END_COMBAT"
	KindEndTurn          Kind = "END_TURN"
	KindUndo             Kind = "UNDO"
)

// Kinds lists every action kind.
func Kinds() []Kind {
	return []Kind{
		KindPlayCard, KindPlayCardSideways, KindMove, KindExplore,
		KindRecruitUnit, KindUseSkill, KindActivateUnit, KindTakeMana,
		KindRerollDie, KindResolveChoice, KindEnterCombat, KindAttackEnemy,
		KindEndCombat, KindEndTurn, KindUndo,
	}
}

// Action is a player intent.
type Action interface {
	Kind() Kind
	isAction()
}

// ManaSourceKind names where powering mana comes from.
type ManaSourceKind string

const (
	ManaFromToken   ManaSourceKind = "token"
	ManaFromCrystal ManaSourceKind = "crystal"
	ManaFromDie     ManaSourceKind = "die"
)

// ManaPayment pays for a powered card.
type ManaPayment struct {
	Source ManaSourceKind `json:"source"`
	Color  mana.Color     `json:"color"`
	// DieIndex is read when Source is ManaFromDie; the die's color is used.
	DieIndex int `json:"die_index,omitempty"`
}

// PlayCard plays a card from hand for its basic or powered effect.
type PlayCard struct {
	CardID  string       `json:"card_id"`
	Powered bool         `json:"powered,omitempty"`
	Mana    *ManaPayment `json:"mana,omitempty"`
}

// SidewaysAs names the flat value a sideways card provides.
type SidewaysAs string

const (
	SidewaysMove      SidewaysAs = "move"
	SidewaysInfluence SidewaysAs = "influence"
	SidewaysAttack    SidewaysAs = "attack"
	SidewaysBlock     SidewaysAs = "block"
)

// PlayCardSideways plays any non-wound card for one point of a basic value.
type PlayCardSideways struct {
	CardID string     `json:"card_id"`
	As     SidewaysAs `json:"as"`
}

// Move walks a path of adjacent hexes starting next to the player.
type Move struct {
	Path []board.Coord `json:"path"`
}

// Explore reveals a tile centered on an unrevealed hex next to the player.
type Explore struct {
	Target board.Coord `json:"target"`
}

// RecruitUnit recruits a unit from the offer at the player's site.
type RecruitUnit struct {
	UnitID string `json:"unit_id"`
}

// UseSkill uses one of the player's skills.
type UseSkill struct {
	SkillID string `json:"skill_id"`
}

// ActivateUnit uses one ability of a ready unit.
type ActivateUnit struct {
	UnitIndex    int `json:"unit_index"`
	AbilityIndex int `json:"ability_index"`
}

// TakeMana takes a source die as a mana token.
type TakeMana struct {
	DieIndex int `json:"die_index"`
}

// RerollDie rerolls a source die instead of taking it.
type RerollDie struct {
	DieIndex int `json:"die_index"`
}

// ResolveChoice picks an option of the pending choice.
type ResolveChoice struct {
	OptionIndex int `json:"option_index"`
}

// EnterCombat fights the defenders of the site the player stands on.
type EnterCombat struct{}

// AttackEnemy spends attack on one enemy in the current combat.
type AttackEnemy struct {
	EnemyIndex int `json:"enemy_index"`
}

// EndCombat resolves enemy attacks and leaves combat.
type EndCombat struct{}

// EndTurn ends the player's turn.
type EndTurn struct{}

// Undo reverses the most recent reversible command.
type Undo struct{}

func (PlayCard) Kind() Kind         { return KindPlayCard }
func (PlayCardSideways) Kind() Kind { return KindPlayCardSideways }
func (Move) Kind() Kind             { return KindMove }
func (Explore) Kind() Kind          { return KindExplore }
func (RecruitUnit) Kind() Kind      { return KindRecruitUnit }
func (UseSkill) Kind() Kind         { return KindUseSkill }
func (ActivateUnit) Kind() Kind     { return KindActivateUnit }
func (TakeMana) Kind() Kind         { return KindTakeMana }
func (RerollDie) Kind() Kind        { return KindRerollDie }
func (ResolveChoice) Kind() Kind    { return KindResolveChoice }
func (EnterCombat) Kind() Kind      { return KindEnterCombat }
func (AttackEnemy) Kind() Kind      { return KindAttackEnemy }
func (EndCombat) Kind() Kind        { return KindEndCombat }
func (EndTurn) Kind() Kind          { return KindEndTurn }
func (Undo) Kind() Kind             { return KindUndo }

func (PlayCard) isAction()         {}
func (PlayCardSideways) isAction() {}
func (Move) isAction()             {}
func (Explore) isAction()          {}
func (RecruitUnit) isAction()      {}
func (UseSkill) isAction()         {}
func (ActivateUnit) isAction()     {}
func (TakeMana) isAction()         {}
func (RerollDie) isAction()        {}
func (ResolveChoice) isAction()    {}
func (EnterCombat) isAction()      {}
func (AttackEnemy) isAction()      {}
func (EndCombat) isAction()        {}
func (EndTurn) isAction()          {}
func (Undo) isAction()             {}
