package event

import (
	"github.com/louisbranch/knightfall/internal/services/game/domain/board"
	"github.com/louisbranch/knightfall/internal/services/game/domain/mana"
	"github.com/louisbranch/knightfall/internal/services/game/domain/modifier"
)

const (
	TypeCardPlayed         Type = "CARD_PLAYED"
	TypeCardPlayedSideways Type = "CARD_PLAYED_SIDEWAYS"
	TypeManaSpent          Type = "MANA_SPENT"
	TypeMovePointsGained   Type = "MOVE_POINTS_GAINED"
	TypeInfluenceGained    Type = "INFLUENCE_GAINED"
	TypeAttackGained       Type = "ATTACK_GAINED"
	TypeBlockGained        Type = "BLOCK_GAINED"
	TypeManaGained         Type = "MANA_GAINED"
	TypeCrystalGained      Type = "CRYSTAL_GAINED"
	TypeCardsDrawn         Type = "CARDS_DRAWN"
	TypeModifierAdded      Type = "MODIFIER_ADDED"
	TypeModifierRemoved    Type = "MODIFIER_REMOVED"
	TypeChoicePending      Type = "CHOICE_PENDING"
	TypeChoiceResolved     Type = "CHOICE_RESOLVED"
	TypePlayerMoved        Type = "PLAYER_MOVED"
	TypeTileRevealed       Type = "TILE_REVEALED"
	TypeUnitRecruited      Type = "UNIT_RECRUITED"
	TypeUnitActivated      Type = "UNIT_ACTIVATED"
	TypeSkillUsed          Type = "SKILL_USED"
	TypeManaTaken          Type = "MANA_TAKEN"
	TypeDieRolled          Type = "DIE_ROLLED"
	TypeCombatStarted      Type = "COMBAT_STARTED"
	TypeEnemyDrawn         Type = "ENEMY_DRAWN"
	TypeEnemyDefeated      Type = "ENEMY_DEFEATED"
	TypeFameGained         Type = "FAME_GAINED"
	TypeWoundTaken         Type = "WOUND_TAKEN"
	TypeCombatEnded        Type = "COMBAT_ENDED"
	TypeTurnEnded          Type = "TURN_ENDED"
	TypeRoundEnded         Type = "ROUND_ENDED"
	TypeGameFinished       Type = "GAME_FINISHED"

	TypeCardPlayUndone       Type = "CARD_PLAY_UNDONE"
	TypeChoiceUndone         Type = "CHOICE_UNDONE"
	TypeMoveUndone           Type = "MOVE_UNDONE"
	TypeRecruitUndone        Type = "RECRUIT_UNDONE"
	TypeUnitActivationUndone Type = "UNIT_ACTIVATION_UNDONE"
	TypeSkillUseUndone       Type = "SKILL_USE_UNDONE"
	TypeManaTakeUndone       Type = "MANA_TAKE_UNDONE"
	TypeAttackUndone         Type = "ATTACK_UNDONE"
	TypeCombatEndUndone      Type = "COMBAT_END_UNDONE"
)

// CardPlayedPayload describes a card moved to the play area.
type CardPlayedPayload struct {
	CardID  string `json:"card_id"`
	Powered bool   `json:"powered,omitempty"`
}

// CardPlayedSidewaysPayload describes a card played for a flat value.
type CardPlayedSidewaysPayload struct {
	CardID string `json:"card_id"`
	As     string `json:"as"`
	Value  int    `json:"value"`
}

// ManaSpentPayload describes mana paid to power a card.
type ManaSpentPayload struct {
	Color  mana.Color `json:"color"`
	Source string     `json:"source"`
}

// PointsGainedPayload describes move, influence, attack or block gained.
type PointsGainedPayload struct {
	Amount int `json:"amount"`
	Total  int `json:"total"`
}

// ManaGainedPayload describes mana tokens or crystals gained.
type ManaGainedPayload struct {
	Color  mana.Color `json:"color"`
	Amount int        `json:"amount"`
}

// CardsDrawnPayload describes cards drawn from the deck.
type CardsDrawnPayload struct {
	Count int `json:"count"`
}

// ModifierPayload describes a modifier added or removed.
type ModifierPayload struct {
	ModifierID string              `json:"modifier_id"`
	Source     modifier.Source     `json:"source"`
	Duration   modifier.Duration   `json:"duration"`
	EffectKind modifier.EffectKind `json:"effect_kind"`
}

// ChoicePendingPayload describes a choice awaiting resolution.
type ChoicePendingPayload struct {
	Source  modifier.Source `json:"source"`
	Options int             `json:"options"`
}

// ChoiceResolvedPayload describes the option picked.
type ChoiceResolvedPayload struct {
	OptionIndex int `json:"option_index"`
}

// PlayerMovedPayload describes one movement step.
type PlayerMovedPayload struct {
	From board.Coord `json:"from"`
	To   board.Coord `json:"to"`
	Cost int         `json:"cost"`
}

// TileRevealedPayload describes a newly placed tile.
type TileRevealedPayload struct {
	TileID string      `json:"tile_id"`
	Center board.Coord `json:"center"`
}

// UnitRecruitedPayload describes a recruited unit.
type UnitRecruitedPayload struct {
	UnitID   string `json:"unit_id"`
	Cost     int    `json:"cost"`
	Discount int    `json:"discount,omitempty"`
}

// UnitActivatedPayload describes a unit ability used.
type UnitActivatedPayload struct {
	UnitID  string `json:"unit_id"`
	Ability string `json:"ability"`
}

// SkillUsedPayload describes a skill used.
type SkillUsedPayload struct {
	SkillID string `json:"skill_id"`
}

// DiePayload describes a source die taken or rolled.
type DiePayload struct {
	DieIndex int        `json:"die_index"`
	Color    mana.Color `json:"color"`
}

// CombatStartedPayload describes the combat site.
type CombatStartedPayload struct {
	Hex board.Coord `json:"hex"`
}

// EnemyPayload describes an enemy drawn or defeated.
type EnemyPayload struct {
	EnemyID string `json:"enemy_id"`
}

// FameGainedPayload describes fame gained.
type FameGainedPayload struct {
	Amount int `json:"amount"`
	Total  int `json:"total"`
}

// WoundTakenPayload describes wounds added to the hand.
type WoundTakenPayload struct {
	Count int `json:"count"`
}

// CombatEndedPayload describes the combat result.
type CombatEndedPayload struct {
	Conquered bool `json:"conquered"`
}

// TurnEndedPayload names the next player.
type TurnEndedPayload struct {
	NextPlayerID string `json:"next_player_id"`
}

// RoundEndedPayload describes the new round.
type RoundEndedPayload struct {
	Round     int             `json:"round"`
	TimeOfDay board.TimeOfDay `json:"time_of_day"`
}

// UndonePayload names the command an undo event reverses.
type UndonePayload struct {
	CommandType string `json:"command_type"`
}

// Types lists every event type the engine emits.
func Types() []Definition {
	forward := []Type{
		TypeCardPlayed, TypeCardPlayedSideways, TypeManaSpent,
		TypeMovePointsGained, TypeInfluenceGained, TypeAttackGained, TypeBlockGained,
		TypeManaGained, TypeCrystalGained, TypeCardsDrawn,
		TypeModifierAdded, TypeModifierRemoved, TypeChoicePending, TypeChoiceResolved,
		TypePlayerMoved, TypeTileRevealed, TypeUnitRecruited, TypeUnitActivated,
		TypeSkillUsed, TypeManaTaken, TypeDieRolled,
		TypeCombatStarted, TypeEnemyDrawn, TypeEnemyDefeated, TypeFameGained,
		TypeWoundTaken, TypeCombatEnded, TypeTurnEnded, TypeRoundEnded, TypeGameFinished,
	}
	reversals := []Type{
		TypeCardPlayUndone, TypeChoiceUndone, TypeMoveUndone, TypeRecruitUndone,
		TypeUnitActivationUndone, TypeSkillUseUndone, TypeManaTakeUndone,
		TypeAttackUndone, TypeCombatEndUndone,
	}
	out := make([]Definition, 0, len(forward)+len(reversals))
	for _, t := range forward {
		out = append(out, Definition{Type: t})
	}
	for _, t := range reversals {
		out = append(out, Definition{Type: t, Reversal: true})
	}
	return out
}

// DefaultRegistry returns a registry holding every engine event type.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, def := range Types() {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
	return r
}
