// Package validator decides whether an action is legal in a given state.
//
// Each action kind maps to a Pipeline of small pure checks run in order. The
// first failing check wins and the rest never run, so later checks may
// assume everything earlier in the pipeline holds.
package validator

// Code is a stable machine-readable rejection reason.
type Code string

const (
	CodeActionInvalid     Code = "ACTION_INVALID"
	CodeActionUnsupported Code = "ACTION_UNSUPPORTED"

	CodePlayerNotFound        Code = "PLAYER_NOT_FOUND"
	CodeNotPlayersTurn        Code = "NOT_PLAYERS_TURN"
	CodeWrongPhase            Code = "WRONG_PHASE"
	CodeInCombat              Code = "IN_COMBAT"
	CodeNotInCombat           Code = "NOT_IN_COMBAT"
	CodePendingChoiceRequired Code = "PENDING_CHOICE_REQUIRED"
	CodeNoPendingChoice       Code = "NO_PENDING_CHOICE"
	CodeChoiceIndexOutOfRange Code = "CHOICE_INDEX_OUT_OF_RANGE"
	CodeMinimumTurnRequired   Code = "MINIMUM_TURN_REQUIREMENT"

	CodeCardNotFound      Code = "CARD_NOT_FOUND"
	CodeCardNotInHand     Code = "CARD_NOT_IN_HAND"
	CodeCardUnplayable    Code = "CARD_UNPLAYABLE"
	CodeCardNotPowerable  Code = "CARD_NOT_POWERABLE"
	CodeInsufficientMana  Code = "INSUFFICIENT_MANA"
	CodeManaColorMismatch Code = "MANA_COLOR_MISMATCH"
	CodeManaTimeOfDay     Code = "MANA_TIME_OF_DAY"
	CodeSourceAlreadyUsed Code = "SOURCE_ALREADY_USED"
	CodeSourceDieNotFound Code = "SOURCE_DIE_NOT_FOUND"
	CodeSourceDieTaken    Code = "SOURCE_DIE_TAKEN"
	CodeSidewaysInvalid   Code = "SIDEWAYS_TARGET_INVALID"

	CodePathEmpty          Code = "PATH_EMPTY"
	CodeHexNotAdjacent     Code = "HEX_NOT_ADJACENT"
	CodeHexNotRevealed     Code = "HEX_NOT_REVEALED"
	CodeHexImpassable      Code = "HEX_IMPASSABLE"
	CodeHexAlreadyRevealed Code = "HEX_ALREADY_REVEALED"
	CodeTileDeckEmpty      Code = "TILE_DECK_EMPTY"
	CodeInsufficientMove   Code = "INSUFFICIENT_MOVE_POINTS"

	CodeSiteCannotRecruit     Code = "SITE_CANNOT_RECRUIT"
	CodeUnitNotFound          Code = "UNIT_NOT_FOUND"
	CodeCommandLimitReached   Code = "COMMAND_LIMIT_REACHED"
	CodeInsufficientInfluence Code = "INSUFFICIENT_INFLUENCE"
	CodeUnitNotReady          Code = "UNIT_NOT_READY"
	CodeUnitWounded           Code = "UNIT_WOUNDED"
	CodeAbilityNotFound       Code = "ABILITY_NOT_FOUND"
	CodeAbilityCombatOnly     Code = "ABILITY_COMBAT_ONLY"
	CodeSkillNotFound         Code = "SKILL_NOT_FOUND"
	CodeSkillAlreadyUsed      Code = "SKILL_ALREADY_USED"

	CodeNoEnemiesHere        Code = "NO_ENEMIES_HERE"
	CodeEnemyNotFound        Code = "ENEMY_NOT_FOUND"
	CodeEnemyAlreadyDefeated Code = "ENEMY_ALREADY_DEFEATED"
	CodeInsufficientAttack   Code = "INSUFFICIENT_ATTACK"

	CodeNothingToUndo Code = "NOTHING_TO_UNDO"
)

// Codes lists every rejection code.
func Codes() []Code {
	return []Code{
		CodeActionInvalid, CodeActionUnsupported,
		CodePlayerNotFound, CodeNotPlayersTurn, CodeWrongPhase, CodeInCombat, CodeNotInCombat,
		CodePendingChoiceRequired, CodeNoPendingChoice, CodeChoiceIndexOutOfRange, CodeMinimumTurnRequired,
		CodeCardNotFound, CodeCardNotInHand, CodeCardUnplayable, CodeCardNotPowerable,
		CodeInsufficientMana, CodeManaColorMismatch, CodeManaTimeOfDay,
		CodeSourceAlreadyUsed, CodeSourceDieNotFound, CodeSourceDieTaken, CodeSidewaysInvalid,
		CodePathEmpty, CodeHexNotAdjacent, CodeHexNotRevealed, CodeHexImpassable,
		CodeHexAlreadyRevealed, CodeTileDeckEmpty, CodeInsufficientMove,
		CodeSiteCannotRecruit, CodeUnitNotFound, CodeCommandLimitReached, CodeInsufficientInfluence,
		CodeUnitNotReady, CodeUnitWounded, CodeAbilityNotFound, CodeAbilityCombatOnly,
		CodeSkillNotFound, CodeSkillAlreadyUsed,
		CodeNoEnemiesHere, CodeEnemyNotFound, CodeEnemyAlreadyDefeated, CodeInsufficientAttack,
		CodeNothingToUndo,
	}
}

// Result is the outcome of validation. The zero value is valid.
type Result struct {
	Code    Code   `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	// Metadata feeds localized message templates.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Valid returns a passing result.
func Valid() Result {
	return Result{}
}

// Invalid returns a failing result.
func Invalid(code Code, message string) Result {
	return Result{Code: code, Message: message}
}

// OK reports whether the result passed.
func (r Result) OK() bool {
	return r.Code == ""
}

// With returns r with a metadata entry added.
func (r Result) With(key, value string) Result {
	md := make(map[string]string, len(r.Metadata)+1)
	for k, v := range r.Metadata {
		md[k] = v
	}
	md[key] = value
	r.Metadata = md
	return r
}
