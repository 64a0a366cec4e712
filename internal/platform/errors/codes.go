// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeInvariantViolation marks state that validation should have made
	// impossible. The offending action fails; the session survives.
	CodeInvariantViolation Code = "INVARIANT_VIOLATION"

	// Lookup failures inside command execution.
	CodePlayerNotFound Code = "PLAYER_NOT_FOUND"
	CodeCardNotFound   Code = "CARD_NOT_FOUND"
	CodeUnitNotFound   Code = "UNIT_NOT_FOUND"
	CodeSkillNotFound  Code = "SKILL_NOT_FOUND"
	CodeTileNotFound   Code = "TILE_NOT_FOUND"
	CodeEnemyNotFound  Code = "ENEMY_NOT_FOUND"

	// Registry wiring errors surfaced at startup.
	CodeRegistryIncomplete Code = "REGISTRY_INCOMPLETE"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
	// CodeSaveTampered marks a saved game whose signature does not match
	// its contents.
	CodeSaveTampered Code = "SAVE_TAMPERED"
)

// Internal reports whether the code belongs to the should-never-happen class.
// Hosts present these as a generic failure.
func (c Code) Internal() bool {
	switch c {
	case CodeNotFound, CodeSaveTampered:
		return false
	default:
		return true
	}
}
