package engine

import (
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/knightfall/internal/platform/errors"
	"github.com/louisbranch/knightfall/internal/platform/errors/i18n"
	"github.com/louisbranch/knightfall/internal/services/game/domain/action"
)

// invariantError wraps a failure that validation should have prevented.
// Hosts should quarantine the action rather than retry it.
type invariantError struct {
	kind     action.Kind
	playerID string
	err      error
}

func (e *invariantError) Error() string {
	return fmt.Sprintf("dispatch %s for %s: %v", e.kind, e.playerID, e.err)
}

func (e *invariantError) Unwrap() error { return e.err }

// InvariantViolation returns true from IsInvariantViolation checks.
func (e *invariantError) InvariantViolation() bool { return true }

func wrapInvariant(kind action.Kind, playerID string, err error) error {
	if err == nil {
		return nil
	}
	return &invariantError{kind: kind, playerID: playerID, err: err}
}

// IsInvariantViolation reports whether err came from a dispatch that failed
// after validation passed, or carries an internal error code.
func IsInvariantViolation(err error) bool {
	var target interface{ InvariantViolation() bool }
	if errors.As(err, &target) {
		return target.InvariantViolation()
	}
	if code, ok := apperrors.CodeOf(err); ok {
		return code.Internal()
	}
	return false
}

// PublicMessage returns the localized message hosts show for err. Internal
// failures get the generic invariant message so no detail leaks.
func PublicMessage(locale string, err error) string {
	if err == nil {
		return ""
	}
	code := apperrors.CodeInvariantViolation
	if c, ok := apperrors.CodeOf(err); ok && !c.Internal() {
		code = c
	}
	return i18n.GetCatalog(locale, i18n.NamespaceErrors).Format(string(code), nil)
}
