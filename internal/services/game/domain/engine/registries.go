package engine

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/knightfall/internal/platform/errors"
	"github.com/louisbranch/knightfall/internal/services/game/domain/action"
	"github.com/louisbranch/knightfall/internal/services/game/domain/catalog"
	"github.com/louisbranch/knightfall/internal/services/game/domain/command"
	"github.com/louisbranch/knightfall/internal/services/game/domain/event"
	"github.com/louisbranch/knightfall/internal/services/game/domain/validator"
)

// Registries holds the validator, factory and event registries a
// dispatcher runs against.
type Registries struct {
	Validators *validator.Registry
	Factories  *command.Factories
	Events     *event.Registry
}

// BuildRegistries builds the standard registries for cat and checks that
// they cover every action kind.
func BuildRegistries(cat catalog.Catalog) (Registries, error) {
	validators, err := validator.Default(cat)
	if err != nil {
		return Registries{}, fmt.Errorf("build validators: %w", err)
	}
	factories, err := command.Default(cat)
	if err != nil {
		return Registries{}, fmt.Errorf("build factories: %w", err)
	}
	regs := Registries{Validators: validators, Factories: factories, Events: event.DefaultRegistry()}
	if err := ValidateCoverage(regs); err != nil {
		return Registries{}, err
	}
	return regs, nil
}

// ValidateCoverage fails when an action kind has no validator pipeline, or
// a kind other than UNDO has no factory.
func ValidateCoverage(regs Registries) error {
	if regs.Validators == nil || regs.Factories == nil || regs.Events == nil {
		return apperrors.New(apperrors.CodeRegistryIncomplete, "validators, factories and events are required")
	}
	var missing []string
	for _, kind := range action.Kinds() {
		if !regs.Validators.Has(kind) {
			missing = append(missing, string(kind)+" (validators)")
		}
		if kind != action.KindUndo && !regs.Factories.Has(kind) {
			missing = append(missing, string(kind)+" (factory)")
		}
	}
	if len(missing) > 0 {
		return apperrors.New(apperrors.CodeRegistryIncomplete, "missing registrations: "+strings.Join(missing, ", "))
	}
	return nil
}
