package validator

import (
	"fmt"
	"sort"

	"github.com/louisbranch/knightfall/internal/services/game/domain/action"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
)

// Validator is one pure legality check.
type Validator func(s game.State, playerID string, a action.Action) Result

// Pipeline runs validators in order and stops at the first failure.
type Pipeline []Validator

// Validate returns the first failing result, or Valid.
func (p Pipeline) Validate(s game.State, playerID string, a action.Action) Result {
	for _, v := range p {
		if r := v(s, playerID, a); !r.OK() {
			return r
		}
	}
	return Valid()
}

// Registry maps action kinds to pipelines. It is immutable once built.
type Registry struct {
	pipelines map[action.Kind]Pipeline
}

// NewRegistry copies pipelines into an immutable registry.
func NewRegistry(pipelines map[action.Kind]Pipeline) (*Registry, error) {
	r := &Registry{pipelines: make(map[action.Kind]Pipeline, len(pipelines))}
	for kind, p := range pipelines {
		if len(p) == 0 {
			return nil, fmt.Errorf("validator pipeline for %s is empty", kind)
		}
		for i, v := range p {
			if v == nil {
				return nil, fmt.Errorf("validator pipeline for %s has nil validator at %d", kind, i)
			}
		}
		r.pipelines[kind] = append(Pipeline(nil), p...)
	}
	return r, nil
}

// Has reports whether kind has a pipeline.
func (r *Registry) Has(kind action.Kind) bool {
	if r == nil {
		return false
	}
	_, ok := r.pipelines[kind]
	return ok
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []action.Kind {
	if r == nil {
		return nil
	}
	out := make([]action.Kind, 0, len(r.pipelines))
	for k := range r.pipelines {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Validate runs the pipeline registered for a's kind.
func (r *Registry) Validate(s game.State, playerID string, a action.Action) Result {
	if a == nil {
		return Invalid(CodeActionInvalid, "action is required")
	}
	if r == nil {
		return Invalid(CodeActionUnsupported, fmt.Sprintf("no validators for %s", a.Kind()))
	}
	p, ok := r.pipelines[a.Kind()]
	if !ok {
		return Invalid(CodeActionUnsupported, fmt.Sprintf("no validators for %s", a.Kind()))
	}
	return p.Validate(s, playerID, a)
}

// typed adapts a check over a concrete action and player to a Validator.
func typed[A action.Action](fn func(s game.State, p game.Player, a A) Result) Validator {
	return func(s game.State, playerID string, act action.Action) Result {
		a, ok := act.(A)
		if !ok {
			return Invalid(CodeActionInvalid, fmt.Sprintf("unexpected payload for %s", act.Kind()))
		}
		p, ok := s.Player(playerID)
		if !ok {
			return Invalid(CodePlayerNotFound, fmt.Sprintf("player %s not found", playerID))
		}
		return fn(s, p, a)
	}
}

// player adapts a check that only needs the acting player.
func player(fn func(s game.State, p game.Player) Result) Validator {
	return func(s game.State, playerID string, _ action.Action) Result {
		p, ok := s.Player(playerID)
		if !ok {
			return Invalid(CodePlayerNotFound, fmt.Sprintf("player %s not found", playerID))
		}
		return fn(s, p)
	}
}
