package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrTypeRequired indicates a missing event type.
	ErrTypeRequired = errors.New("event type is required")
	// ErrTypeUnknown indicates an unregistered event type.
	ErrTypeUnknown = errors.New("event type is not registered")
	// ErrPayloadInvalid indicates malformed payload JSON.
	ErrPayloadInvalid = errors.New("payload json must be valid")
)

// Type identifies the event type string.
type Type string

// Event is one emitted fact.
type Event struct {
	// Seq is assigned by the dispatcher from the state's event counter.
	Seq         uint64          `json:"seq"`
	Type        Type            `json:"type"`
	PlayerID    string          `json:"player_id"`
	Round       int             `json:"round"`
	PayloadJSON json.RawMessage `json:"payload"`
}

// New builds an event with payload encoded as JSON.
func New(typ Type, playerID string, round int, payload any) Event {
	payloadJSON, _ := json.Marshal(payload)
	return Event{
		Type:        typ,
		PlayerID:    playerID,
		Round:       round,
		PayloadJSON: payloadJSON,
	}
}

// Decode unmarshals the payload into target.
func (e Event) Decode(target any) error {
	if err := json.Unmarshal(e.PayloadJSON, target); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return nil
}

// Definition registers metadata for an event type.
type Definition struct {
	Type Type
	// Reversal marks undo events.
	Reversal bool
}

// Registry stores known event types.
type Registry struct {
	definitions map[Type]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{definitions: make(map[Type]Definition)}
}

// Register adds an event type definition.
func (r *Registry) Register(def Definition) error {
	if r == nil {
		return errors.New("registry is required")
	}
	def.Type = Type(strings.TrimSpace(string(def.Type)))
	if def.Type == "" {
		return ErrTypeRequired
	}
	if _, exists := r.definitions[def.Type]; exists {
		return fmt.Errorf("event type already registered: %s", def.Type)
	}
	r.definitions[def.Type] = def
	return nil
}

// Definition returns the definition for typ.
func (r *Registry) Definition(typ Type) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	def, ok := r.definitions[typ]
	return def, ok
}

// Validate checks that evt has a registered type and a JSON payload.
func (r *Registry) Validate(evt Event) error {
	if strings.TrimSpace(string(evt.Type)) == "" {
		return ErrTypeRequired
	}
	if _, ok := r.Definition(evt.Type); !ok {
		return fmt.Errorf("%w: %s", ErrTypeUnknown, evt.Type)
	}
	if len(evt.PayloadJSON) == 0 || !json.Valid(evt.PayloadJSON) {
		return fmt.Errorf("%s: %w", evt.Type, ErrPayloadInvalid)
	}
	return nil
}

// ListDefinitions returns definitions ordered by type.
func (r *Registry) ListDefinitions() []Definition {
	if r == nil {
		return nil
	}
	out := make([]Definition, 0, len(r.definitions))
	for _, def := range r.definitions {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
