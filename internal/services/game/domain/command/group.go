package command

import (
	"fmt"

	"github.com/louisbranch/knightfall/internal/services/game/domain/event"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
)

// Group runs several commands as one history entry. Either every part
// executes or none does, and undo reverses the parts newest first.
type Group struct {
	base
	parts []Command
}

// NewGroup groups parts under typ.
func NewGroup(typ Type, playerID string, parts ...Command) *Group {
	return &Group{base: base{typ: typ, playerID: playerID}, parts: parts}
}

// Parts returns the grouped commands.
func (g *Group) Parts() []Command {
	return append([]Command(nil), g.parts...)
}

// Checkpoint returns the first part's checkpoint reason, so a group holding
// any irreversible part is irreversible.
func (g *Group) Checkpoint() Reason {
	for _, p := range g.parts {
		if r := p.Checkpoint(); r != "" {
			return r
		}
	}
	return ""
}

func (g *Group) Execute(s game.State) (Outcome, error) {
	if len(g.parts) == 0 {
		return Outcome{}, invariantf("group %s has no parts", g.typ)
	}
	out := Outcome{State: s}
	for _, p := range g.parts {
		res, err := p.Execute(out.State)
		if err != nil {
			return Outcome{}, fmt.Errorf("%s: %s: %w", g.typ, p.Type(), err)
		}
		out.State = res.State
		out.Events = append(out.Events, res.Events...)
	}
	return out, nil
}

func (g *Group) Undo(s game.State) (Outcome, error) {
	if g.Checkpoint() != "" {
		return Outcome{}, ErrIrreversible
	}
	out := Outcome{State: s}
	var events []event.Event
	for i := len(g.parts) - 1; i >= 0; i-- {
		res, err := g.parts[i].Undo(out.State)
		if err != nil {
			return Outcome{}, fmt.Errorf("%s: undo %s: %w", g.typ, g.parts[i].Type(), err)
		}
		out.State = res.State
		events = append(events, res.Events...)
	}
	out.Events = events
	return out, nil
}
