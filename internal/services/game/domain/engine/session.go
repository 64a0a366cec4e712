package engine

import (
	"fmt"

	"github.com/louisbranch/knightfall/internal/platform/config"
	"github.com/louisbranch/knightfall/internal/services/game/domain/command"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
)

// Session is a game in progress: its state plus the undo history since the
// last checkpoint.
type Session struct {
	State   game.State
	History command.Stack
}

// CanUndo reports whether the history holds anything to undo.
func (s Session) CanUndo() bool {
	return s.History.Len() > 0
}

// NewSession deals a new game and opens its history at a game_started
// checkpoint.
func (d *Dispatcher) NewSession(setup game.Setup) (Session, error) {
	if err := config.Validate(setup); err != nil {
		return Session{}, fmt.Errorf("new session: %w", err)
	}
	st, err := game.New(setup, d.Catalog)
	if err != nil {
		return Session{}, fmt.Errorf("new session: %w", err)
	}
	return Session{
		State:   st,
		History: command.NewStack(command.Checkpoint{Reason: command.ReasonGameStarted, Timestamp: d.now()}),
	}, nil
}

// Persist returns the part of s that may be saved. Undo history is never
// persisted.
func Persist(s Session) game.State {
	return s.State.Clone()
}

// Restore resumes a saved state with an empty history and a
// session_restored checkpoint.
func (d *Dispatcher) Restore(st game.State) Session {
	return Session{
		State:   st.Clone(),
		History: command.NewStack(command.Checkpoint{Reason: command.ReasonSessionRestored, Timestamp: d.now()}),
	}
}

// Cut clears the history at an externally observed point, such as another
// player reacting to what they saw.
func (d *Dispatcher) Cut(s Session, reason command.Reason) Session {
	s.History = s.History.Cut(reason, d.now())
	return s
}
