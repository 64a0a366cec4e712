package command

import (
	"errors"
	"time"
)

// ErrStackEmpty indicates there is nothing to undo.
var ErrStackEmpty = errors.New("command stack is empty")

// Reason explains why the undo history was cut.
type Reason string

const (
	ReasonGameStarted     Reason = "game_started"
	ReasonSessionRestored Reason = "session_restored"
	ReasonTileRevealed    Reason = "tile_revealed"
	ReasonEnemyDrawn      Reason = "enemy_drawn"
	ReasonCardDrawn       Reason = "card_drawn"
	ReasonDieRolled       Reason = "die_rolled"
	ReasonPlayerReacted   Reason = "player_reacted"
	// ReasonTurnEnded marks the turn boundary. It clears the history
	// without moving the checkpoint.
	ReasonTurnEnded Reason = "turn_ended"
)

// Checkpoint marks the point before which nothing can be undone.
type Checkpoint struct {
	Reason    Reason    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// Stack is the undo history since the last checkpoint. It is a value: every
// operation returns a new Stack and leaves the receiver unchanged.
type Stack struct {
	entries    []Command
	checkpoint Checkpoint
}

// NewStack returns an empty stack stamped with cp.
func NewStack(cp Checkpoint) Stack {
	return Stack{checkpoint: cp}
}

// Len returns the number of undoable commands.
func (s Stack) Len() int {
	return len(s.entries)
}

// Checkpoint returns the current checkpoint.
func (s Stack) Checkpoint() Checkpoint {
	return s.checkpoint
}

// Entries returns the commands from oldest to newest.
func (s Stack) Entries() []Command {
	return append([]Command(nil), s.entries...)
}

// Peek returns the newest command.
func (s Stack) Peek() (Command, bool) {
	if len(s.entries) == 0 {
		return nil, false
	}
	return s.entries[len(s.entries)-1], true
}

// Push appends a reversible command.
func (s Stack) Push(c Command) Stack {
	entries := make([]Command, len(s.entries), len(s.entries)+1)
	copy(entries, s.entries)
	s.entries = append(entries, c)
	return s
}

// Pop removes the newest command.
func (s Stack) Pop() (Command, Stack, error) {
	c, ok := s.Peek()
	if !ok {
		return nil, s, ErrStackEmpty
	}
	s.entries = s.entries[:len(s.entries)-1:len(s.entries)-1]
	return c, s, nil
}

// Clear drops the history and keeps the checkpoint.
func (s Stack) Clear() Stack {
	s.entries = nil
	return s
}

// Cut drops the history and stamps a new checkpoint.
func (s Stack) Cut(reason Reason, at time.Time) Stack {
	return Stack{checkpoint: Checkpoint{Reason: reason, Timestamp: at}}
}

// Record updates the history after c executed: reversible commands are
// pushed, the turn boundary clears, and anything else cuts.
func (s Stack) Record(c Command, at time.Time) Stack {
	switch reason := c.Checkpoint(); reason {
	case "":
		return s.Push(c)
	case ReasonTurnEnded:
		return s.Clear()
	default:
		return s.Cut(reason, at)
	}
}
