// Package command turns validated actions into executable, undoable state
// transitions.
//
// Factories build commands from an action and the state it was validated
// against. Executing a command returns a new state and the events it emits;
// undoing it returns the state as it was before. Commands that reveal hidden
// information cannot be undone and cut the undo history instead.
package command

import (
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/knightfall/internal/platform/errors"
	"github.com/louisbranch/knightfall/internal/services/game/domain/event"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
)

var (
	// ErrIrreversible indicates Undo was called on a command that cannot be undone.
	ErrIrreversible = errors.New("command cannot be undone")
	// ErrNotExecuted indicates Undo was called before Execute.
	ErrNotExecuted = errors.New("command was not executed")
)

// Type identifies a command.
type Type string

const (
	TypePlayCard        Type = "play_card"
	TypeResolveEffect   Type = "resolve_effect"
	TypePlaySideways    Type = "play_sideways"
	TypeResolveChoice   Type = "resolve_choice"
	TypeMoveStep        Type = "move_step"
	TypeRevealTile      Type = "reveal_tile"
	TypeRecruitUnit     Type = "recruit_unit"
	TypeActivateUnit    Type = "activate_unit"
	TypeUseSkill        Type = "use_skill"
	TypeTakeMana        Type = "take_mana"
	TypeRerollDie       Type = "reroll_die"
	TypeEnterCombat     Type = "enter_combat"
	TypeAttackEnemy     Type = "attack_enemy"
	TypeTakeWounds      Type = "take_wounds"
	TypeExpireModifiers Type = "expire_modifiers"
	TypeLeaveCombat     Type = "leave_combat"
	TypeEndCombat       Type = "end_combat"
	TypeEndTurn         Type = "end_turn"
)

// Outcome is the result of executing or undoing a command.
type Outcome struct {
	State  game.State
	Events []event.Event
}

// Command is one executable state transition.
type Command interface {
	Type() Type
	PlayerID() string
	// Execute applies the command to s. It never mutates s.
	Execute(s game.State) (Outcome, error)
	// Undo reverses Execute given the state Execute produced.
	Undo(s game.State) (Outcome, error)
	// Checkpoint returns why executing the command cuts the undo history,
	// or "" when the command is reversible.
	Checkpoint() Reason
}

// Reversible reports whether c can be undone.
func Reversible(c Command) bool {
	return c.Checkpoint() == ""
}

type base struct {
	typ      Type
	playerID string
}

func (b base) Type() Type       { return b.typ }
func (b base) PlayerID() string { return b.playerID }

// irreversible is embedded by commands that reveal hidden information.
type irreversible struct {
	reason Reason
}

func (i irreversible) Checkpoint() Reason { return i.reason }

func (irreversible) Undo(game.State) (Outcome, error) {
	return Outcome{}, ErrIrreversible
}

// snapshotted is embedded by reversible commands that restore captured
// parts of the state on undo.
type snapshotted struct {
	snap     game.Snapshot
	executed bool
}

func (s *snapshotted) capture(st game.State, playerIndex int, parts game.Part) {
	s.snap = st.Capture(playerIndex, parts)
	s.executed = true
}

func (s *snapshotted) restore(st game.State) (game.State, error) {
	if !s.executed {
		return st, ErrNotExecuted
	}
	return st.Restore(s.snap), nil
}

func (*snapshotted) Checkpoint() Reason { return "" }

// undone builds the undo outcome shared by snapshot commands.
func undone(st game.State, snap *snapshotted, typ event.Type, b base) (Outcome, error) {
	restored, err := snap.restore(st)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		State:  restored,
		Events: []event.Event{event.New(typ, b.playerID, restored.Round, event.UndonePayload{CommandType: string(b.typ)})},
	}, nil
}

// acting returns the index and a copy of the acting player.
func acting(s game.State, playerID string) (int, error) {
	i := s.PlayerIndex(playerID)
	if i < 0 {
		return -1, apperrors.New(apperrors.CodePlayerNotFound, fmt.Sprintf("player %s not found", playerID))
	}
	return i, nil
}

func invariantf(format string, args ...any) error {
	return apperrors.New(apperrors.CodeInvariantViolation, fmt.Sprintf(format, args...))
}
