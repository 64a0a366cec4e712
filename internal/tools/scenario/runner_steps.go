package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/louisbranch/knightfall/internal/platform/id"
	"github.com/louisbranch/knightfall/internal/services/game/domain/action"
	"github.com/louisbranch/knightfall/internal/services/game/domain/board"
	"github.com/louisbranch/knightfall/internal/services/game/domain/engine"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
	"github.com/louisbranch/knightfall/internal/services/game/domain/validator"
)

// Step arguments that steer the runner and never reach the action payload.
var controlArgs = []string{"player", "expect", "expect_events"}

func (r *Runner) runStep(ctx context.Context, state *scenarioState, step Step) error {
	if as, ok := actionSteps[step.Kind]; ok {
		return r.runActionStep(ctx, state, step, as)
	}
	switch step.Kind {
	case "game":
		return r.runGameStep(state, step)
	case "hand":
		return r.runHandStep(state, step)
	case "player":
		return r.runPlayerStep(state, step)
	case "expect_events":
		return r.runExpectEventsStep(state, step)
	case "expect_player":
		return r.runExpectPlayerStep(state, step)
	case "expect_state":
		return r.runExpectStateStep(state, step)
	default:
		return r.failf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner) runGameStep(state *scenarioState, step Step) error {
	if state.started {
		return r.failf("game already started")
	}
	players := readStringSlice(step.Args, "players")
	if len(players) == 0 {
		return r.failf("game players are required")
	}
	gameID := optionalString(step.Args, "id", "")
	if gameID == "" {
		var err error
		if gameID, err = id.New(id.KindGame); err != nil {
			return err
		}
	}
	rules := r.rules
	rules.HandSize = optionalInt(step.Args, "hand_size", rules.HandSize)
	rules.Rounds = optionalInt(step.Args, "rounds", rules.Rounds)
	rules.MinCardsPerTurn = optionalInt(step.Args, "min_cards_per_turn", rules.MinCardsPerTurn)
	rules.SourceDice = optionalInt(step.Args, "source_dice", rules.SourceDice)
	rules.CommandTokens = optionalInt(step.Args, "command_tokens", rules.CommandTokens)

	session, err := r.dispatcher.NewSession(game.Setup{
		ID:        gameID,
		PlayerIDs: players,
		Seed:      uint64(optionalInt(step.Args, "seed", int(r.seed))),
		Rules:     rules,
	})
	if err != nil {
		return r.failf("start game: %v", err)
	}
	state.session = session
	state.started = true
	r.logf("game %s started for %v", gameID, players)
	return nil
}

// runHandStep replaces a player's hand. Fixture steps rewrite state, so the
// undo history restarts from the fixed-up state.
func (r *Runner) runHandStep(state *scenarioState, step Step) error {
	st, idx, err := r.fixture(state, step)
	if err != nil {
		return err
	}
	st.Players[idx].Hand = readStringSlice(step.Args, "cards")
	state.session = r.dispatcher.Restore(st)
	return nil
}

func (r *Runner) runPlayerStep(state *scenarioState, step Step) error {
	st, idx, err := r.fixture(state, step)
	if err != nil {
		return err
	}
	p := &st.Players[idx]
	p.Move = optionalInt(step.Args, "move", p.Move)
	p.Influence = optionalInt(step.Args, "influence", p.Influence)
	p.Attack = optionalInt(step.Args, "attack", p.Attack)
	p.Block = optionalInt(step.Args, "block", p.Block)
	p.Fame = optionalInt(step.Args, "fame", p.Fame)
	if pos, ok := readCoord(step.Args, "position"); ok {
		p.Position = pos
	}
	if skills, ok := step.Args["skills"]; ok {
		p.Skills = toStrings(skills)
	}
	state.session = r.dispatcher.Restore(st)
	return nil
}

func (r *Runner) fixture(state *scenarioState, step Step) (game.State, int, error) {
	if err := r.ensureGame(state); err != nil {
		return game.State{}, 0, err
	}
	playerID := requiredString(step.Args, "player")
	st := state.session.State.Clone()
	idx := st.PlayerIndex(playerID)
	if idx < 0 {
		return game.State{}, 0, r.failf("unknown player %q", playerID)
	}
	return st, idx, nil
}

func (r *Runner) runActionStep(ctx context.Context, state *scenarioState, step Step, as actionStep) error {
	if err := r.ensureGame(state); err != nil {
		return err
	}
	playerID := requiredString(step.Args, "player")
	a, err := decodeAction(as.kind, step.Args)
	if err != nil {
		return r.failf("%v", err)
	}

	res, err := r.dispatcher.Dispatch(ctx, state.session, playerID, a)
	if err != nil {
		return r.failf("%s by %s: %v", as.kind, playerID, err)
	}
	state.last = res
	state.lastStep = step.Kind

	want := validator.Code(optionalString(step.Args, "expect", ""))
	switch {
	case want != "" && res.Validation.Code != want:
		if err := r.assertf("%s by %s: code = %q, want %q", as.kind, playerID, res.Validation.Code, want); err != nil {
			return err
		}
	case want == "" && !res.Accepted():
		if err := r.assertf("%s by %s rejected: %s (%s)", as.kind, playerID, res.Validation.Code, engine.Localize(r.locale, res.Validation)); err != nil {
			return err
		}
	}
	if res.Accepted() {
		state.session = res.Session
		r.logf("%s by %s: %d events", as.kind, playerID, len(res.Events))
	} else {
		r.logf("%s by %s rejected: %s", as.kind, playerID, res.Validation.Code)
	}

	if _, ok := step.Args["expect_events"]; ok {
		return r.expectEvents(state, readStringSlice(step.Args, "expect_events"))
	}
	return nil
}

// decodeAction builds the typed action through the wire codec so scenario
// arguments use the same field names as JSON clients.
func decodeAction(kind action.Kind, args map[string]any) (action.Action, error) {
	payload := make(map[string]any, len(args))
	for key, value := range args {
		if !slices.Contains(controlArgs, key) {
			payload[key] = value
		}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", kind, err)
	}
	return action.Decode(action.Envelope{Kind: kind, Payload: data})
}

func (r *Runner) runExpectEventsStep(state *scenarioState, step Step) error {
	return r.expectEvents(state, readStringSlice(step.Args, "types"))
}

func (r *Runner) expectEvents(state *scenarioState, want []string) error {
	got := make([]string, 0, len(state.last.Events))
	for _, e := range state.last.Events {
		got = append(got, string(e.Type))
	}
	if !slices.Equal(got, want) {
		return r.assertf("events after %s = %v, want %v", state.lastStep, got, want)
	}
	return nil
}

func (r *Runner) runExpectPlayerStep(state *scenarioState, step Step) error {
	if err := r.ensureGame(state); err != nil {
		return err
	}
	playerID := requiredString(step.Args, "player")
	p, ok := state.session.State.Player(playerID)
	if !ok {
		return r.failf("unknown player %q", playerID)
	}

	checks := []intCheck{
		{key: "move", got: p.Move},
		{key: "influence", got: p.Influence},
		{key: "attack", got: p.Attack},
		{key: "block", got: p.Block},
		{key: "fame", got: p.Fame},
		{key: "hand", got: len(p.Hand)},
		{key: "deck", got: len(p.Deck)},
		{key: "discard", got: len(p.Discard)},
		{key: "play_area", got: len(p.PlayArea)},
		{key: "units", got: len(p.Units)},
		{key: "cards_played", got: p.CardsPlayed},
	}
	if err := r.checkInts(playerID, step.Args, checks); err != nil {
		return err
	}
	if want, ok := readCoord(step.Args, "position"); ok && p.Position != want {
		if err := r.assertf("%s position = %v, want %v", playerID, p.Position, want); err != nil {
			return err
		}
	}
	if want, ok := readBool(step.Args, "pending_choice"); ok && (p.PendingChoice != nil) != want {
		if err := r.assertf("%s pending choice = %v, want %v", playerID, p.PendingChoice != nil, want); err != nil {
			return err
		}
	}
	for _, card := range readStringSlice(step.Args, "has_cards") {
		if !slices.Contains(p.Hand, card) {
			if err := r.assertf("%s hand %v is missing %s", playerID, p.Hand, card); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) runExpectStateStep(state *scenarioState, step Step) error {
	if err := r.ensureGame(state); err != nil {
		return err
	}
	s := state.session
	checks := []intCheck{
		{key: "round", got: s.State.Round},
		{key: "modifiers", got: len(s.State.Modifiers)},
		{key: "history", got: s.History.Len()},
	}
	if err := r.checkInts("game", step.Args, checks); err != nil {
		return err
	}

	strChecks := []struct {
		key string
		got string
	}{
		{key: "turn", got: s.State.ActivePlayerID()},
		{key: "phase", got: string(s.State.Phase)},
		{key: "time_of_day", got: string(s.State.TimeOfDay)},
		{key: "checkpoint", got: string(s.History.Checkpoint().Reason)},
	}
	for _, c := range strChecks {
		if want, ok := step.Args[c.key].(string); ok && c.got != want {
			if err := r.assertf("game %s = %q, want %q", c.key, c.got, want); err != nil {
				return err
			}
		}
	}

	bools := []struct {
		key string
		got bool
	}{
		{key: "can_undo", got: s.CanUndo()},
		{key: "in_combat", got: s.State.Combat != nil},
	}
	for _, c := range bools {
		if want, ok := readBool(step.Args, c.key); ok && c.got != want {
			if err := r.assertf("game %s = %v, want %v", c.key, c.got, want); err != nil {
				return err
			}
		}
	}
	if want, ok := readCoord(step.Args, "revealed"); ok {
		if _, found := s.State.HexAt(want); !found {
			if err := r.assertf("hex %v is not revealed", want); err != nil {
				return err
			}
		}
	}
	return nil
}

type intCheck struct {
	key string
	got int
}

func (r *Runner) checkInts(subject string, args map[string]any, checks []intCheck) error {
	for _, c := range checks {
		want, ok := readInt(args, c.key)
		if !ok || c.got == want {
			continue
		}
		if err := r.assertf("%s %s = %d, want %d", subject, c.key, c.got, want); err != nil {
			return err
		}
	}
	return nil
}

func readCoord(args map[string]any, key string) (board.Coord, bool) {
	value, ok := args[key].(map[string]any)
	if !ok {
		return board.Coord{}, false
	}
	q, okQ := readInt(value, "q")
	rr, okR := readInt(value, "r")
	if !okQ || !okR {
		return board.Coord{}, false
	}
	return board.Coord{Q: q, R: rr}, true
}
