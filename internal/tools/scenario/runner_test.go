package scenario

import (
	"bytes"
	"context"
	"log"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/knightfall/internal/services/game/domain/catalog"
	"github.com/louisbranch/knightfall/internal/services/game/domain/engine"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
	"github.com/louisbranch/knightfall/internal/services/game/storage"
	"github.com/louisbranch/knightfall/internal/services/game/storage/integrity"
	"github.com/louisbranch/knightfall/internal/services/game/storage/sqlite"
)

const openingTurn = `
local scene = Scenario.new("opening")
scene:game({id = "g1", players = {"p1", "p2"}, seed = 11})
scene:hand("p1", {"march", "promises", "tranquility", "rage", "stamina"})

-- Play and take it back
scene:play_card("p1", "march", {expect_events = {"CARD_PLAYED", "MOVE_POINTS_GAINED"}})
scene:expect_player("p1", {move = 2, hand = 4, cards_played = 1})
scene:expect_state({can_undo = true, history = 1, checkpoint = "session_restored"})
scene:undo("p1")
scene:expect_player("p1", {move = 0, hand = 5, has_cards = {"march"}})
scene:undo("p1", {expect = "NOTHING_TO_UNDO"})

-- Rejections leave the session alone
scene:end_turn("p2", {expect = "NOT_PLAYERS_TURN"})
scene:end_turn("p1", {expect = "MINIMUM_TURN_REQUIREMENT"})

scene:sideways("p1", "stamina", {as = "move"})
scene:expect_player("p1", {move = 1})
scene:end_turn("p1")
scene:expect_events({"TURN_ENDED"})
scene:expect_state({turn = "p2", round = 1, can_undo = false, phase = "turns"})
return scene
`

type fakeSaveStore struct {
	saved []game.State
}

func (f *fakeSaveStore) PutSave(_ context.Context, st game.State) (storage.SaveRecord, error) {
	f.saved = append(f.saved, st)
	return storage.SaveRecord{GameID: st.ID, EventSeq: st.EventSeq}, nil
}

func (f *fakeSaveStore) GetSave(context.Context, string) (storage.SaveRecord, error) {
	return storage.SaveRecord{}, storage.ErrNotFound
}

func (f *fakeSaveStore) ListSaves(context.Context, int) ([]storage.SaveSummary, error) {
	return nil, nil
}

func (f *fakeSaveStore) DeleteSave(context.Context, string) error {
	return nil
}

func newTestRunner(t *testing.T, cfg Config, store storage.SaveStore) (*Runner, *bytes.Buffer) {
	t.Helper()
	d, err := engine.NewDispatcher(catalog.Static())
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	var logs bytes.Buffer
	cfg.Logger = log.New(&logs, "", 0)
	r, err := newRunnerWithDeps(cfg, runnerDeps{dispatcher: d, store: store})
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	return r, &logs
}

func loadScenario(t *testing.T, source string) *Scenario {
	t.Helper()
	scenario, err := LoadScenario("test", source)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	return scenario
}

func TestRunScenarioOpeningTurn(t *testing.T) {
	store := &fakeSaveStore{}
	r, logs := newTestRunner(t, Config{Verbose: true}, store)

	if err := r.RunScenario(context.Background(), loadScenario(t, openingTurn)); err != nil {
		t.Fatalf("run scenario: %v\n%s", err, logs.String())
	}
	if len(store.saved) != 1 {
		t.Fatalf("saves = %d, want 1", len(store.saved))
	}
	if got := store.saved[0].ActivePlayerID(); got != "p2" {
		t.Fatalf("saved active player = %s, want p2", got)
	}
	for _, want := range []string{"scenario start: opening", "step 1/", "saved game g1", "scenario done: opening"} {
		if !strings.Contains(logs.String(), want) {
			t.Fatalf("logs missing %q:\n%s", want, logs.String())
		}
	}
}

func TestRunScenarioUsesConfiguredRules(t *testing.T) {
	rules := game.DefaultRules()
	rules.MinCardsPerTurn = 0
	rules.HandSize = 4
	store := &fakeSaveStore{}
	r, logs := newTestRunner(t, Config{Rules: rules, Seed: 42}, store)

	script := `
local scene = Scenario.new("configured")
scene:game({players = {"p1", "p2"}, id = "g1"})
scene:end_turn("p1")
scene:expect_state({turn = "p2"})
return scene
`
	if err := r.RunScenario(context.Background(), loadScenario(t, script)); err != nil {
		t.Fatalf("run scenario: %v\n%s", err, logs.String())
	}
	saved := store.saved[0]
	if saved.Rules != rules {
		t.Fatalf("rules = %+v, want %+v", saved.Rules, rules)
	}
	if saved.RNG.Seed != 42 {
		t.Fatalf("seed = %d, want 42", saved.RNG.Seed)
	}

	override := `
local scene = Scenario.new("override")
scene:game({players = {"p1", "p2"}, id = "g2", min_cards_per_turn = 1, seed = 7})
scene:end_turn("p1", {expect = "MINIMUM_TURN_REQUIREMENT"})
return scene
`
	if err := r.RunScenario(context.Background(), loadScenario(t, override)); err != nil {
		t.Fatalf("run override scenario: %v\n%s", err, logs.String())
	}
	last := store.saved[len(store.saved)-1]
	if last.Rules.MinCardsPerTurn != 1 || last.Rules.HandSize != 4 || last.RNG.Seed != 7 {
		t.Fatalf("override rules = %+v seed = %d", last.Rules, last.RNG.Seed)
	}
}

func TestRunScenarioStrictFailure(t *testing.T) {
	r, _ := newTestRunner(t, Config{}, nil)
	err := r.RunScenario(context.Background(), loadScenario(t, `
local scene = Scenario.new("strict")
scene:game({id = "g1", players = {"p1"}})
scene:expect_player("p1", {fame = 9})
scene:expect_state({round = 4})
return scene
`))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "step 2 (expect_player)") || !strings.Contains(err.Error(), "fame = 0, want 9") {
		t.Fatalf("error = %v", err)
	}
}

func TestRunScenarioLogOnly(t *testing.T) {
	r, logs := newTestRunner(t, Config{Assertions: AssertionLogOnly}, nil)
	err := r.RunScenario(context.Background(), loadScenario(t, `
local scene = Scenario.new("lenient")
scene:game({id = "g1", players = {"p1", "p2"}})
scene:end_turn("p2")
scene:expect_state({round = 4, turn = "p2"})
return scene
`))
	if err != nil {
		t.Fatalf("run scenario: %v", err)
	}
	out := logs.String()
	if !strings.Contains(out, "expectation failed: END_TURN by p2 rejected: NOT_PLAYERS_TURN") {
		t.Fatalf("logs = %q, want rejected action", out)
	}
	if !strings.Contains(out, "game round = 1, want 4") || !strings.Contains(out, `game turn = "p1", want "p2"`) {
		t.Fatalf("logs = %q, want failed expectations", out)
	}
}

func TestRunScenarioMalformedSteps(t *testing.T) {
	tests := []struct {
		name     string
		scenario *Scenario
		want     string
	}{
		{
			name:     "action before game",
			scenario: &Scenario{Steps: []Step{{Kind: "end_turn", Args: map[string]any{"player": "p1"}}}},
			want:     "game is required",
		},
		{
			name:     "unknown step",
			scenario: &Scenario{Steps: []Step{{Kind: "dance", Args: map[string]any{}}}},
			want:     `unknown step kind "dance"`,
		},
		{
			name: "unknown player",
			scenario: &Scenario{Steps: []Step{
				{Kind: "game", Args: map[string]any{"players": []any{"p1"}}},
				{Kind: "hand", Args: map[string]any{"player": "p9", "cards": []any{}}},
			}},
			want: `unknown player "p9"`,
		},
		{
			name: "second game",
			scenario: &Scenario{Steps: []Step{
				{Kind: "game", Args: map[string]any{"players": []any{"p1"}}},
				{Kind: "game", Args: map[string]any{"players": []any{"p1"}}},
			}},
			want: "game already started",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Log-only mode still stops on malformed steps.
			r, _ := newTestRunner(t, Config{Assertions: AssertionLogOnly}, nil)
			err := r.RunScenario(context.Background(), tt.scenario)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want %q", err, tt.want)
			}
		})
	}
	r, _ := newTestRunner(t, Config{}, nil)
	if err := r.RunScenario(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil scenario")
	}
}

func TestRunScenarioGeneratesGameID(t *testing.T) {
	store := &fakeSaveStore{}
	r, _ := newTestRunner(t, Config{}, store)
	err := r.RunScenario(context.Background(), loadScenario(t, `
local scene = Scenario.new("generated")
scene:game({players = {"p1"}})
return scene
`))
	if err != nil {
		t.Fatalf("run scenario: %v", err)
	}
	if len(store.saved) != 1 || !strings.HasPrefix(store.saved[0].ID, "game_") {
		t.Fatalf("saved = %+v, want generated game id", store.saved)
	}
}

func TestRunFileSavesSignedGame(t *testing.T) {
	t.Setenv("KNIGHTFALL_SAVE_HMAC_KEY", "scenario-secret")
	t.Setenv("KNIGHTFALL_SAVE_HMAC_KEYS", "")
	t.Setenv("KNIGHTFALL_SAVE_HMAC_KEY_ID", "")
	savePath := filepath.Join(t.TempDir(), "saves.sqlite")
	script := writeScenarioFixture(t, openingTurn)

	cfg := DefaultConfig()
	cfg.SavePath = savePath
	cfg.Logger = log.New(&bytes.Buffer{}, "", 0)
	if err := RunFile(context.Background(), cfg, script); err != nil {
		t.Fatalf("run file: %v", err)
	}

	keyring, err := integrity.NewKeyring(map[string][]byte{"v1": []byte("scenario-secret")}, "v1")
	if err != nil {
		t.Fatalf("new keyring: %v", err)
	}
	store, err := sqlite.Open(context.Background(), savePath, sqlite.WithKeyring(keyring))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	rec, err := store.GetSave(context.Background(), "g1")
	if err != nil {
		t.Fatalf("get save: %v", err)
	}
	if rec.KeyID != "v1" || rec.State.ActivePlayerID() != "p2" {
		t.Fatalf("record key = %s active = %s", rec.KeyID, rec.State.ActivePlayerID())
	}
}

func TestRunFileMissingScript(t *testing.T) {
	err := RunFile(context.Background(), DefaultConfig(), filepath.Join(t.TempDir(), "missing.lua"))
	if err == nil || !strings.Contains(err.Error(), "load lua") {
		t.Fatalf("error = %v, want load failure", err)
	}
}

func TestAssertionModeString(t *testing.T) {
	if AssertionStrict.String() != "strict" || AssertionLogOnly.String() != "log-only" {
		t.Fatalf("modes = %s, %s", AssertionStrict, AssertionLogOnly)
	}
}

func TestTestdataScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.lua"))
	if err != nil {
		t.Fatalf("glob scenarios: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("expected testdata scenarios")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenarioFromFile(path)
			if err != nil {
				t.Fatalf("load scenario: %v", err)
			}
			r, logs := newTestRunner(t, Config{Verbose: true}, nil)
			if err := r.RunScenario(context.Background(), scenario); err != nil {
				t.Fatalf("run scenario: %v\n%s", err, logs.String())
			}
		})
	}
}
