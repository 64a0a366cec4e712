package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScenarioStepsChain(t *testing.T) {
	path := writeScenarioFixture(t, `-- Setup
local scene = Scenario.new("chain")
scene:game({players = {"p1", "p2"}, seed = 3})

-- Actions chain and keep their positional arguments
scene:play_card("p1", "march", {powered = true, mana = {source = "token", color = "green"}})
  :move("p1", {{q = 1, r = 0}})
  :end_turn("p1", {expect = "MINIMUM_TURN_REQUIREMENT"})

return scene
`)

	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if scenario.Name != "chain" {
		t.Fatalf("name = %q, want chain", scenario.Name)
	}
	if len(scenario.Steps) != 4 {
		t.Fatalf("steps = %d, want %d", len(scenario.Steps), 4)
	}

	play := scenario.Steps[1]
	if play.Kind != "play_card" || play.Args["player"] != "p1" || play.Args["card_id"] != "march" {
		t.Fatalf("play step = %+v", play)
	}
	if play.Args["powered"] != true {
		t.Fatalf("powered = %v, want true", play.Args["powered"])
	}
	payment, ok := play.Args["mana"].(map[string]any)
	if !ok || payment["color"] != "green" {
		t.Fatalf("mana = %v", play.Args["mana"])
	}

	move := scenario.Steps[2]
	path2, ok := move.Args["path"].([]any)
	if !ok || len(path2) != 1 {
		t.Fatalf("path = %v, want one hex", move.Args["path"])
	}
	if hex, _ := path2[0].(map[string]any); hex["q"] != 1 || hex["r"] != 0 {
		t.Fatalf("hex = %v, want q=1 r=0", path2[0])
	}

	end := scenario.Steps[3]
	if end.Kind != "end_turn" || end.Args["expect"] != "MINIMUM_TURN_REQUIREMENT" {
		t.Fatalf("end step = %+v", end)
	}
}

func TestScenarioNameDefaultsToFile(t *testing.T) {
	path := writeScenarioFixture(t, `return Scenario.new()`)
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if scenario.Name != "scenario" {
		t.Fatalf("name = %q, want scenario", scenario.Name)
	}
}

func TestScenarioExpectations(t *testing.T) {
	scenario, err := LoadScenario("expect", `
local scene = Scenario.new("expect")
scene:expect_events({"CARD_PLAYED", "MOVE_POINTS_GAINED"})
scene:expect_player("p1", {move = 2, position = {q = 0, r = 0}})
scene:expect_state({turn = "p1", can_undo = false})
return scene
`)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if len(scenario.Steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(scenario.Steps))
	}
	if got := readStringSlice(scenario.Steps[0].Args, "types"); len(got) != 2 || got[1] != "MOVE_POINTS_GAINED" {
		t.Fatalf("types = %v", got)
	}
	if got, ok := readCoord(scenario.Steps[1].Args, "position"); !ok || got.Q != 0 || got.R != 0 {
		t.Fatalf("position = %v, %v", got, ok)
	}
	if got, ok := readBool(scenario.Steps[2].Args, "can_undo"); !ok || got {
		t.Fatalf("can_undo = %v, %v", got, ok)
	}
}

func TestScenarioErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "game without players",
			source: "local scene = Scenario.new('x')\nscene:game({seed = 1})\nreturn scene",
			want:   "game players are required",
		},
		{
			name:   "action without primary argument",
			source: "local scene = Scenario.new('x')\nscene:play_card('p1')\nreturn scene",
			want:   "play_card card_id is required",
		},
		{
			name:   "script returns nothing",
			source: "local scene = Scenario.new('x')",
			want:   "scenario script must return Scenario",
		},
		{
			name:   "syntax error",
			source: "local scene = ",
			want:   "load lua",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario("bad", tt.source)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestTableToGoShapes(t *testing.T) {
	scenario, err := LoadScenario("shapes", `
local scene = Scenario.new("shapes")
scene:player("p1", {skills = {}, move = 2.5, position = {q = -1, r = 2}})
return scene
`)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	args := scenario.Steps[0].Args
	if skills, ok := args["skills"].([]any); !ok || len(skills) != 0 {
		t.Fatalf("skills = %#v, want empty list", args["skills"])
	}
	if args["move"] != 2.5 {
		t.Fatalf("move = %#v, want 2.5", args["move"])
	}
	if pos, ok := readCoord(args, "position"); !ok || pos.Q != -1 || pos.R != 2 {
		t.Fatalf("position = %v", pos)
	}
}

func writeScenarioFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.lua")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}
