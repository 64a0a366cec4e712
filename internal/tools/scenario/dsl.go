package scenario

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"

	"github.com/louisbranch/knightfall/internal/services/game/domain/action"
)

const scenarioTypeName = "scenario"

// Scenario is a named list of steps built by a Lua script.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one scenario instruction. Args holds the Lua table converted to
// Go values: strings, ints, float64s, bools, []any and map[string]any.
type Step struct {
	Kind string
	Args map[string]any
}

// actionStep maps a DSL method onto the action it dispatches. Primary names
// the payload field filled by the positional argument after the player.
type actionStep struct {
	kind    action.Kind
	primary string
}

var actionSteps = map[string]actionStep{
	"play_card":      {kind: action.KindPlayCard, primary: "card_id"},
	"sideways":       {kind: action.KindPlayCardSideways, primary: "card_id"},
	"move":           {kind: action.KindMove, primary: "path"},
	"explore":        {kind: action.KindExplore, primary: "target"},
	"recruit":        {kind: action.KindRecruitUnit, primary: "unit_id"},
	"use_skill":      {kind: action.KindUseSkill, primary: "skill_id"},
	"activate_unit":  {kind: action.KindActivateUnit, primary: "unit_index"},
	"take_mana":      {kind: action.KindTakeMana, primary: "die_index"},
	"reroll":         {kind: action.KindRerollDie, primary: "die_index"},
	"resolve_choice": {kind: action.KindResolveChoice, primary: "option_index"},
	"enter_combat":   {kind: action.KindEnterCombat},
	"attack":         {kind: action.KindAttackEnemy, primary: "enemy_index"},
	"end_combat":     {kind: action.KindEndCombat},
	"end_turn":       {kind: action.KindEndTurn},
	"undo":           {kind: action.KindUndo},
}

// LoadScenarioFromFile runs a Lua scenario script and returns the Scenario
// it builds. Scripts end with `return scene`.
func LoadScenarioFromFile(path string) (*Scenario, error) {
	state := newLuaState()
	if err := lua.LoadFile(state, path, "t"); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	scenario, err := runScript(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

// LoadScenario runs Lua source held in memory.
func LoadScenario(name, source string) (*Scenario, error) {
	state := newLuaState()
	if err := lua.LoadBuffer(state, source, name, "t"); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	scenario, err := runScript(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = name
	}
	return scenario, nil
}

func newLuaState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerScenarioType(state)
	registerScenarioConstructor(state)
	return state
}

func runScript(state *lua.State) (*Scenario, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}
	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	return scenario, nil
}

func registerScenarioType(state *lua.State) {
	methods := []lua.RegistryFunction{
		{Name: "game", Function: scenarioGame},
		{Name: "hand", Function: scenarioHand},
		{Name: "player", Function: scenarioPlayer},
		{Name: "expect_events", Function: scenarioExpectEvents},
		{Name: "expect_player", Function: scenarioExpectPlayer},
		{Name: "expect_state", Function: scenarioExpectState},
	}
	for name, step := range actionSteps {
		methods = append(methods, lua.RegistryFunction{Name: name, Function: scenarioAction(name, step)})
	}

	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, methods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerScenarioConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, []lua.RegistryFunction{{Name: "new", Function: scenarioNew}}, 0)
	state.SetGlobal("Scenario")
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	state.PushUserData(&Scenario{Name: name})
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

// Every method returns the scenario so calls can chain.
func chain(state *lua.State) int {
	state.PushValue(1)
	return 1
}

func scenarioGame(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	data := tableToMap(state, 2)
	if len(readStringSlice(data, "players")) == 0 {
		lua.Errorf(state, "game players are required")
	}
	appendStep(scenario, "game", data)
	return chain(state)
}

func scenarioHand(state *lua.State) int {
	scenario := checkScenario(state)
	player := lua.CheckString(state, 2)
	lua.CheckType(state, 3, lua.TypeTable)
	appendStep(scenario, "hand", map[string]any{"player": player, "cards": tableToGo(state, 3)})
	return chain(state)
}

func scenarioPlayer(state *lua.State) int {
	scenario := checkScenario(state)
	player := lua.CheckString(state, 2)
	lua.CheckType(state, 3, lua.TypeTable)
	data := tableToMap(state, 3)
	data["player"] = player
	appendStep(scenario, "player", data)
	return chain(state)
}

func scenarioAction(name string, step actionStep) lua.Function {
	return func(state *lua.State) int {
		scenario := checkScenario(state)
		player := lua.CheckString(state, 2)
		optsIndex := 3
		var primary any
		if step.primary != "" {
			if state.IsNoneOrNil(3) {
				lua.Errorf(state, "%s %s is required", name, step.primary)
			}
			primary = luaToGo(state, 3)
			optsIndex = 4
		}
		data := optionalTable(state, optsIndex)
		data["player"] = player
		if step.primary != "" {
			data[step.primary] = primary
		}
		appendStep(scenario, name, data)
		return chain(state)
	}
}

func scenarioExpectEvents(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	types, _ := tableToGo(state, 2).([]any)
	appendStep(scenario, "expect_events", map[string]any{"types": types})
	return chain(state)
}

func scenarioExpectPlayer(state *lua.State) int {
	scenario := checkScenario(state)
	player := lua.CheckString(state, 2)
	lua.CheckType(state, 3, lua.TypeTable)
	data := tableToMap(state, 3)
	data["player"] = player
	appendStep(scenario, "expect_player", data)
	return chain(state)
}

func scenarioExpectState(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	appendStep(scenario, "expect_state", tableToMap(state, 2))
	return chain(state)
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

func appendStep(scenario *Scenario, kind string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	scenario.Steps = append(scenario.Steps, Step{Kind: kind, Args: data})
}

func optionalTable(state *lua.State, index int) map[string]any {
	if state.IsNoneOrNil(index) || state.TypeOf(index) != lua.TypeTable {
		return map[string]any{}
	}
	return tableToMap(state, index)
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}
	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	default:
		return nil
	}
}

// tableToGo returns []any for sequences and map[string]any otherwise. An
// empty table is an empty list.
func tableToGo(state *lua.State, index int) any {
	if state.TypeOf(index) != lua.TypeTable {
		return nil
	}
	index = state.AbsIndex(index)
	isArray := true
	maxIndex, count := 0, 0
	state.PushNil()
	for state.Next(index) {
		if isArray {
			isArray = state.TypeOf(-2) == lua.TypeNumber
			if idx, ok := state.ToInteger(-2); isArray && ok && idx > 0 {
				count++
				maxIndex = max(maxIndex, idx)
			} else {
				isArray = false
			}
		}
		state.Pop(1)
	}

	if isArray && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			state.RawGetInt(index, i)
			result = append(result, luaToGo(state, -1))
			state.Pop(1)
		}
		return result
	}
	return tableToMap(state, index)
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}
