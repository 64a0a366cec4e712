// Package game defines the authoritative game state and the read helpers the
// validators and commands share.
//
// State is a value. Commands clone it before changing anything, so a State
// held by a caller never changes underneath them.
package game

import (
	"github.com/louisbranch/knightfall/internal/services/game/domain/board"
	"github.com/louisbranch/knightfall/internal/services/game/domain/catalog"
	"github.com/louisbranch/knightfall/internal/services/game/domain/mana"
	"github.com/louisbranch/knightfall/internal/services/game/domain/modifier"
)

// Phase is the coarse game phase.
type Phase string

const (
	PhaseTurns    Phase = "turns"
	PhaseFinished Phase = "finished"
)

// Rules are the per-game rule options fixed at setup.
type Rules struct {
	// MinCardsPerTurn is how many cards a player must play before ending
	// their turn while non-wound cards remain in hand.
	MinCardsPerTurn int `json:"min_cards_per_turn"`
	HandSize        int `json:"hand_size"`
	SourceDice      int `json:"source_dice"`
	Rounds          int `json:"rounds"`
	CommandTokens   int `json:"command_tokens"`
}

// DefaultRules returns the standard rule options.
func DefaultRules() Rules {
	return Rules{
		MinCardsPerTurn: 1,
		HandSize:        5,
		SourceDice:      3,
		Rounds:          6,
		CommandTokens:   1,
	}
}

// Unit is a recruited unit.
type Unit struct {
	DefID   string `json:"def_id"`
	Ready   bool   `json:"ready"`
	Wounded bool   `json:"wounded,omitempty"`
}

// PendingChoice is an unresolved effect choice. While set, the player may
// only resolve it or undo.
type PendingChoice struct {
	Source  modifier.Source  `json:"source"`
	Options []catalog.Effect `json:"options"`
}

// Player is one seat at the table.
type Player struct {
	ID       string      `json:"id"`
	Position board.Coord `json:"position"`

	Hand     []string `json:"hand,omitempty"`
	Deck     []string `json:"deck,omitempty"`
	Discard  []string `json:"discard,omitempty"`
	PlayArea []string `json:"play_area,omitempty"`

	Units      []Unit   `json:"units,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	SkillsUsed []string `json:"skills_used,omitempty"`

	PendingChoice *PendingChoice `json:"pending_choice,omitempty"`

	// Mana holds mana tokens, which vanish at the end of the turn.
	Mana     mana.Pool `json:"mana,omitempty"`
	Crystals mana.Pool `json:"crystals,omitempty"`

	Fame      int `json:"fame"`
	Move      int `json:"move"`
	Influence int `json:"influence"`
	Attack    int `json:"attack"`
	Block     int `json:"block"`

	CardsPlayed   int  `json:"cards_played"`
	UsedSource    bool `json:"used_source,omitempty"`
	CommandTokens int  `json:"command_tokens"`
}

// SourceDie is one mana source die. TakenBy is set while a player holds it.
type SourceDie struct {
	Color   mana.Color `json:"color"`
	TakenBy string     `json:"taken_by,omitempty"`
}

// CombatEnemy is an enemy token in the current combat.
type CombatEnemy struct {
	EnemyID  string `json:"enemy_id"`
	Defeated bool   `json:"defeated,omitempty"`
}

// Combat is the active combat, if any.
type Combat struct {
	PlayerID string        `json:"player_id"`
	Hex      board.Coord   `json:"hex"`
	Enemies  []CombatEnemy `json:"enemies"`
}

// State is the authoritative game state.
type State struct {
	ID        string          `json:"id"`
	Round     int             `json:"round"`
	TimeOfDay board.TimeOfDay `json:"time_of_day"`
	Phase     Phase           `json:"phase"`
	// Turn indexes Players.
	Turn    int      `json:"turn"`
	Players []Player `json:"players"`

	Map        []board.Hex         `json:"map"`
	TileDeck   []string            `json:"tile_deck,omitempty"`
	EnemyPiles map[string][]string `json:"enemy_piles,omitempty"`
	UnitOffer  []string            `json:"unit_offer,omitempty"`
	Source     []SourceDie         `json:"source"`

	Modifiers   modifier.Store `json:"modifiers,omitempty"`
	ModifierSeq int            `json:"modifier_seq"`

	Combat *Combat `json:"combat,omitempty"`
	Rules  Rules   `json:"rules"`
	RNG    RNG     `json:"rng"`

	// EventSeq numbers emitted events. It only grows, including across
	// undo, and is not part of the observable game position.
	EventSeq uint64 `json:"event_seq"`
}

// PlayerIndex returns the index of the player with id, or -1.
func (s State) PlayerIndex(id string) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Player returns the player with id.
func (s State) Player(id string) (Player, bool) {
	i := s.PlayerIndex(id)
	if i < 0 {
		return Player{}, false
	}
	return s.Players[i], true
}

// ActivePlayerID returns the id of the player whose turn it is.
func (s State) ActivePlayerID() string {
	if s.Turn < 0 || s.Turn >= len(s.Players) {
		return ""
	}
	return s.Players[s.Turn].ID
}

// HexAt returns the revealed hex at c.
func (s State) HexAt(c board.Coord) (board.Hex, bool) {
	i := s.hexIndex(c)
	if i < 0 {
		return board.Hex{}, false
	}
	return s.Map[i], true
}

func (s State) hexIndex(c board.Coord) int {
	for i, h := range s.Map {
		if h.Coord == c {
			return i
		}
	}
	return -1
}

// SetHex replaces or appends h in the map.
func (s *State) SetHex(h board.Hex) {
	if i := s.hexIndex(h.Coord); i >= 0 {
		s.Map[i] = h
		return
	}
	s.Map = append(s.Map, h)
}

// InCombat reports whether playerID is fighting.
func (s State) InCombat(playerID string) bool {
	return s.Combat != nil && s.Combat.PlayerID == playerID
}
