package engine

import (
	"errors"
	"testing"

	apperrors "github.com/louisbranch/knightfall/internal/platform/errors"
	"github.com/louisbranch/knightfall/internal/services/game/domain/action"
	"github.com/louisbranch/knightfall/internal/services/game/domain/catalog"
	"github.com/louisbranch/knightfall/internal/services/game/domain/command"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
	"github.com/louisbranch/knightfall/internal/services/game/domain/validator"
)

func TestNewSessionStartsAtCheckpoint(t *testing.T) {
	d := newDispatcher(t)
	s := newSession(t, d)
	cp := s.History.Checkpoint()
	if cp.Reason != command.ReasonGameStarted || cp.Timestamp.IsZero() {
		t.Fatalf("checkpoint = %+v, want game_started", cp)
	}
	if s.CanUndo() {
		t.Fatal("new session can undo")
	}
}

func TestNewSessionValidatesSetup(t *testing.T) {
	d := newDispatcher(t)
	tests := []struct {
		name  string
		setup game.Setup
	}{
		{name: "missing id", setup: game.Setup{PlayerIDs: []string{"p1"}}},
		{name: "no players", setup: game.Setup{ID: "g1"}},
		{name: "duplicate players", setup: game.Setup{ID: "g1", PlayerIDs: []string{"p1", "p1"}}},
		{name: "too many players", setup: game.Setup{ID: "g1", PlayerIDs: []string{"a", "b", "c", "d", "e"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := d.NewSession(tt.setup); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestPersistRestoreDropsHistory(t *testing.T) {
	d := newDispatcher(t)
	s := accept(t, d, newSession(t, d), "p1", action.PlayCard{CardID: "march"}).Session

	saved := Persist(s)
	saved.Players[0].Move = 99
	if s.State.Players[0].Move == 99 {
		t.Fatal("Persist shares memory with the session")
	}

	restored := d.Restore(Persist(s))
	if !sameGame(restored.State, s.State) || restored.State.EventSeq != s.State.EventSeq {
		t.Fatal("restored state differs")
	}
	if restored.CanUndo() {
		t.Fatal("restored session kept undo history")
	}
	if got := restored.History.Checkpoint().Reason; got != command.ReasonSessionRestored {
		t.Fatalf("checkpoint = %s, want %s", got, command.ReasonSessionRestored)
	}
	reject(t, d, restored, "p1", action.Undo{}, validator.CodeNothingToUndo)
}

func TestBuildRegistriesCoverage(t *testing.T) {
	regs, err := BuildRegistries(catalog.Static())
	if err != nil {
		t.Fatalf("BuildRegistries() error = %v", err)
	}
	if err := ValidateCoverage(regs); err != nil {
		t.Fatalf("ValidateCoverage() error = %v", err)
	}

	partial, err := command.NewFactories(map[action.Kind]command.Factory{
		action.KindEndTurn: func(game.State, string, action.Action) []command.Command { return nil },
	})
	if err != nil {
		t.Fatalf("NewFactories() error = %v", err)
	}
	regs.Factories = partial
	err = ValidateCoverage(regs)
	if !errors.Is(err, apperrors.New(apperrors.CodeRegistryIncomplete, "")) {
		t.Fatalf("ValidateCoverage() error = %v, want %s", err, apperrors.CodeRegistryIncomplete)
	}
	if err := ValidateCoverage(Registries{}); err == nil {
		t.Fatal("expected error for empty registries")
	}
}

func TestLocalize(t *testing.T) {
	r := validator.Invalid(validator.CodeNotPlayersTurn, "it is p2's turn")
	if got := Localize("en-US", r); got != "It is not your turn." {
		t.Fatalf("en-US = %q", got)
	}
	if got := Localize("pt-BR", r); got != "Não é a sua vez." {
		t.Fatalf("pt-BR = %q", got)
	}
	if got := Localize("xx-XX", r); got != "It is not your turn." {
		t.Fatalf("fallback = %q", got)
	}
	if got := Localize("en-US", validator.Invalid("UNLISTED", "raw message")); got != "raw message" {
		t.Fatalf("unlisted = %q", got)
	}
	if got := Localize("en-US", validator.Valid()); got != "" {
		t.Fatalf("valid = %q, want empty", got)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("KNIGHTFALL_HAND_SIZE", "6")
	t.Setenv("KNIGHTFALL_SEED", "42")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.HandSize != 6 || cfg.Seed != 42 || cfg.MinCardsPerTurn != 1 || cfg.Locale != "en-US" {
		t.Fatalf("config = %+v", cfg)
	}
	rules := cfg.Rules()
	if rules.HandSize != 6 || rules.SourceDice != 3 || rules.Rounds != 6 {
		t.Fatalf("rules = %+v", rules)
	}

	t.Setenv("KNIGHTFALL_HAND_SIZE", "0")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestIsInvariantViolation(t *testing.T) {
	if IsInvariantViolation(errors.New("plain")) {
		t.Fatal("plain error reported as invariant")
	}
	if IsInvariantViolation(apperrors.New(apperrors.CodeNotFound, "missing")) {
		t.Fatal("not found reported as invariant")
	}
	if !IsInvariantViolation(apperrors.New(apperrors.CodePlayerNotFound, "missing")) {
		t.Fatal("player not found not reported as invariant")
	}
	if got := PublicMessage("en-US", apperrors.New(apperrors.CodeNotFound, "x")); got != "Not found." {
		t.Fatalf("public message = %q", got)
	}
}
