package event

import (
	"errors"
	"testing"
)

func TestNewEncodesPayload(t *testing.T) {
	evt := New(TypeUnitRecruited, "p1", 2, UnitRecruitedPayload{UnitID: "peasants", Cost: 4})
	if evt.Type != TypeUnitRecruited || evt.PlayerID != "p1" || evt.Round != 2 {
		t.Fatalf("envelope = %+v", evt)
	}
	var payload UnitRecruitedPayload
	if err := evt.Decode(&payload); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if payload.UnitID != "peasants" || payload.Cost != 4 {
		t.Fatalf("payload = %+v, want peasants/4", payload)
	}
}

func TestRegistryValidate(t *testing.T) {
	r := DefaultRegistry()

	if err := r.Validate(New(TypeFameGained, "p1", 1, FameGainedPayload{Amount: 2})); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := r.Validate(Event{Type: "SPELL_CAST", PayloadJSON: []byte("{}")}); !errors.Is(err, ErrTypeUnknown) {
		t.Fatalf("Validate(unknown) error = %v, want ErrTypeUnknown", err)
	}
	if err := r.Validate(Event{Type: TypeFameGained, PayloadJSON: []byte("{")}); !errors.Is(err, ErrPayloadInvalid) {
		t.Fatalf("Validate(bad payload) error = %v, want ErrPayloadInvalid", err)
	}
	if err := r.Validate(Event{}); !errors.Is(err, ErrTypeRequired) {
		t.Fatalf("Validate(empty) error = %v, want ErrTypeRequired", err)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Definition{Type: TypeTurnEnded}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(Definition{Type: TypeTurnEnded}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if err := r.Register(Definition{Type: "  "}); !errors.Is(err, ErrTypeRequired) {
		t.Fatalf("Register(blank) error = %v, want ErrTypeRequired", err)
	}
}

func TestReversalTypesAreMarked(t *testing.T) {
	r := DefaultRegistry()
	def, ok := r.Definition(TypeRecruitUndone)
	if !ok || !def.Reversal {
		t.Fatalf("RECRUIT_UNDONE definition = %+v, %v", def, ok)
	}
	def, ok = r.Definition(TypeUnitRecruited)
	if !ok || def.Reversal {
		t.Fatalf("UNIT_RECRUITED definition = %+v, %v", def, ok)
	}
	if got := len(r.ListDefinitions()); got != len(Types()) {
		t.Fatalf("definitions = %d, want %d", got, len(Types()))
	}
}
