package action

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/louisbranch/knightfall/internal/services/game/domain/board"
)

func TestKindsAreUnique(t *testing.T) {
	seen := make(map[Kind]struct{})
	for _, k := range Kinds() {
		if _, dup := seen[k]; dup {
			t.Fatalf("duplicate kind %s", k)
		}
		seen[k] = struct{}{}
	}
}

func TestDecodeEveryKind(t *testing.T) {
	for _, k := range Kinds() {
		a, err := Decode(Envelope{Kind: k})
		if err != nil {
			t.Fatalf("Decode(%s) error = %v", k, err)
		}
		if a.Kind() != k {
			t.Fatalf("Decode(%s).Kind() = %s", k, a.Kind())
		}
	}
}

func TestDecodeMovePath(t *testing.T) {
	a, err := Decode(Envelope{Kind: KindMove, Payload: json.RawMessage(`{"path":[{"q":1,"r":0},{"q":2,"r":0}]}`)})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := Move{Path: []board.Coord{{Q: 1, R: 0}, {Q: 2, R: 0}}}
	if !reflect.DeepEqual(a, want) {
		t.Fatalf("Decode() = %#v, want %#v", a, want)
	}
}

func TestEncodeDecodePlayCard(t *testing.T) {
	in := PlayCard{CardID: "march", Powered: true, Mana: &ManaPayment{Source: ManaFromDie, DieIndex: 2}}
	env, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	out, err := Decode(env)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("Decode(Encode()) = %#v, want %#v", out, in)
	}
}

func TestDecodeRejectsUnknownKind(t *testing.T) {
	_, err := Decode(Envelope{Kind: "CAST_SPELL"})
	if !errors.Is(err, ErrKindUnknown) {
		t.Fatalf("Decode() error = %v, want ErrKindUnknown", err)
	}
	if _, err := Decode(Envelope{Kind: KindMove, Payload: json.RawMessage(`{`)}); err == nil {
		t.Fatal("expected malformed payload error")
	}
}
