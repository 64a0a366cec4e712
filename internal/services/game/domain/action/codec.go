package action

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrKindUnknown indicates an action kind outside the closed set.
var ErrKindUnknown = errors.New("action kind is not supported")

// Envelope is the wire form of an action.
type Envelope struct {
	Kind    Kind            `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Encode wraps a into an envelope.
func Encode(a Action) (Envelope, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s: %w", a.Kind(), err)
	}
	return Envelope{Kind: a.Kind(), Payload: payload}, nil
}

// Decode unwraps an envelope into its typed action.
func Decode(env Envelope) (Action, error) {
	switch env.Kind {
	case KindPlayCard:
		return decodeAs[PlayCard](env)
	case KindPlayCardSideways:
		return decodeAs[PlayCardSideways](env)
	case KindMove:
		return decodeAs[Move](env)
	case KindExplore:
		return decodeAs[Explore](env)
	case KindRecruitUnit:
		return decodeAs[RecruitUnit](env)
	case KindUseSkill:
		return decodeAs[UseSkill](env)
	case KindActivateUnit:
		return decodeAs[ActivateUnit](env)
	case KindTakeMana:
		return decodeAs[TakeMana](env)
	case KindRerollDie:
		return decodeAs[RerollDie](env)
	case KindResolveChoice:
		return decodeAs[ResolveChoice](env)
	case KindEnterCombat:
		return decodeAs[EnterCombat](env)
	case KindAttackEnemy:
		return decodeAs[AttackEnemy](env)
	case KindEndCombat:
		return decodeAs[EndCombat](env)
	case KindEndTurn:
		return decodeAs[EndTurn](env)
	case KindUndo:
		return decodeAs[Undo](env)
	default:
		return nil, fmt.Errorf("%w: %q", ErrKindUnknown, env.Kind)
	}
}

func decodeAs[A Action](env Envelope) (Action, error) {
	var a A
	if len(env.Payload) == 0 {
		return a, nil
	}
	if err := json.Unmarshal(env.Payload, &a); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", env.Kind, err)
	}
	return a, nil
}
