package storage

import (
	"context"
	"fmt"

	"github.com/louisbranch/knightfall/internal/services/game/domain/engine"
)

// SaveSession stores the persistence projection of s. Undo history is
// dropped.
func SaveSession(ctx context.Context, store SaveStore, s engine.Session) (SaveRecord, error) {
	rec, err := store.PutSave(ctx, engine.Persist(s))
	if err != nil {
		return SaveRecord{}, fmt.Errorf("save session %s: %w", s.State.ID, err)
	}
	return rec, nil
}

// LoadSession resumes the saved game gameID with an empty history.
func LoadSession(ctx context.Context, store SaveStore, d *engine.Dispatcher, gameID string) (engine.Session, error) {
	rec, err := store.GetSave(ctx, gameID)
	if err != nil {
		return engine.Session{}, fmt.Errorf("load session %s: %w", gameID, err)
	}
	return d.Restore(rec.State), nil
}
