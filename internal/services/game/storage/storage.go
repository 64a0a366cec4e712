package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/knightfall/internal/platform/errors"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
)

// ErrNotFound indicates a requested save is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "save not found")

// ErrTampered indicates a signed save whose contents changed after signing.
var ErrTampered = apperrors.New(apperrors.CodeSaveTampered, "save signature mismatch")

// SaveRecord is one saved game.
type SaveRecord struct {
	GameID   string
	Round    int
	Phase    game.Phase
	Turn     int
	EventSeq uint64
	State    game.State
	// Digest is the hex SHA-256 of the serialized state.
	Digest string
	// Signature and KeyID are empty for unsigned saves.
	Signature string
	KeyID     string
	SavedAt   time.Time
}

// SaveSummary lists a save without loading its state.
type SaveSummary struct {
	GameID   string
	Round    int
	Phase    game.Phase
	Players  int
	EventSeq uint64
	Signed   bool
	SavedAt  time.Time
}

// SaveStore persists game states keyed by game id. Saving a game that
// already has a save replaces it.
type SaveStore interface {
	PutSave(ctx context.Context, st game.State) (SaveRecord, error)
	GetSave(ctx context.Context, gameID string) (SaveRecord, error)
	ListSaves(ctx context.Context, limit int) ([]SaveSummary, error)
	DeleteSave(ctx context.Context, gameID string) error
}
