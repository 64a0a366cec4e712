package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
	"github.com/louisbranch/knightfall/internal/services/game/storage"
	"github.com/louisbranch/knightfall/internal/services/game/storage/integrity"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// PutSave stores st under its game id, replacing any earlier save.
func (s *Store) PutSave(ctx context.Context, st game.State) (storage.SaveRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.SaveRecord{}, err
	}
	if strings.TrimSpace(st.ID) == "" {
		return storage.SaveRecord{}, fmt.Errorf("game id is required")
	}

	data, err := json.Marshal(st)
	if err != nil {
		return storage.SaveRecord{}, fmt.Errorf("encode state: %w", err)
	}
	rec := storage.SaveRecord{
		GameID:   st.ID,
		Round:    st.Round,
		Phase:    st.Phase,
		Turn:     st.Turn,
		EventSeq: st.EventSeq,
		State:    st.Clone(),
		Digest:   integrity.Digest(data),
		SavedAt:  s.now().UTC(),
	}
	if s.keyring != nil {
		rec.Signature, rec.KeyID, err = s.keyring.SignState(rec.GameID, rec.Digest)
		if err != nil {
			return storage.SaveRecord{}, fmt.Errorf("sign save: %w", err)
		}
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO saves (game_id, round, phase, turn, players, event_seq, state_json, digest, signature, key_id, saved_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (game_id) DO UPDATE SET
    round = excluded.round,
    phase = excluded.phase,
    turn = excluded.turn,
    players = excluded.players,
    event_seq = excluded.event_seq,
    state_json = excluded.state_json,
    digest = excluded.digest,
    signature = excluded.signature,
    key_id = excluded.key_id,
    saved_at = excluded.saved_at`,
		rec.GameID, rec.Round, string(rec.Phase), rec.Turn, len(st.Players), int64(rec.EventSeq),
		data, rec.Digest, rec.Signature, rec.KeyID, toMillis(rec.SavedAt),
	)
	if err != nil {
		return storage.SaveRecord{}, fmt.Errorf("put save: %w", err)
	}
	return rec, nil
}

// GetSave loads the save for gameID and checks its digest and, when the
// store has a keyring, its signature.
func (s *Store) GetSave(ctx context.Context, gameID string) (storage.SaveRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.SaveRecord{}, err
	}
	if strings.TrimSpace(gameID) == "" {
		return storage.SaveRecord{}, fmt.Errorf("game id is required")
	}

	var (
		rec      storage.SaveRecord
		phase    string
		eventSeq int64
		data     []byte
		savedAt  int64
	)
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT game_id, round, phase, turn, event_seq, state_json, digest, signature, key_id, saved_at
FROM saves WHERE game_id = ?`, gameID).Scan(
		&rec.GameID, &rec.Round, &phase, &rec.Turn, &eventSeq, &data,
		&rec.Digest, &rec.Signature, &rec.KeyID, &savedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.SaveRecord{}, storage.ErrNotFound
		}
		return storage.SaveRecord{}, fmt.Errorf("get save: %w", err)
	}
	rec.Phase = game.Phase(phase)
	rec.EventSeq = uint64(eventSeq)
	rec.SavedAt = fromMillis(savedAt)

	if err := s.verify(rec, data); err != nil {
		return storage.SaveRecord{}, err
	}
	if err := json.Unmarshal(data, &rec.State); err != nil {
		return storage.SaveRecord{}, fmt.Errorf("decode state: %w", err)
	}
	return rec, nil
}

func (s *Store) verify(rec storage.SaveRecord, data []byte) error {
	if integrity.Digest(data) != rec.Digest {
		return fmt.Errorf("save %s: digest mismatch: %w", rec.GameID, storage.ErrTampered)
	}
	if s.keyring == nil {
		return nil
	}
	if rec.Signature == "" {
		return fmt.Errorf("save %s: unsigned: %w", rec.GameID, storage.ErrTampered)
	}
	err := s.keyring.VerifyState(rec.GameID, rec.Digest, rec.Signature, rec.KeyID)
	if errors.Is(err, integrity.ErrSignatureMismatch) {
		return fmt.Errorf("save %s: %w", rec.GameID, storage.ErrTampered)
	}
	if err != nil {
		return fmt.Errorf("verify save %s: %w", rec.GameID, err)
	}
	return nil
}

// ListSaves returns the most recently saved games first.
func (s *Store) ListSaves(ctx context.Context, limit int) ([]storage.SaveSummary, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT game_id, round, phase, players, event_seq, signature, saved_at
FROM saves ORDER BY saved_at DESC, game_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	var out []storage.SaveSummary
	for rows.Next() {
		var (
			sum       storage.SaveSummary
			phase     string
			eventSeq  int64
			signature string
			savedAt   int64
		)
		if err := rows.Scan(&sum.GameID, &sum.Round, &phase, &sum.Players, &eventSeq, &signature, &savedAt); err != nil {
			return nil, fmt.Errorf("scan save: %w", err)
		}
		sum.Phase = game.Phase(phase)
		sum.EventSeq = uint64(eventSeq)
		sum.Signed = signature != ""
		sum.SavedAt = fromMillis(savedAt)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	return out, nil
}

// DeleteSave removes the save for gameID.
func (s *Store) DeleteSave(ctx context.Context, gameID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(gameID) == "" {
		return fmt.Errorf("game id is required")
	}
	res, err := s.sqlDB.ExecContext(ctx, "DELETE FROM saves WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("delete save: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete save: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
