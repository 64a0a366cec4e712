package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/knightfall/internal/services/game/domain/action"
	"github.com/louisbranch/knightfall/internal/services/game/domain/catalog"
	"github.com/louisbranch/knightfall/internal/services/game/domain/command"
	"github.com/louisbranch/knightfall/internal/services/game/domain/engine"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
	"github.com/louisbranch/knightfall/internal/services/game/storage"
	"github.com/louisbranch/knightfall/internal/services/game/storage/integrity"
)

var savedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testKeyring(t *testing.T) *integrity.Keyring {
	t.Helper()
	keyring, err := integrity.NewKeyring(
		map[string][]byte{"test-key-1": []byte("0123456789abcdef0123456789abcdef")},
		"test-key-1",
	)
	if err != nil {
		t.Fatalf("create test keyring: %v", err)
	}
	return keyring
}

func openTestStore(t *testing.T, path string, opts ...Option) *Store {
	t.Helper()
	if path == "" {
		path = filepath.Join(t.TempDir(), "saves.sqlite")
	}
	clock := savedAt
	opts = append([]Option{WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})}, opts...)
	store, err := Open(context.Background(), path, opts...)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newState(t *testing.T, id string) game.State {
	t.Helper()
	st, err := game.New(game.Setup{ID: id, PlayerIDs: []string{"p1", "p2"}, Seed: 5}, catalog.Static())
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return st
}

func mustJSON(t *testing.T, st game.State) string {
	t.Helper()
	data, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}
	return string(data)
}

func TestOpenRequiresPath(t *testing.T) {
	for _, path := range []string{"", "   "} {
		if _, err := Open(context.Background(), path); err == nil {
			t.Fatalf("Open(%q) expected error", path)
		}
	}
}

func TestCloseNilStore(t *testing.T) {
	var store *Store
	if err := store.Close(); err != nil {
		t.Fatalf("close nil store: %v", err)
	}
	if _, err := store.GetSave(context.Background(), "g1"); err == nil {
		t.Fatal("expected error for nil store")
	}
}

func TestPutGetSave(t *testing.T) {
	store := openTestStore(t, "")
	ctx := context.Background()
	st := newState(t, "g1")
	st.EventSeq = 42

	rec, err := store.PutSave(ctx, st)
	if err != nil {
		t.Fatalf("put save: %v", err)
	}
	if rec.Signature != "" || rec.KeyID != "" {
		t.Fatalf("unsigned store produced signature %q/%q", rec.Signature, rec.KeyID)
	}

	got, err := store.GetSave(ctx, "g1")
	if err != nil {
		t.Fatalf("get save: %v", err)
	}
	if mustJSON(t, got.State) != mustJSON(t, st) {
		t.Fatal("loaded state differs from saved state")
	}
	if got.EventSeq != 42 || got.Round != st.Round || got.Phase != st.Phase {
		t.Fatalf("record = %+v", got)
	}
	if !got.SavedAt.Equal(savedAt.Add(time.Minute)) {
		t.Fatalf("saved at = %v, want %v", got.SavedAt, savedAt.Add(time.Minute))
	}
	if got.Digest != rec.Digest {
		t.Fatalf("digest = %s, want %s", got.Digest, rec.Digest)
	}
}

func TestPutSaveReplaces(t *testing.T) {
	store := openTestStore(t, "")
	ctx := context.Background()
	st := newState(t, "g1")
	if _, err := store.PutSave(ctx, st); err != nil {
		t.Fatalf("put save: %v", err)
	}
	st.Round = 3
	if _, err := store.PutSave(ctx, st); err != nil {
		t.Fatalf("put save again: %v", err)
	}

	got, err := store.GetSave(ctx, "g1")
	if err != nil {
		t.Fatalf("get save: %v", err)
	}
	if got.Round != 3 || got.State.Round != 3 {
		t.Fatalf("round = %d/%d, want 3", got.Round, got.State.Round)
	}
	list, err := store.ListSaves(ctx, 0)
	if err != nil {
		t.Fatalf("list saves: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("saves = %d, want 1", len(list))
	}
}

func TestPutSaveRequiresGameID(t *testing.T) {
	store := openTestStore(t, "")
	if _, err := store.PutSave(context.Background(), game.State{}); err == nil {
		t.Fatal("expected error for missing game id")
	}
}

func TestGetSaveNotFound(t *testing.T) {
	store := openTestStore(t, "")
	_, err := store.GetSave(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get save error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestSignedSave(t *testing.T) {
	store := openTestStore(t, "", WithKeyring(testKeyring(t)))
	ctx := context.Background()

	rec, err := store.PutSave(ctx, newState(t, "g1"))
	if err != nil {
		t.Fatalf("put save: %v", err)
	}
	if rec.Signature == "" || rec.KeyID != "test-key-1" {
		t.Fatalf("signature = %q key = %q", rec.Signature, rec.KeyID)
	}
	if _, err := store.GetSave(ctx, "g1"); err != nil {
		t.Fatalf("get signed save: %v", err)
	}
	list, err := store.ListSaves(ctx, 10)
	if err != nil {
		t.Fatalf("list saves: %v", err)
	}
	if len(list) != 1 || !list[0].Signed || list[0].Players != 2 {
		t.Fatalf("list = %+v", list)
	}
}

func TestGetSaveDetectsTampering(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		update string
	}{
		{name: "edited state", update: "UPDATE saves SET state_json = CAST(state_json AS TEXT) || ' '"},
		{name: "edited state and digest", update: "UPDATE saves SET state_json = 'null', digest = '74234e98afe7498fb5daf1f36ac2d78acc339464f950703b8c019892f982b90b'"},
		{name: "stripped signature", update: "UPDATE saves SET signature = '', key_id = ''"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openTestStore(t, "", WithKeyring(testKeyring(t)))
			if _, err := store.PutSave(ctx, newState(t, "g1")); err != nil {
				t.Fatalf("put save: %v", err)
			}
			if _, err := store.sqlDB.ExecContext(ctx, tt.update); err != nil {
				t.Fatalf("tamper: %v", err)
			}
			_, err := store.GetSave(ctx, "g1")
			if !errors.Is(err, storage.ErrTampered) {
				t.Fatalf("get save error = %v, want %v", err, storage.ErrTampered)
			}
		})
	}
}

func TestUnsignedSaveRejectedOnceKeyringConfigured(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "saves.sqlite")

	unsigned := openTestStore(t, path)
	if _, err := unsigned.PutSave(ctx, newState(t, "g1")); err != nil {
		t.Fatalf("put save: %v", err)
	}
	if err := unsigned.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	signed := openTestStore(t, path, WithKeyring(testKeyring(t)))
	_, err := signed.GetSave(ctx, "g1")
	if !errors.Is(err, storage.ErrTampered) {
		t.Fatalf("get save error = %v, want %v", err, storage.ErrTampered)
	}
}

func TestListSavesNewestFirst(t *testing.T) {
	store := openTestStore(t, "")
	ctx := context.Background()
	for _, id := range []string{"g1", "g2", "g3"} {
		if _, err := store.PutSave(ctx, newState(t, id)); err != nil {
			t.Fatalf("put save %s: %v", id, err)
		}
	}

	list, err := store.ListSaves(ctx, 2)
	if err != nil {
		t.Fatalf("list saves: %v", err)
	}
	if len(list) != 2 || list[0].GameID != "g3" || list[1].GameID != "g2" {
		t.Fatalf("list = %+v, want g3, g2", list)
	}
	if list[0].Signed {
		t.Fatal("unsigned save listed as signed")
	}
}

func TestDeleteSave(t *testing.T) {
	store := openTestStore(t, "")
	ctx := context.Background()
	if _, err := store.PutSave(ctx, newState(t, "g1")); err != nil {
		t.Fatalf("put save: %v", err)
	}
	if err := store.DeleteSave(ctx, "g1"); err != nil {
		t.Fatalf("delete save: %v", err)
	}
	if _, err := store.GetSave(ctx, "g1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get deleted save error = %v, want %v", err, storage.ErrNotFound)
	}
	if err := store.DeleteSave(ctx, "g1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("delete missing save error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestSessionRoundTripDropsHistory(t *testing.T) {
	store := openTestStore(t, "", WithKeyring(testKeyring(t)))
	ctx := context.Background()
	d, err := engine.NewDispatcher(catalog.Static())
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	s, err := d.NewSession(game.Setup{ID: "g1", PlayerIDs: []string{"p1", "p2"}, Seed: 11})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	s.State.Players[0].Hand = []string{"march", "promises", "tranquility", "rage", "stamina"}
	res, err := d.Dispatch(ctx, s, "p1", action.PlayCard{CardID: "march"})
	if err != nil || !res.Accepted() {
		t.Fatalf("play march: %v %+v", err, res.Validation)
	}
	if !res.Session.CanUndo() {
		t.Fatal("expected undo history before saving")
	}

	if _, err := storage.SaveSession(ctx, store, res.Session); err != nil {
		t.Fatalf("save session: %v", err)
	}
	loaded, err := storage.LoadSession(ctx, store, d, "g1")
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if loaded.CanUndo() {
		t.Fatal("loaded session kept undo history")
	}
	if got := loaded.History.Checkpoint().Reason; got != command.ReasonSessionRestored {
		t.Fatalf("checkpoint = %s, want %s", got, command.ReasonSessionRestored)
	}
	if mustJSON(t, loaded.State) != mustJSON(t, res.Session.State) {
		t.Fatal("loaded state differs from saved state")
	}
	if _, err := storage.LoadSession(ctx, store, d, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("load missing error = %v, want %v", err, storage.ErrNotFound)
	}
}
