package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/knightfall/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/knightfall/internal/services/game/storage"
	"github.com/louisbranch/knightfall/internal/services/game/storage/integrity"
	"github.com/louisbranch/knightfall/internal/services/game/storage/sqlite/migrations"
)

var _ storage.SaveStore = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store is a SQLite-backed save store.
type Store struct {
	sqlDB   *sql.DB
	keyring *integrity.Keyring
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithKeyring signs saves on write and verifies them on read.
func WithKeyring(keyring *integrity.Keyring) Option {
	return func(s *Store) {
		s.keyring = keyring
	}
}

// WithClock overrides the clock used for SavedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open opens the save store at path, creating and migrating it as needed.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.Apply(ctx, sqlDB, migrations.SavesFS, "saves"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate saves: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store, nil
}

// Close closes the underlying database. It is safe on a nil store.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}
