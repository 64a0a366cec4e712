// Package storage defines how saved games are persisted.
//
// A save holds the persistence projection of a session: the game state
// without its undo history. Implementations live in subpackages.
//
// Common error types:
//   - ErrNotFound: no save exists for the game id
//   - ErrTampered: a signed save no longer matches its signature
package storage
