// Package sqlite implements the save-game store on SQLite.
//
// Saves are stored as JSON next to a few denormalized columns used for
// listing. When a keyring is configured every save is signed on write and
// verified on read.
package sqlite
