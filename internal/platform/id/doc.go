// Package id generates identifiers for games and players.
//
// An identifier is a short kind prefix, an underscore and a UUIDv4 encoded
// as lowercase unpadded base32, for example "game_3q2x...". The suffix is
// always 26 characters and safe in URLs and file names.
package id
