// Package integrity signs saved games so a store can detect edits made
// outside the engine.
//
// A save is hashed with SHA-256 and the digest is signed with an HMAC key
// derived per game from a root key. Root keys are identified by id so old
// saves still verify after the active key rotates.
package integrity
