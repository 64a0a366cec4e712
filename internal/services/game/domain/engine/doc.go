// Package engine dispatches player actions against a game session.
//
// A dispatch validates the action, builds its commands, executes them in
// order and records each on the session's undo history. Events come back
// numbered from the state's event counter. Rule violations are returned as
// a rejected validator.Result; any returned error is an invariant violation
// and leaves the session unchanged.
//
// Sessions are values. Hosts serialize calls per session and keep whichever
// session the last call returned.
package engine
