// Package event defines the event envelope emitted for every accepted action
// and undo, plus the registry of known event types.
//
// Events are informational. The authoritative record is the game state the
// commands produce; events let hosts animate, log, and notify without
// diffing states.
package event
