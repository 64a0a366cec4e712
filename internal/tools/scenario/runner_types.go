package scenario

import "github.com/louisbranch/knightfall/internal/services/game/domain/engine"

type scenarioState struct {
	session engine.Session
	started bool
	// last is the result of the most recent action step.
	last     engine.Result
	lastStep string
}
