package scenario

import (
	"github.com/louisbranch/knightfall/internal/services/game/domain/engine"
	"github.com/louisbranch/knightfall/internal/services/game/storage"
)

// runnerDeps bundles injectable dependencies for runner construction.
type runnerDeps struct {
	dispatcher *engine.Dispatcher
	store      storage.SaveStore
	closer     func() error
}
