// Package timeouts defines shared timeout constants used by the command
// line tools.
package timeouts

import "time"

// ScenarioStep caps a single scenario step, including its dispatch and any
// save store writes.
const ScenarioStep = 10 * time.Second

// Shutdown limits how long exporters may flush during shutdown.
const Shutdown = 5 * time.Second
