package scenario

import (
	"fmt"
	"log"
)

// AssertionMode selects how failed expectations are reported.
type AssertionMode int

const (
	// AssertionStrict stops the scenario at the first failed expectation.
	AssertionStrict AssertionMode = iota
	// AssertionLogOnly logs failed expectations and keeps going.
	AssertionLogOnly
)

func (m AssertionMode) String() string {
	switch m {
	case AssertionStrict:
		return "strict"
	case AssertionLogOnly:
		return "log-only"
	default:
		return fmt.Sprintf("AssertionMode(%d)", int(m))
	}
}

// Assertions reports scenario failures according to Mode.
type Assertions struct {
	Mode   AssertionMode
	Logger *log.Logger
}

// Failf reports a failure that stops the scenario in every mode, such as a
// malformed step.
func (a Assertions) Failf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Assertf reports a failed expectation. In log-only mode it is logged and
// nil is returned.
func (a Assertions) Assertf(format string, args ...any) error {
	if a.Mode == AssertionLogOnly {
		if a.Logger != nil {
			a.Logger.Printf("expectation failed: "+format, args...)
		}
		return nil
	}
	return fmt.Errorf(format, args...)
}
