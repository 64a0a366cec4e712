// Package config holds the shared configuration helpers used by every entry
// point: environment parsing, struct validation, and fatal exits.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses env into target and validates its struct tags.
func Load(target any) error {
	if err := ParseEnv(target); err != nil {
		return err
	}
	return Validate(target)
}
