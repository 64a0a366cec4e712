package migrations

import "embed"

// SavesFS holds the save store schema under saves/.
//
//go:embed saves/*.sql
var SavesFS embed.FS
