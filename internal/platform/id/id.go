package id

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Kinds of identifier.
const (
	KindGame   = "game"
	KindPlayer = "player"
)

// New returns a fresh identifier with the given kind prefix.
func New(kind string) (string, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" || strings.ContainsAny(kind, "_ ") {
		return "", fmt.Errorf("invalid id kind %q", kind)
	}
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return kind + "_" + strings.ToLower(encoding.EncodeToString(value[:])), nil
}

// Kind returns the prefix of an identifier produced by New.
func Kind(value string) (string, bool) {
	kind, suffix, ok := strings.Cut(value, "_")
	if !ok || kind == "" || len(suffix) != 26 {
		return "", false
	}
	return kind, true
}
