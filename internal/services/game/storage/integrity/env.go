package integrity

import (
	"fmt"
	"strings"

	"github.com/louisbranch/knightfall/internal/platform/config"
)

const defaultKeyID = "v1"

// EnvConfig names the environment variables that configure save signing.
// Keys is a comma separated list of id=secret pairs and wins over Key.
type EnvConfig struct {
	Key   string `env:"KNIGHTFALL_SAVE_HMAC_KEY"`
	Keys  string `env:"KNIGHTFALL_SAVE_HMAC_KEYS"`
	KeyID string `env:"KNIGHTFALL_SAVE_HMAC_KEY_ID"`
}

// KeyringFromEnv loads the signing keyring from the environment. It
// returns nil without error when no key is configured, which leaves saves
// unsigned.
func KeyringFromEnv() (*Keyring, error) {
	var cfg EnvConfig
	if err := config.ParseEnv(&cfg); err != nil {
		return nil, err
	}
	return cfg.Keyring()
}

// Keyring builds the keyring cfg describes.
func (cfg EnvConfig) Keyring() (*Keyring, error) {
	keyID := strings.TrimSpace(cfg.KeyID)
	if keyID == "" {
		keyID = defaultKeyID
	}

	keySpec := strings.TrimSpace(cfg.Keys)
	if keySpec == "" {
		raw := strings.TrimSpace(cfg.Key)
		if raw == "" {
			return nil, nil
		}
		return NewKeyring(map[string][]byte{keyID: []byte(raw)}, keyID)
	}

	keys := make(map[string][]byte)
	for _, entry := range strings.Split(keySpec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		id, value, ok := strings.Cut(entry, "=")
		id, value = strings.TrimSpace(id), strings.TrimSpace(value)
		if !ok || id == "" || value == "" {
			return nil, fmt.Errorf("invalid KNIGHTFALL_SAVE_HMAC_KEYS entry %q", entry)
		}
		keys[id] = []byte(value)
	}
	return NewKeyring(keys, keyID)
}
