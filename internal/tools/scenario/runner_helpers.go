package scenario

import "strings"

func (r *Runner) failf(format string, args ...any) error {
	return r.assertions.Failf(format, args...)
}

func (r *Runner) assertf(format string, args ...any) error {
	return r.assertions.Assertf(format, args...)
}

func (r *Runner) ensureGame(state *scenarioState) error {
	if !state.started {
		return r.failf("game is required")
	}
	return nil
}

func requiredString(args map[string]any, key string) string {
	text, _ := args[key].(string)
	return strings.TrimSpace(text)
}

func readInt(args map[string]any, key string) (int, bool) {
	switch typed := args[key].(type) {
	case int:
		return typed, true
	case float64:
		return int(typed), true
	default:
		return 0, false
	}
}

func optionalString(args map[string]any, key, fallback string) string {
	if text := requiredString(args, key); text != "" {
		return text
	}
	return fallback
}

func optionalInt(args map[string]any, key string, fallback int) int {
	if value, ok := readInt(args, key); ok {
		return value
	}
	return fallback
}

func readBool(args map[string]any, key string) (bool, bool) {
	switch typed := args[key].(type) {
	case bool:
		return typed, true
	case string:
		switch strings.ToLower(strings.TrimSpace(typed)) {
		case "true", "yes", "1":
			return true, true
		case "false", "no", "0":
			return false, true
		}
	}
	return false, false
}

func readStringSlice(args map[string]any, key string) []string {
	return toStrings(args[key])
}

// toStrings keeps the non-empty strings of a Lua list.
func toStrings(value any) []string {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	results := make([]string, 0, len(list))
	for _, entry := range list {
		text, ok := entry.(string)
		if !ok {
			continue
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}
