package getsafe

import "strconv"

func String(payload map[string]any, key string) string {
	if v, ok := payload[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Float coerces numeric metadata that may arrive as a JSON number or a
// numeric string. Anything else yields 0.
func Float(payload map[string]any, key string) float64 {
	v, ok := payload[key]
	if !ok {
		return 0
	}

	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}

	return 0
}

// Bool coerces boolean metadata that may arrive as a JSON bool or a
// yes/no string, falling back to def when absent or unreadable.
func Bool(payload map[string]any, key string, def bool) bool {
	v, ok := payload[key]
	if !ok {
		return def
	}

	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch b {
		case "true", "yes", "True", "Yes":
			return true
		case "false", "no", "False", "No":
			return false
		}
	}

	return def
}
