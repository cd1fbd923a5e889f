package objutil

import (
	"encoding/json"
	"strings"
)

// Kind names a JSON value kind accepted by ParseList.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindObject  Kind = "object"
)

// ParseList decodes each value of list as JSON, after turning single quotes
// into double quotes so attribute values like "{'a': 1}" parse. A value
// that does not decode, or whose kind is not among kinds (when given), is
// kept as the original string.
func ParseList(list map[string]string, kinds ...Kind) map[string]any {
	out := make(map[string]any, len(list))
	for name, raw := range list {
		var value any
		if err := json.Unmarshal([]byte(strings.ReplaceAll(raw, "'", `"`)), &value); err != nil {
			out[name] = raw
			continue
		}
		if len(kinds) > 0 && !hasKind(kinds, kindOf(value)) {
			out[name] = raw
			continue
		}
		out[name] = value
	}
	return out
}

func kindOf(v any) Kind {
	switch v.(type) {
	case string:
		return KindString
	case float64:
		return KindNumber
	case bool:
		return KindBoolean
	default:
		// objects, arrays and null
		return KindObject
	}
}

func hasKind(kinds []Kind, k Kind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// ID derives a page id from a URL path: leading and trailing slashes are
// removed and the remaining slashes become dashes. The root path is ".".
func ID(path string) string {
	id := strings.TrimPrefix(path, "/")
	id = strings.TrimSuffix(id, "/")
	id = strings.ReplaceAll(id, "/", "-")
	if id == "" {
		return "."
	}
	return id
}
