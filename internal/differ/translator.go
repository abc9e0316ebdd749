package differ

import (
	"fmt"
	"strings"

	"github.com/wI2L/jsondiff"
)

// Translate patch operations to english, one message per distinct change.
func Translate(patch jsondiff.Patch) []string {
	if len(patch) == 0 {
		return nil
	}

	var translations []string
	seen := make(map[string]bool)

	for _, op := range patch {
		msg := translateOperation(op)
		if msg != "" && !seen[msg] {
			seen[msg] = true
			translations = append(translations, msg)
		}
	}

	return translations
}

func translateOperation(op jsondiff.Operation) string {
	switch op.Type {
	case jsondiff.OperationAdd:
		return fmt.Sprintf("%s added at %s", leafName(op.Path), op.Path)
	case jsondiff.OperationRemove:
		return fmt.Sprintf("%s removed at %s", leafName(op.Path), op.Path)
	case jsondiff.OperationReplace:
		return fmt.Sprintf("%s changed at %s (now %s)", leafName(op.Path), op.Path, renderValue(op.Value))
	default:
		return ""
	}
}

// leafName labels the change by the last meaningful path segment.
func leafName(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		p := parts[i]
		if p == "" {
			continue
		}
		// array indices label as the parent field
		if isIndex(p) {
			continue
		}
		return "'" + p + "'"
	}
	return "value"
}

func isIndex(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func renderValue(v any) string {
	switch t := v.(type) {
	case string:
		return fmt.Sprintf("%q", t)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", t)
	}
}
