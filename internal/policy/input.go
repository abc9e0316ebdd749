package policy

// BuildInput converts a gate run into the map view CEL rules evaluate over.
// List and map arguments are passed through as-is; callers hand in the
// recorder's copies.
func BuildInput(gateID, region string, inputs, observed map[string]string, details, warnings, failures []string) map[string]any {
	return map[string]any{
		"gate":          gateID,
		"region":        region,
		"inputs":        toAnyMap(inputs),
		"observed":      toAnyMap(observed),
		"details":       toAnyList(details),
		"warnings":      toAnyList(warnings),
		"failures":      toAnyList(failures),
		"detail_count":  len(details),
		"warning_count": len(warnings),
		"failure_count": len(failures),
	}
}

func toAnyMap(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func toAnyList(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
