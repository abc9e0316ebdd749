package report

import (
	"regexp"
	"strings"
)

const redactedValue = "[REDACTED]"

// sensitivePrefixes are value prefixes indicating credential material that
// must never land in a report, whatever the input is called.
var sensitivePrefixes = []string{
	"AKIA",   // AWS access key
	"ASIA",   // AWS temporary access key
	"ghp_",   // GitHub PAT
	"xoxb-",  // Slack bot token
	"sk-",    // generic secret key
	"ya29.",  // Google OAuth
	"eyJhb",  // JWT header
	"SharedAccessSignature",
}

// longSecretRegex matches long opaque strings that look like secrets.
var longSecretRegex = regexp.MustCompile(`^[A-Za-z0-9+/=_-]{40,}$`)

// RedactInputs copies the input map, replacing secret-flagged values and
// values that pattern-match as credentials. The original map is untouched.
func RedactInputs(inputs map[string]string, secrets map[string]bool) map[string]string {
	out := make(map[string]string, len(inputs))
	for k, v := range inputs {
		if secrets[k] || looksSensitive(v) {
			out[k] = redactedValue
			continue
		}
		out[k] = v
	}
	return out
}

func looksSensitive(value string) bool {
	for _, prefix := range sensitivePrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	// conservative: paths, URLs, and ARNs carry slashes or dots
	if len(value) >= 40 && !strings.ContainsAny(value, "/.:") {
		return longSecretRegex.MatchString(value)
	}
	return false
}
