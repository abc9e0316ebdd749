// Package config resolves gate inputs from the environment, an optional
// defaults file, and built-in defaults. A missing required input is a
// ConfigError: the gate must abort before any probe runs and before any
// report file is written.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPrefix for all input environment variables.
const EnvPrefix = "WIREGATE_"

// Input declares one named gate input.
type Input struct {
	Name     string
	Default  string
	Required bool
	Secret   bool // value is redacted in the emitted report
	Usage    string
}

// EnvVar returns the environment variable consulted for this input.
func (i Input) EnvVar() string {
	return EnvPrefix + strings.ToUpper(i.Name)
}

// ConfigError reports required inputs that could not be resolved.
type ConfigError struct {
	Gate    string
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("gate %s: missing required input(s): %s", e.Gate, strings.Join(e.Missing, ", "))
}

// Defaults maps gate id -> input name -> value, loaded from a YAML file.
type Defaults map[string]map[string]string

// LoadDefaults reads a YAML defaults file. A missing path yields empty
// defaults; an unreadable or malformed file is an error.
func LoadDefaults(path string) (Defaults, error) {
	if path == "" {
		return Defaults{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read defaults file: %w", err)
	}
	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse defaults file %s: %w", path, err)
	}
	if d == nil {
		d = Defaults{}
	}
	return d, nil
}

// Values holds the resolved inputs for one gate run.
type Values struct {
	values  map[string]string
	secrets map[string]bool
}

// Get returns the resolved value for name, or "" if the input is unknown.
func (v Values) Get(name string) string {
	return v.values[name]
}

// Map returns a copy of all resolved inputs.
func (v Values) Map() map[string]string {
	out := make(map[string]string, len(v.values))
	for k, val := range v.values {
		out[k] = val
	}
	return out
}

// Secrets returns the names of secret-flagged inputs.
func (v Values) Secrets() map[string]bool {
	out := make(map[string]bool, len(v.secrets))
	for k := range v.secrets {
		out[k] = true
	}
	return out
}

// Resolve builds the input set for a gate. Resolution order per input:
// process environment, defaults file entry for the gate, declared default.
// Every required input must resolve to a non-empty value or the whole run
// is rejected with a *ConfigError.
func Resolve(gate string, inputs []Input, defaults Defaults, getenv func(string) string) (Values, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	v := Values{
		values:  make(map[string]string, len(inputs)),
		secrets: make(map[string]bool),
	}

	var missing []string
	for _, in := range inputs {
		val := getenv(in.EnvVar())
		if val == "" {
			val = defaults[gate][in.Name]
		}
		if val == "" {
			val = in.Default
		}
		if val == "" && in.Required {
			missing = append(missing, in.Name)
			continue
		}
		v.values[in.Name] = val
		if in.Secret {
			v.secrets[in.Name] = true
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return Values{}, &ConfigError{Gate: gate, Missing: missing}
	}

	return v, nil
}

// Usage renders the input contract for a gate, printed to stderr when
// configuration fails.
func Usage(gate string, inputs []Input) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Usage: wiregate run %s\n\nInputs (environment variables):\n", gate)
	for _, in := range inputs {
		line := fmt.Sprintf("  %-32s %s", in.EnvVar(), in.Usage)
		if in.Required {
			line += " (required)"
		} else if in.Default != "" {
			line += fmt.Sprintf(" (default %q)", in.Default)
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}
