package models

// Policy rule severities.
const (
	PolicySeverityError = "error"
	PolicySeverityWarn  = "warn"
)

// PolicyConfig is a named set of CEL rules applied to a finished gate run.
type PolicyConfig struct {
	Name  string       `yaml:"name" json:"name"`
	Rules []PolicyRule `yaml:"rules" json:"rules"`
}

// PolicyRule single CEL expression
type PolicyRule struct {
	Name       string `yaml:"name" json:"name"`
	Expr       string `yaml:"expr" json:"expr"`
	Severity   string `yaml:"severity" json:"severity"`
	FailureMsg string `yaml:"failure_msg" json:"failure_msg"`
}

// PolicyResult evaluation outcome for one rule
type PolicyResult struct {
	RuleName   string `json:"rule_name"`
	Passed     bool   `json:"passed"`
	Severity   string `json:"severity"`
	FailureMsg string `json:"failure_msg,omitempty"`
}
