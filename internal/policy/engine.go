package policy

import (
	"fmt"
	"os"

	"github.com/google/cel-go/cel"
	"github.com/wiregate/wiregate/internal/models"
	"gopkg.in/yaml.v3"
)

// Engine evaluates CEL rules against a finished gate run.
type Engine struct {
	env *cel.Env
}

func NewEngine() (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Variable("input", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	return &Engine{env: env}, nil
}

// Evaluate runs every rule against the input. Rule compile/eval problems are
// reported as failed results rather than aborting the gate: a broken policy
// must not hide probe evidence.
func (e *Engine) Evaluate(config *models.PolicyConfig, input map[string]any) []models.PolicyResult {
	results := make([]models.PolicyResult, 0, len(config.Rules))

	for _, rule := range config.Rules {
		results = append(results, e.evaluateRule(rule, input))
	}

	return results
}

func (e *Engine) evaluateRule(rule models.PolicyRule, input map[string]any) models.PolicyResult {
	severity := rule.Severity
	if severity == "" {
		severity = models.PolicySeverityError
	}

	ast, issues := e.env.Compile(rule.Expr)
	if issues != nil && issues.Err() != nil {
		return models.PolicyResult{
			RuleName:   rule.Name,
			Passed:     false,
			Severity:   severity,
			FailureMsg: fmt.Sprintf("CEL compile error: %v", issues.Err()),
		}
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return models.PolicyResult{
			RuleName:   rule.Name,
			Passed:     false,
			Severity:   severity,
			FailureMsg: fmt.Sprintf("CEL program error: %v", err),
		}
	}

	out, _, err := prg.Eval(map[string]any{"input": input})
	if err != nil {
		return models.PolicyResult{
			RuleName:   rule.Name,
			Passed:     false,
			Severity:   severity,
			FailureMsg: fmt.Sprintf("CEL evaluation error: %v", err),
		}
	}

	passed, ok := out.Value().(bool)
	if !ok {
		return models.PolicyResult{
			RuleName:   rule.Name,
			Passed:     false,
			Severity:   severity,
			FailureMsg: fmt.Sprintf("rule expression must return boolean, got %T", out.Value()),
		}
	}

	result := models.PolicyResult{
		RuleName: rule.Name,
		Passed:   passed,
		Severity: severity,
	}
	if !passed {
		result.FailureMsg = rule.FailureMsg
	}

	return result
}

// Load resolves a policy reference: a preset name or a YAML file path.
func Load(ref string) (*models.PolicyConfig, error) {
	if preset := GetPreset(ref); preset != nil {
		return preset, nil
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("policy %q is neither a preset nor a readable file: %w", ref, err)
	}

	var config models.PolicyConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse policy file %s: %w", ref, err)
	}
	return &config, nil
}
