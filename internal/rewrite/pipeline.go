package rewrite

import "fmt"

// Pipeline is a named, ordered list of rules.
type Pipeline struct {
	Name  string
	Rules []Rule
}

// New returns a pipeline over rules.
func New(name string, rules ...Rule) *Pipeline {
	return &Pipeline{Name: name, Rules: rules}
}

// Spec is the declarative form of a rule, as loaded from configuration.
type Spec struct {
	Match   string
	Replace string
	Scope   Scope
}

// Compile builds a pipeline from declarative specs.
// The first invalid pattern aborts compilation with its index.
func Compile(name string, specs []Spec) (*Pipeline, error) {
	rules := make([]Rule, 0, len(specs))
	for i, s := range specs {
		r, err := NewRule(s.Match, s.Replace, s.Scope)
		if err != nil {
			return nil, fmt.Errorf("pipeline %q: rule[%d]: %w", name, i, err)
		}
		rules = append(rules, r)
	}
	return New(name, rules...), nil
}

// Apply runs every rule in order over the whole current string.
func (p *Pipeline) Apply(s string) string {
	for _, r := range p.Rules {
		s = r.Apply(s)
	}
	return s
}

// Then returns a new pipeline running p's rules followed by rules.
func (p *Pipeline) Then(rules ...Rule) *Pipeline {
	combined := make([]Rule, 0, len(p.Rules)+len(rules))
	combined = append(combined, p.Rules...)
	combined = append(combined, rules...)
	return New(p.Name, combined...)
}

// Step records the string after one rule fired.
type Step struct {
	Rule   Rule
	Output string
}

// Changed reports whether the step altered its input.
func (s Step) Changed(input string) bool {
	return s.Output != input
}

// Trace applies the pipeline and records the output of every rule.
// The last step's output equals Apply(s).
func (p *Pipeline) Trace(s string) []Step {
	steps := make([]Step, 0, len(p.Rules))
	for _, r := range p.Rules {
		s = r.Apply(s)
		steps = append(steps, Step{Rule: r, Output: s})
	}
	return steps
}
