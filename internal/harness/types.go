package harness

import (
	"github.com/roach88/lexc/internal/compiler"
	"github.com/roach88/lexc/internal/lexicon"
)

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every assertion holds.
	Pass bool `json:"pass"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Compile is the compilation the assertions ran against.
	Compile *compiler.Result `json:"-"`

	// Lexicon is the read-only view over Compile.Table.
	Lexicon *lexicon.Lexicon `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
