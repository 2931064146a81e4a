package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/lexc/internal/derive"
	"github.com/roach88/lexc/internal/ir"
)

// Validation error codes (E100-E199)
const (
	ErrInvalidKey      = "E101" // key is not a token translate can address
	ErrNoFormation     = "E102" // no form, derivation or formula
	ErrFormulaConflict = "E103" // both compound and idiom given
	ErrEmptyFormula    = "E104" // formula or one of its references is empty
	ErrDuplicateKey    = "E105" // key defined twice
	ErrUnknownFamily   = "E106" // derive names an unregistered family
	ErrMissingSource   = "E107" // derive without a source citation
	ErrInvalidForm     = "E108" // literal root form contains whitespace
)

// keyPattern is the token grammar translate can address: a lowercase
// identifier, optionally opening a clause ("which{"), or a control symbol.
var keyPattern = regexp.MustCompile(`^(?:[a-z_][a-z0-9_]*\{?|[\[\]}*#,])$`)

// ValidationError represents a definition that cannot enter the table.
type ValidationError struct {
	Key     string `json:"key,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Origin  string `json:"origin,omitempty"`

	// Index is the position of the offending definition in the input.
	Index int `json:"-"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Origin != "" {
		return fmt.Sprintf("[%s] %s: %s: %s", e.Code, e.Origin, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Diagnostic converts the error onto the diagnostics stream.
func (e ValidationError) Diagnostic() ir.Diagnostic {
	return ir.Diagnostic{
		Code:     e.Code,
		Severity: ir.SeverityError,
		Key:      e.Key,
		Message:  fmt.Sprintf("%s: %s", e.Field, e.Message),
	}
}

// ValidateDefs checks every definition against the ingestion rules.
// Returns all errors found (does not fail-fast), in definition order.
// A nil registry skips the family check.
func ValidateDefs(defs []ir.EntryDef, families *derive.Registry) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(defs))

	for i, def := range defs {
		for _, err := range validateDef(def, families) {
			err.Index = i
			errs = append(errs, err)
		}

		// E105: duplicate key
		if seen[def.Key] {
			errs = append(errs, ValidationError{
				Key:     def.Key,
				Field:   fieldPath(def.Key, "key"),
				Message: fmt.Sprintf("duplicate entry key %q", def.Key),
				Code:    ErrDuplicateKey,
				Origin:  def.Origin,
				Index:   i,
			})
		}
		seen[def.Key] = true
	}

	return errs
}

// validateDef validates a single definition.
func validateDef(def ir.EntryDef, families *derive.Registry) []ValidationError {
	var errs []ValidationError
	add := func(field, code, format string, args ...any) {
		errs = append(errs, ValidationError{
			Key:     def.Key,
			Field:   fieldPath(def.Key, field),
			Message: fmt.Sprintf(format, args...),
			Code:    code,
			Origin:  def.Origin,
		})
	}

	// E101: key grammar
	if !keyPattern.MatchString(def.Key) {
		add("key", ErrInvalidKey, "key %q must match %s", def.Key, keyPattern.String())
	}

	// E102: something must produce a form
	if !def.HasRoot() && def.Compound == nil && def.Idiom == nil {
		add("form", ErrNoFormation, "one of form, derive, compound or idiom is required")
	}

	// E103: at most one formula
	if def.Compound != nil && def.Idiom != nil {
		add("idiom", ErrFormulaConflict, "compound and idiom are mutually exclusive")
	}

	// E104: formulas must be non-empty, and so must each reference
	for _, f := range []struct {
		name string
		refs []ir.ComponentRef
	}{{"compound", def.Compound}, {"idiom", def.Idiom}} {
		if f.refs == nil {
			continue
		}
		if len(f.refs) == 0 {
			add(f.name, ErrEmptyFormula, "%s must list at least one component", f.name)
		}
		for i, r := range f.refs {
			if r.Key == "" {
				add(fmt.Sprintf("%s[%d]", f.name, i), ErrEmptyFormula, "empty component reference")
			}
		}
	}

	// E106, E107: derivation needs a known family and a citation
	if def.Derive != "" {
		if families != nil {
			if _, ok := families.Lookup(def.Derive); !ok {
				add("derive", ErrUnknownFamily, "unknown derivation family %q (known: %s)",
					def.Derive, strings.Join(families.Names(), ", "))
			}
		}
		if strings.TrimSpace(def.Source) == "" {
			add("source", ErrMissingSource, "derive %q requires a source citation", def.Derive)
		}
	}

	// E108: a literal root is a single word
	if def.Form != "" && strings.ContainsAny(def.Form, " \t\n") {
		add("form", ErrInvalidForm, "form %q must be a single word", def.Form)
	}

	return errs
}

func fieldPath(key, field string) string {
	return "entry." + key + "." + field
}
