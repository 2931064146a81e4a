package ir

import (
	"fmt"
	"strings"
)

// Severity grades a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is one record on the compilation diagnostics stream.
// Diagnostics never abort compilation.
type Diagnostic struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Key      string   `json:"key,omitempty"`
	Refs     []string `json:"refs,omitempty"`
	Rule     string   `json:"rule,omitempty"`
	Form     string   `json:"form,omitempty"`
	Message  string   `json:"message"`
}

// String renders the diagnostic on one line:
//
//	[E201] error: sunrise*: unresolved component(s): dawn
func (d Diagnostic) String() string {
	if d.Key == "" {
		return fmt.Sprintf("[%s] %s: %s", d.Code, d.Severity, d.Message)
	}
	return fmt.Sprintf("[%s] %s: %s: %s", d.Code, d.Severity, d.Key, d.Message)
}

// Value returns the canonical value of the diagnostic.
func (d Diagnostic) Value() Object {
	obj := Object{
		"code":     String(d.Code),
		"severity": String(d.Severity),
		"message":  String(d.Message),
	}
	obj.putString("key", d.Key)
	obj.putString("rule", d.Rule)
	obj.putString("form", d.Form)
	if len(d.Refs) > 0 {
		obj["refs"] = Strings(d.Refs)
	}
	return obj
}

// Diagnostics is an ordered diagnostics stream.
type Diagnostics []Diagnostic

// HasErrors reports whether any diagnostic has error severity.
func (ds Diagnostics) HasErrors() bool {
	return ds.Count(SeverityError) > 0
}

// Count returns the number of diagnostics with severity s.
func (ds Diagnostics) Count(s Severity) int {
	n := 0
	for _, d := range ds {
		if d.Severity == s {
			n++
		}
	}
	return n
}

// ForKey returns the diagnostics attached to key, in order.
func (ds Diagnostics) ForKey(key string) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Key == key {
			out = append(out, d)
		}
	}
	return out
}

// WithCode returns the diagnostics carrying code, in order.
func (ds Diagnostics) WithCode(code string) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// String renders one diagnostic per line.
func (ds Diagnostics) String() string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}
