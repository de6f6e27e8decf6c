package config

import (
	"fmt"
	"strings"
)

// Violation is a single rejected configuration rule. Fields names every flag
// or config key involved, so a conflict between two fields lists both.
type Violation struct {
	Fields  []string
	Message string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s", strings.Join(v.Fields, ", "), v.Message)
}

// ValidationError reports every violation found while resolving a
// configuration, not just the first.
type ValidationError struct {
	Violations []Violation
}

// Add records a violation against one or more fields.
func (e *ValidationError) Add(message string, fields ...string) {
	e.Violations = append(e.Violations, Violation{Fields: fields, Message: message})
}

// Addf is Add with a format string.
func (e *ValidationError) Addf(fields []string, format string, args ...any) {
	e.Add(fmt.Sprintf(format, args...), fields...)
}

// HasViolations reports whether anything was rejected.
func (e *ValidationError) HasViolations() bool {
	return e != nil && len(e.Violations) > 0
}

// Fields returns the distinct field names named by the violations, in the
// order they were first reported.
func (e *ValidationError) Fields() []string {
	seen := make(map[string]bool)
	var fields []string
	for _, v := range e.Violations {
		for _, f := range v.Fields {
			if !seen[f] {
				seen[f] = true
				fields = append(fields, f)
			}
		}
	}
	return fields
}

// HasField reports whether any violation names field.
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields() {
		if f == field {
			return true
		}
	}
	return false
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Error())
	}
	return fmt.Sprintf("configuration validation failed: %s", strings.Join(msgs, "; "))
}

// String returns a human-readable validation summary.
func (e *ValidationError) String() string {
	var sb strings.Builder

	sb.WriteString("Configuration has errors:\n")
	for _, v := range e.Violations {
		sb.WriteString(fmt.Sprintf("  ✗ %s\n", v.Error()))
	}

	return sb.String()
}
