// Package validation collects per-field form errors.
package validation

import (
	"errors"
	"sort"
	"strings"
)

// Root is the field name used for form-level messages.
const Root = "root"

// Errors maps a field name to its first error message.
type Errors map[string]string

func New() Errors { return Errors{} }

// Field returns an Errors holding a single message.
func Field(field, msg string) Errors {
	return Errors{field: msg}
}

// Add keeps the first message recorded for a field.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; ok {
		return
	}
	e[field] = msg
}

// Err returns nil when nothing was recorded, so callers can return it directly.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// As extracts Errors from err.
func As(err error) (Errors, bool) {
	var v Errors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
