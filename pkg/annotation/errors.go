package annotation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/csdlgen/pkg/typegraph"
)

// Code classifies a diagnostic.
type Code string

const (
	InvalidAnnotationTarget Code = "invalid-annotation-target"
	InvalidAnnotationValue  Code = "invalid-annotation-value"
	UnknownDecorator        Code = "unknown-decorator"
	InvalidDecoratorArgs    Code = "invalid-decorator-args"
)

// Error is a rejected annotation write.
type Error struct {
	Code   Code
	Kind   string
	Target typegraph.Kind
	Err    error
}

func (e *Error) Error() string {
	switch e.Code {
	case InvalidAnnotationTarget:
		return fmt.Sprintf("annotation %q cannot be applied to %s", e.Kind, e.Target)
	case InvalidAnnotationValue:
		if e.Err != nil {
			return fmt.Sprintf("invalid value for annotation %q: %v", e.Kind, e.Err)
		}
		return fmt.Sprintf("invalid value for annotation %q", e.Kind)
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// CodeOf extracts the Code carried by err, if any.
func CodeOf(err error) (Code, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code, true
	}
	return "", false
}

// Severity of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a reportable problem found while applying declarations.
type Diagnostic struct {
	Code     Code           `json:"code"`
	Message  string         `json:"message"`
	Site     typegraph.Site `json:"site"`
	Severity Severity       `json:"severity"`
}

func (d Diagnostic) String() string {
	if d.Site.Path == "" {
		return fmt.Sprintf("%s %s: %s", d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s %s: %s", d.Site, d.Severity, d.Code, d.Message)
}

// Diagnostics is an ordered list of diagnostics.
type Diagnostics []Diagnostic

// HasErrors reports whether any diagnostic has error severity.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ByCode filters diagnostics by code.
func (ds Diagnostics) ByCode(code Code) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

func (ds Diagnostics) Error() string {
	if len(ds) == 1 {
		return ds[0].String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d diagnostics:\n", len(ds))
	for i, d := range ds {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, d)
	}
	return b.String()
}

// Err returns ds as an error when it contains errors, nil otherwise.
func (ds Diagnostics) Err() error {
	if !ds.HasErrors() {
		return nil
	}
	return ds
}

// FromError converts a store write failure into a diagnostic at site.
func FromError(err error, site typegraph.Site) Diagnostic {
	code, ok := CodeOf(err)
	if !ok {
		code = InvalidAnnotationValue
	}
	return Diagnostic{Code: code, Message: err.Error(), Site: site, Severity: SeverityError}
}
