package schema

import (
	"strconv"
	"strings"
)

// Param is a named positional parameter.
type Param struct {
	Name string
	Type Type
}

// Signature is an ordered list of positional parameters.
type Signature []Param

// String renders the signature, e.g. "(altName: string?)".
func (s Signature) String() string {
	parts := make([]string, 0, len(s))
	for _, p := range s {
		parts = append(parts, p.Name+": "+p.Type.Name())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Validate checks positional args against the signature.
// Returns an error with all validation failures found.
func (s Signature) Validate(args []any) error {
	var errs []error

	for i, param := range s {
		if i >= len(args) {
			if !IsOptional(param.Type) {
				errs = append(errs, &ValidationError{
					Key:    param.Name,
					Reason: "required",
				})
			}
			continue
		}

		if err := param.Type.Validate(args[i]); err != nil {
			errs = append(errs, &ValidationError{
				Key:    param.Name,
				Reason: err.Error(),
				Value:  args[i],
			})
		}
	}

	for i := len(s); i < len(args); i++ {
		errs = append(errs, &ValidationError{
			Key:    "#" + strconv.Itoa(i),
			Reason: "unexpected argument",
			Value:  args[i],
		})
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}
