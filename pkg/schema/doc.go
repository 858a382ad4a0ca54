// Package schema provides small value predicates used to validate annotation payloads
// and decorator arguments.
//
// A Type names a category of values and validates a candidate. Signatures bind
// predicates to positional decorator parameters:
//
//	sig := schema.Signature{
//	    {Name: "altName", Type: schema.Optional(schema.String())},
//	}
//
//	if err := sig.Validate([]any{"petId"}); err != nil {
//	    // Report as a diagnostic
//	}
//
// Custom predicates cover domain-specific rules:
//
//	path := schema.Custom("path", func(v any) error {
//	    s, ok := v.(string)
//	    if !ok || !strings.HasPrefix(s, "/") {
//	        return fmt.Errorf("expected a path starting with '/'")
//	    }
//	    return nil
//	})
//
// This package has no dependencies beyond the standard library.
package schema
