package schema

import "fmt"

// SchemaError reports an inconsistent class or property declaration.
// It is fatal: a registry that fails Freeze must not be used for a load.
type SchemaError struct {
	// Subject is the declaration the error refers to (class or property name).
	Subject string

	// Detail describes the inconsistency.
	Detail string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("schema: %s", e.Detail)
	}
	return fmt.Sprintf("schema: %s: %s", e.Subject, e.Detail)
}

func schemaErrorf(subject, format string, args ...any) *SchemaError {
	return &SchemaError{Subject: subject, Detail: fmt.Sprintf(format, args...)}
}
