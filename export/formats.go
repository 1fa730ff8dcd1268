// Package export serializes an accumulated graph into exchange formats:
// Turtle, RDF/XML, JSON-LD, and N-Triples. Namespace prefix bindings from
// the schema registry shorten IRIs where the syntax allows. Statement
// ordering within a format is not a guaranteed invariant.
package export

import (
	"fmt"
	"strings"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatRDFXML produces RDF/XML (.rdf) output.
	FormatRDFXML Format = "rdfxml"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"
)

// Formats lists all supported formats.
func Formats() []Format {
	return []Format{FormatTurtle, FormatRDFXML, FormatJSONLD, FormatNTriples}
}

// ParseFormat resolves a format name, accepting common aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "turtle", "ttl":
		return FormatTurtle, nil
	case "rdfxml", "rdf-xml", "rdf/xml", "rdf", "xml":
		return FormatRDFXML, nil
	case "jsonld", "json-ld":
		return FormatJSONLD, nil
	case "ntriples", "n-triples", "nt":
		return FormatNTriples, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Ext returns the conventional file extension for the format.
func (f Format) Ext() string {
	switch f {
	case FormatTurtle:
		return ".ttl"
	case FormatRDFXML:
		return ".rdf"
	case FormatJSONLD:
		return ".jsonld"
	case FormatNTriples:
		return ".nt"
	default:
		return ""
	}
}

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// SerializationError reports a failure serializing one format. It is fatal
// only for the affected format; other requested formats still complete.
type SerializationError struct {
	Format Format
	Err    error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialize %s: %v", e.Format, e.Err)
}

// Unwrap returns the underlying error.
func (e *SerializationError) Unwrap() error { return e.Err }
