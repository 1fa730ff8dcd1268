// Package schema holds the ontology declarations the materialization engine
// asserts facts against: a class hierarchy, typed data properties, and object
// properties with optional functional / inverse-functional / inverse-of
// semantics. The registry is built once, frozen, and read-only during load.
package schema

// ValueType is the literal type of a data property value.
type ValueType string

const (
	ValueString  ValueType = "string"
	ValueInteger ValueType = "integer"
	ValueFloat   ValueType = "float"
	ValueDate    ValueType = "date"
	ValueBoolean ValueType = "boolean"
)

// IsValid checks if the ValueType is one of the defined constants.
func (v ValueType) IsValid() bool {
	switch v {
	case ValueString, ValueInteger, ValueFloat, ValueDate, ValueBoolean:
		return true
	default:
		return false
	}
}

// String returns the string representation of the ValueType.
func (v ValueType) String() string {
	return string(v)
}

// DecoderKind selects how a source column is decoded into values.
// The set is closed: every column binds to exactly one of these at
// registration time.
type DecoderKind string

const (
	// DecodeScalar passes the raw cell through as a single string value.
	DecodeScalar DecoderKind = "scalar"

	// DecodeTypedScalar parses the cell according to the property ValueType.
	DecodeTypedScalar DecoderKind = "typed_scalar"

	// DecodeDelimitedList splits the cell on a delimiter, dropping empty
	// and sentinel tokens.
	DecodeDelimitedList DecoderKind = "delimited_list"

	// DecodeNestedRecords parses the cell as a JSON array of child records.
	DecodeNestedRecords DecoderKind = "nested_records"
)

// Class is a node type in the ontology. A class may declare a single parent
// (subclass-of) and the data property that carries its business key.
type Class struct {
	// Name is the class name, unique within the registry.
	Name string

	// Parent is the name of the superclass, empty for a root class.
	Parent string

	// KeyProperty is the name of the data property holding the business key.
	// Stub entities synthesized by the repair pass carry only this property.
	KeyProperty string

	// Description is an optional human-readable description.
	Description string
}

// DataProperty is a typed literal-valued property owned by a class.
type DataProperty struct {
	// Name is the property name, unique within the registry.
	Name string

	// Class is the owning class.
	Class string

	// Type is the literal type of asserted values.
	Type ValueType

	// Functional restricts the property to at most one value per subject.
	Functional bool

	// InverseFunctional marks the value as uniquely identifying its subject.
	InverseFunctional bool

	// Column is the source column the property reads from.
	// Defaults to the property name.
	Column string

	// Decoder selects the column decoder. Defaults to DecodeTypedScalar.
	Decoder DecoderKind

	// Description is an optional human-readable description.
	Description string
}

// ObjectProperty is an entity-valued property linking a domain class to a
// range class.
type ObjectProperty struct {
	// Name is the property name, unique within the registry.
	Name string

	// Domain is the subject class.
	Domain string

	// Range is the object class.
	Range string

	// InverseOf names the declared inverse property, if any. Inverse pairs
	// must be symmetric: each names the other, with mirrored domain/range.
	InverseOf string

	// Column is the source column carrying the foreign key or encoded list.
	// Defaults to the property name.
	Column string

	// Decoder selects the column decoder. Defaults to DecodeScalar.
	Decoder DecoderKind

	// Delimiter splits DecodeDelimitedList columns. Defaults to "|".
	Delimiter string

	// Sentinels lists tokens treated as absent values (e.g. "(none)").
	Sentinels []string

	// KeyField is the business-key field inside DecodeNestedRecords items.
	// Defaults to "id".
	KeyField string

	// Description is an optional human-readable description.
	Description string
}
