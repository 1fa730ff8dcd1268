// Package graph provides the in-memory statement store the materialization
// engine accumulates facts into. Statements are (subject, predicate, object)
// triples with set semantics; the store is owned by a single pipeline run and
// discarded after serialization.
package graph

import (
	"fmt"
	"strconv"
	"time"
)

// TypePredicate is the class-membership predicate. Every entity in a closed
// graph has at least one statement with this predicate.
const TypePredicate = "rdf:type"

// TermKind discriminates the object position of a statement.
type TermKind string

const (
	// TermEntity is a reference to another entity by its stable ID.
	TermEntity TermKind = "entity"

	// TermClass is a class name in the rdf:type position.
	TermClass TermKind = "class"

	TermString  TermKind = "string"
	TermInteger TermKind = "integer"
	TermFloat   TermKind = "float"
	TermDate    TermKind = "date"
	TermBoolean TermKind = "boolean"
)

// Object is the object position of a statement: a typed literal, a class
// name, or an entity reference. Value holds the lexical form.
type Object struct {
	Kind  TermKind
	Value string
}

// EntityRef returns an entity-reference object.
func EntityRef(id string) Object { return Object{Kind: TermEntity, Value: id} }

// ClassRef returns a class-name object for rdf:type statements.
func ClassRef(name string) Object { return Object{Kind: TermClass, Value: name} }

// String returns a string literal object.
func String(s string) Object { return Object{Kind: TermString, Value: s} }

// Integer returns an integer literal object.
func Integer(i int64) Object {
	return Object{Kind: TermInteger, Value: strconv.FormatInt(i, 10)}
}

// Float returns a float literal object.
func Float(f float64) Object {
	return Object{Kind: TermFloat, Value: strconv.FormatFloat(f, 'g', -1, 64)}
}

// Boolean returns a boolean literal object.
func Boolean(b bool) Object {
	return Object{Kind: TermBoolean, Value: strconv.FormatBool(b)}
}

// Date returns a date literal object in RFC 3339 date form.
func Date(t time.Time) Object {
	return Object{Kind: TermDate, Value: t.Format("2006-01-02")}
}

// IsLiteral reports whether the object is a typed literal rather than an
// entity or class reference.
func (o Object) IsLiteral() bool {
	return o.Kind != TermEntity && o.Kind != TermClass
}

// String implements fmt.Stringer.
func (o Object) String() string {
	if o.IsLiteral() {
		return fmt.Sprintf("%q^^%s", o.Value, o.Kind)
	}
	return o.Value
}

// Statement is one (subject, predicate, object) assertion. Subject is a
// stable entity ID, predicate a property name or TypePredicate.
type Statement struct {
	Subject   string
	Predicate string
	Object    Object
}

// Key returns the canonical identity of the statement, used for set
// deduplication in the store.
func (s Statement) Key() string {
	return s.Subject + "\x1f" + s.Predicate + "\x1f" + string(s.Object.Kind) + "\x1f" + s.Object.Value
}

// String implements fmt.Stringer.
func (s Statement) String() string {
	return fmt.Sprintf("(%s %s %s)", s.Subject, s.Predicate, s.Object)
}
