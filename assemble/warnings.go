// Package assemble turns source records into graph statements: class
// membership, typed data-property literals, and object-property edges, with
// a repair pass that synthesizes stub entities for dangling references.
package assemble

import "fmt"

// Warning is a non-fatal event collected into the run report. Row-level
// problems never abort the surrounding table load.
type Warning interface {
	Warning() string
}

// SourceRowError reports an unparsable scalar or malformed compound
// encoding in one row. The offending attribute or edge is skipped; the rest
// of the row is kept.
type SourceRowError struct {
	// Table names the source table.
	Table string

	// RowKey is the business key of the affected row.
	RowKey string

	// Column is the offending column.
	Column string

	// Reason describes what failed.
	Reason string
}

// Error implements the error interface.
func (e *SourceRowError) Error() string {
	return fmt.Sprintf("%s[%s].%s: %s", e.Table, e.RowKey, e.Column, e.Reason)
}

// Warning implements the Warning interface.
func (e *SourceRowError) Warning() string { return e.Error() }

// ReferentialGapWarning reports that the repair pass synthesized a stub
// entity for an edge whose object was never independently declared.
type ReferentialGapWarning struct {
	// Class is the stub's class (the edge's range).
	Class string

	// EntityID is the synthesized stable ID.
	EntityID string

	// RawKey is the business key the dangling edge referenced.
	RawKey string

	// Predicate is the edge that required the stub.
	Predicate string
}

// Warning implements the Warning interface.
func (w *ReferentialGapWarning) Warning() string {
	return fmt.Sprintf("stub %s %q created for dangling %s reference %q", w.Class, w.EntityID, w.Predicate, w.RawKey)
}
