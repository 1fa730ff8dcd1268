// Package source models the tabular inputs the engine materializes from and
// provides the boundary collaborators around them: CSV reading, glob
// discovery, and file watching for re-loads. Parsing beyond "header row plus
// string cells" is out of scope; typing happens in the assembler.
package source

import "fmt"

// Row maps column name to the raw cell value. Absent columns and empty
// cells both read as "".
type Row map[string]string

// Get returns the cell value for a column, or "" if absent.
func (r Row) Get(column string) string {
	return r[column]
}

// Table is one named tabular source.
type Table struct {
	// Name identifies the source, typically the file basename without
	// extension. The ontology mapping binds names to classes.
	Name string

	// Columns lists the header columns in source order.
	Columns []string

	// Rows holds the records in source order.
	Rows []Row
}

// String implements fmt.Stringer.
func (t *Table) String() string {
	return fmt.Sprintf("%s (%d rows, %d columns)", t.Name, len(t.Rows), len(t.Columns))
}
