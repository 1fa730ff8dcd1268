package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/c360studio/relgraph/assemble"
)

// Report summarizes one materialization run: totals, per-format output
// sizes, and every collected warning. No warning is silently dropped.
type Report struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`

	// Tables is the number of tables loaded.
	Tables int `json:"tables"`

	// Rows is the number of rows processed across all tables.
	Rows int `json:"rows"`

	// Statements is the total statement count in the graph.
	Statements int `json:"statements"`

	// Stubs is the number of stub entities the repair pass synthesized.
	Stubs int `json:"stubs"`

	// Warnings holds all collected row-level and referential-gap warnings.
	Warnings []assemble.Warning `json:"-"`

	// Outputs maps format name to serialized byte size.
	Outputs map[string]int64 `json:"outputs"`

	// ExportErrors lists formats that failed to serialize.
	ExportErrors []string `json:"export_errors,omitempty"`

	// Duration is the wall-clock time of the run.
	Duration time.Duration `json:"duration"`
}

func (r *Report) addWarning(w assemble.Warning) {
	r.Warnings = append(r.Warnings, w)
	if _, ok := w.(*assemble.ReferentialGapWarning); ok {
		r.Stubs++
	}
}

// Summary renders a human-readable report.
func (r *Report) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "run %s: %d tables, %d rows, %d statements", r.RunID, r.Tables, r.Rows, r.Statements)
	if r.Stubs > 0 {
		fmt.Fprintf(&sb, ", %d stubs", r.Stubs)
	}
	fmt.Fprintf(&sb, " in %s\n", r.Duration.Round(time.Millisecond))

	if len(r.Outputs) > 0 {
		formats := make([]string, 0, len(r.Outputs))
		for f := range r.Outputs {
			formats = append(formats, f)
		}
		sort.Strings(formats)
		for _, f := range formats {
			fmt.Fprintf(&sb, "  %s: %d bytes\n", f, r.Outputs[f])
		}
	}
	for _, e := range r.ExportErrors {
		fmt.Fprintf(&sb, "  export error: %s\n", e)
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintf(&sb, "warnings (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Fprintf(&sb, "  %s\n", w.Warning())
		}
	}
	return sb.String()
}
