package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/relgraph/graph"
	"github.com/c360studio/relgraph/schema"
)

func TestLiteral(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		vt      schema.ValueType
		want    graph.Object
		wantErr bool
	}{
		{name: "string", raw: "Heat", vt: schema.ValueString, want: graph.String("Heat")},
		{name: "string trims", raw: "  Heat ", vt: schema.ValueString, want: graph.String("Heat")},
		{name: "integer", raw: "1995", vt: schema.ValueInteger, want: graph.Integer(1995)},
		{name: "integer rejects float", raw: "7.5", vt: schema.ValueInteger, wantErr: true},
		{name: "float", raw: "7.5", vt: schema.ValueFloat, want: graph.Float(7.5)},
		{name: "float rejects words", raw: "high", vt: schema.ValueFloat, wantErr: true},
		{name: "boolean true", raw: "true", vt: schema.ValueBoolean, want: graph.Boolean(true)},
		{name: "boolean yes", raw: "Yes", vt: schema.ValueBoolean, want: graph.Boolean(true)},
		{name: "boolean n", raw: "n", vt: schema.ValueBoolean, want: graph.Boolean(false)},
		{name: "boolean rejects junk", raw: "maybe", vt: schema.ValueBoolean, wantErr: true},
		{name: "date iso", raw: "1995-12-15", vt: schema.ValueDate, want: graph.Object{Kind: graph.TermDate, Value: "1995-12-15"}},
		{name: "date slashed", raw: "1995/12/15", vt: schema.ValueDate, want: graph.Object{Kind: graph.TermDate, Value: "1995-12-15"}},
		{name: "date with time", raw: "1995-12-15 10:30:00", vt: schema.ValueDate, want: graph.Object{Kind: graph.TermDate, Value: "1995-12-15"}},
		{name: "date rejects junk", raw: "christmas", vt: schema.ValueDate, wantErr: true},
		{name: "unknown type", raw: "x", vt: schema.ValueType("decimal"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Literal(tt.raw, tt.vt)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
