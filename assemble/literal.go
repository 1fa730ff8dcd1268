package assemble

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/c360studio/relgraph/graph"
	"github.com/c360studio/relgraph/schema"
)

// dateLayouts are the accepted lexical forms for date-typed columns, tried
// in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// Literal parses a raw cell into a typed literal object.
func Literal(raw string, valueType schema.ValueType) (graph.Object, error) {
	s := strings.TrimSpace(raw)
	switch valueType {
	case schema.ValueString:
		return graph.String(s), nil
	case schema.ValueInteger:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return graph.Object{}, fmt.Errorf("not an integer: %q", raw)
		}
		return graph.Integer(i), nil
	case schema.ValueFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return graph.Object{}, fmt.Errorf("not a float: %q", raw)
		}
		return graph.Float(f), nil
	case schema.ValueBoolean:
		switch strings.ToLower(s) {
		case "yes", "y":
			return graph.Boolean(true), nil
		case "no", "n":
			return graph.Boolean(false), nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return graph.Object{}, fmt.Errorf("not a boolean: %q", raw)
		}
		return graph.Boolean(b), nil
	case schema.ValueDate:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return graph.Date(t), nil
			}
		}
		return graph.Object{}, fmt.Errorf("not a date: %q", raw)
	default:
		return graph.Object{}, fmt.Errorf("unknown value type: %q", valueType)
	}
}
