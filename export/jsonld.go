package export

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/c360studio/relgraph/graph"
)

// writeJSONLD serializes to JSON-LD: a @context carrying the prefix
// bindings and a @graph with one node object per subject.
func (e *Exporter) writeJSONLD(w io.Writer) error {
	context := make(map[string]any)
	for _, b := range e.sortedPrefixes() {
		context[b.Prefix] = b.IRI
	}

	subjects, bySubject := e.subjectsInOrder()
	nodes := make([]map[string]any, 0, len(subjects))
	for _, subject := range subjects {
		node := map[string]any{
			"@id": e.registry.EntityIRI(subject),
		}
		var types []string
		for _, st := range bySubject[subject] {
			if st.Predicate == graph.TypePredicate {
				types = append(types, e.shortIRI(e.objectIRI(st.Object)))
				continue
			}
			key := e.shortIRI(e.predicateIRI(st.Predicate))
			appendNodeValue(node, key, e.jsonldValue(st.Object))
		}
		if len(types) > 0 {
			node["@type"] = types
		}
		nodes = append(nodes, node)
	}

	doc := map[string]any{
		"@context": context,
		"@graph":   nodes,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// jsonldValue renders an object term as a JSON-LD value.
func (e *Exporter) jsonldValue(o graph.Object) any {
	if !o.IsLiteral() {
		return map[string]any{"@id": e.registry.EntityIRI(o.Value)}
	}
	switch o.Kind {
	case graph.TermInteger:
		if i, err := strconv.ParseInt(o.Value, 10, 64); err == nil {
			return i
		}
	case graph.TermFloat:
		if f, err := strconv.ParseFloat(o.Value, 64); err == nil {
			return f
		}
	case graph.TermBoolean:
		if b, err := strconv.ParseBool(o.Value); err == nil {
			return b
		}
	case graph.TermDate:
		return map[string]any{"@value": o.Value, "@type": "xsd:date"}
	}
	return o.Value
}

// shortIRI compacts an IRI to a prefixed name when possible.
func (e *Exporter) shortIRI(iri string) string {
	if q, ok := e.qname(iri); ok {
		return q
	}
	return iri
}

// appendNodeValue adds a value to a node key, promoting to an array on the
// second value.
func appendNodeValue(node map[string]any, key string, value any) {
	existing, ok := node[key]
	if !ok {
		node[key] = value
		return
	}
	if arr, ok := existing.([]any); ok {
		node[key] = append(arr, value)
		return
	}
	node[key] = []any{existing, value}
}
