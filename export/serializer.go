package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/c360studio/relgraph/graph"
	"github.com/c360studio/relgraph/schema"
)

// RDFTypeIRI is the full IRI of the class-membership predicate.
const RDFTypeIRI = schema.RDFNamespace + "type"

// Exporter serializes one graph store using the prefix bindings and IRIs of
// one schema registry.
type Exporter struct {
	store    *graph.Store
	registry *schema.Registry
}

// NewExporter creates an exporter over a store and its registry.
func NewExporter(store *graph.Store, registry *schema.Registry) *Exporter {
	return &Exporter{store: store, registry: registry}
}

// Export serializes the graph to the given format.
func (e *Exporter) Export(format Format, w io.Writer) error {
	var err error
	switch format {
	case FormatTurtle:
		err = e.writeTurtle(w)
	case FormatRDFXML:
		err = e.writeRDFXML(w)
	case FormatJSONLD:
		err = e.writeJSONLD(w)
	case FormatNTriples:
		err = e.writeNTriples(w)
	default:
		err = fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return &SerializationError{Format: format, Err: err}
	}
	return nil
}

// xsdType returns the xsd datatype local name for a literal kind, or ""
// for plain strings.
func xsdType(kind graph.TermKind) string {
	switch kind {
	case graph.TermInteger:
		return "integer"
	case graph.TermFloat:
		return "double"
	case graph.TermDate:
		return "date"
	case graph.TermBoolean:
		return "boolean"
	default:
		return ""
	}
}

// predicateIRI returns the full IRI for a statement predicate.
func (e *Exporter) predicateIRI(predicate string) string {
	if predicate == graph.TypePredicate {
		return RDFTypeIRI
	}
	return e.registry.PropertyIRI(predicate)
}

// objectIRI returns the full IRI for an entity or class object.
func (e *Exporter) objectIRI(o graph.Object) string {
	if o.Kind == graph.TermClass {
		return e.registry.ClassIRI(o.Value)
	}
	return e.registry.EntityIRI(o.Value)
}

// sortedPrefixes returns prefix bindings sorted by prefix name.
func (e *Exporter) sortedPrefixes() []prefixBinding {
	prefixes := e.registry.Prefixes()
	out := make([]prefixBinding, 0, len(prefixes))
	for p, iri := range prefixes {
		out = append(out, prefixBinding{Prefix: p, IRI: iri})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out
}

type prefixBinding struct {
	Prefix string
	IRI    string
}

// qname shortens an IRI to prefix:local when a bound prefix matches and the
// local part is a safe name. Otherwise it reports ok=false.
func (e *Exporter) qname(iri string) (string, bool) {
	best := prefixBinding{}
	for _, b := range e.sortedPrefixes() {
		if strings.HasPrefix(iri, b.IRI) && len(b.IRI) > len(best.IRI) {
			best = b
		}
	}
	if best.IRI == "" {
		return "", false
	}
	local := iri[len(best.IRI):]
	if local == "" || !safeLocalName(local) {
		return "", false
	}
	return best.Prefix + ":" + local, true
}

func safeLocalName(local string) bool {
	for _, c := range local {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}

// expandedStatements returns the store snapshot with class membership
// widened along the hierarchy: an entity typed as a subclass also carries
// membership in each ancestor class. The store itself stays un-widened.
func (e *Exporter) expandedStatements() []graph.Statement {
	stmts := e.store.Statements()
	out := make([]graph.Statement, 0, len(stmts))
	seen := make(map[string]bool, len(stmts))
	add := func(st graph.Statement) {
		if !seen[st.Key()] {
			seen[st.Key()] = true
			out = append(out, st)
		}
	}
	for _, st := range stmts {
		add(st)
		if st.Predicate != graph.TypePredicate || st.Object.Kind != graph.TermClass {
			continue
		}
		for c := e.registry.Class(st.Object.Value); c != nil && c.Parent != ""; c = e.registry.Class(c.Parent) {
			add(graph.Statement{
				Subject:   st.Subject,
				Predicate: graph.TypePredicate,
				Object:    graph.ClassRef(c.Parent),
			})
		}
	}
	return out
}

// subjectsInOrder groups the expanded snapshot by subject, preserving
// first-seen subject order and per-subject statement order.
func (e *Exporter) subjectsInOrder() ([]string, map[string][]graph.Statement) {
	bySubject := make(map[string][]graph.Statement)
	var order []string
	for _, st := range e.expandedStatements() {
		if _, ok := bySubject[st.Subject]; !ok {
			order = append(order, st.Subject)
		}
		bySubject[st.Subject] = append(bySubject[st.Subject], st)
	}
	return order, bySubject
}

// writeTurtle serializes to Turtle.
func (e *Exporter) writeTurtle(w io.Writer) error {
	var sb strings.Builder

	for _, b := range e.sortedPrefixes() {
		sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", b.Prefix, b.IRI))
	}
	sb.WriteString("\n")

	subjects, bySubject := e.subjectsInOrder()
	for _, subject := range subjects {
		stmts := bySubject[subject]
		sb.WriteString(fmt.Sprintf("<%s>", e.registry.EntityIRI(subject)))
		for i, st := range stmts {
			sb.WriteString("\n    ")
			sb.WriteString(e.turtlePredicate(st.Predicate))
			sb.WriteString(" ")
			sb.WriteString(e.turtleObject(st.Object))
			if i < len(stmts)-1 {
				sb.WriteString(" ;")
			} else {
				sb.WriteString(" .")
			}
		}
		sb.WriteString("\n\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (e *Exporter) turtlePredicate(predicate string) string {
	if predicate == graph.TypePredicate {
		return "a"
	}
	iri := e.predicateIRI(predicate)
	if q, ok := e.qname(iri); ok {
		return q
	}
	return "<" + iri + ">"
}

func (e *Exporter) turtleObject(o graph.Object) string {
	if !o.IsLiteral() {
		iri := e.objectIRI(o)
		if q, ok := e.qname(iri); ok {
			return q
		}
		return "<" + iri + ">"
	}
	lit := quoteLiteral(o.Value)
	if t := xsdType(o.Kind); t != "" {
		return lit + "^^xsd:" + t
	}
	return lit
}

// quoteLiteral quotes a literal value with the escapes Turtle and N-Triples
// require.
func quoteLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
