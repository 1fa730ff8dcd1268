package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/c360studio/relgraph/graph"
	"github.com/c360studio/relgraph/schema"
)

// writeNTriples serializes to N-Triples, one statement per line with
// absolute IRIs.
func (e *Exporter) writeNTriples(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, st := range e.expandedStatements() {
		subject := e.registry.EntityIRI(st.Subject)
		predicate := e.predicateIRI(st.Predicate)
		var object string
		if st.Object.IsLiteral() {
			object = quoteLiteral(st.Object.Value)
			if t := xsdType(st.Object.Kind); t != "" {
				object += "^^<" + schema.XSDNamespace + t + ">"
			}
		} else {
			object = "<" + e.objectIRI(st.Object) + ">"
		}
		if _, err := fmt.Fprintf(bw, "<%s> <%s> %s .\n", subject, predicate, object); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParseNTriples reads N-Triples produced by this package back into
// statements, reversing the registry's IRI mapping. It exists for
// round-trip verification: a serialize-then-parse cycle must yield an
// isomorphic statement set.
func ParseNTriples(r io.Reader, registry *schema.Registry) ([]graph.Statement, error) {
	var out []graph.Statement
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		st, err := parseNTripleLine(text, registry)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, st)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseNTripleLine(line string, registry *schema.Registry) (graph.Statement, error) {
	var st graph.Statement

	subject, rest, err := parseIRIRef(line)
	if err != nil {
		return st, fmt.Errorf("subject: %w", err)
	}
	predicate, rest, err := parseIRIRef(rest)
	if err != nil {
		return st, fmt.Errorf("predicate: %w", err)
	}

	st.Subject = entityIDFromIRI(subject, registry)
	if predicate == RDFTypeIRI {
		st.Predicate = graph.TypePredicate
	} else {
		st.Predicate = localName(predicate, registry.Namespace())
	}

	rest = strings.TrimSpace(rest)
	if !strings.HasSuffix(rest, ".") {
		return st, fmt.Errorf("missing terminating dot")
	}
	rest = strings.TrimSpace(strings.TrimSuffix(rest, "."))

	switch {
	case strings.HasPrefix(rest, "<"):
		iri, leftover, err := parseIRIRef(rest)
		if err != nil {
			return st, fmt.Errorf("object: %w", err)
		}
		if strings.TrimSpace(leftover) != "" {
			return st, fmt.Errorf("trailing content %q", leftover)
		}
		if strings.HasPrefix(iri, registry.EntityNamespace()) {
			st.Object = graph.EntityRef(entityIDFromIRI(iri, registry))
		} else if st.Predicate == graph.TypePredicate {
			st.Object = graph.ClassRef(localName(iri, registry.Namespace()))
		} else {
			st.Object = graph.EntityRef(iri)
		}
	case strings.HasPrefix(rest, `"`):
		value, datatype, err := parseLiteralTerm(rest)
		if err != nil {
			return st, fmt.Errorf("object: %w", err)
		}
		st.Object = graph.Object{Kind: kindForDatatype(datatype), Value: value}
	default:
		return st, fmt.Errorf("unrecognized object term %q", rest)
	}

	return st, nil
}

// parseIRIRef consumes a leading <IRI> token and returns the remainder.
func parseIRIRef(s string) (string, string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "<") {
		return "", "", fmt.Errorf("expected IRI reference in %q", s)
	}
	end := strings.IndexByte(s, '>')
	if end < 0 {
		return "", "", fmt.Errorf("unterminated IRI reference in %q", s)
	}
	return s[1:end], s[end+1:], nil
}

// parseLiteralTerm consumes a quoted literal with an optional ^^<datatype>
// suffix.
func parseLiteralTerm(s string) (value, datatype string, err error) {
	var b strings.Builder
	i := 1 // past opening quote
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte(s[i+1])
			}
			i += 2
			continue
		}
		if c == '"' {
			rest := strings.TrimSpace(s[i+1:])
			if strings.HasPrefix(rest, "^^") {
				datatype, rest, err = parseIRIRef(rest[2:])
				if err != nil {
					return "", "", err
				}
			}
			if strings.TrimSpace(rest) != "" {
				return "", "", fmt.Errorf("trailing content %q", rest)
			}
			return b.String(), datatype, nil
		}
		b.WriteByte(c)
		i++
	}
	return "", "", fmt.Errorf("unterminated literal in %q", s)
}

func kindForDatatype(datatype string) graph.TermKind {
	switch strings.TrimPrefix(datatype, schema.XSDNamespace) {
	case "integer":
		return graph.TermInteger
	case "double", "decimal":
		return graph.TermFloat
	case "date", "dateTime":
		return graph.TermDate
	case "boolean":
		return graph.TermBoolean
	default:
		return graph.TermString
	}
}

// entityIDFromIRI reverses Registry.EntityIRI.
func entityIDFromIRI(iri string, registry *schema.Registry) string {
	if path, ok := strings.CutPrefix(iri, registry.EntityNamespace()); ok {
		return strings.ReplaceAll(path, "/", ".")
	}
	return iri
}

// localName strips a namespace prefix from an IRI, returning the IRI
// unchanged when it lives elsewhere.
func localName(iri, namespace string) string {
	if local, ok := strings.CutPrefix(iri, namespace); ok {
		return local
	}
	return iri
}
