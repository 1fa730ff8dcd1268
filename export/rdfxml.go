package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/c360studio/relgraph/graph"
	"github.com/c360studio/relgraph/schema"
)

// writeRDFXML serializes to RDF/XML. Property elements use prefixed names;
// namespaces without a bound prefix get generated ns1, ns2, ... bindings so
// the document stays well-formed.
func (e *Exporter) writeRDFXML(w io.Writer) error {
	prefixes := e.registry.Prefixes()

	// Invert bindings and assign generated prefixes for any predicate
	// namespace the registry left unbound.
	byIRI := make(map[string]string, len(prefixes))
	for _, b := range e.sortedPrefixes() {
		if _, ok := byIRI[b.IRI]; !ok {
			byIRI[b.IRI] = b.Prefix
		}
	}
	generated := 0
	prefixFor := func(iri string) (string, string, error) {
		ns, local := splitIRI(iri)
		if ns == "" || local == "" {
			return "", "", fmt.Errorf("cannot derive XML name from IRI %q", iri)
		}
		if p, ok := byIRI[ns]; ok {
			return p, local, nil
		}
		generated++
		p := fmt.Sprintf("ns%d", generated)
		byIRI[ns] = p
		return p, local, nil
	}

	// Render the body first so generated prefixes land on rdf:RDF.
	var body strings.Builder
	subjects, bySubject := e.subjectsInOrder()
	for _, subject := range subjects {
		body.WriteString(fmt.Sprintf("  <rdf:Description rdf:about=\"%s\">\n", xmlEscape(e.registry.EntityIRI(subject))))
		for _, st := range bySubject[subject] {
			if st.Predicate == graph.TypePredicate {
				body.WriteString(fmt.Sprintf("    <rdf:type rdf:resource=\"%s\"/>\n", xmlEscape(e.objectIRI(st.Object))))
				continue
			}
			prefix, local, err := prefixFor(e.predicateIRI(st.Predicate))
			if err != nil {
				return err
			}
			name := prefix + ":" + local
			if st.Object.IsLiteral() {
				if t := xsdType(st.Object.Kind); t != "" {
					body.WriteString(fmt.Sprintf("    <%s rdf:datatype=\"%s%s\">%s</%s>\n",
						name, schema.XSDNamespace, t, xmlEscape(st.Object.Value), name))
				} else {
					body.WriteString(fmt.Sprintf("    <%s>%s</%s>\n", name, xmlEscape(st.Object.Value), name))
				}
			} else {
				body.WriteString(fmt.Sprintf("    <%s rdf:resource=\"%s\"/>\n", name, xmlEscape(e.objectIRI(st.Object))))
			}
		}
		body.WriteString("  </rdf:Description>\n")
	}

	var head strings.Builder
	head.WriteString(xml.Header)
	head.WriteString("<rdf:RDF")
	if _, ok := byIRI[schema.RDFNamespace]; !ok {
		byIRI[schema.RDFNamespace] = "rdf"
	}
	for _, ns := range sortedIRIs(byIRI) {
		head.WriteString(fmt.Sprintf("\n    xmlns:%s=\"%s\"", byIRI[ns], xmlEscape(ns)))
	}
	head.WriteString(">\n")

	if _, err := io.WriteString(w, head.String()); err != nil {
		return err
	}
	if _, err := io.WriteString(w, body.String()); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</rdf:RDF>\n")
	return err
}

// splitIRI splits an IRI into namespace and local part at the last '#' or
// '/' separator.
func splitIRI(iri string) (ns, local string) {
	idx := strings.LastIndexAny(iri, "#/")
	if idx < 0 || idx == len(iri)-1 {
		return "", ""
	}
	return iri[:idx+1], iri[idx+1:]
}

func sortedIRIs(byIRI map[string]string) []string {
	out := make([]string, 0, len(byIRI))
	for iri := range byIRI {
		out = append(out, iri)
	}
	// Sort by assigned prefix for stable output.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && byIRI[out[j-1]] > byIRI[out[j]]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// xmlEscape escapes text for use in element content and attribute values.
func xmlEscape(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}
