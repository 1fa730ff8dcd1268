package schema

import (
	"sort"
	"strings"
	"sync"
)

// Standard namespace IRIs bound by default in every registry.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"
)

// Registry holds the ontology for one materialization run: classes, data
// properties, object properties, and namespace prefix bindings.
//
// Build it with the Register* methods, then call Freeze before loading any
// data. Freeze validates cross-references and makes the registry immutable;
// a frozen registry is safe for concurrent readers.
type Registry struct {
	mu       sync.RWMutex
	frozen   bool
	ns       string
	entityNS string

	classes     map[string]*Class
	dataProps   map[string]*DataProperty
	objectProps map[string]*ObjectProperty
	prefixes    map[string]string

	// Computed at Freeze: properties per class including inherited ones.
	dataByClass   map[string][]*DataProperty
	objectByClass map[string][]*ObjectProperty
}

// ClassOption configures a class registration.
type ClassOption func(*Class)

// WithParent declares the superclass.
func WithParent(parent string) ClassOption {
	return func(c *Class) { c.Parent = parent }
}

// WithKeyProperty names the data property carrying the class business key.
func WithKeyProperty(prop string) ClassOption {
	return func(c *Class) { c.KeyProperty = prop }
}

// WithClassDescription sets the human-readable class description.
func WithClassDescription(desc string) ClassOption {
	return func(c *Class) { c.Description = desc }
}

// DataPropertyOption configures a data property registration.
type DataPropertyOption func(*DataProperty)

// Functional restricts the property to at most one value per subject.
func Functional() DataPropertyOption {
	return func(p *DataProperty) { p.Functional = true }
}

// InverseFunctional marks the value as uniquely identifying its subject.
func InverseFunctional() DataPropertyOption {
	return func(p *DataProperty) { p.InverseFunctional = true }
}

// FromColumn binds the property to a source column other than its name.
func FromColumn(column string) DataPropertyOption {
	return func(p *DataProperty) { p.Column = column }
}

// WithDescription sets the human-readable property description.
func WithDescription(desc string) DataPropertyOption {
	return func(p *DataProperty) { p.Description = desc }
}

// ObjectPropertyOption configures an object property registration.
type ObjectPropertyOption func(*ObjectProperty)

// InverseOf declares the inverse property. The named property must declare
// this one back, with mirrored domain and range.
func InverseOf(prop string) ObjectPropertyOption {
	return func(p *ObjectProperty) { p.InverseOf = prop }
}

// EdgeColumn binds the property to a source column other than its name.
func EdgeColumn(column string) ObjectPropertyOption {
	return func(p *ObjectProperty) { p.Column = column }
}

// Delimited decodes the column as a delimiter-joined list of keys.
func Delimited(delimiter string, sentinels ...string) ObjectPropertyOption {
	return func(p *ObjectProperty) {
		p.Decoder = DecodeDelimitedList
		p.Delimiter = delimiter
		p.Sentinels = sentinels
	}
}

// NestedRecords decodes the column as a JSON array of child records keyed
// by keyField.
func NestedRecords(keyField string) ObjectPropertyOption {
	return func(p *ObjectProperty) {
		p.Decoder = DecodeNestedRecords
		p.KeyField = keyField
	}
}

// WithEdgeDescription sets the human-readable property description.
func WithEdgeDescription(desc string) ObjectPropertyOption {
	return func(p *ObjectProperty) { p.Description = desc }
}

// NewRegistry creates an empty registry rooted at the given namespace IRI.
// Class and property IRIs live under namespace; entity instance IRIs live
// under namespace + "entity/". The rdf, rdfs, owl, and xsd prefixes are
// bound by default.
func NewRegistry(namespace string) *Registry {
	if !strings.HasSuffix(namespace, "/") && !strings.HasSuffix(namespace, "#") {
		namespace += "/"
	}
	return &Registry{
		ns:          namespace,
		entityNS:    namespace + "entity/",
		classes:     make(map[string]*Class),
		dataProps:   make(map[string]*DataProperty),
		objectProps: make(map[string]*ObjectProperty),
		prefixes: map[string]string{
			"rdf":  RDFNamespace,
			"rdfs": RDFSNamespace,
			"owl":  OWLNamespace,
			"xsd":  XSDNamespace,
		},
	}
}

// Namespace returns the ontology namespace IRI.
func (r *Registry) Namespace() string { return r.ns }

// EntityNamespace returns the entity instance namespace IRI.
func (r *Registry) EntityNamespace() string { return r.entityNS }

// BindPrefix binds a namespace prefix for serialization. The engine's own
// namespace should be bound here so exports use short names.
func (r *Registry) BindPrefix(prefix, iri string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustMutable()
	r.prefixes[prefix] = iri
}

// Prefixes returns a copy of the prefix bindings.
func (r *Registry) Prefixes() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.prefixes))
	for k, v := range r.prefixes {
		out[k] = v
	}
	return out
}

// RegisterClass registers a class. Re-registration overwrites the earlier
// declaration; validation happens at Freeze.
func (r *Registry) RegisterClass(name string, opts ...ClassOption) {
	c := &Class{Name: name}
	for _, opt := range opts {
		opt(c)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustMutable()
	r.classes[name] = c
}

// RegisterDataProperty registers a typed data property owned by class.
func (r *Registry) RegisterDataProperty(name, class string, valueType ValueType, opts ...DataPropertyOption) {
	p := &DataProperty{
		Name:    name,
		Class:   class,
		Type:    valueType,
		Column:  name,
		Decoder: DecodeTypedScalar,
	}
	for _, opt := range opts {
		opt(p)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustMutable()
	r.dataProps[name] = p
}

// RegisterObjectProperty registers an object property from domain to rng.
func (r *Registry) RegisterObjectProperty(name, domain, rng string, opts ...ObjectPropertyOption) {
	p := &ObjectProperty{
		Name:      name,
		Domain:    domain,
		Range:     rng,
		Column:    name,
		Decoder:   DecodeScalar,
		Delimiter: "|",
		KeyField:  "id",
	}
	for _, opt := range opts {
		opt(p)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustMutable()
	r.objectProps[name] = p
}

func (r *Registry) mustMutable() {
	if r.frozen {
		panic("schema: registration after Freeze")
	}
}

// Freeze validates the registry and makes it immutable. It returns a
// *SchemaError describing the first inconsistency found:
// undeclared parent, domain, or range classes, invalid value types,
// or asymmetric inverse-of pairs.
func (r *Registry) Freeze() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return nil
	}

	for _, name := range sortedKeys(r.classes) {
		c := r.classes[name]
		if c.Parent != "" {
			if _, ok := r.classes[c.Parent]; !ok {
				return schemaErrorf(name, "parent class %q not declared", c.Parent)
			}
		}
	}

	// Detect subclass cycles before anything walks the parent chains.
	for _, name := range sortedKeys(r.classes) {
		seen := map[string]bool{}
		for cur := name; cur != ""; cur = r.classes[cur].Parent {
			if seen[cur] {
				return schemaErrorf(name, "subclass cycle through %q", cur)
			}
			seen[cur] = true
		}
	}

	for _, name := range sortedKeys(r.classes) {
		c := r.classes[name]
		if c.KeyProperty != "" {
			kp, ok := r.dataProps[c.KeyProperty]
			if !ok {
				return schemaErrorf(name, "key property %q not declared", c.KeyProperty)
			}
			if !r.isSubclassLocked(name, kp.Class) {
				return schemaErrorf(name, "key property %q is owned by unrelated class %q", c.KeyProperty, kp.Class)
			}
		}
	}

	for _, name := range sortedKeys(r.dataProps) {
		p := r.dataProps[name]
		if _, ok := r.classes[p.Class]; !ok {
			return schemaErrorf(name, "owning class %q not declared", p.Class)
		}
		if !p.Type.IsValid() {
			return schemaErrorf(name, "invalid value type %q", p.Type)
		}
	}

	for _, name := range sortedKeys(r.objectProps) {
		p := r.objectProps[name]
		if _, ok := r.classes[p.Domain]; !ok {
			return schemaErrorf(name, "domain class %q not declared", p.Domain)
		}
		if _, ok := r.classes[p.Range]; !ok {
			return schemaErrorf(name, "range class %q not declared", p.Range)
		}
		if p.InverseOf != "" {
			inv, ok := r.objectProps[p.InverseOf]
			if !ok {
				return schemaErrorf(name, "inverse property %q not declared", p.InverseOf)
			}
			if inv.InverseOf != name {
				return schemaErrorf(name, "inverse property %q does not declare %q back", p.InverseOf, name)
			}
			if inv.Domain != p.Range || inv.Range != p.Domain {
				return schemaErrorf(name, "inverse property %q has unmirrored domain/range", p.InverseOf)
			}
		}
	}

	r.dataByClass = make(map[string][]*DataProperty)
	r.objectByClass = make(map[string][]*ObjectProperty)
	for class := range r.classes {
		for cur := class; cur != ""; cur = r.classes[cur].Parent {
			for _, name := range sortedKeys(r.dataProps) {
				if p := r.dataProps[name]; p.Class == cur {
					r.dataByClass[class] = append(r.dataByClass[class], p)
				}
			}
			for _, name := range sortedKeys(r.objectProps) {
				if p := r.objectProps[name]; p.Domain == cur {
					r.objectByClass[class] = append(r.objectByClass[class], p)
				}
			}
		}
	}

	r.frozen = true
	return nil
}

// Frozen reports whether Freeze has completed.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Class returns the class declaration, or nil if not registered.
func (r *Registry) Class(name string) *Class {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.classes[name]
}

// DataProperty returns the data property declaration, or nil.
func (r *Registry) DataProperty(name string) *DataProperty {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dataProps[name]
}

// ObjectProperty returns the object property declaration, or nil.
func (r *Registry) ObjectProperty(name string) *ObjectProperty {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.objectProps[name]
}

// DataPropertiesOf returns the data properties applicable to class,
// including inherited ones. Only valid after Freeze.
func (r *Registry) DataPropertiesOf(class string) []*DataProperty {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dataByClass[class]
}

// ObjectPropertiesOf returns the object properties whose domain is class or
// one of its ancestors. Only valid after Freeze.
func (r *Registry) ObjectPropertiesOf(class string) []*ObjectProperty {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.objectByClass[class]
}

// KeyPropertyOf returns the identifying data property for a class, walking
// the parent chain until a declaration is found. Returns nil when no class
// in the chain declares one.
func (r *Registry) KeyPropertyOf(class string) *DataProperty {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for cur := class; cur != ""; {
		c, ok := r.classes[cur]
		if !ok {
			return nil
		}
		if c.KeyProperty != "" {
			return r.dataProps[c.KeyProperty]
		}
		cur = c.Parent
	}
	return nil
}

// IsSubclassOf reports whether class equals ancestor or descends from it.
func (r *Registry) IsSubclassOf(class, ancestor string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isSubclassLocked(class, ancestor)
}

func (r *Registry) isSubclassLocked(class, ancestor string) bool {
	for cur := class; cur != ""; {
		if cur == ancestor {
			return true
		}
		c, ok := r.classes[cur]
		if !ok {
			return false
		}
		cur = c.Parent
	}
	return false
}

// Classes returns all registered class names, sorted.
func (r *Registry) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.classes)
}

// DataProperties returns all registered data property names, sorted.
func (r *Registry) DataProperties() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.dataProps)
}

// ObjectProperties returns all registered object property names, sorted.
func (r *Registry) ObjectProperties() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.objectProps)
}

// ClassIRI returns the full IRI for a class name.
func (r *Registry) ClassIRI(name string) string {
	return r.ns + name
}

// PropertyIRI returns the full IRI for a property name.
func (r *Registry) PropertyIRI(name string) string {
	return r.ns + name
}

// EntityIRI returns the full IRI for a dotted entity ID.
// Example: "movie.3" -> "<entityNS>movie/3".
func (r *Registry) EntityIRI(id string) string {
	return r.entityNS + strings.ReplaceAll(id, ".", "/")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
