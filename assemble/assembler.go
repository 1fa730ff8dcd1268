package assemble

import (
	"log/slog"
	"strings"

	"github.com/c360studio/relgraph/graph"
	"github.com/c360studio/relgraph/resolve"
	"github.com/c360studio/relgraph/schema"
	"github.com/c360studio/relgraph/source"
)

// defaultNullMarkers are cell values treated as absent in any column.
var defaultNullMarkers = []string{"", "null", "\\N", "n/a", "(none)"}

// Mapping binds one source table to the class its rows materialize as.
type Mapping struct {
	// Class is the class asserted for each row.
	Class string

	// KeyColumn is the column holding the business key.
	KeyColumn string
}

// Assembler emits the statements asserting one source record: class
// membership, data-property literals, and edges to related entities. It
// writes into the store it was constructed with; a run's components share
// one explicitly owned store, never a global.
type Assembler struct {
	registry *schema.Registry
	store    *graph.Store
	resolver *resolve.Resolver
	decoders *DecoderRegistry
	logger   *slog.Logger
	nulls    map[string]bool
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) { a.logger = logger }
}

// WithDecoderRegistry replaces the default decoder registry.
func WithDecoderRegistry(r *DecoderRegistry) Option {
	return func(a *Assembler) { a.decoders = r }
}

// WithNullMarkers replaces the default set of cell values treated as null.
func WithNullMarkers(markers ...string) Option {
	return func(a *Assembler) {
		a.nulls = make(map[string]bool, len(markers))
		for _, m := range markers {
			a.nulls[strings.ToLower(strings.TrimSpace(m))] = true
		}
	}
}

// New creates an Assembler writing into the given store. The registry must
// be frozen before any row is processed.
func New(registry *schema.Registry, store *graph.Store, resolver *resolve.Resolver, opts ...Option) *Assembler {
	a := &Assembler{
		registry: registry,
		store:    store,
		resolver: resolver,
		decoders: NewDecoderRegistry(),
		logger:   slog.Default(),
	}
	a.nulls = make(map[string]bool, len(defaultNullMarkers))
	for _, m := range defaultNullMarkers {
		a.nulls[strings.ToLower(m)] = true
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Process materializes one source row: resolves its identity, asserts class
// membership and data properties, and assembles edges, repairing dangling
// references as they appear. It returns the statements newly added to the
// store and the warnings collected along the way. A row without a usable
// business key is skipped whole; any other problem skips only the affected
// attribute or edge.
func (a *Assembler) Process(table string, m Mapping, row source.Row) ([]graph.Statement, []Warning) {
	var added []graph.Statement
	var warnings []Warning

	add := func(subject, predicate string, object graph.Object) {
		st := graph.Statement{Subject: subject, Predicate: predicate, Object: object}
		if a.store.AddStatement(st) {
			added = append(added, st)
		}
	}

	rawKey := strings.TrimSpace(row.Get(m.KeyColumn))
	id, err := a.resolver.Resolve(m.Class, rawKey)
	if err != nil {
		warnings = append(warnings, &SourceRowError{
			Table: table, RowKey: rawKey, Column: m.KeyColumn,
			Reason: "missing business key, row skipped",
		})
		return nil, warnings
	}

	add(id, graph.TypePredicate, graph.ClassRef(m.Class))

	// The identifying property is asserted from the key column even when
	// the schema binds it to a different column name.
	if kp := a.registry.KeyPropertyOf(m.Class); kp != nil {
		if obj, err := Literal(rawKey, kp.Type); err == nil {
			a.assertData(id, kp, obj, add)
		}
	}

	for _, p := range a.registry.DataPropertiesOf(m.Class) {
		raw := row.Get(p.Column)
		if a.isNull(raw) {
			continue
		}
		obj, err := Literal(raw, p.Type)
		if err != nil {
			warnings = append(warnings, &SourceRowError{
				Table: table, RowKey: rawKey, Column: p.Column, Reason: err.Error(),
			})
			continue
		}
		a.assertData(id, p, obj, add)
	}

	for _, p := range a.registry.ObjectPropertiesOf(m.Class) {
		raw := row.Get(p.Column)
		if a.isNull(raw) {
			continue
		}
		edgeWarnings := a.assembleEdges(table, rawKey, id, p, raw, add)
		warnings = append(warnings, edgeWarnings...)
	}

	return added, warnings
}

// assembleEdges decodes one edge column and asserts the resulting edges,
// invoking the repair pass for each object entity.
func (a *Assembler) assembleEdges(table, rowKey, subject string, p *schema.ObjectProperty, raw string, add func(string, string, graph.Object)) []Warning {
	var warnings []Warning

	dec, err := a.decoders.ForProperty(p)
	if err != nil {
		warnings = append(warnings, &SourceRowError{
			Table: table, RowKey: rowKey, Column: p.Column, Reason: err.Error(),
		})
		return warnings
	}

	values, err := dec.Decode(raw)
	if err != nil {
		warnings = append(warnings, &SourceRowError{
			Table: table, RowKey: rowKey, Column: p.Column, Reason: err.Error(),
		})
		return warnings
	}

	for _, v := range values {
		objID, err := a.resolver.Resolve(p.Range, v.Raw)
		if err != nil {
			warnings = append(warnings, &SourceRowError{
				Table: table, RowKey: rowKey, Column: p.Column,
				Reason: "related record without a business key, item skipped",
			})
			continue
		}

		add(subject, p.Name, graph.EntityRef(objID))
		if stub := a.repairObject(p, objID, v.Raw, add); stub != nil {
			warnings = append(warnings, stub)
		}
		if p.InverseOf != "" {
			add(objID, p.InverseOf, graph.EntityRef(subject))
		}

		// Nested records may carry data properties of the range class.
		for field, fieldRaw := range v.Fields {
			dp := a.dataPropertyForColumn(p.Range, field)
			if dp == nil || a.isNull(fieldRaw) {
				continue
			}
			obj, err := Literal(fieldRaw, dp.Type)
			if err != nil {
				warnings = append(warnings, &SourceRowError{
					Table: table, RowKey: rowKey, Column: p.Column,
					Reason: field + ": " + err.Error(),
				})
				continue
			}
			a.assertData(objID, dp, obj, add)
		}
	}

	return warnings
}

// repairObject synthesizes a minimal stub when an edge references an entity
// with no class-membership statement: membership plus the business key,
// nothing else. The membership probe guarantees each gap is repaired at
// most once.
func (a *Assembler) repairObject(p *schema.ObjectProperty, objID, rawKey string, add func(string, string, graph.Object)) *ReferentialGapWarning {
	if a.store.HasSubject(objID, graph.TypePredicate) {
		return nil
	}

	add(objID, graph.TypePredicate, graph.ClassRef(p.Range))
	if kp := a.registry.KeyPropertyOf(p.Range); kp != nil {
		if obj, err := Literal(strings.TrimSpace(rawKey), kp.Type); err == nil {
			add(objID, kp.Name, obj)
		}
	}

	a.logger.Debug("repaired dangling reference",
		"class", p.Range, "entity", objID, "predicate", p.Name)

	return &ReferentialGapWarning{
		Class:     p.Range,
		EntityID:  objID,
		RawKey:    strings.TrimSpace(rawKey),
		Predicate: p.Name,
	}
}

// assertData asserts a data-property literal, enforcing functional
// cardinality with last-write-wins overwrite.
func (a *Assembler) assertData(subject string, p *schema.DataProperty, obj graph.Object, add func(string, string, graph.Object)) {
	if p.Functional {
		existing := a.store.ObjectsOf(subject, p.Name)
		if len(existing) > 0 && !containsObject(existing, obj) {
			a.logger.Warn("functional property conflict, keeping latest value",
				"subject", subject, "property", p.Name,
				"old", existing[0].Value, "new", obj.Value)
			a.store.Replace(subject, p.Name, obj)
			return
		}
	}
	add(subject, p.Name, obj)
}

func (a *Assembler) dataPropertyForColumn(class, column string) *schema.DataProperty {
	for _, dp := range a.registry.DataPropertiesOf(class) {
		if dp.Column == column {
			return dp
		}
	}
	return nil
}

func (a *Assembler) isNull(raw string) bool {
	return a.nulls[strings.ToLower(strings.TrimSpace(raw))]
}

func containsObject(objs []graph.Object, target graph.Object) bool {
	for _, o := range objs {
		if o == target {
			return true
		}
	}
	return false
}
