package assemble

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/c360studio/relgraph/schema"
)

// Value is one decoded item from a source column: a scalar token or a child
// record's business key plus its remaining fields.
type Value struct {
	// Raw is the scalar token or the child record's business key.
	Raw string

	// Fields holds the remaining child-record fields for nested decoders,
	// keyed by field name with string-converted values.
	Fields map[string]string
}

// Decoder decodes one raw cell into zero or more values.
type Decoder interface {
	// Kind returns the decoder kind this decoder implements.
	Kind() schema.DecoderKind

	// Decode decodes the raw cell. A nil slice means the cell carried no
	// usable values.
	Decode(raw string) ([]Value, error)
}

// DecoderFactory builds a decoder configured for an object property.
type DecoderFactory func(prop *schema.ObjectProperty) Decoder

// DecoderRegistry maps the closed set of decoder kinds to factories. Every
// edge column binds to exactly one kind at schema-registration time.
type DecoderRegistry struct {
	mu        sync.RWMutex
	factories map[schema.DecoderKind]DecoderFactory
}

// NewDecoderRegistry creates a registry with the default decoders.
func NewDecoderRegistry() *DecoderRegistry {
	r := &DecoderRegistry{
		factories: make(map[schema.DecoderKind]DecoderFactory),
	}
	r.Register(schema.DecodeScalar, func(*schema.ObjectProperty) Decoder {
		return scalarDecoder{}
	})
	r.Register(schema.DecodeDelimitedList, func(p *schema.ObjectProperty) Decoder {
		return newDelimitedListDecoder(p.Delimiter, p.Sentinels)
	})
	r.Register(schema.DecodeNestedRecords, func(p *schema.ObjectProperty) Decoder {
		return nestedRecordsDecoder{keyField: p.KeyField}
	})
	return r
}

// Register adds or replaces the factory for a decoder kind.
func (r *DecoderRegistry) Register(kind schema.DecoderKind, factory DecoderFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = factory
}

// ForProperty returns a decoder configured for the property's declared kind.
func (r *DecoderRegistry) ForProperty(prop *schema.ObjectProperty) (Decoder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[prop.Decoder]
	if !ok {
		return nil, fmt.Errorf("no decoder registered for kind %q", prop.Decoder)
	}
	return factory(prop), nil
}

// scalarDecoder passes a single trimmed token through.
type scalarDecoder struct{}

func (scalarDecoder) Kind() schema.DecoderKind { return schema.DecodeScalar }

func (scalarDecoder) Decode(raw string) ([]Value, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return nil, nil
	}
	return []Value{{Raw: token}}, nil
}

// delimitedListDecoder splits a delimiter-joined list, dropping empty and
// sentinel tokens.
type delimitedListDecoder struct {
	delimiter string
	sentinels map[string]bool
}

func newDelimitedListDecoder(delimiter string, sentinels []string) delimitedListDecoder {
	if delimiter == "" {
		delimiter = "|"
	}
	set := make(map[string]bool, len(sentinels))
	for _, s := range sentinels {
		set[strings.ToLower(strings.TrimSpace(s))] = true
	}
	return delimitedListDecoder{delimiter: delimiter, sentinels: set}
}

func (delimitedListDecoder) Kind() schema.DecoderKind { return schema.DecodeDelimitedList }

func (d delimitedListDecoder) Decode(raw string) ([]Value, error) {
	var out []Value
	for _, token := range strings.Split(raw, d.delimiter) {
		token = strings.TrimSpace(token)
		if token == "" || d.sentinels[strings.ToLower(token)] {
			continue
		}
		out = append(out, Value{Raw: token})
	}
	return out, nil
}

// nestedRecordsDecoder parses a JSON array of child records. A malformed
// array is an error; a malformed item inside a well-formed array is the
// caller's per-item problem (items missing the key field keep an empty Raw).
type nestedRecordsDecoder struct {
	keyField string
}

func (nestedRecordsDecoder) Kind() schema.DecoderKind { return schema.DecodeNestedRecords }

func (d nestedRecordsDecoder) Decode(raw string) ([]Value, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	var items []map[string]any
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
		return nil, fmt.Errorf("malformed nested record list: %w", err)
	}

	keyField := d.keyField
	if keyField == "" {
		keyField = "id"
	}

	out := make([]Value, 0, len(items))
	for _, item := range items {
		v := Value{Fields: make(map[string]string, len(item))}
		for field, fieldVal := range item {
			s := jsonScalar(fieldVal)
			if field == keyField {
				v.Raw = s
				continue
			}
			v.Fields[field] = s
		}
		out = append(out, v)
	}
	return out, nil
}

// jsonScalar renders a decoded JSON value as the string form the literal
// parser expects. Numbers keep their shortest representation.
func jsonScalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprintf("%v", x)
		}
		return string(b)
	}
}
