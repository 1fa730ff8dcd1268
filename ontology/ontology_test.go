package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/relgraph/assemble"
	"github.com/c360studio/relgraph/schema"
)

func TestLoad_BundledOntologies(t *testing.T) {
	for _, name := range []string{"media", "building"} {
		t.Run(name, func(t *testing.T) {
			registry, mappings, err := Load(name)
			require.NoError(t, err)
			assert.True(t, registry.Frozen())
			assert.NotEmpty(t, mappings)

			// Every mapping points at a declared class with a key property.
			for table, m := range mappings {
				require.NotNil(t, registry.Class(m.Class), "table %s", table)
				assert.NotNil(t, registry.KeyPropertyOf(m.Class), "class %s", m.Class)
			}
		})
	}
}

func TestLoad_Unknown(t *testing.T) {
	_, _, err := Load("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestRegister(t *testing.T) {
	Register("custom", func() (*schema.Registry, map[string]assemble.Mapping, error) {
		r := schema.NewRegistry("https://example.org/custom/")
		r.RegisterClass("Thing", schema.WithKeyProperty("thingId"))
		r.RegisterDataProperty("thingId", "Thing", schema.ValueString)
		if err := r.Freeze(); err != nil {
			return nil, nil, err
		}
		return r, map[string]assemble.Mapping{"things": {Class: "Thing", KeyColumn: "id"}}, nil
	})

	registry, mappings, err := Load("custom")
	require.NoError(t, err)
	assert.True(t, registry.Frozen())
	assert.Contains(t, mappings, "things")
	assert.Contains(t, Names(), "custom")
}
