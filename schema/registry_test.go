package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *Registry {
	r := NewRegistry("https://example.org/test/")
	r.RegisterClass("Person", WithKeyProperty("personId"))
	r.RegisterClass("Actor", WithParent("Person"))
	r.RegisterClass("Movie", WithKeyProperty("movieId"))
	r.RegisterDataProperty("personId", "Person", ValueString, InverseFunctional(), FromColumn("id"))
	r.RegisterDataProperty("name", "Person", ValueString, Functional())
	r.RegisterDataProperty("movieId", "Movie", ValueString, InverseFunctional(), FromColumn("id"))
	r.RegisterDataProperty("title", "Movie", ValueString, Functional())
	r.RegisterObjectProperty("hasActor", "Movie", "Actor", InverseOf("actsIn"))
	r.RegisterObjectProperty("actsIn", "Actor", "Movie", InverseOf("hasActor"))
	return r
}

func TestRegistry_Freeze(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.Freeze())
	assert.True(t, r.Frozen())

	// Freeze is idempotent.
	require.NoError(t, r.Freeze())
}

func TestRegistry_FreezeErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Registry
	}{
		{
			name: "undeclared parent",
			build: func() *Registry {
				r := NewRegistry("https://example.org/test/")
				r.RegisterClass("Actor", WithParent("Person"))
				return r
			},
		},
		{
			name: "undeclared owning class",
			build: func() *Registry {
				r := NewRegistry("https://example.org/test/")
				r.RegisterDataProperty("title", "Movie", ValueString)
				return r
			},
		},
		{
			name: "undeclared range",
			build: func() *Registry {
				r := NewRegistry("https://example.org/test/")
				r.RegisterClass("Movie")
				r.RegisterObjectProperty("hasActor", "Movie", "Actor")
				return r
			},
		},
		{
			name: "invalid value type",
			build: func() *Registry {
				r := NewRegistry("https://example.org/test/")
				r.RegisterClass("Movie")
				r.RegisterDataProperty("title", "Movie", ValueType("decimal"))
				return r
			},
		},
		{
			name: "asymmetric inverse",
			build: func() *Registry {
				r := NewRegistry("https://example.org/test/")
				r.RegisterClass("Movie")
				r.RegisterClass("Actor")
				r.RegisterObjectProperty("hasActor", "Movie", "Actor", InverseOf("actsIn"))
				r.RegisterObjectProperty("actsIn", "Actor", "Movie")
				return r
			},
		},
		{
			name: "unmirrored inverse domain",
			build: func() *Registry {
				r := NewRegistry("https://example.org/test/")
				r.RegisterClass("Movie")
				r.RegisterClass("Actor")
				r.RegisterClass("Genre")
				r.RegisterObjectProperty("hasActor", "Movie", "Actor", InverseOf("actsIn"))
				r.RegisterObjectProperty("actsIn", "Genre", "Movie", InverseOf("hasActor"))
				return r
			},
		},
		{
			name: "key property of unrelated class",
			build: func() *Registry {
				r := NewRegistry("https://example.org/test/")
				r.RegisterClass("Movie", WithKeyProperty("personId"))
				r.RegisterClass("Person")
				r.RegisterDataProperty("personId", "Person", ValueString)
				return r
			},
		},
		{
			name: "subclass cycle",
			build: func() *Registry {
				r := NewRegistry("https://example.org/test/")
				r.RegisterClass("A", WithParent("B"))
				r.RegisterClass("B", WithParent("A"))
				return r
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Freeze()
			require.Error(t, err)
			var serr *SchemaError
			assert.ErrorAs(t, err, &serr)
		})
	}
}

func TestRegistry_PropertyInheritance(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.Freeze())

	props := r.DataPropertiesOf("Actor")
	names := make([]string, 0, len(props))
	for _, p := range props {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "personId")
	assert.Contains(t, names, "name")
	assert.NotContains(t, names, "title")

	edges := r.ObjectPropertiesOf("Actor")
	require.Len(t, edges, 1)
	assert.Equal(t, "actsIn", edges[0].Name)
}

func TestRegistry_KeyPropertyOf(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.Freeze())

	t.Run("direct", func(t *testing.T) {
		kp := r.KeyPropertyOf("Movie")
		require.NotNil(t, kp)
		assert.Equal(t, "movieId", kp.Name)
	})

	t.Run("inherited", func(t *testing.T) {
		kp := r.KeyPropertyOf("Actor")
		require.NotNil(t, kp)
		assert.Equal(t, "personId", kp.Name)
	})

	t.Run("unknown class", func(t *testing.T) {
		assert.Nil(t, r.KeyPropertyOf("Ghost"))
	})
}

func TestRegistry_IsSubclassOf(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.Freeze())

	assert.True(t, r.IsSubclassOf("Actor", "Person"))
	assert.True(t, r.IsSubclassOf("Person", "Person"))
	assert.False(t, r.IsSubclassOf("Person", "Actor"))
	assert.False(t, r.IsSubclassOf("Movie", "Person"))
}

func TestRegistry_Prefixes(t *testing.T) {
	r := NewRegistry("https://example.org/test/")
	r.BindPrefix("ex", "https://example.org/test/")

	prefixes := r.Prefixes()
	assert.Equal(t, "https://example.org/test/", prefixes["ex"])
	assert.Equal(t, XSDNamespace, prefixes["xsd"])
	assert.Equal(t, RDFNamespace, prefixes["rdf"])
}

func TestRegistry_IRIs(t *testing.T) {
	r := NewRegistry("https://example.org/test")

	assert.Equal(t, "https://example.org/test/Movie", r.ClassIRI("Movie"))
	assert.Equal(t, "https://example.org/test/title", r.PropertyIRI("title"))
	assert.Equal(t, "https://example.org/test/entity/movie/3", r.EntityIRI("movie.3"))
}

func TestRegistry_RegisterAfterFreezePanics(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.Freeze())

	assert.Panics(t, func() {
		r.RegisterClass("Late")
	})
}
