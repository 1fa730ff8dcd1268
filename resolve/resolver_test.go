package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		name  string
		class string
		key   string
		want  string
	}{
		{"numeric key", "Movie", "3", "movie.3"},
		{"word key", "Genre", "Action", "genre.action"},
		{"multi word", "Person", "Jane Doe", "person.jane_doe"},
		{"punctuation collapses", "Genre", "Sci-Fi / Fantasy", "genre.sci_fi_fantasy"},
		{"accents folded", "Person", "Renée Zellwéger", "person.renee_zellweger"},
		{"class case folded", "DIRECTOR", "99", "director.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.class, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_Deduplication(t *testing.T) {
	r := NewResolver()

	// Trim, case, and interior whitespace variants collapse to one entity.
	variants := []string{"Action", " action ", "ACTION", "action"}
	first, err := r.Resolve("Genre", variants[0])
	require.NoError(t, err)
	for _, v := range variants[1:] {
		got, err := r.Resolve("Genre", v)
		require.NoError(t, err)
		assert.Equal(t, first, got, "variant %q", v)
	}
}

func TestResolver_Idempotent(t *testing.T) {
	r := NewResolver()

	a, err := r.Resolve("Person", "Jane Doe")
	require.NoError(t, err)
	b, err := r.Resolve("Person", "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// A second resolver instance yields the same ID; no hidden state.
	c, err := NewResolver().Resolve("Person", "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, a, c)
}

func TestResolver_EmptyKey(t *testing.T) {
	r := NewResolver()

	for _, raw := range []string{"", "   ", "---", "!?"} {
		_, err := r.Resolve("Movie", raw)
		assert.ErrorIs(t, err, ErrEmptyKey, "raw %q", raw)
	}
}

func TestResolver_Slug(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		raw  string
		want string
	}{
		{"Jane Doe", "jane_doe"},
		{"  trims  ", "trims"},
		{"keeps_123", "keeps_123"},
		{"trailing!!!", "trailing"},
		{"a--b__c", "a_b_c"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Slug(tt.raw), "raw %q", tt.raw)
	}
}

func TestResolver_DistinctClassesDistinctIDs(t *testing.T) {
	r := NewResolver()

	a, err := r.Resolve("Actor", "7")
	require.NoError(t, err)
	d, err := r.Resolve("Director", "7")
	require.NoError(t, err)
	assert.NotEqual(t, a, d)
}
