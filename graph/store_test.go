package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetSemantics(t *testing.T) {
	g := NewStore()

	assert.True(t, g.Add("movie.3", "title", String("Heat")))
	assert.False(t, g.Add("movie.3", "title", String("Heat")))
	assert.Equal(t, 1, g.Size())

	// Same predicate, different object is a distinct statement.
	assert.True(t, g.Add("movie.3", "hasGenre", EntityRef("genre.action")))
	assert.True(t, g.Add("movie.3", "hasGenre", EntityRef("genre.comedy")))
	assert.Equal(t, 3, g.Size())
}

func TestStore_Contains(t *testing.T) {
	g := NewStore()
	g.Add("movie.3", TypePredicate, ClassRef("Movie"))

	assert.True(t, g.Contains("movie.3", TypePredicate, ClassRef("Movie")))
	assert.False(t, g.Contains("movie.3", TypePredicate, ClassRef("Actor")))

	// Kind participates in identity, not just the lexical value.
	g.Add("movie.3", "year", String("1995"))
	assert.False(t, g.Contains("movie.3", "year", Integer(1995)))
}

func TestStore_Replace(t *testing.T) {
	g := NewStore()
	g.Add("person.7", "name", String("Jane"))
	g.Add("person.7", "birthYear", Integer(1970))

	displaced := g.Replace("person.7", "name", String("Jane Doe"))
	assert.Equal(t, 1, displaced)
	assert.Equal(t, 2, g.Size())
	assert.False(t, g.Contains("person.7", "name", String("Jane")))
	assert.True(t, g.Contains("person.7", "name", String("Jane Doe")))

	// Replacing with no prior value is just an insert.
	displaced = g.Replace("person.7", "title", String("Dr"))
	assert.Equal(t, 0, displaced)
}

func TestStore_HasSubject(t *testing.T) {
	g := NewStore()
	assert.False(t, g.HasSubject("person.99", TypePredicate))

	g.Add("person.99", TypePredicate, ClassRef("Director"))
	assert.True(t, g.HasSubject("person.99", TypePredicate))
	assert.False(t, g.HasSubject("person.99", "name"))
}

func TestStore_ObjectsOf(t *testing.T) {
	g := NewStore()
	g.Add("movie.3", "hasGenre", EntityRef("genre.action"))
	g.Add("movie.3", "hasGenre", EntityRef("genre.comedy"))

	objs := g.ObjectsOf("movie.3", "hasGenre")
	require.Len(t, objs, 2)
	assert.Equal(t, EntityRef("genre.action"), objs[0])
	assert.Equal(t, EntityRef("genre.comedy"), objs[1])

	assert.Empty(t, g.ObjectsOf("movie.3", "title"))
}

func TestStore_InsertionOrder(t *testing.T) {
	g := NewStore()
	g.Add("b", "p", String("1"))
	g.Add("a", "p", String("1"))
	g.Add("b", "q", String("2"))

	stmts := g.Statements()
	require.Len(t, stmts, 3)
	assert.Equal(t, "b", stmts[0].Subject)
	assert.Equal(t, "a", stmts[1].Subject)

	assert.Equal(t, []string{"b", "a"}, g.Subjects())
}

func TestStore_ReplaceFlipBackKeepsSetSemantics(t *testing.T) {
	g := NewStore()
	g.Add("person.7", "name", String("A"))
	g.Replace("person.7", "name", String("B"))
	g.Replace("person.7", "name", String("A"))

	// Re-asserting a previously displaced value must not duplicate it in
	// the snapshot.
	assert.Equal(t, 1, g.Size())
	stmts := g.Statements()
	require.Len(t, stmts, 1)
	assert.Equal(t, String("A"), stmts[0].Object)
	assert.Equal(t, []string{"person.7"}, g.Subjects())

	objs := g.ObjectsOf("person.7", "name")
	require.Len(t, objs, 1)
	assert.Equal(t, String("A"), objs[0])
}

func TestStore_ReplaceKeepsSnapshotsConsistent(t *testing.T) {
	g := NewStore()
	g.Add("person.7", "name", String("Jane"))
	g.Replace("person.7", "name", String("Jane Doe"))

	stmts := g.Statements()
	require.Len(t, stmts, 1)
	assert.Equal(t, String("Jane Doe"), stmts[0].Object)
	assert.Equal(t, []string{"person.7"}, g.Subjects())
}

func TestObject_Constructors(t *testing.T) {
	assert.Equal(t, Object{Kind: TermInteger, Value: "42"}, Integer(42))
	assert.Equal(t, Object{Kind: TermFloat, Value: "7.5"}, Float(7.5))
	assert.Equal(t, Object{Kind: TermBoolean, Value: "true"}, Boolean(true))

	d := time.Date(1999, 12, 31, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, Object{Kind: TermDate, Value: "1999-12-31"}, Date(d))

	assert.True(t, String("x").IsLiteral())
	assert.False(t, EntityRef("movie.3").IsLiteral())
	assert.False(t, ClassRef("Movie").IsLiteral())
}
