// Package media defines the media-catalog example ontology: people, movies,
// and genres, with the foreign-key and compound-column conventions of a
// typical catalog extract.
package media

import (
	"github.com/c360studio/relgraph/assemble"
	"github.com/c360studio/relgraph/schema"
)

// Namespace is the base IRI prefix for media-catalog ontology terms.
const Namespace = "https://relgraph.dev/media/"

// Prefix is the namespace prefix bound for serialization.
const Prefix = "mc"

// Schema builds and freezes the media-catalog registry.
func Schema() (*schema.Registry, error) {
	r := schema.NewRegistry(Namespace)
	r.BindPrefix(Prefix, Namespace)

	r.RegisterClass("Person",
		schema.WithKeyProperty("personId"),
		schema.WithClassDescription("A person involved in making films"))
	r.RegisterClass("Actor", schema.WithParent("Person"))
	r.RegisterClass("Director", schema.WithParent("Person"))
	r.RegisterClass("Movie",
		schema.WithKeyProperty("movieId"))
	r.RegisterClass("Genre",
		schema.WithKeyProperty("genreName"))

	r.RegisterDataProperty("personId", "Person", schema.ValueString,
		schema.InverseFunctional(),
		schema.FromColumn("id"))
	r.RegisterDataProperty("name", "Person", schema.ValueString,
		schema.Functional())
	r.RegisterDataProperty("birthYear", "Person", schema.ValueInteger,
		schema.Functional())

	r.RegisterDataProperty("movieId", "Movie", schema.ValueString,
		schema.InverseFunctional(),
		schema.FromColumn("id"))
	r.RegisterDataProperty("title", "Movie", schema.ValueString,
		schema.Functional())
	r.RegisterDataProperty("year", "Movie", schema.ValueInteger,
		schema.Functional())
	r.RegisterDataProperty("rating", "Movie", schema.ValueFloat,
		schema.Functional())
	r.RegisterDataProperty("releaseDate", "Movie", schema.ValueDate,
		schema.Functional(),
		schema.FromColumn("released"))

	r.RegisterDataProperty("genreName", "Genre", schema.ValueString,
		schema.InverseFunctional(),
		schema.FromColumn("name"))

	r.RegisterObjectProperty("hasDirector", "Movie", "Director",
		schema.EdgeColumn("directorID"),
		schema.InverseOf("directs"))
	r.RegisterObjectProperty("directs", "Director", "Movie",
		schema.InverseOf("hasDirector"))
	r.RegisterObjectProperty("hasActor", "Movie", "Actor",
		schema.EdgeColumn("cast"),
		schema.NestedRecords("id"))
	r.RegisterObjectProperty("hasGenre", "Movie", "Genre",
		schema.EdgeColumn("genres"),
		schema.Delimited("|", "(none)"))

	if err := r.Freeze(); err != nil {
		return nil, err
	}
	return r, nil
}

// Mappings binds the catalog extract's table names to their classes.
func Mappings() map[string]assemble.Mapping {
	return map[string]assemble.Mapping{
		"actors":    {Class: "Actor", KeyColumn: "id"},
		"directors": {Class: "Director", KeyColumn: "id"},
		"movies":    {Class: "Movie", KeyColumn: "id"},
		"genres":    {Class: "Genre", KeyColumn: "name"},
	}
}
