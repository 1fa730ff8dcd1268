package pipeline

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/relgraph/graph"
)

func TestPublisher_NilConnectionIsNoOp(t *testing.T) {
	store := graph.NewStore()
	store.Add("movie.3", graph.TypePredicate, graph.ClassRef("Movie"))

	p := NewPublisher(nil, "", "relgraph")
	assert.NoError(t, p.Publish(context.Background(), store))

	var nilPub *Publisher
	assert.NoError(t, nilPub.Publish(context.Background(), store))
}

func TestPublisher_Defaults(t *testing.T) {
	p := NewPublisher(nil, "", "")
	assert.Equal(t, GraphIngestSubject, p.subject)
	assert.Equal(t, "relgraph", p.source)

	p = NewPublisher(nil, "custom.subject", "loader")
	assert.Equal(t, "custom.subject", p.subject)
}

func TestEntityIngestMessage_Wire(t *testing.T) {
	msg := EntityIngestMessage{
		ID: "movie.3",
		Triples: []Triple{
			{Subject: "movie.3", Predicate: "title", Object: "Heat", Source: "relgraph", Confidence: 1.0},
		},
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "movie.3", decoded["id"])

	triples, ok := decoded["triples"].([]any)
	require.True(t, ok)
	require.Len(t, triples, 1)
	first, ok := triples[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "title", first["predicate"])
	assert.Equal(t, 1.0, first["confidence"])
}
