package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/c360studio/relgraph/graph"
)

// GraphIngestSubject is the subject the downstream rule-evaluation
// component consumes materialized entities from.
const GraphIngestSubject = "graph.ingest.entity"

// Triple is the wire form of one statement in an ingest message.
type Triple struct {
	Subject    string    `json:"subject"`
	Predicate  string    `json:"predicate"`
	Object     any       `json:"object"`
	Source     string    `json:"source"`
	Timestamp  time.Time `json:"timestamp"`
	Confidence float64   `json:"confidence"`
}

// EntityIngestMessage is the per-entity message published after a run.
type EntityIngestMessage struct {
	ID        string    `json:"id"`
	Triples   []Triple  `json:"triples"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Publisher sends materialized entities to the downstream consumer over
// NATS. Publishing happens once per run, after the load pass completes.
type Publisher struct {
	nc      *nats.Conn
	subject string
	source  string
}

// NewPublisher creates a publisher on the given connection. An empty
// subject falls back to GraphIngestSubject.
func NewPublisher(nc *nats.Conn, subject, sourceName string) *Publisher {
	if subject == "" {
		subject = GraphIngestSubject
	}
	if sourceName == "" {
		sourceName = "relgraph"
	}
	return &Publisher{nc: nc, subject: subject, source: sourceName}
}

// Publish sends one message per entity in the store, carrying all of the
// entity's statements. A nil connection is a no-op so runs degrade
// gracefully without a broker.
func (p *Publisher) Publish(ctx context.Context, store *graph.Store) error {
	if p == nil || p.nc == nil {
		return nil
	}

	now := time.Now()
	bySubject := make(map[string][]Triple)
	for _, st := range store.Statements() {
		bySubject[st.Subject] = append(bySubject[st.Subject], Triple{
			Subject:    st.Subject,
			Predicate:  st.Predicate,
			Object:     st.Object.Value,
			Source:     p.source,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}

	for _, subject := range store.Subjects() {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg := EntityIngestMessage{
			ID:        subject,
			Triples:   bySubject[subject],
			UpdatedAt: now,
		}
		data, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("marshal entity %s: %w", subject, err)
		}
		if err := p.nc.Publish(p.subject, data); err != nil {
			return fmt.Errorf("publish entity %s: %w", subject, err)
		}
	}

	if err := p.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush publishes: %w", err)
	}
	return nil
}
