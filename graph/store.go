package graph

// Store accumulates statements with set semantics. It is not safe for
// concurrent writers; each pipeline run owns its store, per the
// single-writer contract of the load pass.
type Store struct {
	stmts map[string]Statement

	// order preserves insertion order for stable snapshots. Replace prunes
	// displaced keys, so order and stmts always hold the same set.
	order []string

	// bySubjPred indexes statement keys by subject+predicate for
	// functional-property checks and membership probes.
	bySubjPred map[string][]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		stmts:      make(map[string]Statement),
		bySubjPred: make(map[string][]string),
	}
}

func spKey(subject, predicate string) string {
	return subject + "\x1f" + predicate
}

// Add inserts a statement, reporting whether it was absent before. Adding
// an existing statement is a no-op, so a full reload never grows the store.
func (g *Store) Add(subject, predicate string, object Object) bool {
	return g.AddStatement(Statement{Subject: subject, Predicate: predicate, Object: object})
}

// AddStatement inserts a statement, reporting whether it was absent before.
func (g *Store) AddStatement(st Statement) bool {
	key := st.Key()
	if _, ok := g.stmts[key]; ok {
		return false
	}
	g.stmts[key] = st
	g.order = append(g.order, key)
	sp := spKey(st.Subject, st.Predicate)
	g.bySubjPred[sp] = append(g.bySubjPred[sp], key)
	return true
}

// Replace removes all statements for (subject, predicate) and asserts the
// given object. Used for last-write-wins overwrite of functional properties.
// It reports how many prior statements were displaced.
func (g *Store) Replace(subject, predicate string, object Object) int {
	sp := spKey(subject, predicate)
	removed := make(map[string]bool)
	for _, key := range g.bySubjPred[sp] {
		if _, ok := g.stmts[key]; ok {
			delete(g.stmts, key)
			removed[key] = true
		}
	}
	delete(g.bySubjPred, sp)

	// Prune displaced keys from the order log, otherwise re-asserting a
	// displaced value would surface twice in snapshots.
	if len(removed) > 0 {
		kept := g.order[:0]
		for _, key := range g.order {
			if !removed[key] {
				kept = append(kept, key)
			}
		}
		g.order = kept
	}

	g.AddStatement(Statement{Subject: subject, Predicate: predicate, Object: object})
	return len(removed)
}

// Contains reports whether the exact statement is present.
func (g *Store) Contains(subject, predicate string, object Object) bool {
	_, ok := g.stmts[Statement{Subject: subject, Predicate: predicate, Object: object}.Key()]
	return ok
}

// HasSubject reports whether any statement with the given subject and
// predicate exists. The repair pass uses HasSubject(id, TypePredicate) as
// its check-before-write existence probe.
func (g *Store) HasSubject(subject, predicate string) bool {
	for _, key := range g.bySubjPred[spKey(subject, predicate)] {
		if _, ok := g.stmts[key]; ok {
			return true
		}
	}
	return false
}

// ObjectsOf returns the objects asserted for (subject, predicate).
func (g *Store) ObjectsOf(subject, predicate string) []Object {
	var out []Object
	for _, key := range g.bySubjPred[spKey(subject, predicate)] {
		if st, ok := g.stmts[key]; ok {
			out = append(out, st.Object)
		}
	}
	return out
}

// Size returns the number of statements in the store.
func (g *Store) Size() int {
	return len(g.stmts)
}

// Statements returns a snapshot of all statements in insertion order.
func (g *Store) Statements() []Statement {
	out := make([]Statement, 0, len(g.order))
	for _, key := range g.order {
		out = append(out, g.stmts[key])
	}
	return out
}

// Subjects returns the distinct subject IDs in first-seen order.
func (g *Store) Subjects() []string {
	seen := make(map[string]bool)
	var out []string
	for _, key := range g.order {
		subject := g.stmts[key].Subject
		if !seen[subject] {
			seen[subject] = true
			out = append(out, subject)
		}
	}
	return out
}
