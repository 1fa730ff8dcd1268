// Package ontology registers the bundled example ontologies by name so the
// CLI can select one from configuration.
package ontology

import (
	"fmt"
	"sort"
	"sync"

	"github.com/c360studio/relgraph/assemble"
	"github.com/c360studio/relgraph/ontology/building"
	"github.com/c360studio/relgraph/ontology/media"
	"github.com/c360studio/relgraph/schema"
)

// Builder constructs a frozen registry and its table mappings.
type Builder func() (*schema.Registry, map[string]assemble.Mapping, error)

var (
	mu       sync.RWMutex
	builders = map[string]Builder{
		"media": func() (*schema.Registry, map[string]assemble.Mapping, error) {
			r, err := media.Schema()
			return r, media.Mappings(), err
		},
		"building": func() (*schema.Registry, map[string]assemble.Mapping, error) {
			r, err := building.Schema()
			return r, building.Mappings(), err
		},
	}
)

// Register adds a named ontology builder. Re-registration overwrites.
func Register(name string, b Builder) {
	mu.Lock()
	defer mu.Unlock()
	builders[name] = b
}

// Load builds the named ontology.
func Load(name string) (*schema.Registry, map[string]assemble.Mapping, error) {
	mu.RLock()
	b, ok := builders[name]
	mu.RUnlock()
	if !ok {
		return nil, nil, fmt.Errorf("unknown ontology %q (available: %v)", name, Names())
	}
	return b()
}

// Names returns the registered ontology names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
