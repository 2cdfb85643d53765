package generator

import (
	"slices"
	"sync"

	"go.trai.ch/softmesh/internal/core/domain"
	"go.trai.ch/softmesh/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.GeneratorRegistry = (*Registry)(nil)

// Registry resolves generators by name.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]ports.Generator
}

// NewRegistry creates a registry holding the built-in generators.
func NewRegistry() (*Registry, error) {
	r := &Registry{generators: make(map[string]ports.Generator)}
	builtins, err := Builtins()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load built-in generators")
	}
	for _, g := range builtins {
		r.Register(g)
	}
	return r, nil
}

// Register adds or replaces a generator.
func (r *Registry) Register(g ports.Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[g.Name()] = g
}

// Lookup returns the generator registered under name.
func (r *Registry) Lookup(name string) (ports.Generator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.generators[name]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownGenerator, "failed to resolve generator"), "generator", name)
	}
	return g, nil
}

// Names returns the registered generator names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LoadTemplate builds a generator from a model-local template file.
// The generator is not registered.
func (r *Registry) LoadTemplate(name, path string) (ports.Generator, error) {
	return LoadTemplateGenerator(name, path, nil)
}
