package ports

import "go.trai.ch/softmesh/internal/core/domain"

// Generator is a named generating function turning parameters into a geometry.
//
//go:generate go run go.uber.org/mock/mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks
type Generator interface {
	// Name identifies the generator. It prefixes every cache identifier it produces.
	Name() string
	// Generate renders the geometry for the given parameters.
	Generate(params domain.Parameters) (domain.Geometry, error)
}

// GeneratorRegistry resolves generators by name.
type GeneratorRegistry interface {
	// Lookup returns the generator registered under name.
	Lookup(name string) (Generator, error)
	// Register adds or replaces a generator.
	Register(g Generator)
	// Names returns the registered generator names in sorted order.
	Names() []string
	// LoadTemplate builds a generator named name from a script template file.
	LoadTemplate(name, path string) (Generator, error)
}
