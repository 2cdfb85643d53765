package generator

import (
	"embed"
	"fmt"

	"go.trai.ch/softmesh/internal/core/domain"
)

//go:embed templates/*.geo.tmpl
var templates embed.FS

const (
	// CabledTrunk is the name of the built-in cabled trunk generator.
	CabledTrunk = "cabled_trunk"
	// TripodFinger is the name of the built-in tripod finger generator.
	TripodFinger = "tripod_finger"
)

// Dimensions are in millimeters.
var builtinDefaults = map[string]domain.Parameters{
	CabledTrunk: {
		"length":       195,
		"base_radius":  17.5,
		"tip_radius":   7.5,
		"n_modules":    9,
		"n_cables":     4,
		"cable_radius": 1,
		"cable_offset": 5,
		"mesh_size":    4,
	},
	TripodFinger: tripodDefaults(12),
}

func tripodDefaults(n int) domain.Parameters {
	p := domain.Parameters{
		"length":    40,
		"width":     20,
		"e1":        5,
		"e2":        5,
		"e3":        5,
		"n_control": float64(n),
		"mesh_size": 3,
	}
	for i := range n {
		p[fmt.Sprintf("d%d", i)] = 21
	}
	return p
}

// Builtins returns the generators shipped with softmesh.
func Builtins() ([]*TemplateGenerator, error) {
	out := make([]*TemplateGenerator, 0, len(builtinDefaults))
	for _, name := range []string{CabledTrunk, TripodFinger} {
		text, err := templates.ReadFile("templates/" + name + ".geo.tmpl")
		if err != nil {
			return nil, err
		}
		g, err := NewTemplateGenerator(name, string(text), builtinDefaults[name])
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}
