// Package generator turns design parameters into gmsh geometry scripts.
package generator

import (
	"bytes"
	"errors"
	"math"
	"os"
	"slices"
	"strconv"
	"text/template"

	"go.trai.ch/softmesh/internal/core/domain"
	"go.trai.ch/softmesh/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Generator = (*TemplateGenerator)(nil)

// TemplateGenerator renders a gmsh script from a text/template.
// Request parameters override the generator defaults.
type TemplateGenerator struct {
	name     string
	tmpl     *template.Template
	defaults domain.Parameters
}

// NewTemplateGenerator parses text as the script template of the named generator.
func NewTemplateGenerator(name, text string, defaults domain.Parameters) (*TemplateGenerator, error) {
	g := &TemplateGenerator{name: name, defaults: defaults.Clone()}

	tmpl, err := template.New(name).Option("missingkey=error").Funcs(g.funcs(nil, nil)).Parse(text)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse generator template"), "generator", name)
	}
	g.tmpl = tmpl
	return g, nil
}

// LoadTemplateGenerator reads the template file at path.
func LoadTemplateGenerator(name, path string, defaults domain.Parameters) (*TemplateGenerator, error) {
	//nolint:gosec // Template path comes from a model file
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrUnknownGenerator, err), "failed to read generator template"), "path", path)
	}
	return NewTemplateGenerator(name, string(text), defaults)
}

// Name identifies the generator.
func (g *TemplateGenerator) Name() string {
	return g.name
}

// Defaults returns a copy of the default parameters.
func (g *TemplateGenerator) Defaults() domain.Parameters {
	return g.defaults.Clone()
}

// Generate renders the script for params merged over the defaults.
func (g *TemplateGenerator) Generate(params domain.Parameters) (domain.Geometry, error) {
	merged := g.defaults.Clone()
	for k, v := range params {
		merged[k] = v
	}

	var missing []string
	tmpl, err := g.tmpl.Clone()
	if err != nil {
		return domain.Geometry{}, zerr.With(zerr.Wrap(err, "failed to clone generator template"), "generator", g.name)
	}
	tmpl.Funcs(g.funcs(merged, &missing))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, merged); err != nil {
		return domain.Geometry{}, zerr.With(zerr.Wrap(err, "failed to render geometry"), "generator", g.name)
	}

	if len(missing) > 0 {
		slices.Sort(missing)
		missing = slices.Compact(missing)
		return domain.Geometry{}, zerr.With(zerr.With(zerr.Wrap(domain.ErrMissingParameter, "failed to render geometry"), "generator", g.name), "parameters", missing)
	}

	return domain.Geometry{Generator: g.name, Script: buf.Bytes()}, nil
}

func (g *TemplateGenerator) funcs(params domain.Parameters, missing *[]string) template.FuncMap {
	return template.FuncMap{
		"param": func(name string) float64 {
			v, ok := params[name]
			if !ok && missing != nil {
				*missing = append(*missing, name)
			}
			return v
		},
		"has": func(name string) bool {
			_, ok := params[name]
			return ok
		},
		"int": func(v float64) int { return int(math.Round(v)) },
		"seq": func(n int) []int {
			out := make([]int, max(n, 0))
			for i := range out {
				out[i] = i
			}
			return out
		},
		"angles": func(n int) []string {
			out := make([]string, max(n, 0))
			for i := range out {
				out[i] = formatFloat(2 * math.Pi * float64(i) / float64(n))
			}
			return out
		},
		"add": func(a, b any) any { return arith(a, b, func(x, y float64) float64 { return x + y }) },
		"sub": func(a, b any) any { return arith(a, b, func(x, y float64) float64 { return x - y }) },
		"mul": func(a, b any) any { return arith(a, b, func(x, y float64) float64 { return x * y }) },
		"div": func(a, b any) any {
			if toFloat(b) == 0 {
				return 0.0
			}
			return toFloat(a) / toFloat(b)
		},
	}
}

// arith keeps integer results integral so they can index script entities.
func arith(a, b any, op func(x, y float64) float64) any {
	ai, aInt := a.(int)
	bi, bInt := b.(int)
	if aInt && bInt {
		return int(op(float64(ai), float64(bi)))
	}
	return op(toFloat(a), toFloat(b))
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
