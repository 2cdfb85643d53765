package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// ValueKind tags the numeric representation of a design value.
type ValueKind uint8

const (
	// KindReal marks a continuous design value.
	KindReal ValueKind = iota
	// KindInteger marks a design value restricted to whole numbers.
	KindInteger
)

// DesignValue is a tagged numeric value. Integer values are stored in Int, real values in Real.
type DesignValue struct {
	Kind ValueKind
	Int  int64
	Real float64
}

// RealValue returns a real-valued DesignValue.
func RealValue(v float64) DesignValue {
	return DesignValue{Kind: KindReal, Real: v}
}

// IntValue returns an integer-valued DesignValue.
func IntValue(v int64) DesignValue {
	return DesignValue{Kind: KindInteger, Int: v}
}

// Float returns the value as a float64 regardless of its kind.
func (v DesignValue) Float() float64 {
	if v.Kind == KindInteger {
		return float64(v.Int)
	}
	return v.Real
}

// String formats the value without trailing zeros.
func (v DesignValue) String() string {
	if v.Kind == KindInteger {
		return strconv.FormatInt(v.Int, 10)
	}
	return strconv.FormatFloat(v.Real, 'g', -1, 64)
}

// DesignVariable is a named, bounded scalar controlling a robot's geometry.
type DesignVariable struct {
	Name  string
	Value DesignValue
	Min   float64
	Max   float64
}

// Contains reports whether x lies within [Min, Max].
func (d DesignVariable) Contains(x float64) bool {
	return x >= d.Min && x <= d.Max
}

// Assignment is a request to set a design variable to a value.
type Assignment struct {
	Name  string
	Value float64
}

// ParseAssignment parses "name=value".
func ParseAssignment(s string) (Assignment, error) {
	name, raw, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return Assignment{}, zerr.With(zerr.Wrap(ErrInvalidAssignment, "parse assignment"), "assignment", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return Assignment{}, zerr.With(errors.Join(ErrInvalidAssignment, err), "assignment", s)
	}
	return Assignment{Name: name, Value: v}, nil
}

// DesignSpace holds the design variables of a model in declaration order.
type DesignSpace struct {
	vars  []DesignVariable
	index map[string]int
}

// NewDesignSpace builds a design space. Later duplicates replace earlier ones.
func NewDesignSpace(vars ...DesignVariable) *DesignSpace {
	s := &DesignSpace{index: make(map[string]int, len(vars))}
	for _, v := range vars {
		if i, ok := s.index[v.Name]; ok {
			s.vars[i] = v
			continue
		}
		s.index[v.Name] = len(s.vars)
		s.vars = append(s.vars, v)
	}
	return s
}

// Len returns the number of variables.
func (s *DesignSpace) Len() int {
	return len(s.vars)
}

// Variables returns a copy of the variables in declaration order.
func (s *DesignSpace) Variables() []DesignVariable {
	if s == nil {
		return nil
	}
	out := make([]DesignVariable, len(s.vars))
	copy(out, s.vars)
	return out
}

// Get returns the variable with the given name.
func (s *DesignSpace) Get(name string) (DesignVariable, bool) {
	if s == nil {
		return DesignVariable{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return DesignVariable{}, false
	}
	return s.vars[i], true
}

// Set assigns value to the named variable. Out-of-bounds and ill-typed values are rejected
// and the prior value is kept.
func (s *DesignSpace) Set(name string, value float64) error {
	var i int
	ok := false
	if s != nil {
		i, ok = s.index[name]
	}
	if !ok {
		return zerr.With(zerr.Wrap(ErrUnknownDesignVariable, "set design variable"), "variable", name)
	}
	v := &s.vars[i]
	if !v.Contains(value) {
		err := zerr.With(zerr.Wrap(ErrDesignVariableOutOfBounds, "set design variable"), "variable", name)
		err = zerr.With(err, "value", value)
		err = zerr.With(err, "min", v.Min)
		return zerr.With(err, "max", v.Max)
	}
	if v.Value.Kind == KindInteger {
		if value != math.Trunc(value) {
			err := zerr.With(zerr.Wrap(ErrNonIntegralValue, "set design variable"), "variable", name)
			return zerr.With(err, "value", value)
		}
		v.Value = IntValue(int64(value))
		return nil
	}
	v.Value = RealValue(value)
	return nil
}

// Apply sets every assignment independently. A rejected assignment does not stop the
// others; all rejections are returned joined.
func (s *DesignSpace) Apply(assignments []Assignment) error {
	var errs []error
	for _, a := range assignments {
		if err := s.Set(a.Name, a.Value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Parameters snapshots the current values as generator parameters.
func (s *DesignSpace) Parameters() Parameters {
	p := make(Parameters, len(s.vars))
	for _, v := range s.vars {
		p[v.Name] = v.Value.Float()
	}
	return p
}

// Clone returns an independent copy of the design space.
func (s *DesignSpace) Clone() *DesignSpace {
	return NewDesignSpace(s.vars...)
}
