package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Direction is the optimization direction of an objective.
type Direction string

const (
	// Minimize asks the optimizer to lower the fitness value.
	Minimize Direction = "minimize"
	// Maximize asks the optimizer to raise the fitness value.
	Maximize Direction = "maximize"
)

// ParseDirection converts a case-insensitive direction name.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Minimize:
		return Minimize, true
	case Maximize:
		return Maximize, true
	default:
		return "", false
	}
}

// Objective is a named fitness function evaluated over Horizon simulated dt steps.
type Objective struct {
	Name      string
	Direction Direction
	Horizon   int
}

// AssessmentContext carries the objectives assessed by one optimization request.
type AssessmentContext struct {
	Objectives []Objective
}

// Names returns the names of the assessed objectives.
func (a AssessmentContext) Names() []string {
	names := make([]string, len(a.Objectives))
	for i, o := range a.Objectives {
		names[i] = o.Name
	}
	return names
}

// Horizon returns the longest evaluation horizon of the assessed objectives.
func (a AssessmentContext) Horizon() int {
	h := 0
	for _, o := range a.Objectives {
		h = max(h, o.Horizon)
	}
	return h
}

// sameGroup reports whether two name lists contain the same objectives, ignoring order.
func sameGroup(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := slices.Clone(a)
	y := slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}

func groupError(names []string) error {
	return zerr.With(zerr.Wrap(ErrObjectiveGroupNotDeclared, "assess objectives"), "objectives", strings.Join(names, ","))
}
