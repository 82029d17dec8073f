package overlay

import (
	"math"
	"strconv"
	"strings"
)

// DefaultRootFontPx is the root font size used for rem and em dimensions
// when the host does not supply one.
const DefaultRootFontPx = 16

// Unbounded marks an absent cell budget in ResolveMax.
const Unbounded = -1

// Axis selects which viewport extent percentage dimensions resolve against.
type Axis string

const (
	AxisHorizontal Axis = "horizontal"
	AxisVertical   Axis = "vertical"
)

// Resolver converts declarative size strings into cell counts for one
// viewport. The zero value is unusable; fill in the viewport extents.
type Resolver struct {
	ViewportWidth  int
	ViewportHeight int
	RootFontPx     int
}

// Constraint is the outcome of resolving one requested maximum against the
// space a placement pass left available. Bounded is false when neither a
// parsable request nor an available budget existed.
type Constraint struct {
	Requested string
	Available int
	Max       int
	Bounded   bool
}

func (r Resolver) rootFont() int {
	if r.RootFontPx > 0 {
		return r.RootFontPx
	}
	return DefaultRootFontPx
}

func (r Resolver) extent(axis Axis) int {
	if axis == AxisVertical {
		return r.ViewportHeight
	}
	return r.ViewportWidth
}

// Convert parses a dimension like "240px", "50%", "30vh" or "1.5rem" into
// cells. Percentages resolve against the viewport extent on the given axis.
// A bare numeral counts as cells. Malformed or negative input reports false.
func (r Resolver) Convert(dim string, axis Axis) (int, bool) {
	dim = strings.TrimSpace(dim)
	if dim == "" {
		return 0, false
	}

	unit := ""
	// Longest suffix first so "rem" is not read as "em".
	for _, u := range []string{"rem", "px", "vh", "vw", "em", "%"} {
		if strings.HasSuffix(dim, u) {
			unit = u
			dim = strings.TrimSuffix(dim, u)
			break
		}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(dim), 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}

	var cells float64
	switch unit {
	case "", "px":
		cells = v
	case "%":
		cells = v / 100 * float64(r.extent(axis))
	case "vh":
		cells = v / 100 * float64(r.ViewportHeight)
	case "vw":
		cells = v / 100 * float64(r.ViewportWidth)
	case "rem", "em":
		cells = v * float64(r.rootFont())
	}
	return int(math.Round(cells)), true
}

// ResolveMax bounds a panel extent by both the requested maximum and the
// available budget. An unparsable request falls back to the budget alone; a
// budget of Unbounded falls back to the request alone; with neither, the
// result is unconstrained. Resolution never fails on bad input.
func (r Resolver) ResolveMax(requested string, available int, axis Axis) Constraint {
	c := Constraint{Requested: requested, Available: available}

	converted, ok := r.Convert(requested, axis)
	switch {
	case ok && available != Unbounded:
		c.Max = min(converted, available)
		c.Bounded = true
	case ok:
		c.Max = converted
		c.Bounded = true
	case available != Unbounded:
		c.Max = available
		c.Bounded = true
	}
	return c
}
