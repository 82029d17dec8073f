package overlay

import (
	"github.com/marcus/genie/pkg/geometry"
)

// Placement constants, in cells. The gap separates a panel from its anchor
// on the placement axis; the pads keep panels off the viewport edges.
const (
	anchorGap    = 8
	placementPad = 12
	alignPad     = 8
)

// Quadrant identifies which quarter of the clipping bounds the anchor's
// center falls in, or Hidden when the anchor is fully out of view.
type Quadrant string

const (
	QuadrantTopLeft     Quadrant = "top-left"
	QuadrantTopRight    Quadrant = "top-right"
	QuadrantBottomLeft  Quadrant = "bottom-left"
	QuadrantBottomRight Quadrant = "bottom-right"
	QuadrantHidden      Quadrant = "hidden"
)

func (q Quadrant) String() string { return string(q) }

// Display controls whether a panel renders at all.
type Display string

const (
	DisplayVisible Display = "visible"
	DisplayNone    Display = "none"
)

// Edge names the viewport edge an offset is measured from.
type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
)

// Styles is the placement a renderer applies to a panel: one vertical and
// one horizontal offset, each measured inward from the named viewport edge.
type Styles struct {
	Display Display
	VEdge   Edge
	VOffset int
	HEdge   Edge
	HOffset int
}

// Equal reports whether two style sets would render identically.
func (s Styles) Equal(o Styles) bool { return s == o }

// Position is the full output of one placement pass. AvailableWidth and
// AvailableHeight are the cell budgets between the panel's starting edge
// and the padded viewport edge on the side it grows toward.
type Position struct {
	Quadrant        Quadrant
	Styles          Styles
	AvailableWidth  int
	AvailableHeight int
}

// Equal reports whether two positions match field by field. The manager
// skips re-rendering a panel whose recomputed position equals the last one.
func (p Position) Equal(o Position) bool { return p == o }

func hiddenPosition() Position {
	return Position{
		Quadrant: QuadrantHidden,
		Styles:   Styles{Display: DisplayNone},
	}
}

// Compute places a panel for an anchor within the viewport, with no
// clipping bounds beyond the viewport itself.
func Compute(anchor geometry.Rect, viewport geometry.Size) Position {
	return ComputeClipped(anchor, viewport, geometry.NewRect(0, 0, viewport.Width, viewport.Height))
}

// ComputeClipped places a panel for an anchor whose visibility is limited
// to clip, typically the bounds of the anchor's nearest scrollable
// container. The function is pure: identical inputs yield identical output.
//
// An anchor with no visible part yields Hidden. Otherwise the anchor is
// reduced to its visible part, its center is compared to the clip midpoint
// on each axis to pick a quadrant, and the panel goes on the opposite
// vertical half with its edge aligned to the anchor's horizontal half, so
// panels grow toward the screen center. All offsets are viewport-relative
// and clamped inside the viewport padding.
func ComputeClipped(anchor geometry.Rect, viewport geometry.Size, clip geometry.Rect) Position {
	visible := anchor.Intersect(clip)
	if visible.Empty() {
		return hiddenPosition()
	}

	center := visible.Center()
	mid := clip.Center()
	top := center.Y <= mid.Y
	left := center.X <= mid.X

	var s Styles
	s.Display = DisplayVisible

	if top {
		s.VEdge = EdgeTop
		s.VOffset = geometry.Clamp(visible.Bottom()+anchorGap, placementPad, viewport.Height-placementPad)
	} else {
		s.VEdge = EdgeBottom
		s.VOffset = geometry.Clamp(viewport.Height-visible.Y+anchorGap, placementPad, viewport.Height-placementPad)
	}

	if left {
		s.HEdge = EdgeLeft
		s.HOffset = geometry.Clamp(visible.X, alignPad, viewport.Width-alignPad)
	} else {
		s.HEdge = EdgeRight
		s.HOffset = geometry.Clamp(viewport.Width-visible.Right(), alignPad, viewport.Width-alignPad)
	}

	q := QuadrantBottomRight
	switch {
	case top && left:
		q = QuadrantTopLeft
	case top:
		q = QuadrantTopRight
	case left:
		q = QuadrantBottomLeft
	}

	return Position{
		Quadrant:        q,
		Styles:          s,
		AvailableWidth:  max(0, viewport.Width-alignPad-s.HOffset),
		AvailableHeight: max(0, viewport.Height-placementPad-s.VOffset),
	}
}
