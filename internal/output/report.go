package output

import (
	"fmt"
	"strings"

	"github.com/marcus/genie/pkg/overlay"
)

// PlacementReport is the flattened form of one placement pass, shaped for
// calc's text and JSON output.
type PlacementReport struct {
	Quadrant        string            `json:"quadrant"`
	Display         string            `json:"display"`
	VEdge           string            `json:"v_edge,omitempty"`
	VOffset         int               `json:"v_offset,omitempty"`
	HEdge           string            `json:"h_edge,omitempty"`
	HOffset         int               `json:"h_offset,omitempty"`
	AvailableWidth  int               `json:"available_width"`
	AvailableHeight int               `json:"available_height"`
	MaxWidth        *ConstraintReport `json:"max_width,omitempty"`
	MaxHeight       *ConstraintReport `json:"max_height,omitempty"`
}

// ConstraintReport is one resolved size maximum.
type ConstraintReport struct {
	Requested string `json:"requested,omitempty"`
	Max       int    `json:"max"`
	Bounded   bool   `json:"bounded"`
}

// NewPlacementReport flattens a computed position. Size constraints are
// attached separately with ConstraintFrom when the caller resolved any.
func NewPlacementReport(pos overlay.Position) PlacementReport {
	return PlacementReport{
		Quadrant:        pos.Quadrant.String(),
		Display:         string(pos.Styles.Display),
		VEdge:           string(pos.Styles.VEdge),
		VOffset:         pos.Styles.VOffset,
		HEdge:           string(pos.Styles.HEdge),
		HOffset:         pos.Styles.HOffset,
		AvailableWidth:  pos.AvailableWidth,
		AvailableHeight: pos.AvailableHeight,
	}
}

// ConstraintFrom converts a resolver constraint for embedding in a report.
func ConstraintFrom(c overlay.Constraint) *ConstraintReport {
	return &ConstraintReport{Requested: c.Requested, Max: c.Max, Bounded: c.Bounded}
}

// displayMark returns a display indicator symbol
func displayMark(d overlay.Display) string {
	switch d {
	case overlay.DisplayVisible:
		return " \u25cf" // ●
	case overlay.DisplayNone:
		return " \u2717" // ✗
	default:
		return ""
	}
}

// FormatPlacement renders a report as a connector block for terminals.
func FormatPlacement(rep PlacementReport) string {
	return strings.Join(RenderPlacementLines(rep), "\n")
}

// RenderPlacementLines renders a report as individual lines: a quadrant
// header followed by one connector row per placement fact.
func RenderPlacementLines(rep PlacementReport) []string {
	head := rep.Quadrant + displayMark(overlay.Display(rep.Display))
	if rep.Display != string(overlay.DisplayVisible) {
		return []string{head, "\u2514\u2500\u2500 display: " + rep.Display} // └──
	}

	rows := []string{
		fmt.Sprintf("%s: %d", rep.VEdge, rep.VOffset),
		fmt.Sprintf("%s: %d", rep.HEdge, rep.HOffset),
		fmt.Sprintf("available: %dx%d", rep.AvailableWidth, rep.AvailableHeight),
	}
	if rep.MaxWidth != nil {
		rows = append(rows, constraintRow("max-width", rep.MaxWidth))
	}
	if rep.MaxHeight != nil {
		rows = append(rows, constraintRow("max-height", rep.MaxHeight))
	}

	lines := []string{head}
	for i, row := range rows {
		connector := "\u251c\u2500\u2500 " // ├──
		if i == len(rows)-1 {
			connector = "\u2514\u2500\u2500 " // └──
		}
		lines = append(lines, connector+row)
	}
	return lines
}

func constraintRow(label string, c *ConstraintReport) string {
	if !c.Bounded {
		return label + ": unbounded"
	}
	if c.Requested != "" {
		return fmt.Sprintf("%s: %d (requested %s)", label, c.Max, c.Requested)
	}
	return fmt.Sprintf("%s: %d", label, c.Max)
}

// formatStyles compacts applied styles into "top:14 left:10" form.
func formatStyles(s overlay.Styles) string {
	if s.Display != overlay.DisplayVisible {
		return "display:none"
	}
	return fmt.Sprintf("%s:%d %s:%d", s.VEdge, s.VOffset, s.HEdge, s.HOffset)
}

// StackLines renders open overlays bottom to top, one connector row per
// panel. The playground inspector pane shows it live.
func StackLines(infos []overlay.OverlayInfo) []string {
	var lines []string

	for i, info := range infos {
		isLast := i == len(infos)-1

		connector := "\u251c\u2500\u2500 " // ├──
		if isLast {
			connector = "\u2514\u2500\u2500 " // └──
		}

		mark := displayMark(info.Styles.Display)

		line := fmt.Sprintf("  %s%d %s: %s %s [%s]%s",
			connector, info.Layer, info.ID, info.Quadrant, formatStyles(info.Styles), info.State, mark)
		lines = append(lines, line)
	}

	return lines
}
