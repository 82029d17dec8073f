package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/marcus/genie/pkg/geometry"
)

// zoneRect converts a measured zone into cell bounds. Zone end
// coordinates are inclusive on the y axis.
func zoneRect(zi *zone.ZoneInfo) geometry.Rect {
	return geometry.NewRect(zi.StartX, zi.StartY, zi.EndX-zi.StartX, zi.EndY-zi.StartY+1)
}

// View composites every open panel over the host's rendered frame and
// returns the result. The frame passes through the zone scanner first, so
// anchors marked during the host's render are measurable; panels are
// placed from their stored positions and spliced in bottom to top, which
// keeps a panel independent of its anchor's layout ancestry: nothing in
// the host view can clip or bury it.
//
// After compositing, each panel's rectangle and interactive elements are
// registered in the hit map, so the next Update can route presses inside
// and outside panels.
func (m *Manager) View(base string) string {
	frame := m.zones.Scan(base)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.viewport.Width == 0 && m.viewport.Height == 0 {
		m.viewport = geometry.Size{Width: lipgloss.Width(frame), Height: lipgloss.Height(frame)}
	}

	// Anchors may have moved during the host's render pass.
	m.repositionAllLocked()

	m.hits.Clear()

	open := m.openLocked()

	// The topmost panel that wants a backdrop dims everything below the
	// panel stack.
	for i := len(open) - 1; i >= 0; i-- {
		if open[i].Config.Backdrop {
			frame = open[i].theme.Backdrop.Render(ansi.Strip(frame))
			break
		}
	}

	for _, o := range open {
		if o.Position.Quadrant == QuadrantHidden || o.Position.Styles.Display != DisplayVisible {
			continue
		}

		panel, hits := m.renderPanelLocked(o)
		if panel == "" {
			continue
		}

		w := lipgloss.Width(panel)
		h := lipgloss.Height(panel)
		origin := m.panelOriginLocked(o, w, h)
		o.panelRect = geometry.NewRect(origin.X, origin.Y, w, h)

		frame = overlayAt(frame, panel, origin.X, origin.Y, m.viewport)

		m.hits.HitMap.AddRect(panelRegionID(o.ID), o.panelRect, nil)
		off := contentOrigin(o.theme)
		for _, hit := range hits {
			m.hits.HitMap.AddRect(
				panelHitID(o.ID, hit.ID),
				hit.Rect.Translate(origin.X+off.X, origin.Y+off.Y),
				nil,
			)
		}
	}

	return frame
}

// contentOrigin is the offset of a panel's content inside its frame.
func contentOrigin(th Theme) geometry.Point {
	return geometry.Point{
		X: th.Border.GetBorderLeftSize() + th.Border.GetPaddingLeft(),
		Y: th.Border.GetBorderTopSize() + th.Border.GetPaddingTop(),
	}
}

// panelOriginLocked turns edge-relative styles into the panel's top-left
// cell, clamped so the panel stays on screen.
func (m *Manager) panelOriginLocked(o *Overlay, w, h int) geometry.Point {
	s := o.Position.Styles

	x := s.HOffset
	if s.HEdge == EdgeRight {
		x = m.viewport.Width - s.HOffset - w
	}
	y := s.VOffset
	if s.VEdge == EdgeBottom {
		y = m.viewport.Height - s.VOffset - h
	}

	x = geometry.Clamp(x, 0, max(0, m.viewport.Width-w))
	y = geometry.Clamp(y, 0, max(0, m.viewport.Height-h))
	return geometry.Point{X: x, Y: y}
}

// renderPanelLocked draws one panel body inside its frame, honoring the
// config's size constraints against the space the placement left
// available.
func (m *Manager) renderPanelLocked(o *Overlay) (string, []SectionHit) {
	res := m.resolver()
	frameStyle := o.theme.Frame(o.Config.Variant)
	frameW := frameStyle.GetHorizontalFrameSize()
	frameH := frameStyle.GetVerticalFrameSize()

	// Width: explicit request, else the default, clamped into min/max and
	// the available budget. Constraints bound the panel box; the content
	// is narrower by the frame.
	contentW := DefaultPanelWidth
	if w, ok := res.Convert(o.Config.Width, AxisHorizontal); ok {
		contentW = w - frameW
	}
	maxW := res.ResolveMax(o.Config.MaxWidth, o.Position.AvailableWidth, AxisHorizontal)
	if maxW.Bounded {
		contentW = min(contentW, maxW.Max-frameW)
	}
	if minW, ok := res.Convert(o.Config.MinWidth, AxisHorizontal); ok {
		lo := minW - frameW
		if maxW.Bounded {
			lo = min(lo, maxW.Max-frameW)
		}
		contentW = max(contentW, lo)
	}
	if contentW < 1 {
		contentW = 1
	}

	var body string
	var hits []SectionHit
	if o.content != nil {
		body, hits = o.content.Render(contentW, o.theme)
	}

	// Height: natural content height unless requested, clamped the same
	// way, then truncated row by row.
	contentH := lipgloss.Height(body)
	if h, ok := res.Convert(o.Config.Height, AxisVertical); ok {
		contentH = h - frameH
	}
	maxH := res.ResolveMax(o.Config.MaxHeight, o.Position.AvailableHeight, AxisVertical)
	if maxH.Bounded {
		contentH = min(contentH, maxH.Max-frameH)
	}
	if minH, ok := res.Convert(o.Config.MinHeight, AxisVertical); ok {
		lo := minH - frameH
		if maxH.Bounded {
			lo = min(lo, maxH.Max-frameH)
		}
		contentH = max(contentH, lo)
	}
	if contentH < 1 {
		return "", nil
	}

	lines := strings.Split(body, "\n")
	if len(lines) > contentH {
		lines = lines[:contentH]
		body = strings.Join(lines, "\n")
	}

	// Style width and height span content plus padding; borders sit
	// outside them.
	boxW := contentW + frameStyle.GetHorizontalPadding()
	boxH := contentH + frameStyle.GetVerticalPadding()
	return frameStyle.Width(boxW).Height(boxH).Render(body), hits
}

// overlayAt splices panel into frame with its top-left at (x, y),
// preserving the frame's styling outside the panel's rectangle. The frame
// is padded to the viewport before splicing so panels can sit beyond the
// host's rendered extent.
func overlayAt(frame, panel string, x, y int, viewport geometry.Size) string {
	frameLines := strings.Split(frame, "\n")
	for len(frameLines) < viewport.Height {
		frameLines = append(frameLines, "")
	}

	panelLines := strings.Split(panel, "\n")
	panelW := lipgloss.Width(panel)

	for i, pl := range panelLines {
		row := y + i
		if row < 0 || row >= len(frameLines) {
			continue
		}
		base := frameLines[row]
		if w := ansi.StringWidth(base); w < x {
			base += strings.Repeat(" ", x-w)
		}
		left := ansi.Truncate(base, x, "")
		right := ansi.TruncateLeft(base, x+panelW, "")
		frameLines[row] = left + pl + right
	}
	return strings.Join(frameLines, "\n")
}
