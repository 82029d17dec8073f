package playground

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/genie/internal/output"
	"github.com/marcus/genie/pkg/geometry"
)

// Host chrome hit region ids.
const (
	regionSplitter   = "chrome/splitter"
	regionTabGallery = "chrome/tab/gallery"
	regionTabAbout   = "chrome/tab/about"
)

const minPaneWidth = 24

// View renders the host frame and hands it to the engine, which measures
// the marked chip zones and composites every open panel on top.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	m.hits.Clear()
	return m.mgr.View(m.renderFrame())
}

// renderFrame draws the chrome rows and the two panes, registering hit
// regions for the tabs and the splitter as it lays them out.
func (m Model) renderFrame() string {
	bodyTop, bodyHeight, leftW, rightW := m.layout()

	header := m.headerView()
	tabs := m.tabsView()

	var left string
	if m.view == routeAbout {
		left = m.aboutView(leftW, bodyHeight)
	} else {
		left = m.galleryView(leftW, bodyHeight)
	}
	right := m.sideView(rightW, bodyHeight)

	m.hits.HitMap.AddRect(regionSplitter, geometry.NewRect(leftW, bodyTop, 1, bodyHeight), nil)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, m.splitterView(bodyHeight), right)

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, body, m.statusView())
}

// layout computes chrome rows and pane widths. The body sits between the
// tab row and the status line.
func (m Model) layout() (bodyTop, bodyHeight, leftW, rightW int) {
	bodyTop = 2
	bodyHeight = m.height - bodyTop - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	leftW = clampSplit(m.split, m.width)
	rightW = m.width - leftW - 1
	if rightW < 1 {
		rightW = 1
	}
	return bodyTop, bodyHeight, leftW, rightW
}

func defaultSplit(width int) int {
	return clampSplit(width*60/100, width)
}

// clampSplit keeps both panes usable. Terminals too narrow for two full
// panes fall back to an even split.
func clampSplit(split, width int) int {
	lo := minPaneWidth
	hi := width - minPaneWidth - 1
	if hi < lo {
		return max(1, width/2)
	}
	return geometry.Clamp(split, lo, hi)
}

func (m Model) headerView() string {
	title := m.theme.Title.Render(" genie playground")
	hint := m.theme.Muted.Render("? for help ")
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(hint)
	if gap < 1 {
		return ansi.Truncate(title, m.width, "")
	}
	return title + strings.Repeat(" ", gap) + hint
}

func (m Model) tabsView() string {
	render := func(label string, active bool) string {
		if active {
			return m.theme.Title.Render("[" + label + "]")
		}
		return m.theme.Muted.Render("[" + label + "]")
	}
	gallery := render("gallery", m.view == routeGallery)
	about := render("about", m.view == routeAbout)

	x := 1
	m.hits.HitMap.AddRect(regionTabGallery, geometry.NewRect(x, 1, lipgloss.Width(gallery), 1), nil)
	x += lipgloss.Width(gallery) + 2
	m.hits.HitMap.AddRect(regionTabAbout, geometry.NewRect(x, 1, lipgloss.Width(about), 1), nil)

	return " " + gallery + "  " + about
}

// galleryView lays the chips out as rows of zone-marked labels. The zones
// are measured after this frame renders, so the trigger bindings always
// see current chip bounds.
func (m Model) galleryView(width, height int) string {
	rows := []string{"", m.theme.Title.Render(" Triggers")}
	for i, spec := range chipSpecs() {
		if i == 4 {
			rows = append(rows, "", m.theme.Title.Render(" Panels"))
		}
		chip := m.mgr.Zones().Mark(spec.id, m.theme.Button.Render(spec.label))
		row := "  " + chip + "  " + m.theme.Muted.Render(spec.desc)
		rows = append(rows, "", ansi.Truncate(row, width, "…"))
	}
	return paneBox(strings.Join(rows, "\n"), width, height)
}

// aboutView is the second route. Reaching it force-closed every panel.
func (m Model) aboutView(width, height int) string {
	rows := []string{
		"",
		m.theme.Title.Render(" About"),
		"",
		ansi.Truncate(m.theme.Body.Render(" Panels composite over the frame after zones are measured,"), width, "…"),
		ansi.Truncate(m.theme.Body.Render(" so no pane or border in this view can clip or bury them."), width, "…"),
		"",
		m.theme.Title.Render(" Keys"),
	}
	for _, b := range helpOrder() {
		h := b.Help()
		row := fmt.Sprintf("  %-8s ", h.Key) + m.theme.Muted.Render(h.Desc)
		rows = append(rows, ansi.Truncate(row, width, "…"))
	}
	rows = append(rows, "", ansi.Truncate(m.theme.Muted.Render(" Switching views closed every panel on the way here."), width, "…"))
	return paneBox(strings.Join(rows, "\n"), width, height)
}

// sideView is the right pane: a hint card, or the live stack inspector.
func (m Model) sideView(width, height int) string {
	if m.inspectorOn {
		return m.inspectorView(width, height)
	}
	rows := []string{
		"",
		m.theme.Title.Render(" Welcome"),
		"",
		ansi.Truncate(m.theme.Body.Render(" Click the chips, hover Hint, right-click Menu."), width, "…"),
		ansi.Truncate(m.theme.Body.Render(" Drag the divider to resize the panes."), width, "…"),
		"",
		ansi.Truncate(m.theme.Muted.Render(" Press i to watch the panel stack live."), width, "…"),
	}
	return paneBox(strings.Join(rows, "\n"), width, height)
}

// inspectorView renders the open panel stack bottom to top, the same tree
// the calc command prints.
func (m Model) inspectorView(width, height int) string {
	rows := []string{"", m.theme.Title.Render(" Stack"), ""}
	lines := output.StackLines(m.mgr.List())
	if len(lines) == 0 {
		rows = append(rows, m.theme.Muted.Render("  (no panels open)"))
	}
	for _, line := range lines {
		rows = append(rows, ansi.Truncate(line, width, "…"))
	}
	return paneBox(strings.Join(rows, "\n"), width, height)
}

func (m Model) splitterView(height int) string {
	col := strings.TrimSuffix(strings.Repeat("│\n", height), "\n")
	return m.theme.Muted.Render(col)
}

func (m Model) statusView() string {
	segments := []string{
		string(m.view),
		"theme " + m.themeName,
		fmt.Sprintf("panels %d", len(m.mgr.List())),
	}
	if last := m.shared.last(); last != "" {
		segments = append(segments, "last "+last)
	}
	return ansi.Truncate(m.theme.Muted.Render(" "+strings.Join(segments, " · ")), m.width, "…")
}

// paneBox pins content into an exact width by height cell box.
func paneBox(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).MaxWidth(width).
		Height(height).MaxHeight(height).
		Render(content)
}
