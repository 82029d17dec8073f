package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/genie/pkg/geometry"
)

// DefaultPanelWidth is the content width used when a panel's config
// requests no width of its own.
const DefaultPanelWidth = 40

// SectionHit is a clickable region inside rendered content, measured after
// rendering so hit regions always match what is on screen. Rects are
// relative to the content's top-left cell.
type SectionHit struct {
	ID   string
	Rect geometry.Rect
}

// RenderedSection is one section's output: its lines plus any hits,
// relative to the section's own top-left.
type RenderedSection struct {
	Content string
	Hits    []SectionHit
}

// Section is one row group inside a panel.
type Section interface {
	Render(width int, th Theme, focusID, hoverID string) RenderedSection
}

// focusable is implemented by sections that take keyboard focus.
type focusable interface {
	Section
	FocusID() string
	HandleKey(msg tea.KeyMsg) (action string, handled bool)
}

// Content is a panel's section tree with focus and hover state. Build one
// with NewContent and hand it to Open via Config.
type Content struct {
	sections []Section
	focus    int // index into focusables(), -1 when nothing focused
	hoverID  string
}

// ContentFunc builds content at open time. The close callback dismisses
// the panel the content ends up mounted in.
type ContentFunc func(close func()) *Content

// NewContent assembles sections into panel content. The first focusable
// section starts focused.
func NewContent(sections ...Section) *Content {
	c := &Content{sections: sections, focus: -1}
	if len(c.focusables()) > 0 {
		c.focus = 0
	}
	return c
}

func (c *Content) focusables() []focusable {
	var fs []focusable
	for _, s := range c.sections {
		if f, ok := s.(focusable); ok {
			fs = append(fs, f)
		}
	}
	return fs
}

// FocusedID returns the id of the focused section, or empty.
func (c *Content) FocusedID() string {
	fs := c.focusables()
	if c.focus < 0 || c.focus >= len(fs) {
		return ""
	}
	return fs[c.focus].FocusID()
}

// SetHover records which hit region the pointer is over.
func (c *Content) SetHover(id string) { c.hoverID = id }

// Render draws every section at the given width and collects hit regions
// shifted to content-relative coordinates.
func (c *Content) Render(width int, th Theme) (string, []SectionHit) {
	var lines []string
	var hits []SectionHit

	y := 0
	for _, s := range c.sections {
		r := s.Render(width, th, c.FocusedID(), c.hoverID)
		for _, h := range r.Hits {
			h.Rect = h.Rect.Translate(0, y)
			hits = append(hits, h)
		}
		lines = append(lines, r.Content)
		y += lipgloss.Height(r.Content)
	}
	return strings.Join(lines, "\n"), hits
}

// HandleKey routes a key to the content: Tab and Shift+Tab move focus, and
// everything else goes to the focused section. A returned action names the
// button pressed or the list item chosen.
func (c *Content) HandleKey(msg tea.KeyMsg) (string, bool) {
	fs := c.focusables()
	if len(fs) == 0 {
		return "", false
	}

	switch msg.String() {
	case "tab":
		c.focus = (c.focus + 1) % len(fs)
		return "", true
	case "shift+tab":
		c.focus = (c.focus - 1 + len(fs)) % len(fs)
		return "", true
	}

	if c.focus >= 0 && c.focus < len(fs) {
		return fs[c.focus].HandleKey(msg)
	}
	return "", false
}

// HandleClick maps a hit region id back to an action, focusing the section
// that owns it.
func (c *Content) HandleClick(id string) string {
	for i, f := range c.focusables() {
		if sink, ok := f.(clickSink); ok {
			if a := sink.HandleClick(id); a != "" {
				c.focus = i
				return a
			}
		}
	}
	return ""
}

// clickSink is implemented by sections whose hit regions produce actions.
type clickSink interface {
	HandleClick(id string) string
}

// Title renders a bold heading line.
func Title(s string) Section { return titleSection{text: s} }

type titleSection struct{ text string }

func (t titleSection) Render(width int, th Theme, _, _ string) RenderedSection {
	return RenderedSection{Content: th.Title.Width(width).Render(t.text)}
}

// Text renders body copy, wrapped to the panel width.
func Text(s string) Section { return textSection{text: s} }

type textSection struct{ text string }

func (t textSection) Render(width int, th Theme, _, _ string) RenderedSection {
	return RenderedSection{Content: th.Body.Width(width).Render(t.text)}
}

// Muted renders de-emphasized copy, wrapped to the panel width.
func Muted(s string) Section { return mutedSection{text: s} }

type mutedSection struct{ text string }

func (t mutedSection) Render(width int, th Theme, _, _ string) RenderedSection {
	return RenderedSection{Content: th.Muted.Width(width).Render(t.text)}
}

// Spacer renders one blank line.
func Spacer() Section { return spacerSection{} }

type spacerSection struct{}

func (spacerSection) Render(int, Theme, string, string) RenderedSection {
	return RenderedSection{Content: ""}
}

// Custom is the escape hatch for content the built-in sections cannot
// express. The render function receives the content width and theme.
func Custom(render func(width int, th Theme) string) Section {
	return customSection{render: render}
}

type customSection struct {
	render func(width int, th Theme) string
}

func (s customSection) Render(width int, th Theme, _, _ string) RenderedSection {
	return RenderedSection{Content: s.render(width, th)}
}
