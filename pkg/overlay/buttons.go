package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/genie/pkg/geometry"
)

// ButtonDef describes one button in a row.
type ButtonDef struct {
	Label   string
	Action  string
	Variant Variant
}

// BtnOption customizes a button.
type BtnOption func(*ButtonDef)

// Btn builds a button that emits action when activated.
func Btn(label, action string, opts ...BtnOption) ButtonDef {
	b := ButtonDef{Label: label, Action: action, Variant: VariantDefault}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// BtnDanger frames the button with the danger accent when focused.
func BtnDanger() BtnOption {
	return func(b *ButtonDef) { b.Variant = VariantDanger }
}

// Buttons builds a horizontal button row. The row takes focus as a unit;
// left/right move between buttons and enter activates. Each button is also
// a hit region named by its action.
func Buttons(btns ...ButtonDef) Section {
	return &buttonRow{id: rowID(btns), btns: btns}
}

func rowID(btns []ButtonDef) string {
	actions := make([]string, len(btns))
	for i, b := range btns {
		actions[i] = b.Action
	}
	return "buttons:" + strings.Join(actions, ",")
}

type buttonRow struct {
	id       string
	btns     []ButtonDef
	selected int
}

func (r *buttonRow) FocusID() string { return r.id }

func (r *buttonRow) Render(width int, th Theme, focusID, hoverID string) RenderedSection {
	focused := focusID == r.id

	var parts []string
	var hits []SectionHit

	x := 0
	for i, b := range r.btns {
		style := th.Button
		switch {
		case focused && i == r.selected:
			style = th.ButtonActive.Background(th.Accent(b.Variant))
		case b.Action == hoverID:
			style = th.ButtonActive
		}

		rendered := style.Render(b.Label)
		w := lipgloss.Width(rendered)
		hits = append(hits, SectionHit{ID: b.Action, Rect: geometry.NewRect(x, 0, w, 1)})
		parts = append(parts, rendered)
		x += w + 2
	}

	return RenderedSection{
		Content: strings.Join(parts, "  "),
		Hits:    hits,
	}
}

func (r *buttonRow) HandleKey(msg tea.KeyMsg) (string, bool) {
	switch msg.String() {
	case "left", "h":
		if r.selected > 0 {
			r.selected--
		}
		return "", true
	case "right", "l":
		if r.selected < len(r.btns)-1 {
			r.selected++
		}
		return "", true
	case "enter":
		if r.selected >= 0 && r.selected < len(r.btns) {
			return r.btns[r.selected].Action, true
		}
	}
	return "", false
}

func (r *buttonRow) HandleClick(id string) string {
	for i, b := range r.btns {
		if b.Action == id {
			r.selected = i
			return b.Action
		}
	}
	return ""
}
