package playground

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/marcus/genie/pkg/geometry"
	"github.com/marcus/genie/pkg/overlay"
)

const helpWidth = 62

// helpMarkdown is the playground manual, rendered through glamour once at
// startup.
const helpMarkdown = `# genie playground

Every chip in the gallery is a marked zone with a trigger binding. Panels
place themselves against their chip and follow it when the layout moves.

## Keys

| Key    | Action                            |
| ------ | --------------------------------- |
| ?      | toggle this help                  |
| ctrl+p | command palette                   |
| s      | settings                          |
| i      | stack inspector                   |
| t      | cycle theme                       |
| tab    | switch view (closes every panel)  |
| q      | quit                              |

## Triggers

- **click** toggles its panel
- **hover** opens on enter and closes on leave
- **right click** opens a context menu

Escape closes the topmost panel that allows it. Clicking outside a panel
closes the panels that opted in, unless the click landed on something
that removed itself from under the pointer.
`

// renderHelp renders the manual at the width the help panel lays text
// out in.
func renderHelp(width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// toggleHelp opens the manual panel, or closes it when already open.
func (m Model) toggleHelp() Model {
	if m.helpID != "" && m.mgr.IsOpen(m.helpID) {
		m.mgr.Close(m.helpID)
		m.helpID = ""
		return m
	}

	help := m.helpMD
	anchor := geometry.NewRect(max(0, (m.width-helpWidth)/2), 0, helpWidth, 1)
	m.helpID = m.mgr.Open(anchor, overlay.Config{
		Content: overlay.NewContent(
			overlay.Custom(func(width int, th overlay.Theme) string { return help }),
		),
		Width:               fmt.Sprintf("%dpx", helpWidth+4),
		MaxHeight:           "90vh",
		Backdrop:            true,
		CloseOnEscape:       true,
		CloseOnClickOutside: true,
		Theme:               m.themeName,
	})
	return m
}
