package playground

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"

	"github.com/marcus/genie/internal/config"
	"github.com/marcus/genie/pkg/geometry"
	"github.com/marcus/genie/pkg/overlay"
)

const (
	paletteWidth   = 48
	paletteMaxRows = 8
)

// paletteCommands are the actions the palette can run. The fuzzy matcher
// filters them as the query changes.
var paletteCommands = []string{
	"theme: dark",
	"theme: light",
	"theme: mono",
	"view: gallery",
	"view: about",
	"inspector: toggle",
	"overlays: close all",
	"help: open",
	"settings: open",
	"history: clear",
}

func knownCommand(s string) bool {
	for _, c := range paletteCommands {
		if c == s {
			return true
		}
	}
	return false
}

// paletteEntry is one visible row: a command, the byte indexes the fuzzy
// matcher credited, and whether the row came from the history.
type paletteEntry struct {
	command string
	matched []int
	history bool
}

type paletteState struct {
	id      string
	input   textinput.Model
	history []string
	entries []paletteEntry
	sel     int
}

// filter rebuilds the visible rows. An empty query lists history first,
// then the full command set; anything else ranks by fuzzy match.
func (p *paletteState) filter() {
	query := strings.TrimSpace(p.input.Value())
	p.entries = p.entries[:0]

	if query == "" {
		seen := make(map[string]bool)
		for _, h := range p.history {
			if !knownCommand(h) || seen[h] {
				continue
			}
			p.entries = append(p.entries, paletteEntry{command: h, history: true})
			seen[h] = true
		}
		for _, c := range paletteCommands {
			if !seen[c] {
				p.entries = append(p.entries, paletteEntry{command: c})
			}
		}
	} else {
		for _, match := range fuzzy.Find(query, paletteCommands) {
			p.entries = append(p.entries, paletteEntry{command: match.Str, matched: match.MatchedIndexes})
		}
	}

	if p.sel >= len(p.entries) {
		p.sel = max(0, len(p.entries)-1)
	}
}

// view renders the query input and the filtered rows. Matched characters
// render in the title style so the ranking is visible.
func (p *paletteState) view(width int, th overlay.Theme) string {
	rows := []string{ansi.Truncate(p.input.View(), width, ""), ""}

	if len(p.entries) == 0 {
		rows = append(rows, th.Muted.Render("(no matches)"))
		return strings.Join(rows, "\n")
	}

	shown := min(len(p.entries), paletteMaxRows)
	start := 0
	if p.sel >= shown {
		start = p.sel - shown + 1
	}
	for i := start; i < start+shown && i < len(p.entries); i++ {
		e := p.entries[i]
		prefix := "  "
		if i == p.sel {
			prefix = th.Title.Render("❯ ")
		}
		label := highlightMatches(e.command, e.matched, th)
		if e.history {
			label += th.Muted.Render("  recent")
		}
		rows = append(rows, ansi.Truncate(prefix+label, width, "…"))
	}
	return strings.Join(rows, "\n")
}

// highlightMatches styles the characters the fuzzy matcher credited.
// Commands are ASCII, so byte indexes line up with cells.
func highlightMatches(s string, indexes []int, th overlay.Theme) string {
	if len(indexes) == 0 {
		return th.Body.Render(s)
	}
	matched := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		matched[i] = true
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if matched[i] {
			sb.WriteString(th.Title.Render(string(s[i])))
		} else {
			sb.WriteString(th.Body.Render(string(s[i])))
		}
	}
	return sb.String()
}

// openPalette mounts the command palette panel. Keys go to the query input
// while it is open.
func (m Model) openPalette() (tea.Model, tea.Cmd) {
	if m.palette != nil {
		return m, nil
	}

	input := textinput.New()
	input.Placeholder = "Run a command"
	input.CharLimit = 64
	input.Width = paletteWidth - 6
	input.Focus()

	history, err := config.GetPaletteHistory(m.baseDir)
	if err != nil {
		m.logger.Warn("palette history not loaded", "err", err)
	}

	p := &paletteState{input: input, history: history}
	p.filter()

	anchor := geometry.NewRect(max(0, (m.width-paletteWidth)/2), 0, paletteWidth, 1)
	p.id = m.mgr.Open(anchor, overlay.Config{
		Content: overlay.NewContent(
			overlay.Custom(func(width int, th overlay.Theme) string { return p.view(width, th) }),
		),
		Width:               fmt.Sprintf("%dpx", paletteWidth),
		CloseOnClickOutside: true,
		Theme:               m.themeName,
	})
	m.palette = p
	return m, textinput.Blink
}

// updatePalette owns every message while the palette is open.
func (m Model) updatePalette(msg tea.Msg) (tea.Model, tea.Cmd) {
	p := m.palette

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "ctrl+p":
			m.closePalette()
			return m, nil
		case "up", "ctrl+k":
			if p.sel > 0 {
				p.sel--
			}
			return m, nil
		case "down", "ctrl+j":
			if p.sel < len(p.entries)-1 {
				p.sel++
			}
			return m, nil
		case "enter":
			if p.sel >= 0 && p.sel < len(p.entries) {
				command := p.entries[p.sel].command
				m.closePalette()
				return m.runCommand(command)
			}
			m.closePalette()
			return m, nil
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.filter()
	return m, cmd
}

func (m *Model) closePalette() {
	if m.palette == nil {
		return
	}
	m.mgr.Close(m.palette.id)
	m.palette = nil
}

// runCommand executes a palette command and records it in the history.
func (m Model) runCommand(command string) (tea.Model, tea.Cmd) {
	if err := config.AddPaletteEntry(m.baseDir, command); err != nil {
		m.logger.Warn("palette history not saved", "err", err)
	}
	m.shared.note(command)
	m.logger.Info("palette command", "command", command)

	switch command {
	case "theme: dark":
		return m.setTheme("dark"), nil
	case "theme: light":
		return m.setTheme("light"), nil
	case "theme: mono":
		return m.setTheme("mono"), nil
	case "view: gallery":
		if m.view != routeGallery {
			m = m.switchView()
		}
		return m, nil
	case "view: about":
		if m.view != routeAbout {
			m = m.switchView()
		}
		return m, nil
	case "inspector: toggle":
		m.inspectorOn = !m.inspectorOn
		return m, nil
	case "overlays: close all":
		m.mgr.CloseAll()
		m.syncOverlays()
		return m, nil
	case "help: open":
		return m.toggleHelp(), nil
	case "settings: open":
		return m.openSettings()
	case "history: clear":
		if err := config.ClearPaletteHistory(m.baseDir); err != nil {
			m.logger.Warn("palette history not cleared", "err", err)
		}
		return m, nil
	}
	return m, nil
}
