package playground

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/marcus/genie/internal/config"
	"github.com/marcus/genie/pkg/geometry"
	"github.com/marcus/genie/pkg/overlay"
)

const settingsWidth = 52

// settingsState pairs the open panel with the form bound to its fields.
type settingsState struct {
	id   string
	form *huh.Form

	theme    string
	rootFont string
	reduced  bool
	mouse    bool
}

func validateRootFont(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive cell count")
	}
	return nil
}

// openSettings mounts the settings form in a backdrop panel. The form
// binds directly to the state fields; completing it persists them.
func (m Model) openSettings() (tea.Model, tea.Cmd) {
	if m.settings != nil {
		return m, nil
	}

	rootFont, err := config.GetRootFontPx(m.baseDir)
	if err != nil {
		rootFont = overlay.DefaultRootFontPx
	}
	mouseOn, err := config.GetMouseCapture(m.baseDir)
	if err != nil {
		mouseOn = true
	}

	s := &settingsState{
		theme:    m.themeName,
		rootFont: strconv.Itoa(rootFont),
		reduced:  m.reduced,
		mouse:    mouseOn,
	}
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(huh.NewOptions(overlay.ThemeNames()...)...).
				Value(&s.theme),
			huh.NewInput().
				Title("Root font (cells per rem)").
				Validate(validateRootFont).
				Value(&s.rootFont),
			huh.NewConfirm().
				Title("Reduced motion").
				Value(&s.reduced),
			huh.NewConfirm().
				Title("Capture the mouse").
				Value(&s.mouse),
		),
	).
		WithTheme(huh.ThemeBase()).
		WithWidth(settingsWidth - 6)

	anchor := geometry.NewRect(max(0, (m.width-settingsWidth)/2), 1, settingsWidth, 1)
	s.id = m.mgr.Open(anchor, overlay.Config{
		Content: overlay.NewContent(
			overlay.Title("Settings"),
			overlay.Spacer(),
			overlay.Custom(func(width int, th overlay.Theme) string { return s.form.View() }),
			overlay.Spacer(),
			overlay.Muted("Root font and mouse capture apply on the next run."),
		),
		Width:    fmt.Sprintf("%dpx", settingsWidth),
		Backdrop: true,
		Theme:    m.themeName,
	})
	m.settings = s
	return m, s.form.Init()
}

// updateSettings owns every message while the form is open.
func (m Model) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := m.settings

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.closeSettings()
		return m, nil
	}

	f, cmd := s.form.Update(msg)
	if nf, ok := f.(*huh.Form); ok {
		s.form = nf
	}

	switch s.form.State {
	case huh.StateCompleted:
		m = m.applySettings(s)
		m.closeSettings()
		return m, cmd
	case huh.StateAborted:
		m.closeSettings()
		return m, cmd
	}
	return m, cmd
}

func (m *Model) closeSettings() {
	if m.settings == nil {
		return
	}
	m.mgr.Close(m.settings.id)
	m.settings = nil
}

// applySettings persists the form values and applies what can take effect
// now. The root font is fixed at manager construction and mouse capture is
// a program option, so both wait for the next run.
func (m Model) applySettings(s *settingsState) Model {
	if px, err := strconv.Atoi(strings.TrimSpace(s.rootFont)); err == nil && px > 0 {
		if err := config.SetRootFontPx(m.baseDir, px); err != nil {
			m.logger.Warn("root font not saved", "err", err)
		}
	}
	if err := config.SetReducedMotion(m.baseDir, s.reduced); err != nil {
		m.logger.Warn("reduced motion not saved", "err", err)
	}
	m.reduced = s.reduced
	if err := config.SetMouseCapture(m.baseDir, s.mouse); err != nil {
		m.logger.Warn("mouse capture not saved", "err", err)
	}
	if s.theme != m.themeName {
		m = m.setTheme(s.theme)
	} else {
		// setTheme rebinds on its own; a same-theme save still needs the
		// chips rebound in case reduced motion changed.
		m.bindChips()
	}
	m.logger.Info("settings saved",
		"theme", s.theme, "root_font", s.rootFont, "reduced_motion", s.reduced, "mouse", s.mouse)
	return m
}
