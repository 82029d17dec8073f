// Package playground is the interactive demo behind `genie demo`: a
// two-pane host app whose chips, tabs and splitter exercise every trigger
// kind, placement path and close reason the overlay engine supports.
package playground

import (
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/marcus/genie/internal/config"
	"github.com/marcus/genie/pkg/overlay"
	"github.com/marcus/genie/pkg/overlay/mouse"
)

// route names a host view. Switching routes goes through the engine so
// every open panel force-closes.
type route string

const (
	routeGallery route = "gallery"
	routeAbout   route = "about"
)

// Options configures a playground.
type Options struct {
	BaseDir string
	Logger  *log.Logger
	Theme   string // empty uses the configured theme
	Width   int
	Height  int
}

// sharedState is written from engine callbacks. Auto-close timers fire on
// their own goroutine, so access goes through the mutex.
type sharedState struct {
	mu         sync.Mutex
	lastAction string
}

func (s *sharedState) note(action string) {
	s.mu.Lock()
	s.lastAction = action
	s.mu.Unlock()
}

func (s *sharedState) last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAction
}

// Model is the playground's bubbletea model. The manager, hit handler and
// shared state live behind pointers so engine callbacks and render
// closures see current state across model copies.
type Model struct {
	baseDir string
	logger  *log.Logger

	mgr    *overlay.Manager
	hits   *mouse.Handler
	shared *sharedState

	width  int
	height int
	split  int // left pane width in cells

	view      route
	themeName string
	theme     overlay.Theme
	reduced   bool

	inspectorOn bool

	helpMD string
	helpID string

	palette  *paletteState
	settings *settingsState

	// actionsSel survives reopen cycles of the actions list chip.
	actionsSel *int
}

// New builds the playground model. The config read and the help renderer
// are independent, so they load in parallel; either failing fails the
// build.
func New(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		baseDir:    opts.BaseDir,
		logger:     logger,
		hits:       mouse.NewHandler(),
		shared:     &sharedState{},
		width:      opts.Width,
		height:     opts.Height,
		view:       routeGallery,
		actionsSel: new(int),
	}

	var (
		themeName string
		rootFont  int
		reduced   bool
		helpMD    string
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		if themeName, err = config.GetTheme(opts.BaseDir); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if rootFont, err = config.GetRootFontPx(opts.BaseDir); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if reduced, err = config.GetReducedMotion(opts.BaseDir); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if helpMD, err = renderHelp(helpWidth); err != nil {
			return fmt.Errorf("render help: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Model{}, err
	}

	if opts.Theme != "" {
		themeName = opts.Theme
	}
	th, ok := overlay.LookupTheme(themeName)
	if !ok {
		themeName, th = config.DefaultTheme, overlay.ThemeDark
	}
	m.themeName = themeName
	m.theme = th
	m.reduced = reduced
	m.helpMD = helpMD

	m.mgr = overlay.NewManager(overlay.NewStack(),
		overlay.WithLogger(logger),
		overlay.WithAmbientTheme(th),
		overlay.WithRootFont(rootFont),
	)
	if opts.Width > 0 && opts.Height > 0 {
		m.mgr.SetViewport(opts.Width, opts.Height)
		m.split = defaultSplit(opts.Width)
	}

	m.bindChips()
	return m, nil
}

// Init satisfies tea.Model. Sizing comes with the first WindowSizeMsg;
// nothing needs to start ahead of it.
func (m Model) Init() tea.Cmd { return nil }

// Update routes messages in priority order: quit, modal input, the pane
// splitter, the engine, then the playground's own keys and chrome.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.split == 0 {
			m.split = defaultSplit(msg.Width)
		} else {
			m.split = clampSplit(m.split, msg.Width)
		}
		m.mgr.Update(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.mgr.Shutdown()
			return m, tea.Quit
		}
		if m.settings != nil {
			return m.updateSettings(msg)
		}
		if m.palette != nil {
			return m.updatePalette(msg)
		}
		if m.mgr.Update(msg) {
			m.syncOverlays()
			return m, nil
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.settings != nil {
			// The settings form is modal: the pointer cannot reach past it.
			return m, nil
		}
		if m.handleSplitter(msg) {
			return m, nil
		}
		if m.mgr.Update(msg) {
			m.syncOverlays()
			return m, nil
		}
		return m.handleMouse(msg)
	}

	// Everything else is component-internal: form ticks, cursor blinks.
	if m.settings != nil {
		return m.updateSettings(msg)
	}
	if m.palette != nil {
		return m.updatePalette(msg)
	}
	return m, nil
}

// handleKey handles the top-level keymap once nothing else claimed the key.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.mgr.Shutdown()
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		return m.toggleHelp(), nil
	case key.Matches(msg, keys.Palette):
		return m.openPalette()
	case key.Matches(msg, keys.Settings):
		return m.openSettings()
	case key.Matches(msg, keys.Inspector):
		m.inspectorOn = !m.inspectorOn
		return m, nil
	case key.Matches(msg, keys.Theme):
		return m.cycleTheme(), nil
	case key.Matches(msg, keys.Tab):
		return m.switchView(), nil
	}
	return m, nil
}

// handleMouse is the host fallthrough for presses the engine left alone.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	r := m.hits.HitMap.Test(msg.X, msg.Y)
	if r == nil {
		return m, nil
	}
	switch r.ID {
	case regionTabGallery:
		if m.view != routeGallery {
			m = m.switchView()
		}
	case regionTabAbout:
		if m.view != routeAbout {
			m = m.switchView()
		}
	}
	return m, nil
}

// handleSplitter owns presses on the pane divider. It runs before the
// engine sees the event, so a drag never reads as an outside click.
func (m *Model) handleSplitter(msg tea.MouseMsg) bool {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return false
		}
		r := m.hits.HitMap.Test(msg.X, msg.Y)
		if r == nil || r.ID != regionSplitter {
			return false
		}
		m.hits.StartDrag(msg.X, msg.Y, regionSplitter, m.split)
		return true
	case tea.MouseActionMotion:
		if !m.hits.IsDragging() {
			return false
		}
		dx, _ := m.hits.DragDelta(msg.X, msg.Y)
		m.split = clampSplit(m.hits.DragStartValue()+dx, m.width)
		return true
	case tea.MouseActionRelease:
		if !m.hits.IsDragging() {
			return false
		}
		m.hits.EndDrag()
		return true
	}
	return false
}

// switchView flips between the gallery and about routes. The route change
// goes through the engine so every open panel force-closes with it.
func (m Model) switchView() Model {
	next := routeAbout
	if m.view == routeAbout {
		next = routeGallery
	}
	m.view = next
	m.mgr.Update(overlay.NavigateMsg{Route: string(next)})
	m.syncOverlays()
	m.logger.Debug("view switched", "route", next)
	return m
}

// setTheme applies and persists a theme, then rebinds the chips so their
// next open carries it.
func (m Model) setTheme(name string) Model {
	th, ok := overlay.LookupTheme(name)
	if !ok {
		return m
	}
	m.themeName = name
	m.theme = th
	if err := config.SetTheme(m.baseDir, name); err != nil {
		m.logger.Warn("theme not saved", "err", err)
	}
	m.bindChips()
	m.logger.Info("theme changed", "theme", name)
	return m
}

// cycleTheme advances through the registered themes in order.
func (m Model) cycleTheme() Model {
	names := overlay.ThemeNames()
	for i, n := range names {
		if n == m.themeName {
			return m.setTheme(names[(i+1)%len(names)])
		}
	}
	return m.setTheme(names[0])
}

// syncOverlays drops host state for panels the engine closed on its own:
// escape, outside click, auto-close or navigation.
func (m *Model) syncOverlays() {
	if m.helpID != "" && !m.mgr.IsOpen(m.helpID) {
		m.helpID = ""
	}
	if m.palette != nil && !m.mgr.IsOpen(m.palette.id) {
		m.palette = nil
	}
	if m.settings != nil && !m.mgr.IsOpen(m.settings.id) {
		m.settings = nil
	}
}
