package overlay

import (
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"

	"github.com/marcus/genie/pkg/geometry"
	"github.com/marcus/genie/pkg/overlay/mouse"
)

// Config describes one panel at open time.
type Config struct {
	// Content is the panel's section tree. ContentFunc wins when both are
	// set; it runs at open time and receives a close callback bound to
	// the panel, so content can dismiss itself.
	Content     *Content
	ContentFunc ContentFunc

	Trigger TriggerKind
	Variant Variant

	// Animation is carried for hosts that animate panels themselves; the
	// engine does not interpret it.
	Animation string

	// Backdrop dims the host frame behind the panel.
	Backdrop bool

	CloseOnClickOutside bool
	CloseOnEscape       bool

	// AutoClose closes the panel after the duration; zero disables it.
	AutoClose time.Duration

	// Size constraints, as dimension strings ("240px", "50%", "30vh").
	Width, Height       string
	MinWidth, MinHeight string
	MaxWidth, MaxHeight string

	// Theme names a registered theme; empty uses the manager's ambient
	// default.
	Theme string

	// Clip bounds the anchor's visibility, typically its scrollable
	// container. The zero rect means the whole viewport. ClipZone names a
	// marked zone to measure the clip from instead; it wins when it
	// measures.
	Clip     geometry.Rect
	ClipZone string

	OnShow   func()
	OnHide   func()
	OnAction func(action string)
}

// Overlay is the record of one panel from open to close.
type Overlay struct {
	ID       string
	AnchorID string        // marked zone the panel follows, empty for fixed anchors
	Anchor   geometry.Rect // last measured anchor bounds
	Layer    int
	State    State
	Config   Config
	Position Position

	theme      Theme
	content    *Content
	subs       []*Subscription
	timer      *time.Timer
	generation int
	hideFired  bool
	panelRect  geometry.Rect // measured at last composite
}

// OverlayInfo is a read-only snapshot of an open panel.
type OverlayInfo struct {
	ID              string
	AnchorID        string
	Anchor          geometry.Rect
	Layer           int
	State           State
	Quadrant        Quadrant
	Styles          Styles
	AvailableWidth  int
	AvailableHeight int
	Theme           string
	Variant         Variant
}

// Manager is the engine façade: it owns the stack allocator, the event
// bus, the zone manager, the hit map, and every overlay from open to
// close. All methods are safe for concurrent use; the auto-close timer
// fires on its own goroutine.
type Manager struct {
	mu        sync.Mutex
	stack     *Stack
	bus       *Bus
	zones     *zone.Manager
	ownsZones bool
	hits      *mouse.Handler
	log       *log.Logger
	ambient   Theme
	rootFont  int
	viewport  geometry.Size
	overlays  map[string]*Overlay
	bindings  map[string]*Binding
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the manager's logger.
func WithLogger(l *log.Logger) ManagerOption {
	return func(m *Manager) { m.log = l }
}

// WithAmbientTheme sets the theme panels fall back to when their config
// names none.
func WithAmbientTheme(t Theme) ManagerOption {
	return func(m *Manager) { m.ambient = t }
}

// WithZones shares the host's zone manager so anchors marked by the host
// are measurable here.
func WithZones(z *zone.Manager) ManagerOption {
	return func(m *Manager) { m.zones = z }
}

// WithBus shares an event bus with the host.
func WithBus(b *Bus) ManagerOption {
	return func(m *Manager) { m.bus = b }
}

// WithRootFont sets the cell count a rem resolves to.
func WithRootFont(px int) ManagerOption {
	return func(m *Manager) { m.rootFont = px }
}

// NewManager builds a Manager around an injected stack allocator.
func NewManager(stack *Stack, opts ...ManagerOption) *Manager {
	m := &Manager{
		stack:    stack,
		overlays: make(map[string]*Overlay),
		bindings: make(map[string]*Binding),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.bus == nil {
		m.bus = NewBus()
	}
	if m.zones == nil {
		m.zones = zone.New()
		m.ownsZones = true
	}
	if m.hits == nil {
		m.hits = mouse.NewHandler()
	}
	if m.log == nil {
		m.log = log.Default()
	}
	if m.ambient.Name == "" {
		m.ambient = ThemeDark
	}
	return m
}

// Bus returns the manager's event bus for hosts to publish on.
func (m *Manager) Bus() *Bus { return m.bus }

// Zones returns the zone manager anchors are marked with.
func (m *Manager) Zones() *zone.Manager { return m.zones }

// SetViewport records the terminal size placements compute against.
func (m *Manager) SetViewport(width, height int) {
	m.mu.Lock()
	changed := m.viewport.Width != width || m.viewport.Height != height
	m.viewport = geometry.Size{Width: width, Height: height}
	if changed {
		m.repositionAllLocked()
	}
	m.mu.Unlock()
}

// Viewport returns the last recorded terminal size.
func (m *Manager) Viewport() geometry.Size {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewport
}

func (m *Manager) resolver() Resolver {
	return Resolver{
		ViewportWidth:  m.viewport.Width,
		ViewportHeight: m.viewport.Height,
		RootFontPx:     m.rootFont,
	}
}

// Open mounts a panel anchored to fixed viewport bounds and returns its
// handle. Opening never fails: an unmeasurable anchor yields a hidden
// panel rather than an error.
func (m *Manager) Open(anchor geometry.Rect, cfg Config) string {
	return m.open("", anchor, cfg)
}

// OpenZone mounts a panel anchored to a marked zone. The anchor is
// remeasured on every pass, so the panel follows the zone as the host
// relayouts; an unmarked or unmeasured zone hides the panel.
func (m *Manager) OpenZone(anchorID string, cfg Config) string {
	return m.open(anchorID, geometry.Rect{}, cfg)
}

func (m *Manager) open(anchorID string, anchor geometry.Rect, cfg Config) string {
	id := uuid.NewString()

	th := m.ambient
	if cfg.Theme != "" {
		if t, ok := LookupTheme(cfg.Theme); ok {
			th = t
		} else {
			m.log.Warn("unknown theme, using ambient", "theme", cfg.Theme)
		}
	}

	content := cfg.Content
	if cfg.ContentFunc != nil {
		content = cfg.ContentFunc(func() { m.Close(id) })
	}

	o := &Overlay{
		ID:       id,
		AnchorID: anchorID,
		Anchor:   anchor,
		Layer:    m.stack.Allocate(),
		State:    StateOpen,
		Config:   cfg,
		theme:    th,
		content:  content,
	}

	m.mu.Lock()
	o.Position = m.computeLocked(o)
	o.subs = []*Subscription{
		m.bus.Subscribe(TopicScroll, func(Event) { m.Reposition() }),
		m.bus.Subscribe(TopicResize, func(e Event) {
			if r, ok := e.Data.(ResizeEvent); ok {
				m.SetViewport(r.Width, r.Height)
			}
		}),
		m.bus.Subscribe(TopicPaginate, func(Event) { m.Reposition() }),
		m.bus.Subscribe(TopicNavigate, func(Event) { m.closeForNavigation(id) }),
	}
	if cfg.AutoClose > 0 {
		gen := o.generation
		o.timer = time.AfterFunc(cfg.AutoClose, func() { m.autoClose(id, gen) })
	}
	m.overlays[id] = o
	m.mu.Unlock()

	m.log.Debug("overlay opened",
		"id", id, "anchor", anchorID, "layer", o.Layer, "quadrant", o.Position.Quadrant)

	if cfg.OnShow != nil {
		cfg.OnShow()
	}
	return id
}

// computeLocked measures the overlay's anchor and clip and runs the
// placement calculator.
func (m *Manager) computeLocked(o *Overlay) Position {
	anchor := o.Anchor
	if o.AnchorID != "" {
		zi := m.zones.Get(o.AnchorID)
		if zi.IsZero() {
			// Anchor unmounted or not yet rendered: fail closed.
			return hiddenPosition()
		}
		anchor = zoneRect(zi)
		o.Anchor = anchor
	}

	clip := o.Config.Clip
	if o.Config.ClipZone != "" {
		if zi := m.zones.Get(o.Config.ClipZone); !zi.IsZero() {
			clip = zoneRect(zi)
		}
	}
	if clip.Empty() {
		return Compute(anchor, m.viewport)
	}
	return ComputeClipped(anchor, m.viewport, clip)
}

// repositionLocked recomputes one panel's placement, keeping the previous
// value when the result is identical so downstream renders can skip work.
// It reports whether the position changed.
func (m *Manager) repositionLocked(o *Overlay) bool {
	next := m.computeLocked(o)
	if next.Equal(o.Position) {
		return false
	}
	o.Position = next
	return true
}

func (m *Manager) repositionAllLocked() {
	for _, o := range m.overlays {
		if o.State != StateOpen {
			continue
		}
		if m.repositionLocked(o) {
			m.log.Debug("overlay repositioned", "id", o.ID, "quadrant", o.Position.Quadrant)
		}
	}
}

// Reposition recomputes every open panel against current geometry. Hosts
// call it (or publish scroll/paginate events) after content moves.
func (m *Manager) Reposition() {
	m.mu.Lock()
	m.repositionAllLocked()
	m.mu.Unlock()
}

// IsOpen reports whether the handle names an open panel.
func (m *Manager) IsOpen(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.overlays[id]
	return ok && o.State == StateOpen
}

// Info returns a snapshot of an open panel.
func (m *Manager) Info(id string) (OverlayInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.overlays[id]
	if !ok {
		return OverlayInfo{}, false
	}
	return o.info(), true
}

// List returns snapshots of all open panels, bottom to top.
func (m *Manager) List() []OverlayInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	var infos []OverlayInfo
	for _, o := range m.openLocked() {
		infos = append(infos, o.info())
	}
	return infos
}

func (o *Overlay) info() OverlayInfo {
	return OverlayInfo{
		ID:              o.ID,
		AnchorID:        o.AnchorID,
		Anchor:          o.Anchor,
		Layer:           o.Layer,
		State:           o.State,
		Quadrant:        o.Position.Quadrant,
		Styles:          o.Position.Styles,
		AvailableWidth:  o.Position.AvailableWidth,
		AvailableHeight: o.Position.AvailableHeight,
		Theme:           o.theme.Name,
		Variant:         o.Config.Variant,
	}
}

// openLocked returns open overlays sorted bottom to top by layer.
func (m *Manager) openLocked() []*Overlay {
	var open []*Overlay
	for _, o := range m.overlays {
		if o.State == StateOpen {
			open = append(open, o)
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i].Layer < open[j].Layer })
	return open
}

// topEscapableLocked returns the highest open overlay that closes on
// escape, or nil.
func (m *Manager) topEscapableLocked() *Overlay {
	var top *Overlay
	for _, o := range m.overlays {
		if o.State != StateOpen || !o.Config.CloseOnEscape {
			continue
		}
		if top == nil || o.Layer > top.Layer {
			top = o
		}
	}
	return top
}

// Close dismisses a panel explicitly. It reports whether the panel was
// open.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	o, ok := m.overlays[id]
	if !ok || o.State != StateOpen {
		m.mu.Unlock()
		return false
	}
	cb := m.closeLocked(o, &CloseContext{Reason: CloseExplicit, Config: o.Config, Layer: o.Layer})
	m.mu.Unlock()
	runCallbacks(cb)
	return true
}

// CloseAll force-closes every open panel, as on a route change.
func (m *Manager) CloseAll() {
	m.closeAll(CloseNavigate)
}

func (m *Manager) closeAll(reason CloseReason) {
	m.mu.Lock()
	var cbs []func()
	for _, o := range m.openLocked() {
		cbs = append(cbs, m.closeLocked(o, &CloseContext{Reason: reason, Config: o.Config, Layer: o.Layer})...)
	}
	m.mu.Unlock()
	runCallbacks(cbs)
}

// Shutdown force-closes every panel and, when the manager created its own
// zone manager, releases its worker. The manager is unusable afterwards.
func (m *Manager) Shutdown() {
	m.closeAll(CloseUnbind)
	if m.ownsZones {
		m.zones.Close()
	}
}

// Navigate reports a route change: every open panel force-closes so none
// outlives the view that anchored it.
func (m *Manager) Navigate(route string) {
	m.log.Debug("navigation, closing all overlays", "route", route)
	m.CloseAll()
}

func (m *Manager) closeForNavigation(id string) {
	m.mu.Lock()
	var cbs []func()
	if o, ok := m.overlays[id]; ok && o.State == StateOpen {
		cbs = m.closeLocked(o, &CloseContext{Reason: CloseNavigate, Config: o.Config, Layer: o.Layer})
	}
	m.mu.Unlock()
	runCallbacks(cbs)
}

func (m *Manager) autoClose(id string, gen int) {
	m.mu.Lock()
	o, ok := m.overlays[id]
	if !ok || o.State != StateOpen || o.generation != gen {
		// The panel closed before the timer fired; never close twice.
		m.mu.Unlock()
		return
	}
	cbs := m.closeLocked(o, &CloseContext{Reason: CloseAutoTimeout, Config: o.Config, Layer: o.Layer})
	m.mu.Unlock()
	runCallbacks(cbs)
}

// tryCloseLocked validates a close request against the lifecycle guards
// before tearing the panel down. A veto leaves the panel open.
func (m *Manager) tryCloseLocked(o *Overlay, ctx *CloseContext) ([]func(), error) {
	if err := ValidateClose(o.ID, o.State, ctx); err != nil {
		m.log.Debug("close vetoed", "id", o.ID, "reason", ctx.Reason, "err", err)
		return nil, err
	}
	return m.closeLocked(o, ctx), nil
}

// closeLocked transitions a panel out of Open and tears down everything
// registered on its behalf: bus subscriptions are cancelled and the timer
// stopped synchronously, before the lock is released. The returned
// callbacks (OnHide) run after unlock.
func (m *Manager) closeLocked(o *Overlay, ctx *CloseContext) []func() {
	if o.State != StateOpen {
		return nil
	}
	o.State = StateClosed
	o.generation++

	for _, s := range o.subs {
		s.Cancel()
	}
	o.subs = nil

	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}

	delete(m.overlays, o.ID)
	for _, b := range m.bindings {
		if b.overlayID == o.ID {
			b.overlayID = ""
			b.hovering = false
		}
	}
	m.log.Debug("overlay closed", "id", o.ID, "reason", ctx.Reason, "layer", o.Layer)

	if o.Config.OnHide != nil && !o.hideFired {
		o.hideFired = true
		return []func(){o.Config.OnHide}
	}
	return nil
}

func runCallbacks(cbs []func()) {
	for _, cb := range cbs {
		cb()
	}
}
