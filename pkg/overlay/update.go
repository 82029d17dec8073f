package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/genie/pkg/overlay/mouse"
)

// Hit region naming for composited panels: "panel/<overlay id>" covers the
// panel's rectangle, "panel/<overlay id>/<hit id>" covers one interactive
// element inside it.
const panelRegionPrefix = "panel/"

func panelRegionID(overlayID string) string {
	return panelRegionPrefix + overlayID
}

func panelHitID(overlayID, hitID string) string {
	return panelRegionPrefix + overlayID + "/" + hitID
}

// splitPanelRegion breaks a hit region id into overlay id and inner hit
// id. ok is false for regions that do not belong to a panel.
func splitPanelRegion(regionID string) (overlayID, hitID string, ok bool) {
	rest, found := strings.CutPrefix(regionID, panelRegionPrefix)
	if !found {
		return "", "", false
	}
	overlayID, hitID, _ = strings.Cut(rest, "/")
	return overlayID, hitID, true
}

// Update routes one host message through the engine and reports whether
// it was consumed. Hosts pass unconsumed messages on to their own
// components.
func (m *Manager) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetViewport(msg.Width, msg.Height)
		return false
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case NavigateMsg:
		m.Navigate(msg.Route)
		return false
	}
	return false
}

// NavigateMsg tells the engine the host changed routes.
type NavigateMsg struct {
	Route string
}

func (m *Manager) topOpenLocked() *Overlay {
	open := m.openLocked()
	if len(open) == 0 {
		return nil
	}
	return open[len(open)-1]
}

func (m *Manager) handleKey(msg tea.KeyMsg) bool {
	m.mu.Lock()
	top := m.topOpenLocked()
	m.mu.Unlock()

	// The topmost panel's content sees every key but escape.
	if top != nil && top.content != nil && msg.String() != "esc" {
		action, handled := top.content.HandleKey(msg)
		if action != "" {
			m.dispatchAction(top, action)
			return true
		}
		if handled {
			return true
		}
	}

	if msg.String() == "esc" {
		return m.closeTopmostOnEscape()
	}
	return false
}

// closeTopmostOnEscape closes the topmost escape-closable panel. Panels
// above it that opted out of escape stay put, as do panels below it.
func (m *Manager) closeTopmostOnEscape() bool {
	m.mu.Lock()
	top := m.topEscapableLocked()
	if top == nil {
		m.mu.Unlock()
		return false
	}
	ctx := &CloseContext{
		Reason:            CloseEscape,
		Config:            top.Config,
		Layer:             top.Layer,
		TopEscapableLayer: top.Layer,
	}
	cbs, err := m.tryCloseLocked(top, ctx)
	m.mu.Unlock()
	runCallbacks(cbs)
	return err == nil
}

// RequestClose asks for a close under a specific reason, running the full
// guard chain. Hosts use it to route dismissal events they detect
// themselves; most callers want Close instead.
func (m *Manager) RequestClose(id string, reason CloseReason) error {
	m.mu.Lock()
	o, ok := m.overlays[id]
	if !ok || o.State != StateOpen {
		m.mu.Unlock()
		return &TransitionError{From: StateClosed, To: StateClosed, Reason: "overlay not open", OverlayID: id}
	}
	ctx := &CloseContext{Reason: reason, Config: o.Config, Layer: o.Layer}
	if top := m.topEscapableLocked(); top != nil {
		ctx.TopEscapableLayer = top.Layer
	}
	cbs, err := m.tryCloseLocked(o, ctx)
	m.mu.Unlock()
	runCallbacks(cbs)
	return err
}

// OutsideClick reports a press at a target outside any panel. The target
// id may name a hit region or marked zone; empty means bare ground. Panels
// close only if their guards agree: a target that is no longer attached
// (deleted by its own click handler) never closes anything.
func (m *Manager) OutsideClick(target string) {
	m.mu.Lock()
	attached := m.targetAttachedLocked(target)
	var cbs []func()
	for _, o := range m.openLocked() {
		ctx := &CloseContext{
			Reason:         CloseOutsideClick,
			Config:         o.Config,
			Layer:          o.Layer,
			ClickedRegion:  target,
			TargetAttached: attached,
		}
		if c, err := m.tryCloseLocked(o, ctx); err == nil {
			cbs = append(cbs, c...)
		}
	}
	m.mu.Unlock()
	runCallbacks(cbs)
}

// targetAttachedLocked reports whether a click target still exists: bare
// ground always does, named targets must still be registered as a hit
// region or a measurable zone.
func (m *Manager) targetAttachedLocked(target string) bool {
	if target == "" {
		return true
	}
	if m.hits.HitMap.Find(target) != nil {
		return true
	}
	return !m.zones.Get(target).IsZero()
}

func (m *Manager) dispatchAction(o *Overlay, action string) {
	m.log.Debug("overlay action", "id", o.ID, "action", action)
	if o.Config.OnAction != nil {
		o.Config.OnAction(action)
	}
}

func (m *Manager) handleMouse(msg tea.MouseMsg) bool {
	act := m.hits.HandleMouse(msg)

	switch act.Type {
	case mouse.ActionHover:
		return m.handleHover(msg, act)
	case mouse.ActionClick:
		return m.handlePress(msg, act, TriggerClick)
	case mouse.ActionContextMenu:
		return m.handlePress(msg, act, TriggerContextMenu)
	case mouse.ActionScrollUp, mouse.ActionScrollDown, mouse.ActionScrollLeft, mouse.ActionScrollRight:
		// The host scrolls; panels just track their anchors.
		m.Reposition()
		return false
	}
	return false
}

func (m *Manager) handleHover(msg tea.MouseMsg, act mouse.Action) bool {
	if act.Region != nil {
		if overlayID, hitID, ok := splitPanelRegion(act.Region.ID); ok {
			m.mu.Lock()
			o, open := m.overlays[overlayID]
			m.mu.Unlock()
			if open && o.content != nil {
				o.content.SetHover(hitID)
			}
			return true
		}
	}

	// Pointer is over host ground: clear panel hover and drive hover
	// triggers.
	m.mu.Lock()
	open := m.openLocked()
	var toOpen []*Binding
	var toClose []string
	for _, b := range m.bindings {
		if b.Kind != TriggerHover {
			continue
		}
		in := m.zones.Get(b.AnchorID).InBounds(msg)
		switch {
		case in && !b.hovering:
			b.hovering = true
			toOpen = append(toOpen, b)
		case !in && b.hovering:
			b.hovering = false
			if b.overlayID != "" {
				toClose = append(toClose, b.overlayID)
			}
		}
	}
	m.mu.Unlock()

	for _, o := range open {
		if o.content != nil {
			o.content.SetHover("")
		}
	}
	for _, b := range toOpen {
		m.triggerOpen(b)
	}
	for _, id := range toClose {
		m.Close(id)
	}
	return false
}

// handlePress routes a left or right press: into the pressed panel, to a
// matching anchor trigger, and as an outside press to everything else.
func (m *Manager) handlePress(msg tea.MouseMsg, act mouse.Action, kind TriggerKind) bool {
	if act.Region != nil {
		if overlayID, hitID, ok := splitPanelRegion(act.Region.ID); ok {
			// Presses inside a panel never close it.
			m.mu.Lock()
			o, open := m.overlays[overlayID]
			m.mu.Unlock()
			if open && o.content != nil && hitID != "" {
				if action := o.content.HandleClick(hitID); action != "" {
					m.dispatchAction(o, action)
				}
			}
			return true
		}
	}

	target := ""
	if act.Region != nil {
		target = act.Region.ID
	}

	m.mu.Lock()
	bindings := make([]*Binding, 0, len(m.bindings))
	for _, b := range m.bindings {
		bindings = append(bindings, b)
	}
	m.mu.Unlock()

	consumed := false
	var hit *Binding
	for _, b := range bindings {
		if !m.zones.Get(b.AnchorID).InBounds(msg) {
			continue
		}
		if target == "" {
			target = b.AnchorID
		}
		if b.Kind != kind {
			continue
		}
		hit = b
		break
	}

	if hit != nil {
		switch kind {
		case TriggerClick:
			m.triggerToggle(hit)
		case TriggerContextMenu:
			if hit.overlayID == "" || !m.IsOpen(hit.overlayID) {
				m.triggerOpen(hit)
			}
		}
		consumed = true
	}

	// Everything not owned by the pressed anchor sees an outside press.
	m.mu.Lock()
	attached := m.targetAttachedLocked(target)
	var cbs []func()
	for _, o := range m.openLocked() {
		if hit != nil && hit.overlayID == o.ID {
			continue
		}
		ctx := &CloseContext{
			Reason:         CloseOutsideClick,
			Config:         o.Config,
			Layer:          o.Layer,
			ClickedRegion:  target,
			TargetAttached: attached,
		}
		if c, err := m.tryCloseLocked(o, ctx); err == nil {
			cbs = append(cbs, c...)
			consumed = true
		}
	}
	m.mu.Unlock()
	runCallbacks(cbs)

	return consumed
}
