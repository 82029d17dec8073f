package overlay

import "strings"

// TriggerKind names the anchor interaction that shows a panel.
type TriggerKind string

const (
	TriggerClick       TriggerKind = "click"
	TriggerHover       TriggerKind = "hover"
	TriggerContextMenu TriggerKind = "contextmenu"
)

// NormalizeTrigger maps a config string to a canonical trigger kind. The
// empty string counts as click.
func NormalizeTrigger(s string) (TriggerKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "click":
		return TriggerClick, true
	case "hover", "mouseover":
		return TriggerHover, true
	case "contextmenu", "context-menu", "rightclick", "right-click":
		return TriggerContextMenu, true
	}
	return TriggerClick, false
}

// Binding ties an anchor zone to trigger semantics: click toggles, hover
// opens on enter and closes on leave, contextmenu opens on right click.
// The binding owns the panel it opens for as long as it stays bound.
type Binding struct {
	AnchorID string
	Kind     TriggerKind
	Config   Config

	overlayID string
	hovering  bool
}

// OverlayID returns the handle of the panel this binding has open, or
// empty.
func (b *Binding) OverlayID() string { return b.overlayID }

// Bind registers trigger handling for an anchor zone. Rebinding an anchor
// replaces the previous binding and closes its panel.
func (m *Manager) Bind(anchorID string, kind TriggerKind, cfg Config) *Binding {
	b := &Binding{AnchorID: anchorID, Kind: kind, Config: cfg}

	m.mu.Lock()
	var cbs []func()
	if old, ok := m.bindings[anchorID]; ok && old.overlayID != "" {
		if o, open := m.overlays[old.overlayID]; open && o.State == StateOpen {
			cbs = m.closeLocked(o, &CloseContext{Reason: CloseUnbind, Config: o.Config, Layer: o.Layer})
		}
	}
	m.bindings[anchorID] = b
	m.mu.Unlock()

	runCallbacks(cbs)
	return b
}

// Unbind removes an anchor's trigger handling and closes its panel. No
// listener or timer belonging to the panel survives the call.
func (m *Manager) Unbind(anchorID string) {
	m.mu.Lock()
	b, ok := m.bindings[anchorID]
	if !ok {
		m.mu.Unlock()
		return
	}
	delete(m.bindings, anchorID)

	var cbs []func()
	if b.overlayID != "" {
		if o, open := m.overlays[b.overlayID]; open && o.State == StateOpen {
			cbs = m.closeLocked(o, &CloseContext{Reason: CloseUnbind, Config: o.Config, Layer: o.Layer})
		}
	}
	m.mu.Unlock()
	runCallbacks(cbs)
}

// triggerOpen opens the binding's panel anchored to its zone.
func (m *Manager) triggerOpen(b *Binding) string {
	cfg := b.Config
	cfg.Trigger = b.Kind
	id := m.OpenZone(b.AnchorID, cfg)

	m.mu.Lock()
	b.overlayID = id
	m.mu.Unlock()
	return id
}

// triggerToggle opens the binding's panel, or closes it when it is
// already open. It reports whether a panel ended up open.
func (m *Manager) triggerToggle(b *Binding) bool {
	m.mu.Lock()
	id := b.overlayID
	m.mu.Unlock()

	if id != "" && m.IsOpen(id) {
		m.Close(id)
		return false
	}
	m.triggerOpen(b)
	return true
}
