package overlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// markedFrame builds a host frame with a single marked anchor at the given
// cell. The label lands at (col, row) once the frame is scanned.
func markedFrame(m *Manager, row, col int, id, label string) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("\n", row))
	sb.WriteString(strings.Repeat(" ", col))
	sb.WriteString(m.Zones().Mark(id, label))
	return sb.String()
}

func leftPress(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func rightPress(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion}
}

func TestBindClickToggles(t *testing.T) {
	m := newTestManager(t)
	b := m.Bind("save-btn", TriggerClick, Config{})

	m.View(markedFrame(m, 5, 10, "save-btn", "[Save]"))
	waitForZone(t, m, "save-btn")

	if !m.Update(leftPress(12, 5)) {
		t.Fatal("press on the anchor should be consumed")
	}
	id := b.OverlayID()
	if id == "" || !m.IsOpen(id) {
		t.Fatal("click should open the bound overlay")
	}

	if !m.Update(leftPress(12, 5)) {
		t.Fatal("second press should be consumed")
	}
	if m.IsOpen(id) {
		t.Error("second click should close the overlay")
	}
	if b.OverlayID() != "" {
		t.Error("binding should forget its closed overlay")
	}

	// A press off the anchor opens nothing.
	m.Update(leftPress(80, 30))
	if b.OverlayID() != "" {
		t.Error("press off the anchor should not open")
	}
}

func TestBindContextMenu(t *testing.T) {
	m := newTestManager(t)
	b := m.Bind("row-3", TriggerContextMenu, Config{})

	m.View(markedFrame(m, 5, 10, "row-3", "task row"))
	waitForZone(t, m, "row-3")

	// Left click must not open a context menu.
	m.Update(leftPress(12, 5))
	if b.OverlayID() != "" {
		t.Fatal("left press should not open a context menu")
	}

	if !m.Update(rightPress(12, 5)) {
		t.Fatal("right press on the anchor should be consumed")
	}
	id := b.OverlayID()
	if id == "" || !m.IsOpen(id) {
		t.Fatal("right press should open the bound overlay")
	}

	// Repeat right presses keep the same overlay instead of toggling.
	m.Update(rightPress(12, 5))
	if !m.IsOpen(id) {
		t.Error("repeat right press should not close the overlay")
	}
	if b.OverlayID() != id {
		t.Error("repeat right press should not reopen")
	}
}

func TestBindHoverEnterLeave(t *testing.T) {
	m := newTestManager(t)
	b := m.Bind("user-chip", TriggerHover, Config{})

	m.View(markedFrame(m, 5, 10, "user-chip", "@marcus"))
	waitForZone(t, m, "user-chip")

	m.Update(motion(12, 5))
	id := b.OverlayID()
	if id == "" || !m.IsOpen(id) {
		t.Fatal("entering the anchor should open the overlay")
	}

	// Moving within the anchor must not reopen.
	m.Update(motion(13, 5))
	if b.OverlayID() != id {
		t.Error("motion inside the anchor should keep the same overlay")
	}

	m.Update(motion(50, 20))
	if m.IsOpen(id) {
		t.Error("leaving the anchor should close the overlay")
	}
	if b.OverlayID() != "" {
		t.Error("binding should forget its closed overlay")
	}
}

func TestUnbindTearsDown(t *testing.T) {
	m := newTestManager(t)
	baseline := m.Bus().TotalListeners()

	var hides int
	b := m.Bind("save-btn", TriggerClick, Config{OnHide: func() { hides++ }})

	m.View(markedFrame(m, 5, 10, "save-btn", "[Save]"))
	waitForZone(t, m, "save-btn")

	m.Update(leftPress(12, 5))
	id := b.OverlayID()
	if id == "" {
		t.Fatal("click should open the bound overlay")
	}

	m.Unbind("save-btn")
	if m.IsOpen(id) {
		t.Error("unbind should close the binding's overlay")
	}
	if hides != 1 {
		t.Errorf("OnHide fired %d times, want 1", hides)
	}
	if got := m.Bus().TotalListeners(); got != baseline {
		t.Errorf("listeners = %d after unbind, want baseline %d", got, baseline)
	}

	// Unbinding again is harmless, and the anchor no longer triggers.
	m.Unbind("save-btn")
	m.Update(leftPress(12, 5))
	if len(m.List()) != 0 {
		t.Error("unbound anchor should not open overlays")
	}
}

func TestRebindReplacesBinding(t *testing.T) {
	m := newTestManager(t)
	b1 := m.Bind("save-btn", TriggerClick, Config{})

	m.View(markedFrame(m, 5, 10, "save-btn", "[Save]"))
	waitForZone(t, m, "save-btn")

	m.Update(leftPress(12, 5))
	id := b1.OverlayID()
	if id == "" {
		t.Fatal("click should open the bound overlay")
	}

	b2 := m.Bind("save-btn", TriggerHover, Config{})
	if m.IsOpen(id) {
		t.Error("rebinding should close the previous overlay")
	}

	// The anchor now answers to hover, not click.
	m.Update(leftPress(12, 5))
	if b2.OverlayID() != "" {
		t.Error("click should not trigger a hover binding")
	}
	m.Update(motion(12, 5))
	if b2.OverlayID() == "" {
		t.Error("hover should trigger the new binding")
	}
}

func TestNormalizeTrigger(t *testing.T) {
	tests := []struct {
		in   string
		want TriggerKind
		ok   bool
	}{
		{in: "", want: TriggerClick, ok: true},
		{in: "click", want: TriggerClick, ok: true},
		{in: "Hover", want: TriggerHover, ok: true},
		{in: "mouseover", want: TriggerHover, ok: true},
		{in: "contextmenu", want: TriggerContextMenu, ok: true},
		{in: "right-click", want: TriggerContextMenu, ok: true},
		{in: "longpress", want: TriggerClick, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeTrigger(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("NormalizeTrigger(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
