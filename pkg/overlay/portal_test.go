package overlay

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/genie/pkg/geometry"
)

func dotsFrame(w, h int) string {
	row := strings.Repeat(".", w)
	rows := make([]string, h)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

// waitFor polls cond until it holds, failing the test after two seconds.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal(what)
}

// findPanel locates the first box frame in a composited view.
func findPanel(t *testing.T, frame string) (top, left, width, height int) {
	t.Helper()
	top, left = -1, -1
	bottom := -1
	for i, row := range strings.Split(frame, "\n") {
		runes := []rune(row)
		for j, r := range runes {
			if r == '┌' && top == -1 {
				top, left = i, j
				for k := j + 1; k < len(runes); k++ {
					if runes[k] == '┐' {
						width = k - j + 1
						break
					}
				}
			}
			if r == '└' && bottom == -1 {
				bottom = i
			}
		}
	}
	if top == -1 || bottom == -1 || width == 0 {
		t.Fatal("no panel frame found in view")
	}
	return top, left, width, bottom - top + 1
}

func TestViewSplicesPanel(t *testing.T) {
	m := newTestManager(t)
	base := dotsFrame(100, 40)

	m.Open(geometry.NewRect(5, 2, 10, 1), Config{Width: "30px", Height: "5px"})

	got := ansi.Strip(m.View(base))
	rows := strings.Split(got, "\n")
	if len(rows) != 40 {
		t.Fatalf("view has %d rows, want 40", len(rows))
	}

	// The anchor sits in the top-left quadrant, so the panel drops below
	// it: top offset clamps to the viewport padding, left aligns to the
	// anchor's clamped left edge.
	topRow := []rune(rows[12])
	if len(topRow) != 100 {
		t.Fatalf("spliced row width = %d, want 100", len(topRow))
	}
	wantTop := "┌" + strings.Repeat("─", 28) + "┐"
	if got := string(topRow[8:38]); got != wantTop {
		t.Errorf("top border = %q, want %q", got, wantTop)
	}
	if got := string(topRow[:8]); got != strings.Repeat(".", 8) {
		t.Errorf("cells left of the panel changed: %q", got)
	}
	if got := string(topRow[38:]); got != strings.Repeat(".", 62) {
		t.Errorf("cells right of the panel changed: %q", got)
	}

	bodyRow := []rune(rows[13])
	wantBody := "│" + strings.Repeat(" ", 28) + "│"
	if got := string(bodyRow[8:38]); got != wantBody {
		t.Errorf("body row = %q, want %q", got, wantBody)
	}

	bottomRow := []rune(rows[16])
	wantBottom := "└" + strings.Repeat("─", 28) + "┘"
	if got := string(bottomRow[8:38]); got != wantBottom {
		t.Errorf("bottom border = %q, want %q", got, wantBottom)
	}

	for _, r := range []int{11, 17} {
		if rows[r] != strings.Repeat(".", 100) {
			t.Errorf("row %d should be untouched, got %q", r, rows[r])
		}
	}
}

func TestViewStableAcrossPasses(t *testing.T) {
	m := newTestManager(t)
	base := dotsFrame(100, 40)

	m.Open(geometry.NewRect(5, 2, 10, 1), Config{
		Content: NewContent(Title("Saved"), Text("Your changes are in.")),
	})

	first := m.View(base)
	second := m.View(base)
	if first != second {
		t.Error("identical inputs should composite identically")
	}
}

func TestViewHiddenPanelLeavesFrameAlone(t *testing.T) {
	m := newTestManager(t)
	base := dotsFrame(100, 40)

	id := m.Open(geometry.NewRect(-30, -5, 10, 1), Config{})
	info, _ := m.Info(id)
	if info.Quadrant != QuadrantHidden {
		t.Fatalf("anchor off screen should hide the panel, got %q", info.Quadrant)
	}

	if got := m.View(base); got != base {
		t.Error("hidden panel should leave the frame untouched")
	}
}

func TestViewPanelSizeConstraints(t *testing.T) {
	anchor := geometry.NewRect(5, 2, 10, 1)

	items := make([]ListItem, 10)
	for i := range items {
		items[i] = ListItem{ID: string(rune('a' + i)), Label: "item"}
	}

	t.Run("max height caps the panel", func(t *testing.T) {
		m := newTestManager(t)
		var selected int
		m.Open(anchor, Config{
			Content:   NewContent(List("l", items, &selected, WithMaxVisible(10))),
			MaxHeight: "6px",
		})
		_, _, _, height := findPanel(t, ansi.Strip(m.View(dotsFrame(100, 40))))
		if height != 6 {
			t.Errorf("panel height = %d, want 6", height)
		}
	})

	t.Run("min height pads the panel", func(t *testing.T) {
		m := newTestManager(t)
		m.Open(anchor, Config{
			Content:   NewContent(Text("ok")),
			MinHeight: "8px",
		})
		_, _, _, height := findPanel(t, ansi.Strip(m.View(dotsFrame(100, 40))))
		if height != 8 {
			t.Errorf("panel height = %d, want 8", height)
		}
	})

	t.Run("malformed max falls back to available space", func(t *testing.T) {
		m := newTestManager(t)
		var selected int
		m.Open(anchor, Config{
			Content:   NewContent(List("l", items, &selected, WithMaxVisible(10))),
			MaxHeight: "huge",
		})
		_, _, _, height := findPanel(t, ansi.Strip(m.View(dotsFrame(100, 40))))
		if height != 12 {
			t.Errorf("panel height = %d, want natural 12", height)
		}
	})

	t.Run("narrow viewport caps the width", func(t *testing.T) {
		m := newTestManager(t)
		m.SetViewport(30, 40)
		m.Open(geometry.NewRect(2, 2, 5, 1), Config{Content: NewContent(Text("hi"))})
		_, left, width, _ := findPanel(t, ansi.Strip(m.View(dotsFrame(30, 40))))
		if left != 8 {
			t.Errorf("panel left = %d, want 8", left)
		}
		if width != 14 {
			t.Errorf("panel width = %d, want 14", width)
		}
	})
}

func TestViewPanelHitsRoutePresses(t *testing.T) {
	m := newTestManager(t)

	var actions []string
	id := m.Open(geometry.NewRect(5, 2, 10, 1), Config{
		Content:             NewContent(Buttons(Btn("OK", "ok"), Btn("Cancel", "cancel"))),
		OnAction:            func(a string) { actions = append(actions, a) },
		CloseOnClickOutside: true,
	})

	m.View(dotsFrame(100, 40))

	// Panel at (8, 12), content starts one border and one padding cell in,
	// so OK occupies (10, 13) through (15, 13).
	if !m.Update(leftPress(11, 13)) {
		t.Fatal("press inside the panel should be consumed")
	}
	if len(actions) != 1 || actions[0] != "ok" {
		t.Errorf("actions = %v, want [ok]", actions)
	}
	if !m.IsOpen(id) {
		t.Fatal("press inside the panel must not close it")
	}

	if !m.Update(motion(19, 13)) {
		t.Error("hover over the panel should be consumed")
	}

	if !m.Update(leftPress(70, 30)) {
		t.Fatal("outside press should be consumed when it closes a panel")
	}
	if m.IsOpen(id) {
		t.Error("outside press should close the panel")
	}
}

func TestViewBackdrop(t *testing.T) {
	hot := "\x1b[31mHOT\x1b[0m" + strings.Repeat(".", 97)
	base := hot + "\n" + dotsFrame(100, 39)

	t.Run("without backdrop the frame keeps its colors", func(t *testing.T) {
		m := newTestManager(t)
		m.Open(geometry.NewRect(5, 2, 10, 1), Config{})
		got := m.View(base)
		if !strings.Contains(got, "\x1b[31m") {
			t.Error("host colors should survive when no panel wants a backdrop")
		}
	})

	t.Run("backdrop flattens the frame behind the stack", func(t *testing.T) {
		m := newTestManager(t)
		m.Open(geometry.NewRect(5, 2, 10, 1), Config{Backdrop: true})
		got := m.View(base)
		if strings.Contains(got, "\x1b[31m") {
			t.Error("backdrop should strip host colors")
		}
		if !strings.Contains(got, "HOT") {
			t.Error("backdrop should keep host text")
		}
	})
}

func TestViewZoneAnchoredPanelFollowsAnchor(t *testing.T) {
	m := newTestManager(t)

	id := m.OpenZone("chip", Config{Width: "20px", Height: "4px"})
	if info, _ := m.Info(id); info.Quadrant != QuadrantHidden {
		t.Fatalf("panel should hide before its anchor is measured, got %q", info.Quadrant)
	}

	m.View(markedFrame(m, 2, 5, "chip", "@user"))
	waitForZone(t, m, "chip")
	m.View(markedFrame(m, 2, 5, "chip", "@user"))

	info, _ := m.Info(id)
	if info.Quadrant != QuadrantTopLeft {
		t.Fatalf("quadrant = %q, want %q", info.Quadrant, QuadrantTopLeft)
	}
	if info.Styles.VEdge != EdgeTop || info.Styles.VOffset != 12 {
		t.Errorf("vertical placement = %s/%d, want top/12", info.Styles.VEdge, info.Styles.VOffset)
	}
	if info.Styles.HEdge != EdgeLeft || info.Styles.HOffset != 8 {
		t.Errorf("horizontal placement = %s/%d, want left/8", info.Styles.HEdge, info.Styles.HOffset)
	}

	// The host relayouts and the anchor lands elsewhere.
	m.View(markedFrame(m, 25, 60, "chip", "@user"))
	waitFor(t, "zone never moved", func() bool {
		return m.Zones().Get("chip").StartY == 25
	})
	m.Reposition()

	info, _ = m.Info(id)
	if info.Quadrant != QuadrantBottomRight {
		t.Errorf("quadrant = %q after the anchor moved, want %q", info.Quadrant, QuadrantBottomRight)
	}
	if info.Styles.VEdge != EdgeBottom || info.Styles.VOffset != 23 {
		t.Errorf("vertical placement = %s/%d, want bottom/23", info.Styles.VEdge, info.Styles.VOffset)
	}

	// The anchor unmounts entirely.
	m.View(dotsFrame(100, 40))
	waitFor(t, "zone never pruned", func() bool {
		return m.Zones().Get("chip").IsZero()
	})
	m.Reposition()

	if info, _ := m.Info(id); info.Quadrant != QuadrantHidden {
		t.Errorf("panel should hide when its anchor unmounts, got %q", info.Quadrant)
	}
}

func TestOverlayAt(t *testing.T) {
	t.Run("splices into the middle of a row", func(t *testing.T) {
		base := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"
		got := overlayAt(base, "XX\nYY", 3, 1, geometry.Size{Width: 10, Height: 3})
		want := "aaaaaaaaaa\nbbbXXbbbbb\ncccYYccccc"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("pads short rows before splicing", func(t *testing.T) {
		got := overlayAt("ab\ncd", "ZZ", 5, 0, geometry.Size{Width: 10, Height: 2})
		want := "ab   ZZ\ncd"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("rows beyond the viewport are dropped", func(t *testing.T) {
		got := overlayAt("ab\ncd", "P\nQ\nR", 0, 1, geometry.Size{Width: 5, Height: 2})
		want := "ab\nPd"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("pads the frame to the viewport height", func(t *testing.T) {
		got := overlayAt("ab", "P", 0, 2, geometry.Size{Width: 5, Height: 3})
		want := "ab\n\nP"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}
