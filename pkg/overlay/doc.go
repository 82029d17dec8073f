// Package overlay positions and manages floating panels (popovers, dropdowns,
// context menus, tooltips) anchored to regions of a terminal UI.
//
// The core of the package is a pure placement calculator: given an anchor
// rectangle and the viewport size it decides which quadrant the anchor sits
// in, places the panel in the opposite vertical half so it never covers its
// own anchor, and clamps the result into the visible bounds. An anchor that
// has scrolled fully out of view yields a hidden position rather than a
// panel floating next to nothing.
//
// # Quick Start
//
//	mgr := overlay.NewManager(overlay.NewStack())
//	defer mgr.Shutdown()
//
//	id := mgr.Open(anchorRect, overlay.Config{
//	    Content:   overlay.NewContent(overlay.Text("Saved."), overlay.Spacer()),
//	    AutoClose: 3 * time.Second,
//	})
//
//	// In Update():
//	if mgr.Update(msg) {
//	    return m, nil // consumed by an open panel
//	}
//
//	// In View(), composite panels over the host frame:
//	return mgr.View(baseView)
//
// Anchors can also be marked zones: wrap the anchor text with
// mgr.Zones().Mark and open with OpenZone, and the panel follows the
// anchor across relayouts. Bind wires trigger semantics to a zone, so a
// click toggles, hover opens on enter and closes on leave, and a right
// press raises a context menu.
//
// Size constraints accept CSS-style strings ("240px", "50%", "30vh", "20rem")
// and resolve them against the viewport, so panel content can be authored
// once and clamped per terminal. Stacking order is issued by a process-wide
// monotonic allocator; a panel opened later always sits above one opened
// earlier, and layers are never reused.
//
// # Subpackages
//
//   - mouse - hit testing and click/drag/scroll routing for anchor regions
//
// All placement math is integer cell arithmetic from pkg/geometry; nothing
// in this package talks to the terminal directly.
package overlay
