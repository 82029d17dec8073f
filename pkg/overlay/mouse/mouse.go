// Package mouse routes terminal mouse events to named screen regions.
//
// Regions are registered each frame after rendering (render-then-measure),
// hit-tested topmost-last, and cleared before the next frame. The Handler
// adds click/double-click detection, wheel normalization, and drag tracking
// on top of the raw hit map.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/genie/pkg/geometry"
)

// doubleClickWindow is the maximum delay between two clicks on the same
// region for the second to count as a double-click.
const doubleClickWindow = 400 * time.Millisecond

// Region is a named rectangular hit target with optional payload.
type Region struct {
	ID   string
	Rect geometry.Rect
	Data any
}

// HitMap holds the hit regions for the current frame. Later additions win
// when regions overlap, so callers register back-to-front.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// AddRect registers a region. Call order defines stacking: the last region
// added at a point is the one Test returns.
func (hm *HitMap) AddRect(id string, r geometry.Rect, data any) {
	hm.regions = append(hm.regions, Region{ID: id, Rect: r, Data: data})
}

// Test returns the topmost region containing the point, or nil.
func (hm *HitMap) Test(x, y int) *Region {
	for i := len(hm.regions) - 1; i >= 0; i-- {
		if hm.regions[i].Rect.Contains(x, y) {
			return &hm.regions[i]
		}
	}
	return nil
}

// Find returns the region registered under id, or nil.
func (hm *HitMap) Find(id string) *Region {
	for i := len(hm.regions) - 1; i >= 0; i-- {
		if hm.regions[i].ID == id {
			return &hm.regions[i]
		}
	}
	return nil
}

// Clear removes all regions. Call at the start of every render pass.
func (hm *HitMap) Clear() {
	hm.regions = hm.regions[:0]
}

// Regions returns the registered regions in registration order.
func (hm *HitMap) Regions() []Region {
	return hm.regions
}

// ActionType classifies a routed mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionContextMenu
	ActionHover
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
	ActionDrag
	ActionDragEnd
)

// Action is the result of routing a single mouse event.
type Action struct {
	Type          ActionType
	Region        *Region
	X             int
	Y             int
	IsDoubleClick bool
	DragDX        int
	DragDY        int
}

// ClickResult reports the region under a click and whether it completed a
// double-click.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler turns raw mouse events into actions against a hit map.
type Handler struct {
	HitMap *HitMap

	lastClickAt     time.Time
	lastClickRegion string

	dragging       bool
	dragStartX     int
	dragStartY     int
	dragRegion     string
	dragStartValue int

	// now is swappable for tests.
	now func() time.Time
}

// NewHandler returns a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{
		HitMap: NewHitMap(),
		now:    time.Now,
	}
}

// Clear resets the hit map for the next frame. Drag state survives so a
// drag can span renders.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}

// HandleClick hit-tests a press and tracks double-clicks. A second click on
// the same region within the window counts as a double-click; the tracking
// then resets so a third click starts over.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)

	result := ClickResult{Region: region}
	now := h.now()

	if region != nil && region.ID == h.lastClickRegion && now.Sub(h.lastClickAt) <= doubleClickWindow {
		result.IsDoubleClick = true
		h.lastClickRegion = ""
		h.lastClickAt = time.Time{}
		return result
	}

	if region != nil {
		h.lastClickRegion = region.ID
	} else {
		h.lastClickRegion = ""
	}
	h.lastClickAt = now
	return result
}

// StartDrag begins a drag anchored at x, y. The region name and start value
// are carried so the consumer can apply deltas to the dragged thing.
func (h *Handler) StartDrag(x, y int, region string, startValue int) {
	h.dragging = true
	h.dragStartX = x
	h.dragStartY = y
	h.dragRegion = region
	h.dragStartValue = startValue
}

// EndDrag clears drag state.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
	h.dragStartValue = 0
}

// IsDragging reports whether a drag is in progress.
func (h *Handler) IsDragging() bool {
	return h.dragging
}

// DragRegion returns the name passed to StartDrag.
func (h *Handler) DragRegion() string {
	return h.dragRegion
}

// DragStartValue returns the value passed to StartDrag.
func (h *Handler) DragStartValue() int {
	return h.dragStartValue
}

// DragDelta returns the displacement from the drag origin to x, y.
func (h *Handler) DragDelta(x, y int) (dx, dy int) {
	return x - h.dragStartX, y - h.dragStartY
}

// HandleMouse routes a bubbletea mouse event into an Action.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if msg.Shift {
				return Action{Type: ActionScrollLeft, X: msg.X, Y: msg.Y}
			}
			return Action{Type: ActionScrollUp, X: msg.X, Y: msg.Y}
		case tea.MouseButtonWheelDown:
			if msg.Shift {
				return Action{Type: ActionScrollRight, X: msg.X, Y: msg.Y}
			}
			return Action{Type: ActionScrollDown, X: msg.X, Y: msg.Y}
		case tea.MouseButtonWheelLeft:
			return Action{Type: ActionScrollLeft, X: msg.X, Y: msg.Y}
		case tea.MouseButtonWheelRight:
			return Action{Type: ActionScrollRight, X: msg.X, Y: msg.Y}
		case tea.MouseButtonRight:
			return Action{
				Type:   ActionContextMenu,
				Region: h.HitMap.Test(msg.X, msg.Y),
				X:      msg.X,
				Y:      msg.Y,
			}
		case tea.MouseButtonLeft:
			result := h.HandleClick(msg.X, msg.Y)
			return Action{
				Type:          ActionClick,
				Region:        result.Region,
				X:             msg.X,
				Y:             msg.Y,
				IsDoubleClick: result.IsDoubleClick,
			}
		}
		return Action{Type: ActionNone, X: msg.X, Y: msg.Y}

	case tea.MouseActionMotion:
		if h.dragging {
			dx, dy := h.DragDelta(msg.X, msg.Y)
			return Action{Type: ActionDrag, X: msg.X, Y: msg.Y, DragDX: dx, DragDY: dy}
		}
		return Action{
			Type:   ActionHover,
			Region: h.HitMap.Test(msg.X, msg.Y),
			X:      msg.X,
			Y:      msg.Y,
		}

	case tea.MouseActionRelease:
		if h.dragging {
			h.EndDrag()
			return Action{Type: ActionDragEnd, X: msg.X, Y: msg.Y}
		}
		return Action{Type: ActionNone, X: msg.X, Y: msg.Y}
	}

	return Action{Type: ActionNone, X: msg.X, Y: msg.Y}
}
