package overlay

import "sync/atomic"

// Stacking layers. Host content paints below LayerOverlayBase; every
// allocated panel layer sits above it.
const (
	LayerContent     = 0
	LayerChrome      = 100
	LayerOverlayBase = 1000
)

// Stack issues stacking layers to panels as they open. Layers strictly
// increase for the lifetime of the process and are never reused, so a panel
// shown later always paints above one shown earlier, even across hide and
// reshow cycles of the same panel. Safe for concurrent use.
type Stack struct {
	counter atomic.Int64
}

// NewStack returns a Stack seeded at LayerOverlayBase.
func NewStack() *Stack {
	s := &Stack{}
	s.counter.Store(LayerOverlayBase)
	return s
}

// Allocate returns the next layer.
func (s *Stack) Allocate() int {
	return int(s.counter.Add(1))
}

// Current returns the most recently allocated layer, or LayerOverlayBase if none
// has been allocated yet.
func (s *Stack) Current() int {
	return int(s.counter.Load())
}
