package overlay

// State is an overlay's lifecycle state.
type State string

const (
	StateClosed State = "closed"
	StateOpen   State = "open"
)

// CloseReason names the dismissal path a close request arrived through.
type CloseReason string

const (
	CloseExplicit     CloseReason = "explicit"
	CloseEscape       CloseReason = "escape"
	CloseOutsideClick CloseReason = "outside_click"
	CloseAutoTimeout  CloseReason = "auto_timeout"
	CloseNavigate     CloseReason = "navigate"
	CloseUnbind       CloseReason = "unbind"
)

// GuardResult is the outcome of one guard check.
type GuardResult struct {
	Passed  bool
	Message string
}

// Guard vetoes a close request when its conditions do not hold.
type Guard interface {
	Name() string
	Check(ctx *CloseContext) GuardResult
}

// CloseContext carries the facts guards check a close request against.
// The manager fills it in before validating a transition.
type CloseContext struct {
	Reason CloseReason
	Config Config
	Layer  int

	// TopEscapableLayer is the layer of the topmost open overlay that
	// closes on escape, or zero when none does.
	TopEscapableLayer int

	// ClickedRegion is the hit region id under the pointer, empty on a
	// miss. ClickInside is true when the pointer landed inside the
	// overlay's own panel or on its anchor. TargetAttached is true when
	// the clicked region is still registered at check time.
	ClickedRegion  string
	ClickInside    bool
	TargetAttached bool
}

// EscapeEnabledGuard vetoes escape closes for overlays that opted out.
type EscapeEnabledGuard struct{}

func (g *EscapeEnabledGuard) Name() string {
	return "EscapeEnabledGuard"
}

func (g *EscapeEnabledGuard) Check(ctx *CloseContext) GuardResult {
	if ctx.Config.CloseOnEscape {
		return GuardResult{Passed: true}
	}
	return GuardResult{
		Passed:  false,
		Message: "overlay does not close on escape",
	}
}

// TopmostGuard limits escape to the topmost escape-closable overlay, so a
// nested panel closes before the panel that spawned it.
type TopmostGuard struct{}

func (g *TopmostGuard) Name() string {
	return "TopmostGuard"
}

func (g *TopmostGuard) Check(ctx *CloseContext) GuardResult {
	if ctx.Layer == ctx.TopEscapableLayer {
		return GuardResult{Passed: true}
	}
	return GuardResult{
		Passed:  false,
		Message: "a higher overlay handles escape first",
	}
}

// OutsideClickEnabledGuard vetoes outside-click closes for overlays that
// opted out.
type OutsideClickEnabledGuard struct{}

func (g *OutsideClickEnabledGuard) Name() string {
	return "OutsideClickEnabledGuard"
}

func (g *OutsideClickEnabledGuard) Check(ctx *CloseContext) GuardResult {
	if ctx.Config.CloseOnClickOutside {
		return GuardResult{Passed: true}
	}
	return GuardResult{
		Passed:  false,
		Message: "overlay does not close on outside click",
	}
}

// OutsideTargetGuard vetoes closes for clicks that landed inside the
// overlay, and for clicks on targets already torn down by the time the
// close request is checked. A row that deletes itself on click must not
// also dismiss the overlay above it.
type OutsideTargetGuard struct{}

func (g *OutsideTargetGuard) Name() string {
	return "OutsideTargetGuard"
}

func (g *OutsideTargetGuard) Check(ctx *CloseContext) GuardResult {
	if ctx.ClickInside {
		return GuardResult{
			Passed:  false,
			Message: "click landed inside the overlay",
		}
	}
	if ctx.ClickedRegion != "" && !ctx.TargetAttached {
		return GuardResult{
			Passed:  false,
			Message: "click target no longer attached",
		}
	}
	return GuardResult{Passed: true}
}

// Transition is one edge of the overlay state machine.
type Transition struct {
	From   State
	To     State
	Reason CloseReason
	Guards []Guard
}

// AllTransitions returns the complete overlay state machine. Every path
// out of Open carries the reason it closes under; only the interactive
// dismissal paths are guarded.
func AllTransitions() []*Transition {
	return []*Transition{
		{From: StateClosed, To: StateOpen},

		{From: StateOpen, To: StateClosed, Reason: CloseExplicit},
		{From: StateOpen, To: StateClosed, Reason: CloseEscape, Guards: []Guard{&EscapeEnabledGuard{}, &TopmostGuard{}}},
		{From: StateOpen, To: StateClosed, Reason: CloseOutsideClick, Guards: []Guard{&OutsideClickEnabledGuard{}, &OutsideTargetGuard{}}},
		{From: StateOpen, To: StateClosed, Reason: CloseAutoTimeout},
		{From: StateOpen, To: StateClosed, Reason: CloseNavigate},
		{From: StateOpen, To: StateClosed, Reason: CloseUnbind},
	}
}

func findTransition(from, to State, reason CloseReason) *Transition {
	for _, t := range AllTransitions() {
		if t.From == from && t.To == to && t.Reason == reason {
			return t
		}
	}
	return nil
}

// ValidateClose checks whether an open overlay may close for the given
// reason. It returns nil when the close may proceed, a TransitionError for
// an undefined edge, or a GuardError for the first vetoing guard.
func ValidateClose(id string, state State, ctx *CloseContext) error {
	t := findTransition(state, StateClosed, ctx.Reason)
	if t == nil {
		return &TransitionError{
			From:      state,
			To:        StateClosed,
			Reason:    "no such transition",
			OverlayID: id,
		}
	}
	for _, g := range t.Guards {
		if res := g.Check(ctx); !res.Passed {
			return &GuardError{
				GuardName: g.Name(),
				Reason:    res.Message,
				OverlayID: id,
			}
		}
	}
	return nil
}
