package overlay

import "fmt"

// TransitionError reports a state change the lifecycle does not define.
type TransitionError struct {
	From      State
	To        State
	Reason    string
	OverlayID string
}

func (e *TransitionError) Error() string {
	if e.OverlayID != "" {
		return fmt.Sprintf("cannot transition %s from %s to %s: %s", e.OverlayID, e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("cannot transition from %s to %s: %s", e.From, e.To, e.Reason)
}

// GuardError reports a close request vetoed by a guard.
type GuardError struct {
	GuardName string
	Reason    string
	OverlayID string
}

func (e *GuardError) Error() string {
	if e.OverlayID != "" {
		return fmt.Sprintf("guard %s vetoed close of %s: %s", e.GuardName, e.OverlayID, e.Reason)
	}
	return fmt.Sprintf("guard %s vetoed close: %s", e.GuardName, e.Reason)
}
