package ui

// Result is the outcome of one dispatched tick.
type Result uint8

const (
	// Continue keeps the loop running with no forced redraw.
	Continue Result = iota
	// Redraw keeps the loop running and repaints on the next tick.
	Redraw
	// ExitUI ends the loop; the caller resumes the boot sequence.
	ExitUI
	// Shutdown ends the loop; the caller powers the machine off.
	Shutdown
)

func (r Result) String() string {
	switch r {
	case Continue:
		return "continue"
	case Redraw:
		return "redraw"
	case ExitUI:
		return "exit-ui"
	case Shutdown:
		return "shutdown"
	}
	return "unknown"
}

// Action is a screen, item, or global callback. A non-nil error is
// logged by the loop and treated as Continue; it never aborts the UI.
type Action func(*Context) (Result, error)

// dispatch runs the cascade for one tick: the focused item's action,
// then the screen's, then the caller's global action. The first level
// that does not report (Continue, nil) ends the cascade; later levels
// must not run, or navigation changes would apply twice.
func (l *Loop) dispatch(s *Screen, global Action) (Result, error) {
	if s == nil {
		if global != nil {
			return global(&l.ctx)
		}
		return Continue, nil
	}
	if len(s.Items) > 0 && l.ctx.Item < len(s.Items) {
		if a := s.Items[l.ctx.Item].Action; a != nil {
			r, err := a(&l.ctx)
			if r != Continue || err != nil {
				return r, err
			}
		}
	}
	if s.Action != nil {
		r, err := s.Action(&l.ctx)
		if r != Continue || err != nil {
			return r, err
		}
	}
	if global != nil {
		return global(&l.ctx)
	}
	return Continue, nil
}
