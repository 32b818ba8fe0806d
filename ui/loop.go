package ui

import (
	"fmt"

	"bootui/hal"
)

// Renderer draws one screen with the given menu selection. Draw must be
// idempotent; the loop may repeat a call with identical arguments.
type Renderer interface {
	Draw(s *Screen, selected int) error
}

// Config wires the loop to its collaborators.
type Config struct {
	Registry *Registry
	Renderer Renderer
	Keys     hal.Keys
	Power    hal.Power
	Firmware hal.Firmware
	Clock    hal.Clock
	Log      hal.Logger

	// Detachable selects the button-only key semantics: volume keys
	// move the selection, a power short press confirms.
	Detachable bool

	// Params is handed to actions via Context.Params.
	Params any
}

// Loop is the event loop driver. It owns the Context between Run entry
// and exit; actions borrow it one at a time.
type Loop struct {
	cfg     Config
	ctx     Context
	monitor shutdownMonitor
}

func New(cfg Config) *Loop {
	return &Loop{cfg: cfg}
}

// Run drives the UI from initial until a terminal result. Every
// iteration checks the shutdown monitor first, so no action can starve
// an emergency shutdown for more than its own execution time. Action
// errors are logged and the loop carries on; the only abort is an
// unregistered current screen, which is a dangling-transition
// programming error.
func (l *Loop) Run(initial ScreenID, global Action) Result {
	l.ctx = Context{Screen: initial, Params: l.cfg.Params}
	l.monitor = shutdownMonitor{detachable: l.cfg.Detachable}
	sched := scheduler{clock: l.cfg.Clock}

	for {
		start := sched.begin()

		if l.monitor.requested(l.cfg.Power.ShutdownReasons(), l.cfg.Firmware.PolicyFlags(), l.ctx.Key) {
			return Shutdown
		}

		s := l.cfg.Registry.Lookup(l.ctx.Screen)
		if s == nil {
			panic(fmt.Sprintf("ui: no descriptor for screen %d", l.ctx.Screen))
		}

		if l.ctx.changed() {
			if err := l.cfg.Renderer.Draw(s, l.ctx.Item); err != nil {
				l.logf("ui: draw screen %d: %v", s.ID, err)
			}
			l.ctx.markDrawn()
		}

		l.ctx.Key = l.cfg.Keys.Read()
		l.applyKey(s)

		// A key transition moves dispatch to the new screen in the
		// same tick. An unknown target dies at the top of the next
		// iteration; until then only the global action may run.
		if l.ctx.Screen != s.ID {
			s = l.cfg.Registry.Lookup(l.ctx.Screen)
		}

		r, err := l.dispatch(s, global)
		switch {
		case err != nil:
			l.logf("ui: action on screen %d: %v", l.ctx.Screen, err)
		case r == Redraw:
			l.ctx.Invalidate()
		case r == ExitUI || r == Shutdown:
			return r
		}

		sched.finish(start)
	}
}

// applyKey performs the built-in key navigation. In detachable mode the
// volume and power buttons stand in for the arrow and confirm keys;
// the rewritten code is what actions observe in Context.Key. Unhandled
// keys pass through to the dispatch cascade untouched.
func (l *Loop) applyKey(s *Screen) {
	if l.cfg.Detachable {
		switch l.ctx.Key {
		case hal.ButtonVolUpShortPress:
			l.ctx.Key = hal.KeyUp
		case hal.ButtonVolDownShortPress:
			l.ctx.Key = hal.KeyDown
		case hal.ButtonPowerShortPress:
			l.ctx.Key = hal.KeyEnter
		}
	}

	switch l.ctx.Key {
	case hal.KeyUp:
		l.menuUp()
		l.ctx.Key = hal.KeyNone
	case hal.KeyDown:
		l.menuDown(s)
		l.ctx.Key = hal.KeyNone
	case hal.KeyEnter:
		// Enter is consumed only when it causes a transition.
		// On a target-less item it stays visible to the dispatch
		// cascade, where confirm-gated item actions key on it.
		if l.selectItem(s) {
			l.ctx.Key = hal.KeyNone
		}
	case hal.KeyEsc:
		l.ctx.Back()
		l.ctx.Key = hal.KeyNone
	}
}

// menuUp and menuDown clamp at the menu edges: no wraparound, and a
// blocked move leaves the snapshot untouched so nothing is redrawn.
func (l *Loop) menuUp() {
	if l.ctx.Item > 0 {
		l.ctx.Item--
	}
}

func (l *Loop) menuDown(s *Screen) {
	if l.ctx.Item+1 < len(s.Items) {
		l.ctx.Item++
	}
}

func (l *Loop) selectItem(s *Screen) bool {
	if len(s.Items) == 0 || l.ctx.Item >= len(s.Items) {
		return false
	}
	if t := s.Items[l.ctx.Item].Target; t != ScreenNone {
		l.ctx.ChangeScreen(t)
		return true
	}
	return false
}

func (l *Loop) logf(format string, args ...any) {
	if l.cfg.Log == nil {
		return
	}
	l.cfg.Log.WriteLineString(fmt.Sprintf(format, args...))
}
