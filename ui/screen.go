// Package ui implements the firmware menu loop: a single-threaded
// poller that renders screens, navigates menus, dispatches layered
// action callbacks, and watches the shutdown signals on a fixed 20 ms
// cadence.
package ui

// ScreenID identifies a screen descriptor. ScreenNone is never a valid
// screen.
type ScreenID uint16

const ScreenNone ScreenID = 0

// IconKind selects the header icon drawn for a screen.
type IconKind uint8

const (
	IconNone IconKind = iota
	IconInfo
	IconError
	IconStep
)

// Item is one menu entry. Target, when set, is the screen the confirm
// key transitions to. Action, when set, runs at the item level of the
// dispatch cascade while the item is focused.
type Item struct {
	Text   string
	Target ScreenID
	Action Action
}

// Screen is an immutable screen descriptor. Title, Desc and the item
// texts are resource references owned elsewhere; the loop never
// interprets them.
type Screen struct {
	ID     ScreenID
	Icon   IconKind
	Title  string
	Desc   []string
	Items  []Item
	Action Action
}

// Registry maps screen ids to their descriptors. It is read-only after
// construction.
type Registry struct {
	screens []*Screen
}

// NewRegistry builds a registry from a static descriptor set.
func NewRegistry(screens []*Screen) *Registry {
	return &Registry{screens: screens}
}

// Lookup returns the descriptor for id, or nil if none is registered.
// The table is small; a linear scan is fine.
func (r *Registry) Lookup(id ScreenID) *Screen {
	for _, s := range r.screens {
		if s.ID == id {
			return s
		}
	}
	return nil
}
