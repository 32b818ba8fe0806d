package ui

import "bootui/hal"

// Context is the mutable navigation state threaded through action
// callbacks. The loop owns it for the duration of one Run; exactly one
// dispatch level sees it per tick.
type Context struct {
	// Screen is the current screen id.
	Screen ScreenID
	// Item is the selected menu index, always in [0, len(Items)-1]
	// (0 on screens without a menu).
	Item int
	// Key is the input event of the current tick, hal.KeyNone if none.
	Key hal.KeyCode
	// Params carries caller data (kernel-load parameters) through to
	// actions untouched.
	Params any

	prev    ScreenID
	hasPrev bool
	drawn   snapshot
}

// snapshot records what was last rendered so unchanged ticks skip the
// redraw.
type snapshot struct {
	screen ScreenID
	item   int
	valid  bool
}

// ChangeScreen transitions to id, remembering the current screen as the
// single back-navigation level. The selected index resets to zero.
func (c *Context) ChangeScreen(id ScreenID) {
	c.prev = c.Screen
	c.hasPrev = true
	c.Screen = id
	c.Item = 0
}

// Back pops to the remembered screen; without one it is a no-op.
func (c *Context) Back() {
	if !c.hasPrev {
		return
	}
	c.Screen = c.prev
	c.hasPrev = false
	c.Item = 0
}

// Invalidate forces a redraw on the next tick even if the navigation
// state is unchanged.
func (c *Context) Invalidate() {
	c.drawn.valid = false
}

func (c *Context) changed() bool {
	return !c.drawn.valid || c.drawn.screen != c.Screen || c.drawn.item != c.Item
}

func (c *Context) markDrawn() {
	c.drawn = snapshot{screen: c.Screen, item: c.Item, valid: true}
}
