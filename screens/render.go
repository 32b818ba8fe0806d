// Package screens holds the static screen set of the recovery payload
// and renders it onto the HAL framebuffer.
package screens

import (
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"

	"bootui/hal"
	"bootui/ui"
)

var (
	colorBG        = color.RGBA{R: 0x1A, G: 0x1A, B: 0x1E, A: 0xFF}
	colorFG        = color.RGBA{R: 0xE8, G: 0xE8, B: 0xE8, A: 0xFF}
	colorDim       = color.RGBA{R: 0x9A, G: 0x9A, B: 0xA0, A: 0xFF}
	colorHighlight = color.RGBA{R: 0xE8, G: 0xE8, B: 0xE8, A: 0xFF}
	colorInverted  = color.RGBA{R: 0x1A, G: 0x1A, B: 0x1E, A: 0xFF}
	colorAlert     = color.RGBA{R: 0xE0, G: 0x60, B: 0x50, A: 0xFF}
)

const (
	marginX     = 10
	titleY      = 24
	descStartY  = 48
	descLineH   = 16
	menuGapY    = 10
	menuRowH    = 20
	footerLineH = 12
)

// Renderer draws screen descriptors onto the framebuffer. Status, when
// set, supplies a live status line for screens that report progress.
type Renderer struct {
	fb     hal.Framebuffer
	Status func(ui.ScreenID) string
}

func NewRenderer(disp hal.Display) *Renderer {
	return &Renderer{fb: disp.Framebuffer()}
}

// Draw paints the whole screen; it is idempotent and repaints from
// scratch every call.
func (r *Renderer) Draw(s *ui.Screen, selected int) error {
	if r.fb == nil {
		return hal.ErrNotImplemented
	}
	r.fb.ClearRGB(colorBG.R, colorBG.G, colorBG.B)
	d := fbDisplay{fb: r.fb}

	y := int16(titleY)
	if s.Title != "" {
		tinyfont.WriteLine(&d, &freemono.Bold9pt7b, marginX, y, iconPrefix(s.Icon)+s.Title, titleColor(s.Icon))
	}

	y = descStartY
	for _, line := range s.Desc {
		tinyfont.WriteLine(&d, &freemono.Regular9pt7b, marginX, y, line, colorDim)
		y += descLineH
	}
	if r.Status != nil {
		if status := r.Status(s.ID); status != "" {
			tinyfont.WriteLine(&d, &freemono.Regular9pt7b, marginX, y, status, colorFG)
			y += descLineH
		}
	}

	y += menuGapY
	w, h := d.Size()
	for i, item := range s.Items {
		fg := colorFG
		if i == selected {
			d.FillRectangle(0, y-13, w, menuRowH-2, colorHighlight)
			fg = colorInverted
		}
		tinyfont.WriteLine(&d, &freemono.Regular9pt7b, marginX, y, item.Text, fg)
		y += menuRowH
	}

	if len(s.Items) > 0 {
		tinyfont.WriteLine(&d, &tinyfont.Picopixel, marginX, h-footerLineH,
			"up/down: select  enter: confirm  esc: back", colorDim)
	}

	return r.fb.Present()
}

func iconPrefix(icon ui.IconKind) string {
	switch icon {
	case ui.IconInfo:
		return "(i) "
	case ui.IconError:
		return "(!) "
	case ui.IconStep:
		return "> "
	}
	return ""
}

func titleColor(icon ui.IconKind) color.RGBA {
	if icon == ui.IconError {
		return colorAlert
	}
	return colorFG
}

// fbDisplay adapts the HAL framebuffer to the drivers.Displayer surface
// tinyfont draws on.
type fbDisplay struct {
	fb hal.Framebuffer
}

func (d *fbDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}

	w := d.fb.Width()
	h := d.fb.Height()
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= w || iy < 0 || iy >= h {
		return
	}

	pixel := uint16((uint16(c.R>>3)&0x1F)<<11 | (uint16(c.G>>2)&0x3F)<<5 | (uint16(c.B>>3) & 0x1F))
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *fbDisplay) Display() error { return nil }

func (d *fbDisplay) FillRectangle(x, y, w, h int16, c color.RGBA) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			d.SetPixel(xx, yy, c)
		}
	}
}
