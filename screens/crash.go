package screens

import (
	"fmt"
	"image/color"
	"strings"

	"bootui/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

// RenderCrash paints a last-resort panic report straight onto the
// display. It is called with the UI loop already dead, so it avoids the
// renderer and writes the framebuffer directly.
func RenderCrash(disp hal.Display, log hal.Logger, v any, stack []byte) {
	if log != nil {
		log.WriteLineString(fmt.Sprintf("bootui panic: %v", v))
		for _, line := range strings.Split(string(stack), "\n") {
			if line != "" {
				log.WriteLineString(line)
			}
		}
	}

	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}

	fb.ClearRGB(255, 255, 255)

	d := &fbDisplay{fb: fb}
	fg := color.RGBA{A: 255}
	font := &freemono.Regular9pt7b
	lineH := int16(16)

	lines := []string{
		"bootui panic:",
		fmt.Sprintf("%v", v),
	}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line != "" {
				lines = append(lines, line)
			}
		}
	}

	w, h := d.Size()
	cols := int(w / 11)
	if cols < 1 {
		cols = 1
	}
	y := lineH
	for _, line := range lines {
		for len(line) > 0 && y < h {
			chunk := line
			if len(chunk) > cols {
				chunk = chunk[:cols]
			}
			tinyfont.WriteLine(d, font, 0, y, chunk, fg)
			y += lineH
			line = strings.TrimLeft(line[len(chunk):], " ")
		}
		if y >= h {
			break
		}
	}

	_ = fb.Present()
}
