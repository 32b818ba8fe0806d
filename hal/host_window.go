//go:build !tinygo

package hal

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"bootui/internal/buildinfo"
)

// RunWindow starts a desktop window that displays the framebuffer and
// forwards keyboard input, then runs the payload on its own goroutine.
// It returns the payload's result once the payload finishes or the
// window is closed.
//
// Window controls: arrows/enter/esc navigate (volume/power buttons in
// detachable mode), holding P asserts the raw power-button signal, and
// closing the window closes the lid.
func RunWindow(payload func(HAL) error, cfg HostConfig) error {
	h := NewHost(cfg).(*hostHAL)

	done := make(chan error, 1)
	go func() { done <- payload(h) }()

	g := &hostGame{h: h, done: done}
	scale := cfg.WindowScale
	if scale <= 0 {
		scale = 2
	}
	ebiten.SetWindowTitle("bootui (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*scale, h.fb.height*scale)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	return g.err
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	done    <-chan error
	err     error
}

func (g *hostGame) Update() error {
	g.h.keys.poll()
	g.h.power.setPowerHeld(ebiten.IsKeyPressed(ebiten.KeyP))
	if ebiten.IsWindowBeingClosed() {
		g.h.power.closeLid()
	}
	select {
	case g.err = <-g.done:
		return ebiten.Termination
	default:
	}
	if g.h.power.off() {
		return ebiten.Termination
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGB565(g.scratch)

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
