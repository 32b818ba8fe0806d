//go:build !tinygo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostKeys buffers key events from the window thread for the UI loop to
// drain. Read never blocks.
type hostKeys struct {
	ch         chan KeyCode
	detachable bool
}

func newHostKeys(detachable bool) *hostKeys {
	return &hostKeys{ch: make(chan KeyCode, 64), detachable: detachable}
}

func (k *hostKeys) Read() KeyCode {
	select {
	case code := <-k.ch:
		return code
	default:
		return KeyNone
	}
}

// poll translates ebiten key presses into the firmware key vocabulary.
// In detachable mode the arrow/enter keys stand in for the volume and
// power buttons.
func (k *hostKeys) poll() {
	emit := func(code KeyCode) {
		select {
		case k.ch <- code:
		default:
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		if k.detachable {
			emit(ButtonVolUpShortPress)
		} else {
			emit(KeyUp)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		if k.detachable {
			emit(ButtonVolDownShortPress)
		} else {
			emit(KeyDown)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if k.detachable {
			emit(ButtonPowerShortPress)
		} else {
			emit(KeyEnter)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		emit(KeyEsc)
	}
}
