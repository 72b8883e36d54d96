// Package display implements the terminal renderer: it consumes the
// chip8.Display pixel grid and draws it to the controlling terminal
// via termbox-go, plus a fixed keymap help block below the grid.
//
// Grounded on the teacher repo's graphics.go Display interface (never
// given a concrete terminal implementation there) and on
// original_source/main.cpp's render routine, which clears the screen,
// draws one Unicode square per pixel and appends the keymap help text.
package display

import (
	"fmt"

	"github.com/nsf/termbox-go"

	"github.com/cosmacvip/chip8/internal/chip8"
)

const (
	onCell  = '⬜' // white large square
	offCell = '⬛' // black large square
)

var help = []string{
	"",
	"1 2 3 4      keypad",
	"Q W E R",
	"A S D F",
	"Y X C V",
	"",
	"Press ESC to exit.",
}

// Terminal renders the CHIP-8 display buffer to the controlling
// terminal using termbox-go. It implements chip8.Renderer.
type Terminal struct {
	fg, bg termbox.Attribute
}

// NewTerminal constructs a Terminal. Init must be called before the
// first Render.
func NewTerminal(fg, bg termbox.Attribute) *Terminal {
	return &Terminal{fg: fg, bg: bg}
}

// Init puts the terminal into termbox's managed mode.
func (t *Terminal) Init() error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("display: termbox init: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()
	return nil
}

// Close restores the terminal. Safe to call even if Init failed.
func (t *Terminal) Close() {
	termbox.Close()
}

// Render draws the full 64x32 grid starting at the terminal origin,
// one cell per pixel, followed by the keymap help block. Termbox
// double-buffers internally, so a full redraw every frame is cheap and
// flicker-free.
func (t *Terminal) Render(grid *chip8.Display) error {
	termbox.Clear(t.fg, t.bg)

	for y := 0; y < chip8.DisplayHeight; y++ {
		for x := 0; x < chip8.DisplayWidth; x++ {
			ch := offCell
			if grid.At(x, y) {
				ch = onCell
			}
			termbox.SetCell(x, y, ch, t.fg, t.bg)
		}
	}

	for i, line := range help {
		for x, r := range line {
			termbox.SetCell(x, chip8.DisplayHeight+1+i, r, t.fg, t.bg)
		}
	}

	return termbox.Flush()
}
