// Package term implements a display and keypad on a text terminal.
//
// Terminals report key presses but not releases, so a key counts as held
// for a short period after its last press or auto-repeat event.
package term

import (
	"time"
	"unicode"

	"github.com/nsf/termbox-go"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/c8/cpu"
)

// DefaultHold is how long a key stays down after its last event.
const DefaultHold = 150 * time.Millisecond

// Layout maps terminal characters onto the keypad.
var Layout = map[rune]int{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xc,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xd,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xe,
	'z': 0xa, 'x': 0x0, 'c': 0xb, 'v': 0xf,
}

// Device is a termbox backed display and keypad.
type Device struct {
	events  chan termbox.Event
	now     func() time.Time
	seen    [16]time.Time // Time of the last event for each key.
	hold    time.Duration
	quit    bool
	running bool
}

var _ devices.Device = &Device{}
var _ devices.Keypad = &Device{}

// New creates a new device. Keys are held for the given duration.
func New(hold time.Duration) *Device {
	return &Device{
		now:  time.Now,
		hold: hold,
	}
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Manufacturer, devices.SerialTerminal)
}

// Startup takes over the terminal and starts reading input.
func (d *Device) Startup() error {
	if err := termbox.Init(); err != nil {
		return err
	}

	termbox.SetInputMode(termbox.InputEsc)
	termbox.SetOutputMode(termbox.OutputNormal)
	termbox.HideCursor()

	d.quit = false
	d.running = true
	d.events = make(chan termbox.Event, 32)

	go func(events chan<- termbox.Event) {
		for {
			ev := termbox.PollEvent()
			if ev.Type == termbox.EventInterrupt {
				return
			}
			events <- ev
		}
	}(d.events)

	return nil
}

// Shutdown restores the terminal.
func (d *Device) Shutdown() error {
	if !d.running {
		return nil
	}

	d.running = false
	termbox.Interrupt()
	termbox.Close()
	return nil
}

// Poll processes all pending terminal events.
func (d *Device) Poll() {
	for {
		select {
		case ev := <-d.events:
			d.Event(ev)
		default:
			return
		}
	}
}

// Event applies a single terminal event.
func (d *Device) Event(ev termbox.Event) {
	if ev.Type != termbox.EventKey {
		return
	}

	if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC {
		d.quit = true
		return
	}

	if n, ok := Layout[unicode.ToLower(ev.Ch)]; ok {
		d.seen[n] = d.now()
	}
}

// Quit returns true once the user asked to leave.
func (d *Device) Quit() bool {
	return d.quit
}

// IsDown returns true if the given key was pressed recently.
func (d *Device) IsDown(key int) bool {
	if key < 0 || key >= len(d.seen) || d.seen[key].IsZero() {
		return false
	}
	return d.now().Sub(d.seen[key]) < d.hold
}

// PressedKey returns the lowest key which is held.
func (d *Device) PressedKey() (int, bool) {
	for key := range d.seen {
		if d.IsDown(key) {
			return key, true
		}
	}
	return 0, false
}

// Draw renders video memory. Two display rows share one text row
// by means of the upper half block character.
func (d *Device) Draw(pixels []byte) {
	for y := 0; y < cpu.DisplayHeight; y += 2 {
		top := pixels[y*cpu.DisplayWidth:]
		bottom := pixels[(y+1)*cpu.DisplayWidth:]

		for x := 0; x < cpu.DisplayWidth; x++ {
			ch, fg, bg := cell(top[x], bottom[x])
			termbox.SetCell(x, y/2, ch, fg, bg)
		}
	}

	termbox.Flush()
}

// cell returns the character and colors for a pair of vertically stacked pixels.
func cell(top, bottom byte) (rune, termbox.Attribute, termbox.Attribute) {
	return '▀', color(top), color(bottom)
}

func color(p byte) termbox.Attribute {
	if p != 0 {
		return termbox.ColorWhite
	}
	return termbox.ColorBlack
}
