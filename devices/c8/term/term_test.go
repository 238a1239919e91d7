package term

import (
	"testing"
	"time"

	"github.com/nsf/termbox-go"
)

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time { return c.t }

func newTestDevice() (*Device, *testClock) {
	clock := &testClock{t: time.Unix(1000, 0)}
	d := New(DefaultHold)
	d.now = clock.now
	return d, clock
}

func key(ch rune) termbox.Event {
	return termbox.Event{Type: termbox.EventKey, Ch: ch}
}

func TestKeyHold(t *testing.T) {
	d, clock := newTestDevice()

	if _, ok := d.PressedKey(); ok {
		t.Fatalf("expected no key to be held")
	}

	d.Event(key('W'))
	if !d.IsDown(0x5) {
		t.Fatalf("expected key 5 to be held")
	}

	clock.t = clock.t.Add(DefaultHold / 2)
	d.Event(key('v'))

	if k, ok := d.PressedKey(); !ok || k != 0x5 {
		t.Fatalf("expected lowest held key 5; have %x, %v", k, ok)
	}

	clock.t = clock.t.Add(DefaultHold / 2)
	if d.IsDown(0x5) {
		t.Fatalf("expected key 5 to be released")
	}

	if k, ok := d.PressedKey(); !ok || k != 0xf {
		t.Fatalf("expected key F to be held; have %x, %v", k, ok)
	}
}

func TestKeyX(t *testing.T) {
	d, _ := newTestDevice()

	// Key 0 lives on X; a zero time stamp must not count as held.
	if d.IsDown(0) {
		t.Fatalf("expected key 0 to be up")
	}

	d.Event(key('x'))
	if k, ok := d.PressedKey(); !ok || k != 0 {
		t.Fatalf("expected key 0 to be held; have %x, %v", k, ok)
	}
}

func TestQuit(t *testing.T) {
	d, _ := newTestDevice()

	d.Event(termbox.Event{Type: termbox.EventResize})
	d.Event(key('p'))
	if d.Quit() {
		t.Fatalf("unexpected quit")
	}

	d.Event(termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEsc})
	if !d.Quit() {
		t.Fatalf("expected escape to quit")
	}
}

func TestCell(t *testing.T) {
	ch, fg, bg := cell(1, 0)
	if ch != '▀' || fg != termbox.ColorWhite || bg != termbox.ColorBlack {
		t.Fatalf("unexpected cell: %q %v %v", ch, fg, bg)
	}
}
