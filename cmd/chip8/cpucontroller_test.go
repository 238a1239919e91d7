package main

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices/c8/cpu"
)

type noKeys struct{}

func (noKeys) IsDown(int) bool         { return false }
func (noKeys) PressedKey() (int, bool) { return 0, false }

// newTestController creates a controller running the given program and
// counts executed instructions in *cycles.
func newTestController(t *testing.T, clock int, cycles *int, program ...byte) *CPUController {
	trace := func(*cpu.Instruction) { *cycles++ }

	c := NewCPUController(trace, cpu.Quirks{}, clock, noKeys{})
	if err := c.Load(program); err != nil {
		t.Fatalf("Load failure: %v", err)
	}

	c.Start()
	return c
}

func TestControllerPacing(t *testing.T) {
	var cycles int
	c := newTestController(t, 1000, &cycles, 0x12, 0x00) // JP 0x200

	for i := 0; i < 10; i++ {
		if err := c.Advance(time.Millisecond * 10); err != nil {
			t.Fatalf("Advance failure: %v", err)
		}
	}

	if cycles < 99 || cycles > 100 {
		t.Fatalf("expected 100 cycles; have %d", cycles)
	}
}

func TestControllerBacklog(t *testing.T) {
	var cycles int
	c := newTestController(t, 1000, &cycles, 0x12, 0x00)

	c.Advance(time.Second * 5)

	if cycles > 100 {
		t.Fatalf("expected backlog to be capped at 100 cycles; have %d", cycles)
	}
}

func TestControllerTimers(t *testing.T) {
	program := []byte{
		0x60, 0x3c, // LD V0, 60
		0xf0, 0x15, // LD DT, V0
		0x12, 0x04, // JP 0x204
	}

	for _, clock := range []int{500, 2000} {
		var cycles int
		c := newTestController(t, clock, &cycles, program...)

		c.Advance(time.Second / 10)
		if c.Timers().Delay() != 60 {
			t.Fatalf("%d Hz: expected delay 60 after setup; have %d", clock, c.Timers().Delay())
		}

		c.Advance(time.Second / 10)
		if c.Timers().Delay() != 54 {
			t.Fatalf("%d Hz: expected 6 ticks in 100ms; have delay %d", clock, c.Timers().Delay())
		}
	}
}

func TestControllerPaused(t *testing.T) {
	var cycles int
	c := newTestController(t, 1000, &cycles, 0x12, 0x00)
	c.Stop()

	c.Advance(time.Millisecond * 50)
	if cycles != 0 {
		t.Fatalf("expected no cycles while paused; have %d", cycles)
	}

	if err := c.Step(); err != nil {
		t.Fatalf("Step failure: %v", err)
	}

	if cycles != 1 || c.Running() {
		t.Fatalf("expected single step without resuming; have %d cycles", cycles)
	}
}

func TestControllerErrorStops(t *testing.T) {
	var cycles int
	c := newTestController(t, 1000, &cycles, 0x00, 0xee) // RET

	err := c.Advance(time.Millisecond * 10)
	if !errors.Is(err, cpu.ErrStackUnderflow) {
		t.Fatalf("expected ErrStackUnderflow; have %v", err)
	}

	if c.Running() {
		t.Fatalf("expected execution to stop")
	}

	if cycles != 1 {
		t.Fatalf("expected a single cycle; have %d", cycles)
	}

	if err := c.Step(); err != io.EOF {
		t.Fatalf("expected io.EOF after failure; have %v", err)
	}
}

func TestControllerLoadTooLarge(t *testing.T) {
	c := NewCPUController(nil, cpu.Quirks{}, 700, noKeys{})

	err := c.Load(bytes.Repeat([]byte{0x12}, cpu.MaxProgramSize+1))
	if !errors.Is(err, cpu.ErrRomTooLarge) {
		t.Fatalf("expected ErrRomTooLarge; have %v", err)
	}

	if err := c.Step(); err != io.EOF {
		t.Fatalf("expected io.EOF without a program; have %v", err)
	}
}

func TestControllerFrame(t *testing.T) {
	var cycles int
	c := newTestController(t, 1000, &cycles, 0x00, 0xe0, 0x12, 0x02) // CLS; JP 0x202

	if _, ok := c.Frame(); !ok {
		t.Fatalf("expected initial frame after load")
	}

	if _, ok := c.Frame(); ok {
		t.Fatalf("expected no frame without changes")
	}

	c.Advance(time.Millisecond * 10)

	pixels, ok := c.Frame()
	if !ok || len(pixels) != cpu.DisplayWidth*cpu.DisplayHeight {
		t.Fatalf("expected frame after CLS; have %v, %d pixels", ok, len(pixels))
	}
}
