// Package timer implements the CHIP-8 delay and sound timers.
//
// Both timers are 8-bit counters which count down to zero. The device
// keeps no notion of time itself; the owner calls Tick at 60 Hz.
package timer

import (
	"github.com/hexaflex/chip8/devices"
)

// Frequency is the rate in herz at which Tick is expected to be called.
const Frequency = 60

// Device holds the delay and sound counters.
type Device struct {
	delay byte
	sound byte
}

var _ devices.Device = &Device{}

// New creates a new timer device with both counters at zero.
func New() *Device {
	return &Device{}
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Manufacturer, devices.SerialTimer)
}

// Startup resets both counters.
func (d *Device) Startup() error {
	d.delay = 0
	d.sound = 0
	return nil
}

// Shutdown is a no-op.
func (d *Device) Shutdown() error {
	return nil
}

// Tick decrements both counters by one, unless they are already zero.
func (d *Device) Tick() {
	if d.delay > 0 {
		d.delay--
	}
	if d.sound > 0 {
		d.sound--
	}
}

func (d *Device) Delay() byte     { return d.delay }
func (d *Device) SetDelay(v byte) { d.delay = v }
func (d *Device) Sound() byte     { return d.sound }
func (d *Device) SetSound(v byte) { d.sound = v }

// Beeping returns true while the sound timer is active.
func (d *Device) Beeping() bool {
	return d.sound > 0
}
