// Package keypad implements the 16-key hexadecimal keypad on top of
// the GLFW keyboard and, when present, a gamepad.
package keypad

import (
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hexaflex/chip8/devices"
)

// KeyCount is the number of keys on the keypad.
const KeyCount = 16

// Layout maps host keyboard keys onto the keypad:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   =>   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
var Layout = map[glfw.Key]int{
	glfw.Key1: 0x1, glfw.Key2: 0x2, glfw.Key3: 0x3, glfw.Key4: 0xc,
	glfw.KeyQ: 0x4, glfw.KeyW: 0x5, glfw.KeyE: 0x6, glfw.KeyR: 0xd,
	glfw.KeyA: 0x7, glfw.KeyS: 0x8, glfw.KeyD: 0x9, glfw.KeyF: 0xe,
	glfw.KeyZ: 0xa, glfw.KeyX: 0x0, glfw.KeyC: 0xb, glfw.KeyV: 0xf,
}

// GamepadLayout maps gamepad buttons onto the keypad.
// The d-pad covers the 2/4/6/8 directions most programs use.
var GamepadLayout = map[glfw.GamepadButton]int{
	glfw.ButtonDpadUp:    0x2,
	glfw.ButtonDpadLeft:  0x4,
	glfw.ButtonDpadRight: 0x6,
	glfw.ButtonDpadDown:  0x8,
	glfw.ButtonA:         0x5,
	glfw.ButtonB:         0x0,
	glfw.ButtonX:         0x1,
	glfw.ButtonY:         0x3,
	glfw.ButtonStart:     0xf,
}

// Device tracks which keypad keys are held.
type Device struct {
	joy     glfw.Joystick
	keys    [KeyCount]bool // Keys held on the keyboard.
	buttons [KeyCount]bool // Keys held on the gamepad.
	gamepad bool           // Is a gamepad connected?
}

var _ devices.Device = &Device{}
var _ devices.Keypad = &Device{}

// New creates a new device.
func New() *Device {
	return &Device{}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Manufacturer, devices.SerialKeypad)
}

// Startup releases all keys and detects any connected gamepad.
// GLFW must be initialized.
func (d *Device) Startup() error {
	d.release()

	glfw.SetJoystickCallback(d.configure)

	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if joy.Present() && joy.IsGamepad() {
			d.configure(joy, glfw.Connected)
			break
		}
	}

	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	glfw.SetJoystickCallback(nil)
	d.gamepad = false
	return nil
}

// KeyEvent updates the keypad from a GLFW key event.
// Returns false if the key is not part of the layout.
func (d *Device) KeyEvent(key glfw.Key, action glfw.Action) bool {
	n, ok := Layout[key]
	if !ok {
		return false
	}

	switch action {
	case glfw.Press:
		d.keys[n] = true
	case glfw.Release:
		d.keys[n] = false
	}

	return true
}

// Update polls the gamepad, if one is connected.
func (d *Device) Update() {
	if !d.gamepad {
		return
	}

	state := d.joy.GetGamepadState()
	if state == nil {
		return
	}

	d.buttons = [KeyCount]bool{}
	for btn, n := range GamepadLayout {
		if state.Buttons[btn] == glfw.Press {
			d.buttons[n] = true
		}
	}
}

// IsDown returns true if the given key is held.
func (d *Device) IsDown(key int) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return d.keys[key] || d.buttons[key]
}

// PressedKey returns the lowest key which is held.
func (d *Device) PressedKey() (int, bool) {
	for key := 0; key < KeyCount; key++ {
		if d.IsDown(key) {
			return key, true
		}
	}
	return 0, false
}

// configure is called whenever a joystick is connected or disconnected from the system.
func (d *Device) configure(joy glfw.Joystick, event glfw.PeripheralEvent) {
	d.gamepad = event == glfw.Connected && joy.IsGamepad()
	d.joy = joy
	d.buttons = [KeyCount]bool{}

	if d.gamepad {
		log.Println(d.ID(), "gamepad connected:", joy.GetGamepadName())
	} else {
		log.Println(d.ID(), "gamepad disconnected")
	}
}

func (d *Device) release() {
	d.keys = [KeyCount]bool{}
	d.buttons = [KeyCount]bool{}
}
