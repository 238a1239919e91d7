package devices

import (
	"log"

	"github.com/pkg/errors"
)

// Device represents a peripheral attached to the machine.
type Device interface {
	// ID yields the manufacturer and serial number for the device.
	ID() ID

	// Startup initializes internal resources.
	Startup() error

	// Shutdown cleans up internal resources.
	Shutdown() error
}

// Keypad is the hexadecimal keypad as seen by the CPU.
// Keys are numbered 0x0 through 0xf.
type Keypad interface {
	// IsDown returns true if the given key is currently held.
	IsDown(key int) bool

	// PressedKey returns a key that is currently held.
	// Returns false if no key is held. When several keys are held,
	// the lowest key index is returned.
	PressedKey() (int, bool)
}

// Map contains a list of registered peripherals.
type Map []Device

// Connect adds the given device to the device map.
// Returns false if the device type is already present in the set.
func (dm *Map) Connect(dev Device) bool {
	if (*dm).Find(dev.ID()) > -1 {
		return false
	}

	*dm = append(*dm, dev)
	return true
}

// Startup initializes internal resources of all devices, in the order
// they were connected.
func (dm Map) Startup() error {
	var errorset ErrorSet

	for _, dev := range dm {
		log.Println(dev.ID(), "startup")
		if err := dev.Startup(); err != nil {
			errorset.Append(errors.Wrapf(err, "%s", dev.ID()))
		}
	}

	if errorset.Len() == 0 {
		return nil
	}

	return errorset
}

// Shutdown cleans up internal resources in reverse connection order.
func (dm Map) Shutdown() error {
	var errorset ErrorSet

	for i := len(dm) - 1; i >= 0; i-- {
		dev := dm[i]
		log.Println(dev.ID(), "shutdown")
		if err := dev.Shutdown(); err != nil {
			errorset.Append(errors.Wrapf(err, "%s", dev.ID()))
		}
	}

	if errorset.Len() == 0 {
		return nil
	}

	return errorset
}

// Find returns the index for the device with the given id.
// Returns -1 if it can't be found.
func (dm Map) Find(id ID) int {
	for i, dev := range dm {
		if dev.ID() == id {
			return i
		}
	}
	return -1
}
