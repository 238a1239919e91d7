package devices

import "fmt"

// Manufacturer is the manufacturer id shared by all devices in this repository.
const Manufacturer = 0x00c8

// Known device serial numbers.
const (
	SerialCPU = iota + 1
	SerialTimer
	SerialScreen
	SerialKeypad
	SerialTerminal
)

// ID identifies a device.
// The upper 16 bits hold the device manufacturer id.
// The lower 16 bits hold the device serial number.
type ID uint32

// NewID creates a new id with the given components.
func NewID(manufacturer, serial int) ID {
	return ID(manufacturer&0xffff)<<16 | ID(serial&0xffff)
}

// Manufacturer returns the manufacturer component of the ID.
func (id ID) Manufacturer() int {
	return int(id>>16) & 0xffff
}

// Serial returns the device serial number component of the ID.
func (id ID) Serial() int {
	return int(id) & 0xffff
}

func (id ID) String() string {
	return fmt.Sprintf("%04x:%04x", id.Manufacturer(), id.Serial())
}
