package cpu

import "github.com/pkg/errors"

// Memory layout.
const (
	MemoryCapacity = 0x1000                          // Size of the address space.
	FontAddress    = 0x050                           // Address of the first font glyph.
	GlyphSize      = 5                               // Size of a single font glyph in bytes.
	ProgramAddress = 0x200                           // Address at which programs are loaded.
	MaxProgramSize = MemoryCapacity - ProgramAddress // Largest program that fits in memory.
	StackCapacity  = 16                              // Number of call stack entries.
)

// font holds the 4x5 pixel glyphs for the hexadecimal digits 0-F.
var font = [16 * GlyphSize]byte{
	0xf0, 0x90, 0x90, 0x90, 0xf0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xf0, 0x10, 0xf0, 0x80, 0xf0, // 2
	0xf0, 0x10, 0xf0, 0x10, 0xf0, // 3
	0x90, 0x90, 0xf0, 0x10, 0x10, // 4
	0xf0, 0x80, 0xf0, 0x10, 0xf0, // 5
	0xf0, 0x80, 0xf0, 0x90, 0xf0, // 6
	0xf0, 0x10, 0x20, 0x40, 0x40, // 7
	0xf0, 0x90, 0xf0, 0x90, 0xf0, // 8
	0xf0, 0x90, 0xf0, 0x10, 0xf0, // 9
	0xf0, 0x90, 0xf0, 0x90, 0x90, // A
	0xe0, 0x90, 0xe0, 0x90, 0xe0, // B
	0xf0, 0x80, 0x80, 0x80, 0xf0, // C
	0xe0, 0x90, 0x90, 0x90, 0xe0, // D
	0xf0, 0x80, 0xf0, 0x80, 0xf0, // E
	0xf0, 0x80, 0xf0, 0x80, 0x80, // F
}

// Memory defines the system's memory bank and call stack storage.
//
// Addresses passed to its accessors must be within [0, MemoryCapacity).
// The CPU checks every computed address before use.
type Memory struct {
	data  [MemoryCapacity]byte
	stack [StackCapacity]uint16
}

// NewMemory creates a zeroed memory bank with the font in place.
func NewMemory() *Memory {
	var m Memory
	m.Reset()
	return &m
}

// Reset clears memory and the call stack and reinstalls the font.
func (m *Memory) Reset() {
	m.data = [MemoryCapacity]byte{}
	m.stack = [StackCapacity]uint16{}
	copy(m.data[FontAddress:], font[:])
}

// LoadROM copies the program p into memory at ProgramAddress.
// Memory is left untouched if the program does not fit.
func (m *Memory) LoadROM(p []byte) error {
	if len(p) > MaxProgramSize {
		return errors.Wrapf(ErrRomTooLarge, "%d bytes, limit is %d", len(p), MaxProgramSize)
	}

	copy(m.data[ProgramAddress:], p)
	return nil
}

// U8 returns the byte at the given address.
func (m *Memory) U8(addr int) byte {
	return m.data[addr]
}

// SetU8 sets the byte at the given address.
func (m *Memory) SetU8(addr int, value byte) {
	m.data[addr] = value
}

// U16 returns the big-endian 16-bit value at the given address.
func (m *Memory) U16(addr int) uint16 {
	return uint16(m.data[addr])<<8 | uint16(m.data[addr+1])
}

// Write writes len(p) bytes from p into memory, starting at the given address.
func (m *Memory) Write(address int, p []byte) {
	copy(m.data[address:], p)
}

// Read reads len(p) bytes from memory into p, starting at the given address.
func (m *Memory) Read(address int, p []byte) {
	copy(p, m.data[address:])
}

// Stack returns call stack entry i.
func (m *Memory) Stack(i int) uint16 {
	return m.stack[i]
}

// SetStack sets call stack entry i.
func (m *Memory) SetStack(i int, addr uint16) {
	m.stack[i] = addr
}
