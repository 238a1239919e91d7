package cpu

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
)

func TestMemoryFont(t *testing.T) {
	m := NewMemory()

	glyph := make([]byte, GlyphSize)
	m.Read(FontAddress+0xf*GlyphSize, glyph)

	if !bytes.Equal(glyph, []byte{0xf0, 0x80, 0xf0, 0x80, 0x80}) {
		t.Fatalf("glyph F mismatch: %02x", glyph)
	}

	for addr := 0; addr < FontAddress; addr++ {
		if m.U8(addr) != 0 {
			t.Fatalf("expected 0x%04x to be zero", addr)
		}
	}

	if m.U8(FontAddress+len(font)) != 0 {
		t.Fatalf("expected font to end at 0x%04x", FontAddress+len(font))
	}
}

func TestLoadROM(t *testing.T) {
	m := NewMemory()

	if err := m.LoadROM([]byte{0x12, 0x34, 0x56}); err != nil {
		t.Fatalf("LoadROM failure: %v", err)
	}

	if m.U16(ProgramAddress) != 0x1234 || m.U8(ProgramAddress+2) != 0x56 {
		t.Fatalf("program not found at 0x%04x", ProgramAddress)
	}
}

func TestLoadROMMaxSize(t *testing.T) {
	m := NewMemory()
	rom := bytes.Repeat([]byte{0xaa}, MaxProgramSize)

	if err := m.LoadROM(rom); err != nil {
		t.Fatalf("LoadROM failure: %v", err)
	}

	if m.U8(MemoryCapacity-1) != 0xaa {
		t.Fatalf("expected last address to hold program data")
	}
}

func TestLoadROMTooLarge(t *testing.T) {
	m := NewMemory()
	rom := bytes.Repeat([]byte{0xaa}, MaxProgramSize+1)

	err := m.LoadROM(rom)
	if !errors.Is(err, ErrRomTooLarge) {
		t.Fatalf("expected ErrRomTooLarge; have %v", err)
	}

	want := NewMemory()
	if m.data != want.data {
		t.Fatalf("expected memory to hold nothing but the font")
	}
}

func TestMemoryReset(t *testing.T) {
	m := NewMemory()
	m.LoadROM([]byte{1, 2, 3})
	m.SetU8(FontAddress, 0)
	m.SetStack(3, 0x222)

	m.Reset()

	if m.U8(ProgramAddress) != 0 || m.Stack(3) != 0 {
		t.Fatalf("expected memory and stack to be cleared")
	}

	if m.U8(FontAddress) != font[0] {
		t.Fatalf("expected font to be reinstalled")
	}
}

func TestInstructionDecode(t *testing.T) {
	var i Instruction
	i.Decode(0x2f0, 0xd12e)

	if i.Address != 0x2f0 || i.Opcode != 0xd12e {
		t.Fatalf("address/opcode mismatch: %04x %04x", i.Address, i.Opcode)
	}

	if i.Family != 0xd || i.X != 1 || i.Y != 2 || i.N != 0xe || i.NN != 0x2e || i.NNN != 0x12e {
		t.Fatalf("field mismatch: %+v", i)
	}
}
