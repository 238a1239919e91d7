package cpu

// Instruction defines decoded instruction data.
// It is rebuilt for every executed opcode.
type Instruction struct {
	Address int    // Address the opcode was fetched from.
	Opcode  uint16 // Raw opcode.
	Family  byte   // Bits 12-15: instruction family.
	X       int    // Bits 8-11: register index.
	Y       int    // Bits 4-7: register index.
	N       byte   // Bits 0-3: 4-bit immediate.
	NN      byte   // Bits 0-7: 8-bit immediate.
	NNN     uint16 // Bits 0-11: address or 12-bit immediate.
}

// Decode fills in all instruction fields for the given opcode.
func (i *Instruction) Decode(address int, opcode uint16) {
	i.Address = address
	i.Opcode = opcode
	i.Family = byte(opcode >> 12)
	i.X = int(opcode>>8) & 0xf
	i.Y = int(opcode>>4) & 0xf
	i.N = byte(opcode & 0xf)
	i.NN = byte(opcode)
	i.NNN = opcode & 0xfff
}
