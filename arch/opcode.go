// Package arch defines the names of the CHIP-8 instruction set along
// with some related helper functions.
package arch

import "fmt"

// Known instruction names.
const (
	CLS  = "CLS"
	RET  = "RET"
	JP   = "JP"
	CALL = "CALL"
	SE   = "SE"
	SNE  = "SNE"
	LD   = "LD"
	ADD  = "ADD"
	OR   = "OR"
	AND  = "AND"
	XOR  = "XOR"
	SUB  = "SUB"
	SHR  = "SHR"
	SUBN = "SUBN"
	SHL  = "SHL"
	RND  = "RND"
	DRW  = "DRW"
	SKP  = "SKP"
	SKNP = "SKNP"
)

// Name returns the instruction name for the given opcode.
// Returns false if the opcode is not part of the instruction set.
func Name(opcode uint16) (string, bool) {
	name, _ := format(opcode)
	return name, name != ""
}

// Known returns true if the opcode is part of the instruction set.
func Known(opcode uint16) bool {
	_, ok := Name(opcode)
	return ok
}

// Format returns the assembly notation for the given opcode,
// e.g. "LD V1, 0x2a". Unknown opcodes yield a data directive.
func Format(opcode uint16) string {
	name, args := format(opcode)
	if name == "" {
		return fmt.Sprintf("DW 0x%04x", opcode)
	}
	if args == "" {
		return name
	}
	return name + " " + args
}

// format returns the name and operand notation of opcode.
// The name is empty if the opcode is not recognized.
func format(opcode uint16) (string, string) {
	vx := RegisterName(int(opcode>>8) & 0xf)
	vy := RegisterName(int(opcode>>4) & 0xf)
	n := opcode & 0xf
	nn := opcode & 0xff
	nnn := opcode & 0xfff

	switch opcode >> 12 {
	case 0x0:
		switch opcode {
		case 0x00e0:
			return CLS, ""
		case 0x00ee:
			return RET, ""
		}
	case 0x1:
		return JP, fmt.Sprintf("0x%03x", nnn)
	case 0x2:
		return CALL, fmt.Sprintf("0x%03x", nnn)
	case 0x3:
		return SE, fmt.Sprintf("%s, 0x%02x", vx, nn)
	case 0x4:
		return SNE, fmt.Sprintf("%s, 0x%02x", vx, nn)
	case 0x5:
		if n == 0 {
			return SE, vx + ", " + vy
		}
	case 0x6:
		return LD, fmt.Sprintf("%s, 0x%02x", vx, nn)
	case 0x7:
		return ADD, fmt.Sprintf("%s, 0x%02x", vx, nn)
	case 0x8:
		if name, ok := aluNames[n]; ok {
			return name, vx + ", " + vy
		}
	case 0x9:
		if n == 0 {
			return SNE, vx + ", " + vy
		}
	case 0xa:
		return LD, fmt.Sprintf("I, 0x%03x", nnn)
	case 0xb:
		return JP, fmt.Sprintf("V0, 0x%03x", nnn)
	case 0xc:
		return RND, fmt.Sprintf("%s, 0x%02x", vx, nn)
	case 0xd:
		return DRW, fmt.Sprintf("%s, %s, %d", vx, vy, n)
	case 0xe:
		switch nn {
		case 0x9e:
			return SKP, vx
		case 0xa1:
			return SKNP, vx
		}
	case 0xf:
		switch nn {
		case 0x07:
			return LD, vx + ", DT"
		case 0x0a:
			return LD, vx + ", K"
		case 0x15:
			return LD, "DT, " + vx
		case 0x18:
			return LD, "ST, " + vx
		case 0x1e:
			return ADD, "I, " + vx
		case 0x29:
			return LD, "F, " + vx
		case 0x33:
			return LD, "B, " + vx
		case 0x55:
			return LD, "[I], " + vx
		case 0x65:
			return LD, vx + ", [I]"
		}
	}

	return "", ""
}

var aluNames = map[uint16]string{
	0x0: LD,
	0x1: OR,
	0x2: AND,
	0x3: XOR,
	0x4: ADD,
	0x5: SUB,
	0x6: SHR,
	0x7: SUBN,
	0xe: SHL,
}
