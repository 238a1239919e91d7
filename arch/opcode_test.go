package arch

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		opcode uint16
		want   string
	}{
		{0x00e0, "CLS"},
		{0x00ee, "RET"},
		{0x1234, "JP 0x234"},
		{0x2abc, "CALL 0xabc"},
		{0x3a2f, "SE VA, 0x2f"},
		{0x4b00, "SNE VB, 0x00"},
		{0x5120, "SE V1, V2"},
		{0x6f01, "LD VF, 0x01"},
		{0x7102, "ADD V1, 0x02"},
		{0x8120, "LD V1, V2"},
		{0x8124, "ADD V1, V2"},
		{0x8127, "SUBN V1, V2"},
		{0x812e, "SHL V1, V2"},
		{0x9340, "SNE V3, V4"},
		{0xa050, "LD I, 0x050"},
		{0xb300, "JP V0, 0x300"},
		{0xc10f, "RND V1, 0x0f"},
		{0xd125, "DRW V1, V2, 5"},
		{0xe59e, "SKP V5"},
		{0xe5a1, "SKNP V5"},
		{0xf30a, "LD V3, K"},
		{0xf21e, "ADD I, V2"},
		{0xf933, "LD B, V9"},
		{0xfe55, "LD [I], VE"},
		{0xfe65, "LD VE, [I]"},
		{0x0123, "DW 0x0123"},
		{0x5121, "DW 0x5121"},
		{0x8128, "DW 0x8128"},
		{0xe500, "DW 0xe500"},
		{0xf0ff, "DW 0xf0ff"},
	}

	for _, tt := range tests {
		if have := Format(tt.opcode); have != tt.want {
			t.Fatalf("Format(%04x): want %q, have %q", tt.opcode, tt.want, have)
		}
	}
}

func TestName(t *testing.T) {
	if name, ok := Name(0xd015); !ok || name != DRW {
		t.Fatalf("want %s; have %q, %v", DRW, name, ok)
	}

	if Known(0xffff) {
		t.Fatalf("expected 0xffff to be unknown")
	}

	if !Known(0x00e0) {
		t.Fatalf("expected 0x00e0 to be known")
	}
}

func TestRegisterName(t *testing.T) {
	if RegisterName(0) != "V0" || RegisterName(0xf) != "VF" || RegisterName(16) != "" {
		t.Fatalf("unexpected register names: %q %q %q", RegisterName(0), RegisterName(0xf), RegisterName(16))
	}
}
