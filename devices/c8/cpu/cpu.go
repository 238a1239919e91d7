// Package cpu implements the CHIP-8 CPU.
package cpu

import (
	"math/rand"
	"time"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/c8/timer"
)

// Display dimensions in pixels. Both must be powers of two.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// RegisterCount is the number of general purpose registers.
const RegisterCount = 16

// VF is the register which receives carry, borrow and collision flags.
const VF = 0xf

// TraceFunc represents a callback handler for debug trace output.
type TraceFunc func(*Instruction)

// Quirks selects between behaviours which differ across CHIP-8 interpreters.
type Quirks struct {
	// ShiftUsesVY makes 8xy6 and 8xyE shift Vy and store the result in Vx,
	// as the original COSMAC VIP interpreter does. When false, Vx is
	// shifted in place and Vy is ignored.
	ShiftUsesVY bool
}

// CPU implements the runtime.
type CPU struct {
	trace  TraceFunc                          // Handler for debug trace output.
	quirks Quirks                             // Interpreter compatibility settings.
	instr  Instruction                        // Decoded instruction data.
	rng    *rand.Rand                         // Random number generator.
	v      [RegisterCount]byte                // General purpose registers V0-VF.
	pc     uint16                             // Program counter.
	i      uint16                             // Index register.
	sp     int                                // Stack pointer: number of entries in use.
	pixels [DisplayWidth * DisplayHeight]byte // Video memory, one byte per pixel.
	redraw bool                               // Has video memory changed since the last AckRedraw?
}

var _ devices.Device = &CPU{}

// New creates a new CPU with the given quirks.
// Optionally with the given debug trace handler.
func New(trace TraceFunc, quirks Quirks) *CPU {
	if trace == nil {
		trace = func(*Instruction) { /* nop */ }
	}

	c := &CPU{
		trace:  trace,
		quirks: quirks,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	c.Reset()
	return c
}

// ID returns the cpu's device Id.
func (c *CPU) ID() devices.ID {
	return devices.NewID(devices.Manufacturer, devices.SerialCPU)
}

// Startup resets the cpu to its power-on state.
func (c *CPU) Startup() error {
	c.Reset()
	return nil
}

// Shutdown is a no-op.
func (c *CPU) Shutdown() error {
	return nil
}

// Reset clears registers, stack pointer and video memory and points the
// program counter at the program load address.
func (c *CPU) Reset() {
	c.v = [RegisterCount]byte{}
	c.pc = ProgramAddress
	c.i = 0
	c.sp = 0
	c.pixels = [DisplayWidth * DisplayHeight]byte{}
	c.redraw = true
}

// Seed reseeds the random number generator used by Cxnn.
func (c *CPU) Seed(seed int64) {
	c.rng = rand.New(rand.NewSource(seed))
}

// PC returns the program counter.
func (c *CPU) PC() uint16 { return c.pc }

// I returns the index register.
func (c *CPU) I() uint16 { return c.i }

// SP returns the number of call stack entries in use.
func (c *CPU) SP() int { return c.sp }

// V returns the value of register Vx.
func (c *CPU) V(x int) byte { return c.v[x] }

// Pixels returns the video memory in row-major order.
// Each byte is either 0 (off) or 1 (on). The slice must not be modified.
func (c *CPU) Pixels() []byte { return c.pixels[:] }

// Pixel returns the state of the pixel at the given coordinates.
func (c *CPU) Pixel(x, y int) bool {
	return c.pixels[y*DisplayWidth+x] != 0
}

// NeedsRedraw returns true if video memory changed since the last call to AckRedraw.
func (c *CPU) NeedsRedraw() bool { return c.redraw }

// AckRedraw marks the current video memory contents as rendered.
func (c *CPU) AckRedraw() { c.redraw = false }

// Step performs a single fetch, decode and execute cycle.
//
// A returned error is fatal for the loaded program. In that case the
// machine state is the same as before the call.
func (c *CPU) Step(mem *Memory, timers *timer.Device, keys devices.Keypad) error {
	instr := &c.instr
	pc := int(c.pc)

	if pc+1 >= MemoryCapacity {
		instr.Decode(pc, 0)
		return NewError(instr, ErrMemoryOutOfRange, "fetch")
	}

	instr.Decode(pc, mem.U16(pc))
	c.pc += 2

	c.trace(instr)

	if err := c.execute(mem, timers, keys); err != nil {
		c.pc = uint16(instr.Address)
		return err
	}

	return nil
}

// execute runs the currently decoded instruction.
// Opcodes which are not part of the instruction set are ignored.
func (c *CPU) execute(mem *Memory, timers *timer.Device, keys devices.Keypad) error {
	instr := &c.instr
	v := &c.v
	x, y := instr.X, instr.Y

	switch instr.Family {
	case 0x0:
		switch instr.Opcode {
		case 0x00e0:
			c.pixels = [DisplayWidth * DisplayHeight]byte{}
			c.redraw = true
		case 0x00ee:
			return c.ret(mem)
		}

	case 0x1:
		c.pc = instr.NNN
	case 0x2:
		return c.call(mem, instr.NNN)

	case 0x3:
		if v[x] == instr.NN {
			c.skip()
		}
	case 0x4:
		if v[x] != instr.NN {
			c.skip()
		}
	case 0x5:
		if instr.N == 0 && v[x] == v[y] {
			c.skip()
		}
	case 0x9:
		if instr.N == 0 && v[x] != v[y] {
			c.skip()
		}

	case 0x6:
		v[x] = instr.NN
	case 0x7:
		v[x] += instr.NN
	case 0x8:
		c.alu(instr)

	case 0xa:
		c.i = instr.NNN
	case 0xb:
		c.pc = instr.NNN + uint16(v[0])
	case 0xc:
		v[x] = instr.NN & byte(c.rng.Intn(256))
	case 0xd:
		return c.draw(mem)

	case 0xe:
		switch instr.NN {
		case 0x9e:
			if keys.IsDown(int(v[x])) {
				c.skip()
			}
		case 0xa1:
			if !keys.IsDown(int(v[x])) {
				c.skip()
			}
		}

	case 0xf:
		return c.misc(mem, timers, keys)
	}

	return nil
}

// alu executes the 8xyN register arithmetic instructions.
// Operands are read before any register is written; VF is written last.
func (c *CPU) alu(instr *Instruction) {
	v := &c.v
	x, y := instr.X, instr.Y
	vx, vy := v[x], v[y]

	switch instr.N {
	case 0x0:
		v[x] = vy
	case 0x1:
		v[x] = vx | vy
	case 0x2:
		v[x] = vx & vy
	case 0x3:
		v[x] = vx ^ vy
	case 0x4:
		sum := int(vx) + int(vy)
		v[x] = byte(sum)
		v[VF] = flag(sum > 0xff)
	case 0x5:
		v[x] = vx - vy
		v[VF] = flag(vx > vy)
	case 0x6:
		src := c.shiftSource(vx, vy)
		v[x] = src >> 1
		v[VF] = src & 1
	case 0x7:
		v[x] = vy - vx
		v[VF] = flag(vy > vx)
	case 0xe:
		src := c.shiftSource(vx, vy)
		v[x] = src << 1
		v[VF] = src >> 7
	}
}

// misc executes the Fxnn timer, keypad and memory instructions.
func (c *CPU) misc(mem *Memory, timers *timer.Device, keys devices.Keypad) error {
	instr := &c.instr
	v := &c.v
	x := instr.X

	switch instr.NN {
	case 0x07:
		v[x] = timers.Delay()
	case 0x0a:
		key, ok := keys.PressedKey()
		if !ok {
			c.pc -= 2
			return nil
		}
		v[x] = byte(key)
	case 0x15:
		timers.SetDelay(v[x])
	case 0x18:
		timers.SetSound(v[x])
	case 0x1e:
		sum := int(c.i) + int(v[x])
		c.i = uint16(sum & 0xfff)
		v[VF] = flag(sum > 0xfff)
	case 0x29:
		c.i = FontAddress + GlyphSize*uint16(v[x]&0xf)

	case 0x33:
		addr := int(c.i)
		if addr+2 >= MemoryCapacity {
			return NewError(instr, ErrMemoryOutOfRange, "bcd store at %04x", addr)
		}
		mem.SetU8(addr+0, v[x]/100)
		mem.SetU8(addr+1, v[x]/10%10)
		mem.SetU8(addr+2, v[x]%10)

	case 0x55:
		addr := int(c.i)
		if addr+x >= MemoryCapacity {
			return NewError(instr, ErrMemoryOutOfRange, "register store at %04x", addr)
		}
		mem.Write(addr, v[:x+1])

	case 0x65:
		addr := int(c.i)
		if addr+x >= MemoryCapacity {
			return NewError(instr, ErrMemoryOutOfRange, "register load at %04x", addr)
		}
		mem.Read(addr, v[:x+1])
	}

	return nil
}

// draw XORs an n-byte sprite from memory at I onto the display at (Vx, Vy).
//
// Only the origin wraps around the display edges. Sprite rows and columns
// which extend beyond the display are clipped. VF is set when any pixel
// is switched off.
func (c *CPU) draw(mem *Memory) error {
	instr := &c.instr
	col := int(c.v[instr.X]) & (DisplayWidth - 1)
	row := int(c.v[instr.Y]) & (DisplayHeight - 1)

	rows := int(instr.N)
	if row+rows > DisplayHeight {
		rows = DisplayHeight - row
	}

	addr := int(c.i)
	if rows > 0 && addr+rows > MemoryCapacity {
		return NewError(instr, ErrMemoryOutOfRange, "sprite read at %04x", addr)
	}

	c.v[VF] = 0

	for r := 0; r < rows; r++ {
		bits := mem.U8(addr + r)
		line := c.pixels[(row+r)*DisplayWidth:]

		for b := 0; b < 8 && col+b < DisplayWidth; b++ {
			if bits&(0x80>>uint(b)) == 0 {
				continue
			}

			if line[col+b] == 1 {
				c.v[VF] = 1
			}

			line[col+b] ^= 1
			c.redraw = true
		}
	}

	return nil
}

// call pushes the return address onto the call stack and jumps to addr.
func (c *CPU) call(mem *Memory, addr uint16) error {
	if c.sp >= StackCapacity {
		return NewError(&c.instr, ErrStackOverflow, "call %03x", addr)
	}

	mem.SetStack(c.sp, c.pc)
	c.sp++
	c.pc = addr
	return nil
}

// ret pops the return address off the call stack.
func (c *CPU) ret(mem *Memory) error {
	if c.sp == 0 {
		return NewError(&c.instr, ErrStackUnderflow, "return")
	}

	c.sp--
	c.pc = mem.Stack(c.sp)
	return nil
}

// skip skips the next instruction.
func (c *CPU) skip() {
	c.pc += 2
}

// shiftSource returns the operand for the shift instructions.
func (c *CPU) shiftSource(vx, vy byte) byte {
	if c.quirks.ShiftUsesVY {
		return vy
	}
	return vx
}

func flag(v bool) byte {
	if v {
		return 1
	}
	return 0
}

