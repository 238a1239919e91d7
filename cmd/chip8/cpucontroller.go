package main

import (
	"io"
	"time"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/c8/cpu"
	"github.com/hexaflex/chip8/devices/c8/timer"
)

// maxBacklog bounds the amount of emulated time a single Advance call
// catches up on, so a stalled host does not trigger a burst of cycles.
const maxBacklog = time.Second / 10

// timerPeriod is the wall-clock interval between two timer ticks.
const timerPeriod = time.Second / timer.Frequency

// CPUController owns the machine and paces its execution.
type CPUController struct {
	cpu        *cpu.CPU
	memory     *cpu.Memory
	timers     *timer.Device
	keys       devices.Keypad
	devices    devices.Map
	clock      float64       // Target cycles per second.
	cycleDebt  float64       // Cycles owed to the program.
	tickDebt   time.Duration // Wall-clock time owed to the timers.
	lastUpdate time.Time
	start      time.Time
	cycleCount uint64
	loaded     bool
	running    bool
}

// NewCPUController creates a new CPU controller running at the given clock
// frequency. The given peripherals are started and stopped along with the cpu.
func NewCPUController(trace cpu.TraceFunc, quirks cpu.Quirks, clock int, keys devices.Keypad, peripherals ...devices.Device) *CPUController {
	c := &CPUController{
		cpu:    cpu.New(trace, quirks),
		memory: cpu.NewMemory(),
		timers: timer.New(),
		keys:   keys,
		clock:  float64(clock),
	}

	c.devices.Connect(c.cpu)
	c.devices.Connect(c.timers)

	for _, dev := range peripherals {
		c.devices.Connect(dev)
	}

	return c
}

// CPU returns the controlled cpu.
func (c *CPUController) CPU() *cpu.CPU {
	return c.cpu
}

// Timers returns the delay and sound timers.
func (c *CPUController) Timers() *timer.Device {
	return c.timers
}

// Running returns true if the CPU is currently running.
func (c *CPUController) Running() bool {
	return c.running
}

// Frequency returns the measured clock frequency in herz.
func (c *CPUController) Frequency() float64 {
	if !c.running {
		return 0
	}
	return float64(c.cycleCount) / time.Since(c.start).Seconds()
}

// ToggleRun starts or stops program execution.
func (c *CPUController) ToggleRun() {
	c.setRunning(!c.running)
}

// Start begins execution of the program.
func (c *CPUController) Start() {
	c.setRunning(true)
}

// Stop pauses execution of the program.
func (c *CPUController) Stop() {
	c.setRunning(false)
}

// Startup initializes the cpu and connected peripherals.
func (c *CPUController) Startup() error {
	return c.devices.Startup()
}

// Shutdown disposes of CPU and peripheral resources.
func (c *CPUController) Shutdown() error {
	c.Stop()
	return c.devices.Shutdown()
}

// Load resets the machine and loads the given program.
// On failure the machine refuses to execute until a program loads.
func (c *CPUController) Load(rom []byte) error {
	c.Stop()
	c.loaded = false

	c.memory.Reset()
	c.cpu.Reset()
	c.timers.SetDelay(0)
	c.timers.SetSound(0)

	if err := c.memory.LoadROM(rom); err != nil {
		return err
	}

	c.loaded = true
	return nil
}

// Step performs a single execution step.
// Execution stops on failure or when no program is loaded.
func (c *CPUController) Step() error {
	if !c.loaded {
		c.setRunning(false)
		return io.EOF
	}

	c.cycleCount++

	err := c.cpu.Step(c.memory, c.timers, c.keys)
	if err != nil {
		c.setRunning(false)
		c.loaded = false
	}

	return err
}

// Update advances the machine by the wall-clock time passed since the
// previous call.
func (c *CPUController) Update() error {
	now := time.Now()
	elapsed := now.Sub(c.lastUpdate)
	c.lastUpdate = now
	return c.Advance(elapsed)
}

// Advance runs as many cycles as the clock frequency allows in the given
// amount of time, and ticks the timers at 60 Hz.
func (c *CPUController) Advance(elapsed time.Duration) error {
	if !c.running {
		return nil
	}

	if elapsed > maxBacklog {
		elapsed = maxBacklog
	}

	c.tickDebt += elapsed
	for c.tickDebt >= timerPeriod {
		c.timers.Tick()
		c.tickDebt -= timerPeriod
	}

	c.cycleDebt += elapsed.Seconds() * c.clock
	for c.cycleDebt >= 1 && c.running {
		c.cycleDebt--

		if err := c.Step(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}

	return nil
}

// Frame returns video memory if it changed since the previous call.
func (c *CPUController) Frame() ([]byte, bool) {
	if !c.cpu.NeedsRedraw() {
		return nil, false
	}

	c.cpu.AckRedraw()
	return c.cpu.Pixels(), true
}

// setRunning determines of the CPU is running or is paused.
func (c *CPUController) setRunning(v bool) {
	c.running = v
	c.start = time.Now()
	c.lastUpdate = c.start
	c.cycleCount = 0
	c.cycleDebt = 0
	c.tickDebt = 0
}
