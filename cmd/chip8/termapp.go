package main

import (
	"io/ioutil"
	"log"
	"time"

	"github.com/hexaflex/chip8/devices/c8/cpu"
	"github.com/hexaflex/chip8/devices/c8/term"
)

// TermApp runs a program inside a text terminal.
type TermApp struct {
	config *Config
	cpu    *CPUController
	term   *term.Device
}

// NewTermApp creates a new terminal application using the given configuration.
func NewTermApp(config *Config) *TermApp {
	var a TermApp
	a.config = config
	a.term = term.New(term.DefaultHold)

	// The terminal owns stdout, so trace data is discarded.
	config.PrintTrace = false
	quirks := cpu.Quirks{ShiftUsesVY: config.ShiftUsesVY}
	a.cpu = NewCPUController(newTracer(ioutil.Discard, config), quirks, config.Frequency, a.term, a.term)
	return &a
}

// Run runs the application until the user quits or the program fails.
func (a *TermApp) Run() error {
	log.Println(Version())

	// Log output would corrupt the terminal display.
	out := log.Writer()
	log.SetOutput(ioutil.Discard)
	defer log.SetOutput(out)

	if err := a.cpu.Startup(); err != nil {
		return err
	}

	defer a.cpu.Shutdown()

	if err := loadProgram(a.cpu, a.config); err != nil {
		return err
	}

	a.cpu.Start()

	for !a.term.Quit() {
		a.term.Poll()

		if err := a.cpu.Update(); err != nil {
			return err
		}

		if pixels, ok := a.cpu.Frame(); ok {
			a.term.Draw(pixels)
		}

		time.Sleep(time.Millisecond)
	}

	return nil
}
