package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
	"github.com/hexaflex/chip8/devices/c8/cpu"
)

// newTracer returns a trace handler which writes instruction data to w
// while config.PrintTrace is set.
func newTracer(w io.Writer, config *Config) cpu.TraceFunc {
	return func(i *cpu.Instruction) {
		if !config.PrintTrace {
			return
		}

		if arch.Known(i.Opcode) {
			fmt.Fprintf(w, "%04x %04x  %s\n", i.Address, i.Opcode, arch.Format(i.Opcode))
		} else {
			fmt.Fprintf(w, "%04x %04x  %-16s ; unknown opcode\n", i.Address, i.Opcode, arch.Format(i.Opcode))
		}
	}
}

// loadProgram loads the configured program from disk into the machine.
func loadProgram(c *CPUController, config *Config) error {
	log.Println("loading", config.Program)

	rom, err := ioutil.ReadFile(config.Program)
	if err != nil {
		return err
	}

	if err = c.Load(rom); err != nil {
		return errors.Wrapf(err, "load %s", config.Program)
	}

	if config.Seed != 0 {
		c.CPU().Seed(config.Seed)
	}

	return nil
}

// programName returns the display name of the loaded program.
func programName(config *Config) string {
	return filepath.Base(config.Program)
}

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
