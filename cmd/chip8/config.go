package main

import (
	"flag"
	"fmt"
	"os"
)

// Config defines program configuration.
type Config struct {
	Program     string // Path to the program file to load.
	ScaleFactor int    // Amount by which each pixel is scaled (virtual resolution)
	Fullscreen  bool   // Run in fullscreen?
	Debug       bool   // Start with execution paused.
	PrintTrace  bool   // Print instruction trace data?
	Frequency   int    // Target clock frequency in herz.
	ShiftUsesVY bool   // Shift instructions read Vy instead of Vx.
	Terminal    bool   // Run in the terminal instead of a window.
	Seed        int64  // Random seed. Zero picks a time based seed.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.ScaleFactor = 10
	c.Frequency = 700

	flag.Usage = func() {
		fmt.Printf("%s [options] <program file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.BoolVar(&c.Debug, "debug", c.Debug, "Start with program execution paused.")
	flag.BoolVar(&c.PrintTrace, "trace", c.PrintTrace, "Print instruction trace data.")
	flag.IntVar(&c.ScaleFactor, "scale-factor", c.ScaleFactor, "Pixel scale factor for the display.")
	flag.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "Run the display in fullscreen or windowed mode.")
	flag.IntVar(&c.Frequency, "frequency", c.Frequency, "Number of instructions executed per second.")
	flag.BoolVar(&c.ShiftUsesVY, "shift-vy", c.ShiftUsesVY, "Shift instructions operate on Vy and store the result in Vx.")
	flag.BoolVar(&c.Terminal, "term", c.Terminal, "Run in the terminal instead of opening a window.")
	flag.Int64Var(&c.Seed, "seed", c.Seed, "Seed for the random number generator. Zero uses the current time.")

	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if c.Frequency <= 0 || c.ScaleFactor <= 0 {
		fmt.Fprintln(os.Stderr, "frequency and scale factor must be positive")
		os.Exit(1)
	}

	c.Program = flag.Arg(0)
	return &c
}
