package main

import (
	"flag"
	"fmt"
	"os"
)

// Config defines program configuration.
type Config struct {
	Input  string // Input image file.
	Output string // Output file. Leave empty for stdout.
	Height int    // Number of rows in a single sprite.
	Binary bool   // Write raw sprite bytes instead of a text listing.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.Height = 8

	flag.Usage = func() {
		fmt.Printf("%s [options] <image file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.StringVar(&c.Output, "out", c.Output, "File path to write output to. Leave empty to use stdout.")
	flag.IntVar(&c.Height, "height", c.Height, fmt.Sprintf("Sprite height in pixels (1-%d).", MaxSpriteHeight))
	flag.BoolVar(&c.Binary, "binary", c.Binary, "Write raw sprite bytes instead of a text listing.")
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

	if c.Height < 1 || c.Height > MaxSpriteHeight {
		fmt.Fprintf(os.Stderr, "sprite height must be in the range 1-%d\n", MaxSpriteHeight)
		os.Exit(1)
	}

	c.Input = flag.Arg(0)
	return &c
}
