package main

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// SpriteWidth is the pixel width of a sprite: one byte per row.
const SpriteWidth = 8

// MaxSpriteHeight is the largest number of rows a single DRW instruction draws.
const MaxSpriteHeight = 15

func main() {
	config := parseArgs()
	img := loadImage(config)

	out, close := makeWriter(config)
	defer close()

	sprites := translate(img, config.Height)

	var err error
	if config.Binary {
		err = writeBinary(out, sprites)
	} else {
		err = writeListing(out, sprites)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// translate cuts the image into sprites of the given height, left to right
// and top to bottom. Any pixel with a non-zero red component is set.
func translate(img image.Image, height int) [][]byte {
	r := img.Bounds()
	w := r.Dx() / SpriteWidth
	h := r.Dy() / height

	sprites := make([][]byte, 0, w*h)

	for y := 0; y < h; y++ {
		sy := r.Min.Y + y*height

		for x := 0; x < w; x++ {
			sx := r.Min.X + x*SpriteWidth
			sprite := make([]byte, height)

			for py := 0; py < height; py++ {
				for px := 0; px < SpriteWidth; px++ {
					red, _, _, _ := img.At(sx+px, sy+py).RGBA()
					if red != 0 {
						sprite[py] |= 0x80 >> uint(px)
					}
				}
			}

			sprites = append(sprites, sprite)
		}
	}

	return sprites
}

// writeListing writes sprites as commented hex rows with a binary preview.
func writeListing(out io.Writer, sprites [][]byte) error {
	if _, err := fmt.Fprintf(out, "; %d sprites, %d bytes each\n", len(sprites), spriteSize(sprites)); err != nil {
		return err
	}

	for n, sprite := range sprites {
		if _, err := fmt.Fprintf(out, "\n; sprite %d\n", n); err != nil {
			return err
		}

		for _, row := range sprite {
			if _, err := fmt.Fprintf(out, "0x%02x ; %08b\n", row, row); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeBinary writes sprite bytes back to back.
func writeBinary(out io.Writer, sprites [][]byte) error {
	for _, sprite := range sprites {
		if _, err := out.Write(sprite); err != nil {
			return err
		}
	}
	return nil
}

func spriteSize(sprites [][]byte) int {
	if len(sprites) == 0 {
		return 0
	}
	return len(sprites[0])
}

// loadImage loads an image from the input file.
func loadImage(c *Config) image.Image {
	fd, err := os.Open(c.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	defer fd.Close()

	img, _, err := image.Decode(fd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	r := img.Bounds()
	if r.Dx() < SpriteWidth || r.Dy() < c.Height {
		fmt.Fprintf(os.Stderr, "source image is too small; expected at least %d x %d pixels\n", SpriteWidth, c.Height)
		os.Exit(1)
	}

	return img
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(c *Config) (io.Writer, func()) {
	if c.Output == "" {
		return os.Stdout, func() {}
	}

	dir, _ := filepath.Split(c.Output)
	if dir != "" {
		err := os.MkdirAll(dir, 0744)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fd, err := os.Create(c.Output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return fd, func() { fd.Close() }
}
