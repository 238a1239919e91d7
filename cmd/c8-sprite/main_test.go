package main

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"
)

// newImage creates a black image with the given pixels set to white.
func newImage(w, h int, set ...image.Point) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for _, p := range set {
		img.SetGray(p.X, p.Y, color.Gray{Y: 0xff})
	}
	return img
}

func TestTranslate(t *testing.T) {
	img := newImage(16, 5,
		image.Pt(0, 0), image.Pt(7, 0),
		image.Pt(3, 4),
		image.Pt(8, 1), image.Pt(15, 2),
	)

	sprites := translate(img, 5)
	if len(sprites) != 2 {
		t.Fatalf("expected 2 sprites; have %d", len(sprites))
	}

	want := [][]byte{
		{0x81, 0x00, 0x00, 0x00, 0x10},
		{0x00, 0x80, 0x01, 0x00, 0x00},
	}

	for i := range want {
		if !bytes.Equal(sprites[i], want[i]) {
			t.Fatalf("sprite %d mismatch:\nwant: %02x\nhave: %02x", i, want[i], sprites[i])
		}
	}
}

func TestTranslateOrder(t *testing.T) {
	// Two rows of two sprites; the bottom-left one has its top row set.
	img := newImage(16, 4, image.Pt(0, 2), image.Pt(1, 2))
	sprites := translate(img, 2)

	if len(sprites) != 4 {
		t.Fatalf("expected 4 sprites; have %d", len(sprites))
	}

	if sprites[2][0] != 0xc0 {
		t.Fatalf("expected sprite 2 to hold the set pixels; have %02x", sprites)
	}
}

func TestTranslatePartialTiles(t *testing.T) {
	img := newImage(12, 7)
	if n := len(translate(img, 3)); n != 2 {
		t.Fatalf("expected partial tiles to be dropped; have %d sprites", n)
	}
}

func TestWriteListing(t *testing.T) {
	var sb strings.Builder
	if err := writeListing(&sb, [][]byte{{0xf0, 0x90}}); err != nil {
		t.Fatalf("writeListing failure: %v", err)
	}

	want := "; 1 sprites, 2 bytes each\n\n; sprite 0\n0xf0 ; 11110000\n0x90 ; 10010000\n"
	if sb.String() != want {
		t.Fatalf("listing mismatch:\nwant: %q\nhave: %q", want, sb.String())
	}
}

func TestWriteBinary(t *testing.T) {
	var buf bytes.Buffer
	writeBinary(&buf, [][]byte{{1, 2}, {3, 4}})

	if !bytes.Equal(buf.Bytes(), []byte{1, 2, 3, 4}) {
		t.Fatalf("binary mismatch: %v", buf.Bytes())
	}
}
