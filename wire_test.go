package fractals

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func patterned(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

func TestTileRoundTrip(t *testing.T) {
	img := patterned(100, 70)

	tests := []image.Rectangle{
		image.Rect(0, 0, 64, 64),
		image.Rect(64, 64, 100, 70), // edge tile
		image.Rect(90, 0, 130, 10),  // clipped to the image
	}
	for _, tile := range tests {
		b := EncodeTile(img, tile)
		got, err := DecodeTile(b)
		if err != nil {
			t.Fatalf("DecodeTile(%s): %v", tile, err)
		}
		want := tile.Intersect(img.Bounds())
		if got.Bounds() != want {
			t.Fatalf("bounds = %s, want %s", got.Bounds(), want)
		}
		for y := want.Min.Y; y < want.Max.Y; y++ {
			for x := want.Min.X; x < want.Max.X; x++ {
				if got.RGBAAt(x, y) != img.RGBAAt(x, y) {
					t.Fatalf("tile %s: pixel (%d, %d) = %v, want %v", tile, x, y, got.RGBAAt(x, y), img.RGBAAt(x, y))
				}
			}
		}
	}
}

func TestDecodeTileErrors(t *testing.T) {
	good := EncodeTile(patterned(8, 8), image.Rect(0, 0, 8, 8))

	if _, err := DecodeTile(good[:10]); !errors.Is(err, ErrShortTile) {
		t.Errorf("short header: got %v, want ErrShortTile", err)
	}
	if _, err := DecodeTile(good[:len(good)-4]); !errors.Is(err, ErrTileSize) {
		t.Errorf("truncated pixels: got %v, want ErrTileSize", err)
	}

	huge := append([]byte(nil), good...)
	huge[8], huge[9], huge[10], huge[11] = 0xff, 0xff, 0xff, 0xff
	if _, err := DecodeTile(huge); !errors.Is(err, ErrTileSize) {
		t.Errorf("oversized width: got %v, want ErrTileSize", err)
	}
}
