package fractals

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
)

// Frame announces one rendered image on a websocket connection.
// Unless Error is set it is followed by Tiles binary tile messages.
type Frame struct {
	Seq       int     `json:"seq"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Tiles     int     `json:"tiles"`
	ElapsedMs float64 `json:"elapsedMs"`
	Params    Params  `json:"params"`
	Error     string  `json:"error,omitempty"`
}

// tileHeaderLen is minX, minY, width, height as big-endian uint32.
const tileHeaderLen = 16

var (
	ErrShortTile = errors.New("tile message too short")
	ErrTileSize  = errors.New("tile payload does not match header")
)

// EncodeTile serializes the tile rectangle of img: a 16 byte header followed
// by the raw RGBA pixels, row by row.
func EncodeTile(img *image.RGBA, tile image.Rectangle) []byte {
	tile = tile.Intersect(img.Bounds())
	w, h := tile.Dx(), tile.Dy()

	b := make([]byte, tileHeaderLen+w*h*4)
	binary.BigEndian.PutUint32(b[0:], uint32(tile.Min.X))
	binary.BigEndian.PutUint32(b[4:], uint32(tile.Min.Y))
	binary.BigEndian.PutUint32(b[8:], uint32(w))
	binary.BigEndian.PutUint32(b[12:], uint32(h))

	pix := b[tileHeaderLen:]
	for y := 0; y < h; y++ {
		src := img.PixOffset(tile.Min.X, tile.Min.Y+y)
		copy(pix[y*w*4:(y+1)*w*4], img.Pix[src:src+w*4])
	}
	return b
}

// DecodeTile parses a message produced by EncodeTile.
// The returned image keeps its global coordinates.
func DecodeTile(b []byte) (*image.RGBA, error) {
	if len(b) < tileHeaderLen {
		return nil, fmt.Errorf("%d bytes: %w", len(b), ErrShortTile)
	}
	x := int(binary.BigEndian.Uint32(b[0:]))
	y := int(binary.BigEndian.Uint32(b[4:]))
	w := int(binary.BigEndian.Uint32(b[8:]))
	h := int(binary.BigEndian.Uint32(b[12:]))

	pix := b[tileHeaderLen:]
	if w > MaxResolution || h > MaxResolution || w*h*4 != len(pix) {
		return nil, fmt.Errorf("%dx%d tile with %d pixel bytes: %w", w, h, len(pix), ErrTileSize)
	}

	img := image.NewRGBA(image.Rect(x, y, x+w, y+h))
	copy(img.Pix, pix)
	return img, nil
}
