// Package colormap maps divergence matrices onto perceptual colour scales.
package colormap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/marben/fractals"
)

var ErrUnknownColormap = errors.New("unknown colormap")

// Map is a colour scale sampled at evenly spaced anchors and linearly
// interpolated between them.
type Map struct {
	Name    string
	anchors []color.RGBA
}

// At returns the colour at position t, clamped to [0, 1].
func (m *Map) At(t float64) color.RGBA {
	if math.IsNaN(t) || t <= 0 {
		return m.anchors[0]
	}
	last := len(m.anchors) - 1
	if t >= 1 {
		return m.anchors[last]
	}

	pos := t * float64(last)
	i := int(pos)
	f := pos - float64(i)
	a, b := m.anchors[i], m.anchors[i+1]
	return color.RGBA{
		R: lerp(a.R, b.R, f),
		G: lerp(a.G, b.G, f),
		B: lerp(a.B, b.B, f),
		A: 255,
	}
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*f + 0.5)
}

// Lookup returns the map registered under name.
func Lookup(name string) (*Map, error) {
	m, ok := maps[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownColormap)
	}
	return m, nil
}

// Names lists the registered maps, sorted.
func Names() []string {
	names := make([]string, 0, len(maps))
	for name := range maps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Paint renders m as an n×n image. Entries are normalised by the matrix's own
// minimum and maximum. Matrix row 0 (Ymin) becomes the bottom image row.
func Paint(m fractals.DivergenceMatrix, cm *Map) *image.RGBA {
	n := m.N
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	if n == 0 {
		return img
	}

	lo, hi := m.Bounds()
	span := float64(hi - lo)

	for i := 0; i < n; i++ {
		y := n - 1 - i
		for j, v := range m.Row(i) {
			t := 0.0
			if span > 0 {
				t = float64(v-lo) / span
			}
			img.SetRGBA(j, y, cm.At(t))
		}
	}
	return img
}
