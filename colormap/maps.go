package colormap

import (
	"image/color"
	"math"
)

func hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

func newMap(name string, anchors ...uint32) *Map {
	m := &Map{Name: name, anchors: make([]color.RGBA, len(anchors))}
	for i, a := range anchors {
		m.anchors[i] = hex(a)
	}
	return m
}

// Anchors sampled from matplotlib's maps at evenly spaced positions.
var maps = map[string]*Map{
	"inferno": newMap("inferno",
		0x000004, 0x1b0c41, 0x4a0c6b, 0x781c6d, 0xa52c60,
		0xcf4446, 0xed6925, 0xfb9b06, 0xf7d13d, 0xfcffa4),
	"magma": newMap("magma",
		0x000004, 0x180f3d, 0x440f76, 0x721f81, 0x9e2f7f,
		0xcd4071, 0xf1605d, 0xfd9668, 0xfeca8d, 0xfcfdbf),
	"plasma": newMap("plasma",
		0x0d0887, 0x46039f, 0x7201a8, 0x9c179e, 0xbd3786,
		0xd8576b, 0xed7953, 0xfb9f3a, 0xfdca26, 0xf0f921),
	"viridis": newMap("viridis",
		0x440154, 0x482878, 0x3e4a89, 0x31688e, 0x26828e,
		0x1f9e89, 0x35b779, 0x6ece58, 0xb5de2b, 0xfde725),
	// cyclic, both ends meet
	"twilight": newMap("twilight",
		0xe2d9e2, 0xa7bfcd, 0x6d94c2, 0x5e5ead, 0x47257a,
		0x2f1436, 0x6c1d4c, 0xa4475a, 0xc27f6e, 0xd5b4a7, 0xe2d9e2),
	"hsv": hsvMap(12),
}

// hsvMap samples the full hue circle at full saturation and value.
func hsvMap(steps int) *Map {
	m := &Map{Name: "hsv", anchors: make([]color.RGBA, steps+1)}
	for i := range m.anchors {
		m.anchors[i] = hsv(float64(i)/float64(steps), 1, 1)
	}
	return m
}

// Simple HSV → RGB
func hsv(h, s, v float64) color.RGBA {
	h = math.Mod(h, 1)
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}
