// Package render turns fractal parameters into colour-mapped images.
package render

import (
	"fmt"
	"image"
	"time"

	"github.com/marben/fractals"
	"github.com/marben/fractals/colormap"
)

// Renderer computes the divergence matrix for a parameter set and paints it.
// OnRender, when set, is called after every successful render.
type Renderer struct {
	OnRender func(p fractals.Params, elapsed time.Duration)
}

var _ fractals.Renderer = Renderer{}

// Render validates p, runs the escape-time engine and paints the result.
// An empty colormap name selects the default map for p.Kind.
func (r Renderer) Render(p fractals.Params) (*image.RGBA, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	name := p.Colormap
	if name == "" {
		name = fractals.DefaultParams(p.Kind).Colormap
	}
	cm, err := colormap.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("colormap: %w", err)
	}

	start := time.Now()
	m := p.Compute()
	img := colormap.Paint(m, cm)

	if r.OnRender != nil {
		r.OnRender(p, time.Since(start))
	}
	return img, nil
}
