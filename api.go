package fractals

import (
	"errors"
	"image"
)

// ErrNoImage is returned by an ImgProvider before its first successful render.
var ErrNoImage = errors.New("no image rendered yet")

// Renderer turns a parameter set into a colour-mapped image.
type Renderer interface {
	Render(p Params) (*image.RGBA, error)
}

// ImgProvider hands out the most recently rendered image and its parameters.
type ImgProvider interface {
	Image() (*image.RGBA, Params, error)
}
