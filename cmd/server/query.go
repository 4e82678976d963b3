package main

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/marben/fractals"
)

// paramsFromQuery overlays query values on the defaults for the requested kind.
// Accepted keys: kind, cre, cim, region, xmin, xmax, ymin, ymax, n, k, colormap.
func paramsFromQuery(q url.Values) (fractals.Params, error) {
	kind := fractals.Kind(q.Get("kind"))
	if kind == "" {
		kind = fractals.KindMandelbrot
	}
	p := fractals.DefaultParams(kind)
	p.Kind = kind

	if name := q.Get("region"); name != "" {
		r, ok := fractals.RegionByName(name)
		if !ok {
			return p, fmt.Errorf("region %q: %w", name, fractals.ErrInvalidRegion)
		}
		p.Region = r
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"cre", &p.CRe},
		{"cim", &p.CIm},
		{"xmin", &p.Region.Xmin},
		{"xmax", &p.Region.Xmax},
		{"ymin", &p.Region.Ymin},
		{"ymax", &p.Region.Ymax},
	}
	for _, f := range floats {
		v := q.Get(f.key)
		if v == "" {
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = x
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"n", &p.N},
		{"k", &p.K},
	}
	for _, f := range ints {
		v := q.Get(f.key)
		if v == "" {
			continue
		}
		x, err := strconv.Atoi(v)
		if err != nil {
			return p, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = x
	}

	if cm := q.Get("colormap"); cm != "" {
		p.Colormap = cm
	}
	return p, nil
}
