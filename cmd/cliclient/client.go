package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/coder/websocket"
	"github.com/marben/fractals"
	"github.com/marben/irpc"
)

var errBadImage = errors.New("malformed image from server")

// dial opens the connection irpc runs on: a websocket to ws://addr/rpc,
// or a plain tcp connection to addr.
func dial(ctx context.Context, network, addr string) (io.ReadWriteCloser, error) {
	switch network {
	case "ws":
		c, _, err := websocket.Dial(ctx, "ws://"+addr+"/rpc", nil)
		if err != nil {
			return nil, err
		}
		return websocket.NetConn(ctx, c, websocket.MessageBinary), nil
	case "tcp":
		var d net.Dialer
		return d.DialContext(ctx, "tcp", addr)
	default:
		return nil, fmt.Errorf("unknown network %q, want ws or tcp", network)
	}
}

// renderRemote calls the server's fractals.Renderer over conn.
// conn is closed on return, or as soon as ctx is done.
func renderRemote(ctx context.Context, conn io.ReadWriteCloser, p fractals.Params) (*image.RGBA, error) {
	ep := irpc.NewEndpoint(conn)
	defer ep.Close()
	stop := context.AfterFunc(ctx, func() { ep.Close() })
	defer stop()

	renderer, err := fractals.NewRendererIrpcClient(ep)
	if err != nil {
		return nil, fmt.Errorf("failed to create Renderer client: %w", err)
	}
	img, err := renderer.Render(p)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("renderer.Render: %w", context.Cause(ctx))
		}
		return nil, fmt.Errorf("renderer.Render: %w", err)
	}
	if err := checkImage(img, p.N); err != nil {
		return nil, err
	}
	return img, nil
}

// checkImage rejects images that are not the n×n picture asked for
// or whose pixel buffer does not match their bounds.
func checkImage(img *image.RGBA, n int) error {
	if img == nil {
		return fmt.Errorf("%w: no image", errBadImage)
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w <= 0 || h <= 0 || w > fractals.MaxResolution || h > fractals.MaxResolution {
		return fmt.Errorf("%w: %dx%d outside 1..%d", errBadImage, w, h, fractals.MaxResolution)
	}
	if w != n || h != n {
		return fmt.Errorf("%w: got %dx%d, asked for %dx%d", errBadImage, w, h, n, n)
	}
	if img.Stride != 4*w || len(img.Pix) != img.Stride*h {
		return fmt.Errorf("%w: stride %d and %d bytes for %dx%d", errBadImage, img.Stride, len(img.Pix), w, h)
	}
	return nil
}

// parseRegion accepts a region name or "xmin,xmax,ymin,ymax".
func parseRegion(s string) (fractals.Region, error) {
	if r, ok := fractals.RegionByName(s); ok {
		return r, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return fractals.Region{}, fmt.Errorf("%q is neither a region name (%s) nor xmin,xmax,ymin,ymax: %w",
			s, strings.Join(fractals.RegionNames(), ", "), fractals.ErrInvalidRegion)
	}
	var bounds [4]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return fractals.Region{}, fmt.Errorf("bound %d: %w", i, err)
		}
		bounds[i] = v
	}
	return fractals.Region{Xmin: bounds[0], Xmax: bounds[1], Ymin: bounds[2], Ymax: bounds[3]}, nil
}
