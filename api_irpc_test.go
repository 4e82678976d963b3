package fractals_test

import (
	"bytes"
	"image"
	"image/color"
	"net"
	"strings"
	"testing"

	"github.com/marben/fractals"
	"github.com/marben/irpc"
	"github.com/marben/irpc/irpcgen"
)

type stubRenderer struct {
	img *image.RGBA
	err error
	got chan fractals.Params
}

func (s stubRenderer) Render(p fractals.Params) (*image.RGBA, error) {
	s.got <- p
	return s.img, s.err
}

type stubProvider struct {
	img *image.RGBA
	p   fractals.Params
}

func (s stubProvider) Image() (*image.RGBA, fractals.Params, error) {
	if s.img == nil {
		return nil, fractals.Params{}, fractals.ErrNoImage
	}
	return s.img, s.p, nil
}

// pipeEndpoints returns the calling end of an in-memory connection
// whose other end serves services.
func pipeEndpoints(t *testing.T, services ...irpcgen.Service) *irpc.Endpoint {
	t.Helper()
	c1, c2 := net.Pipe()
	server := irpc.NewEndpoint(c1, irpc.WithEndpointServices(services...))
	client := irpc.NewEndpoint(c2)
	t.Cleanup(func() {
		client.Close()
		server.Close()
	})
	return client
}

func checkered(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 255, A: 255})
			}
		}
	}
	return img
}

func TestRendererIrpc(t *testing.T) {
	stub := stubRenderer{img: checkered(7, 5), got: make(chan fractals.Params, 1)}
	ep := pipeEndpoints(t, fractals.NewRendererIrpcService(stub))
	client, err := fractals.NewRendererIrpcClient(ep)
	if err != nil {
		t.Fatal(err)
	}

	p := fractals.Params{
		Kind:     fractals.KindJulia,
		CRe:      -0.8,
		CIm:      0.156,
		Region:   fractals.SeahorseValley,
		N:        7,
		K:        321,
		Colormap: "magma",
	}
	img, err := client.Render(p)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := <-stub.got; got != p {
		t.Errorf("server got %+v, want %+v", got, p)
	}
	if img.Rect != stub.img.Rect || img.Stride != stub.img.Stride || !bytes.Equal(img.Pix, stub.img.Pix) {
		t.Errorf("image %s stride %d differs from the one sent", img.Rect, img.Stride)
	}
}

func TestRendererIrpcError(t *testing.T) {
	stub := stubRenderer{err: fractals.ErrIterations, got: make(chan fractals.Params, 1)}
	ep := pipeEndpoints(t, fractals.NewRendererIrpcService(stub))
	client, err := fractals.NewRendererIrpcClient(ep)
	if err != nil {
		t.Fatal(err)
	}

	img, err := client.Render(fractals.DefaultParams(fractals.KindMandelbrot))
	<-stub.got
	if img != nil {
		t.Errorf("image %s returned with error", img.Rect)
	}
	// errors cross the wire as their message only
	if err == nil || err.Error() != fractals.ErrIterations.Error() {
		t.Errorf("err = %v, want %q", err, fractals.ErrIterations)
	}
}

func TestImgProviderIrpc(t *testing.T) {
	p := fractals.DefaultParams(fractals.KindJulia)
	full := stubProvider{img: checkered(3, 4), p: p}
	ep := pipeEndpoints(t, fractals.NewImgProviderIrpcService(full))
	client, err := fractals.NewImgProviderIrpcClient(ep)
	if err != nil {
		t.Fatal(err)
	}
	img, gp, err := client.Image()
	if err != nil || gp != p || !bytes.Equal(img.Pix, full.img.Pix) {
		t.Errorf("Image() = %+v, %v", gp, err)
	}

	ep = pipeEndpoints(t, fractals.NewImgProviderIrpcService(stubProvider{}))
	client, err = fractals.NewImgProviderIrpcClient(ep)
	if err != nil {
		t.Fatal(err)
	}
	img, _, err = client.Image()
	if img != nil || err == nil || !strings.Contains(err.Error(), fractals.ErrNoImage.Error()) {
		t.Errorf("empty provider: Image() = %v, %v", img, err)
	}
}
