package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/marben/fractals"
	"github.com/marben/fractals/render"
	"github.com/marben/irpc"
)

// main is the entry point for the fractal server.
// Browsers get the interactive page on /, every parameter change is rendered
// server side and streamed back over the websocket as tiles.
// Go clients call fractals.Renderer over irpc, on /rpc or on the tcp port.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	port := flag.Int("port", 8080, "http port")
	rpcPort := flag.Int("rpc-port", 8081, "irpc tcp port, 0 disables it")
	origins := flag.String("origins", "", "comma separated websocket origin patterns accepted besides the page's own host")
	flag.Parse()

	st := &stats{}
	renderer := render.Renderer{OnRender: func(p fractals.Params, elapsed time.Duration) {
		n := st.rendered()
		log.Printf("render #%d: %s n=%d k=%d region=%+v took %s", n, p.Kind, p.N, p.K, p.Region, elapsed)
	}}

	var patterns []string
	if *origins != "" {
		patterns = strings.Split(*origins, ",")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	irpcServer := newRPCServer(newSession(renderer), st)
	websocketListener, httpServer := webServer(ctx, *port, patterns, renderer, st)

	errCh := make(chan error, 3)
	go func() {
		errCh <- fmt.Errorf("httpServer: %w", httpServer.ListenAndServe())
	}()
	go func() {
		errCh <- fmt.Errorf("irpcServer.Serve ws: %w", irpcServer.Serve(websocketListener))
	}()

	if *rpcPort != 0 {
		log.Printf("tcp listening on port: %d", *rpcPort)
		tcpListener, err := net.Listen("tcp", fmt.Sprintf(":%d", *rpcPort))
		if err != nil {
			return fmt.Errorf("net.Listen: %w", err)
		}
		go func() {
			errCh <- fmt.Errorf("irpcServer.Serve tcp: %w", irpcServer.Serve(tcpListener))
		}()
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down")
	if err := irpcServer.Close(); err != nil {
		log.Printf("irpcServer.Close: %v", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.Shutdown: %w", err)
	}
	return nil
}

// newRPCServer provides s as fractals.Renderer and fractals.ImgProvider over irpc.
// All rpc clients share s, so Image returns whatever any of them rendered last.
func newRPCServer(s *session, st *stats) *irpc.Server {
	srv := irpc.NewServer(irpc.WithOnConnect(func(ep *irpc.Endpoint) {
		log.Printf("got rpc connection from: %s", ep.RemoteAddr())
		st.incSessions()
		go func() {
			<-ep.Context().Done()
			st.decSessions()
			if cause := context.Cause(ep.Context()); !errors.Is(cause, irpc.ErrEndpointClosedByCounterpart) {
				log.Printf("rpc connection from %s: %v", ep.RemoteAddr(), cause)
			}
		}()
	}))

	// irpc services need to be registered to server so clients can use them
	srv.AddService(
		fractals.NewRendererIrpcService(s),
		fractals.NewImgProviderIrpcService(s),
	)
	return srv
}
