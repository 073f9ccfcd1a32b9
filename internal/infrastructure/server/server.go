package server

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"connectrpc.com/connect"
	connectcors "connectrpc.com/cors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	litterav1connect "github.com/litteralabs/littera/api/gen/littera/v1/litterav1connect"
	"github.com/litteralabs/littera/internal/adapter/connectrpc"
	"github.com/litteralabs/littera/internal/command"
)

// Server is the loopback Connect+gRPC endpoint a desktop or TUI front-end
// binds to for the Resource Model (§4.6). Unlike the teacher's gRPC-Gateway
// pairing of a separate grpc.Server and http.Server, Connect serves gRPC,
// gRPC-Web, and plain HTTP/JSON from the single mux below — there is only
// one listener to keep loopback-only (§4.1 "bind loopback only; never
// listen on a routable interface").
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	logger     *logrus.Logger
}

// New builds a Server exposing app's Command Surface over Connect. addr
// must resolve to a loopback interface; callers pass "127.0.0.1:0" to let
// the OS pick a port, then read Addr() for the one actually bound.
func New(app *command.App, logger *logrus.Logger, addr string) (*Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	if !isLoopback(lis.Addr()) {
		lis.Close()
		return nil, fmt.Errorf("refusing to bind non-loopback address %s", addr)
	}

	mux := http.NewServeMux()
	path, handler := litterav1connect.NewWorkServiceHandler(
		connectrpc.NewWorkServiceServer(app),
		connectInterceptors(),
	)
	mux.Handle(path, handler)

	corsHandler := withCORS(mux)

	return &Server{
		httpServer: &http.Server{Handler: h2c.NewHandler(corsHandler, &http2.Server{})},
		listener:   lis,
		logger:     logger,
	}, nil
}

// Addr returns the bound loopback address, useful when the listener was
// opened on port 0.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Serve blocks until the listener is closed or ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down resource-model server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// withCORS mirrors connectrpc.com/cors's recommended rs/cors configuration
// for browser-based front-ends talking Connect-Web over loopback HTTP.
func withCORS(h http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: connectcors.AllowedHeaders(),
		ExposedHeaders: connectcors.ExposedHeaders(),
	})
	return c.Handler(h)
}

// connectInterceptors wires the slog-backed request logger built in
// internal/infrastructure/server/logger.go onto every unary RPC.
func connectInterceptors() connect.HandlerOption {
	return connect.WithInterceptors(Logger())
}

func isLoopback(addr net.Addr) bool {
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok {
		return false
	}
	return tcpAddr.IP.IsLoopback()
}
