package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

var (
	ErrServerStarted    = errors.New("server already started")
	ErrServerNotStarted = errors.New("server not started")
)

type HttpServerParams struct {
	fx.In

	Config HttpConfig

	Handler http.Handler
	Logger  *zap.Logger
}

type HttpServer struct {
	host   string
	port   int
	server *http.Server
	log    *zap.Logger

	mu       sync.Mutex
	listener net.Listener
	done     chan struct{}
}

func NewHttpServer(params HttpServerParams) *HttpServer {
	config := params.Config.WithDefaults()

	log := params.Logger
	if log == nil {
		log = zap.NewNop()
	}

	// report panics to sentry, then let net/http recover as usual
	handler := sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(params.Handler)
	if config.H2c {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	server := &http.Server{
		Addr:    net.JoinHostPort(config.Host, fmt.Sprint(config.Port)),
		Handler: handler,
	}

	return &HttpServer{
		host:   config.Host,
		port:   config.Port,
		server: server,
		log:    log,
	}
}

func NewLifecycleServer(params HttpServerParams, lc fx.Lifecycle) *HttpServer {
	server := NewHttpServer(params)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return server.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
	return server
}

// Start binds the listener and serves in the background. Bind errors,
// such as the port already being in use, are returned to the caller.
// A server cannot be restarted after Shutdown.
func (s *HttpServer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return ErrServerStarted
	}

	cfg := net.ListenConfig{}

	listener, err := cfg.Listen(ctx, "tcp", s.server.Addr)
	if err != nil {
		s.log.With(zap.Error(err)).Error("failed to listen")
		return err
	}

	s.listener = listener
	s.done = make(chan struct{})

	s.log.Info("server running", zap.String("url", s.url()))

	go s.serve(listener, s.done)

	return nil
}

func (s *HttpServer) serve(listener net.Listener, done chan struct{}) {
	defer close(done)

	if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
		s.log.With(zap.Error(err)).Error("failed to serve")
	}
}

// Addr returns the bound address, or nil before Start.
func (s *HttpServer) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}

	return s.listener.Addr()
}

// URL returns the base url of the server. Once started, it reflects
// the bound port.
func (s *HttpServer) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.url()
}

func (s *HttpServer) url() string {
	port := s.port
	if s.listener != nil {
		if addr, ok := s.listener.Addr().(*net.TCPAddr); ok {
			port = addr.Port
		}
	}

	return fmt.Sprintf("http://%s/", net.JoinHostPort(s.host, fmt.Sprint(port)))
}

// Shutdown gracefully stops the server and waits for the serve loop
// to exit.
func (s *HttpServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done == nil {
		return ErrServerNotStarted
	}

	if err := s.server.Shutdown(ctx); err != nil {
		s.log.With(zap.Error(err)).Error("failed to shutdown")
		return err
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
