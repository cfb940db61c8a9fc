package petite

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/indigo-web/petite/config"
	"github.com/indigo-web/petite/internal/address"
	"github.com/indigo-web/petite/internal/logging"
	"github.com/indigo-web/petite/internal/metrics"
	httpserver "github.com/indigo-web/petite/internal/server/http"
	"github.com/indigo-web/petite/internal/server/tcp"
	"github.com/indigo-web/petite/router"
	"github.com/indigo-web/petite/router/inbuilt"
)

var ErrNotStarted = errors.New("petite: the app isn't running")

// App ties the accept loop, the connection handler and the router together.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	metrics *metrics.Metrics
	hooks   hooks

	mu       sync.Mutex
	server   *tcp.Server
	listener net.Listener
}

// New returns a new App instance listening on the addr.
func New(addr string) *App {
	cfg := config.Default()
	cfg.NET.Addr = addr

	return &App{
		cfg: cfg,
		log: logging.Nop(),
	}
}

// Tune replaces the config. The address passed into New is preserved, unless the config
// sets its own one.
func (a *App) Tune(cfg *config.Config) *App {
	if len(cfg.NET.Addr) == 0 {
		cfg.NET.Addr = a.cfg.NET.Addr
	}

	a.cfg = cfg
	return a
}

// Logger sets the logger. By default, nothing is logged.
func (a *App) Logger(log *slog.Logger) *App {
	a.log = log
	return a
}

// Metrics enables metrics collection.
func (a *App) Metrics(m *metrics.Metrics) *App {
	a.metrics = m
	return a
}

// NotifyOnStart calls the callback at the moment, when the server is started. However,
// it isn't strongly guaranteed that it'll be able to accept new connections immediately
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment, when the server is down. It's guaranteed,
// that at the moment as the callback is called, the server isn't able to accept any new
// connections and all the clients are already disconnected
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Serve starts the web-application. If nil is passed instead of a router, empty inbuilt will
// be used. The call blocks until the app is stopped, returning status.ErrShutdown in that case.
func (a *App) Serve(r router.Router) error {
	addr, err := address.Normalize(a.cfg.NET.Addr)
	if err != nil {
		return fmt.Errorf("petite: listen: %w", err)
	}

	sock, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("petite: listen: %w", err)
	}

	return a.ServeListener(sock, r)
}

// ServeListener is the same as Serve, but uses the passed listener.
func (a *App) ServeListener(sock net.Listener, r router.Router) error {
	if r == nil {
		r = inbuilt.New()
	}

	httpServer, err := httpserver.NewServer(a.cfg, r, a.log, a.metrics)
	if err != nil {
		_ = sock.Close()
		return fmt.Errorf("petite: %w", err)
	}

	server := tcp.NewServer(sock, a.cfg.NET, a.log, httpServer.HandleConn)

	a.mu.Lock()
	a.server, a.listener = server, sock
	a.mu.Unlock()

	a.log.Info("listening", slog.String("addr", sock.Addr().String()))
	callIfNotNil(a.hooks.OnStart)
	err = server.Start()
	a.log.Info("stopped", slog.Any("reason", err))
	callIfNotNil(a.hooks.OnStop)

	return err
}

// Addr returns the address the app is listening on, or nil if it isn't started yet.
func (a *App) Addr() net.Addr {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.listener == nil {
		return nil
	}

	return a.listener.Addr()
}

// GracefulStop stops accepting new connections, but lets the served ones finish.
//
// NOTE: the call isn't blocking. Serve returns only after all the connections are done
func (a *App) GracefulStop() error {
	server, err := a.running()
	if err != nil {
		return err
	}

	return server.GracefulShutdown()
}

// Stop stops the whole application immediately, closing all the connections.
func (a *App) Stop() error {
	server, err := a.running()
	if err != nil {
		return err
	}

	return server.Stop()
}

func (a *App) running() (*tcp.Server, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server == nil {
		return nil, ErrNotStarted
	}

	return a.server, nil
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
