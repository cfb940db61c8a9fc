package tcp

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/indigo-web/petite/config"
	"github.com/indigo-web/petite/http/status"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

const (
	minAcceptBackoff = 5 * time.Millisecond
	maxAcceptBackoff = time.Second
)

type OnConnection func(net.Conn)

// Server runs the accept loop and serves every connection in its own goroutine. The number
// of simultaneously served connections and the accept rate can both be limited.
type Server struct {
	sock     net.Listener
	log      *slog.Logger
	onConn   OnConnection
	sem      *semaphore.Weighted
	limiter  *rate.Limiter
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	mu       sync.Mutex
	conns    map[net.Conn]struct{}
	shutdown atomic.Bool
}

func NewServer(sock net.Listener, cfg config.NET, log *slog.Logger, onConn OnConnection) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		sock:   sock,
		log:    log,
		onConn: onConn,
		ctx:    ctx,
		cancel: cancel,
		conns:  make(map[net.Conn]struct{}),
	}

	if cfg.MaxConns > 0 {
		s.sem = semaphore.NewWeighted(cfg.MaxConns)
	}

	if cfg.AcceptRate > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.AcceptRate), max(cfg.AcceptBurst, 1))
	}

	return s
}

// Start runs the accept loop until the listener is closed. Temporary accept errors are
// logged and retried with a growing delay. After a shutdown, status.ErrShutdown is
// returned once all the connections are done.
func (s *Server) Start() error {
	var backoff time.Duration

	for {
		if err := s.acquire(); err != nil {
			s.wg.Wait()
			return status.ErrShutdown
		}

		conn, err := s.sock.Accept()
		if err != nil {
			s.release()

			if s.shutdown.Load() || errors.Is(err, net.ErrClosed) {
				s.wg.Wait()

				if s.shutdown.Load() {
					return status.ErrShutdown
				}

				return err
			}

			backoff = min(max(2*backoff, minAcceptBackoff), maxAcceptBackoff)
			s.log.Error("accept failed", slog.Any("error", err), slog.Duration("retry_in", backoff))

			select {
			case <-time.After(backoff):
			case <-s.ctx.Done():
			}

			continue
		}

		backoff = 0
		s.track(conn)
		s.wg.Add(1)
		go s.serve(conn)
	}
}

// acquire blocks until the connection is allowed to be accepted.
func (s *Server) acquire() error {
	if s.limiter != nil {
		if err := s.limiter.Wait(s.ctx); err != nil {
			return err
		}
	}

	if s.sem != nil {
		return s.sem.Acquire(s.ctx, 1)
	}

	return nil
}

func (s *Server) release() {
	if s.sem != nil {
		s.sem.Release(1)
	}
}

func (s *Server) serve(conn net.Conn) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("connection handler panicked", slog.Any("panic", r))
			_ = conn.Close()
		}

		s.untrack(conn)
		s.release()
		s.wg.Done()
	}()

	s.onConn(conn)
}

func (s *Server) track(conn net.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

func (s *Server) stopListener() error {
	s.shutdown.Store(true)
	s.cancel()

	return s.sock.Close()
}

// Stop shuts listener and ALL the connections down
func (s *Server) Stop() error {
	err := s.stopListener()

	s.mu.Lock()
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()

	return err
}

// GracefulShutdown stops a listener, but leaving all the connections free to end their
// lives peacefully
func (s *Server) GracefulShutdown() error {
	return s.stopListener()
}
