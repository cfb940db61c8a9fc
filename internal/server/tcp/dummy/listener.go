package dummy

import (
	"net"
	"sync"
)

type accepted struct {
	conn net.Conn
	err  error
}

// Listener hands out the pushed connections and errors in order. After being closed,
// it returns net.ErrClosed.
type Listener struct {
	queue  chan accepted
	closed chan struct{}
	once   sync.Once
}

func NewListener() *Listener {
	return &Listener{
		queue:  make(chan accepted, 64),
		closed: make(chan struct{}),
	}
}

// Push enqueues a connection to be accepted.
func (l *Listener) Push(conn net.Conn) {
	l.queue <- accepted{conn: conn}
}

// PushErr enqueues an error to be returned by Accept.
func (l *Listener) PushErr(err error) {
	l.queue <- accepted{err: err}
}

func (l *Listener) Accept() (net.Conn, error) {
	select {
	case <-l.closed:
		return nil, net.ErrClosed
	default:
	}

	select {
	case a := <-l.queue:
		return a.conn, a.err
	case <-l.closed:
		return nil, net.ErrClosed
	}
}

func (l *Listener) Close() error {
	l.once.Do(func() {
		close(l.closed)
	})

	return nil
}

func (l *Listener) Addr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 4221}
}
