package dummy

import (
	"bytes"
	"net"
	"sync"
	"time"
)

// Conn is an in-memory net.Conn. Reads are served from the preset data, writes are
// accumulated and can be inspected afterwards.
type Conn struct {
	mu            sync.Mutex
	in            *bytes.Reader
	written       []byte
	closed        bool
	remote        net.Addr
	readDeadline  time.Time
	writeDeadline time.Time
}

func NewConn(data []byte) *Conn {
	return &Conn{
		in:     bytes.NewReader(data),
		remote: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 50000},
	}
}

// NewNopConn returns a connection without anything to read.
func NewNopConn() *Conn {
	return NewConn(nil)
}

func (c *Conn) Read(b []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, net.ErrClosed
	}

	return c.in.Read(b)
}

func (c *Conn) Write(b []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, net.ErrClosed
	}

	c.written = append(c.written, b...)
	return len(b), nil
}

func (c *Conn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	return nil
}

// Written returns everything that was written into the connection.
func (c *Conn) Written() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.written
}

// Closed tells whether the connection was closed.
func (c *Conn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

// Deadlines returns the last read and write deadlines set.
func (c *Conn) Deadlines() (read, write time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.readDeadline, c.writeDeadline
}

func (c *Conn) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 4221}
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.remote
}

func (c *Conn) SetDeadline(t time.Time) error {
	c.mu.Lock()
	c.readDeadline, c.writeDeadline = t, t
	c.mu.Unlock()

	return nil
}

func (c *Conn) SetReadDeadline(t time.Time) error {
	c.mu.Lock()
	c.readDeadline = t
	c.mu.Unlock()

	return nil
}

func (c *Conn) SetWriteDeadline(t time.Time) error {
	c.mu.Lock()
	c.writeDeadline = t
	c.mu.Unlock()

	return nil
}
