package coding

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
)

// Compressor applies a negotiated coding to response bodies. gzip writers are pooled, as
// allocating one per response is fairly expensive.
type Compressor struct {
	level int
	pool  sync.Pool
}

// NewCompressor validates the level in advance, so Compress never fails because of it.
func NewCompressor(level int) (*Compressor, error) {
	if _, err := gzip.NewWriterLevel(io.Discard, level); err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}

	c := &Compressor{level: level}
	c.pool.New = func() any {
		// the level is already validated
		w, _ := gzip.NewWriterLevel(nil, c.level)
		return w
	}

	return c, nil
}

// Compress returns the encoded copy of the data. The input slice is left untouched.
func (c *Compressor) Compress(kind Kind, data []byte) ([]byte, error) {
	switch kind {
	case GZIP:
		return c.gzip(data)
	default:
		return nil, fmt.Errorf("compress: unsupported coding %q", kind.String())
	}
}

func (c *Compressor) gzip(data []byte) ([]byte, error) {
	var buff bytes.Buffer
	w := c.pool.Get().(*gzip.Writer)
	defer c.pool.Put(w)
	w.Reset(&buff)

	if _, err := w.Write(data); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}
