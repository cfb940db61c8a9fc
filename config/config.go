package config

import (
	"time"

	"github.com/klauspost/compress/gzip"
)

type (
	NET struct {
		// Addr is the TCP address the server listens on.
		Addr string `koanf:"addr"`
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket
		ReadBufferSize int `koanf:"readbuffersize"`
		// MaxConns limits how many connections are served simultaneously. When the limit
		// is reached, the accept loop waits until one of the served connections is closed.
		// 0 disables the limit.
		MaxConns int64 `koanf:"maxconns" test:"nullable"`
		// AcceptRate limits how many connections per second can be accepted. 0 disables
		// the limit.
		AcceptRate float64 `koanf:"acceptrate" test:"nullable"`
		// AcceptBurst is the number of connections that may be accepted at once, exceeding
		// the AcceptRate. Has no effect if AcceptRate is disabled.
		AcceptBurst int `koanf:"acceptburst"`
		// ReadTimeout limits how long the request may be transmitted. 0 disables the deadline.
		ReadTimeout time.Duration `koanf:"readtimeout" test:"nullable"`
		// WriteTimeout limits how long the response may be transmitted. 0 disables the deadline.
		WriteTimeout time.Duration `koanf:"writetimeout" test:"nullable"`
	}

	Headers struct {
		// MaxSize limits the size of the request line together with the header fields,
		// including the terminating empty line.
		MaxSize int `koanf:"maxsize"`
		// DefaultContentType is enforced on every response produced by a route handler.
		DefaultContentType string `koanf:"defaultcontenttype"`
	}

	Body struct {
		// MaxSize describes the maximal size of a body, that can be processed. Requests
		// declaring a larger Content-Length are discarded.
		MaxSize uint64 `koanf:"maxsize"`
	}

	Encoding struct {
		// Compress enables actual gzip compression of response bodies if the client
		// accepts it. Otherwise, only the Content-Encoding header is set.
		Compress bool `koanf:"compress" test:"nullable"`
		// Level is the gzip compression level, from gzip.HuffmanOnly to gzip.BestCompression.
		Level int `koanf:"level"`
	}

	Log struct {
		// Level is one of debug, info, warn and error.
		Level string `koanf:"level"`
		// Format is either json or text.
		Format string `koanf:"format"`
	}

	Files struct {
		// Directory is the root for the files handlers.
		Directory string `koanf:"directory"`
	}
)

// Config holds settings used across various parts of petite, mainly restrictions, limitations
// and toggles.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	NET      NET      `koanf:"net"`
	Headers  Headers  `koanf:"headers"`
	Body     Body     `koanf:"body"`
	Encoding Encoding `koanf:"encoding"`
	Log      Log      `koanf:"log"`
	Files    Files    `koanf:"files"`
}

// Default returns default config. Those are initially well-balanced, however maximal defaults
// are pretty permitting.
func Default() *Config {
	return &Config{
		NET: NET{
			Addr:           "localhost:4221",
			ReadBufferSize: 4 * 1024, // 4kb is more than enough for ordinary requests.
			MaxConns:       1024,
			AcceptBurst:    64,
		},
		Headers: Headers{
			MaxSize:            16 * 1024, // there might be extremely long cookies.
			DefaultContentType: "text/plain",
		},
		Body: Body{
			MaxSize: 64 * 1024 * 1024, // 64 megabytes
		},
		Encoding: Encoding{
			Level: gzip.DefaultCompression,
		},
		Log: Log{
			Level:  "info",
			Format: "json",
		},
		Files: Files{
			Directory: ".",
		},
	}
}
