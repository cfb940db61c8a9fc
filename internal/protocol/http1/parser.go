package http1

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/indigo-web/petite/config"
	"github.com/indigo-web/petite/http"
	"github.com/indigo-web/petite/http/headers"
	"github.com/indigo-web/petite/http/method"
	"github.com/indigo-web/petite/http/proto"
	"github.com/indigo-web/petite/http/status"
	"github.com/indigo-web/utils/uf"
)

const (
	crlf     = "\r\n"
	crlfcrlf = "\r\n\r\n"

	minReadBufferSize = 512
)

// Parser reads a single request off a stream. It holds no per-request state, so a
// single instance can be shared among connections.
type Parser struct {
	cfg *config.Config
}

func NewParser(cfg *config.Config) *Parser {
	return &Parser{cfg: cfg}
}

// Parse reads the request head until the empty line and then exactly as many body bytes
// as Content-Length declares. A missing or malformed Content-Length means no body, so
// anything sent after the head is ignored. A body cut short by EOF is attached as is.
//
// Unrecognized methods and protocols don't fail the request and are preserved in the tokens.
func (p *Parser) Parse(r io.Reader) (*http.Request, error) {
	data, headEnd, err := p.readHead(r)
	if err != nil {
		return nil, err
	}

	request, err := parseHead(uf.B2S(data[:headEnd]))
	if err != nil {
		return nil, err
	}

	length, err := strconv.ParseUint(request.Header("Content-Length"), 10, 64)
	if err != nil || length == 0 {
		return request, nil
	}

	if length > p.cfg.Body.MaxSize {
		return nil, status.ErrBodyTooLarge
	}

	body := make([]byte, length)
	n := copy(body, data[headEnd:])
	if uint64(n) < length {
		m, err := io.ReadFull(r, body[n:])
		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			body = body[:n+m]
		default:
			return nil, fmt.Errorf("read body: %w", err)
		}
	}

	request.SetBody(body)

	return request, nil
}

// ParseBytes parses a request already held in memory.
func (p *Parser) ParseBytes(raw []byte) (*http.Request, error) {
	return p.Parse(bytes.NewReader(raw))
}

// readHead reads until the head terminator is met. Returned data might hold some bytes
// past the terminator, which are the beginning of the body. The head, including the
// terminator, ends at headEnd.
func (p *Parser) readHead(r io.Reader) (data []byte, headEnd int, err error) {
	var (
		maxSize = p.cfg.Headers.MaxSize
		chunk   = make([]byte, max(p.cfg.NET.ReadBufferSize, minReadBufferSize))
	)

	data = make([]byte, 0, len(chunk))

	for {
		n, readErr := r.Read(chunk)
		// the terminator might be split between two reads
		from := max(len(data)-len(crlfcrlf)+1, 0)
		data = append(data, chunk[:n]...)

		if idx := bytes.Index(data[from:], []byte(crlfcrlf)); idx != -1 {
			headEnd = from + idx + len(crlfcrlf)
			if headEnd > maxSize {
				return nil, 0, status.ErrHeaderFieldsTooLarge
			}

			return data, headEnd, nil
		}

		if len(data) >= maxSize {
			return nil, 0, status.ErrHeaderFieldsTooLarge
		}

		switch {
		case readErr == nil:
		case errors.Is(readErr, io.EOF):
			return nil, 0, status.ErrMissingHeaderTerminator
		default:
			return nil, 0, fmt.Errorf("read head: %w", readErr)
		}
	}
}

func parseHead(head string) (*http.Request, error) {
	requestLine, fields, found := strings.Cut(head, crlf)
	if !found {
		return nil, status.ErrMalformedRequestLine
	}

	tokens := strings.SplitN(requestLine, " ", 4)
	if len(tokens) < 3 {
		return nil, status.ErrMalformedRequestLine
	}

	request := &http.Request{
		Method:  method.ParseToken(tokens[0]),
		Path:    tokens[1],
		Proto:   proto.ParseToken(tokens[2]),
		Headers: headers.New(),
	}

	if len(request.Path) == 0 {
		request.Path = "/"
	}

	for len(fields) > 0 {
		var line string
		line, fields, _ = strings.Cut(fields, crlf)

		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		request.Headers[headers.Normalize(key)] = strings.TrimSpace(value)
	}

	return request, nil
}
