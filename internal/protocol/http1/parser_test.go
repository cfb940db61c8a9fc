package http1

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/petite/config"
	"github.com/indigo-web/petite/http/method"
	"github.com/indigo-web/petite/http/proto"
	"github.com/indigo-web/petite/http/status"
	"github.com/stretchr/testify/require"
)

func getParser() *Parser {
	return NewParser(config.Default())
}

func generateHeaders(n int) (headers []string) {
	for i := 0; i < n; i++ {
		headers = append(headers, "X-"+uniuri.New()+": "+uniuri.NewLen(16))
	}

	return headers
}

func generateRequest(requestLine string, headers []string, body string) []byte {
	request := requestLine + "\r\n"
	for _, header := range headers {
		request += header + "\r\n"
	}

	return []byte(request + "\r\n" + body)
}

func TestParser(t *testing.T) {
	t.Run("simple GET", func(t *testing.T) {
		request, err := getParser().ParseBytes([]byte("GET / HTTP/1.1\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, method.GET, request.Method.Method)
		require.Equal(t, "/", request.Path)
		require.Equal(t, proto.HTTP11, request.Proto.Proto)
		require.Empty(t, request.Headers)
		require.False(t, request.HasBody())
	})

	t.Run("body round-trip", func(t *testing.T) {
		body := uniuri.NewLen(100)
		raw := generateRequest(
			"GET /foo HTTP/1.1",
			[]string{"Content-Length: 100", "Host: localhost"},
			body,
		)
		request, err := getParser().ParseBytes(raw)
		require.NoError(t, err)
		require.Equal(t, method.GET, request.Method.Method)
		require.Equal(t, "/foo", request.Path)
		require.Equal(t, "localhost", request.Header("host"))
		require.Equal(t, body, string(request.Body))
	})

	t.Run("binary body", func(t *testing.T) {
		body := []byte("\x00\xff\r\n\r\nX")
		raw := generateRequest("POST /files/blob HTTP/1.1", []string{"Content-Length: 7"}, string(body))
		request, err := getParser().ParseBytes(raw)
		require.NoError(t, err)
		require.True(t, bytes.Equal(body, request.Body), "%q", request.Body)

		request, err = getParser().Parse(iotest.OneByteReader(bytes.NewReader(raw)))
		require.NoError(t, err)
		require.True(t, bytes.Equal(body, request.Body), "%q", request.Body)
	})

	t.Run("headers", func(t *testing.T) {
		headers := generateHeaders(10)
		request, err := getParser().ParseBytes(generateRequest("GET / HTTP/1.1", headers, ""))
		require.NoError(t, err)
		require.Len(t, request.Headers, len(headers))

		for _, header := range headers {
			key, value, _ := strings.Cut(header, ": ")
			require.Equal(t, value, request.Headers[strings.ToLower(key)])
		}
	})

	t.Run("header normalization", func(t *testing.T) {
		raw := generateRequest("GET / HTTP/1.1", []string{
			"  User-AGENT :   curl/8.0  ",
			"Host:localhost:8080",
			"no colon here",
			"X-Dup: first",
			"x-dup: second",
		}, "")
		request, err := getParser().ParseBytes(raw)
		require.NoError(t, err)
		require.Equal(t, map[string]string{
			"user-agent": "curl/8.0",
			"host":       "localhost:8080",
			"x-dup":      "second",
		}, map[string]string(request.Headers))
	})

	t.Run("unknown method and protocol", func(t *testing.T) {
		request, err := getParser().ParseBytes([]byte("BREW /pot HTCPCP/1.0\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, method.Unknown, request.Method.Method)
		require.Equal(t, "BREW", request.Method.Raw)
		require.Equal(t, proto.Unknown, request.Proto.Proto)
		require.Equal(t, "HTCPCP/1.0", request.Proto.Raw)
		require.Equal(t, "/pot", request.Path)
	})

	t.Run("empty target", func(t *testing.T) {
		request, err := getParser().ParseBytes([]byte("GET  HTTP/1.1\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, "/", request.Path)
	})

	t.Run("query is kept", func(t *testing.T) {
		request, err := getParser().ParseBytes([]byte("GET /search?q=petite HTTP/1.1\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, "/search?q=petite", request.Path)
	})

	t.Run("no content length", func(t *testing.T) {
		raw := generateRequest("POST /files/a HTTP/1.1", nil, "trailing bytes")
		request, err := getParser().ParseBytes(raw)
		require.NoError(t, err)
		require.Nil(t, request.Body)
	})

	t.Run("malformed content length", func(t *testing.T) {
		raw := generateRequest("POST / HTTP/1.1", []string{"Content-Length: five"}, "hello")
		request, err := getParser().ParseBytes(raw)
		require.NoError(t, err)
		require.Nil(t, request.Body)
	})

	t.Run("zero content length", func(t *testing.T) {
		raw := generateRequest("POST / HTTP/1.1", []string{"Content-Length: 0"}, "hello")
		request, err := getParser().ParseBytes(raw)
		require.NoError(t, err)
		require.Nil(t, request.Body)
	})

	t.Run("excessive bytes are discarded", func(t *testing.T) {
		raw := generateRequest("POST / HTTP/1.1", []string{"Content-Length: 5"}, "hello world")
		request, err := getParser().ParseBytes(raw)
		require.NoError(t, err)
		require.Equal(t, "hello", string(request.Body))
	})

	t.Run("truncated body", func(t *testing.T) {
		raw := generateRequest("POST / HTTP/1.1", []string{"Content-Length: 100"}, "hello")
		request, err := getParser().ParseBytes(raw)
		require.NoError(t, err)
		require.Equal(t, "hello", string(request.Body))
	})
}

func TestParser_Partial(t *testing.T) {
	body := uniuri.NewLen(5000)
	raw := generateRequest(
		"POST /echo/hello HTTP/1.1",
		append(generateHeaders(20), fmt.Sprintf("Content-Length: %d", len(body))),
		body,
	)

	for _, reader := range []struct {
		Name   string
		Reader func([]byte) io.Reader
	}{
		{"one byte", func(b []byte) io.Reader { return iotest.OneByteReader(bytes.NewReader(b)) }},
		{"half", func(b []byte) io.Reader { return iotest.HalfReader(bytes.NewReader(b)) }},
		{"data with EOF", func(b []byte) io.Reader { return iotest.DataErrReader(bytes.NewReader(b)) }},
	} {
		t.Run(reader.Name, func(t *testing.T) {
			request, err := getParser().Parse(reader.Reader(raw))
			require.NoError(t, err)
			require.Equal(t, method.POST, request.Method.Method)
			require.Equal(t, "/echo/hello", request.Path)
			require.Len(t, request.Headers, 21)
			require.Equal(t, body, string(request.Body))
		})
	}
}

func TestParser_Errors(t *testing.T) {
	t.Run("short request line", func(t *testing.T) {
		for _, line := range []string{"GET /", "GET", "", "GET/HTTP/1.1"} {
			_, err := getParser().ParseBytes([]byte(line + "\r\n\r\n"))
			require.ErrorIs(t, err, status.ErrMalformedRequestLine, line)
		}
	})

	t.Run("missing terminator", func(t *testing.T) {
		_, err := getParser().ParseBytes([]byte("GET / HTTP/1.1\r\nHost: localhost\r\n"))
		require.ErrorIs(t, err, status.ErrMissingHeaderTerminator)
	})

	t.Run("empty stream", func(t *testing.T) {
		_, err := getParser().ParseBytes(nil)
		require.ErrorIs(t, err, status.ErrMissingHeaderTerminator)
	})

	t.Run("too large headers", func(t *testing.T) {
		cfg := config.Default()
		cfg.Headers.MaxSize = 256
		raw := generateRequest("GET / HTTP/1.1", generateHeaders(20), "")
		_, err := NewParser(cfg).ParseBytes(raw)
		require.ErrorIs(t, err, status.ErrHeaderFieldsTooLarge)
	})

	t.Run("too large body", func(t *testing.T) {
		cfg := config.Default()
		cfg.Body.MaxSize = 10
		raw := generateRequest("POST / HTTP/1.1", []string{"Content-Length: 11"}, "hello world")
		_, err := NewParser(cfg).ParseBytes(raw)
		require.ErrorIs(t, err, status.ErrBodyTooLarge)
	})

	t.Run("io error", func(t *testing.T) {
		ioErr := errors.New("connection reset")
		_, err := getParser().Parse(iotest.ErrReader(ioErr))
		require.ErrorIs(t, err, ioErr)
	})

	t.Run("io error in body", func(t *testing.T) {
		ioErr := errors.New("connection reset")
		head := generateRequest("POST / HTTP/1.1", []string{"Content-Length: 10"}, "hello")
		_, err := getParser().Parse(io.MultiReader(bytes.NewReader(head), iotest.ErrReader(ioErr)))
		require.ErrorIs(t, err, ioErr)
	})
}
