package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/indigo-web/petite/config"
	"github.com/indigo-web/petite/http"
	"github.com/indigo-web/petite/http/coding"
	"github.com/indigo-web/petite/http/status"
	"github.com/indigo-web/petite/internal/metrics"
	"github.com/indigo-web/petite/internal/protocol/http1"
	"github.com/indigo-web/petite/router"
	"github.com/oklog/ulid/v2"
)

// Server serves exactly one request per connection: parse, route, respond, close.
type Server struct {
	cfg         *config.Config
	router      router.Router
	log         *slog.Logger
	metrics     *metrics.Metrics
	parser      *http1.Parser
	compressor  *coding.Compressor
	serializers sync.Pool
}

// NewServer returns a new connection handler. The metrics may be nil.
func NewServer(
	cfg *config.Config, r router.Router, log *slog.Logger, m *metrics.Metrics,
) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		router:  r,
		log:     log,
		metrics: m,
		parser:  http1.NewParser(cfg),
	}

	s.serializers.New = func() any {
		return http1.NewSerializer(make([]byte, 0, cfg.NET.ReadBufferSize))
	}

	if cfg.Encoding.Compress {
		compressor, err := coding.NewCompressor(cfg.Encoding.Level)
		if err != nil {
			return nil, fmt.Errorf("compression: %w", err)
		}

		s.compressor = compressor
	}

	return s, nil
}

// HandleConn serves the connection and closes it afterwards. If the request cannot be
// parsed, the connection is closed without any response.
func (s *Server) HandleConn(conn net.Conn) {
	start := time.Now()
	id := ulid.Make().String()
	log := s.log.With(slog.String("conn", id), slog.Any("remote", conn.RemoteAddr()))

	s.metrics.ConnOpened()
	defer func() {
		_ = conn.Close()
		s.metrics.ConnClosed()
		log.Debug("connection closed")
	}()

	log.Debug("connection accepted")

	if timeout := s.cfg.NET.ReadTimeout; timeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(timeout))
	}

	request, err := s.parser.Parse(conn)
	if err != nil {
		s.metrics.ParseError()

		var httpErr status.HTTPError
		if errors.As(err, &httpErr) {
			log.Warn("malformed request", slog.Any("error", err))
		} else {
			log.Error("cannot read request", slog.Any("error", err))
		}

		return
	}

	request.Remote = conn.RemoteAddr()
	request.ConnID = id
	response := s.Handle(request)

	if timeout := s.cfg.NET.WriteTimeout; timeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(timeout))
	}

	serializer := s.serializers.Get().(*http1.Serializer)
	err = serializer.Write(conn, response)
	s.serializers.Put(serializer)

	code := response.Reveal().Code
	s.metrics.Request(request.Method.String(), int(code), time.Since(start))

	if err != nil {
		log.Error("cannot write response", slog.Any("error", err))
		return
	}

	log.Debug("request served",
		slog.String("method", request.Method.String()),
		slog.String("path", request.Path),
		slog.Int("code", int(code)),
	)
}

// Handle routes the request and produces the response to be sent. Unmatched requests
// result in an empty 404 Not Found response. Otherwise, the handler's response gets its
// Content-Encoding negotiated and the Content-Type enforced.
func (s *Server) Handle(request *http.Request) *http.Response {
	params, handler := s.router.Resolve(request.Method.Method, request.Path)
	if handler == nil {
		return http.Error(status.ErrNotFound)
	}

	request.Params = params
	response := s.invoke(handler, request)

	if accept, found := request.Headers.Get("accept-encoding"); found {
		if encoding, ok := coding.Negotiate(accept); ok {
			s.encode(request, response, encoding)
		}
	}

	return response.Header("Content-Type", s.cfg.Headers.DefaultContentType)
}

// invoke calls the handler, turning panics into 500 Internal Server Error and nil
// responses into 200 OK.
func (s *Server) invoke(handler router.Handler, request *http.Request) (response *http.Response) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("handler panicked",
				slog.String("conn", request.ConnID),
				slog.String("path", request.Path),
				slog.Any("panic", r),
			)
			response = http.Error(status.ErrInternalServerError)
		}
	}()

	return notNil(request, handler(request))
}

func (s *Server) encode(request *http.Request, response *http.Response, encoding coding.Encoding) {
	fields := response.Reveal()

	if s.compressor != nil && len(fields.Body) > 0 {
		compressed, err := s.compressor.Compress(encoding.Kind, fields.Body)
		if err != nil {
			s.log.Error("cannot compress response",
				slog.String("conn", request.ConnID),
				slog.String("encoding", encoding.String()),
				slog.Any("error", err),
			)
			return
		}

		response.Bytes(compressed)
		if fields.Headers.Has("Content-Length") {
			response.Header("Content-Length", strconv.Itoa(len(compressed)))
		}
	}

	response.Header("Content-Encoding", encoding.String())
}

func notNil(req *http.Request, resp *http.Response) *http.Response {
	if resp != nil {
		return resp
	}

	return http.Respond(req)
}
