// Package handlers contains the endpoints served by the petite binary.
package handlers

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/indigo-web/petite/http"
	"github.com/indigo-web/petite/http/status"
	"github.com/indigo-web/petite/internal/metrics"
	"github.com/indigo-web/petite/router/inbuilt"
)

type Handlers struct {
	dir     string
	log     *slog.Logger
	metrics *metrics.Metrics
}

// New returns handlers serving files from the directory. The metrics may be nil, in which
// case /metrics responds with an empty body.
func New(dir string, log *slog.Logger, m *metrics.Metrics) *Handlers {
	return &Handlers{
		dir:     dir,
		log:     log,
		metrics: m,
	}
}

// Register binds all the handlers to their routes.
func (h *Handlers) Register(r *inbuilt.Router) *inbuilt.Router {
	return r.
		Get("/", h.Root).
		Get("/echo/{cont}", h.Echo).
		Get("/user-agent", h.UserAgent).
		Get("/files/{name}", h.GetFile).
		Post("/files/{name}", h.PostFile).
		Get("/metrics", h.Metrics)
}

func (h *Handlers) Root(*http.Request) *http.Response {
	return http.NewResponse()
}

// Echo responds with whatever follows the /echo/ prefix.
func (h *Handlers) Echo(r *http.Request) *http.Response {
	return http.NewResponse().
		String(r.Params["cont"]).
		ContentLength()
}

// UserAgent responds with the User-Agent request header.
func (h *Handlers) UserAgent(r *http.Request) *http.Response {
	return http.NewResponse().
		String(r.Header("User-Agent")).
		ContentLength()
}

// GetFile responds with the file contents. Any failure, including names pointing outside
// the directory, results in 404 Not Found.
func (h *Handlers) GetFile(r *http.Request) *http.Response {
	path, ok := h.path(r)
	if !ok {
		return http.NewResponse().Code(status.NotFound)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		h.log.Debug("cannot read file", slog.String("conn", r.ConnID), slog.Any("error", err))
		return http.NewResponse().Code(status.NotFound)
	}

	return http.NewResponse().
		Bytes(data).
		ContentLength()
}

// PostFile stores the request body under the name, replacing the file if it exists.
func (h *Handlers) PostFile(r *http.Request) *http.Response {
	path, ok := h.path(r)
	if !ok {
		return http.NewResponse().Code(status.NotFound)
	}

	if err := os.WriteFile(path, r.Body, 0o644); err != nil {
		h.log.Warn("cannot write file", slog.String("conn", r.ConnID), slog.Any("error", err))
		return http.NewResponse().Code(status.NotFound)
	}

	return http.NewResponse().Code(status.Created)
}

// Metrics renders the server metrics in the Prometheus text format.
func (h *Handlers) Metrics(r *http.Request) *http.Response {
	response := http.NewResponse()
	if err := h.metrics.Render(response); err != nil {
		h.log.Error("cannot render metrics", slog.String("conn", r.ConnID), slog.Any("error", err))
		return http.NewResponse().Code(status.InternalServerError)
	}

	return response.ContentLength()
}

func (h *Handlers) path(r *http.Request) (string, bool) {
	name := r.Params["name"]
	if !filepath.IsLocal(name) {
		return "", false
	}

	return filepath.Join(h.dir, name), true
}
