package inbuilt

import (
	"fmt"
	"slices"

	"github.com/indigo-web/petite/http/method"
	"github.com/indigo-web/petite/router"
	"github.com/indigo-web/petite/router/inbuilt/internal/radix"
)

// AddRoute is a base method for registering handlers. Registering the same method and
// path once again silently replaces the handler.
//
// Path segments wrapped in figure braces, e.g. /echo/{cont}, are wildcards. A wildcard
// doesn't match a single segment, but the whole rest of the path, so requesting
// /echo/hello/world binds cont to "hello/world". Wildcards at the same position share
// the name of the one registered last.
//
// Panics if the method is method.Unknown or the handler is nil.
func (r *Router) AddRoute(m method.Method, path string, handler router.Handler) *Router {
	if !slices.Contains(method.List, m) {
		panic(fmt.Errorf("cannot register %s: unknown method", path))
	}

	if handler == nil {
		panic(fmt.Errorf("cannot register %s %s: nil handler", m, path))
	}

	r.mu.Lock()
	r.tree.Insert(m, path, handler)
	r.routes[Route{Method: m, Path: normalize(path)}] = struct{}{}
	r.mu.Unlock()

	return r
}

func normalize(path string) string {
	normalized := ""
	for _, segment := range radix.Segments(path) {
		normalized += "/" + segment
	}

	if len(normalized) == 0 {
		return "/"
	}

	return normalized
}
