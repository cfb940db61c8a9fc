package inbuilt

import (
	"cmp"
	"slices"
	"sync"

	"github.com/indigo-web/petite/http"
	"github.com/indigo-web/petite/http/method"
	"github.com/indigo-web/petite/router"
	"github.com/indigo-web/petite/router/inbuilt/internal/radix"
)

var _ router.Router = new(Router)

// Router is a built-in implementation of router.Router interface. Routes are kept in a
// prefix tree of path segments, where a segment written as {name} is a wildcard capturing
// the whole remaining path.
//
// Registration and resolution are both safe for concurrent use: resolutions share a read
// lock, so they never block each other, whereas registering a route takes the write lock.
// Usually all the routes are registered before the server starts, however late
// registration is possible, too.
type Router struct {
	mu     sync.RWMutex
	tree   *radix.Node[router.Handler]
	routes map[Route]struct{}
}

// Route is a registered pair of method and path template.
type Route struct {
	Method method.Method `json:"method"`
	Path   string        `json:"path"`
}

// New constructs a new instance of inbuilt router
func New() *Router {
	return &Router{
		tree:   radix.New[router.Handler](),
		routes: make(map[Route]struct{}),
	}
}

// Resolve finds the handler for the method and path. Parameters captured by wildcards
// are returned even if no handler is registered for the method.
func (r *Router) Resolve(m method.Method, path string) (http.Params, router.Handler) {
	r.mu.RLock()
	params, handler, found := r.tree.Lookup(m, path)
	r.mu.RUnlock()

	if !found {
		return params, nil
	}

	return params, handler
}

// Routes returns all the registered routes ordered by path and method.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	routes := make([]Route, 0, len(r.routes))
	for route := range r.routes {
		routes = append(routes, route)
	}
	r.mu.RUnlock()

	slices.SortFunc(routes, func(a, b Route) int {
		return cmp.Or(cmp.Compare(a.Path, b.Path), cmp.Compare(a.Method, b.Method))
	})

	return routes
}
