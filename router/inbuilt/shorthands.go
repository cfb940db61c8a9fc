package inbuilt

import (
	"github.com/indigo-web/petite/http/method"
	"github.com/indigo-web/petite/router"
)

// Get is a shortcut for registering GET-requests
func (r *Router) Get(path string, handler router.Handler) *Router {
	return r.AddRoute(method.GET, path, handler)
}

// Head is a shortcut for registering HEAD-requests
func (r *Router) Head(path string, handler router.Handler) *Router {
	return r.AddRoute(method.HEAD, path, handler)
}

// Post is a shortcut for registering POST-requests
func (r *Router) Post(path string, handler router.Handler) *Router {
	return r.AddRoute(method.POST, path, handler)
}

// Put is a shortcut for registering PUT-requests
func (r *Router) Put(path string, handler router.Handler) *Router {
	return r.AddRoute(method.PUT, path, handler)
}

// Delete is a shortcut for registering DELETE-requests
func (r *Router) Delete(path string, handler router.Handler) *Router {
	return r.AddRoute(method.DELETE, path, handler)
}

// Patch is a shortcut for registering PATCH-requests
func (r *Router) Patch(path string, handler router.Handler) *Router {
	return r.AddRoute(method.PATCH, path, handler)
}
