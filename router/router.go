package router

import (
	"github.com/indigo-web/petite/http"
	"github.com/indigo-web/petite/http/method"
)

// Handler produces a response for the request. A nil response is treated as an empty
// 200 OK. Handlers must not let failures escape as panics: filesystem errors and alike
// are expected to be turned into a terminal response, e.g. 404.
type Handler func(request *http.Request) *http.Response

// Router resolves the method and path into the handler and the captured parameters. A nil
// handler means no route matched, which is not an error.
type Router interface {
	Resolve(m method.Method, path string) (http.Params, Handler)
}
