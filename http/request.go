package http

import (
	"net"

	"github.com/indigo-web/petite/http/headers"
	"github.com/indigo-web/petite/http/method"
	"github.com/indigo-web/petite/http/proto"
)

// Params are the values bound to wildcard segments of the matched route.
type Params = map[string]string

// Request represents HTTP request
type Request struct {
	// Method is the method token. Unrecognized methods are kept with their original text,
	// however they never match any route.
	Method method.Token
	// Path is the origin-form request target as received, "/" if it was empty. Query isn't
	// separated from it.
	Path string
	// Proto is the protocol token. Unsupported versions don't fail the request.
	Proto proto.Token
	// Headers always hold lowercase keys. Duplicate headers overwrite each other.
	Headers headers.Headers
	// Body is nil unless Content-Length was positive or it was set explicitly. The bytes
	// are kept raw, as the content type isn't interpreted.
	Body []byte
	// Params are filled in by the router.
	Params Params
	// Remote holds the remote address of the connection.
	Remote net.Addr
	// ConnID identifies the connection the request came from in logs.
	ConnID string
}

// NewRequest returns a request with the fields defaulted the way the parser leaves them for
// GET / HTTP/1.1 without any headers.
func NewRequest() *Request {
	return &Request{
		Method:  method.Of(method.GET),
		Path:    "/",
		Proto:   proto.Token{Proto: proto.HTTP11, Raw: proto.HTTP11.String()},
		Headers: headers.New(),
	}
}

// Header returns a header value, or an empty string if it isn't presented.
func (r *Request) Header(key string) string {
	return r.Headers.Value(headers.Normalize(key))
}

// SetBody attaches the body explicitly.
func (r *Request) SetBody(body []byte) {
	r.Body = body
}

// HasBody tells whether the body was attached.
func (r *Request) HasBody() bool {
	return r.Body != nil
}

// Respond returns a new 200 OK response without headers nor body.
func (r *Request) Respond() *Response {
	return NewResponse()
}

// Respond is a handler that simply responds 200 OK. Mostly useful in tests and as a
// placeholder.
func Respond(r *Request) *Response {
	return r.Respond()
}
