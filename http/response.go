package http

import (
	"errors"
	"strconv"

	"github.com/indigo-web/petite/http/headers"
	"github.com/indigo-web/petite/http/proto"
	"github.com/indigo-web/petite/http/status"
	"github.com/indigo-web/petite/internal/response"
	"github.com/indigo-web/utils/uf"
)

type Response struct {
	fields *response.Fields
}

// NewResponse returns a new instance of the Response object with status code set to 200 OK
// and no headers. Unlike it's often done, neither Content-Type nor Content-Length are set
// implicitly by anyone but the caller.
func NewResponse() *Response {
	return &Response{
		&response.Fields{
			Proto:   proto.HTTP11,
			Code:    status.OK,
			Headers: headers.New(),
		},
	}
}

// Code sets a Response code.
func (r *Response) Code(code status.Code) *Response {
	r.fields.Code = code
	return r
}

// Header sets the header, replacing any previous value regardless of the key's case.
func (r *Response) Header(key, value string) *Response {
	r.fields.Headers.Set(key, value)
	return r
}

// Error responds with the code carried by status.HTTPError, or 500 Internal Server Error
// for any other error. Neither headers nor body are set.
func Error(err error) *Response {
	var httpErr status.HTTPError
	if !errors.As(err, &httpErr) {
		httpErr.Code = status.InternalServerError
	}

	return NewResponse().Code(httpErr.Code)
}

// ContentLength sets the Content-Length header to the current body length.
func (r *Response) ContentLength() *Response {
	return r.Header("Content-Length", strconv.Itoa(len(r.fields.Body)))
}

// String sets the response's body to the passed string
func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}

// Bytes sets the response's body to passed slice WITHOUT COPYING. Changing
// the passed slice later will affect the response by itself
func (r *Response) Bytes(body []byte) *Response {
	r.fields.Body = body
	return r
}

// Write implements io.Writer interface. It always returns n=len(b) and err=nil
func (r *Response) Write(b []byte) (n int, err error) {
	r.fields.Body = append(r.fields.Body, b...)
	return len(b), nil
}

// Reveal returns the response internals. The headers map is shared, so mutating it
// affects the response.
func (r *Response) Reveal() response.Fields {
	return *r.fields
}
