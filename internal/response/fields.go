package response

import (
	"github.com/indigo-web/petite/http/headers"
	"github.com/indigo-web/petite/http/proto"
	"github.com/indigo-web/petite/http/status"
)

// Fields are the bare response internals. The serializer and the connection handler work
// with them directly, users go through http.Response.
type Fields struct {
	Headers headers.Headers
	Body    []byte
	Code    status.Code
	Proto   proto.Proto
}
