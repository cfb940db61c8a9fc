package status

type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrShutdown = NewError(ServiceUnavailable, "graceful shutdown")

	ErrMalformedRequestLine    = NewError(BadRequest, "malformed request line")
	ErrMissingHeaderTerminator = NewError(BadRequest, "header section is not terminated")
	ErrHeaderFieldsTooLarge    = NewError(RequestHeaderFieldsTooLarge, "too large headers section")
	ErrBodyTooLarge            = NewError(RequestEntityTooLarge, "request body is too large")
	ErrNotFound                = NewError(NotFound, "not found")
	ErrInternalServerError     = NewError(InternalServerError, "internal server error")
)
