package status

import "strconv"

type (
	Code   uint16
	Status string
)

// The registry is intentionally incomplete: the server itself only ever emits a handful of
// codes, and handlers needing something exotic get "Unknown Status Code" as the reason
// phrase, which clients ignore anyway.
const (
	OK        Code = 200
	Created   Code = 201
	Accepted  Code = 202
	NoContent Code = 204

	MovedPermanently  Code = 301
	Found             Code = 302
	NotModified       Code = 304
	TemporaryRedirect Code = 307
	PermanentRedirect Code = 308

	BadRequest                  Code = 400
	Unauthorized                Code = 401
	Forbidden                   Code = 403
	NotFound                    Code = 404
	MethodNotAllowed            Code = 405
	RequestTimeout              Code = 408
	Conflict                    Code = 409
	LengthRequired              Code = 411
	RequestEntityTooLarge       Code = 413
	RequestURITooLong           Code = 414
	UnsupportedMediaType        Code = 415
	TooManyRequests             Code = 429
	RequestHeaderFieldsTooLarge Code = 431

	InternalServerError     Code = 500
	NotImplemented          Code = 501
	ServiceUnavailable      Code = 503
	HTTPVersionNotSupported Code = 505
)

var texts = map[Code]Status{
	OK:                          "OK",
	Created:                     "Created",
	Accepted:                    "Accepted",
	NoContent:                   "No Content",
	MovedPermanently:            "Moved Permanently",
	Found:                       "Found",
	NotModified:                 "Not Modified",
	TemporaryRedirect:           "Temporary Redirect",
	PermanentRedirect:           "Permanent Redirect",
	BadRequest:                  "Bad Request",
	Unauthorized:                "Unauthorized",
	Forbidden:                   "Forbidden",
	NotFound:                    "Not Found",
	MethodNotAllowed:            "Method Not Allowed",
	RequestTimeout:              "Request Timeout",
	Conflict:                    "Conflict",
	LengthRequired:              "Length Required",
	RequestEntityTooLarge:       "Request Entity Too Large",
	RequestURITooLong:           "Request URI Too Long",
	UnsupportedMediaType:        "Unsupported Media Type",
	TooManyRequests:             "Too Many Requests",
	RequestHeaderFieldsTooLarge: "Request Header Fields Too Large",
	InternalServerError:         "Internal Server Error",
	NotImplemented:              "Not Implemented",
	ServiceUnavailable:          "Service Unavailable",
	HTTPVersionNotSupported:     "HTTP Version Not Supported",
}

// Text returns the reason phrase for the code.
func Text(code Code) Status {
	if text, ok := texts[code]; ok {
		return text
	}

	return "Unknown Status Code"
}

// Line returns the code and its reason phrase the way they are written on the status
// line, e.g. "404 Not Found".
func Line(code Code) string {
	return strconv.Itoa(int(code)) + " " + string(Text(code))
}
