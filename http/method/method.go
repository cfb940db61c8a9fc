package method

import "fmt"

type Method uint8

const (
	Unknown Method = iota
	GET
	HEAD
	POST
	PUT
	DELETE
	CONNECT
	OPTIONS
	TRACE
	PATCH

	// Count is the last one enum, so contains the greatest integer value of all the
	// methods. So real number of methods is lower by 1
	Count = iota - 1
)

// List contains all the supported HTTP methods. They are sorted by their integer value, however
// Unknown method is not included. So in order to index the List, you must subtract 1 first.
var List = []Method{GET, HEAD, POST, PUT, DELETE, CONNECT, OPTIONS, TRACE, PATCH}

var names = [...]string{
	Unknown: "UNKNOWN",
	GET:     "GET",
	HEAD:    "HEAD",
	POST:    "POST",
	PUT:     "PUT",
	DELETE:  "DELETE",
	CONNECT: "CONNECT",
	OPTIONS: "OPTIONS",
	TRACE:   "TRACE",
	PATCH:   "PATCH",
}

func (m Method) String() string {
	if int(m) >= len(names) {
		return names[Unknown]
	}

	return names[m]
}

// Parse matches the token against known methods. The comparison is case-sensitive, as
// method names are.
func Parse(str string) Method {
	switch len(str) {
	case 3:
		if str == "GET" {
			return GET
		} else if str == "PUT" {
			return PUT
		}
	case 4:
		if str == "POST" {
			return POST
		} else if str == "HEAD" {
			return HEAD
		}
	case 5:
		if str == "PATCH" {
			return PATCH
		} else if str == "TRACE" {
			return TRACE
		}
	case 6:
		if str == "DELETE" {
			return DELETE
		}
	case 7:
		if str == "CONNECT" {
			return CONNECT
		} else if str == "OPTIONS" {
			return OPTIONS
		}
	}

	return Unknown
}

// Token is a method as it was met on the request line. When the method isn't recognized,
// Method is Unknown and Raw still carries the original text.
type Token struct {
	Method Method
	Raw    string
}

// ParseToken never fails: unrecognized methods are kept as Unknown tokens.
func ParseToken(str string) Token {
	return Token{
		Method: Parse(str),
		Raw:    str,
	}
}

// Of returns a token for a known method.
func Of(m Method) Token {
	return Token{Method: m, Raw: m.String()}
}

func (t Token) IsKnown() bool {
	return t.Method != Unknown
}

func (t Token) String() string {
	if len(t.Raw) == 0 {
		return t.Method.String()
	}

	return t.Raw
}

// MarshalText renders the method by its name, so it appears as a string in JSON.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses the method name, failing on unrecognized ones.
func (m *Method) UnmarshalText(text []byte) error {
	*m = Parse(string(text))
	if *m == Unknown {
		return fmt.Errorf("unrecognized method: %q", text)
	}

	return nil
}
