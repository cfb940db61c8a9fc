package proto

type Proto uint8

const (
	Unknown Proto = iota
	HTTP11
)

const unsupported = "UNSUPPORTED"

func (p Proto) String() string {
	if p == HTTP11 {
		return "HTTP/1.1"
	}

	return unsupported
}

// Parse recognizes HTTP/1.1 only. Anything else, including HTTP/1.0 and HTTP/2, is Unknown.
func Parse(str string) Proto {
	if str == "HTTP/1.1" {
		return HTTP11
	}

	return Unknown
}

// Token is a protocol as it was met on the request line. Unsupported versions keep their
// original text in Raw.
type Token struct {
	Proto Proto
	Raw   string
}

func ParseToken(str string) Token {
	return Token{
		Proto: Parse(str),
		Raw:   str,
	}
}

func (t Token) IsSupported() bool {
	return t.Proto != Unknown
}

func (t Token) String() string {
	if len(t.Raw) == 0 {
		return t.Proto.String()
	}

	return t.Raw
}
