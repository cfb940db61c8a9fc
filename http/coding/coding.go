package coding

import (
	"strconv"
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

// Kind is a content coding the server is able to apply.
type Kind uint8

const (
	Unknown Kind = iota
	GZIP
)

func (k Kind) String() string {
	switch k {
	case GZIP:
		return "gzip"
	default:
		return ""
	}
}

// ParseKind matches a coding token case-insensitively.
func ParseKind(token string) Kind {
	if strcomp.EqualFold(token, "gzip") {
		return GZIP
	}

	return Unknown
}

// Encoding is a single Accept-Encoding entry. Quality is parsed but never used to rank
// the candidates.
type Encoding struct {
	Kind    Kind
	Quality float32
}

func (e Encoding) String() string {
	return e.Kind.String()
}

const defaultQuality float32 = 1.0

// Negotiate chooses the response encoding from the Accept-Encoding value.
//
// Tokens are scanned left to right and the first recognized one wins. Scanning halts at the
// first token that isn't recognized (or is empty), so "identity, gzip" yields nothing: the
// gzip entry is never looked at. Note: this differs from the common practice of skipping
// unknown codings.
func Negotiate(acceptEncoding string) (enc Encoding, found bool) {
	for len(acceptEncoding) > 0 {
		var token string
		token, acceptEncoding, _ = strings.Cut(acceptEncoding, ",")
		if len(token) == 0 {
			break
		}

		enc = parseEntry(strings.TrimSpace(token))
		if enc.Kind == Unknown {
			break
		}

		return enc, true
	}

	return Encoding{}, false
}

func parseEntry(entry string) Encoding {
	name, params, hasParams := strings.Cut(entry, ";")
	quality := defaultQuality

	if hasParams {
		if _, value, ok := strings.Cut(params, "="); ok {
			quality = parseQuality(strings.TrimSpace(value))
		}
	}

	return Encoding{
		Kind:    ParseKind(strings.TrimSpace(name)),
		Quality: quality,
	}
}

func parseQuality(str string) float32 {
	q, err := strconv.ParseFloat(str, 32)
	if err != nil {
		return defaultQuality
	}

	return float32(q)
}
