package headers

import (
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

// Headers is a plain mapping of header keys to their values. A key holds exactly one
// value: setting it again overwrites the previous one.
//
// Request headers are always stored with lowercase keys. Response headers keep the key
// exactly as it was set, however replacing them is case-insensitive, so that there are
// never two spellings of the same header.
type Headers map[string]string

func New() Headers {
	return make(Headers)
}

// NewFromMap copies the map. Keys are stored as is.
func NewFromMap(m map[string]string) Headers {
	h := make(Headers, len(m))
	for key, value := range m {
		h[key] = value
	}

	return h
}

// Get looks the key up case-insensitively.
func (h Headers) Get(key string) (value string, found bool) {
	if value, found = h[key]; found {
		return value, true
	}

	for k, v := range h {
		if strcomp.EqualFold(k, key) {
			return v, true
		}
	}

	return "", false
}

// Value returns the value by the key or an empty string.
func (h Headers) Value(key string) string {
	value, _ := h.Get(key)
	return value
}

func (h Headers) Has(key string) bool {
	_, found := h.Get(key)
	return found
}

// Set replaces every spelling of the key by the passed one.
func (h Headers) Set(key, value string) {
	h.Delete(key)
	h[key] = value
}

// Delete removes every spelling of the key.
func (h Headers) Delete(key string) {
	for k := range h {
		if strcomp.EqualFold(k, key) {
			delete(h, k)
		}
	}
}

// Normalize brings the key to the form request headers are stored in.
func Normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
