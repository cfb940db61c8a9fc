package proto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProto(t *testing.T) {
	require.Equal(t, HTTP11, Parse("HTTP/1.1"))
	require.Equal(t, "HTTP/1.1", HTTP11.String())

	for _, str := range []string{"HTTP/1.0", "HTTP/2", "http/1.1", ""} {
		token := ParseToken(str)
		require.False(t, token.IsSupported(), str)
		require.Equal(t, str, token.Raw)
	}

	require.Equal(t, "HTTP/0.9", ParseToken("HTTP/0.9").String())
	require.Equal(t, "HTTP/1.1", Token{Proto: HTTP11}.String())
}
