package method

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func BenchmarkMethod(b *testing.B) {
	var parsed Method

	for i := Unknown; i <= Count; i++ {
		b.Run(i.String(), func(b *testing.B) {
			m := i.String()
			b.SetBytes(int64(len(m)))
			b.ResetTimer()

			for j := 0; j < b.N; j++ {
				parsed = Parse(m)
			}
		})
	}

	keepalive(parsed)
}

func keepalive(Method) {}

func TestMethod(t *testing.T) {
	for _, method := range List {
		assert.Equal(t, method.String(), Parse(method.String()).String())
	}

	require.Equal(t, Unknown, Parse("get"))
	require.Equal(t, Unknown, Parse(""))
	require.Equal(t, Unknown, Parse("PROPFIND"))
}

func TestToken(t *testing.T) {
	t.Run("known", func(t *testing.T) {
		token := ParseToken("POST")
		require.True(t, token.IsKnown())
		require.Equal(t, POST, token.Method)
		require.Equal(t, "POST", token.String())
	})

	t.Run("unknown keeps the original text", func(t *testing.T) {
		token := ParseToken("BREW")
		require.False(t, token.IsKnown())
		require.Equal(t, Unknown, token.Method)
		require.Equal(t, "BREW", token.String())
	})

	t.Run("of", func(t *testing.T) {
		require.Equal(t, ParseToken("GET"), Of(GET))
	})
}

func TestMethod_Text(t *testing.T) {
	text, err := POST.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "POST", string(text))

	var m Method
	require.NoError(t, m.UnmarshalText([]byte("PATCH")))
	require.Equal(t, PATCH, m)
	require.Error(t, m.UnmarshalText([]byte("BREW")))
}
