package metrics

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()
	m.ConnOpened()
	m.ConnOpened()
	m.ConnClosed()
	m.ParseError()
	m.Request("GET", 200, 5*time.Millisecond)
	m.Request("GET", 404, time.Millisecond)
	m.Request("GET", 200, time.Millisecond)

	var buff bytes.Buffer
	require.NoError(t, m.Render(&buff))
	text := buff.String()

	require.Contains(t, text, "# TYPE petite_connections_total counter")
	require.Contains(t, text, "petite_connections_total 2")
	require.Contains(t, text, "petite_connections_active 1")
	require.Contains(t, text, "petite_parse_errors_total 1")
	require.Contains(t, text, `petite_requests_total{code="200",method="GET"} 2`)
	require.Contains(t, text, `petite_requests_total{code="404",method="GET"} 1`)
	require.Contains(t, text, "petite_request_duration_seconds_count 3")
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ConnOpened()
	m.ConnClosed()
	m.ParseError()
	m.Request("GET", 200, time.Millisecond)

	var buff bytes.Buffer
	require.NoError(t, m.Render(&buff))
	require.Empty(t, buff.String())
}
