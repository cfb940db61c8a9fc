package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/indigo-web/petite/config"
	"github.com/indigo-web/petite/http/method"
	"github.com/indigo-web/petite/router/inbuilt"
)

func TestRoutes(t *testing.T) {
	var out bytes.Buffer
	app := App()
	app.Writer = &out
	require.NoError(t, app.Run([]string{"petite", "routes"}))

	var routes []map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &routes))
	require.Contains(t, routes, map[string]string{"method": "GET", "path": "/echo/{cont}"})
	require.Contains(t, routes, map[string]string{"method": "POST", "path": "/files/{name}"})
	require.Len(t, routes, 6)

	var typed []inbuilt.Route
	require.NoError(t, json.Unmarshal(out.Bytes(), &typed))
	require.Contains(t, typed, inbuilt.Route{Method: method.GET, Path: "/user-agent"})
}

func TestApplyFlags(t *testing.T) {
	set := flag.NewFlagSet("serve", flag.ContinueOnError)
	for _, f := range serveCommand().Flags {
		require.NoError(t, f.Apply(set))
	}

	require.NoError(t, set.Parse([]string{
		"--addr", "0.0.0.0:8080", "--directory", "/tmp", "--max-conns", "8", "--compress",
	}))

	cfg := config.Default()
	applyFlags(cli.NewContext(App(), set, nil), cfg)
	require.Equal(t, "0.0.0.0:8080", cfg.NET.Addr)
	require.Equal(t, "/tmp", cfg.Files.Directory)
	require.Equal(t, int64(8), cfg.NET.MaxConns)
	require.True(t, cfg.Encoding.Compress)
	require.Equal(t, config.Default().Log, cfg.Log)
}

func TestServe(t *testing.T) {
	app := App()
	app.ErrWriter = io.Discard

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.NoError(t, app.RunContext(ctx, []string{
		"petite", "serve", "--addr", "127.0.0.1:0", "--directory", t.TempDir(),
	}))
}
