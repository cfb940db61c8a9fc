package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"

	"github.com/indigo-web/petite"
	"github.com/indigo-web/petite/config"
	"github.com/indigo-web/petite/http/status"
	"github.com/indigo-web/petite/internal/handlers"
	"github.com/indigo-web/petite/internal/logging"
	"github.com/indigo-web/petite/internal/metrics"
	"github.com/indigo-web/petite/router/inbuilt"
)

// Version is set via ldflags.
var Version = "dev"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "petite",
		Usage:   "a tiny HTTP/1.1 server",
		Version: Version,
		Commands: []*cli.Command{
			serveCommand(),
			routesCommand(),
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start serving requests",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML configuration file",
				EnvVars: []string{"PETITE_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Address to listen on (e.g., 127.0.0.1:4221)",
			},
			&cli.StringFlag{
				Name:    "directory",
				Aliases: []string{"d"},
				Usage:   "Directory served under /files/",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format: json, text",
			},
			&cli.Int64Flag{
				Name:  "max-conns",
				Usage: "Maximal number of simultaneously served connections, 0 for unlimited",
			},
			&cli.BoolFlag{
				Name:  "compress",
				Usage: "Compress response bodies when the client accepts gzip",
			},
		},
		Action: serve,
	}
}

func routesCommand() *cli.Command {
	return &cli.Command{
		Name:  "routes",
		Usage: "Print the registered routes as JSON",
		Action: func(c *cli.Context) error {
			r := handlers.New(".", logging.Nop(), nil).Register(inbuilt.New())
			data, err := json.MarshalIndent(r.Routes(), "", "  ")
			if err != nil {
				return fmt.Errorf("marshal routes: %w", err)
			}

			_, err = fmt.Fprintln(c.App.Writer, string(data))
			return err
		},
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"), config.DefaultEnvPrefix)
	if err != nil {
		return err
	}

	applyFlags(c, cfg)

	log := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})

	m := metrics.New()
	r := handlers.New(cfg.Files.Directory, log, m).Register(inbuilt.New())
	app := petite.New(cfg.NET.Addr).
		Tune(cfg).
		Logger(log).
		Metrics(m)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Serve(r)
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", slog.String("directory", cfg.Files.Directory))
	if err = app.GracefulStop(); err != nil {
		if errors.Is(err, petite.ErrNotStarted) {
			return nil
		}

		return err
	}

	if err = <-errCh; !errors.Is(err, status.ErrShutdown) {
		return err
	}

	return nil
}

func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("addr") {
		cfg.NET.Addr = c.String("addr")
	}

	if c.IsSet("directory") {
		cfg.Files.Directory = c.String("directory")
	}

	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}

	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}

	if c.IsSet("max-conns") {
		cfg.NET.MaxConns = c.Int64("max-conns")
	}

	if c.IsSet("compress") {
		cfg.Encoding.Compress = c.Bool("compress")
	}
}
