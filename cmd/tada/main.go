package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Makepad-fr/tada/internal/cli"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/httpapi"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/seed"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/memstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

const tuiLogFile = "tui.log"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tada", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { cli.PrintHelp(stderr); fmt.Fprintln(stderr, "\nFlags:"); fs.PrintDefaults() }

	// Root flags (apply to every subcommand)
	configPath := fs.String("config", "", "config file (default ./tada.toml, then the user config dir)")
	dataDir := fs.String("data-dir", "", "directory holding the stored projects")
	backend := fs.String("backend", "", "storage backend: json, sqlite or memory")
	key := fs.String("key", "", "storage key of the project blob")
	theme := fs.String("theme", "", "output theme: classic, neon or mono")
	tz := fs.String("tz", "", "IANA time zone used for due dates")
	addr := fs.String("addr", "", "listen address for serve")
	logLevel := fs.String("log-level", "", "debug, info, warn or error")
	logFormat := fs.String("log-format", "", "text, json or logfmt")
	verbose := fs.Bool("v", false, "shorthand for -log-level debug")
	noSeed := fs.Bool("no-seed", false, "do not add the welcome project to an empty store")
	color := fs.String("color", "auto", "auto, always or never")
	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cli.ExitOK
		}
		return cli.ExitUsage
	}
	args := fs.Args()
	if len(args) == 0 {
		cli.PrintHelp(stderr)
		return cli.ExitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		ui.Fail(stderr, err.Error())
		return cli.ExitError
	}
	// explicitly set flags win over file and environment
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data-dir":
			cfg.DataDir = *dataDir
		case "backend":
			cfg.Backend = *backend
		case "key":
			cfg.StorageKey = *key
		case "theme":
			cfg.Theme = *theme
		case "tz":
			cfg.Timezone = *tz
		case "addr":
			cfg.Addr = *addr
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-format":
			cfg.LogFormat = *logFormat
		case "no-seed":
			cfg.Seed = !*noSeed
		}
	})
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		ui.Fail(stderr, "config: "+err.Error())
		return cli.ExitUsage
	}

	mode, ok := ui.ParseColorMode(*color)
	if !ok {
		ui.Fail(stderr, "color must be one of: auto always never")
		return cli.ExitUsage
	}
	ui.SetColorMode(mode)
	ui.SetTheme(cfg.Theme)

	logger := logging.New(stderr, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if cfg.File != "" {
		logger.Debug("loaded config", "file", cfg.File)
	}

	s, reg, err := openStore(cfg, logger)
	if err != nil {
		ui.Fail(stderr, err.Error())
		return cli.ExitError
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Error("closing store", "err", err)
		}
	}()

	if cfg.Seed {
		added, err := seed.Welcome(s, s.Now())
		if err != nil {
			ui.Fail(stderr, "seed: "+err.Error())
			return cli.ExitError
		}
		if added {
			logger.Info("added welcome project")
		}
	}

	return cli.Run(ctx, args, cli.Env{
		Store:    s,
		Out:      stdout,
		Err:      stderr,
		Log:      logger,
		Registry: reg,
		Addr:     cfg.Addr,
		RunTUI: func(ctx context.Context, env cli.Env) error {
			tuiLog, closeLog := tuiLogger(cfg, env.Log)
			defer closeLog()
			return tui.Run(ctx, env.Store, tuiLog)
		},
		Serve: func(ctx context.Context, env cli.Env) error {
			h := httpapi.NewRouter(env.Store, httpapi.Options{
				Logger:         env.Log,
				Registry:       env.Registry,
				AllowedOrigins: cfg.AllowedOrigins,
			}).Setup()
			return httpapi.ListenAndServe(ctx, env.Addr, h, env.Log)
		},
	})
}

// tuiLogger keeps log lines off the terminal while the TUI owns it. They go
// to tui.log in the data directory, or nowhere for the memory backend.
func tuiLogger(cfg *config.Config, fallback *log.Logger) (*log.Logger, func()) {
	discard := log.New(io.Discard)
	if cfg.Backend == "memory" {
		return discard, func() {}
	}
	path := filepath.Join(cfg.DataDir, tuiLogFile)
	l, c, err := logging.NewFile(path, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		fallback.Warn("tui logging disabled", "err", err)
		return discard, func() {}
	}
	return l, func() { _ = c.Close() }
}

// openStore opens the configured backend and loads the stored projects.
func openStore(cfg *config.Config, logger *log.Logger) (*store.Store, *prometheus.Registry, error) {
	var b store.Backend
	switch cfg.Backend {
	case "sqlite":
		db, err := sqlitestore.Open(filepath.Join(cfg.DataDir, sqlitestore.DefaultFile))
		if err != nil {
			return nil, nil, err
		}
		b = db
	case "memory":
		b = memstore.New()
	default:
		js, err := jsonstore.New(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		b = js
	}

	clock, err := cfg.Clock()
	if err != nil {
		_ = b.Close()
		return nil, nil, err
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := store.New(b,
		store.WithLogger(logger.WithPrefix("store")),
		store.WithMetrics(store.NewMetrics(reg)),
		store.WithClock(clock),
		store.WithKey(cfg.StorageKey),
	)
	if err := s.Initialize(); err != nil {
		_ = b.Close()
		return nil, nil, err
	}
	logger.Debug("store ready", "backend", cfg.Backend, "dir", cfg.DataDir, "projects", s.Len())
	return s, reg, nil
}
