package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/ghprofile/internal/config"
	"github.com/naveenspark/ghprofile/internal/recent"
	"github.com/naveenspark/ghprofile/internal/tui"
	"github.com/naveenspark/ghprofile/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "version", "-v":
			fmt.Fprintln(stdout, "ghprofile "+version)
			return nil
		case "help", "--help", "-h":
			printHelp(stdout)
			return nil
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if len(args) > 0 {
		switch args[0] {
		case "recent":
			return runRecent(cfg, stdout)
		case "forget":
			return runForget(cfg, stdout)
		}
	}

	var username string
	switch {
	case len(args) > 1:
		return fmt.Errorf("too many arguments (usage: ghprofile [username])")
	case len(args) == 1:
		if strings.HasPrefix(args[0], "-") {
			return fmt.Errorf("unknown flag %q (see: ghprofile help)", args[0])
		}
		username = args[0]
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	c := client.New(cfg.APIURL, cfg.Token,
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(logger),
		client.WithUserAgent("ghprofile/"+version),
	)
	logger.Info("starting",
		slog.String("version", version),
		slog.String("api_url", cfg.APIURL),
		slog.Bool("authenticated", cfg.HasToken()),
		slog.String("store", cfg.Store),
	)

	app := tui.NewApp(c, store, tui.Options{
		Suggestions: cfg.Suggestions,
		Username:    username,
		Logger:      logger,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runRecent(cfg *config.Config, stdout io.Writer) error {
	store, err := openStore(cfg, nil)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck
	printRecent(stdout, store.List())
	return nil
}

func runForget(cfg *config.Config, stdout io.Writer) error {
	store, err := openStore(cfg, nil)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck
	if err := store.Clear(); err != nil {
		return fmt.Errorf("clear recent searches: %w", err)
	}
	printForgotten(stdout)
	return nil
}

// newLogger returns a file logger under the config home when debug is on,
// and a discarding logger otherwise. The TUI owns the terminal.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	if !cfg.Debug {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	if err := os.MkdirAll(cfg.HomeDir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", cfg.HomeDir, err)
	}
	f, err := tea.LogToFile(cfg.LogPath(), "ghprofile")
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil //nolint:errcheck
}

// openStore opens the recent-search store on the configured backend.
func openStore(cfg *config.Config, logger *slog.Logger) (*recent.Store, error) {
	var backend recent.Backend
	switch cfg.Store {
	case config.StoreSQLite:
		if err := os.MkdirAll(cfg.HomeDir, 0o700); err != nil {
			return nil, fmt.Errorf("create %s: %w", cfg.HomeDir, err)
		}
		b, err := recent.OpenSQLite(cfg.StatePath())
		if err != nil {
			return nil, err
		}
		backend = b
	default:
		backend = recent.NewFileBackend(cfg.StatePath())
	}
	return recent.NewStore(backend, logger), nil
}
