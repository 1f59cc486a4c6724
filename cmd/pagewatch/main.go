package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/fwojciec/pagewatch"
	pwfs "github.com/fwojciec/pagewatch/fs"
	"github.com/fwojciec/pagewatch/sqlite"
)

func main() {
	// Missing .env is fine; flags and real environment still apply.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Injectable services for end-to-end testing. When nil, Run wires the
	// real browser, Telegram, and file-backed implementations.
	Renderer pagewatch.Renderer
	Notifier pagewatch.Notifier
	Store    pagewatch.StateStore

	// Resources owned by Run that need closing.
	db       *sqlite.DB
	renderer pagewatch.Renderer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.renderer != nil {
		if err := m.renderer.Close(); err != nil {
			return err
		}
	}
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagewatch"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagewatch --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire command-specific dependencies based on the resolved command.
	command := kongCtx.Command()
	switch {
	case command == "watch" || command == "scan":
		opts := &cli.Scan.ScanOptions
		if command == "watch" {
			opts = &cli.Watch.ScanOptions
		}
		scanner, err := m.buildScanner(ctx, opts, deps)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", pagewatch.ErrorMessage(err))
			return err
		}
		deps.Scanner = scanner

	case strings.HasPrefix(command, "state"):
		path, backend := cli.State.Show.State, cli.State.Show.StateBackend
		if strings.HasPrefix(command, "state prune") {
			path, backend = cli.State.Prune.State, cli.State.Prune.StateBackend
		}
		store, err := m.openStore(path, backend)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", pagewatch.ErrorMessage(err))
			return err
		}
		deps.Store = store
	}

	return kongCtx.Run(deps)
}

// openStore returns the injected store if one was set, otherwise opens the
// configured backend at path (or the default location under ~/.pagewatch).
func (m *Main) openStore(path, backend string) (pagewatch.StateStore, error) {
	if m.Store != nil {
		return m.Store, nil
	}
	if path == "" {
		path = defaultStatePath(backend)
	}
	if backend == "sqlite" {
		db := sqlite.NewDB(path)
		if err := db.Open(); err != nil {
			return nil, fmt.Errorf("failed to open state database at %q: %w", path, err)
		}
		m.db = db
		return sqlite.NewStateStore(db), nil
	}
	return pwfs.NewStateStore(path), nil
}

func defaultStatePath(backend string) string {
	name := "state.json"
	if backend == "sqlite" {
		name = "state.db"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	dir := filepath.Join(home, ".pagewatch")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, name)
}
