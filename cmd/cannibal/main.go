package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cannibal"
	"github.com/fwojciec/cannibal/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path. Empty means no config file.
	ConfigPath string

	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing. Nil fields are built from flags.
	Reports  cannibal.ReportService
	Fetcher  cannibal.Fetcher
	Robots   cannibal.RobotsChecker
	Sitemaps cannibal.SitemapService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
		DBPath:     defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:      ctx,
		Stdout:   stdout,
		Stderr:   stderr,
		Reports:  m.Reports,
		Fetcher:  m.Fetcher,
		Robots:   m.Robots,
		Sitemaps: m.Sitemaps,
	}

	options := []kong.Option{
		kong.Name("cannibal"),
		kong.Description("Find keywords that several pages of a site compete for."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	}
	if m.ConfigPath != "" {
		values, err := LoadConfig(m.ConfigPath)
		switch {
		case errors.Is(err, ErrConfigNotFound):
		case err != nil:
			return cannibal.Errorf(cannibal.EINVALID, "%v", err)
		default:
			options = append(options, kong.Resolvers(ConfigResolver(values)))
		}
	}

	cli := &CLI{}
	parser, err := kong.New(cli, options...)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return cannibal.Errorf(cannibal.EINVALID, "no command specified. Run 'cannibal --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return cannibal.Errorf(cannibal.EINVALID, "%v", err)
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	// Open the database only for commands that use it.
	needsDB := strings.HasPrefix(kongCtx.Command(), "reports") || cli.Analyze.Save || cli.Compare.Save
	if needsDB && deps.Reports == nil {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set CANNIBAL_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		deps.Reports = sqlite.NewReportService(m.DB)
	}

	return kongCtx.Run(deps)
}

// newLogger returns a text logger on w. Verbose logging includes every
// fetch; otherwise only errors are logged.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// formatError renders err for the terminal. Application errors show
// their message; anything else is shown in full.
func formatError(err error) string {
	if errors.Is(err, context.Canceled) {
		return "error: interrupted"
	}
	if cannibal.ErrorCode(err) == cannibal.EINTERNAL {
		return "error: " + err.Error()
	}
	return "error: " + cannibal.ErrorMessage(err)
}
