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
	"github.com/fwojciec/newsextract"
	"github.com/fwojciec/newsextract/config"
	"github.com/fwojciec/newsextract/extract"
	"github.com/fwojciec/newsextract/fs"
	neslog "github.com/fwojciec/newsextract/slog"
	"github.com/fwojciec/newsextract/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(ExitCode(err))
	}
}

// Main represents the program.
type Main struct {
	// SQLite database holding the gatherer's articles. Set by Run.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("backlog"),
		kong.Description("Re-extract articles already stored by the news gatherer"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(config.Loader),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}
	if err := cli.validate(); err != nil {
		return err
	}

	logger, err := NewLogger(stderr, cli.LogLevel)
	if err != nil {
		return err
	}

	// Open the gatherer's database without ever writing to it
	m.DB = sqlite.NewDB(cli.DB)
	m.DB.ReadOnly = true
	if err := m.DB.Open(); err != nil {
		if newsextract.ErrorCode(err) == newsextract.ENOTFOUND {
			fmt.Fprintf(stderr, "Database not found: %s\n", cli.DB)
			return &ExitError{Code: ExitNoDatabase, Message: newsextract.ErrorMessage(err)}
		}
		return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
	}
	defer m.Close()

	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Backlog: neslog.NewLoggingBacklogService(sqlite.NewBacklogService(m.DB), logger),
		Chain: extract.NewChain(extract.Config{
			MinTextLength:        &cli.MinTextLength,
			Timeout:              cli.Timeout,
			Concurrency:          cli.Concurrency,
			Language:             cli.Language,
			ReadabilityUserAgent: cli.ReadabilityUserAgent,
			TrafilaturaUserAgent: cli.TrafilaturaUserAgent,
			RateLimit:            cli.RateLimit,
			Retries:              cli.Retries,
			Logger:               logger,
		}),
	}
	deps.Chain.Progress = LogProgress(logger)
	if cli.Output != "" {
		deps.Writer = fs.NewJSONLWriter(cli.Output)
	}

	cmd := &BacklogCmd{
		Limit:         cli.Limit,
		Offset:        cli.Offset,
		Format:        cli.Format,
		MinTextLength: cli.MinTextLength,
	}
	return cmd.Run(deps)
}

// NewLogger returns a text logger on w at the named level.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}
