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
	"github.com/fwojciec/newsextract/config"
	"github.com/fwojciec/newsextract/extract"
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
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newsextract"),
		kong.Description("Extract article content from news URLs, trying a structured parser before a generic extractor"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(config.Loader),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no URLs provided")
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

	chain := extract.NewChain(extract.Config{
		MinTextLength:        &cli.MinTextLength,
		Timeout:              cli.Timeout,
		Concurrency:          cli.Concurrency,
		Language:             cli.Language,
		ReadabilityUserAgent: cli.ReadabilityUserAgent,
		TrafilaturaUserAgent: cli.TrafilaturaUserAgent,
		RateLimit:            cli.RateLimit,
		Retries:              cli.Retries,
		Logger:               logger,
	})

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Chain:  chain,
		Logger: logger,
	}

	cmd := &ExtractCmd{
		URLs:   cli.URLs,
		Format: cli.Format,
		Stats:  cli.Stats,
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
