package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsextract/config"
	"github.com/fwojciec/newsextract/extract"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config               kong.ConfigFlag `help:"YAML configuration file"`
	MinTextLength        int             `name:"min-text-length" default:"100" env:"NEWSEXTRACT_MIN_TEXT_LENGTH" help:"Minimum characters to accept an extraction"`
	Format               string          `short:"f" default:"pretty" enum:"pretty,json" help:"Output format (pretty, json)"`
	LogLevel             string          `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log verbosity (debug, info, warn, error)"`
	Timeout              time.Duration   `short:"t" default:"10s" env:"NEWSEXTRACT_TIMEOUT" help:"HTTP timeout per request"`
	Concurrency          int             `short:"c" default:"1" help:"URLs to extract in parallel"`
	Language             string          `help:"Expected article language, e.g. tr"`
	ReadabilityUserAgent string          `name:"readability-user-agent" help:"User-Agent for the structured parser"`
	TrafilaturaUserAgent string          `name:"trafilatura-user-agent" help:"User-Agent for the generic extractor"`
	RateLimit            float64         `name:"rate-limit" help:"Requests per second per domain (0 disables)"`
	Retries              int             `help:"Retries for failed downloads"`
	Stats                bool            `help:"Print extraction statistics to stderr after the batch"`
	URLs                 []string        `arg:"" name:"url" help:"Article URLs to extract"`
}

// validate rejects chain settings no chain can use, with the same rules
// applied to the configuration file.
func (c *CLI) validate() error {
	return (&config.Config{
		MinTextLength: &c.MinTextLength,
		Timeout:       c.Timeout,
		Concurrency:   c.Concurrency,
		RateLimit:     c.RateLimit,
		Retries:       c.Retries,
	}).Validate()
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Chain  *extract.Chain
	Logger *slog.Logger
}

// ExitError carries a process exit code. Its message has already been
// reported to the user.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// ExitCode returns the exit code for err: the code of an ExitError, 1 for
// any other error, and 0 for nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// ExtractCmd extracts each URL and prints the accepted articles.
type ExtractCmd struct {
	URLs   []string
	Format string
	Stats  bool
}

// Run extracts all URLs and reports each one. It returns an ExitError with
// code 1 when any URL failed.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	batch := deps.Chain.ExtractBatch(deps.Ctx, c.URLs)

	var failed int
	for _, url := range batch.URLs {
		result := batch.Get(url)
		if !result.OK() {
			failed++
			if result.Error != "" && deps.Logger != nil {
				deps.Logger.Error("unexpected extraction error", "url", url, "err", result.Error)
			}
			fmt.Fprintf(deps.Stderr, "❌ Failed to extract: %s\n", url)
			continue
		}

		var err error
		if c.Format == "json" {
			err = WriteJSON(deps.Stdout, result.Article)
		} else {
			err = WritePretty(deps.Stdout, result.Article)
		}
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	if c.Stats {
		if err := WriteStats(deps.Stderr, deps.Chain.Stats(batch)); err != nil {
			return fmt.Errorf("write stats: %w", err)
		}
	}

	if failed > 0 {
		return &ExitError{
			Code:    1,
			Message: fmt.Sprintf("%d of %d URLs failed", failed, batch.Len()),
		}
	}
	return nil
}
