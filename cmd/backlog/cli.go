package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsextract"
	"github.com/fwojciec/newsextract/config"
	"github.com/fwojciec/newsextract/extract"
)

// Exit codes reported by the backlog command.
const (
	ExitNoRows       = 1
	ExitNoDatabase   = 2
	ExitNoExtraction = 3
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config               kong.ConfigFlag `help:"YAML configuration file"`
	DB                   string          `name:"db" default:"../news-gatherer/output/news-gatherer.db" env:"NEWSEXTRACT_BACKLOG_DB" help:"Path to the news gatherer SQLite file"`
	Limit                int             `default:"20" help:"Rows to read from the articles table"`
	Offset               int             `default:"0" help:"Start offset in the articles table"`
	MinTextLength        int             `name:"min-text-length" default:"100" env:"NEWSEXTRACT_MIN_TEXT_LENGTH" help:"Minimum characters to accept an extraction"`
	Format               string          `short:"f" default:"pretty" enum:"pretty,json" help:"Output format (pretty, json)"`
	Output               string          `short:"o" help:"Also write entries to this JSON Lines file"`
	LogLevel             string          `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log verbosity (debug, info, warn, error)"`
	Timeout              time.Duration   `short:"t" default:"10s" env:"NEWSEXTRACT_TIMEOUT" help:"HTTP timeout per request"`
	Concurrency          int             `short:"c" default:"1" help:"Articles to extract in parallel"`
	Language             string          `help:"Expected article language, e.g. tr"`
	ReadabilityUserAgent string          `name:"readability-user-agent" help:"User-Agent for the structured parser"`
	TrafilaturaUserAgent string          `name:"trafilatura-user-agent" help:"User-Agent for the generic extractor"`
	RateLimit            float64         `name:"rate-limit" help:"Requests per second per domain (0 disables)"`
	Retries              int             `help:"Retries for failed downloads"`
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
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Backlog newsextract.BacklogService
	Chain   *extract.Chain

	// Writer, if set, receives every entry in addition to stdout.
	Writer newsextract.BacklogWriter
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

// BacklogCmd re-extracts a page of backlog records.
type BacklogCmd struct {
	Limit         int
	Offset        int
	Format        string
	MinTextLength int
}

// Run reads the records, extracts each one and reports the results.
func (c *BacklogCmd) Run(deps *Dependencies) error {
	records, err := deps.Backlog.FindBacklogRecords(deps.Ctx, newsextract.BacklogFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	})
	if err != nil {
		return fmt.Errorf("failed to read backlog: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(deps.Stderr, "No rows returned from the articles table.")
		return &ExitError{Code: ExitNoRows, Message: "no rows"}
	}

	entries := deps.Chain.ExtractBacklog(deps.Ctx, records)

	if deps.Writer != nil {
		if err := writeEntries(deps.Ctx, deps.Writer, entries); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	for _, entry := range entries {
		var err error
		if c.Format == "json" {
			err = WriteJSON(deps.Stdout, entry)
		} else {
			err = WritePretty(deps.Stdout, entry)
		}
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	summary := newsextract.SummarizeBacklog(entries)
	fmt.Fprintf(deps.Stdout, "\nSummary: %d/%d extractions succeeded (%.1f%% with min_text_length=%d).\n",
		summary.Successes, summary.Total, summary.SuccessRate, c.MinTextLength)

	if summary.Successes == 0 {
		return &ExitError{Code: ExitNoExtraction, Message: "no extraction succeeded"}
	}
	return nil
}

// LogProgress returns a batch progress callback that logs each processed
// record at info level, so long runs can be followed with --log-level info.
func LogProgress(logger *slog.Logger) extract.ProgressFunc {
	return func(event extract.ProgressEvent) {
		switch event.Type {
		case extract.ProgressStarted:
			logger.Info("backlog started", "total", event.Total)
		case extract.ProgressCompleted:
			logger.Info("extracted", "completed", event.Completed, "total", event.Total, "url", event.URL)
		case extract.ProgressFailed:
			args := []any{"completed", event.Completed, "total", event.Total, "url", event.URL}
			if event.Error != nil {
				args = append(args, "err", event.Error)
			}
			logger.Info("not extracted", args...)
		case extract.ProgressFinished:
			logger.Info("backlog finished", "total", event.Total)
		}
	}
}

// writeEntries writes all entries and commits, discarding partial output
// on failure.
func writeEntries(ctx context.Context, w newsextract.BacklogWriter, entries []*newsextract.BacklogEntry) error {
	for _, entry := range entries {
		if err := w.WriteEntry(ctx, entry); err != nil {
			return errors.Join(err, w.Abort())
		}
	}
	return w.Commit()
}
