package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsextract"
	"github.com/fwojciec/newsextract/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullConfig = `
min_text_length: 250
timeout: 15s
concurrency: 4
language: tr
user_agents:
  readability: "newsextract-test/1.0"
  trafilatura: "Mozilla/5.0 (X11; Linux x86_64)"
rate_limit: 0.5
retries: 2
`

// createTempConfigFile writes content to a config file in a temp directory.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "newsextract.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("reads every setting", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.Load(createTempConfigFile(t, fullConfig))

		require.NoError(t, err)
		require.NotNil(t, cfg.MinTextLength)
		assert.Equal(t, 250, *cfg.MinTextLength)
		assert.Equal(t, 15*time.Second, cfg.Timeout)
		assert.Equal(t, 4, cfg.Concurrency)
		assert.Equal(t, "tr", cfg.Language)
		assert.Equal(t, "newsextract-test/1.0", cfg.UserAgents.Readability)
		assert.Equal(t, "Mozilla/5.0 (X11; Linux x86_64)", cfg.UserAgents.Trafilatura)
		assert.InDelta(t, 0.5, cfg.RateLimit, 1e-9)
		assert.Equal(t, 2, cfg.Retries)
	})

	t.Run("accepts an empty file", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.Load(createTempConfigFile(t, ""))

		require.NoError(t, err)
		assert.Equal(t, config.Config{}, *cfg)
	})

	t.Run("returns not found for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
		assert.Equal(t, newsextract.ENOTFOUND, newsextract.ErrorCode(err))
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(createTempConfigFile(t, "min_text_length: [1, 2"))

		require.Error(t, err)
		assert.Equal(t, newsextract.EINVALID, newsextract.ErrorCode(err))
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(createTempConfigFile(t, "min_text_lenght: 200\n"))

		require.Error(t, err)
		assert.Equal(t, newsextract.EINVALID, newsextract.ErrorCode(err))
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		message string
	}{
		{name: "negative min text length", content: "min_text_length: -1", message: "min_text_length"},
		{name: "negative timeout", content: "timeout: -5s", message: "timeout"},
		{name: "negative concurrency", content: "concurrency: -2", message: "concurrency"},
		{name: "negative rate limit", content: "rate_limit: -1.5", message: "rate_limit"},
		{name: "negative retries", content: "retries: -1", message: "retries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Parse(strings.NewReader(tt.content))

			require.Error(t, err)
			assert.Equal(t, newsextract.EINVALID, newsextract.ErrorCode(err))
			assert.Contains(t, newsextract.ErrorMessage(err), tt.message)
		})
	}
}

// testCLI mirrors the chain flags the commands expose.
type testCLI struct {
	Config               kong.ConfigFlag `name:"config"`
	MinTextLength        int             `name:"min-text-length" default:"100" env:"NEWSEXTRACT_TEST_MIN_TEXT_LENGTH"`
	Timeout              time.Duration   `name:"timeout" default:"10s"`
	Concurrency          int             `name:"concurrency" default:"1"`
	Language             string          `name:"language"`
	ReadabilityUserAgent string          `name:"readability-user-agent"`
	TrafilaturaUserAgent string          `name:"trafilatura-user-agent"`
	RateLimit            float64         `name:"rate-limit"`
	Retries              int             `name:"retries"`
}

func parseCLI(t *testing.T, args ...string) *testCLI {
	t.Helper()
	cli := &testCLI{}
	parser, err := kong.New(cli,
		kong.Configuration(config.Loader),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)
	_, err = parser.Parse(args)
	require.NoError(t, err)
	return cli
}

func TestLoader(t *testing.T) {
	t.Parallel()

	t.Run("fills flags from config file", func(t *testing.T) {
		t.Parallel()

		path := createTempConfigFile(t, fullConfig)

		cli := parseCLI(t, "--config", path)

		assert.Equal(t, 250, cli.MinTextLength)
		assert.Equal(t, 15*time.Second, cli.Timeout)
		assert.Equal(t, 4, cli.Concurrency)
		assert.Equal(t, "tr", cli.Language)
		assert.Equal(t, "newsextract-test/1.0", cli.ReadabilityUserAgent)
		assert.Equal(t, "Mozilla/5.0 (X11; Linux x86_64)", cli.TrafilaturaUserAgent)
		assert.InDelta(t, 0.5, cli.RateLimit, 1e-9)
		assert.Equal(t, 2, cli.Retries)
	})

	t.Run("lets explicit flags override the file", func(t *testing.T) {
		t.Parallel()

		path := createTempConfigFile(t, fullConfig)

		cli := parseCLI(t, "--config", path, "--min-text-length", "50")

		assert.Equal(t, 50, cli.MinTextLength)
		assert.Equal(t, 4, cli.Concurrency)
	})

	t.Run("lets the file set a zero threshold", func(t *testing.T) {
		t.Parallel()

		path := createTempConfigFile(t, "min_text_length: 0\n")

		cli := parseCLI(t, "--config", path)

		assert.Equal(t, 0, cli.MinTextLength)
	})

	t.Run("keeps defaults for settings the file omits", func(t *testing.T) {
		t.Parallel()

		path := createTempConfigFile(t, "language: tr\n")

		cli := parseCLI(t, "--config", path)

		assert.Equal(t, 100, cli.MinTextLength)
		assert.Equal(t, 10*time.Second, cli.Timeout)
		assert.Equal(t, "tr", cli.Language)
	})
}

// Not parallel: t.Setenv changes the process environment.
func TestLoader_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("NEWSEXTRACT_TEST_MIN_TEXT_LENGTH", "40")
	path := createTempConfigFile(t, fullConfig)

	cli := parseCLI(t, "--config", path)

	assert.Equal(t, 40, cli.MinTextLength)
	assert.Equal(t, 4, cli.Concurrency)
}
