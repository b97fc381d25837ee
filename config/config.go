// Package config loads the optional YAML configuration file shared by the
// newsextract and backlog commands.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsextract"
	"gopkg.in/yaml.v3"
)

// Config represents the chain settings a file may provide.
// Zero values mean "not set" and leave the command's defaults in place,
// except MinTextLength, where an explicit zero disables the length gate.
type Config struct {
	MinTextLength *int          `yaml:"min_text_length"`
	Timeout       time.Duration `yaml:"timeout"`
	Concurrency   int           `yaml:"concurrency"`
	Language      string        `yaml:"language"`
	UserAgents    UserAgents    `yaml:"user_agents"`
	RateLimit     float64       `yaml:"rate_limit"`
	Retries       int           `yaml:"retries"`
}

// UserAgents holds the per-tier User-Agent headers.
type UserAgents struct {
	Readability string `yaml:"readability"`
	Trafilatura string `yaml:"trafilatura"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, newsextract.Errorf(newsextract.ENOTFOUND, "config file not found: %s", path)
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes and validates configuration from r. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
func Parse(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, newsextract.Errorf(newsextract.EINVALID, "failed to parse YAML: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate returns an EINVALID error for settings no chain can use.
func (c *Config) Validate() error {
	if c.MinTextLength != nil && *c.MinTextLength < 0 {
		return newsextract.Errorf(newsextract.EINVALID, "min_text_length must not be negative")
	}
	if c.Timeout < 0 {
		return newsextract.Errorf(newsextract.EINVALID, "timeout must not be negative")
	}
	if c.Concurrency < 0 {
		return newsextract.Errorf(newsextract.EINVALID, "concurrency must not be negative")
	}
	if c.RateLimit < 0 {
		return newsextract.Errorf(newsextract.EINVALID, "rate_limit must not be negative")
	}
	if c.Retries < 0 {
		return newsextract.Errorf(newsextract.EINVALID, "retries must not be negative")
	}
	return nil
}

// values maps command-line flag names to the settings present in the file.
func (c *Config) values() map[string]string {
	m := make(map[string]string)
	set := func(flag, value string) {
		if value != "" {
			m[flag] = value
		}
	}
	if c.MinTextLength != nil {
		set("min-text-length", strconv.Itoa(*c.MinTextLength))
	}
	if c.Timeout > 0 {
		set("timeout", c.Timeout.String())
	}
	if c.Concurrency > 0 {
		set("concurrency", strconv.Itoa(c.Concurrency))
	}
	if c.RateLimit > 0 {
		set("rate-limit", strconv.FormatFloat(c.RateLimit, 'f', -1, 64))
	}
	if c.Retries > 0 {
		set("retries", strconv.Itoa(c.Retries))
	}
	set("language", c.Language)
	set("readability-user-agent", c.UserAgents.Readability)
	set("trafilatura-user-agent", c.UserAgents.Trafilatura)
	return m
}

// Resolver returns a kong resolver that supplies file values for flags the
// user did not pass on the command line. A flag whose environment variable
// is set keeps the environment value.
func (c *Config) Resolver() kong.Resolver {
	values := c.values()
	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		if envSet(flag) {
			return nil, nil
		}
		if v, ok := values[flag.Name]; ok {
			return v, nil
		}
		return nil, nil
	})
}

func envSet(flag *kong.Flag) bool {
	if flag.Tag == nil {
		return false
	}
	for _, name := range flag.Tag.Envs {
		if _, ok := os.LookupEnv(name); ok {
			return true
		}
	}
	return false
}

// Loader is a kong.ConfigurationLoader for use with kong.Configuration and
// a kong.ConfigFlag flag.
func Loader(r io.Reader) (kong.Resolver, error) {
	cfg, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return cfg.Resolver(), nil
}
