// Package config provides YAML configuration file loading and validation
// for the sync tool. The configuration file is optional: a missing file
// yields the defaults, a present file is validated strictly.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the tool looks for its configuration.
const DefaultPath = ".envsync.yaml"

// Config is the root configuration structure.
type Config struct {
	Files  Files  `yaml:"files"`
	Remote Remote `yaml:"remote"`
}

// Files names the local files the sync operations read and write.
type Files struct {
	Source   string `yaml:"source"`   // source-of-truth env file (push/clean input)
	Snapshot string `yaml:"snapshot"` // production snapshot file (pull output)
}

// Remote configures the external platform client.
type Remote struct {
	Command string        `yaml:"command"`         // client binary name (e.g. "vercel")
	Scope   string        `yaml:"scope,omitempty"` // optional team/scope passed as --scope (supports ${VAR})
	Timeout time.Duration `yaml:"timeout"`         // per-call deadline for client invocations
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Files: Files{
			Source:   ".env.local",
			Snapshot: ".env.production.local",
		},
		Remote: Remote{
			Command: "vercel",
			Timeout: 30 * time.Second,
		},
	}
}

// Validate fills in defaults for omitted fields and rejects values that
// would make remote calls misbehave.
func (c *Config) Validate() error {
	defaults := Default()

	if strings.TrimSpace(c.Files.Source) == "" {
		c.Files.Source = defaults.Files.Source
	}
	if strings.TrimSpace(c.Files.Snapshot) == "" {
		c.Files.Snapshot = defaults.Files.Snapshot
	}
	if strings.TrimSpace(c.Remote.Command) == "" {
		c.Remote.Command = defaults.Remote.Command
	}
	if c.Remote.Timeout == 0 {
		c.Remote.Timeout = defaults.Remote.Timeout
	}
	if c.Remote.Timeout < 0 {
		return fmt.Errorf("remote.timeout must be > 0, got %s", c.Remote.Timeout)
	}
	if c.Files.Source == c.Files.Snapshot {
		return errors.New("files.source and files.snapshot must differ: pull overwrites the snapshot file")
	}
	return nil
}

// ExtraArgs returns the global arguments appended to every client call.
func (c *Config) ExtraArgs() []string {
	if c.Remote.Scope == "" {
		return nil
	}
	return []string{"--scope", c.Remote.Scope}
}

// Load reads the configuration file at path. A missing file is not an
// error; the defaults apply, so the tool works out of the box inside a
// linked project. ${VAR} references in the file are expanded from the
// process environment before parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
