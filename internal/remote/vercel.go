package remote

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lmartin/envsync/internal/scope"
)

// CLI drives the platform's command-line client (vercel by default). Every
// method is one blocking subprocess call bounded by Timeout; retry policy,
// authentication, and network handling belong to the client itself.
type CLI struct {
	Command string        // client binary, e.g. "vercel"
	Extra   []string      // extra global arguments, e.g. --scope my-team
	Timeout time.Duration // per-call deadline, 0 = no deadline
	Runner  Runner
}

// NewCLI builds a store backed by the named client binary.
func NewCLI(command string, extra []string, timeout time.Duration) *CLI {
	return &CLI{
		Command: command,
		Extra:   extra,
		Timeout: timeout,
		Runner:  ExecRunner{},
	}
}

func (c *CLI) run(ctx context.Context, stdin string, args ...string) (string, string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	return c.Runner.Run(ctx, stdin, c.Command, append(args, c.Extra...)...)
}

// List returns the key names stored for a scope, in the order the client
// prints them. The listing is staged through a temporary file scoped to
// this call; the file is removed on every exit path.
func (c *CLI) List(ctx context.Context, s scope.Scope) ([]string, error) {
	stdout, stderr, err := c.run(ctx, "", append([]string{"env", "ls"}, s.Args()...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %s: %w", s, firstLine(stderr), err)
	}

	staging, err := os.CreateTemp("", "envsync-ls-*")
	if err != nil {
		return nil, fmt.Errorf("failed to stage listing: %w", err)
	}
	defer os.Remove(staging.Name())
	defer staging.Close()

	if _, err := staging.WriteString(stdout); err != nil {
		return nil, fmt.Errorf("failed to stage listing: %w", err)
	}
	if _, err := staging.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to stage listing: %w", err)
	}

	return parseListing(staging)
}

// Add creates key with value in the given scope. The value travels on
// stdin, never on the argument list, so it stays out of process listings.
func (c *CLI) Add(ctx context.Context, s scope.Scope, key, value string) error {
	args := append([]string{"env", "add", key}, s.Args()...)
	_, stderr, err := c.run(ctx, value, args...)
	if err != nil {
		return fmt.Errorf("failed to add %s to %s: %s: %w", key, s, firstLine(stderr), err)
	}
	return nil
}

// Remove deletes key from the given scope. Removing a key the remote does
// not have reports ErrNotFound so callers can treat it as benign.
func (c *CLI) Remove(ctx context.Context, s scope.Scope, key string) error {
	args := append([]string{"env", "rm", key}, s.Args()...)
	args = append(args, "--yes")
	_, stderr, err := c.run(ctx, "", args...)
	if err != nil {
		if strings.Contains(strings.ToLower(stderr), "not found") {
			return fmt.Errorf("%s in %s: %w", key, s, ErrNotFound)
		}
		return fmt.Errorf("failed to remove %s from %s: %s: %w", key, s, firstLine(stderr), err)
	}
	return nil
}

// Pull bulk-downloads one target's variables into destPath, overwriting
// whatever is there. The file format is owned by the client.
func (c *CLI) Pull(ctx context.Context, target scope.Target, destPath string) error {
	args := []string{"env", "pull", destPath, "--environment", string(target), "--yes"}
	_, stderr, err := c.run(ctx, "", args...)
	if err != nil {
		return fmt.Errorf("failed to pull %s snapshot: %s: %w", target, firstLine(stderr), err)
	}
	return nil
}

// parseListing extracts key names from the client's tabular env listing.
// Informational lines precede a header row whose first column is "name";
// every subsequent non-empty line starts with a key. Duplicate keys are
// passed through untouched: removal of a duplicate is tolerated upstream.
func parseListing(r io.Reader) ([]string, error) {
	keys := []string{}
	pastHeader := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if !pastHeader {
			if strings.EqualFold(fields[0], "name") {
				pastHeader = true
			}
			continue
		}
		keys = append(keys, fields[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse listing: %w", err)
	}

	return keys, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "no output"
	}
	return s
}
