// Package envfile parses local environment files into ordered key-value
// entries. The local file is the source of truth for every sync operation,
// so parsing is deliberately strict about what it accepts and silent about
// what it skips: blank lines and #-comments are ignored, anything else is
// split on the first "=".
package envfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Entry is a single KEY=VALUE pair from the source file.
type Entry struct {
	Key   string
	Value string
}

// Entries preserves the file order of the source, which drives the order
// of per-key remote calls during push.
type Entries []Entry

// Keys returns the set of keys for membership checks during reconciliation.
func (e Entries) Keys() map[string]struct{} {
	keys := make(map[string]struct{}, len(e))
	for _, entry := range e {
		keys[entry.Key] = struct{}{}
	}
	return keys
}

// Parse reads an environment file and returns its entries in file order.
//
// Parsing rules:
//   - Blank lines and lines starting with "#" are skipped.
//   - Lines without "=" are skipped.
//   - The first "=" is always the split point; no escaping is supported.
//   - One leading and one trailing double quote are stripped from the value
//     only when both are present. Unbalanced quotes are kept as-is.
//   - Carriage returns are stripped from values (files written on Windows).
//
// Duplicate keys keep the position of the first occurrence but take the
// value of the last one. A missing file is an error; the caller decides
// whether that aborts the run.
func Parse(path string) (Entries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	defer f.Close()

	var entries Entries
	index := make(map[string]int)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		entry := Entry{Key: key, Value: cleanValue(value)}
		if i, seen := index[key]; seen {
			entries[i] = entry
			continue
		}
		index[key] = len(entries)
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}

	return entries, nil
}

// cleanValue strips one pair of surrounding double quotes (only when both
// sides have one) and removes any carriage returns left over from CRLF
// line endings.
func cleanValue(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		value = value[1 : len(value)-1]
	}
	return strings.ReplaceAll(value, "\r", "")
}
