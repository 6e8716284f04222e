package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry is one event in JSON form. Err is flattened to a string so the
// summary stays readable without custom marshaling.
type Entry struct {
	Operation string `json:"operation"`
	Target    string `json:"target"`
	Branch    string `json:"branch,omitempty"`
	Key       string `json:"key,omitempty"`
	Action    Action `json:"action"`
	Error     string `json:"error,omitempty"`
}

// Summary is the JSON-serializable record of one full run.
type Summary struct {
	Timestamp time.Time `json:"timestamp"`
	Results   []Entry   `json:"results"`
}

// WriteJSON writes the recorded events of a run to a timestamped file in
// the reports directory and returns its path. Timestamped filenames keep
// earlier runs around for comparison.
//
// Filename format: sync-YYYYMMDD-HHMMSS.json, e.g. "sync-20260829-104501.json".
func WriteJSON(events []Event) (string, error) {
	reportsDir := "reports"
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	summary := Summary{
		Timestamp: time.Now(),
		Results:   make([]Entry, len(events)),
	}
	for i, e := range events {
		entry := Entry{
			Operation: e.Operation,
			Target:    string(e.Scope.Target),
			Branch:    e.Scope.Branch,
			Key:       e.Key,
			Action:    e.Action,
		}
		if e.Err != nil {
			entry.Error = e.Err.Error()
		}
		summary.Results[i] = entry
	}

	filename := fmt.Sprintf("sync-%s.json", time.Now().Format("20060102-150405"))
	path := filepath.Join(reportsDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}

	return path, nil
}
