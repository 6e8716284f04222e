package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lmartin/envsync/internal/scope"
)

func init() {
	DisableColors()
}

func TestConsoleEventLines(t *testing.T) {
	dev := scope.Scope{Target: scope.Development}

	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{
			name:  "added",
			event: Event{Operation: "push", Scope: dev, Key: "API_KEY", Action: Added},
			want:  "+ added     API_KEY (development)",
		},
		{
			name:  "skipped",
			event: Event{Operation: "push", Scope: dev, Key: "API_KEY", Action: Skipped},
			want:  "= skipped   API_KEY (development)",
		},
		{
			name:  "updated",
			event: Event{Operation: "push", Scope: dev, Key: "API_KEY", Action: Updated},
			want:  "~ updated   API_KEY (development)",
		},
		{
			name:  "removed",
			event: Event{Operation: "clean", Scope: dev, Key: "STALE", Action: Removed},
			want:  "- removed   STALE (development)",
		},
		{
			name:  "error_includes_cause",
			event: Event{Operation: "push", Scope: dev, Key: "API_KEY", Action: Failed, Err: errors.New("quota exceeded")},
			want:  "! error     API_KEY (development): quota exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Console{Out: &buf}.Event(tt.event)
			if got := strings.TrimSpace(buf.String()); got != tt.want {
				t.Errorf("line = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConsoleBranchScope(t *testing.T) {
	var buf bytes.Buffer
	Console{Out: &buf}.Event(Event{
		Operation: "push",
		Scope:     scope.Scope{Target: scope.Preview, Branch: "feature-x"},
		Key:       "API_KEY",
		Action:    Added,
	})
	if !strings.Contains(buf.String(), "(preview/feature-x)") {
		t.Errorf("line = %q, want branch-qualified scope", buf.String())
	}
}

func TestRecorderAndMulti(t *testing.T) {
	rec := &Recorder{}
	var buf bytes.Buffer
	sink := Multi{rec, Console{Out: &buf}}

	sink.Event(Event{Operation: "push", Scope: scope.Scope{Target: scope.Production}, Key: "A", Action: Added})

	if len(rec.Events) != 1 {
		t.Fatalf("recorder has %d events, want 1", len(rec.Events))
	}
	if buf.Len() == 0 {
		t.Error("console sink produced no output")
	}
}

func TestRenderListing(t *testing.T) {
	var buf bytes.Buffer
	RenderListing(&buf, scope.Scope{Target: scope.Development}, []string{"B_KEY", "A_KEY"})

	out := buf.String()
	if !strings.Contains(out, "Variables in development") {
		t.Errorf("missing header: %q", out)
	}
	// Listing order is the remote order, not sorted.
	if strings.Index(out, "B_KEY") > strings.Index(out, "A_KEY") {
		t.Errorf("keys reordered: %q", out)
	}
}

func TestRenderListingEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderListing(&buf, scope.Scope{Target: scope.Production}, nil)
	if !strings.Contains(buf.String(), "(none)") {
		t.Errorf("empty listing output = %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatal(err)
		}
	})

	events := []Event{
		{Operation: "push", Scope: scope.Scope{Target: scope.Development}, Key: "A", Action: Added},
		{Operation: "clean", Scope: scope.Scope{Target: scope.Preview, Branch: "main"}, Key: "B", Action: Removed},
		{Operation: "push", Scope: scope.Scope{Target: scope.Production}, Key: "C", Action: Failed, Err: errors.New("boom")},
	}

	path, err := WriteJSON(events)
	if err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if filepath.Dir(path) != "reports" {
		t.Errorf("report written to %q, want reports/", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}

	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if len(summary.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(summary.Results))
	}
	if summary.Results[1].Branch != "main" {
		t.Errorf("branch = %q, want main", summary.Results[1].Branch)
	}
	if summary.Results[2].Error != "boom" {
		t.Errorf("error = %q, want boom", summary.Results[2].Error)
	}
}
