package envfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env.local")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Entries
	}{
		{
			name:    "plain_pairs",
			content: "A=1\nB=2\n",
			want:    Entries{{Key: "A", Value: "1"}, {Key: "B", Value: "2"}},
		},
		{
			name:    "comments_and_blanks",
			content: "# comment\n\nA=1\n   \n# another\nB=2\n",
			want:    Entries{{Key: "A", Value: "1"}, {Key: "B", Value: "2"}},
		},
		{
			name:    "quoted_value",
			content: "FOO=\"bar\"\n",
			want:    Entries{{Key: "FOO", Value: "bar"}},
		},
		{
			name:    "unbalanced_quote_kept",
			content: "FOO=\"bar\n",
			want:    Entries{{Key: "FOO", Value: "\"bar"}},
		},
		{
			name:    "embedded_carriage_return_stripped",
			content: "FOO=\"ba\rr\"\n",
			want:    Entries{{Key: "FOO", Value: "bar"}},
		},
		{
			name:    "crlf_line_endings",
			content: "A=1\r\nB=2\r\n",
			want:    Entries{{Key: "A", Value: "1"}, {Key: "B", Value: "2"}},
		},
		{
			name:    "value_with_equals",
			content: "URL=https://example.com/?a=b\n",
			want:    Entries{{Key: "URL", Value: "https://example.com/?a=b"}},
		},
		{
			name:    "empty_value",
			content: "EMPTY=\n",
			want:    Entries{{Key: "EMPTY", Value: ""}},
		},
		{
			name:    "line_without_equals_skipped",
			content: "garbage\nA=1\n",
			want:    Entries{{Key: "A", Value: "1"}},
		},
		{
			name:    "duplicate_last_wins_first_position",
			content: "A=1\nB=2\nA=3\n",
			want:    Entries{{Key: "A", Value: "3"}, {Key: "B", Value: "2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(writeFile(t, tt.content))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Parse() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entry %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("Parse() expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Parse() error = %v, want fs.ErrNotExist", err)
	}
}

func TestKeys(t *testing.T) {
	entries := Entries{{Key: "A", Value: "1"}, {Key: "B", Value: "2"}}
	keys := entries.Keys()
	if len(keys) != 2 {
		t.Fatalf("Keys() returned %d keys, want 2", len(keys))
	}
	if _, ok := keys["A"]; !ok {
		t.Error("Keys() missing A")
	}
	if _, ok := keys["B"]; !ok {
		t.Error("Keys() missing B")
	}
}
