package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestDescriptionPreview(t *testing.T) {
	cases := []struct {
		html string
		max  int
		want string
	}{
		{"", 10, ""},
		{"<p>Build <b>APIs</b></p>\n<ul><li>Go</li></ul>", 80, "Build APIs Go"},
		{"plain text", 80, "plain text"},
		{"<p>abcdefghijklmnop</p>", 10, "abcdefg..."},
	}

	for _, tc := range cases {
		if got := DescriptionPreview(tc.html, tc.max); got != tc.want {
			t.Fatalf("DescriptionPreview(%q) = %q, want %q", tc.html, got, tc.want)
		}
	}
}

func TestWritePostingsJSON(t *testing.T) {
	single := []map[string]any{{"title": "SRE"}}

	var buf bytes.Buffer
	if err := WritePostings(&buf, single, FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("WritePostings() error = %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("single posting should be a bare object: %v", err)
	}

	buf.Reset()
	if err := WritePostings(&buf, append(single, map[string]any{"title": "Designer"}), FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("WritePostings() error = %v", err)
	}
	var docs []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &docs); err != nil || len(docs) != 2 {
		t.Fatalf("WritePostings() = %q, want array of 2", buf.String())
	}
}

func TestWritePostingsTable(t *testing.T) {
	postings := []map[string]any{{
		"title":              "Backend Engineer",
		"hiringOrganization": map[string]any{"name": "Acme"},
		"applyUrl":           "https://acme.example/jobs/1",
		"descriptionHTML":    "<p>Build APIs.</p>",
	}}

	var buf bytes.Buffer
	if err := WritePostings(&buf, postings, FormatTable, WriteOptions{}); err != nil {
		t.Fatalf("WritePostings() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("table lines = %d, want 2: %q", len(lines), buf.String())
	}
	for _, want := range []string{"Backend Engineer", "Acme", "https://acme.example/jobs/1", "Build APIs."} {
		if !strings.Contains(lines[1], want) {
			t.Fatalf("row %q missing %q", lines[1], want)
		}
	}

	buf.Reset()
	if err := WritePostings(&buf, nil, FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("WritePostings() error = %v", err)
	}
	if buf.String() != "No postings.\n" {
		t.Fatalf("empty markdown = %q", buf.String())
	}
}
