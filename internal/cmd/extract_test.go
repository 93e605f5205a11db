package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const postingPage = `<html><head>
<script type="application/ld+json">
{"@type": "ItemList", "itemListElement": [
  {"@type": "JobPosting", "title": "Backend Engineer", "url": "https://acme.example/jobs/1", "hiringOrganization": {"name": "Acme"}},
  {"@type": "JobPosting", "title": "Designer", "url": "https://acme.example/jobs/2"}
]}
</script>
</head></html>`

func writePage(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.html")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestExtractCmdFirstPosting(t *testing.T) {
	tc := newTestContext(&fakeAPI{})

	if err := (&ExtractCmd{Source: writePage(t, postingPage)}).Run(tc.Context); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(tc.out.Bytes(), &fields); err != nil {
		t.Fatalf("stdout is not a fields object: %q", tc.out.String())
	}
	if fields["title"] != "Backend Engineer" {
		t.Fatalf("title = %v", fields["title"])
	}
}

func TestExtractCmdAllAsMarkdown(t *testing.T) {
	tc := newTestContext(&fakeAPI{})

	if err := (&ExtractCmd{Source: writePage(t, postingPage), All: true, Format: "md"}).Run(tc.Context); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	out := tc.out.String()
	for _, want := range []string{"- **Backend Engineer** (Acme)", "- **Designer** (-)", "[Open listing](<https://acme.example/jobs/2>)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("stdout = %q, want %q", out, want)
		}
	}
}

func TestExtractCmdFromURL(t *testing.T) {
	doer := &fakeAPI{routes: map[string]fakeResponse{"/jobs/1": {status: 200, body: postingPage}}}
	tc := newTestContext(doer)

	if err := (&ExtractCmd{Source: "https://acme.example/jobs/1", All: true}).Run(tc.Context); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var postings []map[string]any
	if err := json.Unmarshal(tc.out.Bytes(), &postings); err != nil || len(postings) != 2 {
		t.Fatalf("stdout = %q, want 2 postings", tc.out.String())
	}
}

func TestExtractCmdNoMarkup(t *testing.T) {
	tc := newTestContext(&fakeAPI{})

	err := (&ExtractCmd{Source: writePage(t, "<html><body>Hi</body></html>")}).Run(tc.Context)
	if err == nil || !strings.Contains(err.Error(), "no JobPosting markup") {
		t.Fatalf("Run() error = %v, want no-markup error", err)
	}
}
