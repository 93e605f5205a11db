package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jimezsa/jobposter/internal/api"
	"github.com/jimezsa/jobposter/internal/models"
)

var testModules = []models.ModuleDescriptor{
	{ID: "linkedin", Label: "LinkedIn", RequiredFields: []string{"title", "descriptionHTML"}, RequiredCredentials: []string{"linkedin.token"}},
	{ID: "site", Label: "Careers site"},
}

func TestWriteModulesCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteModules(&buf, testModules, FormatCSV); err != nil {
		t.Fatalf("WriteModules() error = %v", err)
	}
	want := "id,label,required_fields,required_credentials\n" +
		"linkedin,LinkedIn,title; descriptionHTML,linkedin.token\n" +
		"site,Careers site,,\n"
	if buf.String() != want {
		t.Fatalf("WriteModules() = %q, want %q", buf.String(), want)
	}
}

func TestWriteModulesTSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteModules(&buf, testModules[1:], FormatTSV); err != nil {
		t.Fatalf("WriteModules() error = %v", err)
	}
	want := "id\tlabel\trequired_fields\trequired_credentials\nsite\tCareers site\t\t\n"
	if buf.String() != want {
		t.Fatalf("WriteModules() = %q, want %q", buf.String(), want)
	}
}

func TestWriteModulesJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteModules(&buf, nil, FormatJSON); err != nil {
		t.Fatalf("WriteModules() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("WriteModules(nil) = %q, want []", buf.String())
	}

	buf.Reset()
	if err := WriteModules(&buf, testModules, FormatJSON); err != nil {
		t.Fatalf("WriteModules() error = %v", err)
	}
	var decoded []models.ModuleDescriptor
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(decoded) != 2 || decoded[0].ID != "linkedin" {
		t.Fatalf("decoded = %+v", decoded)
	}
}

func TestWriteModulesTableAndMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteModules(&buf, testModules, FormatTable); err != nil {
		t.Fatalf("WriteModules() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "id") || !strings.HasSuffix(lines[2], "-") {
		t.Fatalf("table = %q", buf.String())
	}

	buf.Reset()
	if err := WriteModules(&buf, testModules, FormatMarkdown); err != nil {
		t.Fatalf("WriteModules() error = %v", err)
	}
	if !strings.Contains(buf.String(), "- **LinkedIn** (`linkedin`)\n  Required fields: title, descriptionHTML\n") {
		t.Fatalf("markdown = %q", buf.String())
	}

	buf.Reset()
	if err := WriteModules(&buf, nil, FormatTable); err != nil {
		t.Fatalf("WriteModules() error = %v", err)
	}
	if buf.String() != "No modules.\n" {
		t.Fatalf("empty table = %q", buf.String())
	}
}

func TestWriteDocumentKeepsHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDocument(&buf, map[string]any{"descriptionHTML": "<p>a & b</p>"}); err != nil {
		t.Fatalf("WriteDocument() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"<p>a & b</p>"`) {
		t.Fatalf("WriteDocument() = %q, want unescaped HTML", buf.String())
	}
}

func TestWriteResult(t *testing.T) {
	var buf bytes.Buffer
	result := api.Result{StatusCode: 422, Body: map[string]any{"error": "missing title"}}
	if err := WriteResult(&buf, result, FormatTable); err != nil {
		t.Fatalf("WriteResult() error = %v", err)
	}
	want := "HTTP 422\n{\n  \"error\": \"missing title\"\n}\n"
	if buf.String() != want {
		t.Fatalf("WriteResult() = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := WriteResult(&buf, api.Result{Body: map[string]any{"error": "refused"}}, FormatJSON); err != nil {
		t.Fatalf("WriteResult() error = %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if decoded["statusCode"] != float64(0) {
		t.Fatalf("statusCode = %#v, want 0", decoded["statusCode"])
	}

	buf.Reset()
	if err := WriteResult(&buf, api.Result{Body: map[string]any{"error": "refused"}}, FormatTable); err != nil {
		t.Fatalf("WriteResult() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "HTTP 0 (no response)\n") {
		t.Fatalf("WriteResult() = %q", buf.String())
	}
}

func TestShortURLLabel(t *testing.T) {
	if got := shortURLLabel("https://www.example.com/review/42?token=x"); got != "example.com/review/42" {
		t.Fatalf("shortURLLabel() = %q", got)
	}
	long := "https://example.com/" + strings.Repeat("a", 100)
	if got := shortURLLabel(long); len(got) != 60 || !strings.HasSuffix(got, "...") {
		t.Fatalf("shortURLLabel() = %q, want 60 chars", got)
	}
}
