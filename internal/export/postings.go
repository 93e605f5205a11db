package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/PuerkitoBio/goquery"
	"github.com/muesli/termenv"
)

const previewLength = 80

// WritePostings renders extracted JobFields documents. JSON output of a
// single posting is the bare document so it can be used as a fields file.
func WritePostings(w io.Writer, postings []map[string]any, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		if len(postings) == 1 {
			return writeJSON(w, postings[0])
		}
		if postings == nil {
			postings = []map[string]any{}
		}
		return writeJSON(w, postings)
	case FormatMarkdown:
		return writePostingsMarkdown(w, postings)
	default:
		return writePostingsTable(w, postings, opts)
	}
}

func writePostingsTable(w io.Writer, postings []map[string]any, opts WriteOptions) error {
	if len(postings) == 0 {
		_, err := fmt.Fprintln(w, "No postings.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join([]string{"title", "organization", "apply_url", "description"}, "\t"))
	output := termenv.NewOutput(w)
	for _, posting := range postings {
		row := []string{
			orDash(text(posting["title"])),
			orDash(text(nested(posting, "hiringOrganization", "name"))),
			formatLink(text(posting["applyUrl"]), output, opts),
			orDash(DescriptionPreview(text(posting["descriptionHTML"]), previewLength)),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func writePostingsMarkdown(w io.Writer, postings []map[string]any) error {
	if len(postings) == 0 {
		_, err := fmt.Fprintln(w, "No postings.")
		return err
	}
	for _, posting := range postings {
		lines := []string{fmt.Sprintf("- **%s** (%s)", orDash(text(posting["title"])), orDash(text(nested(posting, "hiringOrganization", "name"))))}
		if apply := text(posting["applyUrl"]); apply != "" {
			lines = append(lines, fmt.Sprintf("  Apply: [Open listing](<%s>)", apply))
		}
		if kind := text(posting["employmentType"]); kind != "" {
			lines = append(lines, "  Type: "+kind)
		}
		if preview := DescriptionPreview(text(posting["descriptionHTML"]), 240); preview != "" {
			lines = append(lines, "  Summary: "+preview)
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// DescriptionPreview returns the visible text of an HTML fragment, collapsed to
// one line and cut to limit bytes.
func DescriptionPreview(fragment string, limit int) string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return ""
	}
	value := fragment
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment)); err == nil {
		value = doc.Text()
	}
	value = strings.Join(strings.Fields(value), " ")
	if limit > 3 && len(value) > limit {
		value = strings.TrimSpace(value[:limit-3]) + "..."
	}
	return value
}

func nested(doc map[string]any, keys ...string) any {
	var current any = doc
	for _, key := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[key]
	}
	return current
}

func text(value any) string {
	s, _ := value.(string)
	return safe(s)
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
