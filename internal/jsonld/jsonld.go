// Package jsonld prefills job fields from schema.org JobPosting markup embedded
// in career pages.
package jsonld

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jobposter/internal/payload"
)

// Extract returns one normalized JobFields document per JobPosting found in
// the page's ld+json scripts, in page order. Scripts that fail to decode are
// skipped. Postings that map to nothing are dropped, and so are duplicates.
func Extract(doc *goquery.Document) []payload.Document {
	var out []payload.Document
	seen := map[string]struct{}{}

	doc.Find("script[type='application/ld+json']").Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}

		data, err := decode(raw)
		if err != nil {
			return
		}

		for _, posting := range postings(data) {
			fields := payload.NormalizeDocument(fieldsFromPosting(posting))
			if len(fields) == 0 {
				continue
			}
			key := dedupeKey(fields)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, fields)
		}
	})

	return out
}

func decode(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "<!--")
	raw = strings.TrimSuffix(raw, "-->")
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, "\u2028", "")
	raw = strings.ReplaceAll(raw, "\u2029", "")

	decoder := json.NewDecoder(bytes.NewReader([]byte(raw)))
	decoder.UseNumber()
	var data any
	if err := decoder.Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}

// postings walks arrays, @graph, mainEntity and ItemList containers and
// collects every JobPosting object.
func postings(data any) []map[string]any {
	var out []map[string]any

	switch value := data.(type) {
	case []any:
		for _, item := range value {
			out = append(out, postings(item)...)
		}
	case map[string]any:
		switch strings.ToLower(typeName(value)) {
		case "jobposting":
			return append(out, value)
		case "itemlist":
			out = append(out, itemListPostings(value)...)
		case "listitem":
			if item, ok := value["item"]; ok {
				out = append(out, postings(item)...)
			}
		}
		if graph, ok := value["@graph"]; ok {
			out = append(out, postings(graph)...)
		}
		if main, ok := value["mainEntity"]; ok {
			out = append(out, postings(main)...)
		}
	}

	return out
}

func itemListPostings(value map[string]any) []map[string]any {
	items, ok := value["itemListElement"]
	if !ok {
		return nil
	}
	return postings(items)
}

// typeName returns the @type of value. Multi-typed nodes report JobPosting
// when it is among their types.
func typeName(value map[string]any) string {
	switch typ := firstOf(value["@type"], value["type"]).(type) {
	case string:
		return typ
	case []any:
		var first string
		for _, item := range typ {
			name, _ := item.(string)
			if strings.EqualFold(name, "JobPosting") {
				return name
			}
			if first == "" {
				first = name
			}
		}
		return first
	}
	return ""
}

func dedupeKey(fields payload.Document) string {
	if apply := stringValue(fields["applyUrl"]); apply != "" {
		return apply
	}
	org := stringValue(mapValue(fields["hiringOrganization"], "name"))
	return strings.ToLower(stringValue(fields["title"]) + "|" + org + "|" + stringValue(fields["refId"]))
}
