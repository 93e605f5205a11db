package jsonld

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/jimezsa/jobposter/internal/models"
	"github.com/jimezsa/jobposter/internal/payload"
)

// fieldsFromPosting maps a schema.org JobPosting onto the JobFields shape.
// The result still holds empty values.
func fieldsFromPosting(value map[string]any) payload.Document {
	return payload.Document{
		"title":                         stringValue(value["title"], value["name"]),
		"descriptionHTML":               description(value["description"]),
		"employmentType":                employmentType(value["employmentType"]),
		"remoteType":                    remoteType(value["jobLocationType"]),
		"applyUrl":                      stringValue(value["url"]),
		"refId":                         identifier(value["identifier"]),
		"datePosted":                    stringValue(value["datePosted"]),
		"validThrough":                  stringValue(value["validThrough"]),
		"applicantLocationRequirements": locationRequirements(value["applicantLocationRequirements"]),
		"hiringOrganization":            organization(value["hiringOrganization"]),
		"addresses":                     addresses(value["jobLocation"]),
		"salary":                        salary(value["baseSalary"]),
	}
}

// description keeps markup as-is and unescapes entity-encoded markup once.
func description(value any) string {
	text := stringValue(value)
	if !strings.Contains(text, "<") && strings.Contains(text, "&lt;") {
		text = html.UnescapeString(text)
	}
	return text
}

func employmentType(value any) string {
	raw := stringValue(firstOf(value))
	if raw == "" {
		return ""
	}
	raw = strings.ToUpper(strings.NewReplacer("-", "_", " ", "_").Replace(raw))
	for _, known := range models.EmploymentTypes {
		if raw == known {
			return raw
		}
	}
	if raw == "FULLTIME" || raw == "PARTTIME" {
		return raw[:4] + "_" + raw[4:]
	}
	return "OTHER"
}

func remoteType(value any) string {
	for _, item := range asSlice(value) {
		if strings.EqualFold(stringValue(item), "TELECOMMUTE") {
			return "REMOTE"
		}
	}
	return ""
}

func identifier(value any) string {
	switch v := firstOf(value).(type) {
	case map[string]any:
		return stringValue(v["value"], v["@id"])
	default:
		return stringValue(v)
	}
}

func locationRequirements(value any) string {
	var names []string
	for _, item := range asSlice(value) {
		if name := stringValue(item); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

func organization(value any) payload.Document {
	org, ok := firstOf(value).(map[string]any)
	if !ok {
		return payload.Document{"name": stringValue(value)}
	}
	return payload.Document{
		"name":    stringValue(org["name"], org["legalName"]),
		"website": stringValue(firstOf(org["sameAs"]), org["url"]),
		"logoUrl": imageURL(org["logo"]),
	}
}

func imageURL(value any) string {
	switch v := firstOf(value).(type) {
	case map[string]any:
		return stringValue(v["url"], v["contentUrl"])
	default:
		return stringValue(v)
	}
}

func addresses(value any) []any {
	var out []any
	for _, item := range asSlice(value) {
		place, ok := item.(map[string]any)
		if !ok {
			continue
		}
		address, ok := place["address"].(map[string]any)
		if !ok {
			address = place
		}
		out = append(out, payload.Document{
			"locality":   stringValue(address["addressLocality"]),
			"region":     stringValue(address["addressRegion"]),
			"postalCode": stringValue(address["postalCode"]),
			"country":    stringValue(address["addressCountry"]),
		})
	}
	return out
}

func salary(value any) payload.Document {
	base, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	out := payload.Document{"currency": stringValue(base["currency"])}

	amount, ok := base["value"].(map[string]any)
	if !ok {
		single := number(base["value"])
		out["min"] = single
		out["max"] = single
		out["unit"] = strings.ToUpper(stringValue(base["unitText"]))
		return out
	}

	if single := number(amount["value"]); single != "" {
		out["min"] = single
		out["max"] = single
	}
	if low := number(amount["minValue"]); low != "" {
		out["min"] = low
	}
	if high := number(amount["maxValue"]); high != "" {
		out["max"] = high
	}
	out["unit"] = strings.ToUpper(stringValue(amount["unitText"], base["unitText"]))
	return out
}

func number(value any) any {
	switch v := value.(type) {
	case json.Number:
		return v
	case string:
		return payload.NumberOrString(strings.TrimSpace(v))
	}
	return ""
}

// stringValue returns the first non-blank value rendered as text. Objects
// contribute their name.
func stringValue(values ...any) string {
	for _, value := range values {
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		case json.Number:
			return v.String()
		case map[string]any:
			if name := stringValue(v["name"]); name != "" {
				return name
			}
		}
	}
	return ""
}

// firstOf returns the first non-nil value, descending into the first element
// of an array.
func firstOf(values ...any) any {
	for _, value := range values {
		if list, ok := value.([]any); ok {
			if len(list) == 0 {
				continue
			}
			value = list[0]
		}
		if value != nil {
			return value
		}
	}
	return nil
}

func asSlice(value any) []any {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		return v
	default:
		return []any{v}
	}
}

func mapValue(value any, key string) any {
	m, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	return m[key]
}
