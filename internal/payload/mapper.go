package payload

import (
	"encoding/json"
	"strings"

	"github.com/jimezsa/jobposter/internal/models"
)

// Flat form keys accepted by MapFields.
const (
	FieldTitle                 = "title"
	FieldDescriptionHTML       = "descriptionHTML"
	FieldEmploymentType        = "employmentType"
	FieldRemoteType            = "remoteType"
	FieldApplyURL              = "applyUrl"
	FieldRefID                 = "refId"
	FieldDatePosted            = "datePosted"
	FieldValidThrough          = "validThrough"
	FieldApplicantLocationReqs = "applicantLocationRequirements"
	FieldOrgName               = "org_name"
	FieldOrgWebsite            = "org_website"
	FieldOrgLogoURL            = "org_logo_url"
	FieldLocality              = "locality"
	FieldRegion                = "region"
	FieldPostalCode            = "postal_code"
	FieldCountry               = "country"
	FieldSalaryCurrency        = "salary_currency"
	FieldSalaryMin             = "salary_min"
	FieldSalaryMax             = "salary_max"
	FieldSalaryUnit            = "salary_unit"
)

// topLevelFields are copied into JobFields under their own name.
var topLevelFields = []string{
	FieldTitle,
	FieldDescriptionHTML,
	FieldEmploymentType,
	FieldRemoteType,
	FieldApplyURL,
	FieldRefID,
	FieldDatePosted,
	FieldValidThrough,
	FieldApplicantLocationReqs,
}

// RawFields holds flat form values keyed by the Field* constants.
type RawFields map[string]string

func (r RawFields) get(key string) string {
	return strings.TrimSpace(r[key])
}

// Request is the typed form of a job submission before it is put on the wire.
type Request struct {
	URL              string
	Fields           Document
	Modules          []string
	Credentials      Document
	HoldIfIncomplete bool
}

// Document assembles the wire payload and normalizes it.
func (r Request) Document() Document {
	doc := Document{
		"fields":           r.Fields,
		"modules":          modulesValue(r.Modules),
		"credentials":      r.Credentials,
		"holdIfIncomplete": r.HoldIfIncomplete,
	}
	if url := strings.TrimSpace(r.URL); url != "" {
		doc["url"] = url
	}
	return NormalizeDocument(doc)
}

// BuildPayload maps flat form values into the nested request shape expected by
// the jobs endpoint and normalizes the result.
func BuildPayload(jobURL string, raw RawFields, modules []string, credentials Document, hold bool) Document {
	return Request{
		URL:              jobURL,
		Fields:           MapFields(raw),
		Modules:          modules,
		Credentials:      credentials,
		HoldIfIncomplete: hold,
	}.Document()
}

// MapFields builds the nested JobFields document from flat form values. The
// result is not normalized.
func MapFields(raw RawFields) Document {
	fields := make(Document, len(topLevelFields)+3)
	for _, key := range topLevelFields {
		fields[key] = raw.get(key)
	}

	fields["hiringOrganization"] = Document{
		"name":    raw.get(FieldOrgName),
		"website": raw.get(FieldOrgWebsite),
		"logoUrl": raw.get(FieldOrgLogoURL),
	}
	fields["addresses"] = []any{
		Document{
			"locality":   raw.get(FieldLocality),
			"region":     raw.get(FieldRegion),
			"postalCode": raw.get(FieldPostalCode),
			"country":    raw.get(FieldCountry),
		},
	}
	fields["salary"] = Document{
		"currency": raw.get(FieldSalaryCurrency),
		"min":      NumberOrString(raw.get(FieldSalaryMin)),
		"max":      NumberOrString(raw.get(FieldSalaryMax)),
		"unit":     raw.get(FieldSalaryUnit),
	}
	return fields
}

// MergeFields deep-merges overlay onto base. Nested objects merge key by key;
// any other overlay value replaces the base value unless it normalizes to
// absent. Neither input is modified.
func MergeFields(base, overlay Document) Document {
	out := make(Document, len(base)+len(overlay))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overlay {
		normalized, ok := Normalize(value)
		if !ok {
			continue
		}
		overlayMap, overlayIsMap := normalized.(map[string]any)
		baseMap, baseIsMap := out[key].(map[string]any)
		if overlayIsMap && baseIsMap {
			out[key] = MergeFields(baseMap, overlayMap)
			continue
		}
		out[key] = normalized
	}
	return out
}

// ComposeFields overlays flat form values onto structured fields. Form values
// that are present win; fields may be nil.
func ComposeFields(fields Document, raw RawFields) Document {
	return MergeFields(fields, MapFields(raw))
}

// ModuleSelection splits comma-separated ids, trims them and drops blanks and
// repeats. The first occurrence of an id keeps its position.
func ModuleSelection(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		for _, id := range strings.Split(value, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func modulesValue(ids []string) any {
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return models.ModulesAll
	}
	return out
}

// NumberOrString returns value as a json.Number when it is a valid JSON number
// and unchanged otherwise.
func NumberOrString(value string) any {
	if value == "" {
		return ""
	}
	var number float64
	if err := json.Unmarshal([]byte(value), &number); err != nil {
		return value
	}
	return json.Number(value)
}
