package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jimezsa/jobposter/internal/api"
	"github.com/jimezsa/jobposter/internal/export"
	"github.com/jimezsa/jobposter/internal/payload"
)

type SubmitCmd struct {
	URL string `name:"url" help:"Public job posting URL the API may import from."`
	JobFlags

	FieldsFile      string            `name:"fields-file" help:"JSON, JSON5 or YAML file with structured job fields (e.g. from extract)."`
	Fields          string            `help:"Structured job fields as JSON5 text; overrides --fields-file."`
	CredentialsFile string            `name:"credentials-file" help:"JSON, JSON5 or YAML file with per-module credentials."`
	Credentials     string            `help:"Credentials as JSON5 text; overrides --credentials-file."`
	Cred            map[string]string `help:"Single credential as family.key=value (repeatable)." mapsep:"none"`
	Module          []string          `name:"module" short:"m" help:"Module id to publish to (repeatable or comma-separated; default: all)."`
	Hold            bool              `help:"Hold the posting for review when modules lack required data." negatable:"" default:"${hold_default}"`
	Check           bool              `help:"Fetch modules first and warn about unknown ids and missing requirements."`
	DryRun          bool              `name:"dry-run" help:"Print the payload instead of sending it."`
}

// JobFlags carries one flag per flat form key.
type JobFlags struct {
	Title                         string `help:"Job title."`
	DescriptionHTML               string `name:"description-html" help:"Job description as HTML."`
	DescriptionFile               string `name:"description-file" help:"Read the HTML description from a file."`
	EmploymentType                string `name:"employment-type" help:"Employment type." enum:"${employment_types}" default:""`
	RemoteType                    string `name:"remote-type" help:"Remote type." enum:"${remote_types}" default:""`
	ApplyURL                      string `name:"apply-url" help:"Application URL."`
	RefID                         string `name:"ref-id" help:"Your reference id for the posting."`
	DatePosted                    string `name:"date-posted" help:"Posting date (YYYY-MM-DD)."`
	ValidThrough                  string `name:"valid-through" help:"Expiry date (YYYY-MM-DD)."`
	ApplicantLocationRequirements string `name:"applicant-location-requirements" help:"Where applicants must be located."`
	OrgName                       string `name:"org-name" help:"Hiring organization name."`
	OrgWebsite                    string `name:"org-website" help:"Hiring organization website."`
	OrgLogoURL                    string `name:"org-logo-url" help:"Hiring organization logo URL."`
	Locality                      string `help:"Address locality (city)."`
	Region                        string `help:"Address region (state)."`
	PostalCode                    string `name:"postal-code" help:"Address postal code."`
	Country                       string `help:"Address country."`
	SalaryCurrency                string `name:"salary-currency" help:"Salary currency (ISO 4217)."`
	SalaryMin                     string `name:"salary-min" help:"Minimum salary."`
	SalaryMax                     string `name:"salary-max" help:"Maximum salary."`
	SalaryUnit                    string `name:"salary-unit" help:"Salary period." enum:"${salary_units}" default:""`
}

func (f JobFlags) rawFields() (payload.RawFields, error) {
	description := f.DescriptionHTML
	if strings.TrimSpace(description) == "" && strings.TrimSpace(f.DescriptionFile) != "" {
		data, err := os.ReadFile(f.DescriptionFile)
		if err != nil {
			return nil, fmt.Errorf("read --description-file: %w", err)
		}
		description = string(data)
	}
	return payload.RawFields{
		payload.FieldTitle:                 f.Title,
		payload.FieldDescriptionHTML:       description,
		payload.FieldEmploymentType:        f.EmploymentType,
		payload.FieldRemoteType:            f.RemoteType,
		payload.FieldApplyURL:              f.ApplyURL,
		payload.FieldRefID:                 f.RefID,
		payload.FieldDatePosted:            f.DatePosted,
		payload.FieldValidThrough:          f.ValidThrough,
		payload.FieldApplicantLocationReqs: f.ApplicantLocationRequirements,
		payload.FieldOrgName:               f.OrgName,
		payload.FieldOrgWebsite:            f.OrgWebsite,
		payload.FieldOrgLogoURL:            f.OrgLogoURL,
		payload.FieldLocality:              f.Locality,
		payload.FieldRegion:                f.Region,
		payload.FieldPostalCode:            f.PostalCode,
		payload.FieldCountry:               f.Country,
		payload.FieldSalaryCurrency:        f.SalaryCurrency,
		payload.FieldSalaryMin:             f.SalaryMin,
		payload.FieldSalaryMax:             f.SalaryMax,
		payload.FieldSalaryUnit:            f.SalaryUnit,
	}, nil
}

var errNoResponse = errors.New("no response from API")

func (s *SubmitCmd) Run(ctx *Context) error {
	doc, err := s.payload()
	if err != nil {
		return err
	}

	client := ctx.APIClient()
	if s.Check {
		s.check(ctx, client, doc)
	}

	if s.DryRun {
		return export.WriteDocument(ctx.Out, doc)
	}

	result := client.SubmitJob(context.Background(), doc)
	ctx.Logger.Debug().Int("status_code", result.StatusCode).Str("status", result.Status()).Msg("job submitted")

	format := export.FormatTable
	if ctx.JSONOutput {
		format = export.FormatJSON
	}
	if err := export.WriteResult(ctx.Out, result, format); err != nil {
		return err
	}
	if !ctx.JSONOutput {
		reportResult(ctx, result)
	}

	if result.TransportFailed() {
		return fmt.Errorf("submit: %w: %s", errNoResponse, result.ErrorMessage())
	}
	return nil
}

// payload assembles the request from files, inline documents and flags, in
// increasing precedence.
func (s *SubmitCmd) payload() (payload.Document, error) {
	fields, err := readDocumentInput(s.FieldsFile, "--fields", s.Fields)
	if err != nil {
		return nil, err
	}
	credentials, err := readDocumentInput(s.CredentialsFile, "--credentials", s.Credentials)
	if err != nil {
		return nil, err
	}
	credentials, err = mergeCredentialFlags(credentials, s.Cred)
	if err != nil {
		return nil, err
	}
	raw, err := s.JobFlags.rawFields()
	if err != nil {
		return nil, err
	}

	return payload.Request{
		URL:              s.URL,
		Fields:           payload.ComposeFields(fields, raw),
		Modules:          payload.ModuleSelection(s.Module),
		Credentials:      credentials,
		HoldIfIncomplete: s.Hold,
	}.Document(), nil
}

func readDocumentInput(path string, flag string, text string) (payload.Document, error) {
	var doc payload.Document
	if strings.TrimSpace(path) != "" {
		fromFile, err := payload.ReadDocument(path)
		if err != nil {
			return nil, err
		}
		doc = fromFile
	}
	inline, err := payload.ParseDocument(flag, []byte(text))
	if err != nil {
		return nil, err
	}
	if inline != nil {
		doc = payload.MergeFields(doc, inline)
	}
	return doc, nil
}

func mergeCredentialFlags(credentials payload.Document, flags map[string]string) (payload.Document, error) {
	if len(flags) == 0 {
		return credentials, nil
	}
	overlay := payload.Document{}
	for name, value := range flags {
		family, key, ok := strings.Cut(strings.TrimSpace(name), ".")
		if !ok || family == "" || key == "" {
			return nil, fmt.Errorf("--cred %q: want family.key=value", name)
		}
		entries, _ := overlay[family].(payload.Document)
		if entries == nil {
			entries = payload.Document{}
			overlay[family] = entries
		}
		entries[key] = value
	}
	return payload.MergeFields(credentials, overlay), nil
}

func (s *SubmitCmd) check(ctx *Context, client *api.Client, doc payload.Document) {
	modules, err := client.FetchModules(context.Background())
	if err != nil {
		ctx.UI.Warnf("check skipped: %v", err)
		return
	}
	ctx.Session.Remember(modules)

	for _, id := range ctx.Session.Unknown(payload.ModuleSelection(s.Module)) {
		ctx.UI.Warnf("unknown module %q", id)
	}
	for _, missing := range payload.CheckRequirements(doc, modules) {
		ctx.UI.Warnf("%s", missing)
	}
}

func reportResult(ctx *Context, result api.Result) {
	switch {
	case result.TransportFailed():
		return
	case result.Held():
		if review := result.ReviewURL(); review != "" {
			ctx.UI.Warnf("Held for review: %s", ctx.UI.Link(review))
			return
		}
		ctx.UI.Warnf("Held for review.")
	case result.Published():
		ctx.UI.Successf("Published.")
	case result.Success():
		ctx.UI.Successf("Submitted (HTTP %d).", result.StatusCode)
	default:
		message := result.ErrorMessage()
		if message == "" {
			message = "request rejected"
		}
		ctx.UI.Errorf("HTTP %d: %s", result.StatusCode, message)
	}
}
