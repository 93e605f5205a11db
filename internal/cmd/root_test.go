package cmd

import (
	"reflect"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/jimezsa/jobposter/internal/config"
)

func parseArgs(t *testing.T, cfg config.Config, args ...string) (*CLI, error) {
	t.Helper()
	cli := NewCLI()
	parser, err := kong.New(cli, kong.Name("jobposter"), Vars(cfg, "test"))
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}
	_, err = parser.Parse(args)
	return cli, err
}

func TestParseSubmitFlags(t *testing.T) {
	cli, err := parseArgs(t, config.DefaultConfig(),
		"submit",
		"--title", "Engineer",
		"--employment-type", "FULL_TIME",
		"--module", "site,linkedin",
		"-m", "indeed_api",
		"--cred", "indeed.clientSecret=a=b",
		"--cred", "indeed.clientId=id-1",
		"--no-hold",
	)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	submit := cli.Submit
	if submit.Title != "Engineer" || submit.EmploymentType != "FULL_TIME" {
		t.Fatalf("job flags = %+v", submit.JobFlags)
	}
	if want := []string{"site", "linkedin", "indeed_api"}; !reflect.DeepEqual(submit.Module, want) {
		t.Fatalf("Module = %v, want %v", submit.Module, want)
	}
	wantCred := map[string]string{"indeed.clientSecret": "a=b", "indeed.clientId": "id-1"}
	if !reflect.DeepEqual(submit.Cred, wantCred) {
		t.Fatalf("Cred = %v, want %v", submit.Cred, wantCred)
	}
	if submit.Hold {
		t.Fatalf("Hold = true, want false after --no-hold")
	}
}

func TestParseHoldDefaultFollowsConfig(t *testing.T) {
	cli, err := parseArgs(t, config.DefaultConfig(), "submit")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !cli.Submit.Hold {
		t.Fatalf("Hold = false, want config default true")
	}

	cfg := config.DefaultConfig()
	cfg.HoldIfIncomplete = false
	cli, err = parseArgs(t, cfg, "submit")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cli.Submit.Hold {
		t.Fatalf("Hold = true, want config default false")
	}

	cli, err = parseArgs(t, cfg, "submit", "--hold")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !cli.Submit.Hold {
		t.Fatalf("Hold = false, want true after --hold")
	}
}

func TestParseRejectsUnknownEnumValues(t *testing.T) {
	if _, err := parseArgs(t, config.DefaultConfig(), "submit", "--remote-type", "SOMETIMES"); err == nil {
		t.Fatalf("Parse() error = nil, want enum error")
	}
	if _, err := parseArgs(t, config.DefaultConfig(), "submit", "--salary-unit", "YEAR"); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
}

func TestParseGlobalBaseURL(t *testing.T) {
	cli, err := parseArgs(t, config.DefaultConfig(), "--base-url", "http://localhost:8000", "modules", "--format", "md")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cli.BaseURL != "http://localhost:8000" || cli.Modules.Format != "md" {
		t.Fatalf("BaseURL/Format = %q/%q", cli.BaseURL, cli.Modules.Format)
	}
}
