package cmd

import (
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/jimezsa/jobposter/internal/config"
	"github.com/jimezsa/jobposter/internal/models"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`
	BaseURL string `name:"base-url" help:"API base URL (overrides config and JOBPOSTER_BASE_URL)."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version VersionCmd `cmd:"" help:"Print version."`
	Config  ConfigCmd  `cmd:"" help:"Manage configuration."`
	Modules ModulesCmd `cmd:"" help:"List the publishing modules offered by the API."`
	Submit  SubmitCmd  `cmd:"" help:"Submit a job posting."`
	Extract ExtractCmd `cmd:"" help:"Prefill job fields from JobPosting markup in a page."`
	Ping    PingCmd    `cmd:"" help:"Check that the API is reachable, directly or through proxies."`
	MCP     MCPCmd     `cmd:"" name:"mcp" help:"Serve the job tools over MCP on stdio."`
}

func NewCLI() *CLI {
	return &CLI{}
}

// Vars returns the interpolation variables the CLI's tags refer to.
func Vars(cfg config.Config, version string) kong.Vars {
	return kong.Vars{
		"version":          version,
		"hold_default":     strconv.FormatBool(cfg.HoldIfIncomplete),
		"employment_types": enumValues(models.EmploymentTypes),
		"remote_types":     enumValues(models.RemoteTypes),
		"salary_units":     enumValues(models.SalaryUnits),
	}
}

// enumValues allows the empty value alongside values.
func enumValues(values []string) string {
	return "," + strings.Join(values, ",")
}
