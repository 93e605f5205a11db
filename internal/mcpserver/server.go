// Package mcpserver exposes module listing, payload building and job
// submission as MCP tools over stdio.
package mcpserver

import (
	"context"
	"io"
	"log"
	"sync"

	"github.com/jimezsa/jobposter/internal/api"
	"github.com/jimezsa/jobposter/internal/models"
	"github.com/jimezsa/jobposter/internal/payload"
	"github.com/jimezsa/jobposter/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

const serverName = "jobposter"

type Options struct {
	HoldIfIncomplete bool
	Logger           zerolog.Logger
}

// Handler serves the tools. Calls are serialized so at most one request to
// the API is in flight.
type Handler struct {
	mu          sync.Mutex
	client      *api.Client
	session     *session.Session
	defaultHold bool
	logger      zerolog.Logger
}

func New(client *api.Client, sess *session.Session, opts Options) *Handler {
	return &Handler{
		client:      client,
		session:     sess,
		defaultHold: opts.HoldIfIncomplete,
		logger:      opts.Logger,
	}
}

// Server builds an MCP server with every tool registered.
func (h *Handler) Server(version string) *server.MCPServer {
	s := server.NewMCPServer(serverName, version, server.WithToolCapabilities(false))
	s.AddTool(fetchModulesTool(), h.FetchModules)
	s.AddTool(jobTool("build_payload", "Build the normalized job submission payload without sending it."), h.BuildPayload)
	s.AddTool(jobTool("submit_job", "Submit a job posting to the distribution API and return its response."), h.SubmitJob)
	return s
}

// Serve runs the tools on stdin/stdout until ctx is done or input ends.
func (h *Handler) Serve(ctx context.Context, version string, stdin io.Reader, stdout io.Writer) error {
	stdio := server.NewStdioServer(h.Server(version))
	stdio.SetErrorLogger(log.New(h.logger, "", 0))
	return stdio.Listen(ctx, stdin, stdout)
}

func fetchModulesTool() mcp.Tool {
	return mcp.NewTool("fetch_modules",
		mcp.WithDescription("List the publishing modules offered by the job distribution API, with their required fields and credentials."),
		mcp.WithString("base_url", mcp.Description("API base URL; switches the session to that API.")),
	)
}

func jobTool(name string, description string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithString("url", mcp.Description("Public job posting URL the API may import from.")),
		mcp.WithObject("fields", mcp.Description("Structured job fields (title, descriptionHTML, hiringOrganization, addresses, salary, ...).")),
		mcp.WithObject("form",
			mcp.Description("Flat form values mapped into fields; present values override fields."),
			mcp.Properties(formProperties()),
		),
		mcp.WithArray("modules",
			mcp.Description("Module ids to publish to. Omit or leave empty for every module."),
			mcp.WithStringItems(),
		),
		mcp.WithObject("credentials", mcp.Description("Per-module credential families, e.g. {\"indeed\": {\"clientId\": \"...\"}}.")),
		mcp.WithBoolean("hold_if_incomplete", mcp.Description("Hold the posting for review when modules lack required data.")),
		mcp.WithString("base_url", mcp.Description("API base URL; switches the session to that API.")),
	)
}

func formProperties() map[string]any {
	props := make(map[string]any)
	for _, key := range []string{
		payload.FieldTitle,
		payload.FieldDescriptionHTML,
		payload.FieldApplyURL,
		payload.FieldRefID,
		payload.FieldDatePosted,
		payload.FieldValidThrough,
		payload.FieldApplicantLocationReqs,
		payload.FieldOrgName,
		payload.FieldOrgWebsite,
		payload.FieldOrgLogoURL,
		payload.FieldLocality,
		payload.FieldRegion,
		payload.FieldPostalCode,
		payload.FieldCountry,
		payload.FieldSalaryCurrency,
		payload.FieldSalaryMin,
		payload.FieldSalaryMax,
	} {
		props[key] = map[string]any{"type": "string"}
	}
	props[payload.FieldEmploymentType] = enumProperty(models.EmploymentTypes)
	props[payload.FieldRemoteType] = enumProperty(models.RemoteTypes)
	props[payload.FieldSalaryUnit] = enumProperty(models.SalaryUnits)
	return props
}

func enumProperty(values []string) map[string]any {
	return map[string]any{"type": "string", "enum": append([]string{""}, values...)}
}
