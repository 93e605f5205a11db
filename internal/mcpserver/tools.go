package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jimezsa/jobposter/internal/api"
	"github.com/jimezsa/jobposter/internal/payload"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *Handler) FetchModules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.switchBaseURL(request)
	modules, err := h.currentClient().FetchModules(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch modules: %v", err)), nil
	}
	h.session.Remember(modules)
	return textJSON(modules)
}

func (h *Handler) BuildPayload(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	doc, err := h.buildDocument(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textJSON(doc)
}

type submitOutput struct {
	StatusCode int      `json:"statusCode"`
	Body       any      `json:"body"`
	Warnings   []string `json:"warnings,omitempty"`
}

func (h *Handler) SubmitJob(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.switchBaseURL(request)
	doc, err := h.buildDocument(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	output := submitOutput{Warnings: h.requirementWarnings(doc)}
	result := h.currentClient().SubmitJob(ctx, doc)
	output.StatusCode = result.StatusCode
	output.Body = result.Body

	h.logger.Info().
		Int("status_code", result.StatusCode).
		Str("status", result.Status()).
		Msg("job submitted")

	toolResult, err := textJSON(output)
	if err != nil {
		return nil, err
	}
	toolResult.IsError = result.TransportFailed()
	return toolResult, nil
}

func (h *Handler) switchBaseURL(request mcp.CallToolRequest) {
	if base := strings.TrimSpace(request.GetString("base_url", "")); base != "" {
		h.session.SetBaseURL(base)
	}
}

func (h *Handler) currentClient() *api.Client {
	return h.client.WithBaseURL(h.session.BaseURL())
}

func (h *Handler) buildDocument(request mcp.CallToolRequest) (payload.Document, error) {
	args := request.GetArguments()

	fields, err := objectArgument(args, "fields")
	if err != nil {
		return nil, err
	}
	form, err := formArgument(args)
	if err != nil {
		return nil, err
	}
	credentials, err := objectArgument(args, "credentials")
	if err != nil {
		return nil, err
	}

	return payload.Request{
		URL:              request.GetString("url", ""),
		Fields:           payload.ComposeFields(fields, form),
		Modules:          payload.ModuleSelection(modulesArgument(args)),
		Credentials:      credentials,
		HoldIfIncomplete: request.GetBool("hold_if_incomplete", h.defaultHold),
	}.Document(), nil
}

func (h *Handler) requirementWarnings(doc payload.Document) []string {
	modules, fetched := h.session.Modules()
	if !fetched {
		return nil
	}
	var warnings []string
	if ids, ok := doc["modules"].([]any); ok {
		var selected []string
		for _, id := range ids {
			if s, ok := id.(string); ok {
				selected = append(selected, s)
			}
		}
		for _, id := range h.session.Unknown(selected) {
			warnings = append(warnings, fmt.Sprintf("unknown module %q", id))
		}
	}
	for _, missing := range payload.CheckRequirements(doc, modules) {
		warnings = append(warnings, missing.String())
	}
	return warnings
}

func objectArgument(args map[string]any, key string) (payload.Document, error) {
	value, ok := args[key]
	if !ok || value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case map[string]any:
		return v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		return payload.ParseDocument(key, []byte(v))
	default:
		return nil, fmt.Errorf("%s must be an object", key)
	}
}

func formArgument(args map[string]any) (payload.RawFields, error) {
	value, ok := args["form"]
	if !ok || value == nil {
		return nil, nil
	}
	form, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("form must be an object")
	}
	raw := make(payload.RawFields, len(form))
	for key, item := range form {
		switch v := item.(type) {
		case nil:
		case string:
			raw[key] = v
		case float64:
			raw[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case json.Number:
			raw[key] = v.String()
		case bool:
			raw[key] = strconv.FormatBool(v)
		default:
			return nil, fmt.Errorf("form.%s must be a string", key)
		}
	}
	return raw, nil
}

func modulesArgument(args map[string]any) []string {
	switch v := args["modules"].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		ids := make([]string, 0, len(v))
		for _, item := range v {
			if id, ok := item.(string); ok {
				ids = append(ids, id)
			}
		}
		return ids
	}
	return nil
}

func textJSON(value any) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(strings.TrimRight(buf.String(), "\n")), nil
}
