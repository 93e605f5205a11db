package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jimezsa/jobposter/internal/api"
)

const directRoute = "direct"

type PingCmd struct {
	Proxy []string `name:"proxy" help:"Proxy URL to test (repeatable; default: the configured proxy, or direct)."`
}

type PingResult struct {
	Route     string `json:"route"`
	Status    string `json:"status"`
	Modules   int    `json:"modules"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

func (p *PingCmd) Run(ctx *Context) error {
	routes := pingRoutes(p.Proxy, ctx.Config.Proxy)

	results := make([]PingResult, 0, len(routes))
	for _, route := range routes {
		results = append(results, ping(ctx, route))
	}

	if err := writePingResults(ctx, results); err != nil {
		return err
	}
	for _, res := range results {
		if res.Status == "ok" {
			return nil
		}
	}
	return fmt.Errorf("API unreachable at %s", ctx.Session.BaseURL())
}

func pingRoutes(flags []string, configured string) []string {
	var routes []string
	for _, flag := range flags {
		for _, proxy := range strings.Split(flag, ",") {
			if proxy = strings.TrimSpace(proxy); proxy != "" {
				routes = append(routes, proxy)
			}
		}
	}
	if len(routes) > 0 {
		return routes
	}
	if configured = strings.TrimSpace(configured); configured != "" {
		return []string{configured}
	}
	return []string{directRoute}
}

func ping(ctx *Context, route string) PingResult {
	result := PingResult{Route: route}

	proxy := route
	if route == directRoute {
		proxy = ""
	}
	doer, err := ctx.NewDoer(proxy)
	if err != nil {
		result.Status = "error"
		result.Error = err.Error()
		return result
	}

	start := time.Now()
	modules, err := ctx.apiClient(doer).FetchModules(context.Background())
	result.LatencyMS = time.Since(start).Milliseconds()
	if err != nil {
		result.Status = "error"
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Kind == api.KindStatus {
			result.Status = fmt.Sprintf("%d", apiErr.StatusCode)
		}
		result.Error = err.Error()
		return result
	}

	result.Status = "ok"
	result.Modules = len(modules)
	return result
}

func writePingResults(ctx *Context, results []PingResult) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if ctx.PlainText {
		for _, res := range results {
			line := []string{res.Route, res.Status, fmt.Sprintf("%d", res.Modules), fmt.Sprintf("%d", res.LatencyMS), res.Error}
			fmt.Fprintln(ctx.Out, strings.Join(line, "\t"))
		}
		return nil
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "route\tstatus\tmodules\tlatency_ms\terror")
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", res.Route, res.Status, res.Modules, res.LatencyMS, res.Error)
	}
	return tw.Flush()
}
