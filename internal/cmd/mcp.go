package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/jimezsa/jobposter/internal/mcpserver"
)

type MCPCmd struct{}

func (m *MCPCmd) Run(ctx *Context) error {
	handler := mcpserver.New(ctx.APIClient(), ctx.Session, mcpserver.Options{
		HoldIfIncomplete: ctx.Config.HoldIfIncomplete,
		Logger:           ctx.Logger,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Logger.Debug().Str("base_url", ctx.Session.BaseURL()).Msg("serving MCP on stdio")
	err := handler.Serve(runCtx, ctx.Version, ctx.In, ctx.Out)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
