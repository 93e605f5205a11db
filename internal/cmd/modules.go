package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/jimezsa/jobposter/internal/export"
)

type ModulesCmd struct {
	Format string `help:"Output format: table, csv, tsv, json, md." enum:",table,csv,tsv,json,md" default:""`
	Output string `name:"output" short:"o" help:"Write output to a file."`
}

func (m *ModulesCmd) Run(ctx *Context) error {
	modules, err := ctx.APIClient().FetchModules(context.Background())
	if err != nil {
		return err
	}
	ctx.Session.Remember(modules)

	format, err := resolveFormat(ctx, m.Format, m.Output)
	if err != nil {
		return err
	}

	err = writeOutput(ctx, m.Output, func(w io.Writer) error {
		return export.WriteModules(w, modules, format)
	})
	if err != nil {
		return err
	}

	if ctx.Err != nil {
		_, _ = fmt.Fprintf(ctx.Err, "summary: modules=%d base_url=%s\n", len(modules), ctx.Session.BaseURL())
	}
	return nil
}
