package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/jimezsa/jobposter/internal/export"
	"github.com/jimezsa/jobposter/internal/jsonld"
)

type ExtractCmd struct {
	Source string `arg:"" help:"HTML file or URL of a job posting page."`
	All    bool   `help:"Output every posting found instead of the first."`
	Format string `help:"Output format: json, table, md (default json)." enum:",json,table,md" default:""`
	Output string `name:"output" short:"o" help:"Write output to a file, e.g. for submit --fields-file."`
}

func (e *ExtractCmd) Run(ctx *Context) error {
	doc, err := jsonld.Load(context.Background(), ctx.Doer, e.Source)
	if err != nil {
		return err
	}

	postings := jsonld.Extract(doc)
	if len(postings) == 0 {
		return fmt.Errorf("no JobPosting markup found in %s", e.Source)
	}
	ctx.Logger.Debug().Int("count", len(postings)).Str("source", e.Source).Msg("postings extracted")
	if !e.All {
		postings = postings[:1]
	}

	format := export.FormatJSON
	if e.Format != "" && !ctx.JSONOutput {
		format, err = export.ParseFormat(e.Format)
		if err != nil {
			return err
		}
	}

	return writeOutput(ctx, e.Output, func(w io.Writer) error {
		return export.WritePostings(w, postings, format, writeOptions(ctx, w))
	})
}
