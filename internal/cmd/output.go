package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jimezsa/jobposter/internal/export"
	"github.com/muesli/termenv"
)

// resolveFormat picks the output format: global --json/--plain win, then an
// explicit --format, then the -o file extension, then a table on terminals
// and CSV elsewhere.
func resolveFormat(ctx *Context, format string, outputPath string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if strings.TrimSpace(format) != "" {
		return export.ParseFormat(format)
	}
	if format, ok := formatFromPath(outputPath); ok {
		return format, nil
	}
	if outputPath == "" && isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func formatFromPath(path string) (export.Format, bool) {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(path))) {
	case ".json":
		return export.FormatJSON, true
	case ".csv":
		return export.FormatCSV, true
	case ".tsv":
		return export.FormatTSV, true
	case ".md", ".markdown":
		return export.FormatMarkdown, true
	}
	return "", false
}

var createOutput = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// writeOutput runs write against the file at path, or ctx.Out when path is
// empty. A file that fails to close counts as a failed write.
func writeOutput(ctx *Context, path string, write func(io.Writer) error) error {
	if strings.TrimSpace(path) == "" {
		return write(ctx.Out)
	}
	file, err := createOutput(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeOptions(ctx *Context, writer io.Writer) export.WriteOptions {
	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	return export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   colorEnabled && isTTY(writer),
		LinkStyle:    export.LinkStyleShort,
	}
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}
