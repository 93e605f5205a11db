package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/jobposter/internal/models"
	"github.com/jimezsa/jobposter/internal/ui"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

const listSeparator = "; "

func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "tsv":
		return FormatTSV, nil
	case "table", "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

// WriteModules renders the module catalog.
func WriteModules(w io.Writer, modules []models.ModuleDescriptor, format Format) error {
	if modules == nil {
		modules = []models.ModuleDescriptor{}
	}
	switch format {
	case FormatJSON:
		return writeJSON(w, modules)
	case FormatCSV:
		return writeModulesCSV(w, modules, ',')
	case FormatTSV:
		return writeModulesCSV(w, modules, '\t')
	case FormatMarkdown:
		return writeModulesMarkdown(w, modules)
	default:
		return writeModulesTable(w, modules)
	}
}

// WriteDocument writes doc as indented JSON without HTML escaping, so a
// description stays readable and the output can be fed back as a fields file.
func WriteDocument(w io.Writer, doc any) error {
	return writeJSON(w, doc)
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(value)
}

func writeModulesCSV(w io.Writer, modules []models.ModuleDescriptor, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(moduleHeader()); err != nil {
		return err
	}
	for _, module := range modules {
		if err := writer.Write(moduleRow(module)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeModulesTable(w io.Writer, modules []models.ModuleDescriptor) error {
	if len(modules) == 0 {
		_, err := fmt.Fprintln(w, "No modules.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(moduleHeader(), "\t"))
	for _, module := range modules {
		row := moduleRow(module)
		for i, cell := range row {
			if cell == "" {
				row[i] = "-"
			}
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func writeModulesMarkdown(w io.Writer, modules []models.ModuleDescriptor) error {
	if len(modules) == 0 {
		_, err := fmt.Fprintln(w, "No modules.")
		return err
	}
	for _, module := range modules {
		label := safe(module.Label)
		if label == "" {
			label = module.ID
		}
		lines := []string{fmt.Sprintf("- **%s** (`%s`)", label, module.ID)}
		if len(module.RequiredFields) > 0 {
			lines = append(lines, "  Required fields: "+strings.Join(module.RequiredFields, ", "))
		}
		if len(module.RequiredCredentials) > 0 {
			lines = append(lines, "  Required credentials: "+strings.Join(module.RequiredCredentials, ", "))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func moduleHeader() []string {
	return []string{
		"id",
		"label",
		"required_fields",
		"required_credentials",
	}
}

func moduleRow(module models.ModuleDescriptor) []string {
	return []string{
		module.ID,
		safe(module.Label),
		strings.Join(module.RequiredFields, listSeparator),
		strings.Join(module.RequiredCredentials, listSeparator),
	}
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func formatLink(raw string, output *termenv.Output, opts WriteOptions) string {
	link := safe(raw)
	if link == "" {
		return "-"
	}
	display := link
	if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
		display = shortURLLabel(link)
	}
	display = ui.ColorizeLink(output, opts.ColorEnabled, display)
	if opts.Hyperlinks {
		display = ui.Hyperlink(link, display)
	}
	return display
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
