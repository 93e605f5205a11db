package export

import (
	"fmt"
	"io"

	"github.com/jimezsa/jobposter/internal/api"
)

// WriteResult renders a submission response. JSON output is the full
// {statusCode, body} pair; other formats print the status line followed by
// the body.
func WriteResult(w io.Writer, result api.Result, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, result)
	}
	status := fmt.Sprintf("HTTP %d", result.StatusCode)
	if result.TransportFailed() {
		status = "HTTP 0 (no response)"
	}
	if _, err := fmt.Fprintln(w, status); err != nil {
		return err
	}
	return writeJSON(w, result.Body)
}
