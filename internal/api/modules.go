package api

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobposter/internal/models"
)

type modulesResponse struct {
	Modules []moduleEntry `json:"modules"`
}

type moduleEntry struct {
	ID                  string   `json:"id"`
	Label               string   `json:"label"`
	RequiredFields      []string `json:"requiredFields"`
	RequiredCredentials []string `json:"requiredCredentials"`
}

// FetchModules lists the publishing modules offered by the API. The result is
// never nil on success. Entries without an id are skipped.
func (c *Client) FetchModules(ctx context.Context) ([]models.ModuleDescriptor, error) {
	const op = "fetch modules"

	ctx, cancel := context.WithTimeout(ctx, c.modulesTimeout)
	defer cancel()

	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, c.endpoint(modulesPath), nil)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindTransport, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindTransport, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Op: op, Kind: KindStatus, StatusCode: resp.StatusCode, Body: snippet(body)}
	}

	var decoded modulesResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &Error{Op: op, Kind: KindDecode, StatusCode: resp.StatusCode, Err: err}
	}

	modules := make([]models.ModuleDescriptor, 0, len(decoded.Modules))
	for _, entry := range decoded.Modules {
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			c.logger.Debug().Str("label", entry.Label).Msg("skipping module without id")
			continue
		}
		modules = append(modules, models.ModuleDescriptor{
			ID:                  id,
			Label:               entry.Label,
			RequiredFields:      uniqueStrings(entry.RequiredFields),
			RequiredCredentials: uniqueStrings(entry.RequiredCredentials),
		})
	}

	c.logger.Debug().Int("count", len(modules)).Msg("modules fetched")
	return modules, nil
}

func uniqueStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
